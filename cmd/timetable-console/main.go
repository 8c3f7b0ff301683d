package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hocvien-dev/timetable-console/internal/api"
	"github.com/hocvien-dev/timetable-console/internal/catalog"
	"github.com/hocvien-dev/timetable-console/internal/controller"
	"github.com/hocvien-dev/timetable-console/internal/exporter"
	"github.com/hocvien-dev/timetable-console/internal/models"
	"github.com/hocvien-dev/timetable-console/internal/refcache"
	"github.com/hocvien-dev/timetable-console/internal/session"
	"github.com/hocvien-dev/timetable-console/pkg/cache"
	"github.com/hocvien-dev/timetable-console/pkg/config"
	"github.com/hocvien-dev/timetable-console/pkg/logger"
	"github.com/hocvien-dev/timetable-console/pkg/metrics"
)

// consoleNotifier prints transient notifications to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) Success(message string) { fmt.Println("[OK]", message) }
func (consoleNotifier) Warning(message string) { fmt.Println("[!]", message) }
func (consoleNotifier) Error(message string)   { fmt.Println("[ERR]", message) }

func main() {
	var (
		mode         string
		option       string
		current      int
		filterType   string
		filterCode   string
		templateID   string
		exportFormat string
		exportTitle  string
	)

	flag.StringVar(&mode, "mode", "Applied", "view mode: Base, Applied or Personal")
	flag.StringVar(&option, "option", "Weekly", "window grouping: Weekly or Daily")
	flag.IntVar(&current, "current", 0, "window offset relative to the present period")
	flag.StringVar(&filterType, "type", "All", "filter type: All, Class or Teacher")
	flag.StringVar(&filterCode, "code", "", "filter code for the chosen type")
	flag.StringVar(&templateID, "template", "", "template id to inspect in Base mode")
	flag.StringVar(&exportFormat, "export", "", "export the loaded window: csv or pdf")
	flag.StringVar(&exportTitle, "export-title", "Thời khoá biểu", "title printed on exported documents")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	sess := session.New(logr)
	sess.OnExpired(func() {
		fmt.Println("[ERR] Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại")
		os.Exit(1)
	})
	if err := sess.SetToken(loadToken(cfg)); err != nil {
		logr.Sugar().Fatalw("invalid bearer token", "error", err)
	}

	metricsSvc := metrics.New()
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metricsSvc.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logr.Sugar().Warnw("metrics listener stopped", "error", err)
			}
		}()
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, using in-process cache only", "error", err)
	}

	client := api.NewClient(cfg.API, sess, metricsSvc, logr)
	refs := catalog.New(client, refcache.New(redisClient, cfg.Cache.TTL, metricsSvc, logr))
	ctl := controller.New(client, consoleNotifier{}, logr)

	ctx := context.Background()

	if err := ctl.SetViewMode(ctx, controller.ViewMode(mode)); err != nil {
		os.Exit(1)
	}
	if templateID != "" {
		if err := ctl.SelectTemplate(ctx, templateID); err != nil {
			os.Exit(1)
		}
	}
	if ft := models.FilterType(filterType); ft != models.FilterAll {
		if err := ctl.SetFilterType(ctx, ft); err != nil {
			os.Exit(1)
		}
	}
	if filterCode != "" {
		if err := ctl.SetFilterCode(ctx, filterCode); err != nil {
			os.Exit(1)
		}
	}
	if opt := models.WindowOption(option); opt != models.OptionWeekly {
		if err := ctl.SetOption(ctx, opt); err != nil {
			os.Exit(1)
		}
	}
	for step := 0; step < current; step++ {
		if err := ctl.NextPeriod(ctx); err != nil {
			os.Exit(1)
		}
	}
	for step := 0; step > current; step-- {
		if err := ctl.PreviousPeriod(ctx); err != nil {
			os.Exit(1)
		}
	}

	state := ctl.State()
	printState(state)

	if exportFormat != "" {
		runExport(ctx, cfg, logr, refs, state, exportFormat, exportTitle)
	}
}

func loadToken(cfg *config.Config) string {
	if cfg.Auth.Token != "" {
		return cfg.Auth.Token
	}
	if cfg.Auth.TokenFile != "" {
		raw, err := os.ReadFile(cfg.Auth.TokenFile)
		if err == nil {
			return strings.TrimSpace(string(raw))
		}
	}
	return ""
}

func printState(state controller.State) {
	if state.Description != "" {
		fmt.Println(state.Description)
	}
	switch state.Mode {
	case controller.ModeBase:
		for _, d := range state.Details {
			fmt.Printf("%-10s tiết %-2d  %-8s %-8s %-12s %s\n",
				models.DayLabel(d.DayOfWeek), d.TimeSlotID, d.ClassCode, d.SubjectCode, d.TeacherUserName, d.RoomCode)
		}
	default:
		for _, row := range state.Rows {
			fmt.Printf("%s tiết %-2d  %-8s %-8s %-12s %-8s %s\n",
				row.Date, row.TimeSlotID, row.ClassCode, row.SubjectCode, row.TeacherUserName, row.RoomCode, row.Status)
		}
		fmt.Printf("(%d/%d)\n", state.Pagination.Current, state.Pagination.Last)
	}
}

func runExport(ctx context.Context, cfg *config.Config, logr *zap.Logger, refs *catalog.Catalog, state controller.State, format, title string) {
	slots, err := refs.TimeSlots(ctx)
	if err != nil {
		logr.Sugar().Errorw("failed to load time slots for export", "error", err)
		return
	}

	svc, err := exporter.New(cfg.Export, logr)
	if err != nil {
		logr.Sugar().Errorw("failed to init exporter", "error", err)
		return
	}
	svc.Start(ctx)
	defer svc.Stop()

	filename, err := svc.Enqueue(exporter.Request{
		Window: models.Window{
			Entries:     state.Rows,
			Description: state.Description,
			Pagination:  state.Pagination,
		},
		TimeSlots: slots,
		Format:    exporter.Format(format),
		Title:     title,
	})
	if err != nil {
		logr.Sugar().Errorw("failed to enqueue export", "error", err)
		return
	}

	// One-shot run: give the worker a moment to flush before exiting.
	time.Sleep(500 * time.Millisecond)
	fmt.Println("Đã xuất:", filename)
}
