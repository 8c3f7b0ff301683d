// Package exporter renders a loaded timetable window into CSV or PDF files
// on disk, off the interactive path through a small worker queue.
package exporter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hocvien-dev/timetable-console/internal/models"
	"github.com/hocvien-dev/timetable-console/pkg/config"
	"github.com/hocvien-dev/timetable-console/pkg/export"
	"github.com/hocvien-dev/timetable-console/pkg/jobs"
	"github.com/hocvien-dev/timetable-console/pkg/storage"
)

// Format selects the output file type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Request carries one export job's payload.
type Request struct {
	Window    models.Window
	TimeSlots []models.TimeSlot
	Format    Format
	Title     string
}

// Service renders and stores timetable exports.
type Service struct {
	queue  *jobs.Queue
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	store  *storage.LocalStorage
	logger *zap.Logger
}

// New builds the service and its queue; call Start before enqueueing.
func New(cfg config.ExportConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return nil, err
	}

	s := &Service{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		store:  store,
		logger: logger,
	}
	s.queue = jobs.NewQueue("timetable-export", s.handle, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s, nil
}

// Start launches the export workers.
func (s *Service) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *Service) Stop() {
	s.queue.Stop()
}

// Enqueue schedules an export and returns the file name it will produce.
func (s *Service) Enqueue(req Request) (string, error) {
	id := uuid.NewString()
	filename := fmt.Sprintf("timetable-%s-%s.%s", time.Now().Format("20060102"), id[:8], req.Format)
	err := s.queue.Enqueue(jobs.Job{
		ID:      id,
		Type:    string(req.Format),
		Payload: payload{Request: req, Filename: filename},
	})
	if err != nil {
		return "", err
	}
	return filename, nil
}

type payload struct {
	Request  Request
	Filename string
}

func (s *Service) handle(ctx context.Context, job jobs.Job) error {
	p, ok := job.Payload.(payload)
	if !ok {
		return fmt.Errorf("unexpected export payload %T", job.Payload)
	}

	data := BuildDataset(p.Request.Window.Entries, p.Request.TimeSlots)

	var (
		rendered []byte
		err      error
	)
	switch p.Request.Format {
	case FormatPDF:
		rendered, err = s.pdf.Render(data, p.Request.Title, p.Request.Window.Description)
	default:
		rendered, err = s.csv.Render(data)
	}
	if err != nil {
		return err
	}

	if _, err := s.store.Save(p.Filename, rendered); err != nil {
		return err
	}
	s.logger.Sugar().Infow("timetable exported", "file", s.store.Path(p.Filename), "entries", len(p.Request.Window.Entries))
	return nil
}

// BuildDataset lays the window out as the weekly grid: one row per time
// slot, one column per weekday, cells listing "subject - class (room)".
func BuildDataset(entries []models.TimetableEntry, slots []models.TimeSlot) export.Dataset {
	headers := []string{"Tiết"}
	for iso := 1; iso <= 7; iso++ {
		headers = append(headers, models.DayLabel(iso))
	}

	ordered := make([]models.TimeSlot, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	cells := make(map[int]map[int][]string)
	for _, entry := range entries {
		weekday := entry.DayOfWeek
		if d, err := models.ParseDate(entry.Date); err == nil {
			weekday = models.ISOWeekday(d)
		}
		if cells[entry.TimeSlotID] == nil {
			cells[entry.TimeSlotID] = make(map[int][]string)
		}
		label := fmt.Sprintf("%s - %s", entry.SubjectCode, entry.ClassCode)
		if entry.RoomCode != "" {
			label += fmt.Sprintf(" (%s)", entry.RoomCode)
		}
		cells[entry.TimeSlotID][weekday] = append(cells[entry.TimeSlotID][weekday], label)
	}

	rows := make([]map[string]string, 0, len(ordered))
	for _, slot := range ordered {
		row := map[string]string{
			"Tiết": fmt.Sprintf("%d (%s-%s)", slot.ID, slot.StartTime, slot.EndTime),
		}
		for iso := 1; iso <= 7; iso++ {
			row[models.DayLabel(iso)] = strings.Join(cells[slot.ID][iso], "; ")
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}
