// Package controller implements the schedule view controller: the state
// machine coordinating view mode, filters, pagination and drag-and-drop
// reconciliation for the timetable screen. The displayed grid is always a
// server-confirmed projection; after every accepted mutation the affected
// view is re-fetched rather than patched speculatively.
package controller

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hocvien-dev/timetable-console/internal/api"
	"github.com/hocvien-dev/timetable-console/internal/models"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

// ViewMode selects which projection of the schedule the screen shows.
type ViewMode string

const (
	ModeBase      ViewMode = "Base"
	ModeApplied   ViewMode = "Applied"
	ModePersonal  ViewMode = "Personal"
	ModeSemesters ViewMode = "Semesters"
	ModeConfig    ViewMode = "Config"
)

// FallbackDescription replaces the period label whenever a windowed fetch
// fails.
const FallbackDescription = "Không có dữ liệu"

// Notifier is the transient notification surface. Server-supplied
// descriptions are passed through verbatim.
type Notifier interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}

// Backend is the slice of the remote API the controller drives.
type Backend interface {
	ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error)
	TemplateDetails(ctx context.Context, scheduleID string, ftype models.FilterType, code string) ([]models.ScheduleDetail, error)
	FetchWindow(ctx context.Context, q api.WindowQuery) (*models.Window, error)
	MoveSlot(ctx context.Context, req api.MoveSlotRequest) (*api.MutationResult, error)
	MoveEntry(ctx context.Context, req api.MoveEntryRequest) (*api.MutationResult, error)
	ChangeTeacher(ctx context.Context, entryID, teacherUserName string) (*api.MutationResult, error)
	ChangeRoom(ctx context.Context, entryID, roomCode string) (*api.MutationResult, error)
	TeachersForEntry(ctx context.Context, entryID string) ([]models.Teacher, error)
	RoomsForEntry(ctx context.Context, entryID string) ([]models.Room, error)
	MarkAttendance(ctx context.Context, entryID string, status models.EntryStatus) (*api.MutationResult, error)
}

// Controller owns the view/edit state of the timetable screen.
type Controller struct {
	backend  Backend
	notifier Notifier
	logger   *zap.Logger

	// fence is a monotonically increasing request token. Each loadView
	// captures the value it incremented to and commits results only while
	// still current, so a fetch for a stale (type, code, current) never
	// overwrites a newer selection.
	fence uint64

	mu         sync.Mutex
	mode       ViewMode
	ftype      models.FilterType
	code       string
	templateID string
	option     models.WindowOption
	current    int

	templates   []models.ScheduleTemplate
	details     []models.ScheduleDetail
	rows        []models.TimetableEntry
	description string
	pagination  models.Pagination
	modal       *SlotDetail
}

// New builds a controller in its initial state: Base mode, unfiltered,
// weekly grouping, offset zero.
func New(backend Backend, notifier Notifier, logger *zap.Logger) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		mode:     ModeBase,
		ftype:    models.FilterAll,
		option:   models.OptionWeekly,
	}
}

// State is a read-only snapshot of the controller for rendering.
type State struct {
	Mode        ViewMode
	FilterType  models.FilterType
	FilterCode  string
	TemplateID  string
	Option      models.WindowOption
	Current     int
	Templates   []models.ScheduleTemplate
	Details     []models.ScheduleDetail
	Rows        []models.TimetableEntry
	Description string
	Pagination  models.Pagination
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Mode:        c.mode,
		FilterType:  c.ftype,
		FilterCode:  c.code,
		TemplateID:  c.templateID,
		Option:      c.option,
		Current:     c.current,
		Templates:   c.templates,
		Details:     c.details,
		Rows:        c.rows,
		Description: c.description,
		Pagination:  c.pagination,
	}
}

// SetViewMode switches the screen mode. Every transition resets the
// selected template, loaded rows, the pagination offset, the grouping
// option and any open dialog, then loads the new view.
func (c *Controller) SetViewMode(ctx context.Context, mode ViewMode) error {
	c.mu.Lock()
	c.mode = mode
	c.ftype = models.FilterAll
	c.code = ""
	c.templateID = ""
	c.details = nil
	c.rows = nil
	c.description = ""
	c.pagination = models.Pagination{}
	c.current = 0
	c.option = models.OptionWeekly
	c.modal = nil
	c.mu.Unlock()

	return c.loadView(ctx, 0)
}

// LoadTemplates refreshes the template list shown in Base mode.
func (c *Controller) LoadTemplates(ctx context.Context) error {
	templates, err := c.backend.ListTemplates(ctx)
	if err != nil {
		c.notifier.Error(appErrors.FromError(err).Message)
		return err
	}
	c.mu.Lock()
	c.templates = templates
	c.mu.Unlock()
	return nil
}

// SelectTemplate loads the details of one template in Base mode.
func (c *Controller) SelectTemplate(ctx context.Context, id string) error {
	c.mu.Lock()
	c.templateID = id
	current := c.current
	c.mu.Unlock()
	return c.loadView(ctx, current)
}

// SetFilterType changes the filter dimension. The dependent code is cleared
// and the view re-fetched, so All/Class/Teacher with an empty code behaves
// as unfiltered until a code is chosen.
func (c *Controller) SetFilterType(ctx context.Context, t models.FilterType) error {
	c.mu.Lock()
	c.ftype = t
	c.code = ""
	current := c.current
	c.mu.Unlock()
	return c.loadView(ctx, current)
}

// SetFilterCode narrows the view to one class or teacher.
func (c *Controller) SetFilterCode(ctx context.Context, code string) error {
	c.mu.Lock()
	c.code = code
	current := c.current
	c.mu.Unlock()
	return c.loadView(ctx, current)
}

// SetOption switches between Weekly and Daily windowing and rewinds to the
// present window.
func (c *Controller) SetOption(ctx context.Context, option models.WindowOption) error {
	c.mu.Lock()
	c.option = option
	c.mu.Unlock()
	return c.loadView(ctx, 0)
}

// NextPeriod fetches the following window.
func (c *Controller) NextPeriod(ctx context.Context) error {
	c.mu.Lock()
	requested := c.current + 1
	c.mu.Unlock()
	return c.loadView(ctx, requested)
}

// PreviousPeriod fetches the preceding window.
func (c *Controller) PreviousPeriod(ctx context.Context) error {
	c.mu.Lock()
	requested := c.current - 1
	c.mu.Unlock()
	return c.loadView(ctx, requested)
}

// Refresh re-fetches the current view without changing any selection.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	return c.loadView(ctx, current)
}

// loadView is the single fetch path for every state-changing handler, so
// ordering and staleness are controlled in one place.
func (c *Controller) loadView(ctx context.Context, requested int) error {
	gen := atomic.AddUint64(&c.fence, 1)

	c.mu.Lock()
	mode := c.mode
	ftype := c.ftype
	code := c.code
	templateID := c.templateID
	option := c.option
	c.mu.Unlock()

	switch mode {
	case ModeBase:
		return c.loadBase(ctx, gen, templateID, ftype, code)
	case ModeApplied, ModePersonal:
		return c.loadWindow(ctx, gen, mode, option, requested, ftype, code)
	default:
		// Semesters and Config manage their own tables; nothing to load here.
		return nil
	}
}

func (c *Controller) loadBase(ctx context.Context, gen uint64, templateID string, ftype models.FilterType, code string) error {
	if templateID == "" {
		c.commit(gen, func() {
			c.details = nil
		})
		return nil
	}

	details, err := c.backend.TemplateDetails(ctx, templateID, ftype, code)
	if err != nil {
		committed := c.commit(gen, func() {
			c.details = nil
		})
		if committed {
			c.notifier.Error(appErrors.FromError(err).Message)
		}
		return err
	}

	c.commit(gen, func() {
		c.details = details
	})
	return nil
}

func (c *Controller) loadWindow(ctx context.Context, gen uint64, mode ViewMode, option models.WindowOption, requested int, ftype models.FilterType, code string) error {
	query := api.WindowQuery{
		Option:   option,
		Current:  requested,
		Personal: mode == ModePersonal,
	}
	if mode == ModeApplied {
		query.Type = ftype
		query.Code = code
	}

	window, err := c.backend.FetchWindow(ctx, query)
	if err != nil {
		// Never leave stale rows displayed next to an error.
		committed := c.commit(gen, func() {
			c.rows = nil
			c.description = FallbackDescription
			c.pagination = models.Pagination{Current: requested, Last: 1}
			c.current = requested
		})
		if committed {
			c.notifier.Error(appErrors.FromError(err).Message)
		}
		return err
	}

	c.commit(gen, func() {
		c.rows = window.Entries
		c.description = window.Description
		c.pagination = window.Pagination
		// The server echo wins over the locally computed offset.
		c.current = window.Pagination.Current
	})
	return nil
}

// commit applies fn only while gen is still the newest issued fence value;
// stale completions are discarded.
func (c *Controller) commit(gen uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != atomic.LoadUint64(&c.fence) {
		c.logger.Debug("discarded stale fetch", zap.Uint64("generation", gen))
		return false
	}
	fn()
	return true
}
