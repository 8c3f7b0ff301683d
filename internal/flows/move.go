package flows

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hocvien-dev/timetable-console/internal/api"
	"github.com/hocvien-dev/timetable-console/internal/models"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

// Scope selects what the move/makeup dialog operates on.
type Scope string

const (
	ScopeAll     Scope = "All"
	ScopeClass   Scope = "Class"
	ScopeTeacher Scope = "Teacher"
	ScopeSlot    Scope = "Slot"
)

type moveAPI interface {
	FetchWindow(ctx context.Context, q api.WindowQuery) (*models.Window, error)
	MoveEntry(ctx context.Context, req api.MoveEntryRequest) (*api.MutationResult, error)
	MoveScope(ctx context.Context, req api.MoveScopeRequest) (*api.MutationResult, error)
}

// MoveForm is the move/makeup ("Dời lịch / Dạy bù") dialog's state. IsMove
// distinguishes rescheduling (the old slot is vacated) from adding a makeup
// lesson (the old slot is retained).
type MoveForm struct {
	Scope         Scope  `validate:"required,oneof=All Class Teacher Slot"`
	Code          string `validate:"required_unless=Scope All"`
	OldDate       string `validate:"required,datetime=2006-01-02"`
	NewDate       string `validate:"required,datetime=2006-01-02"`
	NewTimeSlotID int
	IsMove        bool
}

// MoveMakeupFlow moves lessons between dates, whole-scope or one concrete
// lesson instance at a time.
type MoveMakeupFlow struct {
	api      moveAPI
	validate *validator.Validate
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	source *models.TimetableEntry
}

// NewMoveMakeupFlow builds the flow.
func NewMoveMakeupFlow(client moveAPI, validate *validator.Validate, notifier Notifier, logger *zap.Logger) *MoveMakeupFlow {
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MoveMakeupFlow{api: client, validate: validate, notifier: notifier, logger: logger, now: time.Now}
}

// LessonsOn lists a class's concrete lessons on one date so the user can
// pick the move source for the Slot scope. The date is addressed through
// the daily windowed fetch as an offset from today.
func (f *MoveMakeupFlow) LessonsOn(ctx context.Context, classCode, date string) ([]models.TimetableEntry, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, reject(f.notifier, appErrors.ErrValidation.Message)
	}

	window, err := f.api.FetchWindow(ctx, api.WindowQuery{
		Option:  models.OptionDaily,
		Current: daysBetween(f.now(), day),
		Type:    models.FilterClass,
		Code:    classCode,
	})
	if err != nil {
		f.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	return window.Entries, nil
}

// SelectLesson stores the chosen move source and returns its current time
// slot, which the dialog back-fills as the default new slot.
func (f *MoveMakeupFlow) SelectLesson(entry models.TimetableEntry) int {
	f.source = &entry
	return entry.TimeSlotID
}

// Submit validates the form and issues the single mutation both the move
// and the makeup variants funnel through.
func (f *MoveMakeupFlow) Submit(ctx context.Context, form MoveForm) error {
	if err := f.validate.Struct(form); err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}

	newDate, _ := models.ParseDate(form.NewDate)
	if newDate.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Ngày mới phải ở trong tương lai")
	}

	if form.Scope == ScopeSlot {
		if f.source == nil {
			return reject(f.notifier, "Vui lòng chọn tiết học cần dời")
		}
		if form.NewTimeSlotID == 0 {
			return reject(f.notifier, "Vui lòng chọn tiết mới")
		}
		result, err := f.api.MoveEntry(ctx, api.MoveEntryRequest{
			Code:          f.source.ClassCode,
			OldDate:       f.source.Date,
			NewDate:       form.NewDate,
			OldTimeSlotID: f.source.TimeSlotID,
			NewTimeSlotID: form.NewTimeSlotID,
			IsMove:        form.IsMove,
		})
		if err == nil && result.Success {
			f.source = nil
		}
		return finish(f.notifier, result, err)
	}

	result, err := f.api.MoveScope(ctx, api.MoveScopeRequest{
		Scope:   string(form.Scope),
		Code:    form.Code,
		OldDate: form.OldDate,
		NewDate: form.NewDate,
		IsMove:  form.IsMove,
	})
	return finish(f.notifier, result, err)
}
