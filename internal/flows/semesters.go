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

type semesterAPI interface {
	CreateSemester(ctx context.Context, req api.SemesterRequest) (*api.MutationResult, error)
	UpdateSemester(ctx context.Context, id string, req api.SemesterRequest) (*api.MutationResult, error)
	DeleteSemester(ctx context.Context, id string) (*api.MutationResult, error)
}

// SemesterForm is the semester edit dialog's state.
type SemesterForm struct {
	SemesterName string `validate:"required"`
	StartDate    string `validate:"required,datetime=2006-01-02"`
	EndDate      string `validate:"required,datetime=2006-01-02"`
}

// SemesterFlow is the semester CRUD workflow. Semester ranges may not
// reach back to today or earlier; schedule edits never target the past.
type SemesterFlow struct {
	api      semesterAPI
	validate *validator.Validate
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewSemesterFlow builds the flow.
func NewSemesterFlow(client semesterAPI, validate *validator.Validate, notifier Notifier, logger *zap.Logger) *SemesterFlow {
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SemesterFlow{api: client, validate: validate, notifier: notifier, logger: logger, now: time.Now}
}

// Create validates and creates a semester.
func (f *SemesterFlow) Create(ctx context.Context, form SemesterForm) error {
	if err := f.check(form); err != nil {
		return err
	}
	result, err := f.api.CreateSemester(ctx, api.SemesterRequest{
		SemesterName: form.SemesterName,
		StartDate:    form.StartDate,
		EndDate:      form.EndDate,
	})
	return finish(f.notifier, result, err)
}

// Update validates and edits a semester.
func (f *SemesterFlow) Update(ctx context.Context, id string, form SemesterForm) error {
	if err := f.check(form); err != nil {
		return err
	}
	result, err := f.api.UpdateSemester(ctx, id, api.SemesterRequest{
		SemesterName: form.SemesterName,
		StartDate:    form.StartDate,
		EndDate:      form.EndDate,
	})
	return finish(f.notifier, result, err)
}

// Delete removes a semester.
func (f *SemesterFlow) Delete(ctx context.Context, id string) error {
	result, err := f.api.DeleteSemester(ctx, id)
	return finish(f.notifier, result, err)
}

func (f *SemesterFlow) check(form SemesterForm) error {
	if err := f.validate.Struct(form); err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}
	start, _ := models.ParseDate(form.StartDate)
	end, _ := models.ParseDate(form.EndDate)
	if end.Before(start) {
		return reject(f.notifier, "Ngày bắt đầu phải trước ngày kết thúc")
	}
	if start.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Học kỳ phải bắt đầu từ ngày mai trở đi")
	}
	return nil
}
