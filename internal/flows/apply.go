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

type applyAPI interface {
	ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error)
	DatesInUse(ctx context.Context, semesterID string) ([]string, error)
	ApplyRange(ctx context.Context, req api.ApplyRangeRequest) (*api.MutationResult, error)
}

// ApplyForm is the apply-schedule dialog's state.
type ApplyForm struct {
	ScheduleID  string `validate:"required"`
	BeginDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"required,datetime=2006-01-02"`
	ForceAssign bool
}

// ApplyFlow materializes a template over a date range within a semester.
type ApplyFlow struct {
	api      applyAPI
	validate *validator.Validate
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	semester   *models.Semester
	datesInUse map[string]bool
}

// NewApplyFlow builds the flow.
func NewApplyFlow(client applyAPI, validate *validator.Validate, notifier Notifier, logger *zap.Logger) *ApplyFlow {
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplyFlow{api: client, validate: validate, notifier: notifier, logger: logger, now: time.Now}
}

// SelectSemester loads the semester's dates already in use so the date
// pickers can exclude them.
func (f *ApplyFlow) SelectSemester(ctx context.Context, semester models.Semester) error {
	dates, err := f.api.DatesInUse(ctx, semester.ID)
	if err != nil {
		f.notifier.Error(appErrors.FromError(err).Message)
		return err
	}

	inUse := make(map[string]bool, len(dates))
	for _, d := range dates {
		inUse[d] = true
	}
	f.semester = &semester
	f.datesInUse = inUse
	return nil
}

// Templates lists the templates belonging to the selected semester.
func (f *ApplyFlow) Templates(ctx context.Context) ([]models.ScheduleTemplate, error) {
	if f.semester == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Vui lòng chọn học kỳ trước")
	}
	all, err := f.api.ListTemplates(ctx)
	if err != nil {
		f.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	filtered := make([]models.ScheduleTemplate, 0, len(all))
	for _, t := range all {
		if t.SemesterID == f.semester.ID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// DatesInUse exposes the excluded dates for the pickers.
func (f *ApplyFlow) DatesInUse() map[string]bool {
	return f.datesInUse
}

// Submit validates the form and applies the template. Preconditions the
// pickers already enforce are re-checked here: begin before end, both
// endpoints outside the in-use set, both inside the semester span, neither
// earlier than tomorrow.
func (f *ApplyFlow) Submit(ctx context.Context, form ApplyForm) error {
	if f.semester == nil {
		return reject(f.notifier, "Vui lòng chọn học kỳ trước")
	}
	if err := f.validate.Struct(form); err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}

	begin, _ := models.ParseDate(form.BeginDate)
	end, _ := models.ParseDate(form.EndDate)

	if end.Before(begin) {
		return reject(f.notifier, "Ngày bắt đầu phải trước ngày kết thúc")
	}
	if begin.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Không thể áp dụng cho ngày trong quá khứ")
	}
	if f.datesInUse[form.BeginDate] || f.datesInUse[form.EndDate] {
		return reject(f.notifier, "Ngày đã được sử dụng bởi một thời khoá biểu khác")
	}
	if start, err := models.ParseDate(f.semester.StartDate); err == nil && begin.Before(start) {
		return reject(f.notifier, "Ngày bắt đầu nằm ngoài học kỳ")
	}
	if stop, err := models.ParseDate(f.semester.EndDate); err == nil && end.After(stop) {
		return reject(f.notifier, "Ngày kết thúc nằm ngoài học kỳ")
	}

	result, err := f.api.ApplyRange(ctx, api.ApplyRangeRequest{
		ScheduleID:  form.ScheduleID,
		BeginDate:   form.BeginDate,
		EndDate:     form.EndDate,
		ForceAssign: form.ForceAssign,
	})
	return finish(f.notifier, result, err)
}
