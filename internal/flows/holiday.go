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

type holidayAPI interface {
	MarkHoliday(ctx context.Context, req api.HolidayRequest) (*api.MutationResult, error)
}

// HolidayForm is the holiday dialog's state; MakeupDate is only meaningful
// for additions.
type HolidayForm struct {
	Operation  string `validate:"required,oneof=Thêm Xóa"`
	Date       string `validate:"required,datetime=2006-01-02"`
	MakeupDate string `validate:"omitempty,datetime=2006-01-02"`
}

// HolidayFlow adds or removes holiday markers.
type HolidayFlow struct {
	api      holidayAPI
	validate *validator.Validate
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewHolidayFlow builds the flow.
func NewHolidayFlow(client holidayAPI, validate *validator.Validate, notifier Notifier, logger *zap.Logger) *HolidayFlow {
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayFlow{api: client, validate: validate, notifier: notifier, logger: logger, now: time.Now}
}

// Submit validates and issues the holiday mutation.
func (f *HolidayFlow) Submit(ctx context.Context, form HolidayForm) error {
	if err := f.validate.Struct(form); err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}

	date, _ := models.ParseDate(form.Date)
	if date.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Ngày nghỉ phải ở trong tương lai")
	}

	req := api.HolidayRequest{Operation: form.Operation, Date: form.Date}
	if form.Operation == api.HolidayAdd && form.MakeupDate != "" {
		makeup, _ := models.ParseDate(form.MakeupDate)
		if makeup.Before(models.StartOfTomorrow(f.now())) {
			return reject(f.notifier, "Ngày học bù phải ở trong tương lai")
		}
		req.MakeupDate = form.MakeupDate
	}

	result, err := f.api.MarkHoliday(ctx, req)
	return finish(f.notifier, result, err)
}
