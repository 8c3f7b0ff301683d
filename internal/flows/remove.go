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

type removeAPI interface {
	RemoveRange(ctx context.Context, beginDate, endDate string) (*api.MutationResult, error)
}

// RemoveRangeForm is the remove-timetable dialog's state.
type RemoveRangeForm struct {
	BeginDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02"`
}

// RemoveRangeFlow deletes every materialized lesson in an inclusive,
// future-only range.
type RemoveRangeFlow struct {
	api      removeAPI
	validate *validator.Validate
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewRemoveRangeFlow builds the flow.
func NewRemoveRangeFlow(client removeAPI, validate *validator.Validate, notifier Notifier, logger *zap.Logger) *RemoveRangeFlow {
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoveRangeFlow{api: client, validate: validate, notifier: notifier, logger: logger, now: time.Now}
}

// Submit validates and issues the unconditional range deletion.
func (f *RemoveRangeFlow) Submit(ctx context.Context, form RemoveRangeForm) error {
	if err := f.validate.Struct(form); err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}

	begin, _ := models.ParseDate(form.BeginDate)
	end, _ := models.ParseDate(form.EndDate)

	if end.Before(begin) {
		return reject(f.notifier, "Ngày bắt đầu phải trước ngày kết thúc")
	}
	if begin.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Chỉ có thể xoá thời khoá biểu trong tương lai")
	}

	result, err := f.api.RemoveRange(ctx, form.BeginDate, form.EndDate)
	return finish(f.notifier, result, err)
}
