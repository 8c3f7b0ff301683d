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

type addSlotAPI interface {
	SubjectsByClass(ctx context.Context, classCode string) ([]models.Subject, error)
	AvailableTeachers(ctx context.Context, classCode, subjectCode, date string, timeSlotID int) ([]models.Teacher, error)
	AddBySlot(ctx context.Context, req api.AddBySlotRequest) (*api.MutationResult, error)
}

// AddLessonForm is the add-single-lesson dialog's state. Submission
// requires all five fields.
type AddLessonForm struct {
	ClassCode       string `validate:"required"`
	SubjectCode     string `validate:"required"`
	Date            string `validate:"required,datetime=2006-01-02"`
	TimeSlotID      int    `validate:"required,min=1"`
	TeacherUserName string `validate:"required"`
}

// AddLessonFlow chains four dependent selections: class, subject in that
// class, date, time slot. Each selection resets and re-fetches the next.
type AddLessonFlow struct {
	api      addSlotAPI
	validate *validator.Validate
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	classCode   string
	subjectCode string
	date        string
}

// NewAddLessonFlow builds the flow.
func NewAddLessonFlow(client addSlotAPI, validate *validator.Validate, notifier Notifier, logger *zap.Logger) *AddLessonFlow {
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddLessonFlow{api: client, validate: validate, notifier: notifier, logger: logger, now: time.Now}
}

// SelectClass fetches the class's subject list and resets the dependent
// selections.
func (f *AddLessonFlow) SelectClass(ctx context.Context, classCode string) ([]models.Subject, error) {
	subjects, err := f.api.SubjectsByClass(ctx, classCode)
	if err != nil {
		f.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	f.classCode = classCode
	f.subjectCode = ""
	f.date = ""
	return subjects, nil
}

// SelectSubject stores the subject and resets the slot-dependent state.
func (f *AddLessonFlow) SelectSubject(subjectCode string) {
	f.subjectCode = subjectCode
	f.date = ""
}

// SelectDate stores the lesson date.
func (f *AddLessonFlow) SelectDate(date string) error {
	day, err := models.ParseDate(date)
	if err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}
	if day.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Chỉ có thể thêm tiết học trong tương lai")
	}
	f.date = date
	return nil
}

// SelectTimeSlot fetches the teachers available for the exact
// (class, subject, date, slot) tuple.
func (f *AddLessonFlow) SelectTimeSlot(ctx context.Context, timeSlotID int) ([]models.Teacher, error) {
	if f.classCode == "" || f.subjectCode == "" || f.date == "" {
		return nil, reject(f.notifier, "Vui lòng chọn lớp, môn học và ngày trước")
	}
	teachers, err := f.api.AvailableTeachers(ctx, f.classCode, f.subjectCode, f.date, timeSlotID)
	if err != nil {
		f.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	return teachers, nil
}

// Submit validates the completed cascade and creates the lesson.
func (f *AddLessonFlow) Submit(ctx context.Context, form AddLessonForm) error {
	if err := f.validate.Struct(form); err != nil {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}

	day, _ := models.ParseDate(form.Date)
	if day.Before(models.StartOfTomorrow(f.now())) {
		return reject(f.notifier, "Chỉ có thể thêm tiết học trong tương lai")
	}

	result, err := f.api.AddBySlot(ctx, api.AddBySlotRequest{
		ClassCode:       form.ClassCode,
		SubjectCode:     form.SubjectCode,
		Date:            form.Date,
		TimeSlotID:      form.TimeSlotID,
		TeacherUserName: form.TeacherUserName,
	})
	return finish(f.notifier, result, err)
}
