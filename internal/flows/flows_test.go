package flows

import (
	"context"
	"time"

	"github.com/hocvien-dev/timetable-console/internal/api"
	"github.com/hocvien-dev/timetable-console/internal/models"
)

// fixedNow anchors every clock-sensitive test: a Friday, so "tomorrow" is
// 2024-03-02.
func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
}

type apiStub struct {
	templates  []models.ScheduleTemplate
	datesInUse []string
	window     *models.Window
	subjects   []models.Subject
	teachers   []models.Teacher
	configs    []models.Configuration
	err        error
	mutation   *api.MutationResult

	applies       []api.ApplyRangeRequest
	removes       [][2]string
	windowQueries []api.WindowQuery
	moveEntries   []api.MoveEntryRequest
	moveScopes    []api.MoveScopeRequest
	holidays      []api.HolidayRequest
	added         []api.AddBySlotRequest
	created       []api.SemesterRequest
	updated       []string
	deleted       []string
	configSets    [][2]string
}

func (s *apiStub) result() (*api.MutationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.mutation != nil {
		return s.mutation, nil
	}
	return &api.MutationResult{Success: true, Description: "Thành công"}, nil
}

func (s *apiStub) ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error) {
	return s.templates, s.err
}

func (s *apiStub) DatesInUse(ctx context.Context, semesterID string) ([]string, error) {
	return s.datesInUse, s.err
}

func (s *apiStub) ApplyRange(ctx context.Context, req api.ApplyRangeRequest) (*api.MutationResult, error) {
	s.applies = append(s.applies, req)
	return s.result()
}

func (s *apiStub) RemoveRange(ctx context.Context, beginDate, endDate string) (*api.MutationResult, error) {
	s.removes = append(s.removes, [2]string{beginDate, endDate})
	return s.result()
}

func (s *apiStub) FetchWindow(ctx context.Context, q api.WindowQuery) (*models.Window, error) {
	s.windowQueries = append(s.windowQueries, q)
	if s.err != nil {
		return nil, s.err
	}
	return s.window, nil
}

func (s *apiStub) MoveEntry(ctx context.Context, req api.MoveEntryRequest) (*api.MutationResult, error) {
	s.moveEntries = append(s.moveEntries, req)
	return s.result()
}

func (s *apiStub) MoveScope(ctx context.Context, req api.MoveScopeRequest) (*api.MutationResult, error) {
	s.moveScopes = append(s.moveScopes, req)
	return s.result()
}

func (s *apiStub) MarkHoliday(ctx context.Context, req api.HolidayRequest) (*api.MutationResult, error) {
	s.holidays = append(s.holidays, req)
	return s.result()
}

func (s *apiStub) SubjectsByClass(ctx context.Context, classCode string) ([]models.Subject, error) {
	return s.subjects, s.err
}

func (s *apiStub) AvailableTeachers(ctx context.Context, classCode, subjectCode, date string, timeSlotID int) ([]models.Teacher, error) {
	return s.teachers, s.err
}

func (s *apiStub) AddBySlot(ctx context.Context, req api.AddBySlotRequest) (*api.MutationResult, error) {
	s.added = append(s.added, req)
	return s.result()
}

func (s *apiStub) CreateSemester(ctx context.Context, req api.SemesterRequest) (*api.MutationResult, error) {
	s.created = append(s.created, req)
	return s.result()
}

func (s *apiStub) UpdateSemester(ctx context.Context, id string, req api.SemesterRequest) (*api.MutationResult, error) {
	s.updated = append(s.updated, id)
	return s.result()
}

func (s *apiStub) DeleteSemester(ctx context.Context, id string) (*api.MutationResult, error) {
	s.deleted = append(s.deleted, id)
	return s.result()
}

func (s *apiStub) Configurations(ctx context.Context) ([]models.Configuration, error) {
	return s.configs, s.err
}

func (s *apiStub) UpdateConfiguration(ctx context.Context, name, value string) (*api.MutationResult, error) {
	s.configSets = append(s.configSets, [2]string{name, value})
	return s.result()
}

type notifierStub struct {
	successes []string
	warnings  []string
	errors    []string
}

func (n *notifierStub) Success(message string) { n.successes = append(n.successes, message) }
func (n *notifierStub) Warning(message string) { n.warnings = append(n.warnings, message) }
func (n *notifierStub) Error(message string)   { n.errors = append(n.errors, message) }
