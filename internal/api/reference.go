package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hocvien-dev/timetable-console/internal/models"
)

// TimeSlots returns the fixed period ordering of a day.
func (c *Client) TimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := c.do(ctx, http.MethodGet, "reference.time_slots", "/time-slots", nil, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Classes lists every class selectable as a filter option.
func (c *Client) Classes(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := c.do(ctx, http.MethodGet, "reference.classes", "/classes", nil, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Teachers lists all teachers.
func (c *Client) Teachers(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := c.do(ctx, http.MethodGet, "reference.teachers", "/teachers", nil, nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// AvailableTeachers lists teachers free for an exact (class, subject, date,
// slot) tuple; the server excludes anyone already booked.
func (c *Client) AvailableTeachers(ctx context.Context, classCode, subjectCode, date string, timeSlotID int) ([]models.Teacher, error) {
	query := url.Values{}
	query.Set("class_code", classCode)
	query.Set("subject_code", subjectCode)
	query.Set("date", date)
	query.Set("time_slot_id", intQuery(timeSlotID))
	var teachers []models.Teacher
	if err := c.do(ctx, http.MethodGet, "reference.teachers_available", "/teachers/available", query, nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// TeachersForEntry lists teachers who could take over one specific lesson
// occurrence.
func (c *Client) TeachersForEntry(ctx context.Context, entryID string) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := c.do(ctx, http.MethodGet, "reference.teachers_for_entry", "/timetables/"+pathEscape(entryID)+"/teachers", nil, nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// Rooms lists all rooms.
func (c *Client) Rooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.do(ctx, http.MethodGet, "reference.rooms", "/rooms", nil, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// RoomsForEntry lists rooms free for one specific lesson occurrence.
func (c *Client) RoomsForEntry(ctx context.Context, entryID string) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.do(ctx, http.MethodGet, "reference.rooms_for_entry", "/timetables/"+pathEscape(entryID)+"/rooms", nil, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SubjectsByClass lists the subjects taught in one class.
func (c *Client) SubjectsByClass(ctx context.Context, classCode string) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := c.do(ctx, http.MethodGet, "reference.subjects", "/classes/"+pathEscape(classCode)+"/subjects", nil, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Semesters lists every semester.
func (c *Client) Semesters(ctx context.Context) ([]models.Semester, error) {
	var semesters []models.Semester
	if err := c.do(ctx, http.MethodGet, "reference.semesters", "/semesters", nil, nil, &semesters); err != nil {
		return nil, err
	}
	return semesters, nil
}

// SemesterRequest creates or updates a semester.
type SemesterRequest struct {
	SemesterName string `json:"semester_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// CreateSemester adds a semester.
func (c *Client) CreateSemester(ctx context.Context, req SemesterRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, "semesters.create", "/semesters", req)
}

// UpdateSemester edits a semester.
func (c *Client) UpdateSemester(ctx context.Context, id string, req SemesterRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPut, "semesters.update", "/semesters/"+pathEscape(id), req)
}

// DeleteSemester removes a semester.
func (c *Client) DeleteSemester(ctx context.Context, id string) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodDelete, "semesters.delete", "/semesters/"+pathEscape(id), nil)
}

// DatesInUse lists the dates of a semester already covered by an applied
// schedule; date pickers exclude them.
func (c *Client) DatesInUse(ctx context.Context, semesterID string) ([]string, error) {
	var dates []string
	if err := c.do(ctx, http.MethodGet, "semesters.dates_in_use", "/semesters/"+pathEscape(semesterID)+"/dates-in-use", nil, nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// Configurations lists the flat settings table.
func (c *Client) Configurations(ctx context.Context) ([]models.Configuration, error) {
	var items []models.Configuration
	if err := c.do(ctx, http.MethodGet, "configurations.list", "/configurations", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateConfiguration edits one settings entry.
func (c *Client) UpdateConfiguration(ctx context.Context, name, value string) (*MutationResult, error) {
	body := map[string]string{"value": value}
	return c.mutate(ctx, http.MethodPut, "configurations.update", "/configurations/"+pathEscape(name), body)
}
