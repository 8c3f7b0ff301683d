package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hocvien-dev/timetable-console/internal/models"
)

// WindowQuery selects one slice of the materialized timetable. Current is a
// signed offset the server interprets relative to Option.
type WindowQuery struct {
	Option   models.WindowOption
	Current  int
	Personal bool
	Type     models.FilterType
	Code     string
}

// FetchWindow loads one timetable window plus its period label and
// pagination envelope.
func (c *Client) FetchWindow(ctx context.Context, q WindowQuery) (*models.Window, error) {
	query := url.Values{}
	query.Set("option", string(q.Option))
	query.Set("current", intQuery(q.Current))
	if q.Type != "" {
		query.Set("type", string(q.Type))
	}
	if q.Code != "" {
		query.Set("code", q.Code)
	}

	endpoint, path := "timetables.window", "/timetables"
	if q.Personal {
		endpoint, path = "timetables.personal", "/timetables/personal"
	}

	window := &models.Window{}
	if err := c.do(ctx, http.MethodGet, endpoint, path, query, nil, window); err != nil {
		return nil, err
	}
	return window, nil
}

// ApplyRangeRequest materializes a template over an inclusive date range.
type ApplyRangeRequest struct {
	ScheduleID  string `json:"schedule_id"`
	BeginDate   string `json:"begin_date"`
	EndDate     string `json:"end_date"`
	ForceAssign bool   `json:"force_assign"`
}

// ApplyRange applies a template over a date range.
func (c *Client) ApplyRange(ctx context.Context, req ApplyRangeRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, "timetables.apply", "/timetables/apply", req)
}

// RemoveRange deletes every materialized lesson in the inclusive range.
func (c *Client) RemoveRange(ctx context.Context, beginDate, endDate string) (*MutationResult, error) {
	body := map[string]string{"begin_date": beginDate, "end_date": endDate}
	return c.mutate(ctx, http.MethodPost, "timetables.remove_range", "/timetables/remove-range", body)
}

// MoveEntryRequest reschedules (or duplicates, when IsMove is false) a
// concrete lesson occurrence.
type MoveEntryRequest struct {
	Code          string `json:"code"`
	Type          string `json:"type"`
	OldDate       string `json:"old_date"`
	NewDate       string `json:"new_date"`
	OldTimeSlotID int    `json:"old_time_slot_id"`
	NewTimeSlotID int    `json:"new_time_slot_id"`
	IsMove        bool   `json:"is_move"`
}

// MoveEntry moves a materialized lesson to another date/slot, or adds a
// makeup duplicate when IsMove is false.
func (c *Client) MoveEntry(ctx context.Context, req MoveEntryRequest) (*MutationResult, error) {
	req.Type = "Slot"
	return c.mutate(ctx, http.MethodPost, "timetables.move", "/timetables/move", req)
}

// MoveScopeRequest moves every lesson of a class or teacher (or the whole
// school) between two dates.
type MoveScopeRequest struct {
	Scope   string `json:"scope"`
	Code    string `json:"code,omitempty"`
	OldDate string `json:"old_date"`
	NewDate string `json:"new_date"`
	IsMove  bool   `json:"is_move"`
}

// MoveScope performs a bulk move for the All/Class/Teacher scopes.
func (c *Client) MoveScope(ctx context.Context, req MoveScopeRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, "timetables.move_scope", "/timetables/move-scope", req)
}

// AddBySlotRequest creates a single ad-hoc lesson at a concrete slot.
type AddBySlotRequest struct {
	ClassCode       string `json:"class_code"`
	SubjectCode     string `json:"subject_code"`
	Date            string `json:"date"`
	TimeSlotID      int    `json:"time_slot_id"`
	TeacherUserName string `json:"teacher_user_name"`
}

// AddBySlot creates one lesson occurrence at the given slot.
func (c *Client) AddBySlot(ctx context.Context, req AddBySlotRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, "timetables.add_slot", "/timetables/slots", req)
}

// RemoveBySlot deletes one lesson occurrence.
func (c *Client) RemoveBySlot(ctx context.Context, entryID string) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodDelete, "timetables.remove_slot", "/timetables/slots/"+pathEscape(entryID), nil)
}

// ChangeTeacher reassigns the teacher of one lesson occurrence.
func (c *Client) ChangeTeacher(ctx context.Context, entryID, teacherUserName string) (*MutationResult, error) {
	body := map[string]string{"teacher_user_name": teacherUserName}
	return c.mutate(ctx, http.MethodPut, "timetables.change_teacher", "/timetables/"+pathEscape(entryID)+"/teacher", body)
}

// ChangeRoom reassigns the room of one lesson occurrence.
func (c *Client) ChangeRoom(ctx context.Context, entryID, roomCode string) (*MutationResult, error) {
	body := map[string]string{"room_code": roomCode}
	return c.mutate(ctx, http.MethodPut, "timetables.change_room", "/timetables/"+pathEscape(entryID)+"/room", body)
}

// HolidayRequest adds or removes a holiday, optionally with a makeup date.
type HolidayRequest struct {
	Operation  string `json:"operation"`
	Date       string `json:"date"`
	MakeupDate string `json:"makeup_date,omitempty"`
}

// Holiday operation values.
const (
	HolidayAdd    = "Thêm"
	HolidayRemove = "Xóa"
)

// MarkHoliday adds or removes a holiday marker for a date.
func (c *Client) MarkHoliday(ctx context.Context, req HolidayRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, "timetables.holiday", "/timetables/holiday", req)
}

// MarkAttendance requests a server-side status transition for one lesson.
func (c *Client) MarkAttendance(ctx context.Context, entryID string, status models.EntryStatus) (*MutationResult, error) {
	body := map[string]string{"status": string(status)}
	return c.mutate(ctx, http.MethodPut, "timetables.attendance", "/timetables/"+pathEscape(entryID)+"/attendance", body)
}
