package models

import "time"

// FilterType narrows which rows a detail or windowed fetch returns.
type FilterType string

const (
	FilterAll     FilterType = "All"
	FilterClass   FilterType = "Class"
	FilterTeacher FilterType = "Teacher"
)

// ScheduleTemplate is a reusable weekly timetable ("Base" schedule).
// At most one template is in use at a time; the server enforces that.
type ScheduleTemplate struct {
	ID           string    `json:"id"`
	ScheduleName string    `json:"schedule_name"`
	SemesterID   string    `json:"semester_id"`
	IsOnUse      bool      `json:"is_on_use"`
	CreatedDate  time.Time `json:"created_date"`
}

// ScheduleDetail is one recurring lesson slot inside a template, keyed by
// (day_of_week, time_slot_id, class_code). Several classes may share the
// same grid cell.
type ScheduleDetail struct {
	ScheduleID      string `json:"schedule_id"`
	DayOfWeek       int    `json:"day_of_week"`
	TimeSlotID      int    `json:"time_slot_id"`
	ClassCode       string `json:"class_code"`
	SubjectCode     string `json:"subject_code"`
	TeacherUserName string `json:"teacher_user_name"`
	RoomCode        string `json:"room_code"`
}
