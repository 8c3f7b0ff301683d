package models

// EntryStatus is the server-authoritative lifecycle state of a materialized
// lesson. The client only requests transitions and reconciles on success.
type EntryStatus string

const (
	StatusNotYetOccurred EntryStatus = "Chưa diễn ra"
	StatusUpcoming       EntryStatus = "Sắp diễn ra"
	StatusInProgress     EntryStatus = "Đang học"
	StatusAbsent         EntryStatus = "Vắng mặt"
	StatusCompleted      EntryStatus = "Hoàn thành"
	StatusLate           EntryStatus = "Trễ"
	StatusOnLeave        EntryStatus = "Đã xin nghỉ"
	StatusCancelled      EntryStatus = "Đã bị huỷ"
	StatusHoliday        EntryStatus = "Nghỉ lễ"
)

// Editable reports whether teacher/room reassignment is still allowed.
func (s EntryStatus) Editable() bool {
	return s == StatusNotYetOccurred
}

// TimetableEntry is a materialized lesson occurrence on a concrete date,
// produced by applying a template over a range or by ad-hoc slot addition.
type TimetableEntry struct {
	ID              string      `json:"id"`
	Date            string      `json:"date"`
	DayOfWeek       int         `json:"day_of_week"`
	TimeSlotID      int         `json:"time_slot_id"`
	ClassCode       string      `json:"class_code"`
	SubjectCode     string      `json:"subject_code"`
	TeacherUserName string      `json:"teacher_user_name"`
	RoomCode        string      `json:"room_code"`
	Status          EntryStatus `json:"status"`
	CheckInTime     string      `json:"check_in_time,omitempty"`
	CheckInPath     string      `json:"check_in_path,omitempty"`
	CheckOutTime    string      `json:"check_out_time,omitempty"`
	CheckOutPath    string      `json:"check_out_path,omitempty"`
	Feedback        string      `json:"feedback,omitempty"`
	Duration        int         `json:"duration,omitempty"`
	IsHoliday       bool        `json:"is_holiday"`
}

// WindowOption selects the date grouping of a windowed fetch.
type WindowOption string

const (
	OptionWeekly WindowOption = "Weekly"
	OptionDaily  WindowOption = "Daily"
)

// Pagination is the envelope the server returns with every windowed fetch.
// Current is a signed offset relative to the present window, not a page
// number.
type Pagination struct {
	Current  int `json:"current"`
	Last     int `json:"last"`
	Next     int `json:"next"`
	Previous int `json:"previous"`
	Total    int `json:"total"`
}

// Window is one fetched slice of the materialized timetable.
type Window struct {
	Entries     []TimetableEntry `json:"data_set"`
	Description string           `json:"description"`
	Pagination  Pagination       `json:"pagination"`
}
