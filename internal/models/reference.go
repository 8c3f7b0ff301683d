package models

// TimeSlot is one ordinal period of a day, shared by templates and entries.
type TimeSlot struct {
	ID        int    `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Semester bounds the ranges a template may be applied to.
type Semester struct {
	ID           string `json:"id"`
	SemesterName string `json:"semester_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// Class is a filter/selection option; never mutated by the controller.
type Class struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Teacher is a selection option; availability is scoped server-side.
type Teacher struct {
	UserName    string `json:"user_name"`
	FullName    string `json:"full_name"`
	IsAvailable bool   `json:"is_available"`
}

// Room is a selection option for lesson reassignment.
type Room struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"is_available"`
}

// Subject is scoped to a class when listed for the add-lesson cascade.
type Subject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Configuration is one flat settings entry grouped by application tag.
// Restricted entries cannot be edited.
type Configuration struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Value        string `json:"value"`
	Application  string `json:"application"`
	IsRestricted bool   `json:"is_restricted"`
}
