package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// Day-of-week column labels as rendered on the timetable grid.
var dayLabels = map[int]string{
	1: "Thứ 2",
	2: "Thứ 3",
	3: "Thứ 4",
	4: "Thứ 5",
	5: "Thứ 6",
	6: "Thứ 7",
	7: "Chủ nhật",
}

// ISOWeekday returns the ISO weekday of t, Monday=1 through Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayLabel renders an ISO weekday as its grid column label.
func DayLabel(isoWeekday int) string {
	return dayLabels[isoWeekday]
}

// ParseDayLabel resolves a grid column label back to its ISO weekday.
func ParseDayLabel(label string) (int, error) {
	for iso, l := range dayLabels {
		if l == label {
			return iso, nil
		}
	}
	return 0, fmt.Errorf("unknown day label %q", label)
}

// SameWeekDate computes the date in the same calendar week as current whose
// ISO weekday equals targetWeekday. Dropping a Wednesday lesson onto the
// Monday column yields the Monday of that same week.
func SameWeekDate(current time.Time, targetWeekday int) time.Time {
	return current.AddDate(0, 0, targetWeekday-ISOWeekday(current))
}

// StartOfTomorrow is the minimum selectable date across every flow on the
// scheduling screen: edits never target today or the past.
func StartOfTomorrow(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// ParseDate parses a wire-format date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
