package controller

import (
	"context"

	"github.com/hocvien-dev/timetable-console/internal/models"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

// SlotDetail is the modal listing every entry sharing one grid cell, e.g.
// split classes taught concurrently.
type SlotDetail struct {
	Date       string
	TimeSlotID int
	Entries    []models.TimetableEntry
}

// OpenSlotDetail collects the entries of one cell from the loaded window
// and opens the detail modal.
func (c *Controller) OpenSlotDetail(date string, timeSlotID int) *SlotDetail {
	c.mu.Lock()
	defer c.mu.Unlock()

	detail := &SlotDetail{Date: date, TimeSlotID: timeSlotID}
	for _, row := range c.rows {
		if row.Date == date && row.TimeSlotID == timeSlotID {
			detail.Entries = append(detail.Entries, row)
		}
	}
	c.modal = detail
	return detail
}

// SlotDetailState returns the open modal, or nil.
func (c *Controller) SlotDetailState() *SlotDetail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// CloseSlotDetail dismisses the modal.
func (c *Controller) CloseSlotDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = nil
}

// CanReassign reports whether a modal entry still accepts teacher/room
// changes. The edit affordance is hidden otherwise, and the guard below
// refuses the request regardless.
func (c *Controller) CanReassign(entryID string) bool {
	entry := c.modalEntry(entryID)
	return entry != nil && entry.Status.Editable()
}

// TeacherOptions loads the teachers able to take over one lesson instance.
// Availability is scoped server-side so anyone already booked at that slot
// is excluded.
func (c *Controller) TeacherOptions(ctx context.Context, entryID string) ([]models.Teacher, error) {
	teachers, err := c.backend.TeachersForEntry(ctx, entryID)
	if err != nil {
		c.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	return teachers, nil
}

// RoomOptions loads the rooms free for one lesson instance.
func (c *Controller) RoomOptions(ctx context.Context, entryID string) ([]models.Room, error) {
	rooms, err := c.backend.RoomsForEntry(ctx, entryID)
	if err != nil {
		c.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	return rooms, nil
}

// ReassignTeacher changes the teacher of one not-yet-occurred lesson. On
// success the modal entry is patched in place (the change is confirmed by
// the same response) and the broader view refreshed separately.
func (c *Controller) ReassignTeacher(ctx context.Context, entryID, teacherUserName string) error {
	if err := c.requireEditable(entryID); err != nil {
		return err
	}

	result, err := c.backend.ChangeTeacher(ctx, entryID, teacherUserName)
	if err != nil {
		c.notifier.Error(appErrors.FromError(err).Message)
		return err
	}
	if !result.Success {
		c.notifier.Error(describe(result.Description))
		return appErrors.Clone(appErrors.ErrRejected, result.Description)
	}

	c.patchModalEntry(entryID, func(entry *models.TimetableEntry) {
		entry.TeacherUserName = teacherUserName
	})
	c.notifier.Success(describe(result.Description))
	return c.Refresh(ctx)
}

// ReassignRoom changes the room of one not-yet-occurred lesson.
func (c *Controller) ReassignRoom(ctx context.Context, entryID, roomCode string) error {
	if err := c.requireEditable(entryID); err != nil {
		return err
	}

	result, err := c.backend.ChangeRoom(ctx, entryID, roomCode)
	if err != nil {
		c.notifier.Error(appErrors.FromError(err).Message)
		return err
	}
	if !result.Success {
		c.notifier.Error(describe(result.Description))
		return appErrors.Clone(appErrors.ErrRejected, result.Description)
	}

	c.patchModalEntry(entryID, func(entry *models.TimetableEntry) {
		entry.RoomCode = roomCode
	})
	c.notifier.Success(describe(result.Description))
	return c.Refresh(ctx)
}

// MarkAttendance requests a status transition (on time, late, absent) and
// reconciles by re-fetching; statuses are server-authoritative.
func (c *Controller) MarkAttendance(ctx context.Context, entryID string, status models.EntryStatus) error {
	result, err := c.backend.MarkAttendance(ctx, entryID, status)
	if err != nil {
		c.notifier.Error(appErrors.FromError(err).Message)
		return err
	}
	if !result.Success {
		c.notifier.Error(describe(result.Description))
		return appErrors.Clone(appErrors.ErrRejected, result.Description)
	}

	c.notifier.Success(describe(result.Description))
	return c.Refresh(ctx)
}

func (c *Controller) requireEditable(entryID string) error {
	entry := c.modalEntry(entryID)
	if entry == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy tiết học")
	}
	if !entry.Status.Editable() {
		c.notifier.Warning("Chỉ có thể chỉnh sửa tiết học chưa diễn ra")
		return appErrors.Clone(appErrors.ErrRejected, "Chỉ có thể chỉnh sửa tiết học chưa diễn ra")
	}
	return nil
}

func (c *Controller) modalEntry(entryID string) *models.TimetableEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal == nil {
		return nil
	}
	for i := range c.modal.Entries {
		if c.modal.Entries[i].ID == entryID {
			return &c.modal.Entries[i]
		}
	}
	return nil
}

func (c *Controller) patchModalEntry(entryID string, fn func(*models.TimetableEntry)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal == nil {
		return
	}
	for i := range c.modal.Entries {
		if c.modal.Entries[i].ID == entryID {
			fn(&c.modal.Entries[i])
			return
		}
	}
}
