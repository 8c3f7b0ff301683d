package controller

import (
	"context"

	"github.com/hocvien-dev/timetable-console/internal/api"
	"github.com/hocvien-dev/timetable-console/internal/models"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

// DragItem is a lesson cell picked up from the grid, tagged with its
// current coordinates.
type DragItem struct {
	Code       string
	EntryID    string
	TimeSlotID int
	DayOfWeek  int    // Base mode coordinate
	Date       string // Applied/Personal coordinate, wire format
}

// DropTarget is a grid cell tagged with its target coordinates. In
// Applied/Personal mode the column carries a weekday label, not a date;
// the concrete target date is derived from the dragged entry.
type DropTarget struct {
	TimeSlotID int
	DayOfWeek  int    // Base mode
	DayLabel   string // Applied/Personal column label, e.g. "Thứ 2"
}

// TargetDate derives the concrete date a drop would land on: the date in
// the same calendar week as the entry's current date whose weekday matches
// the target column.
func (c *Controller) TargetDate(item DragItem, target DropTarget) (string, error) {
	current, err := models.ParseDate(item.Date)
	if err != nil {
		return "", err
	}
	weekday, err := models.ParseDayLabel(target.DayLabel)
	if err != nil {
		return "", err
	}
	return models.SameWeekDate(current, weekday).Format(models.DateLayout), nil
}

// CanDrop reports whether the target cell differs from the item's current
// position. A drop onto the cell the item already occupies is rejected.
func (c *Controller) CanDrop(item DragItem, target DropTarget) bool {
	c.mu.Lock()
	mode := c.mode
	c.mu.Unlock()

	switch mode {
	case ModeBase:
		return target.TimeSlotID != item.TimeSlotID || target.DayOfWeek != item.DayOfWeek
	case ModeApplied, ModePersonal:
		derived, err := c.TargetDate(item, target)
		if err != nil {
			return false
		}
		return target.TimeSlotID != item.TimeSlotID || derived != item.Date
	default:
		return false
	}
}

// Drop issues the move for an accepted drag. Nothing is patched locally:
// on success the view is re-fetched, on failure the grid keeps showing the
// original position and a notification is raised.
func (c *Controller) Drop(ctx context.Context, item DragItem, target DropTarget) error {
	if !c.CanDrop(item, target) {
		return nil
	}

	c.mu.Lock()
	mode := c.mode
	templateID := c.templateID
	c.mu.Unlock()

	var (
		result *api.MutationResult
		err    error
	)
	switch mode {
	case ModeBase:
		result, err = c.backend.MoveSlot(ctx, api.MoveSlotRequest{
			ScheduleID:    templateID,
			Code:          item.Code,
			OldDayOfWeek:  item.DayOfWeek,
			NewDayOfWeek:  target.DayOfWeek,
			OldTimeSlotID: item.TimeSlotID,
			NewTimeSlotID: target.TimeSlotID,
		})
	case ModeApplied, ModePersonal:
		var newDate string
		newDate, err = c.TargetDate(item, target)
		if err != nil {
			c.notifier.Error(appErrors.GenericMessage)
			return err
		}
		result, err = c.backend.MoveEntry(ctx, api.MoveEntryRequest{
			Code:          item.Code,
			OldDate:       item.Date,
			NewDate:       newDate,
			OldTimeSlotID: item.TimeSlotID,
			NewTimeSlotID: target.TimeSlotID,
			IsMove:        true,
		})
	default:
		return nil
	}

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

// describe falls back to the generic message when the server supplied no
// description.
func describe(description string) string {
	if description == "" {
		return appErrors.GenericMessage
	}
	return description
}
