package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hocvien-dev/timetable-console/internal/models"
)

// ListTemplates returns every schedule template.
func (c *Client) ListTemplates(ctx context.Context) ([]models.ScheduleTemplate, error) {
	var templates []models.ScheduleTemplate
	if err := c.do(ctx, http.MethodGet, "schedules.list", "/schedules", nil, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GenerateTemplateRequest asks the server to build a new template for a
// semester. The generation algorithm itself is server-side.
type GenerateTemplateRequest struct {
	ScheduleName string `json:"schedule_name"`
	SemesterID   string `json:"semester_id"`
}

// GenerateTemplate requests server-side template generation.
func (c *Client) GenerateTemplate(ctx context.Context, req GenerateTemplateRequest) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, "schedules.generate", "/schedules/generate", req)
}

// RenameTemplate changes a template's display name.
func (c *Client) RenameTemplate(ctx context.Context, id, name string) (*MutationResult, error) {
	body := map[string]string{"schedule_name": name}
	return c.mutate(ctx, http.MethodPut, "schedules.rename", "/schedules/"+pathEscape(id)+"/name", body)
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodDelete, "schedules.delete", "/schedules/"+pathEscape(id), nil)
}

// TemplateDetails loads the recurring slots of a template, optionally
// narrowed by filter type and code. An empty code with a non-All type
// behaves as All until a code is chosen.
func (c *Client) TemplateDetails(ctx context.Context, scheduleID string, ftype models.FilterType, code string) ([]models.ScheduleDetail, error) {
	query := url.Values{}
	query.Set("type", string(ftype))
	if code != "" {
		query.Set("code", code)
	}
	var details []models.ScheduleDetail
	if err := c.do(ctx, http.MethodGet, "schedules.details", "/schedules/"+pathEscape(scheduleID)+"/details", query, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// MoveSlotRequest relocates a recurring template slot to another grid cell.
type MoveSlotRequest struct {
	ScheduleID    string `json:"schedule_id"`
	Code          string `json:"code"`
	Type          string `json:"type"`
	OldDayOfWeek  int    `json:"old_day_of_week"`
	NewDayOfWeek  int    `json:"new_day_of_week"`
	OldTimeSlotID int    `json:"old_time_slot_id"`
	NewTimeSlotID int    `json:"new_time_slot_id"`
}

// MoveSlot moves a template slot between cells of the weekly grid.
func (c *Client) MoveSlot(ctx context.Context, req MoveSlotRequest) (*MutationResult, error) {
	req.Type = "Slot"
	return c.mutate(ctx, http.MethodPost, "schedules.move", "/schedules/move", req)
}
