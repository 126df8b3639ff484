package timeapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/timebus"
)

// TimeEntry represents tracked time against a project.
type TimeEntry struct {
	ID              string `json:"id"`
	ProjectID       string `json:"projectId"`
	TaskID          string `json:"taskId,omitempty"`
	UserID          string `json:"userId"`
	Description     string `json:"description"`
	StartedAt       string `json:"startedAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Billable        bool   `json:"billable"`
	DateCreated     string `json:"dateCreated"`
	DateUpdated     string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (t TimeEntry) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppTimeEntry(bus timebus.TimeEntry) TimeEntry {
	app := TimeEntry{
		ID:              bus.ID.String(),
		ProjectID:       bus.ProjectID.String(),
		UserID:          bus.UserID.String(),
		Description:     bus.Description,
		StartedAt:       bus.StartedAt.Format(time.RFC3339),
		DurationMinutes: bus.DurationMinutes,
		Billable:        bus.Billable,
		DateCreated:     bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:     bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.TaskID != nil {
		app.TaskID = bus.TaskID.String()
	}

	return app
}

// TimeEntries is the list form of TimeEntry.
type TimeEntries []TimeEntry

// Encode implements the web.Encoder interface.
func (ts TimeEntries) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ts)
	return data, "application/json", err
}

func toAppTimeEntries(ents []timebus.TimeEntry) TimeEntries {
	app := make(TimeEntries, len(ents))
	for i, ent := range ents {
		app[i] = toAppTimeEntry(ent)
	}
	return app
}

// NewTimeEntry defines the data needed to add a new time entry.
type NewTimeEntry struct {
	ProjectID       string `json:"projectId" validate:"required,uuid"`
	TaskID          string `json:"taskId" validate:"omitempty,uuid"`
	Description     string `json:"description"`
	StartedAt       string `json:"startedAt" validate:"required"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
	Billable        bool   `json:"billable"`
}

// Decode implements the web.Decoder interface.
func (app *NewTimeEntry) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTimeEntry) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewTimeEntry(app NewTimeEntry) (timebus.NewTimeEntry, error) {
	projectID, err := uuid.Parse(app.ProjectID)
	if err != nil {
		return timebus.NewTimeEntry{}, fmt.Errorf("parse project id: %w", err)
	}

	var taskID *uuid.UUID
	if app.TaskID != "" {
		id, err := uuid.Parse(app.TaskID)
		if err != nil {
			return timebus.NewTimeEntry{}, fmt.Errorf("parse task id: %w", err)
		}
		taskID = &id
	}

	startedAt, err := time.Parse(time.RFC3339, app.StartedAt)
	if err != nil {
		return timebus.NewTimeEntry{}, fmt.Errorf("parse started at: %w", err)
	}

	bus := timebus.NewTimeEntry{
		ProjectID:       projectID,
		TaskID:          taskID,
		Description:     app.Description,
		StartedAt:       startedAt,
		DurationMinutes: app.DurationMinutes,
		Billable:        app.Billable,
	}

	return bus, nil
}

// UpdateTimeEntry defines the data needed to update a time entry.
type UpdateTimeEntry struct {
	Description     *string `json:"description"`
	StartedAt       *string `json:"startedAt"`
	DurationMinutes *int    `json:"durationMinutes" validate:"omitempty,gt=0"`
	Billable        *bool   `json:"billable"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTimeEntry) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTimeEntry) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateTimeEntry(app UpdateTimeEntry) (timebus.UpdateTimeEntry, error) {
	var startedAt *time.Time
	if app.StartedAt != nil {
		t, err := time.Parse(time.RFC3339, *app.StartedAt)
		if err != nil {
			return timebus.UpdateTimeEntry{}, fmt.Errorf("parse started at: %w", err)
		}
		startedAt = &t
	}

	bus := timebus.UpdateTimeEntry{
		Description:     app.Description,
		StartedAt:       startedAt,
		DurationMinutes: app.DurationMinutes,
		Billable:        app.Billable,
	}

	return bus, nil
}
