package taskapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus"
)

// Task represents a unit of work inside a project.
type Task struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  string `json:"assigneeId,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (t Task) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppTask(bus taskbus.Task) Task {
	app := Task{
		ID:          bus.ID.String(),
		ProjectID:   bus.ProjectID.String(),
		Title:       bus.Title,
		Description: bus.Description,
		Status:      bus.Status,
		Priority:    bus.Priority,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.AssigneeID != nil {
		app.AssigneeID = bus.AssigneeID.String()
	}

	if bus.DueDate != nil {
		app.DueDate = bus.DueDate.Format(time.RFC3339)
	}

	return app
}

// Tasks is the list form of Task.
type Tasks []Task

// Encode implements the web.Encoder interface.
func (ts Tasks) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ts)
	return data, "application/json", err
}

func toAppTasks(tsks []taskbus.Task) Tasks {
	app := make(Tasks, len(tsks))
	for i, tsk := range tsks {
		app[i] = toAppTask(tsk)
	}
	return app
}

// NewTask defines the data needed to add a new task.
type NewTask struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssigneeID  string `json:"assigneeId" validate:"omitempty,uuid"`
	DueDate     string `json:"dueDate"`
}

// Decode implements the web.Decoder interface.
func (app *NewTask) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTask) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewTask(app NewTask, projectID uuid.UUID) (taskbus.NewTask, error) {
	var assigneeID *uuid.UUID
	if app.AssigneeID != "" {
		id, err := uuid.Parse(app.AssigneeID)
		if err != nil {
			return taskbus.NewTask{}, fmt.Errorf("parse assignee id: %w", err)
		}
		assigneeID = &id
	}

	var dueDate *time.Time
	if app.DueDate != "" {
		t, err := time.Parse(time.RFC3339, app.DueDate)
		if err != nil {
			return taskbus.NewTask{}, fmt.Errorf("parse due date: %w", err)
		}
		dueDate = &t
	}

	bus := taskbus.NewTask{
		ProjectID:   projectID,
		Title:       app.Title,
		Description: app.Description,
		Priority:    app.Priority,
		AssigneeID:  assigneeID,
		DueDate:     dueDate,
	}

	return bus, nil
}

// UpdateTask defines the data needed to update a task.
type UpdateTask struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW DONE"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssigneeID  *string `json:"assigneeId" validate:"omitempty,uuid"`
	DueDate     *string `json:"dueDate"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTask) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTask) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateTask(app UpdateTask) (taskbus.UpdateTask, error) {
	var assigneeID *uuid.UUID
	if app.AssigneeID != nil {
		id, err := uuid.Parse(*app.AssigneeID)
		if err != nil {
			return taskbus.UpdateTask{}, fmt.Errorf("parse assignee id: %w", err)
		}
		assigneeID = &id
	}

	var dueDate *time.Time
	if app.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *app.DueDate)
		if err != nil {
			return taskbus.UpdateTask{}, fmt.Errorf("parse due date: %w", err)
		}
		dueDate = &t
	}

	bus := taskbus.UpdateTask{
		Title:       app.Title,
		Description: app.Description,
		Status:      app.Status,
		Priority:    app.Priority,
		AssigneeID:  assigneeID,
		DueDate:     dueDate,
	}

	return bus, nil
}

// Attachment represents a file attached to a task.
type Attachment struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	SizeBytes   int64  `json:"sizeBytes"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (a Attachment) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}

func toAppAttachment(bus taskbus.Attachment) Attachment {
	return Attachment{
		ID:          bus.ID.String(),
		TaskID:      bus.TaskID.String(),
		FileName:    bus.FileName,
		FileURL:     bus.FileURL,
		SizeBytes:   bus.SizeBytes,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// Attachments is the list form of Attachment.
type Attachments []Attachment

// Encode implements the web.Encoder interface.
func (as Attachments) Encode() ([]byte, string, error) {
	data, err := json.Marshal(as)
	return data, "application/json", err
}

func toAppAttachments(atts []taskbus.Attachment) Attachments {
	app := make(Attachments, len(atts))
	for i, att := range atts {
		app[i] = toAppAttachment(att)
	}
	return app
}

// NewAttachment defines the data needed to attach a file to a task.
type NewAttachment struct {
	FileName  string `json:"fileName" validate:"required"`
	FileURL   string `json:"fileUrl" validate:"required,url"`
	SizeBytes int64  `json:"sizeBytes" validate:"gte=0"`
}

// Decode implements the web.Decoder interface.
func (app *NewAttachment) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewAttachment) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewAttachment(app NewAttachment, taskID uuid.UUID) taskbus.NewAttachment {
	return taskbus.NewAttachment{
		TaskID:    taskID,
		FileName:  app.FileName,
		FileURL:   app.FileURL,
		SizeBytes: app.SizeBytes,
	}
}
