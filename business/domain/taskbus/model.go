package taskbus

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a unit of work inside a project.
type Task struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask contains information needed to create a new task.
type NewTask struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Priority    string
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// UpdateTask contains information needed to update a task.
type UpdateTask struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// Attachment represents a file attached to a task. Attachments carry
// their own workspace id so they participate in row scoping directly.
type Attachment struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	TaskID      uuid.UUID
	FileName    string
	FileURL     string
	SizeBytes   int64
	CreatedAt   time.Time
}

// NewAttachment contains information needed to attach a file to a task.
type NewAttachment struct {
	TaskID    uuid.UUID
	FileName  string
	FileURL   string
	SizeBytes int64
}
