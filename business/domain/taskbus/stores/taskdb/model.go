package taskdb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus"
)

type taskDB struct {
	ID          uuid.UUID     `db:"id"`
	WorkspaceID uuid.UUID     `db:"workspace_id"`
	ProjectID   uuid.UUID     `db:"project_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Status      string        `db:"status"`
	Priority    string        `db:"priority"`
	AssigneeID  uuid.NullUUID `db:"assignee_id"`
	DueDate     sql.NullTime  `db:"due_date"`
	CreatedAt   time.Time     `db:"date_created"`
	UpdatedAt   time.Time     `db:"date_updated"`
}

func toDBTask(bus taskbus.Task) taskDB {
	db := taskDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		ProjectID:   bus.ProjectID,
		Title:       bus.Title,
		Description: bus.Description,
		Status:      bus.Status,
		Priority:    bus.Priority,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.AssigneeID != nil {
		db.AssigneeID = uuid.NullUUID{UUID: *bus.AssigneeID, Valid: true}
	}

	if bus.DueDate != nil {
		db.DueDate = sql.NullTime{Time: bus.DueDate.UTC(), Valid: true}
	}

	return db
}

func toBusTask(db taskDB) taskbus.Task {
	bus := taskbus.Task{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		ProjectID:   db.ProjectID,
		Title:       db.Title,
		Description: db.Description,
		Status:      db.Status,
		Priority:    db.Priority,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.AssigneeID.Valid {
		id := db.AssigneeID.UUID
		bus.AssigneeID = &id
	}

	if db.DueDate.Valid {
		t := db.DueDate.Time.In(time.Local)
		bus.DueDate = &t
	}

	return bus
}

func toBusTasks(dbs []taskDB) []taskbus.Task {
	bus := make([]taskbus.Task, len(dbs))
	for i, db := range dbs {
		bus[i] = toBusTask(db)
	}
	return bus
}

// =============================================================================

type attachmentDB struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	TaskID      uuid.UUID `db:"task_id"`
	FileName    string    `db:"file_name"`
	FileURL     string    `db:"file_url"`
	SizeBytes   int64     `db:"size_bytes"`
	CreatedAt   time.Time `db:"date_created"`
}

func toDBAttachment(bus taskbus.Attachment) attachmentDB {
	return attachmentDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		TaskID:      bus.TaskID,
		FileName:    bus.FileName,
		FileURL:     bus.FileURL,
		SizeBytes:   bus.SizeBytes,
		CreatedAt:   bus.CreatedAt.UTC(),
	}
}

func toBusAttachment(db attachmentDB) taskbus.Attachment {
	return taskbus.Attachment{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		TaskID:      db.TaskID,
		FileName:    db.FileName,
		FileURL:     db.FileURL,
		SizeBytes:   db.SizeBytes,
		CreatedAt:   db.CreatedAt.In(time.Local),
	}
}

func toBusAttachments(dbs []attachmentDB) []taskbus.Attachment {
	bus := make([]taskbus.Attachment, len(dbs))
	for i, db := range dbs {
		bus[i] = toBusAttachment(db)
	}
	return bus
}
