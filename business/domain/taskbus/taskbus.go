// Package taskbus provides business access to the tasks of a workspace
// and their attachments.
package taskbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// ErrNotFound is returned for rows the principal cannot see, whether they
// exist or not.
var ErrNotFound = errors.New("task not found")

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, tsk Task) error
	Update(ctx context.Context, tsk Task) (int64, error)
	Delete(ctx context.Context, tsk Task) (int64, error)
	QueryByProject(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) ([]Task, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, taskID uuid.UUID) (Task, error)
	CreateAttachment(ctx context.Context, att Attachment) error
	DeleteAttachment(ctx context.Context, att Attachment) (int64, error)
	QueryAttachments(ctx context.Context, workspaceID uuid.UUID, taskID uuid.UUID) ([]Attachment, error)
	QueryAttachmentByID(ctx context.Context, workspaceID uuid.UUID, attachmentID uuid.UUID) (Attachment, error)
}

// Core manages the set of APIs for task access.
type Core struct {
	storer Storer
}

// NewCore constructs a task core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the storer with a storer
// that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create adds a new task on behalf of a principal.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nt NewTask) (Task, error) {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Tasks, tenancy.OpInsert, workspaceID) {
		return Task{}, ErrNotFound
	}

	now := time.Now()

	priority := nt.Priority
	if priority == "" {
		priority = "MEDIUM"
	}

	tsk := Task{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ProjectID:   nt.ProjectID,
		Title:       nt.Title,
		Description: nt.Description,
		Status:      "TODO",
		Priority:    priority,
		AssigneeID:  nt.AssigneeID,
		DueDate:     nt.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, tsk); err != nil {
		return Task{}, fmt.Errorf("create: %w", err)
	}

	return tsk, nil
}

// Update modifies a task on behalf of a principal.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, taskID uuid.UUID, ut UpdateTask) (Task, error) {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Tasks, tenancy.OpUpdate, workspaceID) {
		return Task{}, ErrNotFound
	}

	tsk, err := c.storer.QueryByID(ctx, workspaceID, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("query: taskID[%s]: %w", taskID, err)
	}

	if ut.Title != nil {
		tsk.Title = *ut.Title
	}
	if ut.Description != nil {
		tsk.Description = *ut.Description
	}
	if ut.Status != nil {
		tsk.Status = *ut.Status
	}
	if ut.Priority != nil {
		tsk.Priority = *ut.Priority
	}
	if ut.AssigneeID != nil {
		tsk.AssigneeID = ut.AssigneeID
	}
	if ut.DueDate != nil {
		tsk.DueDate = ut.DueDate
	}

	tsk.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, tsk)
	if err != nil {
		return Task{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return Task{}, ErrNotFound
	}

	return tsk, nil
}

// Delete removes a task on behalf of a principal.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, taskID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Tasks, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	tsk, err := c.storer.QueryByID(ctx, workspaceID, taskID)
	if err != nil {
		return fmt.Errorf("query: taskID[%s]: %w", taskID, err)
	}

	affected, err := c.storer.Delete(ctx, tsk)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// QueryByProject retrieves the tasks of a project on behalf of a
// principal.
func (c *Core) QueryByProject(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) ([]Task, error) {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.queryByProject")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Tasks, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	tsks, err := c.storer.QueryByProject(ctx, p, workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return tsks, nil
}

// QueryByID finds the task by the specified ID on behalf of a principal.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, taskID uuid.UUID) (Task, error) {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Tasks, tenancy.OpSelect, workspaceID) {
		return Task{}, ErrNotFound
	}

	tsk, err := c.storer.QueryByID(ctx, workspaceID, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("query: taskID[%s]: %w", taskID, err)
	}

	return tsk, nil
}

// Attach adds an attachment to a task on behalf of a principal.
func (c *Core) Attach(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, na NewAttachment) (Attachment, error) {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.attach")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TaskAttachments, tenancy.OpInsert, workspaceID) {
		return Attachment{}, ErrNotFound
	}

	// The task must be reachable under the same scope.
	if _, err := c.storer.QueryByID(ctx, workspaceID, na.TaskID); err != nil {
		return Attachment{}, fmt.Errorf("query: taskID[%s]: %w", na.TaskID, err)
	}

	att := Attachment{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		TaskID:      na.TaskID,
		FileName:    na.FileName,
		FileURL:     na.FileURL,
		SizeBytes:   na.SizeBytes,
		CreatedAt:   time.Now(),
	}

	if err := c.storer.CreateAttachment(ctx, att); err != nil {
		return Attachment{}, fmt.Errorf("create attachment: %w", err)
	}

	return att, nil
}

// Detach removes an attachment on behalf of a principal.
func (c *Core) Detach(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, attachmentID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.detach")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TaskAttachments, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	att, err := c.storer.QueryAttachmentByID(ctx, workspaceID, attachmentID)
	if err != nil {
		return fmt.Errorf("query: attachmentID[%s]: %w", attachmentID, err)
	}

	affected, err := c.storer.DeleteAttachment(ctx, att)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// QueryAttachments retrieves the attachments of a task on behalf of a
// principal.
func (c *Core) QueryAttachments(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, taskID uuid.UUID) ([]Attachment, error) {
	ctx, span := otel.AddSpan(ctx, "business.taskbus.queryAttachments")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TaskAttachments, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	atts, err := c.storer.QueryAttachments(ctx, workspaceID, taskID)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}

	return atts, nil
}
