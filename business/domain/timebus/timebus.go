// Package timebus provides business access to time entry tracking.
package timebus

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
var ErrNotFound = errors.New("time entry not found")

// TimeEntry represents tracked time against a project, optionally pinned to
// a task.
type TimeEntry struct {
	ID              uuid.UUID
	WorkspaceID     uuid.UUID
	ProjectID       uuid.UUID
	TaskID          *uuid.UUID
	UserID          uuid.UUID
	Description     string
	StartedAt       time.Time
	DurationMinutes int
	Billable        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTimeEntry contains information needed to create a new time entry.
type NewTimeEntry struct {
	ProjectID       uuid.UUID
	TaskID          *uuid.UUID
	Description     string
	StartedAt       time.Time
	DurationMinutes int
	Billable        bool
}

// UpdateTimeEntry contains information needed to update a time entry.
type UpdateTimeEntry struct {
	Description     *string
	StartedAt       *time.Time
	DurationMinutes *int
	Billable        *bool
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, ent TimeEntry) error
	Update(ctx context.Context, ent TimeEntry) (int64, error)
	Delete(ctx context.Context, ent TimeEntry) (int64, error)
	Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]TimeEntry, error)
	QueryByProject(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) ([]TimeEntry, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, entryID uuid.UUID) (TimeEntry, error)
}

// Core manages the set of APIs for time entry access.
type Core struct {
	storer Storer
}

// NewCore constructs a time entry core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the specified
// transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	core := Core{
		storer: storer,
	}

	return &core, nil
}

// Create records a new time entry inside the workspace for the principal.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nte NewTimeEntry) (TimeEntry, error) {
	ctx, span := otel.AddSpan(ctx, "business.timebus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TimeEntries, tenancy.OpInsert, workspaceID) {
		return TimeEntry{}, ErrNotFound
	}

	now := time.Now()

	ent := TimeEntry{
		ID:              uuid.New(),
		WorkspaceID:     workspaceID,
		ProjectID:       nte.ProjectID,
		TaskID:          nte.TaskID,
		UserID:          p.UserID(),
		Description:     nte.Description,
		StartedAt:       nte.StartedAt,
		DurationMinutes: nte.DurationMinutes,
		Billable:        nte.Billable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storer.Create(ctx, ent); err != nil {
		return TimeEntry{}, fmt.Errorf("create: %w", err)
	}

	return ent, nil
}

// Update modifies a time entry. A cross-tenant or unknown id reports
// ErrNotFound.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, entryID uuid.UUID, ute UpdateTimeEntry) (TimeEntry, error) {
	ctx, span := otel.AddSpan(ctx, "business.timebus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TimeEntries, tenancy.OpUpdate, workspaceID) {
		return TimeEntry{}, ErrNotFound
	}

	ent, err := c.storer.QueryByID(ctx, workspaceID, entryID)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("query: entryID[%s]: %w", entryID, err)
	}

	if ute.Description != nil {
		ent.Description = *ute.Description
	}
	if ute.StartedAt != nil {
		ent.StartedAt = *ute.StartedAt
	}
	if ute.DurationMinutes != nil {
		ent.DurationMinutes = *ute.DurationMinutes
	}
	if ute.Billable != nil {
		ent.Billable = *ute.Billable
	}
	ent.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, ent)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return TimeEntry{}, ErrNotFound
	}

	return ent, nil
}

// Delete removes a time entry. A cross-tenant or unknown id reports
// ErrNotFound.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, entryID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.timebus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TimeEntries, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	ent, err := c.storer.QueryByID(ctx, workspaceID, entryID)
	if err != nil {
		return fmt.Errorf("query: entryID[%s]: %w", entryID, err)
	}

	affected, err := c.storer.Delete(ctx, ent)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves the time entries of a workspace visible to the principal.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]TimeEntry, error) {
	ctx, span := otel.AddSpan(ctx, "business.timebus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TimeEntries, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	ents, err := c.storer.Query(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ents, nil
}

// QueryByProject retrieves the time entries recorded against a project.
func (c *Core) QueryByProject(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) ([]TimeEntry, error) {
	ctx, span := otel.AddSpan(ctx, "business.timebus.queryByProject")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TimeEntries, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	ents, err := c.storer.QueryByProject(ctx, p, workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("query: projectID[%s]: %w", projectID, err)
	}

	return ents, nil
}

// QueryByID finds the time entry identified by a given ID inside the
// workspace.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, entryID uuid.UUID) (TimeEntry, error) {
	ctx, span := otel.AddSpan(ctx, "business.timebus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.TimeEntries, tenancy.OpSelect, workspaceID) {
		return TimeEntry{}, ErrNotFound
	}

	ent, err := c.storer.QueryByID(ctx, workspaceID, entryID)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("query: entryID[%s]: %w", entryID, err)
	}

	return ent, nil
}
