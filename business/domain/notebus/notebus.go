// Package notebus provides business access to the notes of a workspace.
package notebus

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
var ErrNotFound = errors.New("note not found")

// Note represents a free-form note, optionally bound to a client or a
// project.
type Note struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	Title       string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewNote contains information needed to create a new note.
type NewNote struct {
	ClientID  *uuid.UUID
	ProjectID *uuid.UUID
	Title     string
	Body      string
}

// UpdateNote contains information needed to update a note.
type UpdateNote struct {
	Title *string
	Body  *string
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, nte Note) error
	Update(ctx context.Context, nte Note) (int64, error)
	Delete(ctx context.Context, nte Note) (int64, error)
	Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Note, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, noteID uuid.UUID) (Note, error)
}

// Core manages the set of APIs for note access.
type Core struct {
	storer Storer
}

// NewCore constructs a note core API for use.
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

// Create adds a new note on behalf of a principal.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nn NewNote) (Note, error) {
	ctx, span := otel.AddSpan(ctx, "business.notebus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Notes, tenancy.OpInsert, workspaceID) {
		return Note{}, ErrNotFound
	}

	now := time.Now()

	nte := Note{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ClientID:    nn.ClientID,
		ProjectID:   nn.ProjectID,
		Title:       nn.Title,
		Body:        nn.Body,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, nte); err != nil {
		return Note{}, fmt.Errorf("create: %w", err)
	}

	return nte, nil
}

// Update modifies a note on behalf of a principal.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, noteID uuid.UUID, un UpdateNote) (Note, error) {
	ctx, span := otel.AddSpan(ctx, "business.notebus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Notes, tenancy.OpUpdate, workspaceID) {
		return Note{}, ErrNotFound
	}

	nte, err := c.storer.QueryByID(ctx, workspaceID, noteID)
	if err != nil {
		return Note{}, fmt.Errorf("query: noteID[%s]: %w", noteID, err)
	}

	if un.Title != nil {
		nte.Title = *un.Title
	}
	if un.Body != nil {
		nte.Body = *un.Body
	}

	nte.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, nte)
	if err != nil {
		return Note{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return Note{}, ErrNotFound
	}

	return nte, nil
}

// Delete removes a note on behalf of a principal.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, noteID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.notebus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Notes, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	nte, err := c.storer.QueryByID(ctx, workspaceID, noteID)
	if err != nil {
		return fmt.Errorf("query: noteID[%s]: %w", noteID, err)
	}

	affected, err := c.storer.Delete(ctx, nte)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves the notes of a workspace on behalf of a principal.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Note, error) {
	ctx, span := otel.AddSpan(ctx, "business.notebus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Notes, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	ntes, err := c.storer.Query(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ntes, nil
}

// QueryByID finds the note by the specified ID on behalf of a principal.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, noteID uuid.UUID) (Note, error) {
	ctx, span := otel.AddSpan(ctx, "business.notebus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Notes, tenancy.OpSelect, workspaceID) {
		return Note{}, ErrNotFound
	}

	nte, err := c.storer.QueryByID(ctx, workspaceID, noteID)
	if err != nil {
		return Note{}, fmt.Errorf("query: noteID[%s]: %w", noteID, err)
	}

	return nte, nil
}
