// Package projectbus provides business access to the projects of a
// workspace.
package projectbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/order"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/page"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// ErrNotFound is returned for rows the principal cannot see, whether they
// exist or not.
var ErrNotFound = errors.New("project not found")

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, prj Project) error
	Update(ctx context.Context, prj Project) (int64, error)
	Delete(ctx context.Context, prj Project) (int64, error)
	Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, filter QueryFilter, orderBy order.By, page page.Page) ([]Project, error)
	Count(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, projectID uuid.UUID) (Project, error)
}

// Core manages the set of APIs for project access.
type Core struct {
	storer Storer
}

// NewCore constructs a project core API for use.
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

// Create adds a new project to the workspace on behalf of a principal.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, np NewProject) (Project, error) {
	ctx, span := otel.AddSpan(ctx, "business.projectbus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Projects, tenancy.OpInsert, workspaceID) {
		return Project{}, ErrNotFound
	}

	now := time.Now()

	prj := Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ClientID:    np.ClientID,
		Name:        np.Name,
		Description: np.Description,
		Status:      "ACTIVE",
		DueDate:     np.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, prj); err != nil {
		return Project{}, fmt.Errorf("create: %w", err)
	}

	return prj, nil
}

// Update modifies a project on behalf of a principal.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID, up UpdateProject) (Project, error) {
	ctx, span := otel.AddSpan(ctx, "business.projectbus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Projects, tenancy.OpUpdate, workspaceID) {
		return Project{}, ErrNotFound
	}

	prj, err := c.storer.QueryByID(ctx, workspaceID, projectID)
	if err != nil {
		return Project{}, fmt.Errorf("query: projectID[%s]: %w", projectID, err)
	}

	if up.ClientID != nil {
		prj.ClientID = up.ClientID
	}
	if up.Name != nil {
		prj.Name = *up.Name
	}
	if up.Description != nil {
		prj.Description = *up.Description
	}
	if up.Status != nil {
		prj.Status = *up.Status
	}
	if up.DueDate != nil {
		prj.DueDate = up.DueDate
	}

	prj.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, prj)
	if err != nil {
		return Project{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return Project{}, ErrNotFound
	}

	return prj, nil
}

// Delete removes a project on behalf of a principal.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.projectbus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Projects, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	prj, err := c.storer.QueryByID(ctx, workspaceID, projectID)
	if err != nil {
		return fmt.Errorf("query: projectID[%s]: %w", projectID, err)
	}

	affected, err := c.storer.Delete(ctx, prj)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves a page of projects on behalf of a principal.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, filter QueryFilter, orderBy order.By, page page.Page) ([]Project, error) {
	ctx, span := otel.AddSpan(ctx, "business.projectbus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Projects, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	prjs, err := c.storer.Query(ctx, p, workspaceID, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return prjs, nil
}

// Count returns the total number of projects matching the filter.
func (c *Core) Count(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.projectbus.count")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Projects, tenancy.OpSelect, workspaceID) {
		return 0, ErrNotFound
	}

	return c.storer.Count(ctx, p, workspaceID, filter)
}

// QueryByID finds the project by the specified ID on behalf of a
// principal.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) (Project, error) {
	ctx, span := otel.AddSpan(ctx, "business.projectbus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Projects, tenancy.OpSelect, workspaceID) {
		return Project{}, ErrNotFound
	}

	prj, err := c.storer.QueryByID(ctx, workspaceID, projectID)
	if err != nil {
		return Project{}, fmt.Errorf("query: projectID[%s]: %w", projectID, err)
	}

	return prj, nil
}
