// Package clientbus provides business access to the clients of a
// workspace.
package clientbus

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
var ErrNotFound = errors.New("client not found")

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Every statement is constrained to the workspace so a
// foreign id matches zero rows.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cli Client) error
	Update(ctx context.Context, cli Client) (int64, error)
	Delete(ctx context.Context, cli Client) (int64, error)
	Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Client, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, clientID uuid.UUID) (Client, error)
}

// Core manages the set of APIs for client access.
type Core struct {
	storer Storer
}

// NewCore constructs a client core API for use.
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

// Create adds a new client to the workspace on behalf of a principal.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nc NewClient) (Client, error) {
	ctx, span := otel.AddSpan(ctx, "business.clientbus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Clients, tenancy.OpInsert, workspaceID) {
		return Client{}, ErrNotFound
	}

	now := time.Now()

	cli := Client{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        nc.Name,
		Email:       nc.Email,
		Company:     nc.Company,
		Status:      "ACTIVE",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, cli); err != nil {
		return Client{}, fmt.Errorf("create: %w", err)
	}

	return cli, nil
}

// Update modifies a client on behalf of a principal.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID, uc UpdateClient) (Client, error) {
	ctx, span := otel.AddSpan(ctx, "business.clientbus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Clients, tenancy.OpUpdate, workspaceID) {
		return Client{}, ErrNotFound
	}

	cli, err := c.storer.QueryByID(ctx, workspaceID, clientID)
	if err != nil {
		return Client{}, fmt.Errorf("query: clientID[%s]: %w", clientID, err)
	}

	if uc.Name != nil {
		cli.Name = *uc.Name
	}
	if uc.Email != nil {
		cli.Email = *uc.Email
	}
	if uc.Company != nil {
		cli.Company = *uc.Company
	}
	if uc.Status != nil {
		cli.Status = *uc.Status
	}

	cli.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, cli)
	if err != nil {
		return Client{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return Client{}, ErrNotFound
	}

	return cli, nil
}

// Delete removes a client on behalf of a principal.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.clientbus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Clients, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	cli, err := c.storer.QueryByID(ctx, workspaceID, clientID)
	if err != nil {
		return fmt.Errorf("query: clientID[%s]: %w", clientID, err)
	}

	affected, err := c.storer.Delete(ctx, cli)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves the clients of a workspace on behalf of a principal.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Client, error) {
	ctx, span := otel.AddSpan(ctx, "business.clientbus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Clients, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	clis, err := c.storer.Query(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return clis, nil
}

// QueryByID finds the client by the specified ID on behalf of a principal.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) (Client, error) {
	ctx, span := otel.AddSpan(ctx, "business.clientbus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Clients, tenancy.OpSelect, workspaceID) {
		return Client{}, ErrNotFound
	}

	cli, err := c.storer.QueryByID(ctx, workspaceID, clientID)
	if err != nil {
		return Client{}, fmt.Errorf("query: clientID[%s]: %w", clientID, err)
	}

	return cli, nil
}
