// Package workspacebus provides business access to workspaces, their
// settings row and their subscription. Reads and writes on behalf of a
// principal are gated by the tenancy predicate. A denied access is
// indistinguishable from a missing row.
package workspacebus

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

var (
	ErrNotFound   = errors.New("workspace not found")
	ErrUniqueSlug = errors.New("slug is not unique")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, ws Workspace) error
	Update(ctx context.Context, ws Workspace) error
	QueryByID(ctx context.Context, workspaceID uuid.UUID) (Workspace, error)
	QueryBySlug(ctx context.Context, slug string) (Workspace, error)
	QuerySettings(ctx context.Context, workspaceID uuid.UUID) (Settings, error)
	UpsertSettings(ctx context.Context, set Settings) error
	QuerySubscription(ctx context.Context, workspaceID uuid.UUID) (Subscription, error)
	UpsertSubscription(ctx context.Context, sub Subscription) error
}

// Core manages the set of APIs for workspace access.
type Core struct {
	storer Storer
}

// NewCore constructs a workspace core API for use.
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

// Create adds a new workspace to the system. This is a setup time
// operation performed by the admin tooling, not a tenant-scoped call.
func (c *Core) Create(ctx context.Context, nw NewWorkspace) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.create")
	defer span.End()

	now := time.Now()

	ws := Workspace{
		ID:        uuid.New(),
		Name:      nw.Name,
		Slug:      nw.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, ws); err != nil {
		return Workspace{}, fmt.Errorf("create: %w", err)
	}

	set := Settings{
		ID:            uuid.New(),
		WorkspaceID:   ws.ID,
		InvoicePrefix: "INV",
		Currency:      "USD",
		UpdatedAt:     now,
	}

	if err := c.storer.UpsertSettings(ctx, set); err != nil {
		return Workspace{}, fmt.Errorf("create settings: %w", err)
	}

	return ws, nil
}

// Update modifies information about a workspace on behalf of a principal.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, ws Workspace, uw UpdateWorkspace) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.update")
	defer span.End()

	if !p.Member(ws.ID) {
		return Workspace{}, ErrNotFound
	}

	if uw.Name != nil {
		ws.Name = *uw.Name
	}

	ws.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, ws); err != nil {
		return Workspace{}, fmt.Errorf("update: %w", err)
	}

	return ws, nil
}

// QueryByID finds the workspace by the specified ID on behalf of a
// principal.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryByID")
	defer span.End()

	if !p.Member(workspaceID) {
		return Workspace{}, ErrNotFound
	}

	ws, err := c.storer.QueryByID(ctx, workspaceID)
	if err != nil {
		return Workspace{}, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return ws, nil
}

// QueryBySlug finds the workspace by slug. Used during setup and login
// flows before a principal is established.
func (c *Core) QueryBySlug(ctx context.Context, slug string) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryBySlug")
	defer span.End()

	ws, err := c.storer.QueryBySlug(ctx, slug)
	if err != nil {
		return Workspace{}, fmt.Errorf("query: slug[%s]: %w", slug, err)
	}

	return ws, nil
}

// QuerySettings returns the settings row for the specified workspace.
func (c *Core) QuerySettings(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) (Settings, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.querySettings")
	defer span.End()

	if !tenancy.Allow(p, tenancy.WorkspaceSettings, tenancy.OpSelect, workspaceID) {
		return Settings{}, ErrNotFound
	}

	set, err := c.storer.QuerySettings(ctx, workspaceID)
	if err != nil {
		return Settings{}, fmt.Errorf("query settings: workspaceID[%s]: %w", workspaceID, err)
	}

	return set, nil
}

// UpdateSettings modifies the settings row for the specified workspace.
func (c *Core) UpdateSettings(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, us UpdateSettings) (Settings, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.updateSettings")
	defer span.End()

	if !tenancy.Allow(p, tenancy.WorkspaceSettings, tenancy.OpUpdate, workspaceID) {
		return Settings{}, ErrNotFound
	}

	set, err := c.storer.QuerySettings(ctx, workspaceID)
	if err != nil {
		return Settings{}, fmt.Errorf("query settings: %w", err)
	}

	if us.CompanyName != nil {
		set.CompanyName = *us.CompanyName
	}
	if us.LogoURL != nil {
		set.LogoURL = *us.LogoURL
	}
	if us.AccentColor != nil {
		set.AccentColor = *us.AccentColor
	}
	if us.InvoicePrefix != nil {
		set.InvoicePrefix = *us.InvoicePrefix
	}
	if us.InvoiceNotes != nil {
		set.InvoiceNotes = *us.InvoiceNotes
	}
	if us.TaxRateBps != nil {
		set.TaxRateBps = *us.TaxRateBps
	}
	if us.Currency != nil {
		set.Currency = *us.Currency
	}

	set.UpdatedAt = time.Now()

	if err := c.storer.UpsertSettings(ctx, set); err != nil {
		return Settings{}, fmt.Errorf("upsert settings: %w", err)
	}

	return set, nil
}

// QuerySubscription returns the subscription row for the specified
// workspace.
func (c *Core) QuerySubscription(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.querySubscription")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Subscriptions, tenancy.OpSelect, workspaceID) {
		return Subscription{}, ErrNotFound
	}

	sub, err := c.storer.QuerySubscription(ctx, workspaceID)
	if err != nil {
		return Subscription{}, fmt.Errorf("query subscription: workspaceID[%s]: %w", workspaceID, err)
	}

	return sub, nil
}

// SetSubscription writes the subscription row for a workspace. Driven by
// billing events, not a tenant-scoped call.
func (c *Core) SetSubscription(ctx context.Context, workspaceID uuid.UUID, plan string, status string, periodEnd *time.Time) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.setSubscription")
	defer span.End()

	now := time.Now()

	sub := Subscription{
		ID:               uuid.New(),
		WorkspaceID:      workspaceID,
		Plan:             plan,
		Status:           status,
		CurrentPeriodEnd: periodEnd,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.storer.UpsertSubscription(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("upsert subscription: %w", err)
	}

	return sub, nil
}
