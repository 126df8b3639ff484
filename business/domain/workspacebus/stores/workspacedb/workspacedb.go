// Package workspacedb contains workspace related CRUD functionality.
package workspacedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for workspace database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (workspacebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new workspace into the database.
func (s *Store) Create(ctx context.Context, ws workspacebus.Workspace) error {
	const q = `
	INSERT INTO workspaces
		(id, name, slug, date_created, date_updated)
	VALUES
		(:id, :name, :slug, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(ws)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", workspacebus.ErrUniqueSlug)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a workspace document in the database.
func (s *Store) Update(ctx context.Context, ws workspacebus.Workspace) error {
	const q = `
	UPDATE
		workspaces
	SET
		name = :name,
		date_updated = :date_updated
	WHERE
		id = :id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(ws)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified workspace from the database.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID) (workspacebus.Workspace, error) {
	data := struct {
		ID string `db:"id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		id, name, slug, date_created, date_updated
	FROM
		workspaces
	WHERE
		id = :id`

	var dbWs workspaceDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbWs); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Workspace{}, fmt.Errorf("db: %w", workspacebus.ErrNotFound)
		}
		return workspacebus.Workspace{}, fmt.Errorf("db: %w", err)
	}

	return toBusWorkspace(dbWs)
}

// QueryBySlug gets the specified workspace from the database by slug.
func (s *Store) QueryBySlug(ctx context.Context, slug string) (workspacebus.Workspace, error) {
	data := struct {
		Slug string `db:"slug"`
	}{
		Slug: slug,
	}

	const q = `
	SELECT
		id, name, slug, date_created, date_updated
	FROM
		workspaces
	WHERE
		slug = :slug`

	var dbWs workspaceDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbWs); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Workspace{}, fmt.Errorf("db: %w", workspacebus.ErrNotFound)
		}
		return workspacebus.Workspace{}, fmt.Errorf("db: %w", err)
	}

	return toBusWorkspace(dbWs)
}

// QuerySettings gets the settings row for the specified workspace.
func (s *Store) QuerySettings(ctx context.Context, workspaceID uuid.UUID) (workspacebus.Settings, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
	}{
		WorkspaceID: workspaceID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, company_name, logo_url, accent_color, invoice_prefix,
		invoice_notes, tax_rate_bps, currency, date_updated
	FROM
		workspace_settings
	WHERE
		workspace_id = :workspace_id`

	var dbSet settingsDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSet); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Settings{}, fmt.Errorf("db: %w", workspacebus.ErrNotFound)
		}
		return workspacebus.Settings{}, fmt.Errorf("db: %w", err)
	}

	return toBusSettings(dbSet), nil
}

// UpsertSettings writes the settings row for a workspace.
func (s *Store) UpsertSettings(ctx context.Context, set workspacebus.Settings) error {
	const q = `
	INSERT INTO workspace_settings
		(id, workspace_id, company_name, logo_url, accent_color, invoice_prefix,
		 invoice_notes, tax_rate_bps, currency, date_updated)
	VALUES
		(:id, :workspace_id, :company_name, :logo_url, :accent_color, :invoice_prefix,
		 :invoice_notes, :tax_rate_bps, :currency, :date_updated)
	ON CONFLICT (workspace_id) DO UPDATE SET
		company_name   = EXCLUDED.company_name,
		logo_url       = EXCLUDED.logo_url,
		accent_color   = EXCLUDED.accent_color,
		invoice_prefix = EXCLUDED.invoice_prefix,
		invoice_notes  = EXCLUDED.invoice_notes,
		tax_rate_bps   = EXCLUDED.tax_rate_bps,
		currency       = EXCLUDED.currency,
		date_updated   = EXCLUDED.date_updated`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSettings(set)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QuerySubscription gets the subscription row for the specified workspace.
func (s *Store) QuerySubscription(ctx context.Context, workspaceID uuid.UUID) (workspacebus.Subscription, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
	}{
		WorkspaceID: workspaceID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, plan, status, current_period_end, date_created, date_updated
	FROM
		subscriptions
	WHERE
		workspace_id = :workspace_id`

	var dbSub subscriptionDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSub); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Subscription{}, fmt.Errorf("db: %w", workspacebus.ErrNotFound)
		}
		return workspacebus.Subscription{}, fmt.Errorf("db: %w", err)
	}

	return toBusSubscription(dbSub), nil
}

// UpsertSubscription writes the subscription row for a workspace.
func (s *Store) UpsertSubscription(ctx context.Context, sub workspacebus.Subscription) error {
	const q = `
	INSERT INTO subscriptions
		(id, workspace_id, plan, status, current_period_end, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :plan, :status, :current_period_end, :date_created, :date_updated)
	ON CONFLICT (workspace_id) DO UPDATE SET
		plan               = EXCLUDED.plan,
		status             = EXCLUDED.status,
		current_period_end = EXCLUDED.current_period_end,
		date_updated       = EXCLUDED.date_updated`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSubscription(sub)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}
