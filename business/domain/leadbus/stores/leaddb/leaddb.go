// Package leaddb contains intake link and lead related CRUD functionality.
package leaddb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for intake link and lead database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (leadbus.Storer, error) {
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

// CreateLink inserts a new intake link into the database.
func (s *Store) CreateLink(ctx context.Context, lnk leadbus.IntakeLink) error {
	const q = `
	INSERT INTO intake_links
		(id, workspace_id, token, name, active, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :token, :name, :active, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBIntakeLink(lnk)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// UpdateLink replaces an intake link document in the database and reports
// the rows affected. A cross-tenant id affects zero rows.
func (s *Store) UpdateLink(ctx context.Context, lnk leadbus.IntakeLink) (int64, error) {
	const q = `
	UPDATE
		intake_links
	SET
		name = :name,
		active = :active,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBIntakeLink(lnk))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// DeleteLink removes an intake link from the database and reports the rows
// affected.
func (s *Store) DeleteLink(ctx context.Context, lnk leadbus.IntakeLink) (int64, error) {
	const q = `
	DELETE FROM
		intake_links
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBIntakeLink(lnk))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryLinks retrieves the intake links of a workspace under the principal
// scope.
func (s *Store) QueryLinks(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]leadbus.IntakeLink, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.IntakeLinks)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, token, name, active, date_created, date_updated
	FROM
		intake_links
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY date_created")

	var dbLnks []intakeLinkDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbLnks); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	lnks := make([]leadbus.IntakeLink, len(dbLnks))
	for i, db := range dbLnks {
		lnk, err := toBusIntakeLink(db)
		if err != nil {
			return nil, err
		}
		lnks[i] = lnk
	}

	return lnks, nil
}

// QueryLinkByID gets the specified intake link scoped to a workspace.
func (s *Store) QueryLinkByID(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (leadbus.IntakeLink, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          linkID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, token, name, active, date_created, date_updated
	FROM
		intake_links
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbLnk intakeLinkDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbLnk); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return leadbus.IntakeLink{}, fmt.Errorf("db: %w", leadbus.ErrNotFound)
		}
		return leadbus.IntakeLink{}, fmt.Errorf("db: %w", err)
	}

	return toBusIntakeLink(dbLnk)
}

// QueryLinkByToken resolves an intake link by its public token. This is the
// one lookup that runs without a workspace in hand.
func (s *Store) QueryLinkByToken(ctx context.Context, token string) (leadbus.IntakeLink, error) {
	data := struct {
		Token string `db:"token"`
	}{
		Token: token,
	}

	const q = `
	SELECT
		id, workspace_id, token, name, active, date_created, date_updated
	FROM
		intake_links
	WHERE
		token = :token`

	var dbLnk intakeLinkDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbLnk); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return leadbus.IntakeLink{}, fmt.Errorf("db: %w", leadbus.ErrLinkNotFound)
		}
		return leadbus.IntakeLink{}, fmt.Errorf("db: %w", err)
	}

	return toBusIntakeLink(dbLnk)
}

// CreateLead inserts a new lead into the database.
func (s *Store) CreateLead(ctx context.Context, led leadbus.Lead) error {
	const q = `
	INSERT INTO leads
		(id, workspace_id, intake_link_id, name, email, company, message, status, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :intake_link_id, :name, :email, :company, :message, :status, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBLead(led)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// UpdateLead replaces a lead document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) UpdateLead(ctx context.Context, led leadbus.Lead) (int64, error) {
	const q = `
	UPDATE
		leads
	SET
		status = :status,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBLead(led))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryLeads retrieves the leads of a workspace under the principal scope.
func (s *Store) QueryLeads(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]leadbus.Lead, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Leads)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, intake_link_id, name, email, company, message, status, date_created, date_updated
	FROM
		leads
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY date_created DESC")

	var dbLeds []leadDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbLeds); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	leds := make([]leadbus.Lead, len(dbLeds))
	for i, db := range dbLeds {
		leds[i] = toBusLead(db)
	}

	return leds, nil
}

// QueryLeadByID gets the specified lead scoped to a workspace.
func (s *Store) QueryLeadByID(ctx context.Context, workspaceID uuid.UUID, leadID uuid.UUID) (leadbus.Lead, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          leadID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, intake_link_id, name, email, company, message, status, date_created, date_updated
	FROM
		leads
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbLed leadDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbLed); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return leadbus.Lead{}, fmt.Errorf("db: %w", leadbus.ErrNotFound)
		}
		return leadbus.Lead{}, fmt.Errorf("db: %w", err)
	}

	return toBusLead(dbLed), nil
}
