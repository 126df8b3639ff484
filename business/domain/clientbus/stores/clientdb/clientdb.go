// Package clientdb contains client related CRUD functionality.
package clientdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/clientbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for client database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (clientbus.Storer, error) {
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

// Create inserts a new client into the database.
func (s *Store) Create(ctx context.Context, cli clientbus.Client) error {
	const q = `
	INSERT INTO clients
		(id, workspace_id, name, email, company, status, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :name, :email, :company, :status, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBClient(cli)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a client document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) Update(ctx context.Context, cli clientbus.Client) (int64, error) {
	const q = `
	UPDATE
		clients
	SET
		name = :name,
		email = :email,
		company = :company,
		status = :status,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBClient(cli))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes a client from the database and reports the rows affected.
func (s *Store) Delete(ctx context.Context, cli clientbus.Client) (int64, error) {
	const q = `
	DELETE FROM
		clients
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBClient(cli))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Query retrieves the clients of a workspace. The statement carries both
// the workspace filter and the principal scope clause so a request can
// never widen past the caller's memberships.
func (s *Store) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]clientbus.Client, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Clients)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, name, email, company, status, date_created, date_updated
	FROM
		clients
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY date_created")

	var dbClis []clientDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbClis); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusClients(dbClis)
}

// QueryByID gets the specified client scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, clientID uuid.UUID) (clientbus.Client, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          clientID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, name, email, company, status, date_created, date_updated
	FROM
		clients
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbCli clientDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCli); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return clientbus.Client{}, fmt.Errorf("db: %w", clientbus.ErrNotFound)
		}
		return clientbus.Client{}, fmt.Errorf("db: %w", err)
	}

	return toBusClient(dbCli)
}
