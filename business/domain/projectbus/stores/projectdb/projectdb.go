// Package projectdb contains project related CRUD functionality.
package projectdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/order"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/page"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for project database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (projectbus.Storer, error) {
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

// Create inserts a new project into the database.
func (s *Store) Create(ctx context.Context, prj projectbus.Project) error {
	const q = `
	INSERT INTO projects
		(id, workspace_id, client_id, name, description, status, due_date, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :client_id, :name, :description, :status, :due_date, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBProject(prj)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a project document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) Update(ctx context.Context, prj projectbus.Project) (int64, error) {
	const q = `
	UPDATE
		projects
	SET
		client_id = :client_id,
		name = :name,
		description = :description,
		status = :status,
		due_date = :due_date,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBProject(prj))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes a project from the database and reports the rows
// affected.
func (s *Store) Delete(ctx context.Context, prj projectbus.Project) (int64, error) {
	const q = `
	DELETE FROM
		projects
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBProject(prj))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Query retrieves a page of projects for a workspace. The statement
// carries both the workspace filter and the principal scope clause.
func (s *Store) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, filter projectbus.QueryFilter, orderBy order.By, page page.Page) ([]projectbus.Project, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Projects)
	data["workspace_id"] = workspaceID
	data["offset"] = (page.Number() - 1) * page.RowsPerPage()
	data["rows_per_page"] = page.RowsPerPage()

	const q = `
	SELECT
		id, workspace_id, client_id, name, description, status, due_date, date_created, date_updated
	FROM
		projects
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbPrjs []projectDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbPrjs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusProjects(dbPrjs)
}

// Count returns the total number of projects matching the filter.
func (s *Store) Count(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, filter projectbus.QueryFilter) (int, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Projects)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		count(1)
	FROM
		projects
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified project scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, projectID uuid.UUID) (projectbus.Project, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          projectID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, client_id, name, description, status, due_date, date_created, date_updated
	FROM
		projects
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbPrj projectDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbPrj); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return projectbus.Project{}, fmt.Errorf("db: %w", projectbus.ErrNotFound)
		}
		return projectbus.Project{}, fmt.Errorf("db: %w", err)
	}

	return toBusProject(dbPrj)
}
