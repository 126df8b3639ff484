// Package timedb contains time entry related CRUD functionality.
package timedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/timebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for time entry database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (timebus.Storer, error) {
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

type timeEntryDB struct {
	ID              uuid.UUID     `db:"id"`
	WorkspaceID     uuid.UUID     `db:"workspace_id"`
	ProjectID       uuid.UUID     `db:"project_id"`
	TaskID          uuid.NullUUID `db:"task_id"`
	UserID          uuid.UUID     `db:"user_id"`
	Description     string        `db:"description"`
	StartedAt       time.Time     `db:"started_at"`
	DurationMinutes int           `db:"duration_minutes"`
	Billable        bool          `db:"billable"`
	CreatedAt       time.Time     `db:"date_created"`
	UpdatedAt       time.Time     `db:"date_updated"`
}

func toDBTimeEntry(bus timebus.TimeEntry) timeEntryDB {
	db := timeEntryDB{
		ID:              bus.ID,
		WorkspaceID:     bus.WorkspaceID,
		ProjectID:       bus.ProjectID,
		UserID:          bus.UserID,
		Description:     bus.Description,
		StartedAt:       bus.StartedAt.UTC(),
		DurationMinutes: bus.DurationMinutes,
		Billable:        bus.Billable,
		CreatedAt:       bus.CreatedAt.UTC(),
		UpdatedAt:       bus.UpdatedAt.UTC(),
	}

	if bus.TaskID != nil {
		db.TaskID = uuid.NullUUID{UUID: *bus.TaskID, Valid: true}
	}

	return db
}

func toBusTimeEntry(db timeEntryDB) timebus.TimeEntry {
	bus := timebus.TimeEntry{
		ID:              db.ID,
		WorkspaceID:     db.WorkspaceID,
		ProjectID:       db.ProjectID,
		UserID:          db.UserID,
		Description:     db.Description,
		StartedAt:       db.StartedAt.In(time.Local),
		DurationMinutes: db.DurationMinutes,
		Billable:        db.Billable,
		CreatedAt:       db.CreatedAt.In(time.Local),
		UpdatedAt:       db.UpdatedAt.In(time.Local),
	}

	if db.TaskID.Valid {
		id := db.TaskID.UUID
		bus.TaskID = &id
	}

	return bus
}

// Create inserts a new time entry into the database.
func (s *Store) Create(ctx context.Context, ent timebus.TimeEntry) error {
	const q = `
	INSERT INTO time_entries
		(id, workspace_id, project_id, task_id, user_id, description, started_at, duration_minutes, billable, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :project_id, :task_id, :user_id, :description, :started_at, :duration_minutes, :billable, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBTimeEntry(ent)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a time entry document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) Update(ctx context.Context, ent timebus.TimeEntry) (int64, error) {
	const q = `
	UPDATE
		time_entries
	SET
		description = :description,
		started_at = :started_at,
		duration_minutes = :duration_minutes,
		billable = :billable,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBTimeEntry(ent))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes a time entry from the database and reports the rows
// affected.
func (s *Store) Delete(ctx context.Context, ent timebus.TimeEntry) (int64, error) {
	const q = `
	DELETE FROM
		time_entries
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBTimeEntry(ent))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Query retrieves the time entries of a workspace under the principal scope.
func (s *Store) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]timebus.TimeEntry, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.TimeEntries)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, project_id, task_id, user_id, description, started_at, duration_minutes, billable, date_created, date_updated
	FROM
		time_entries
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY started_at DESC")

	var dbEnts []timeEntryDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbEnts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	ents := make([]timebus.TimeEntry, len(dbEnts))
	for i, db := range dbEnts {
		ents[i] = toBusTimeEntry(db)
	}

	return ents, nil
}

// QueryByProject retrieves the time entries for a project under the
// principal scope.
func (s *Store) QueryByProject(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) ([]timebus.TimeEntry, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.TimeEntries)
	data["workspace_id"] = workspaceID
	data["project_id"] = projectID

	const q = `
	SELECT
		id, workspace_id, project_id, task_id, user_id, description, started_at, duration_minutes, billable, date_created, date_updated
	FROM
		time_entries
	WHERE
		workspace_id = :workspace_id AND project_id = :project_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY started_at DESC")

	var dbEnts []timeEntryDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbEnts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	ents := make([]timebus.TimeEntry, len(dbEnts))
	for i, db := range dbEnts {
		ents[i] = toBusTimeEntry(db)
	}

	return ents, nil
}

// QueryByID gets the specified time entry scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, entryID uuid.UUID) (timebus.TimeEntry, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          entryID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, project_id, task_id, user_id, description, started_at, duration_minutes, billable, date_created, date_updated
	FROM
		time_entries
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbEnt timeEntryDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbEnt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return timebus.TimeEntry{}, fmt.Errorf("db: %w", timebus.ErrNotFound)
		}
		return timebus.TimeEntry{}, fmt.Errorf("db: %w", err)
	}

	return toBusTimeEntry(dbEnt), nil
}
