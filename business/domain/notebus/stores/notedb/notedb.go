// Package notedb contains note related CRUD functionality.
package notedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/notebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for note database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (notebus.Storer, error) {
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

type noteDB struct {
	ID          uuid.UUID     `db:"id"`
	WorkspaceID uuid.UUID     `db:"workspace_id"`
	ClientID    uuid.NullUUID `db:"client_id"`
	ProjectID   uuid.NullUUID `db:"project_id"`
	Title       string        `db:"title"`
	Body        string        `db:"body"`
	CreatedAt   time.Time     `db:"date_created"`
	UpdatedAt   time.Time     `db:"date_updated"`
}

func toDBNote(bus notebus.Note) noteDB {
	db := noteDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Title:       bus.Title,
		Body:        bus.Body,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.ClientID != nil {
		db.ClientID = uuid.NullUUID{UUID: *bus.ClientID, Valid: true}
	}
	if bus.ProjectID != nil {
		db.ProjectID = uuid.NullUUID{UUID: *bus.ProjectID, Valid: true}
	}

	return db
}

func toBusNote(db noteDB) notebus.Note {
	bus := notebus.Note{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Title:       db.Title,
		Body:        db.Body,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.ClientID.Valid {
		id := db.ClientID.UUID
		bus.ClientID = &id
	}
	if db.ProjectID.Valid {
		id := db.ProjectID.UUID
		bus.ProjectID = &id
	}

	return bus
}

// Create inserts a new note into the database.
func (s *Store) Create(ctx context.Context, nte notebus.Note) error {
	const q = `
	INSERT INTO notes
		(id, workspace_id, client_id, project_id, title, body, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :client_id, :project_id, :title, :body, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBNote(nte)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a note document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) Update(ctx context.Context, nte notebus.Note) (int64, error) {
	const q = `
	UPDATE
		notes
	SET
		title = :title,
		body = :body,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBNote(nte))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes a note from the database and reports the rows affected.
func (s *Store) Delete(ctx context.Context, nte notebus.Note) (int64, error) {
	const q = `
	DELETE FROM
		notes
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBNote(nte))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Query retrieves the notes of a workspace under the principal scope.
func (s *Store) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]notebus.Note, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Notes)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, client_id, project_id, title, body, date_created, date_updated
	FROM
		notes
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY date_created DESC")

	var dbNtes []noteDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbNtes); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	ntes := make([]notebus.Note, len(dbNtes))
	for i, db := range dbNtes {
		ntes[i] = toBusNote(db)
	}

	return ntes, nil
}

// QueryByID gets the specified note scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, noteID uuid.UUID) (notebus.Note, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          noteID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, client_id, project_id, title, body, date_created, date_updated
	FROM
		notes
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbNte noteDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbNte); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return notebus.Note{}, fmt.Errorf("db: %w", notebus.ErrNotFound)
		}
		return notebus.Note{}, fmt.Errorf("db: %w", err)
	}

	return toBusNote(dbNte), nil
}
