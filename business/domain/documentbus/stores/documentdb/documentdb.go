// Package documentdb contains document related CRUD functionality.
package documentdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/documentbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for document database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (documentbus.Storer, error) {
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

type documentDB struct {
	ID          uuid.UUID     `db:"id"`
	WorkspaceID uuid.UUID     `db:"workspace_id"`
	ClientID    uuid.NullUUID `db:"client_id"`
	Name        string        `db:"name"`
	FileURL     string        `db:"file_url"`
	CreatedAt   time.Time     `db:"date_created"`
}

func toDBDocument(bus documentbus.Document) documentDB {
	db := documentDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Name:        bus.Name,
		FileURL:     bus.FileURL,
		CreatedAt:   bus.CreatedAt.UTC(),
	}

	if bus.ClientID != nil {
		db.ClientID = uuid.NullUUID{UUID: *bus.ClientID, Valid: true}
	}

	return db
}

func toBusDocument(db documentDB) documentbus.Document {
	bus := documentbus.Document{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Name:        db.Name,
		FileURL:     db.FileURL,
		CreatedAt:   db.CreatedAt.In(time.Local),
	}

	if db.ClientID.Valid {
		id := db.ClientID.UUID
		bus.ClientID = &id
	}

	return bus
}

// Create inserts a new document into the database.
func (s *Store) Create(ctx context.Context, doc documentbus.Document) error {
	const q = `
	INSERT INTO documents
		(id, workspace_id, client_id, name, file_url, date_created)
	VALUES
		(:id, :workspace_id, :client_id, :name, :file_url, :date_created)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDocument(doc)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a document from the database and reports the rows
// affected.
func (s *Store) Delete(ctx context.Context, doc documentbus.Document) (int64, error) {
	const q = `
	DELETE FROM
		documents
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBDocument(doc))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Query retrieves the documents of a workspace under the principal scope.
func (s *Store) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]documentbus.Document, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Documents)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, client_id, name, file_url, date_created
	FROM
		documents
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY date_created DESC")

	var dbDocs []documentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbDocs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	docs := make([]documentbus.Document, len(dbDocs))
	for i, db := range dbDocs {
		docs[i] = toBusDocument(db)
	}

	return docs, nil
}

// QueryByID gets the specified document scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, documentID uuid.UUID) (documentbus.Document, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          documentID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, client_id, name, file_url, date_created
	FROM
		documents
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbDoc documentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDoc); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return documentbus.Document{}, fmt.Errorf("db: %w", documentbus.ErrNotFound)
		}
		return documentbus.Document{}, fmt.Errorf("db: %w", err)
	}

	return toBusDocument(dbDoc), nil
}
