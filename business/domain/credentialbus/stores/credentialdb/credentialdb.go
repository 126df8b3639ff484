// Package credentialdb contains credential related CRUD functionality.
package credentialdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for credential database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (credentialbus.Storer, error) {
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

type credentialDB struct {
	ID          uuid.UUID `db:"id"`
	ClientID    uuid.UUID `db:"client_id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Kind        string    `db:"kind"`
	Label       string    `db:"label"`
	Username    string    `db:"username"`
	Secret      string    `db:"secret"`
	Notes       string    `db:"notes"`
	CreatedAt   time.Time `db:"date_created"`
	UpdatedAt   time.Time `db:"date_updated"`
}

func toDBCredential(bus credentialbus.Credential) credentialDB {
	return credentialDB{
		ID:          bus.ID,
		ClientID:    bus.ClientID,
		WorkspaceID: bus.WorkspaceID,
		Kind:        bus.Kind,
		Label:       bus.Label,
		Username:    bus.Username,
		Secret:      bus.Secret,
		Notes:       bus.Notes,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}
}

func toBusCredential(db credentialDB) credentialbus.Credential {
	return credentialbus.Credential{
		ID:          db.ID,
		ClientID:    db.ClientID,
		WorkspaceID: db.WorkspaceID,
		Kind:        db.Kind,
		Label:       db.Label,
		Username:    db.Username,
		Secret:      db.Secret,
		Notes:       db.Notes,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}
}

// ClientWorkspace resolves the workspace a client belongs to.
func (s *Store) ClientWorkspace(ctx context.Context, clientID uuid.UUID) (uuid.UUID, error) {
	data := struct {
		ID string `db:"id"`
	}{
		ID: clientID.String(),
	}

	const q = `
	SELECT
		workspace_id
	FROM
		clients
	WHERE
		id = :id`

	var row struct {
		WorkspaceID uuid.UUID `db:"workspace_id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return uuid.Nil, fmt.Errorf("db: %w", credentialbus.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("db: %w", err)
	}

	return row.WorkspaceID, nil
}

// Create inserts a new credential into the database.
func (s *Store) Create(ctx context.Context, crd credentialbus.Credential) error {
	const q = `
	INSERT INTO credentials
		(id, client_id, kind, label, username, secret, notes, date_created, date_updated)
	VALUES
		(:id, :client_id, :kind, :label, :username, :secret, :notes, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCredential(crd)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a credential document in the database and reports the
// rows affected. The clients join pins the statement to the workspace.
func (s *Store) Update(ctx context.Context, crd credentialbus.Credential) (int64, error) {
	const q = `
	UPDATE
		credentials
	SET
		kind = :kind,
		label = :label,
		username = :username,
		secret = :secret,
		notes = :notes,
		date_updated = :date_updated
	WHERE
		id = :id AND client_id IN (SELECT id FROM clients WHERE workspace_id = :workspace_id)`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBCredential(crd))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes a credential from the database and reports the rows
// affected.
func (s *Store) Delete(ctx context.Context, crd credentialbus.Credential) (int64, error) {
	const q = `
	DELETE FROM
		credentials
	WHERE
		id = :id AND client_id IN (SELECT id FROM clients WHERE workspace_id = :workspace_id)`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBCredential(crd))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryByClient retrieves the credentials stored for a client.
func (s *Store) QueryByClient(ctx context.Context, clientID uuid.UUID) ([]credentialbus.Credential, error) {
	data := struct {
		ClientID string `db:"client_id"`
	}{
		ClientID: clientID.String(),
	}

	const q = `
	SELECT
		cr.id, cr.client_id, c.workspace_id, cr.kind, cr.label, cr.username, cr.secret, cr.notes, cr.date_created, cr.date_updated
	FROM
		credentials AS cr
	JOIN
		clients AS c ON c.id = cr.client_id
	WHERE
		cr.client_id = :client_id
	ORDER BY
		cr.date_created`

	var dbCrds []credentialDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbCrds); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	crds := make([]credentialbus.Credential, len(dbCrds))
	for i, db := range dbCrds {
		crds[i] = toBusCredential(db)
	}

	return crds, nil
}

// QueryByID gets the specified credential scoped to a workspace through its
// client.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, credentialID uuid.UUID) (credentialbus.Credential, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          credentialID.String(),
	}

	const q = `
	SELECT
		cr.id, cr.client_id, c.workspace_id, cr.kind, cr.label, cr.username, cr.secret, cr.notes, cr.date_created, cr.date_updated
	FROM
		credentials AS cr
	JOIN
		clients AS c ON c.id = cr.client_id
	WHERE
		cr.id = :id AND c.workspace_id = :workspace_id`

	var dbCrd credentialDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCrd); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return credentialbus.Credential{}, fmt.Errorf("db: %w", credentialbus.ErrNotFound)
		}
		return credentialbus.Credential{}, fmt.Errorf("db: %w", err)
	}

	return toBusCredential(dbCrd), nil
}
