// Package memberdb contains membership related CRUD functionality.
package memberdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for membership database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (memberbus.Storer, error) {
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

// Create inserts a new membership into the database.
func (s *Store) Create(ctx context.Context, mbr memberbus.Member) error {
	const q = `
	INSERT INTO workspace_members
		(id, workspace_id, user_id, role, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :user_id, :role, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMember(mbr)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			switch dupErr.Column {
			case "workspace_members_one_owner":
				return fmt.Errorf("namedexeccontext: %w", memberbus.ErrSecondOwner)
			}
			return fmt.Errorf("namedexeccontext: %w", memberbus.ErrAlreadyMember)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a membership document in the database. The statement is
// constrained to the membership's workspace so a cross-tenant id affects
// zero rows.
func (s *Store) Update(ctx context.Context, mbr memberbus.Member) error {
	const q = `
	UPDATE
		workspace_members
	SET
		role = :role,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMember(mbr)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", memberbus.ErrSecondOwner)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a membership from the database.
func (s *Store) Delete(ctx context.Context, mbr memberbus.Member) error {
	const q = `
	DELETE FROM
		workspace_members
	WHERE
		id = :id AND workspace_id = :workspace_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMember(mbr)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified membership scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, memberID uuid.UUID) (memberbus.Member, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          memberID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, user_id, role, date_created, date_updated
	FROM
		workspace_members
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbMbr memberDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMbr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return memberbus.Member{}, fmt.Errorf("db: %w", memberbus.ErrNotFound)
		}
		return memberbus.Member{}, fmt.Errorf("db: %w", err)
	}

	return toBusMember(dbMbr)
}

// QueryByWorkspace returns the team of a workspace joined with the user
// identity.
func (s *Store) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]memberbus.Detail, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
	}{
		WorkspaceID: workspaceID.String(),
	}

	const q = `
	SELECT
		m.id, m.workspace_id, m.user_id, m.role, m.date_created, m.date_updated,
		u.name AS user_name, u.email AS user_email
	FROM
		workspace_members AS m
	JOIN
		admin_users AS u ON u.id = m.user_id
	WHERE
		m.workspace_id = :workspace_id
	ORDER BY
		m.date_created`

	var dbDtls []detailDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbDtls); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusDetails(dbDtls)
}

// QueryByUser returns every membership held by a user.
func (s *Store) QueryByUser(ctx context.Context, userID uuid.UUID) ([]memberbus.Member, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, user_id, role, date_created, date_updated
	FROM
		workspace_members
	WHERE
		user_id = :user_id`

	var dbMbrs []memberDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbMbrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMembers(dbMbrs)
}
