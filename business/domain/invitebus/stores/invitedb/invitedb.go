// Package invitedb contains invitation and binding related CRUD
// functionality.
package invitedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for invitation database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (invitebus.Storer, error) {
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
			return uuid.Nil, fmt.Errorf("db: %w", invitebus.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("db: %w", err)
	}

	return row.WorkspaceID, nil
}

// CreateInvitation inserts a new invitation into the database.
func (s *Store) CreateInvitation(ctx context.Context, inv invitebus.Invitation) error {
	const q = `
	INSERT INTO client_invitations
		(id, client_id, email, token, expires_at, consumed_at, consumed_by, date_created)
	VALUES
		(:id, :client_id, :email, :token, :expires_at, :consumed_at, :consumed_by, :date_created)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBInvitation(inv)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// ConsumeInvitation stamps the consumption columns of an invitation and
// reports the rows affected.
func (s *Store) ConsumeInvitation(ctx context.Context, inv invitebus.Invitation) (int64, error) {
	const q = `
	UPDATE
		client_invitations
	SET
		consumed_at = :consumed_at,
		consumed_by = :consumed_by
	WHERE
		id = :id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBInvitation(inv))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// DeleteInvitation removes an invitation from the database and reports the
// rows affected. The clients join pins the statement to the workspace.
func (s *Store) DeleteInvitation(ctx context.Context, inv invitebus.Invitation) (int64, error) {
	data := struct {
		ID          string `db:"id"`
		WorkspaceID string `db:"workspace_id"`
	}{
		ID:          inv.ID.String(),
		WorkspaceID: inv.WorkspaceID.String(),
	}

	const q = `
	DELETE FROM
		client_invitations
	WHERE
		id = :id AND client_id IN (SELECT id FROM clients WHERE workspace_id = :workspace_id)`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, data)
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryInvitations retrieves the invitations of a client under the principal
// scope.
func (s *Store) QueryInvitations(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) ([]invitebus.Invitation, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.ClientInvitations)
	data["workspace_id"] = workspaceID
	data["client_id"] = clientID

	const q = `
	SELECT
		ci.id, c.workspace_id, ci.client_id, ci.email, ci.token, ci.expires_at, ci.consumed_at, ci.consumed_by, ci.date_created
	FROM
		client_invitations AS ci
	JOIN
		clients AS c ON c.id = ci.client_id
	WHERE
		c.workspace_id = :workspace_id AND ci.client_id = :client_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY ci.date_created DESC")

	var dbInvs []invitationDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbInvs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	invs := make([]invitebus.Invitation, len(dbInvs))
	for i, db := range dbInvs {
		invs[i] = toBusInvitation(db)
	}

	return invs, nil
}

// QueryInvitationByID gets the specified invitation scoped to a workspace
// through its client.
func (s *Store) QueryInvitationByID(ctx context.Context, workspaceID uuid.UUID, invitationID uuid.UUID) (invitebus.Invitation, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          invitationID.String(),
	}

	const q = `
	SELECT
		ci.id, c.workspace_id, ci.client_id, ci.email, ci.token, ci.expires_at, ci.consumed_at, ci.consumed_by, ci.date_created
	FROM
		client_invitations AS ci
	JOIN
		clients AS c ON c.id = ci.client_id
	WHERE
		ci.id = :id AND c.workspace_id = :workspace_id`

	var dbInv invitationDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbInv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return invitebus.Invitation{}, fmt.Errorf("db: %w", invitebus.ErrNotFound)
		}
		return invitebus.Invitation{}, fmt.Errorf("db: %w", err)
	}

	return toBusInvitation(dbInv), nil
}

// QueryInvitationByToken resolves an invitation by its token. This lookup
// runs on behalf of the invited party and has no workspace in hand.
func (s *Store) QueryInvitationByToken(ctx context.Context, token string) (invitebus.Invitation, error) {
	data := struct {
		Token string `db:"token"`
	}{
		Token: token,
	}

	const q = `
	SELECT
		ci.id, c.workspace_id, ci.client_id, ci.email, ci.token, ci.expires_at, ci.consumed_at, ci.consumed_by, ci.date_created
	FROM
		client_invitations AS ci
	JOIN
		clients AS c ON c.id = ci.client_id
	WHERE
		ci.token = :token`

	var dbInv invitationDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbInv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return invitebus.Invitation{}, fmt.Errorf("db: %w", invitebus.ErrNotFound)
		}
		return invitebus.Invitation{}, fmt.Errorf("db: %w", err)
	}

	return toBusInvitation(dbInv), nil
}

// CreateBinding inserts a new client user binding. A duplicate for the same
// client and user reports ErrAlreadyBound.
func (s *Store) CreateBinding(ctx context.Context, bnd invitebus.Binding) error {
	const q = `
	INSERT INTO client_users
		(id, client_id, user_id, date_created)
	VALUES
		(:id, :client_id, :user_id, :date_created)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBinding(bnd)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", invitebus.ErrAlreadyBound)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryBinding gets the binding between a client and a user.
func (s *Store) QueryBinding(ctx context.Context, clientID uuid.UUID, userID uuid.UUID) (invitebus.Binding, error) {
	data := struct {
		ClientID string `db:"client_id"`
		UserID   string `db:"user_id"`
	}{
		ClientID: clientID.String(),
		UserID:   userID.String(),
	}

	const q = `
	SELECT
		cu.id, cu.client_id, c.workspace_id, cu.user_id, cu.date_created
	FROM
		client_users AS cu
	JOIN
		clients AS c ON c.id = cu.client_id
	WHERE
		cu.client_id = :client_id AND cu.user_id = :user_id`

	var dbBnd bindingDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbBnd); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return invitebus.Binding{}, fmt.Errorf("db: %w", invitebus.ErrNotFound)
		}
		return invitebus.Binding{}, fmt.Errorf("db: %w", err)
	}

	return toBusBinding(dbBnd), nil
}

// QueryBindingsByUser retrieves all client bindings of a user.
func (s *Store) QueryBindingsByUser(ctx context.Context, userID uuid.UUID) ([]invitebus.Binding, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		cu.id, cu.client_id, c.workspace_id, cu.user_id, cu.date_created
	FROM
		client_users AS cu
	JOIN
		clients AS c ON c.id = cu.client_id
	WHERE
		cu.user_id = :user_id`

	var dbBnds []bindingDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbBnds); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	bnds := make([]invitebus.Binding, len(dbBnds))
	for i, db := range dbBnds {
		bnds[i] = toBusBinding(db)
	}

	return bnds, nil
}
