// Package invitebus provides business access to client invitations and the
// account bindings accepting one creates.
package invitebus

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/notify"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// Set of error variables for invitation handling. Resolve and Accept report
// expired and consumed distinctly so the invited party gets an actionable
// answer, while cross-tenant access stays a plain not found.
var (
	ErrNotFound     = errors.New("invitation not found")
	ErrExpired      = errors.New("invitation expired")
	ErrConsumed     = errors.New("invitation already consumed")
	ErrAlreadyBound = errors.New("user already bound to client")
)

// DefaultTTL is how long an invitation stays acceptable.
const DefaultTTL = 7 * 24 * time.Hour

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	ClientWorkspace(ctx context.Context, clientID uuid.UUID) (uuid.UUID, error)
	CreateInvitation(ctx context.Context, inv Invitation) error
	ConsumeInvitation(ctx context.Context, inv Invitation) (int64, error)
	DeleteInvitation(ctx context.Context, inv Invitation) (int64, error)
	QueryInvitations(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) ([]Invitation, error)
	QueryInvitationByID(ctx context.Context, workspaceID uuid.UUID, invitationID uuid.UUID) (Invitation, error)
	QueryInvitationByToken(ctx context.Context, token string) (Invitation, error)
	CreateBinding(ctx context.Context, bnd Binding) error
	QueryBinding(ctx context.Context, clientID uuid.UUID, userID uuid.UUID) (Binding, error)
	QueryBindingsByUser(ctx context.Context, userID uuid.UUID) ([]Binding, error)
}

// Core manages the set of APIs for invitation access.
type Core struct {
	storer   Storer
	notifier notify.Notifier
}

// NewCore constructs an invitation core API for use.
func NewCore(storer Storer, notifier notify.Notifier) *Core {
	return &Core{
		storer:   storer,
		notifier: notifier,
	}
}

// NewWithTx constructs a new Core value that will use the specified
// transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	core := Core{
		storer:   storer,
		notifier: c.notifier,
	}

	return &core, nil
}

// Create issues an invitation binding an email address to a client of the
// workspace. The client must belong to the workspace or the whole call
// reports not found.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, ni NewInvitation) (Invitation, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.ClientInvitations, tenancy.OpInsert, workspaceID) {
		return Invitation{}, ErrNotFound
	}

	clientWS, err := c.storer.ClientWorkspace(ctx, ni.ClientID)
	if err != nil {
		return Invitation{}, ErrNotFound
	}
	if clientWS != workspaceID {
		return Invitation{}, ErrNotFound
	}

	token, err := generateToken()
	if err != nil {
		return Invitation{}, fmt.Errorf("generatetoken: %w", err)
	}

	now := time.Now()

	inv := Invitation{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ClientID:    ni.ClientID,
		Email:       ni.Email,
		Token:       token,
		ExpiresAt:   now.Add(DefaultTTL),
		CreatedAt:   now,
	}

	if err := c.storer.CreateInvitation(ctx, inv); err != nil {
		return Invitation{}, fmt.Errorf("createinvitation: %w", err)
	}

	// Delivery is best effort. The invitation stands even when the
	// notification cannot be sent.
	msg := notify.Message{
		To:      inv.Email.Address,
		Subject: "You have been invited to a client portal",
		Body:    "Use your invitation token to join: " + inv.Token,
	}
	_ = c.notifier.Send(ctx, msg)

	return inv, nil
}

// Resolve looks up an invitation by its token on behalf of the invited
// party. Unknown tokens, lapsed invitations and consumed invitations each
// report their own error.
func (c *Core) Resolve(ctx context.Context, token string) (Invitation, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.resolve")
	defer span.End()

	inv, err := c.storer.QueryInvitationByToken(ctx, token)
	if err != nil {
		return Invitation{}, ErrNotFound
	}

	if inv.Consumed() {
		return Invitation{}, ErrConsumed
	}
	if inv.Expired(time.Now()) {
		return Invitation{}, ErrExpired
	}

	return inv, nil
}

// Accept consumes an invitation for the given user and creates the binding
// between that user and the client. Accepting the same invitation again with
// the same user returns the existing binding unchanged.
func (c *Core) Accept(ctx context.Context, userID uuid.UUID, token string) (Binding, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.accept")
	defer span.End()

	inv, err := c.storer.QueryInvitationByToken(ctx, token)
	if err != nil {
		return Binding{}, ErrNotFound
	}

	if inv.Consumed() {
		// The invitation was already burned. If this very user burned it
		// the accept is a retry and the existing binding answers it.
		if inv.ConsumedBy != nil && *inv.ConsumedBy == userID {
			bnd, err := c.storer.QueryBinding(ctx, inv.ClientID, userID)
			if err != nil {
				return Binding{}, ErrConsumed
			}
			return bnd, nil
		}
		return Binding{}, ErrConsumed
	}

	if inv.Expired(time.Now()) {
		return Binding{}, ErrExpired
	}

	bnd := Binding{
		ID:          uuid.New(),
		ClientID:    inv.ClientID,
		WorkspaceID: inv.WorkspaceID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}

	if err := c.storer.CreateBinding(ctx, bnd); err != nil {
		// A concurrent or earlier accept by the same user already bound
		// them. The existing row wins.
		if errors.Is(err, ErrAlreadyBound) {
			existing, qerr := c.storer.QueryBinding(ctx, inv.ClientID, userID)
			if qerr != nil {
				return Binding{}, fmt.Errorf("querybinding: %w", qerr)
			}
			bnd = existing
		} else {
			return Binding{}, fmt.Errorf("createbinding: %w", err)
		}
	}

	now := time.Now()
	inv.ConsumedAt = &now
	inv.ConsumedBy = &userID

	if _, err := c.storer.ConsumeInvitation(ctx, inv); err != nil {
		return Binding{}, fmt.Errorf("consumeinvitation: %w", err)
	}

	return bnd, nil
}

// Revoke deletes a pending invitation.
func (c *Core) Revoke(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, invitationID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.revoke")
	defer span.End()

	if !tenancy.Allow(p, tenancy.ClientInvitations, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	inv, err := c.storer.QueryInvitationByID(ctx, workspaceID, invitationID)
	if err != nil {
		return fmt.Errorf("queryinvitation: invitationID[%s]: %w", invitationID, err)
	}

	affected, err := c.storer.DeleteInvitation(ctx, inv)
	if err != nil {
		return fmt.Errorf("deleteinvitation: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves the invitations issued for a client of the workspace.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) ([]Invitation, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.ClientInvitations, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	invs, err := c.storer.QueryInvitations(ctx, p, workspaceID, clientID)
	if err != nil {
		return nil, fmt.Errorf("queryinvitations: %w", err)
	}

	return invs, nil
}

// BindingsForUser retrieves the client bindings of a user. Authentication
// uses this to assemble the portal grants of a principal.
func (c *Core) BindingsForUser(ctx context.Context, userID uuid.UUID) ([]Binding, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.bindingsforuser")
	defer span.End()

	bnds, err := c.storer.QueryBindingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("querybindings: userID[%s]: %w", userID, err)
	}

	return bnds, nil
}

// generateToken produces an opaque url safe token for an invitation.
func generateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
