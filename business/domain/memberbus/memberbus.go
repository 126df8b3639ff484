// Package memberbus provides business access to workspace memberships and
// enforces the team management rules: one immutable owner per workspace,
// admins manage members but never other admins or the owner, and nobody
// removes their own membership through this path.
package memberbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

var (
	ErrNotFound      = errors.New("member not found")
	ErrAlreadyMember = errors.New("user is already a member")
	ErrOwnerLocked   = errors.New("the workspace owner cannot be modified or removed")
	ErrSecondOwner   = errors.New("a workspace has exactly one owner")
	ErrSelfRemoval   = errors.New("members cannot remove their own membership")
	ErrForbidden     = errors.New("the actor's role does not permit this change")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, mbr Member) error
	Update(ctx context.Context, mbr Member) error
	Delete(ctx context.Context, mbr Member) error
	QueryByID(ctx context.Context, workspaceID uuid.UUID, memberID uuid.UUID) (Member, error)
	QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Detail, error)
	QueryByUser(ctx context.Context, userID uuid.UUID) ([]Member, error)
}

// Core manages the set of APIs for membership access.
type Core struct {
	storer Storer
}

// NewCore constructs a membership core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the storer with a storer
// that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// QueryMemberships returns every membership held by the specified user.
// This feeds principal construction on every authenticated request.
func (c *Core) QueryMemberships(ctx context.Context, userID uuid.UUID) ([]Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.queryMemberships")
	defer span.End()

	mbrs, err := c.storer.QueryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return mbrs, nil
}

// QueryByWorkspace returns the team of the specified workspace on behalf
// of a principal.
func (c *Core) QueryByWorkspace(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Detail, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.queryByWorkspace")
	defer span.End()

	if !tenancy.Allow(p, tenancy.WorkspaceMembers, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	dtls, err := c.storer.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return dtls, nil
}

// CreateOwner binds the first user to a workspace as its owner. Used at
// setup time by the admin tooling, not a tenant-scoped call.
func (c *Core) CreateOwner(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.createOwner")
	defer span.End()

	mbr, err := c.create(ctx, workspaceID, userID, role.Owner)
	if err != nil {
		return Member{}, err
	}

	return mbr, nil
}

// Add binds an existing user to the workspace with the specified role on
// behalf of a principal. A second owner can never be created through this
// path.
func (c *Core) Add(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, userID uuid.UUID, rl role.Role) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.add")
	defer span.End()

	if !tenancy.Allow(p, tenancy.WorkspaceMembers, tenancy.OpInsert, workspaceID) {
		return Member{}, ErrNotFound
	}

	actorRole, exists := p.Role(workspaceID)
	if !exists {
		return Member{}, ErrNotFound
	}

	if rl.Equal(role.Owner) {
		return Member{}, ErrSecondOwner
	}

	if !canManage(actorRole, rl) {
		return Member{}, ErrForbidden
	}

	return c.create(ctx, workspaceID, userID, rl)
}

// ChangeRole modifies the role of an existing member on behalf of a
// principal.
func (c *Core) ChangeRole(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, memberID uuid.UUID, rl role.Role) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.changeRole")
	defer span.End()

	if !tenancy.Allow(p, tenancy.WorkspaceMembers, tenancy.OpUpdate, workspaceID) {
		return Member{}, ErrNotFound
	}

	actorRole, exists := p.Role(workspaceID)
	if !exists {
		return Member{}, ErrNotFound
	}

	mbr, err := c.storer.QueryByID(ctx, workspaceID, memberID)
	if err != nil {
		return Member{}, fmt.Errorf("query: memberID[%s]: %w", memberID, err)
	}

	if mbr.Role.Equal(role.Owner) {
		return Member{}, ErrOwnerLocked
	}

	if rl.Equal(role.Owner) {
		return Member{}, ErrSecondOwner
	}

	if !canManage(actorRole, mbr.Role) || !canManage(actorRole, rl) {
		return Member{}, ErrForbidden
	}

	mbr.Role = rl
	mbr.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, mbr); err != nil {
		return Member{}, fmt.Errorf("update: %w", err)
	}

	return mbr, nil
}

// Remove deletes an existing membership on behalf of a principal.
func (c *Core) Remove(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, memberID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.remove")
	defer span.End()

	if !tenancy.Allow(p, tenancy.WorkspaceMembers, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	actorRole, exists := p.Role(workspaceID)
	if !exists {
		return ErrNotFound
	}

	mbr, err := c.storer.QueryByID(ctx, workspaceID, memberID)
	if err != nil {
		return fmt.Errorf("query: memberID[%s]: %w", memberID, err)
	}

	if mbr.Role.Equal(role.Owner) {
		return ErrOwnerLocked
	}

	if mbr.UserID == p.UserID() {
		return ErrSelfRemoval
	}

	if !canManage(actorRole, mbr.Role) {
		return ErrForbidden
	}

	if err := c.storer.Delete(ctx, mbr); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func (c *Core) create(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID, rl role.Role) (Member, error) {
	now := time.Now()

	mbr := Member{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        rl,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, mbr); err != nil {
		return Member{}, fmt.Errorf("create: %w", err)
	}

	return mbr, nil
}

// canManage reports whether the actor role may manage a member holding the
// target role. Owners manage admins and members, admins manage members
// only, members manage nobody.
func canManage(actor role.Role, target role.Role) bool {
	switch {
	case actor.Equal(role.Owner):
		return !target.Equal(role.Owner)
	case actor.Equal(role.Admin):
		return target.Equal(role.Member)
	}

	return false
}
