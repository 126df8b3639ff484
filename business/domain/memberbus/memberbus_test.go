package memberbus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wsID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

type fakeStorer struct {
	members map[uuid.UUID]memberbus.Member
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{members: make(map[uuid.UUID]memberbus.Member)}
}

func (f *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (memberbus.Storer, error) {
	return f, nil
}

func (f *fakeStorer) Create(_ context.Context, mbr memberbus.Member) error {
	for _, m := range f.members {
		if m.WorkspaceID == mbr.WorkspaceID && m.UserID == mbr.UserID {
			return memberbus.ErrAlreadyMember
		}
	}
	f.members[mbr.ID] = mbr
	return nil
}

func (f *fakeStorer) Update(_ context.Context, mbr memberbus.Member) error {
	f.members[mbr.ID] = mbr
	return nil
}

func (f *fakeStorer) Delete(_ context.Context, mbr memberbus.Member) error {
	delete(f.members, mbr.ID)
	return nil
}

func (f *fakeStorer) QueryByID(_ context.Context, workspaceID uuid.UUID, memberID uuid.UUID) (memberbus.Member, error) {
	mbr, exists := f.members[memberID]
	if !exists || mbr.WorkspaceID != workspaceID {
		return memberbus.Member{}, memberbus.ErrNotFound
	}
	return mbr, nil
}

func (f *fakeStorer) QueryByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]memberbus.Detail, error) {
	var dtls []memberbus.Detail
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID {
			dtls = append(dtls, memberbus.Detail{Member: m})
		}
	}
	return dtls, nil
}

func (f *fakeStorer) QueryByUser(_ context.Context, userID uuid.UUID) ([]memberbus.Member, error) {
	var mbrs []memberbus.Member
	for _, m := range f.members {
		if m.UserID == userID {
			mbrs = append(mbrs, m)
		}
	}
	return mbrs, nil
}

// =============================================================================

type team struct {
	bus    *memberbus.Core
	owner  memberbus.Member
	admin  memberbus.Member
	member memberbus.Member
}

func principal(mbr memberbus.Member) tenancy.Principal {
	return tenancy.NewPrincipal(mbr.UserID, map[uuid.UUID]role.Role{
		mbr.WorkspaceID: mbr.Role,
	})
}

func newTeam(t *testing.T) team {
	t.Helper()
	ctx := context.Background()

	bus := memberbus.NewCore(newFakeStorer())

	owner, err := bus.CreateOwner(ctx, wsID, uuid.New())
	require.NoError(t, err)

	admin, err := bus.Add(ctx, principal(owner), wsID, uuid.New(), role.Admin)
	require.NoError(t, err)

	member, err := bus.Add(ctx, principal(admin), wsID, uuid.New(), role.Member)
	require.NoError(t, err)

	return team{bus: bus, owner: owner, admin: admin, member: member}
}

func Test_OwnerLocked(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	// Not even the owner can demote or remove the sole owner.
	for _, actor := range []memberbus.Member{tm.owner, tm.admin} {
		_, err := tm.bus.ChangeRole(ctx, principal(actor), wsID, tm.owner.ID, role.Member)
		assert.ErrorIs(t, err, memberbus.ErrOwnerLocked, "actor %s", actor.Role)

		err = tm.bus.Remove(ctx, principal(actor), wsID, tm.owner.ID)
		assert.ErrorIs(t, err, memberbus.ErrOwnerLocked, "actor %s", actor.Role)
	}
}

func Test_NoSecondOwner(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	_, err := tm.bus.Add(ctx, principal(tm.owner), wsID, uuid.New(), role.Owner)
	assert.ErrorIs(t, err, memberbus.ErrSecondOwner)

	_, err = tm.bus.ChangeRole(ctx, principal(tm.owner), wsID, tm.admin.ID, role.Owner)
	assert.ErrorIs(t, err, memberbus.ErrSecondOwner)
}

func Test_AdminLimits(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	secondAdmin, err := tm.bus.Add(ctx, principal(tm.owner), wsID, uuid.New(), role.Admin)
	require.NoError(t, err)

	// An admin cannot touch another admin.
	_, err = tm.bus.ChangeRole(ctx, principal(tm.admin), wsID, secondAdmin.ID, role.Member)
	assert.ErrorIs(t, err, memberbus.ErrForbidden)

	err = tm.bus.Remove(ctx, principal(tm.admin), wsID, secondAdmin.ID)
	assert.ErrorIs(t, err, memberbus.ErrForbidden)

	// An admin can manage plain members.
	err = tm.bus.Remove(ctx, principal(tm.admin), wsID, tm.member.ID)
	assert.NoError(t, err)
}

func Test_MemberCannotManage(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	second, err := tm.bus.Add(ctx, principal(tm.admin), wsID, uuid.New(), role.Member)
	require.NoError(t, err)

	_, err = tm.bus.Add(ctx, principal(tm.member), wsID, uuid.New(), role.Member)
	assert.ErrorIs(t, err, memberbus.ErrForbidden)

	_, err = tm.bus.ChangeRole(ctx, principal(tm.member), wsID, second.ID, role.Admin)
	assert.ErrorIs(t, err, memberbus.ErrForbidden)

	err = tm.bus.Remove(ctx, principal(tm.member), wsID, second.ID)
	assert.ErrorIs(t, err, memberbus.ErrForbidden)
}

func Test_SelfRemovalBlocked(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	err := tm.bus.Remove(ctx, principal(tm.admin), wsID, tm.admin.ID)
	assert.ErrorIs(t, err, memberbus.ErrSelfRemoval)
}

func Test_CrossWorkspaceDenied(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	foreignWS := uuid.New()
	outsider := tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{
		foreignWS: role.Owner,
	})

	// An owner of another workspace looks like a stranger here.
	_, err := tm.bus.QueryByWorkspace(ctx, outsider, wsID)
	assert.ErrorIs(t, err, memberbus.ErrNotFound)

	_, err = tm.bus.Add(ctx, outsider, wsID, uuid.New(), role.Member)
	assert.ErrorIs(t, err, memberbus.ErrNotFound)

	_, err = tm.bus.ChangeRole(ctx, outsider, wsID, tm.member.ID, role.Admin)
	assert.ErrorIs(t, err, memberbus.ErrNotFound)

	err = tm.bus.Remove(ctx, outsider, wsID, tm.member.ID)
	assert.ErrorIs(t, err, memberbus.ErrNotFound)
}

func Test_OnlyOwnerPromotesToAdmin(t *testing.T) {
	tm := newTeam(t)
	ctx := context.Background()

	_, err := tm.bus.ChangeRole(ctx, principal(tm.admin), wsID, tm.member.ID, role.Admin)
	assert.ErrorIs(t, err, memberbus.ErrForbidden)

	mbr, err := tm.bus.ChangeRole(ctx, principal(tm.owner), wsID, tm.member.ID, role.Admin)
	require.NoError(t, err)
	assert.True(t, mbr.Role.Equal(role.Admin))
}
