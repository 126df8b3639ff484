package invitebus_test

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/notify"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/stretchr/testify/require"
)

var (
	wsA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	wsB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func memberOf(ws uuid.UUID) tenancy.Principal {
	return tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{ws: role.Admin})
}

type fakeStore struct {
	clients     map[uuid.UUID]uuid.UUID
	invitations map[uuid.UUID]invitebus.Invitation
	bindings    map[uuid.UUID]invitebus.Binding
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients:     make(map[uuid.UUID]uuid.UUID),
		invitations: make(map[uuid.UUID]invitebus.Invitation),
		bindings:    make(map[uuid.UUID]invitebus.Binding),
	}
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (invitebus.Storer, error) {
	return s, nil
}

func (s *fakeStore) ClientWorkspace(_ context.Context, clientID uuid.UUID) (uuid.UUID, error) {
	ws, exists := s.clients[clientID]
	if !exists {
		return uuid.Nil, invitebus.ErrNotFound
	}
	return ws, nil
}

func (s *fakeStore) CreateInvitation(_ context.Context, inv invitebus.Invitation) error {
	s.invitations[inv.ID] = inv
	return nil
}

func (s *fakeStore) ConsumeInvitation(_ context.Context, inv invitebus.Invitation) (int64, error) {
	if _, exists := s.invitations[inv.ID]; !exists {
		return 0, nil
	}
	s.invitations[inv.ID] = inv
	return 1, nil
}

func (s *fakeStore) DeleteInvitation(_ context.Context, inv invitebus.Invitation) (int64, error) {
	if _, exists := s.invitations[inv.ID]; !exists {
		return 0, nil
	}
	delete(s.invitations, inv.ID)
	return 1, nil
}

func (s *fakeStore) QueryInvitations(_ context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) ([]invitebus.Invitation, error) {
	var invs []invitebus.Invitation
	for _, inv := range s.invitations {
		if inv.WorkspaceID == workspaceID && inv.ClientID == clientID {
			invs = append(invs, inv)
		}
	}
	return invs, nil
}

func (s *fakeStore) QueryInvitationByID(_ context.Context, workspaceID uuid.UUID, invitationID uuid.UUID) (invitebus.Invitation, error) {
	inv, exists := s.invitations[invitationID]
	if !exists || inv.WorkspaceID != workspaceID {
		return invitebus.Invitation{}, invitebus.ErrNotFound
	}
	return inv, nil
}

func (s *fakeStore) QueryInvitationByToken(_ context.Context, token string) (invitebus.Invitation, error) {
	for _, inv := range s.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return invitebus.Invitation{}, invitebus.ErrNotFound
}

func (s *fakeStore) CreateBinding(_ context.Context, bnd invitebus.Binding) error {
	for _, b := range s.bindings {
		if b.ClientID == bnd.ClientID && b.UserID == bnd.UserID {
			return invitebus.ErrAlreadyBound
		}
	}
	s.bindings[bnd.ID] = bnd
	return nil
}

func (s *fakeStore) QueryBinding(_ context.Context, clientID uuid.UUID, userID uuid.UUID) (invitebus.Binding, error) {
	for _, b := range s.bindings {
		if b.ClientID == clientID && b.UserID == userID {
			return b, nil
		}
	}
	return invitebus.Binding{}, invitebus.ErrNotFound
}

func (s *fakeStore) QueryBindingsByUser(_ context.Context, userID uuid.UUID) ([]invitebus.Binding, error) {
	var bnds []invitebus.Binding
	for _, b := range s.bindings {
		if b.UserID == userID {
			bnds = append(bnds, b)
		}
	}
	return bnds, nil
}

// =============================================================================

type nopNotifier struct{}

func (nopNotifier) Send(_ context.Context, _ notify.Message) error {
	return nil
}

func setup(t *testing.T) (*invitebus.Core, *fakeStore, uuid.UUID) {
	t.Helper()

	store := newFakeStore()
	clientID := uuid.New()
	store.clients[clientID] = wsA

	return invitebus.NewCore(store, nopNotifier{}), store, clientID
}

func Test_Create(t *testing.T) {
	core, _, clientID := setup(t)
	ctx := context.Background()

	inv, err := core.Create(ctx, memberOf(wsA), wsA, invitebus.NewInvitation{
		ClientID: clientID,
		Email:    mail.Address{Address: "ada@example.com"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, inv.Token)
	require.Equal(t, wsA, inv.WorkspaceID)
	require.True(t, inv.ExpiresAt.After(time.Now()))
	require.False(t, inv.Consumed())
}

func Test_Create_ClientOutsideWorkspace(t *testing.T) {
	core, _, clientID := setup(t)
	ctx := context.Background()

	// A member of workspace B cannot invite against workspace A's client,
	// and naming workspace B with workspace A's client fails the same way.
	_, err := core.Create(ctx, memberOf(wsB), wsA, invitebus.NewInvitation{ClientID: clientID})
	require.ErrorIs(t, err, invitebus.ErrNotFound)

	_, err = core.Create(ctx, memberOf(wsB), wsB, invitebus.NewInvitation{ClientID: clientID})
	require.ErrorIs(t, err, invitebus.ErrNotFound)
}

func Test_Resolve(t *testing.T) {
	core, store, clientID := setup(t)
	ctx := context.Background()

	inv, err := core.Create(ctx, memberOf(wsA), wsA, invitebus.NewInvitation{ClientID: clientID})
	require.NoError(t, err)

	got, err := core.Resolve(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)

	_, err = core.Resolve(ctx, "no-such-token")
	require.ErrorIs(t, err, invitebus.ErrNotFound)

	// Lapse the invitation in place.
	lapsed := store.invitations[inv.ID]
	lapsed.ExpiresAt = time.Now().Add(-time.Hour)
	store.invitations[inv.ID] = lapsed

	_, err = core.Resolve(ctx, inv.Token)
	require.ErrorIs(t, err, invitebus.ErrExpired)
}

func Test_Accept_Idempotent(t *testing.T) {
	core, _, clientID := setup(t)
	ctx := context.Background()
	userID := uuid.New()

	inv, err := core.Create(ctx, memberOf(wsA), wsA, invitebus.NewInvitation{ClientID: clientID})
	require.NoError(t, err)

	first, err := core.Accept(ctx, userID, inv.Token)
	require.NoError(t, err)
	require.Equal(t, clientID, first.ClientID)
	require.Equal(t, wsA, first.WorkspaceID)
	require.Equal(t, userID, first.UserID)

	// Accepting again with the same user returns the same binding.
	second, err := core.Accept(ctx, userID, inv.Token)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// A different user arriving afterwards is told the invitation is gone.
	_, err = core.Accept(ctx, uuid.New(), inv.Token)
	require.ErrorIs(t, err, invitebus.ErrConsumed)

	// And resolving a consumed invitation says so.
	_, err = core.Resolve(ctx, inv.Token)
	require.ErrorIs(t, err, invitebus.ErrConsumed)
}

func Test_Accept_Expired(t *testing.T) {
	core, store, clientID := setup(t)
	ctx := context.Background()

	inv, err := core.Create(ctx, memberOf(wsA), wsA, invitebus.NewInvitation{ClientID: clientID})
	require.NoError(t, err)

	lapsed := store.invitations[inv.ID]
	lapsed.ExpiresAt = time.Now().Add(-time.Hour)
	store.invitations[inv.ID] = lapsed

	_, err = core.Accept(ctx, uuid.New(), inv.Token)
	require.ErrorIs(t, err, invitebus.ErrExpired)
}

func Test_BindingsForUser(t *testing.T) {
	core, store, clientID := setup(t)
	ctx := context.Background()
	userID := uuid.New()

	otherClient := uuid.New()
	store.clients[otherClient] = wsB

	invA, err := core.Create(ctx, memberOf(wsA), wsA, invitebus.NewInvitation{ClientID: clientID})
	require.NoError(t, err)
	invB, err := core.Create(ctx, memberOf(wsB), wsB, invitebus.NewInvitation{ClientID: otherClient})
	require.NoError(t, err)

	_, err = core.Accept(ctx, userID, invA.Token)
	require.NoError(t, err)
	_, err = core.Accept(ctx, userID, invB.Token)
	require.NoError(t, err)

	bnds, err := core.BindingsForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, bnds, 2)
}
