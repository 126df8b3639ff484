package leadbus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/stretchr/testify/require"
)

var (
	wsA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	wsB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func memberOf(wss ...uuid.UUID) tenancy.Principal {
	memberships := make(map[uuid.UUID]role.Role)
	for _, ws := range wss {
		memberships[ws] = role.Member
	}
	return tenancy.NewPrincipal(uuid.New(), memberships)
}

// fakeStore keeps intake links and leads in memory so the business rules can
// be exercised without a database.
type fakeStore struct {
	links map[uuid.UUID]leadbus.IntakeLink
	leads map[uuid.UUID]leadbus.Lead
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		links: make(map[uuid.UUID]leadbus.IntakeLink),
		leads: make(map[uuid.UUID]leadbus.Lead),
	}
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (leadbus.Storer, error) {
	return s, nil
}

func (s *fakeStore) CreateLink(ctx context.Context, lnk leadbus.IntakeLink) error {
	s.links[lnk.ID] = lnk
	return nil
}

func (s *fakeStore) UpdateLink(ctx context.Context, lnk leadbus.IntakeLink) (int64, error) {
	cur, exists := s.links[lnk.ID]
	if !exists || cur.WorkspaceID != lnk.WorkspaceID {
		return 0, nil
	}
	s.links[lnk.ID] = lnk
	return 1, nil
}

func (s *fakeStore) DeleteLink(ctx context.Context, lnk leadbus.IntakeLink) (int64, error) {
	cur, exists := s.links[lnk.ID]
	if !exists || cur.WorkspaceID != lnk.WorkspaceID {
		return 0, nil
	}
	delete(s.links, lnk.ID)
	return 1, nil
}

func (s *fakeStore) QueryLinks(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]leadbus.IntakeLink, error) {
	var lnks []leadbus.IntakeLink
	for _, lnk := range s.links {
		if lnk.WorkspaceID == workspaceID {
			lnks = append(lnks, lnk)
		}
	}
	return lnks, nil
}

func (s *fakeStore) QueryLinkByID(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (leadbus.IntakeLink, error) {
	lnk, exists := s.links[linkID]
	if !exists || lnk.WorkspaceID != workspaceID {
		return leadbus.IntakeLink{}, leadbus.ErrNotFound
	}
	return lnk, nil
}

func (s *fakeStore) QueryLinkByToken(ctx context.Context, token string) (leadbus.IntakeLink, error) {
	for _, lnk := range s.links {
		if lnk.Token == token {
			return lnk, nil
		}
	}
	return leadbus.IntakeLink{}, leadbus.ErrLinkNotFound
}

func (s *fakeStore) CreateLead(ctx context.Context, led leadbus.Lead) error {
	s.leads[led.ID] = led
	return nil
}

func (s *fakeStore) UpdateLead(ctx context.Context, led leadbus.Lead) (int64, error) {
	cur, exists := s.leads[led.ID]
	if !exists || cur.WorkspaceID != led.WorkspaceID {
		return 0, nil
	}
	s.leads[led.ID] = led
	return 1, nil
}

func (s *fakeStore) QueryLeads(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]leadbus.Lead, error) {
	var leds []leadbus.Lead
	for _, led := range s.leads {
		if led.WorkspaceID == workspaceID {
			leds = append(leds, led)
		}
	}
	return leds, nil
}

func (s *fakeStore) QueryLeadByID(ctx context.Context, workspaceID uuid.UUID, leadID uuid.UUID) (leadbus.Lead, error) {
	led, exists := s.leads[leadID]
	if !exists || led.WorkspaceID != workspaceID {
		return leadbus.Lead{}, leadbus.ErrNotFound
	}
	return led, nil
}

func newTestCore(t *testing.T) (*leadbus.Core, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	return leadbus.NewCore(store), store
}

func Test_SubmitPublic(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()

	lnk, err := core.CreateLink(ctx, memberOf(wsA), wsA, leadbus.NewIntakeLink{Name: name.MustParse("Website")})
	require.NoError(t, err)
	require.True(t, lnk.Active)
	require.NotEmpty(t, lnk.Token)

	led, err := core.SubmitPublic(ctx, lnk.Token, leadbus.NewLead{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, wsA, led.WorkspaceID)
	require.Equal(t, lnk.ID, led.IntakeLinkID)
	require.Equal(t, leadbus.StatusNew, led.Status)
}

func Test_SubmitPublic_UnknownToken(t *testing.T) {
	core, _ := newTestCore(t)

	_, err := core.SubmitPublic(context.Background(), "no-such-token", leadbus.NewLead{Name: "Ada"})
	require.ErrorIs(t, err, leadbus.ErrLinkNotFound)
}

func Test_SubmitPublic_DeactivatedLink(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()
	p := memberOf(wsA)

	lnk, err := core.CreateLink(ctx, p, wsA, leadbus.NewIntakeLink{Name: name.MustParse("Website")})
	require.NoError(t, err)

	inactive := false
	_, err = core.UpdateLink(ctx, p, wsA, lnk.ID, leadbus.UpdateIntakeLink{Active: &inactive})
	require.NoError(t, err)

	_, err = core.SubmitPublic(ctx, lnk.Token, leadbus.NewLead{Name: "Ada"})
	require.ErrorIs(t, err, leadbus.ErrLinkNotFound)
}

func Test_Leads_CrossTenant(t *testing.T) {
	core, _ := newTestCore(t)
	ctx := context.Background()

	lnk, err := core.CreateLink(ctx, memberOf(wsA), wsA, leadbus.NewIntakeLink{Name: name.MustParse("Website")})
	require.NoError(t, err)

	led, err := core.SubmitPublic(ctx, lnk.Token, leadbus.NewLead{Name: "Ada"})
	require.NoError(t, err)

	outsider := memberOf(wsB)

	_, err = core.QueryLeads(ctx, outsider, wsA)
	require.ErrorIs(t, err, leadbus.ErrNotFound)

	_, err = core.QueryLeadByID(ctx, outsider, wsA, led.ID)
	require.ErrorIs(t, err, leadbus.ErrNotFound)

	status := "QUALIFIED"
	_, err = core.UpdateLead(ctx, outsider, wsA, led.ID, leadbus.UpdateLead{Status: &status})
	require.ErrorIs(t, err, leadbus.ErrNotFound)

	// Anonymous principals never read leads back.
	_, err = core.QueryLeads(ctx, tenancy.Anonymous(), wsA)
	require.ErrorIs(t, err, leadbus.ErrNotFound)
}
