package tenancy_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wsA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	wsB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func memberOf(wsID uuid.UUID) tenancy.Principal {
	return tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{
		wsID: role.Member,
	})
}

func Test_Allow_CrossTenant(t *testing.T) {
	pA := memberOf(wsA)

	for _, tbl := range tenancy.Tables {
		for _, op := range tenancy.Operations {
			assert.True(t, tenancy.Allow(pA, tbl, op, wsA),
				"member of A denied %s on %s in own workspace", op, tbl.Name)

			assert.False(t, tenancy.Allow(pA, tbl, op, wsB),
				"member of A allowed %s on %s in workspace B", op, tbl.Name)
		}
	}
}

func Test_Allow_Anonymous(t *testing.T) {
	anon := tenancy.Anonymous()

	for _, tbl := range tenancy.Tables {
		for _, op := range tenancy.Operations {
			allowed := tenancy.Allow(anon, tbl, op, wsA)

			if tbl.Class == tenancy.PublicInsertOnly && op == tenancy.OpInsert {
				assert.True(t, allowed, "anonymous insert on %s denied", tbl.Name)
				continue
			}

			assert.False(t, allowed, "anonymous allowed %s on %s", op, tbl.Name)
		}
	}
}

func Test_Allow_NoMemberships(t *testing.T) {
	p := tenancy.NewPrincipal(uuid.New(), nil)

	for _, tbl := range tenancy.Tables {
		for _, op := range tenancy.Operations {
			assert.False(t, tenancy.Allow(p, tbl, op, wsA),
				"workspace-less principal allowed %s on %s", op, tbl.Name)
		}
	}
}

func Test_Allow_ZeroWorkspace(t *testing.T) {
	p := memberOf(wsA)

	for _, tbl := range tenancy.Tables {
		assert.False(t, tenancy.Allow(p, tbl, tenancy.OpInsert, uuid.Nil))
	}
	assert.False(t, tenancy.Allow(tenancy.Anonymous(), tenancy.Leads, tenancy.OpInsert, uuid.Nil))
}

func Test_AllowClient(t *testing.T) {
	clientID := uuid.New()

	t.Run("member", func(t *testing.T) {
		p := memberOf(wsA)

		for _, op := range tenancy.Operations {
			assert.True(t, tenancy.AllowClient(p, tenancy.Credentials, op, clientID, wsA))
			assert.False(t, tenancy.AllowClient(p, tenancy.Credentials, op, clientID, wsB))
		}
	})

	t.Run("portal grant", func(t *testing.T) {
		p := tenancy.NewPortalPrincipal(uuid.New(), map[uuid.UUID]uuid.UUID{
			clientID: wsA,
		})

		assert.True(t, tenancy.AllowClient(p, tenancy.Credentials, tenancy.OpSelect, clientID, wsA))

		for _, op := range []tenancy.Operation{tenancy.OpInsert, tenancy.OpUpdate, tenancy.OpDelete} {
			assert.False(t, tenancy.AllowClient(p, tenancy.Credentials, op, clientID, wsA))
		}

		assert.False(t, tenancy.AllowClient(p, tenancy.Credentials, tenancy.OpSelect, uuid.New(), wsA))
	})

	t.Run("directly scoped table rejected", func(t *testing.T) {
		p := memberOf(wsA)
		assert.False(t, tenancy.AllowClient(p, tenancy.Projects, tenancy.OpSelect, clientID, wsA))
	})
}

// =============================================================================

type row struct {
	id          uuid.UUID
	workspaceID uuid.UUID
}

func visible(p tenancy.Principal, tbl tenancy.Table, rows []row) []row {
	var vis []row
	for _, r := range rows {
		if tenancy.Allow(p, tbl, tenancy.OpSelect, r.workspaceID) {
			vis = append(vis, r)
		}
	}
	return vis
}

func Test_CountingInvariant(t *testing.T) {
	pA := memberOf(wsA)
	pB := memberOf(wsB)

	for _, tbl := range tenancy.Tables {
		rows := []row{
			{uuid.New(), wsA},
			{uuid.New(), wsA},
			{uuid.New(), wsB},
		}

		countA := len(visible(pA, tbl, rows))
		countB := len(visible(pB, tbl, rows))

		assert.Equal(t, len(rows), countA+countB,
			"rows leaked or orphaned in %s", tbl.Name)
	}
}

func Test_Scenario_ProjectIsolation(t *testing.T) {
	p1 := row{uuid.New(), wsA}
	p2 := row{uuid.New(), wsB}
	rows := []row{p1, p2}

	pA := memberOf(wsA)

	vis := visible(pA, tenancy.Projects, rows)
	require.Len(t, vis, 1)
	assert.Equal(t, p1.id, vis[0].id)

	assert.False(t, tenancy.Allow(pA, tenancy.Projects, tenancy.OpUpdate, p2.workspaceID))
	assert.False(t, tenancy.Allow(pA, tenancy.Projects, tenancy.OpDelete, p2.workspaceID))
}

func Test_Scenario_AnonymousLeadIntake(t *testing.T) {
	anon := tenancy.Anonymous()

	assert.True(t, tenancy.Allow(anon, tenancy.Leads, tenancy.OpInsert, wsA))
	assert.False(t, tenancy.Allow(anon, tenancy.Leads, tenancy.OpSelect, wsA))
}

// =============================================================================

func Test_ScopeClause(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		p := tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{
			wsA: role.Admin,
		})

		clause, args := tenancy.ScopeClause(p, tenancy.Projects)
		assert.Equal(t, "workspace_id IN (:tenancy_ws_0)", clause)
		assert.Equal(t, map[string]any{"tenancy_ws_0": wsA}, args)
	})

	t.Run("direct multi", func(t *testing.T) {
		p := tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{
			wsA: role.Member,
			wsB: role.Member,
		})

		clause, args := tenancy.ScopeClause(p, tenancy.Tasks)
		assert.Equal(t, "workspace_id IN (:tenancy_ws_0, :tenancy_ws_1)", clause)
		assert.Equal(t, map[string]any{"tenancy_ws_0": wsA, "tenancy_ws_1": wsB}, args)
	})

	t.Run("indirect", func(t *testing.T) {
		p := tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{
			wsA: role.Owner,
		})

		clause, _ := tenancy.ScopeClause(p, tenancy.Credentials)
		want := "client_id IN (SELECT id FROM clients WHERE workspace_id IN (:tenancy_ws_0))"
		assert.Equal(t, want, clause)
	})

	t.Run("empty membership is false", func(t *testing.T) {
		for _, p := range []tenancy.Principal{
			tenancy.Anonymous(),
			tenancy.NewPrincipal(uuid.New(), nil),
		} {
			for _, tbl := range tenancy.Tables {
				clause, args := tenancy.ScopeClause(p, tbl)
				assert.Equal(t, "FALSE", clause, fmt.Sprintf("table %s", tbl.Name))
				assert.Empty(t, args)
			}
		}
	})
}
