package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
)

// Objects routes authorize against.
const (
	ObjRecords   = "records"
	ObjTeam      = "team"
	ObjSettings  = "settings"
	ObjIntake    = "intake"
	ObjBilling   = "billing"
	ObjWorkspace = "workspace"
)

// Actions routes authorize against.
const (
	ActRead   = "read"
	ActWrite  = "write"
	ActManage = "manage"
)

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Role inheritance and per-role grants. OWNER inherits ADMIN which
// inherits MEMBER, so a grant is declared once at the lowest role that
// holds it.
var (
	groupings = [][]string{
		{"ROLE:OWNER", "ROLE:ADMIN"},
		{"ROLE:ADMIN", "ROLE:MEMBER"},
	}

	grants = [][]string{
		{"ROLE:MEMBER", ObjRecords, ActRead},
		{"ROLE:MEMBER", ObjRecords, ActWrite},
		{"ROLE:MEMBER", ObjTeam, ActRead},
		{"ROLE:MEMBER", ObjSettings, ActRead},
		{"ROLE:MEMBER", ObjIntake, ActRead},

		{"ROLE:ADMIN", ObjTeam, ActManage},
		{"ROLE:ADMIN", ObjIntake, ActManage},

		{"ROLE:OWNER", ObjSettings, ActWrite},
		{"ROLE:OWNER", ObjBilling, ActManage},
		{"ROLE:OWNER", ObjWorkspace, ActManage},
	}
)

// policy evaluates role permission rules with an in-memory casbin
// enforcer. The rule set is fixed at construction.
type policy struct {
	enforcer *casbin.Enforcer
}

func newPolicy() (*policy, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("add grouping %v: %w", g, err)
		}
	}

	for _, p := range grants {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}

	return &policy{enforcer: e}, nil
}

func (p *policy) check(rl role.Role, obj string, act string) error {
	sub := "ROLE:" + rl.String()

	ok, err := p.enforcer.Enforce(sub, obj, act)
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("denied")
	}

	return nil
}
