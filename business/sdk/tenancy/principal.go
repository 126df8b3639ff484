package tenancy

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
)

// Principal represents the caller every business operation acts on behalf
// of. It is passed explicitly down the call path rather than read from
// ambient state so the authorization rules stay unit-testable.
type Principal struct {
	userID       uuid.UUID
	memberships  map[uuid.UUID]role.Role
	clientGrants map[uuid.UUID]uuid.UUID
	anonymous    bool
}

// Anonymous constructs the unauthenticated principal.
func Anonymous() Principal {
	return Principal{anonymous: true}
}

// NewPrincipal constructs a principal for an authenticated user with the
// specified workspace memberships. A user with no memberships is valid and
// is denied on every workspace-scoped table.
func NewPrincipal(userID uuid.UUID, memberships map[uuid.UUID]role.Role) Principal {
	ms := make(map[uuid.UUID]role.Role, len(memberships))
	for wsID, rl := range memberships {
		ms[wsID] = rl
	}

	return Principal{
		userID:      userID,
		memberships: ms,
	}
}

// NewPortalPrincipal constructs a principal for an authenticated portal
// user holding access to specific clients. The grants map client ids to the
// workspace that owns each client.
func NewPortalPrincipal(userID uuid.UUID, clientGrants map[uuid.UUID]uuid.UUID) Principal {
	gs := make(map[uuid.UUID]uuid.UUID, len(clientGrants))
	for clientID, wsID := range clientGrants {
		gs[clientID] = wsID
	}

	return Principal{
		userID:       userID,
		clientGrants: gs,
	}
}

// UserID returns the id of the authenticated user. The zero uuid is
// returned for the anonymous principal.
func (p Principal) UserID() uuid.UUID {
	return p.userID
}

// IsAnonymous reports whether the principal is unauthenticated.
func (p Principal) IsAnonymous() bool {
	return p.anonymous
}

// Role returns the principal's role in the specified workspace.
func (p Principal) Role(workspaceID uuid.UUID) (role.Role, bool) {
	rl, exists := p.memberships[workspaceID]
	return rl, exists
}

// Member reports whether the principal holds a membership in the specified
// workspace.
func (p Principal) Member(workspaceID uuid.UUID) bool {
	_, exists := p.memberships[workspaceID]
	return exists
}

// WorkspaceIDs returns the workspaces the principal belongs to in a stable
// order.
func (p Principal) WorkspaceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.memberships))
	for wsID := range p.memberships {
		ids = append(ids, wsID)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}

// ClientGrant returns the workspace owning the specified client if the
// principal holds a portal grant for it.
func (p Principal) ClientGrant(clientID uuid.UUID) (uuid.UUID, bool) {
	wsID, exists := p.clientGrants[clientID]
	return wsID, exists
}
