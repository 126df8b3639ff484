package memberbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
)

// Member represents a user's membership in a workspace. Each membership
// row independently grants access to exactly one workspace.
type Member struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	Role        role.Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Detail represents a membership enriched with the user's identity for
// the team management surface.
type Detail struct {
	Member
	UserName  name.Name
	UserEmail mail.Address
}
