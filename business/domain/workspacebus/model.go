package workspacebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// Workspace represents a tenant in the system. Every business record is
// owned by exactly one workspace.
type Workspace struct {
	ID        uuid.UUID
	Name      name.Name
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkspace contains information needed to create a new workspace.
type NewWorkspace struct {
	Name name.Name
	Slug string
}

// UpdateWorkspace contains information needed to update a workspace.
type UpdateWorkspace struct {
	Name *name.Name
}

// Settings represents the per-workspace branding and invoicing settings
// row. Exactly one row exists per workspace.
type Settings struct {
	ID            uuid.UUID
	WorkspaceID   uuid.UUID
	CompanyName   string
	LogoURL       string
	AccentColor   string
	InvoicePrefix string
	InvoiceNotes  string
	TaxRateBps    int
	Currency      string
	UpdatedAt     time.Time
}

// UpdateSettings contains information needed to update workspace settings.
type UpdateSettings struct {
	CompanyName   *string
	LogoURL       *string
	AccentColor   *string
	InvoicePrefix *string
	InvoiceNotes  *string
	TaxRateBps    *int
	Currency      *string
}

// Subscription represents the billing state of a workspace.
type Subscription struct {
	ID               uuid.UUID
	WorkspaceID      uuid.UUID
	Plan             string
	Status           string
	CurrentPeriodEnd *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
