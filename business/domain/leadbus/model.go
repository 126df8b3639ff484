package leadbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// IntakeLink represents a shareable public intake form for a workspace.
// Anonymous submitters only ever see the token, never the workspace.
type IntakeLink struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Token       string
	Name        name.Name
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIntakeLink contains information needed to create a new intake link.
type NewIntakeLink struct {
	Name name.Name
}

// UpdateIntakeLink contains information needed to update an intake link.
type UpdateIntakeLink struct {
	Name   *name.Name
	Active *bool
}

// Lead represents an anonymous submission captured through an intake link.
type Lead struct {
	ID           uuid.UUID
	WorkspaceID  uuid.UUID
	IntakeLinkID uuid.UUID
	Name         string
	Email        string
	Company      string
	Message      string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLead contains the fields an anonymous submitter may provide.
type NewLead struct {
	Name    string
	Email   string
	Company string
	Message string
}

// UpdateLead contains information members may change on a captured lead.
type UpdateLead struct {
	Status *string
}
