package projectbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// Project represents a unit of work performed for a client within a
// workspace.
type Project struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ClientID    *uuid.UUID
	Name        name.Name
	Description string
	Status      string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject contains information needed to create a new project.
type NewProject struct {
	ClientID    *uuid.UUID
	Name        name.Name
	Description string
	DueDate     *time.Time
}

// UpdateProject contains information needed to update a project.
type UpdateProject struct {
	ClientID    *uuid.UUID
	Name        *name.Name
	Description *string
	Status      *string
	DueDate     *time.Time
}
