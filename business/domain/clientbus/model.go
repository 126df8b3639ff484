package clientbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// Client represents an external client of a workspace. Client scoped
// records (portal users, invitations, credentials) reach their workspace
// through this row.
type Client struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        name.Name
	Email       mail.Address
	Company     string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewClient contains information needed to create a new client.
type NewClient struct {
	Name    name.Name
	Email   mail.Address
	Company string
}

// UpdateClient contains information needed to update a client.
type UpdateClient struct {
	Name    *name.Name
	Email   *mail.Address
	Company *string
	Status  *string
}
