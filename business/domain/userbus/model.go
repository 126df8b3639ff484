package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/password"
)

// User represents information about an individual user.
type User struct {
	ID           uuid.UUID
	Name         name.Name
	Email        mail.Address
	PasswordHash []byte
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	Name     name.Name
	Email    mail.Address
	Password password.Password
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name     *name.Name
	Email    *mail.Address
	Password *password.Password
	Enabled  *bool
}
