package invitebus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Invitation represents a pending offer for a user account to be bound to a
// client. The token is the only thing the invited party receives.
type Invitation struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ClientID    uuid.UUID
	Email       mail.Address
	Token       string
	ExpiresAt   time.Time
	ConsumedAt  *time.Time
	ConsumedBy  *uuid.UUID
	CreatedAt   time.Time
}

// Consumed reports whether the invitation has already been accepted.
func (inv Invitation) Consumed() bool {
	return inv.ConsumedAt != nil
}

// Expired reports whether the invitation lapsed before being accepted.
func (inv Invitation) Expired(now time.Time) bool {
	return now.After(inv.ExpiresAt)
}

// NewInvitation contains information needed to create a new invitation.
type NewInvitation struct {
	ClientID uuid.UUID
	Email    mail.Address
}

// Binding represents an accepted invitation: a durable link between a user
// account and a client. The workspace is carried for portal scoping.
type Binding struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	CreatedAt   time.Time
}
