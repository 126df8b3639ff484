package inviteapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
)

// Invitation represents information about an individual invitation.
type Invitation struct {
	ID         string `json:"id"`
	ClientID   string `json:"clientID"`
	Email      string `json:"email"`
	Token      string `json:"token"`
	ExpiresAt  string `json:"expiresAt"`
	ConsumedAt string `json:"consumedAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// Encode implements the encoder interface.
func (app Invitation) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppInvitation(inv invitebus.Invitation) Invitation {
	app := Invitation{
		ID:        inv.ID.String(),
		ClientID:  inv.ClientID.String(),
		Email:     inv.Email.Address,
		Token:     inv.Token,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}

	if inv.ConsumedAt != nil {
		app.ConsumedAt = inv.ConsumedAt.Format(time.RFC3339)
	}

	return app
}

// Invitations represents a collection of invitations.
type Invitations []Invitation

// Encode implements the encoder interface.
func (app Invitations) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppInvitations(invs []invitebus.Invitation) Invitations {
	app := make(Invitations, len(invs))
	for i, inv := range invs {
		app[i] = toAppInvitation(inv)
	}

	return app
}

// NewInvitation defines the data needed to invite a portal user.
type NewInvitation struct {
	Email string `json:"email" validate:"required,email"`
}

// Decode implements the decoder interface.
func (app *NewInvitation) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewInvitation) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewInvitation(clientID uuid.UUID, app NewInvitation) (invitebus.NewInvitation, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return invitebus.NewInvitation{}, fmt.Errorf("parse: %w", err)
	}

	ni := invitebus.NewInvitation{
		ClientID: clientID,
		Email:    *addr,
	}

	return ni, nil
}
