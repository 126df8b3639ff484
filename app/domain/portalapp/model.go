package portalapp

import (
	"encoding/json"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
)

// ResolvedInvitation represents what the invited party may learn about an
// invitation before accepting it.
type ResolvedInvitation struct {
	Email     string `json:"email"`
	ExpiresAt string `json:"expiresAt"`
}

// Encode implements the encoder interface.
func (app ResolvedInvitation) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppResolvedInvitation(inv invitebus.Invitation) ResolvedInvitation {
	return ResolvedInvitation{
		Email:     inv.Email.Address,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
	}
}

// Binding represents an accepted invitation linking the portal user to a
// client.
type Binding struct {
	ID        string `json:"id"`
	ClientID  string `json:"clientID"`
	CreatedAt string `json:"createdAt"`
}

// Encode implements the encoder interface.
func (app Binding) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppBinding(bnd invitebus.Binding) Binding {
	return Binding{
		ID:        bnd.ID.String(),
		ClientID:  bnd.ClientID.String(),
		CreatedAt: bnd.CreatedAt.Format(time.RFC3339),
	}
}

// Bindings represents a collection of bindings.
type Bindings []Binding

// Encode implements the encoder interface.
func (app Bindings) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppBindings(bnds []invitebus.Binding) Bindings {
	app := make(Bindings, len(bnds))
	for i, bnd := range bnds {
		app[i] = toAppBinding(bnd)
	}

	return app
}

// Credential represents a stored secret as shown to the portal user.
type Credential struct {
	ID        string `json:"id"`
	ClientID  string `json:"clientID"`
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Username  string `json:"username"`
	Secret    string `json:"secret"`
	Notes     string `json:"notes"`
	UpdatedAt string `json:"updatedAt"`
}

// Credentials represents a collection of credentials.
type Credentials []Credential

// Encode implements the encoder interface.
func (app Credentials) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppCredentials(crds []credentialbus.Credential) Credentials {
	app := make(Credentials, len(crds))
	for i, crd := range crds {
		app[i] = Credential{
			ID:        crd.ID.String(),
			ClientID:  crd.ClientID.String(),
			Kind:      crd.Kind,
			Label:     crd.Label,
			Username:  crd.Username,
			Secret:    crd.Secret,
			Notes:     crd.Notes,
			UpdatedAt: crd.UpdatedAt.Format(time.RFC3339),
		}
	}

	return app
}
