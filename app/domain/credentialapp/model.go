package credentialapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
)

// Credential represents information about an individual credential.
type Credential struct {
	ID        string `json:"id"`
	ClientID  string `json:"clientID"`
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Username  string `json:"username"`
	Secret    string `json:"secret"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Encode implements the encoder interface.
func (app Credential) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppCredential(crd credentialbus.Credential) Credential {
	return Credential{
		ID:        crd.ID.String(),
		ClientID:  crd.ClientID.String(),
		Kind:      crd.Kind,
		Label:     crd.Label,
		Username:  crd.Username,
		Secret:    crd.Secret,
		Notes:     crd.Notes,
		CreatedAt: crd.CreatedAt.Format(time.RFC3339),
		UpdatedAt: crd.UpdatedAt.Format(time.RFC3339),
	}
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
		app[i] = toAppCredential(crd)
	}

	return app
}

// NewCredential defines the data needed to store a credential.
type NewCredential struct {
	Kind     string `json:"kind" validate:"required"`
	Label    string `json:"label" validate:"required"`
	Username string `json:"username"`
	Secret   string `json:"secret" validate:"required"`
	Notes    string `json:"notes"`
}

// Decode implements the decoder interface.
func (app *NewCredential) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCredential) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewCredential(clientID uuid.UUID, app NewCredential) credentialbus.NewCredential {
	return credentialbus.NewCredential{
		ClientID: clientID,
		Kind:     app.Kind,
		Label:    app.Label,
		Username: app.Username,
		Secret:   app.Secret,
		Notes:    app.Notes,
	}
}

// UpdateCredential defines the data that may be updated on a credential.
type UpdateCredential struct {
	Kind     *string `json:"kind"`
	Label    *string `json:"label"`
	Username *string `json:"username"`
	Secret   *string `json:"secret"`
	Notes    *string `json:"notes"`
}

// Decode implements the decoder interface.
func (app *UpdateCredential) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCredential) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusUpdateCredential(app UpdateCredential) credentialbus.UpdateCredential {
	return credentialbus.UpdateCredential{
		Kind:     app.Kind,
		Label:    app.Label,
		Username: app.Username,
		Secret:   app.Secret,
		Notes:    app.Notes,
	}
}
