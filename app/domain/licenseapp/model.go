package licenseapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
)

// License represents information about an issued license.
type License struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Provider  string `json:"provider"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Encode implements the encoder interface.
func (app License) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppLicense(lic licensebus.License) License {
	app := License{
		ID:        lic.ID.String(),
		Key:       lic.Key.String(),
		Provider:  lic.Provider,
		Email:     lic.Email,
		Status:    lic.Status,
		CreatedAt: lic.CreatedAt.Format(time.RFC3339),
	}

	if lic.ExpiresAt != nil {
		app.ExpiresAt = lic.ExpiresAt.Format(time.RFC3339)
	}

	return app
}

// Licenses represents a collection of licenses.
type Licenses []License

// Encode implements the encoder interface.
func (app Licenses) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppLicenses(lics []licensebus.License) Licenses {
	app := make(Licenses, len(lics))
	for i, lic := range lics {
		app[i] = toAppLicense(lic)
	}

	return app
}

// Validation reports the outcome of a license check. The reason is empty
// when the license is valid.
type Validation struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	Email     string `json:"email,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// Encode implements the encoder interface.
func (app Validation) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppValidation(lic licensebus.License, reason string) Validation {
	if reason != "" {
		return Validation{
			Valid:  false,
			Reason: reason,
		}
	}

	app := Validation{
		Valid: true,
		Email: lic.Email,
	}

	if lic.ExpiresAt != nil {
		app.ExpiresAt = lic.ExpiresAt.Format(time.RFC3339)
	}

	return app
}

// PaymentEvent defines the fields accepted from a payment provider
// webhook. Providers posting forms deliver every value as a string.
type PaymentEvent struct {
	PurchaseID string `json:"purchase_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	ExpiresAt  string `json:"expires_at"`
}

// Decode implements the decoder interface.
func (app *PaymentEvent) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app PaymentEvent) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusPaymentEvent(app PaymentEvent) (licensebus.PaymentEvent, error) {
	expiresAt, err := toBusExpiresAt(app.ExpiresAt)
	if err != nil {
		return licensebus.PaymentEvent{}, err
	}

	evt := licensebus.PaymentEvent{
		PurchaseID: app.PurchaseID,
		Email:      app.Email,
		ExpiresAt:  expiresAt,
	}

	return evt, nil
}

func toBusExpiresAt(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return &t, nil
}

// ValidateLicense defines the data needed to check or revoke a license.
type ValidateLicense struct {
	Key string `json:"key" validate:"required"`
}

// Decode implements the decoder interface.
func (app *ValidateLicense) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app ValidateLicense) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

// GenerateLicense defines the data needed to mint a license manually.
type GenerateLicense struct {
	Email     string `json:"email" validate:"required,email"`
	ExpiresAt string `json:"expiresAt"`
}

// Decode implements the decoder interface.
func (app *GenerateLicense) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app GenerateLicense) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}
