package leadapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// IntakeLink represents a shareable public intake form.
type IntakeLink struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (l IntakeLink) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

func toAppIntakeLink(bus leadbus.IntakeLink) IntakeLink {
	return IntakeLink{
		ID:          bus.ID.String(),
		Token:       bus.Token,
		Name:        bus.Name.String(),
		Active:      bus.Active,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// IntakeLinks is the list form of IntakeLink.
type IntakeLinks []IntakeLink

// Encode implements the web.Encoder interface.
func (ls IntakeLinks) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ls)
	return data, "application/json", err
}

func toAppIntakeLinks(lnks []leadbus.IntakeLink) IntakeLinks {
	app := make(IntakeLinks, len(lnks))
	for i, lnk := range lnks {
		app[i] = toAppIntakeLink(lnk)
	}
	return app
}

// NewIntakeLink defines the data needed to create an intake link.
type NewIntakeLink struct {
	Name string `json:"name" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewIntakeLink) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewIntakeLink) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewIntakeLink(app NewIntakeLink) (leadbus.NewIntakeLink, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return leadbus.NewIntakeLink{}, fmt.Errorf("parse name: %w", err)
	}

	return leadbus.NewIntakeLink{Name: nme}, nil
}

// UpdateIntakeLink defines the data needed to update an intake link.
type UpdateIntakeLink struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateIntakeLink) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateIntakeLink) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateIntakeLink(app UpdateIntakeLink) (leadbus.UpdateIntakeLink, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return leadbus.UpdateIntakeLink{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	bus := leadbus.UpdateIntakeLink{
		Name:   nme,
		Active: app.Active,
	}

	return bus, nil
}

// Lead represents a captured submission.
type Lead struct {
	ID           string `json:"id"`
	IntakeLinkID string `json:"intakeLinkId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Message      string `json:"message"`
	Status       string `json:"status"`
	DateCreated  string `json:"dateCreated"`
	DateUpdated  string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (l Lead) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

func toAppLead(bus leadbus.Lead) Lead {
	return Lead{
		ID:           bus.ID.String(),
		IntakeLinkID: bus.IntakeLinkID.String(),
		Name:         bus.Name,
		Email:        bus.Email,
		Company:      bus.Company,
		Message:      bus.Message,
		Status:       bus.Status,
		DateCreated:  bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:  bus.UpdatedAt.Format(time.RFC3339),
	}
}

// Leads is the list form of Lead.
type Leads []Lead

// Encode implements the web.Encoder interface.
func (ls Leads) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ls)
	return data, "application/json", err
}

func toAppLeads(leds []leadbus.Lead) Leads {
	app := make(Leads, len(leds))
	for i, led := range leds {
		app[i] = toAppLead(led)
	}
	return app
}

// Submitted is the acknowledgement returned to an anonymous submitter.
// It deliberately carries no workspace information.
type Submitted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Encode implements the web.Encoder interface.
func (s Submitted) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppSubmitted(bus leadbus.Lead) Submitted {
	return Submitted{
		ID:     bus.ID.String(),
		Status: bus.Status,
	}
}

// NewLead defines the data an anonymous submitter may provide.
type NewLead struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
	Message string `json:"message" validate:"max=4000"`
}

// Decode implements the web.Decoder interface.
func (app *NewLead) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewLead) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewLead(app NewLead) leadbus.NewLead {
	return leadbus.NewLead{
		Name:    app.Name,
		Email:   app.Email,
		Company: app.Company,
		Message: app.Message,
	}
}

// UpdateLead defines the data members may change on a lead.
type UpdateLead struct {
	Status *string `json:"status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED DISCARDED"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateLead) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateLead) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateLead(app UpdateLead) leadbus.UpdateLead {
	return leadbus.UpdateLead{
		Status: app.Status,
	}
}
