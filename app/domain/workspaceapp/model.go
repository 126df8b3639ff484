package workspaceapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// Workspace represents a tenant in the system.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (w Workspace) Encode() ([]byte, string, error) {
	data, err := json.Marshal(w)
	return data, "application/json", err
}

func toAppWorkspace(bus workspacebus.Workspace) Workspace {
	return Workspace{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Slug:        bus.Slug,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// Workspaces is the list form of Workspace.
type Workspaces []Workspace

// Encode implements the web.Encoder interface.
func (ws Workspaces) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ws)
	return data, "application/json", err
}

// NewWorkspace defines the data needed to create a workspace.
type NewWorkspace struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,min=3,max=50"`
}

// Decode implements the web.Decoder interface.
func (app *NewWorkspace) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewWorkspace) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewWorkspace(app NewWorkspace) (workspacebus.NewWorkspace, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return workspacebus.NewWorkspace{}, fmt.Errorf("parse name: %w", err)
	}

	bus := workspacebus.NewWorkspace{
		Name: nme,
		Slug: app.Slug,
	}

	return bus, nil
}

// UpdateWorkspace defines the data needed to update a workspace.
type UpdateWorkspace struct {
	Name *string `json:"name"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateWorkspace) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateWorkspace) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateWorkspace(app UpdateWorkspace) (workspacebus.UpdateWorkspace, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return workspacebus.UpdateWorkspace{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	return workspacebus.UpdateWorkspace{Name: nme}, nil
}

// Settings represents the branding and invoicing settings of a workspace.
type Settings struct {
	CompanyName   string `json:"companyName"`
	LogoURL       string `json:"logoUrl"`
	AccentColor   string `json:"accentColor"`
	InvoicePrefix string `json:"invoicePrefix"`
	InvoiceNotes  string `json:"invoiceNotes"`
	TaxRateBps    int    `json:"taxRateBps"`
	Currency      string `json:"currency"`
	DateUpdated   string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (s Settings) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppSettings(bus workspacebus.Settings) Settings {
	return Settings{
		CompanyName:   bus.CompanyName,
		LogoURL:       bus.LogoURL,
		AccentColor:   bus.AccentColor,
		InvoicePrefix: bus.InvoicePrefix,
		InvoiceNotes:  bus.InvoiceNotes,
		TaxRateBps:    bus.TaxRateBps,
		Currency:      bus.Currency,
		DateUpdated:   bus.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateSettings defines the data needed to update workspace settings.
type UpdateSettings struct {
	CompanyName   *string `json:"companyName"`
	LogoURL       *string `json:"logoUrl" validate:"omitempty,url"`
	AccentColor   *string `json:"accentColor"`
	InvoicePrefix *string `json:"invoicePrefix"`
	InvoiceNotes  *string `json:"invoiceNotes"`
	TaxRateBps    *int    `json:"taxRateBps" validate:"omitempty,gte=0,lte=10000"`
	Currency      *string `json:"currency" validate:"omitempty,len=3"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateSettings) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateSettings) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateSettings(app UpdateSettings) workspacebus.UpdateSettings {
	return workspacebus.UpdateSettings{
		CompanyName:   app.CompanyName,
		LogoURL:       app.LogoURL,
		AccentColor:   app.AccentColor,
		InvoicePrefix: app.InvoicePrefix,
		InvoiceNotes:  app.InvoiceNotes,
		TaxRateBps:    app.TaxRateBps,
		Currency:      app.Currency,
	}
}

// Subscription represents the billing state of a workspace.
type Subscription struct {
	Plan             string `json:"plan"`
	Status           string `json:"status"`
	CurrentPeriodEnd string `json:"currentPeriodEnd,omitempty"`
}

// Encode implements the web.Encoder interface.
func (s Subscription) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppSubscription(bus workspacebus.Subscription) Subscription {
	app := Subscription{
		Plan:   bus.Plan,
		Status: bus.Status,
	}

	if bus.CurrentPeriodEnd != nil {
		app.CurrentPeriodEnd = bus.CurrentPeriodEnd.Format(time.RFC3339)
	}

	return app
}
