package invoiceapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/money"
)

// Invoice represents information about an individual invoice.
type Invoice struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"clientID"`
	Number    string     `json:"number"`
	Status    string     `json:"status"`
	IssueDate string     `json:"issueDate"`
	DueDate   string     `json:"dueDate,omitempty"`
	Total     float64    `json:"total"`
	Currency  string     `json:"currency"`
	Items     []LineItem `json:"items,omitempty"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// Encode implements the encoder interface.
func (app Invoice) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// LineItem represents a single billed position on an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

func toAppInvoice(inv invoicebus.Invoice) Invoice {
	app := Invoice{
		ID:        inv.ID.String(),
		ClientID:  inv.ClientID.String(),
		Number:    inv.Number,
		Status:    inv.Status,
		IssueDate: inv.IssueDate.Format(time.RFC3339),
		Total:     inv.Total.Value(),
		Currency:  inv.Currency,
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: inv.UpdatedAt.Format(time.RFC3339),
	}

	if inv.DueDate != nil {
		app.DueDate = inv.DueDate.Format(time.RFC3339)
	}

	if len(inv.Items) > 0 {
		app.Items = make([]LineItem, len(inv.Items))
		for i, itm := range inv.Items {
			app.Items[i] = LineItem{
				ID:          itm.ID.String(),
				Description: itm.Description,
				Quantity:    itm.Quantity,
				UnitPrice:   itm.UnitPrice.Value(),
				Amount:      itm.Amount.Value(),
			}
		}
	}

	return app
}

// Invoices represents a collection of invoices.
type Invoices []Invoice

// Encode implements the encoder interface.
func (app Invoices) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppInvoices(invs []invoicebus.Invoice) Invoices {
	app := make(Invoices, len(invs))
	for i, inv := range invs {
		app[i] = toAppInvoice(inv)
	}

	return app
}

// NewInvoice defines the data needed to issue an invoice.
type NewInvoice struct {
	ClientID  string        `json:"clientID" validate:"required"`
	Number    string        `json:"number" validate:"required"`
	IssueDate string        `json:"issueDate" validate:"required"`
	DueDate   string        `json:"dueDate"`
	Currency  string        `json:"currency" validate:"required,len=3"`
	Items     []NewLineItem `json:"items" validate:"required,min=1,dive"`
}

// NewLineItem defines the data needed for a single line item.
type NewLineItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// Decode implements the decoder interface.
func (app *NewInvoice) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewInvoice) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewInvoice(app NewInvoice) (invoicebus.NewInvoice, error) {
	clientID, err := uuid.Parse(app.ClientID)
	if err != nil {
		return invoicebus.NewInvoice{}, fmt.Errorf("parse: %w", err)
	}

	issueDate, err := time.Parse(time.RFC3339, app.IssueDate)
	if err != nil {
		return invoicebus.NewInvoice{}, fmt.Errorf("parse: %w", err)
	}

	var dueDate *time.Time
	if app.DueDate != "" {
		dd, err := time.Parse(time.RFC3339, app.DueDate)
		if err != nil {
			return invoicebus.NewInvoice{}, fmt.Errorf("parse: %w", err)
		}
		dueDate = &dd
	}

	items := make([]invoicebus.NewLineItem, len(app.Items))
	for i, itm := range app.Items {
		price, err := money.Parse(itm.UnitPrice)
		if err != nil {
			return invoicebus.NewInvoice{}, fmt.Errorf("parse: %w", err)
		}

		items[i] = invoicebus.NewLineItem{
			Description: itm.Description,
			Quantity:    itm.Quantity,
			UnitPrice:   price,
		}
	}

	ni := invoicebus.NewInvoice{
		ClientID:  clientID,
		Number:    app.Number,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Currency:  app.Currency,
		Items:     items,
	}

	return ni, nil
}

// UpdateInvoice defines the data that may be updated on an invoice.
type UpdateInvoice struct {
	Status  *string `json:"status" validate:"omitempty,oneof=DRAFT SENT PAID VOID"`
	DueDate *string `json:"dueDate"`
}

// Decode implements the decoder interface.
func (app *UpdateInvoice) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateInvoice) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusUpdateInvoice(app UpdateInvoice) (invoicebus.UpdateInvoice, error) {
	ui := invoicebus.UpdateInvoice{
		Status: app.Status,
	}

	if app.DueDate != nil {
		dd, err := time.Parse(time.RFC3339, *app.DueDate)
		if err != nil {
			return invoicebus.UpdateInvoice{}, fmt.Errorf("parse: %w", err)
		}
		ui.DueDate = &dd
	}

	return ui, nil
}
