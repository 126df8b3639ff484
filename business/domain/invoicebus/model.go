package invoicebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/money"
)

// Set of invoice statuses.
const (
	StatusDraft = "DRAFT"
	StatusSent  = "SENT"
	StatusPaid  = "PAID"
	StatusVoid  = "VOID"
)

// Invoice represents a bill issued to a client together with its line
// items. The total is always the sum of the line item amounts.
type Invoice struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ClientID    uuid.UUID
	Number      string
	Status      string
	IssueDate   time.Time
	DueDate     *time.Time
	Total       money.Money
	Currency    string
	Items       []LineItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineItem represents a single billed position on an invoice.
type LineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	WorkspaceID uuid.UUID
	Description string
	Quantity    int
	UnitPrice   money.Money
	Amount      money.Money
}

// NewInvoice contains information needed to create a new invoice. The
// invoice and all its items land together or not at all.
type NewInvoice struct {
	ClientID  uuid.UUID
	Number    string
	IssueDate time.Time
	DueDate   *time.Time
	Currency  string
	Items     []NewLineItem
}

// NewLineItem contains information needed to create a line item.
type NewLineItem struct {
	Description string
	Quantity    int
	UnitPrice   money.Money
}

// UpdateInvoice contains information needed to update an invoice.
type UpdateInvoice struct {
	Status  *string
	DueDate *time.Time
}
