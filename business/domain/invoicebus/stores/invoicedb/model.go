package invoicedb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/money"
)

type invoiceDB struct {
	ID          uuid.UUID    `db:"id"`
	WorkspaceID uuid.UUID    `db:"workspace_id"`
	ClientID    uuid.UUID    `db:"client_id"`
	Number      string       `db:"number"`
	Status      string       `db:"status"`
	IssueDate   time.Time    `db:"issue_date"`
	DueDate     sql.NullTime `db:"due_date"`
	TotalCents  int64        `db:"total_cents"`
	Currency    string       `db:"currency"`
	CreatedAt   time.Time    `db:"date_created"`
	UpdatedAt   time.Time    `db:"date_updated"`
}

func toDBInvoice(bus invoicebus.Invoice) invoiceDB {
	db := invoiceDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		ClientID:    bus.ClientID,
		Number:      bus.Number,
		Status:      bus.Status,
		IssueDate:   bus.IssueDate.UTC(),
		TotalCents:  bus.Total.Cents(),
		Currency:    bus.Currency,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.DueDate != nil {
		db.DueDate = sql.NullTime{Time: bus.DueDate.UTC(), Valid: true}
	}

	return db
}

func toBusInvoice(db invoiceDB) invoicebus.Invoice {
	bus := invoicebus.Invoice{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		ClientID:    db.ClientID,
		Number:      db.Number,
		Status:      db.Status,
		IssueDate:   db.IssueDate.In(time.Local),
		Total:       money.FromCents(db.TotalCents),
		Currency:    db.Currency,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.DueDate.Valid {
		t := db.DueDate.Time.In(time.Local)
		bus.DueDate = &t
	}

	return bus
}

type lineItemDB struct {
	ID             uuid.UUID `db:"id"`
	WorkspaceID    uuid.UUID `db:"workspace_id"`
	InvoiceID      uuid.UUID `db:"invoice_id"`
	Description    string    `db:"description"`
	Quantity       int       `db:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	AmountCents    int64     `db:"amount_cents"`
}

func toDBLineItem(bus invoicebus.LineItem) lineItemDB {
	return lineItemDB{
		ID:             bus.ID,
		WorkspaceID:    bus.WorkspaceID,
		InvoiceID:      bus.InvoiceID,
		Description:    bus.Description,
		Quantity:       bus.Quantity,
		UnitPriceCents: bus.UnitPrice.Cents(),
		AmountCents:    bus.Amount.Cents(),
	}
}

func toBusLineItem(db lineItemDB) invoicebus.LineItem {
	return invoicebus.LineItem{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		InvoiceID:   db.InvoiceID,
		Description: db.Description,
		Quantity:    db.Quantity,
		UnitPrice:   money.FromCents(db.UnitPriceCents),
		Amount:      money.FromCents(db.AmountCents),
	}
}
