// Package invoicebus provides business access to invoices and their line
// items.
package invoicebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/money"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound        = errors.New("invoice not found")
	ErrUniqueNumber    = errors.New("invoice number is not unique")
	ErrNoItems         = errors.New("invoice needs at least one line item")
	ErrInvalidQuantity = errors.New("line item quantity must be positive")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Create lands the invoice and its items in one call so a
// transaction bound store makes the write atomic.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, inv Invoice) (int64, error)
	Delete(ctx context.Context, inv Invoice) (int64, error)
	Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Invoice, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, invoiceID uuid.UUID) (Invoice, error)
	QueryItems(ctx context.Context, workspaceID uuid.UUID, invoiceID uuid.UUID) ([]LineItem, error)
}

// Core manages the set of APIs for invoice access.
type Core struct {
	storer Storer
}

// NewCore constructs an invoice core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the specified
// transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	core := Core{
		storer: storer,
	}

	return &core, nil
}

// Create issues a new invoice with its line items. The total is derived
// from the items, never accepted from the caller.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, ni NewInvoice) (Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "business.invoicebus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Invoices, tenancy.OpInsert, workspaceID) {
		return Invoice{}, ErrNotFound
	}

	if len(ni.Items) == 0 {
		return Invoice{}, ErrNoItems
	}

	now := time.Now()
	invoiceID := uuid.New()

	var total int64
	items := make([]LineItem, len(ni.Items))
	for i, nli := range ni.Items {
		if nli.Quantity <= 0 {
			return Invoice{}, ErrInvalidQuantity
		}

		amount := money.FromCents(int64(nli.Quantity) * nli.UnitPrice.Cents())
		total += amount.Cents()

		items[i] = LineItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			WorkspaceID: workspaceID,
			Description: nli.Description,
			Quantity:    nli.Quantity,
			UnitPrice:   nli.UnitPrice,
			Amount:      amount,
		}
	}

	inv := Invoice{
		ID:          invoiceID,
		WorkspaceID: workspaceID,
		ClientID:    ni.ClientID,
		Number:      ni.Number,
		Status:      StatusDraft,
		IssueDate:   ni.IssueDate,
		DueDate:     ni.DueDate,
		Total:       money.FromCents(total),
		Currency:    ni.Currency,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, inv); err != nil {
		return Invoice{}, fmt.Errorf("create: %w", err)
	}

	return inv, nil
}

// Update modifies the mutable fields of an invoice. A cross-tenant or
// unknown id reports ErrNotFound.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, invoiceID uuid.UUID, ui UpdateInvoice) (Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "business.invoicebus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Invoices, tenancy.OpUpdate, workspaceID) {
		return Invoice{}, ErrNotFound
	}

	inv, err := c.storer.QueryByID(ctx, workspaceID, invoiceID)
	if err != nil {
		return Invoice{}, fmt.Errorf("query: invoiceID[%s]: %w", invoiceID, err)
	}

	if ui.Status != nil {
		inv.Status = *ui.Status
	}
	if ui.DueDate != nil {
		inv.DueDate = ui.DueDate
	}
	inv.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, inv)
	if err != nil {
		return Invoice{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return Invoice{}, ErrNotFound
	}

	return inv, nil
}

// Delete removes an invoice and, through the schema, its line items.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, invoiceID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.invoicebus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Invoices, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	inv, err := c.storer.QueryByID(ctx, workspaceID, invoiceID)
	if err != nil {
		return fmt.Errorf("query: invoiceID[%s]: %w", invoiceID, err)
	}

	affected, err := c.storer.Delete(ctx, inv)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves the invoices of a workspace without their items.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "business.invoicebus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Invoices, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	invs, err := c.storer.Query(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return invs, nil
}

// QueryByID finds an invoice together with its line items.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, invoiceID uuid.UUID) (Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "business.invoicebus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Invoices, tenancy.OpSelect, workspaceID) {
		return Invoice{}, ErrNotFound
	}

	inv, err := c.storer.QueryByID(ctx, workspaceID, invoiceID)
	if err != nil {
		return Invoice{}, fmt.Errorf("query: invoiceID[%s]: %w", invoiceID, err)
	}

	items, err := c.storer.QueryItems(ctx, workspaceID, invoiceID)
	if err != nil {
		return Invoice{}, fmt.Errorf("queryitems: invoiceID[%s]: %w", invoiceID, err)
	}
	inv.Items = items

	return inv, nil
}
