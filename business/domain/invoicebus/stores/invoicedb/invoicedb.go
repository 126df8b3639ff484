// Package invoicedb contains invoice related CRUD functionality.
package invoicedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for invoice database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (invoicebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts an invoice and all its line items. Run this under a
// transaction so a failing item insert takes the invoice down with it.
func (s *Store) Create(ctx context.Context, inv invoicebus.Invoice) error {
	const qInv = `
	INSERT INTO invoices
		(id, workspace_id, client_id, number, status, issue_date, due_date, total_cents, currency, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :client_id, :number, :status, :issue_date, :due_date, :total_cents, :currency, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, qInv, toDBInvoice(inv)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", invoicebus.ErrUniqueNumber)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	const qItem = `
	INSERT INTO invoice_line_items
		(id, workspace_id, invoice_id, description, quantity, unit_price_cents, amount_cents)
	VALUES
		(:id, :workspace_id, :invoice_id, :description, :quantity, :unit_price_cents, :amount_cents)`

	for _, item := range inv.Items {
		if err := sqldb.NamedExecContext(ctx, s.log, s.db, qItem, toDBLineItem(item)); err != nil {
			return fmt.Errorf("namedexeccontext: %w", err)
		}
	}

	return nil
}

// Update replaces an invoice document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) Update(ctx context.Context, inv invoicebus.Invoice) (int64, error) {
	const q = `
	UPDATE
		invoices
	SET
		status = :status,
		due_date = :due_date,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBInvoice(inv))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes an invoice from the database and reports the rows
// affected. Line items go with it through the cascade.
func (s *Store) Delete(ctx context.Context, inv invoicebus.Invoice) (int64, error) {
	const q = `
	DELETE FROM
		invoices
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBInvoice(inv))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Query retrieves the invoices of a workspace under the principal scope.
func (s *Store) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]invoicebus.Invoice, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Invoices)
	data["workspace_id"] = workspaceID

	const q = `
	SELECT
		id, workspace_id, client_id, number, status, issue_date, due_date, total_cents, currency, date_created, date_updated
	FROM
		invoices
	WHERE
		workspace_id = :workspace_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY issue_date DESC")

	var dbInvs []invoiceDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbInvs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	invs := make([]invoicebus.Invoice, len(dbInvs))
	for i, db := range dbInvs {
		invs[i] = toBusInvoice(db)
	}

	return invs, nil
}

// QueryByID gets the specified invoice scoped to a workspace without its
// items.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, invoiceID uuid.UUID) (invoicebus.Invoice, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          invoiceID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, client_id, number, status, issue_date, due_date, total_cents, currency, date_created, date_updated
	FROM
		invoices
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbInv invoiceDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbInv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return invoicebus.Invoice{}, fmt.Errorf("db: %w", invoicebus.ErrNotFound)
		}
		return invoicebus.Invoice{}, fmt.Errorf("db: %w", err)
	}

	return toBusInvoice(dbInv), nil
}

// QueryItems retrieves the line items of an invoice.
func (s *Store) QueryItems(ctx context.Context, workspaceID uuid.UUID, invoiceID uuid.UUID) ([]invoicebus.LineItem, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		InvoiceID   string `db:"invoice_id"`
	}{
		WorkspaceID: workspaceID.String(),
		InvoiceID:   invoiceID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, invoice_id, description, quantity, unit_price_cents, amount_cents
	FROM
		invoice_line_items
	WHERE
		invoice_id = :invoice_id AND workspace_id = :workspace_id`

	var dbItems []lineItemDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbItems); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	items := make([]invoicebus.LineItem, len(dbItems))
	for i, db := range dbItems {
		items[i] = toBusLineItem(db)
	}

	return items, nil
}
