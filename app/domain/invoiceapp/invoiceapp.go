// Package invoiceapp maintains the app layer api for the invoice domain.
package invoiceapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	invoiceBus *invoicebus.Core
}

func newApp(invoiceBus *invoicebus.Core) *app {
	return &app{
		invoiceBus: invoiceBus,
	}
}

// newWithTx constructs a new app value using the transaction in the
// context. The invoice and its line items must land together.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	invoiceBus, err := a.invoiceBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	app := app{
		invoiceBus: invoiceBus,
	}

	return &app, nil
}

// create issues a new invoice together with its line items.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewInvoice
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	a, err = a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	ni, err := toBusNewInvoice(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	inv, err := a.invoiceBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, ni)
	if err != nil {
		switch {
		case errors.Is(err, invoicebus.ErrNotFound):
			return errs.New(errs.NotFound, err)
		case errors.Is(err, invoicebus.ErrUniqueNumber):
			return errs.New(errs.Aborted, err)
		case errors.Is(err, invoicebus.ErrNoItems), errors.Is(err, invoicebus.ErrInvalidQuantity):
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: inv[%+v]: %s", app, err)
	}

	return toAppInvoice(inv)
}

// update modifies the status or due date of an invoice.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateInvoice
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	invoiceID, err := uuid.Parse(web.Param(r, "invoice_id"))
	if err != nil {
		return errs.NewFieldErrors("invoice_id", err)
	}

	ui, err := toBusUpdateInvoice(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	inv, err := a.invoiceBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, invoiceID, ui)
	if err != nil {
		if errors.Is(err, invoicebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: invoiceID[%s]: %s", invoiceID, err)
	}

	return toAppInvoice(inv)
}

// delete removes an invoice and its line items.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	invoiceID, err := uuid.Parse(web.Param(r, "invoice_id"))
	if err != nil {
		return errs.NewFieldErrors("invoice_id", err)
	}

	if err := a.invoiceBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, invoiceID); err != nil {
		if errors.Is(err, invoicebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: invoiceID[%s]: %s", invoiceID, err)
	}

	return nil
}

// query returns the invoices of the workspace without their line items.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	invs, err := a.invoiceBus.Query(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, invoicebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppInvoices(invs)
}

// queryByID returns an invoice with its line items.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	invoiceID, err := uuid.Parse(web.Param(r, "invoice_id"))
	if err != nil {
		return errs.NewFieldErrors("invoice_id", err)
	}

	inv, err := a.invoiceBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, invoiceID)
	if err != nil {
		if errors.Is(err, invoicebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: invoiceID[%s]: %s", invoiceID, err)
	}

	return toAppInvoice(inv)
}
