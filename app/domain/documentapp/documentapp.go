// Package documentapp maintains the app layer api for the document
// domain.
package documentapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/documentbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	documentBus *documentbus.Core
}

func newApp(documentBus *documentbus.Core) *app {
	return &app{
		documentBus: documentBus,
	}
}

// create records a new document in the workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewDocument
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nd, err := toBusNewDocument(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	doc, err := a.documentBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, nd)
	if err != nil {
		if errors.Is(err, documentbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: doc[%+v]: %s", app, err)
	}

	return toAppDocument(doc)
}

// delete removes a document from the workspace.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	documentID, err := uuid.Parse(web.Param(r, "document_id"))
	if err != nil {
		return errs.NewFieldErrors("document_id", err)
	}

	if err := a.documentBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, documentID); err != nil {
		if errors.Is(err, documentbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: documentID[%s]: %s", documentID, err)
	}

	return nil
}

// query returns the documents of the workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	docs, err := a.documentBus.Query(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, documentbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppDocuments(docs)
}

// queryByID returns a document by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	documentID, err := uuid.Parse(web.Param(r, "document_id"))
	if err != nil {
		return errs.NewFieldErrors("document_id", err)
	}

	doc, err := a.documentBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, documentID)
	if err != nil {
		if errors.Is(err, documentbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: documentID[%s]: %s", documentID, err)
	}

	return toAppDocument(doc)
}
