// Package noteapp maintains the app layer api for the note domain.
package noteapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/notebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	noteBus *notebus.Core
}

func newApp(noteBus *notebus.Core) *app {
	return &app{
		noteBus: noteBus,
	}
}

// create adds a new note to the workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewNote
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nn, err := toBusNewNote(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nte, err := a.noteBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, nn)
	if err != nil {
		if errors.Is(err, notebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: nte[%+v]: %s", app, err)
	}

	return toAppNote(nte)
}

// update modifies a note in the workspace.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateNote
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	noteID, err := uuid.Parse(web.Param(r, "note_id"))
	if err != nil {
		return errs.NewFieldErrors("note_id", err)
	}

	nte, err := a.noteBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, noteID, toBusUpdateNote(app))
	if err != nil {
		if errors.Is(err, notebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: noteID[%s]: %s", noteID, err)
	}

	return toAppNote(nte)
}

// delete removes a note from the workspace.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	noteID, err := uuid.Parse(web.Param(r, "note_id"))
	if err != nil {
		return errs.NewFieldErrors("note_id", err)
	}

	if err := a.noteBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, noteID); err != nil {
		if errors.Is(err, notebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: noteID[%s]: %s", noteID, err)
	}

	return nil
}

// query returns the notes of the workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	ntes, err := a.noteBus.Query(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, notebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppNotes(ntes)
}

// queryByID returns a note by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	noteID, err := uuid.Parse(web.Param(r, "note_id"))
	if err != nil {
		return errs.NewFieldErrors("note_id", err)
	}

	nte, err := a.noteBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, noteID)
	if err != nil {
		if errors.Is(err, notebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: noteID[%s]: %s", noteID, err)
	}

	return toAppNote(nte)
}
