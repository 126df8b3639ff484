// Package timeapp maintains the app layer api for the time tracking
// domain.
package timeapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/timebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	timeBus *timebus.Core
}

func newApp(timeBus *timebus.Core) *app {
	return &app{
		timeBus: timeBus,
	}
}

// create adds a new time entry to the workspace. The entry is stamped
// with the calling user.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewTimeEntry
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nte, err := toBusNewTimeEntry(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ent, err := a.timeBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, nte)
	if err != nil {
		if errors.Is(err, timebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: ent[%+v]: %s", app, err)
	}

	return toAppTimeEntry(ent)
}

// update modifies a time entry in the workspace.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateTimeEntry
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	entryID, err := uuid.Parse(web.Param(r, "entry_id"))
	if err != nil {
		return errs.NewFieldErrors("entry_id", err)
	}

	ute, err := toBusUpdateTimeEntry(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ent, err := a.timeBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, entryID, ute)
	if err != nil {
		if errors.Is(err, timebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: entryID[%s]: %s", entryID, err)
	}

	return toAppTimeEntry(ent)
}

// delete removes a time entry from the workspace.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	entryID, err := uuid.Parse(web.Param(r, "entry_id"))
	if err != nil {
		return errs.NewFieldErrors("entry_id", err)
	}

	if err := a.timeBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, entryID); err != nil {
		if errors.Is(err, timebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: entryID[%s]: %s", entryID, err)
	}

	return nil
}

// query returns the time entries of the workspace.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	p := mid.GetPrincipal(ctx)

	if qpProject := r.URL.Query().Get("project_id"); qpProject != "" {
		projectID, err := uuid.Parse(qpProject)
		if err != nil {
			return errs.NewFieldErrors("project_id", err)
		}

		ents, err := a.timeBus.QueryByProject(ctx, p, workspaceID, projectID)
		if err != nil {
			if errors.Is(err, timebus.ErrNotFound) {
				return errs.New(errs.NotFound, err)
			}
			return errs.Errorf(errs.Internal, "querybyproject: projectID[%s]: %s", projectID, err)
		}

		return toAppTimeEntries(ents)
	}

	ents, err := a.timeBus.Query(ctx, p, workspaceID)
	if err != nil {
		if errors.Is(err, timebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppTimeEntries(ents)
}

// queryByID returns a time entry by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	entryID, err := uuid.Parse(web.Param(r, "entry_id"))
	if err != nil {
		return errs.NewFieldErrors("entry_id", err)
	}

	ent, err := a.timeBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, entryID)
	if err != nil {
		if errors.Is(err, timebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: entryID[%s]: %s", entryID, err)
	}

	return toAppTimeEntry(ent)
}
