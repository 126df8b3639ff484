// Package workspaceapp maintains the app layer api for the workspace
// domain.
package workspaceapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	workspaceBus *workspacebus.Core
	memberBus    *memberbus.Core
}

func newApp(workspaceBus *workspacebus.Core, memberBus *memberbus.Core) *app {
	return &app{
		workspaceBus: workspaceBus,
		memberBus:    memberBus,
	}
}

// newWithTx constructs a new app value using the transaction stored in
// the context.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	workspaceBus, err := a.workspaceBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	memberBus, err := a.memberBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &app{
		workspaceBus: workspaceBus,
		memberBus:    memberBus,
	}, nil
}

// create adds a new workspace and installs the caller as its owner. Both
// writes run under the request transaction so a failure leaves nothing
// behind.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	na, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	var app NewWorkspace
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	p := mid.GetPrincipal(ctx)
	if p.IsAnonymous() {
		return errs.New(errs.Unauthenticated, errors.New("authentication required"))
	}

	nw, err := toBusNewWorkspace(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ws, err := na.workspaceBus.Create(ctx, nw)
	if err != nil {
		if errors.Is(err, workspacebus.ErrUniqueSlug) {
			return errs.New(errs.Aborted, workspacebus.ErrUniqueSlug)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: ws[%+v]: %s", app, err)
	}

	if _, err := na.memberBus.CreateOwner(ctx, ws.ID, p.UserID()); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create owner: workspaceID[%s]: %s", ws.ID, err)
	}

	return toAppWorkspace(ws)
}

// query returns the workspaces the caller is a member of.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	p := mid.GetPrincipal(ctx)

	wss := make([]Workspace, 0, len(p.WorkspaceIDs()))
	for _, wsID := range p.WorkspaceIDs() {
		ws, err := a.workspaceBus.QueryByID(ctx, p, wsID)
		if err != nil {
			if errors.Is(err, workspacebus.ErrNotFound) {
				continue
			}
			return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", wsID, err)
		}
		wss = append(wss, toAppWorkspace(ws))
	}

	return Workspaces(wss)
}

// queryByID returns the workspace named in the URL.
func (a *app) queryByID(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	ws, err := a.workspaceBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppWorkspace(ws)
}

// update modifies the workspace named in the URL.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateWorkspace
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	p := mid.GetPrincipal(ctx)

	ws, err := a.workspaceBus.QueryByID(ctx, p, workspaceID)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: workspaceID[%s]: %s", workspaceID, err)
	}

	uw, err := toBusUpdateWorkspace(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updWs, err := a.workspaceBus.Update(ctx, p, ws, uw)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppWorkspace(updWs)
}

// querySettings returns the settings row for the workspace.
func (a *app) querySettings(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	set, err := a.workspaceBus.QuerySettings(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querysettings: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppSettings(set)
}

// updateSettings modifies the settings row for the workspace.
func (a *app) updateSettings(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateSettings
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	set, err := a.workspaceBus.UpdateSettings(ctx, mid.GetPrincipal(ctx), workspaceID, toBusUpdateSettings(app))
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "updatesettings: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppSettings(set)
}

// querySubscription returns the billing state of the workspace.
func (a *app) querySubscription(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	sub, err := a.workspaceBus.QuerySubscription(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querysubscription: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppSubscription(sub)
}
