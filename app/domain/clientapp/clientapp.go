// Package clientapp maintains the app layer api for the client domain.
package clientapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/clientbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	clientBus *clientbus.Core
}

func newApp(clientBus *clientbus.Core) *app {
	return &app{
		clientBus: clientBus,
	}
}

// create adds a new client to the workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewClient
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nc, err := toBusNewClient(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cli, err := a.clientBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, nc)
	if err != nil {
		if errors.Is(err, clientbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: cli[%+v]: %s", app, err)
	}

	return toAppClient(cli)
}

// update modifies a client in the workspace.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateClient
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	clientID, err := uuid.Parse(web.Param(r, "client_id"))
	if err != nil {
		return errs.NewFieldErrors("client_id", err)
	}

	uc, err := toBusUpdateClient(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cli, err := a.clientBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, clientID, uc)
	if err != nil {
		if errors.Is(err, clientbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: clientID[%s]: %s", clientID, err)
	}

	return toAppClient(cli)
}

// delete removes a client from the workspace.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	clientID, err := uuid.Parse(web.Param(r, "client_id"))
	if err != nil {
		return errs.NewFieldErrors("client_id", err)
	}

	if err := a.clientBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, clientID); err != nil {
		if errors.Is(err, clientbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: clientID[%s]: %s", clientID, err)
	}

	return nil
}

// query returns the clients of the workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	clis, err := a.clientBus.Query(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, clientbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppClients(clis)
}

// queryByID returns a client by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	clientID, err := uuid.Parse(web.Param(r, "client_id"))
	if err != nil {
		return errs.NewFieldErrors("client_id", err)
	}

	cli, err := a.clientBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, clientID)
	if err != nil {
		if errors.Is(err, clientbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: clientID[%s]: %s", clientID, err)
	}

	return toAppClient(cli)
}
