// Package credentialapp maintains the app layer api for client
// credentials managed from inside a workspace.
package credentialapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	credentialBus *credentialbus.Core
}

func newApp(credentialBus *credentialbus.Core) *app {
	return &app{
		credentialBus: credentialBus,
	}
}

// create stores a new credential for the specified client.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCredential
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

	crd, err := a.credentialBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, toBusNewCredential(clientID, app))
	if err != nil {
		if errors.Is(err, credentialbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: clientID[%s]: %s", clientID, err)
	}

	return toAppCredential(crd)
}

// update modifies a credential.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCredential
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	credentialID, err := uuid.Parse(web.Param(r, "credential_id"))
	if err != nil {
		return errs.NewFieldErrors("credential_id", err)
	}

	crd, err := a.credentialBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, credentialID, toBusUpdateCredential(app))
	if err != nil {
		if errors.Is(err, credentialbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: credentialID[%s]: %s", credentialID, err)
	}

	return toAppCredential(crd)
}

// delete removes a credential.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	credentialID, err := uuid.Parse(web.Param(r, "credential_id"))
	if err != nil {
		return errs.NewFieldErrors("credential_id", err)
	}

	if err := a.credentialBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, credentialID); err != nil {
		if errors.Is(err, credentialbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: credentialID[%s]: %s", credentialID, err)
	}

	return nil
}

// queryByClient returns the credentials stored for a client.
func (a *app) queryByClient(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	clientID, err := uuid.Parse(web.Param(r, "client_id"))
	if err != nil {
		return errs.NewFieldErrors("client_id", err)
	}

	crds, err := a.credentialBus.QueryByClient(ctx, mid.GetPrincipal(ctx), workspaceID, clientID)
	if err != nil {
		if errors.Is(err, credentialbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyclient: clientID[%s]: %s", clientID, err)
	}

	return toAppCredentials(crds)
}

// queryByID returns a credential by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	credentialID, err := uuid.Parse(web.Param(r, "credential_id"))
	if err != nil {
		return errs.NewFieldErrors("credential_id", err)
	}

	crd, err := a.credentialBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, credentialID)
	if err != nil {
		if errors.Is(err, credentialbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: credentialID[%s]: %s", credentialID, err)
	}

	return toAppCredential(crd)
}
