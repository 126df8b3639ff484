// Package portalapp maintains the app layer api for the client portal. It
// carries the public invitation resolve endpoint plus the endpoints a
// portal user reaches with a portal token.
package portalapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	inviteBus     *invitebus.Core
	credentialBus *credentialbus.Core
}

func newApp(inviteBus *invitebus.Core, credentialBus *credentialbus.Core) *app {
	return &app{
		inviteBus:     inviteBus,
		credentialBus: credentialBus,
	}
}

// resolve returns the state of an invitation token. The token is the only
// addressing the invited party holds, so this endpoint is public and the
// response carries only what the invited party needs to act.
func (a *app) resolve(ctx context.Context, r *http.Request) web.Encoder {
	token := web.Param(r, "token")

	inv, err := a.inviteBus.Resolve(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, invitebus.ErrNotFound):
			return errs.New(errs.NotFound, err)
		case errors.Is(err, invitebus.ErrExpired):
			return errs.New(errs.FailedPrecondition, err)
		case errors.Is(err, invitebus.ErrConsumed):
			return errs.New(errs.Aborted, err)
		}
		return errs.Errorf(errs.Internal, "resolve: %s", err)
	}

	return toAppResolvedInvitation(inv)
}

// accept consumes an invitation on behalf of the authenticated portal
// user, creating the durable client binding. Re-accepting by the same user
// returns the existing binding.
func (a *app) accept(ctx context.Context, r *http.Request) web.Encoder {
	token := web.Param(r, "token")

	p := mid.GetPrincipal(ctx)

	bnd, err := a.inviteBus.Accept(ctx, p.UserID(), token)
	if err != nil {
		switch {
		case errors.Is(err, invitebus.ErrNotFound):
			return errs.New(errs.NotFound, err)
		case errors.Is(err, invitebus.ErrExpired):
			return errs.New(errs.FailedPrecondition, err)
		case errors.Is(err, invitebus.ErrConsumed):
			return errs.New(errs.Aborted, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "accept: userID[%s]: %s", p.UserID(), err)
	}

	return toAppBinding(bnd)
}

// queryClients returns the clients the portal user holds a binding for.
func (a *app) queryClients(ctx context.Context, _ *http.Request) web.Encoder {
	p := mid.GetPrincipal(ctx)

	bnds, err := a.inviteBus.BindingsForUser(ctx, p.UserID())
	if err != nil {
		return errs.Errorf(errs.Internal, "bindingsforuser: userID[%s]: %s", p.UserID(), err)
	}

	return toAppBindings(bnds)
}

// queryCredentials returns the credentials stored for a client the portal
// user holds a binding for. The owning workspace is resolved through the
// principal's grant, never from caller input.
func (a *app) queryCredentials(ctx context.Context, r *http.Request) web.Encoder {
	clientID, err := uuid.Parse(web.Param(r, "client_id"))
	if err != nil {
		return errs.NewFieldErrors("client_id", err)
	}

	p := mid.GetPrincipal(ctx)

	workspaceID, exists := p.ClientGrant(clientID)
	if !exists {
		return errs.Errorf(errs.PermissionDenied, "no access to client[%s]", clientID)
	}

	crds, err := a.credentialBus.QueryByClient(ctx, p, workspaceID, clientID)
	if err != nil {
		if errors.Is(err, credentialbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyclient: clientID[%s]: %s", clientID, err)
	}

	return toAppCredentials(crds)
}
