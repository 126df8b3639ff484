// Package inviteapp maintains the app layer api for client portal
// invitations issued from inside a workspace.
package inviteapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	inviteBus *invitebus.Core
}

func newApp(inviteBus *invitebus.Core) *app {
	return &app{
		inviteBus: inviteBus,
	}
}

// create issues a new invitation for the specified client. The returned
// token is shown once so it can be sent to the invited party.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewInvitation
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

	ni, err := toBusNewInvitation(clientID, app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	inv, err := a.inviteBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, ni)
	if err != nil {
		if errors.Is(err, invitebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: clientID[%s]: %s", clientID, err)
	}

	return toAppInvitation(inv)
}

// query returns the invitations issued for the specified client.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	clientID, err := uuid.Parse(web.Param(r, "client_id"))
	if err != nil {
		return errs.NewFieldErrors("client_id", err)
	}

	invs, err := a.inviteBus.Query(ctx, mid.GetPrincipal(ctx), workspaceID, clientID)
	if err != nil {
		if errors.Is(err, invitebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: clientID[%s]: %s", clientID, err)
	}

	return toAppInvitations(invs)
}

// revoke deletes a pending invitation so its token stops resolving.
func (a *app) revoke(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	invitationID, err := uuid.Parse(web.Param(r, "invitation_id"))
	if err != nil {
		return errs.NewFieldErrors("invitation_id", err)
	}

	if err := a.inviteBus.Revoke(ctx, mid.GetPrincipal(ctx), workspaceID, invitationID); err != nil {
		if errors.Is(err, invitebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "revoke: invitationID[%s]: %s", invitationID, err)
	}

	return nil
}
