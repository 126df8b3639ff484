// Package leadapp maintains the app layer api for intake links and the
// leads they capture.
package leadapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	leadBus *leadbus.Core
}

func newApp(leadBus *leadbus.Core) *app {
	return &app{
		leadBus: leadBus,
	}
}

// createLink mints a new intake link for the workspace.
func (a *app) createLink(ctx context.Context, r *http.Request) web.Encoder {
	var app NewIntakeLink
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nl, err := toBusNewIntakeLink(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	lnk, err := a.leadBus.CreateLink(ctx, mid.GetPrincipal(ctx), workspaceID, nl)
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "createlink: lnk[%+v]: %s", app, err)
	}

	return toAppIntakeLink(lnk)
}

// updateLink modifies an intake link. Deactivation takes effect on the
// next public submission.
func (a *app) updateLink(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateIntakeLink
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	linkID, err := uuid.Parse(web.Param(r, "link_id"))
	if err != nil {
		return errs.NewFieldErrors("link_id", err)
	}

	ul, err := toBusUpdateIntakeLink(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	lnk, err := a.leadBus.UpdateLink(ctx, mid.GetPrincipal(ctx), workspaceID, linkID, ul)
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "updatelink: linkID[%s]: %s", linkID, err)
	}

	return toAppIntakeLink(lnk)
}

// deleteLink removes an intake link from the workspace.
func (a *app) deleteLink(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	linkID, err := uuid.Parse(web.Param(r, "link_id"))
	if err != nil {
		return errs.NewFieldErrors("link_id", err)
	}

	if err := a.leadBus.DeleteLink(ctx, mid.GetPrincipal(ctx), workspaceID, linkID); err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "deletelink: linkID[%s]: %s", linkID, err)
	}

	return nil
}

// queryLinks returns the intake links of the workspace.
func (a *app) queryLinks(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	lnks, err := a.leadBus.QueryLinks(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querylinks: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppIntakeLinks(lnks)
}

// submit captures an anonymous lead through an intake link token. No
// authentication applies and the response never names the workspace.
func (a *app) submit(ctx context.Context, r *http.Request) web.Encoder {
	var app NewLead
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	token := web.Param(r, "token")

	led, err := a.leadBus.SubmitPublic(ctx, token, toBusNewLead(app))
	if err != nil {
		if errors.Is(err, leadbus.ErrLinkNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "submit: %s", err)
	}

	return toAppSubmitted(led)
}

// queryLeads returns the captured leads of the workspace.
func (a *app) queryLeads(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	leds, err := a.leadBus.QueryLeads(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "queryleads: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppLeads(leds)
}

// queryLeadByID returns a lead by its ID.
func (a *app) queryLeadByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	leadID, err := uuid.Parse(web.Param(r, "lead_id"))
	if err != nil {
		return errs.NewFieldErrors("lead_id", err)
	}

	led, err := a.leadBus.QueryLeadByID(ctx, mid.GetPrincipal(ctx), workspaceID, leadID)
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "queryleadbyid: leadID[%s]: %s", leadID, err)
	}

	return toAppLead(led)
}

// updateLead changes the triage status of a lead.
func (a *app) updateLead(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateLead
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	leadID, err := uuid.Parse(web.Param(r, "lead_id"))
	if err != nil {
		return errs.NewFieldErrors("lead_id", err)
	}

	led, err := a.leadBus.UpdateLead(ctx, mid.GetPrincipal(ctx), workspaceID, leadID, toBusUpdateLead(app))
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "updatelead: leadID[%s]: %s", leadID, err)
	}

	return toAppLead(led)
}
