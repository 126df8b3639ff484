// Package teamapp maintains the app layer api for workspace membership
// management.
package teamapp

import (
	"context"
	"errors"
	"net/http"
	"net/mail"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
)

type app struct {
	memberBus *memberbus.Core
	userBus   *userbus.Core
}

func newApp(memberBus *memberbus.Core, userBus *userbus.Core) *app {
	return &app{
		memberBus: memberBus,
		userBus:   userBus,
	}
}

// query returns the members of the workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	dtls, err := a.memberBus.QueryByWorkspace(ctx, mid.GetPrincipal(ctx), workspaceID)
	if err != nil {
		if errors.Is(err, memberbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppMembers(dtls)
}

// add invites an existing account into the workspace by email.
func (a *app) add(ctx context.Context, r *http.Request) web.Encoder {
	var app AddMember
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return errs.NewFieldErrors("email", err)
	}

	rl, err := role.Parse(app.Role)
	if err != nil {
		return errs.NewFieldErrors("role", err)
	}

	usr, err := a.userBus.QueryByEmail(ctx, *addr)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, errors.New("no account with that email"))
		}
		return errs.Errorf(errs.Internal, "querybyemail: %s", err)
	}

	mbr, err := a.memberBus.Add(ctx, mid.GetPrincipal(ctx), workspaceID, usr.ID, rl)
	if err != nil {
		return addError(err)
	}

	return toAppMember(mbr, usr)
}

// changeRole updates a member's role in the workspace.
func (a *app) changeRole(ctx context.Context, r *http.Request) web.Encoder {
	var app ChangeRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	memberID, err := uuid.Parse(web.Param(r, "member_id"))
	if err != nil {
		return errs.NewFieldErrors("member_id", err)
	}

	rl, err := role.Parse(app.Role)
	if err != nil {
		return errs.NewFieldErrors("role", err)
	}

	mbr, err := a.memberBus.ChangeRole(ctx, mid.GetPrincipal(ctx), workspaceID, memberID, rl)
	if err != nil {
		return addError(err)
	}

	usr, err := a.userBus.QueryByID(ctx, mbr.UserID)
	if err != nil {
		return errs.Errorf(errs.Internal, "querybyid: userID[%s]: %s", mbr.UserID, err)
	}

	return toAppMember(mbr, usr)
}

// remove deletes a membership from the workspace.
func (a *app) remove(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	memberID, err := uuid.Parse(web.Param(r, "member_id"))
	if err != nil {
		return errs.NewFieldErrors("member_id", err)
	}

	if err := a.memberBus.Remove(ctx, mid.GetPrincipal(ctx), workspaceID, memberID); err != nil {
		return addError(err)
	}

	return nil
}

// addError maps membership rule violations onto app error codes.
func addError(err error) web.Encoder {
	switch {
	case errors.Is(err, memberbus.ErrNotFound):
		return errs.New(errs.NotFound, err)
	case errors.Is(err, memberbus.ErrAlreadyMember):
		return errs.New(errs.Aborted, err)
	case errors.Is(err, memberbus.ErrOwnerLocked),
		errors.Is(err, memberbus.ErrSecondOwner),
		errors.Is(err, memberbus.ErrSelfRemoval),
		errors.Is(err, memberbus.ErrForbidden):
		return errs.New(errs.FailedPrecondition, err)
	}

	return errs.Errorf(errs.InternalOnlyLog, "member: %s", err)
}
