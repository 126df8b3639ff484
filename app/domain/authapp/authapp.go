// Package authapp maintains the app layer api for authentication.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	auth      *auth.Auth
	activeKID string
	userBus   *userbus.Core
}

func newApp(ath *auth.Auth, activeKID string, userBus *userbus.Core) *app {
	return &app{
		auth:      ath,
		activeKID: activeKID,
		userBus:   userBus,
	}
}

// register creates a new account and returns a signed staff token. The
// account starts with no workspace memberships.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var app Register
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "register: email[%s]: %s", app.Email, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.ID, auth.KindUser)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}

// login authenticates an account's credentials and returns a signed
// staff token.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var app Login
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, app.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.ID, auth.KindUser)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}

// portalLogin authenticates the same credential set but issues a portal
// token. Portal tokens carry client grants instead of workspace roles.
func (a *app) portalLogin(ctx context.Context, r *http.Request) web.Encoder {
	var app Login
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, app.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.ID, auth.KindPortal)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}
