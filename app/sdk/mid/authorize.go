package mid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Authorize binds the request to the workspace named in the URL and checks
// that the authenticated principal's role in that workspace permits the
// given object/action pair. Non-members are denied before the role check
// runs, so an outsider learns nothing about the workspace.
func Authorize(ath *auth.Auth, obj string, act string) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			workspaceID, err := uuid.Parse(web.Param(r, "workspace_id"))
			if err != nil {
				return errs.New(errs.InvalidArgument, fmt.Errorf("invalid workspace id: %w", err))
			}

			p := GetPrincipal(ctx)

			rl, ok := p.Role(workspaceID)
			if !ok {
				return errs.New(errs.PermissionDenied, fmt.Errorf("not a member of workspace[%s]", workspaceID))
			}

			if err := ath.Authorize(ctx, rl, obj, act); err != nil {
				return errs.New(errs.PermissionDenied, fmt.Errorf("authorize: role[%s] obj[%s] act[%s]: %w", rl, obj, act, err))
			}

			ctx = setWorkspaceID(ctx, workspaceID)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizePortal admits portal principals only. The handler uses the
// client grants carried by the principal; no workspace role applies.
func AuthorizePortal() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)
			if claims.Kind != auth.KindPortal {
				return errs.New(errs.PermissionDenied, fmt.Errorf("portal token required"))
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
