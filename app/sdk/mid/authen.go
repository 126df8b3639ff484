package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
)

// Authenticate validates the JWT in the Authorization header and constructs
// the tenancy principal for the request. Staff tokens carry the user's
// workspace memberships; portal tokens carry client grants resolved from
// accepted invitations.
func Authenticate(ath *auth.Auth, userBus *userbus.Core, memberBus *memberbus.Core, inviteBus *invitebus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errs.New(errs.Unauthenticated, errors.New("expected authorization header format: Bearer <token>"))
			}

			claims, err := ath.Authenticate(ctx, authStr)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return errs.New(errs.Unauthenticated, fmt.Errorf("invalid user id: %w", err))
			}

			var p tenancy.Principal

			switch claims.Kind {
			case auth.KindUser:
				usr, err := userBus.QueryByID(ctx, userID)
				if err != nil {
					return errs.New(errs.Unauthenticated, fmt.Errorf("querybyid: userID[%s]: %w", userID, err))
				}
				if !usr.Enabled {
					return errs.New(errs.Unauthenticated, errors.New("user disabled"))
				}

				mbrs, err := memberBus.QueryMemberships(ctx, userID)
				if err != nil {
					return errs.New(errs.Internal, fmt.Errorf("querymemberships: userID[%s]: %w", userID, err))
				}

				memberships := make(map[uuid.UUID]role.Role, len(mbrs))
				for _, mbr := range mbrs {
					memberships[mbr.WorkspaceID] = mbr.Role
				}

				p = tenancy.NewPrincipal(userID, memberships)
				ctx = setUser(ctx, usr)

			case auth.KindPortal:
				bnds, err := inviteBus.BindingsForUser(ctx, userID)
				if err != nil {
					return errs.New(errs.Internal, fmt.Errorf("bindingsforuser: userID[%s]: %w", userID, err))
				}

				grants := make(map[uuid.UUID]uuid.UUID, len(bnds))
				for _, bnd := range bnds {
					grants[bnd.ClientID] = bnd.WorkspaceID
				}

				p = tenancy.NewPortalPrincipal(userID, grants)

			default:
				return errs.New(errs.Unauthenticated, fmt.Errorf("unknown token kind: %q", claims.Kind))
			}

			ctx = setClaims(ctx, claims)
			ctx = setPrincipal(ctx, p)

			return next(ctx, r)
		}

		return h
	}

	return m
}
