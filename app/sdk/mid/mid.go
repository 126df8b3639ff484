// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	principalKey
	workspaceIDKey
	userKey
	trKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setPrincipal(ctx context.Context, p tenancy.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the tenancy principal from the context. Requests that
// never passed authentication resolve to the anonymous principal.
func GetPrincipal(ctx context.Context) tenancy.Principal {
	v, ok := ctx.Value(principalKey).(tenancy.Principal)
	if !ok {
		return tenancy.Anonymous()
	}
	return v
}

func setWorkspaceID(ctx context.Context, workspaceID uuid.UUID) context.Context {
	return context.WithValue(ctx, workspaceIDKey, workspaceID)
}

// GetWorkspaceID returns the workspace id bound by the authorize middleware.
func GetWorkspaceID(ctx context.Context) (uuid.UUID, error) {
	v, ok := ctx.Value(workspaceIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("workspace id not found in context")
	}
	return v, nil
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the user from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
