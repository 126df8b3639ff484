// Package credentialbus provides business access to the per-client
// credential vault. Rows hang off a client, so scoping always travels
// through the owning client's workspace.
package credentialbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// ErrNotFound is returned for rows the principal cannot see, whether they
// exist or not.
var ErrNotFound = errors.New("credential not found")

// Credential represents a stored secret for a client, such as hosting or
// registrar access handed over by the client.
type Credential struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	WorkspaceID uuid.UUID
	Kind        string
	Label       string
	Username    string
	Secret      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCredential contains information needed to create a new credential.
type NewCredential struct {
	ClientID uuid.UUID
	Kind     string
	Label    string
	Username string
	Secret   string
	Notes    string
}

// UpdateCredential contains information needed to update a credential.
type UpdateCredential struct {
	Kind     *string
	Label    *string
	Username *string
	Secret   *string
	Notes    *string
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	ClientWorkspace(ctx context.Context, clientID uuid.UUID) (uuid.UUID, error)
	Create(ctx context.Context, crd Credential) error
	Update(ctx context.Context, crd Credential) (int64, error)
	Delete(ctx context.Context, crd Credential) (int64, error)
	QueryByClient(ctx context.Context, clientID uuid.UUID) ([]Credential, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, credentialID uuid.UUID) (Credential, error)
}

// Core manages the set of APIs for credential access.
type Core struct {
	storer Storer
}

// NewCore constructs a credential core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the specified
// transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	core := Core{
		storer: storer,
	}

	return &core, nil
}

// Create stores a new credential under a client of the workspace.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nc NewCredential) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Credentials, tenancy.OpInsert, workspaceID) {
		return Credential{}, ErrNotFound
	}

	clientWS, err := c.storer.ClientWorkspace(ctx, nc.ClientID)
	if err != nil {
		return Credential{}, ErrNotFound
	}
	if clientWS != workspaceID {
		return Credential{}, ErrNotFound
	}

	now := time.Now()

	crd := Credential{
		ID:          uuid.New(),
		ClientID:    nc.ClientID,
		WorkspaceID: workspaceID,
		Kind:        nc.Kind,
		Label:       nc.Label,
		Username:    nc.Username,
		Secret:      nc.Secret,
		Notes:       nc.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, crd); err != nil {
		return Credential{}, fmt.Errorf("create: %w", err)
	}

	return crd, nil
}

// Update modifies a credential. A cross-tenant or unknown id reports
// ErrNotFound.
func (c *Core) Update(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, credentialID uuid.UUID, uc UpdateCredential) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.update")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Credentials, tenancy.OpUpdate, workspaceID) {
		return Credential{}, ErrNotFound
	}

	crd, err := c.storer.QueryByID(ctx, workspaceID, credentialID)
	if err != nil {
		return Credential{}, fmt.Errorf("query: credentialID[%s]: %w", credentialID, err)
	}

	if uc.Kind != nil {
		crd.Kind = *uc.Kind
	}
	if uc.Label != nil {
		crd.Label = *uc.Label
	}
	if uc.Username != nil {
		crd.Username = *uc.Username
	}
	if uc.Secret != nil {
		crd.Secret = *uc.Secret
	}
	if uc.Notes != nil {
		crd.Notes = *uc.Notes
	}
	crd.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, crd)
	if err != nil {
		return Credential{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return Credential{}, ErrNotFound
	}

	return crd, nil
}

// Delete removes a credential. A cross-tenant or unknown id reports
// ErrNotFound.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, credentialID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Credentials, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	crd, err := c.storer.QueryByID(ctx, workspaceID, credentialID)
	if err != nil {
		return fmt.Errorf("query: credentialID[%s]: %w", credentialID, err)
	}

	affected, err := c.storer.Delete(ctx, crd)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// QueryByClient retrieves the credentials of a client for a workspace
// member.
func (c *Core) QueryByClient(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, clientID uuid.UUID) ([]Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.querybyclient")
	defer span.End()

	if !tenancy.AllowClient(p, tenancy.Credentials, tenancy.OpSelect, clientID, workspaceID) {
		return nil, ErrNotFound
	}

	clientWS, err := c.storer.ClientWorkspace(ctx, clientID)
	if err != nil {
		return nil, ErrNotFound
	}
	if clientWS != workspaceID {
		return nil, ErrNotFound
	}

	crds, err := c.storer.QueryByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("query: clientID[%s]: %w", clientID, err)
	}

	return crds, nil
}

// QueryByID finds the credential identified by a given ID inside the
// workspace.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, credentialID uuid.UUID) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.querybyid")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Credentials, tenancy.OpSelect, workspaceID) {
		return Credential{}, ErrNotFound
	}

	crd, err := c.storer.QueryByID(ctx, workspaceID, credentialID)
	if err != nil {
		return Credential{}, fmt.Errorf("query: credentialID[%s]: %w", credentialID, err)
	}

	return crd, nil
}
