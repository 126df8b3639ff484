// Package leadbus provides business access to public intake links and the
// leads they capture.
package leadbus

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound = errors.New("lead not found")

	// ErrLinkNotFound covers unknown tokens and deactivated links alike so
	// an anonymous submitter learns nothing about which case applied.
	ErrLinkNotFound = errors.New("intake link not found")
)

// StatusNew is the status stamped on every captured lead.
const StatusNew = "NEW"

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	CreateLink(ctx context.Context, lnk IntakeLink) error
	UpdateLink(ctx context.Context, lnk IntakeLink) (int64, error)
	DeleteLink(ctx context.Context, lnk IntakeLink) (int64, error)
	QueryLinks(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]IntakeLink, error)
	QueryLinkByID(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (IntakeLink, error)
	QueryLinkByToken(ctx context.Context, token string) (IntakeLink, error)
	CreateLead(ctx context.Context, led Lead) error
	UpdateLead(ctx context.Context, led Lead) (int64, error)
	QueryLeads(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Lead, error)
	QueryLeadByID(ctx context.Context, workspaceID uuid.UUID, leadID uuid.UUID) (Lead, error)
}

// Core manages the set of APIs for intake link and lead access.
type Core struct {
	storer Storer
}

// NewCore constructs an intake core API for use.
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

// CreateLink mints a new intake link for the workspace. The token is random
// and carries no workspace information.
func (c *Core) CreateLink(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nl NewIntakeLink) (IntakeLink, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.createlink")
	defer span.End()

	if !tenancy.Allow(p, tenancy.IntakeLinks, tenancy.OpInsert, workspaceID) {
		return IntakeLink{}, ErrNotFound
	}

	token, err := generateToken()
	if err != nil {
		return IntakeLink{}, fmt.Errorf("generatetoken: %w", err)
	}

	now := time.Now()

	lnk := IntakeLink{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Token:       token,
		Name:        nl.Name,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.CreateLink(ctx, lnk); err != nil {
		return IntakeLink{}, fmt.Errorf("createlink: %w", err)
	}

	return lnk, nil
}

// UpdateLink modifies an intake link, typically to deactivate it.
func (c *Core) UpdateLink(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, linkID uuid.UUID, ul UpdateIntakeLink) (IntakeLink, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.updatelink")
	defer span.End()

	if !tenancy.Allow(p, tenancy.IntakeLinks, tenancy.OpUpdate, workspaceID) {
		return IntakeLink{}, ErrNotFound
	}

	lnk, err := c.storer.QueryLinkByID(ctx, workspaceID, linkID)
	if err != nil {
		return IntakeLink{}, fmt.Errorf("querylink: linkID[%s]: %w", linkID, err)
	}

	if ul.Name != nil {
		lnk.Name = *ul.Name
	}
	if ul.Active != nil {
		lnk.Active = *ul.Active
	}
	lnk.UpdatedAt = time.Now()

	affected, err := c.storer.UpdateLink(ctx, lnk)
	if err != nil {
		return IntakeLink{}, fmt.Errorf("updatelink: %w", err)
	}
	if affected == 0 {
		return IntakeLink{}, ErrNotFound
	}

	return lnk, nil
}

// DeleteLink removes an intake link. Leads already captured through it
// survive.
func (c *Core) DeleteLink(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, linkID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.deletelink")
	defer span.End()

	if !tenancy.Allow(p, tenancy.IntakeLinks, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	lnk, err := c.storer.QueryLinkByID(ctx, workspaceID, linkID)
	if err != nil {
		return fmt.Errorf("querylink: linkID[%s]: %w", linkID, err)
	}

	affected, err := c.storer.DeleteLink(ctx, lnk)
	if err != nil {
		return fmt.Errorf("deletelink: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// QueryLinks retrieves the intake links of a workspace.
func (c *Core) QueryLinks(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]IntakeLink, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.querylinks")
	defer span.End()

	if !tenancy.Allow(p, tenancy.IntakeLinks, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	lnks, err := c.storer.QueryLinks(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querylinks: %w", err)
	}

	return lnks, nil
}

// QueryLinkByID finds the intake link identified by a given ID inside the
// workspace.
func (c *Core) QueryLinkByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, linkID uuid.UUID) (IntakeLink, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.querylinkbyid")
	defer span.End()

	if !tenancy.Allow(p, tenancy.IntakeLinks, tenancy.OpSelect, workspaceID) {
		return IntakeLink{}, ErrNotFound
	}

	lnk, err := c.storer.QueryLinkByID(ctx, workspaceID, linkID)
	if err != nil {
		return IntakeLink{}, fmt.Errorf("querylink: linkID[%s]: %w", linkID, err)
	}

	return lnk, nil
}

// SubmitPublic captures an anonymous lead through an intake link token. The
// workspace is resolved server side from the token and stamped on the lead.
// Unknown and inactive tokens both report ErrLinkNotFound.
func (c *Core) SubmitPublic(ctx context.Context, token string, nl NewLead) (Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.submitpublic")
	defer span.End()

	lnk, err := c.storer.QueryLinkByToken(ctx, token)
	if err != nil {
		return Lead{}, ErrLinkNotFound
	}

	if !lnk.Active {
		return Lead{}, ErrLinkNotFound
	}

	if !tenancy.Allow(tenancy.Anonymous(), tenancy.Leads, tenancy.OpInsert, lnk.WorkspaceID) {
		return Lead{}, ErrLinkNotFound
	}

	now := time.Now()

	led := Lead{
		ID:           uuid.New(),
		WorkspaceID:  lnk.WorkspaceID,
		IntakeLinkID: lnk.ID,
		Name:         nl.Name,
		Email:        nl.Email,
		Company:      nl.Company,
		Message:      nl.Message,
		Status:       StatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.CreateLead(ctx, led); err != nil {
		return Lead{}, fmt.Errorf("createlead: %w", err)
	}

	return led, nil
}

// UpdateLead lets a member change the status of a captured lead.
func (c *Core) UpdateLead(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, leadID uuid.UUID, ul UpdateLead) (Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.updatelead")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Leads, tenancy.OpUpdate, workspaceID) {
		return Lead{}, ErrNotFound
	}

	led, err := c.storer.QueryLeadByID(ctx, workspaceID, leadID)
	if err != nil {
		return Lead{}, fmt.Errorf("querylead: leadID[%s]: %w", leadID, err)
	}

	if ul.Status != nil {
		led.Status = *ul.Status
	}
	led.UpdatedAt = time.Now()

	affected, err := c.storer.UpdateLead(ctx, led)
	if err != nil {
		return Lead{}, fmt.Errorf("updatelead: %w", err)
	}
	if affected == 0 {
		return Lead{}, ErrNotFound
	}

	return led, nil
}

// QueryLeads retrieves the leads captured for a workspace.
func (c *Core) QueryLeads(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.queryleads")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Leads, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	leds, err := c.storer.QueryLeads(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("queryleads: %w", err)
	}

	return leds, nil
}

// QueryLeadByID finds the lead identified by a given ID inside the
// workspace.
func (c *Core) QueryLeadByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, leadID uuid.UUID) (Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.queryleadbyid")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Leads, tenancy.OpSelect, workspaceID) {
		return Lead{}, ErrNotFound
	}

	led, err := c.storer.QueryLeadByID(ctx, workspaceID, leadID)
	if err != nil {
		return Lead{}, fmt.Errorf("querylead: leadID[%s]: %w", leadID, err)
	}

	return led, nil
}

// generateToken produces an opaque url safe token for an intake link.
func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
