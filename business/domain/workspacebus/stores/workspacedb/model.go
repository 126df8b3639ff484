package workspacedb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

type workspaceDB struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"date_created"`
	UpdatedAt time.Time `db:"date_updated"`
}

func toDBWorkspace(bus workspacebus.Workspace) workspaceDB {
	return workspaceDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Slug:      bus.Slug,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusWorkspace(db workspaceDB) (workspacebus.Workspace, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return workspacebus.Workspace{}, fmt.Errorf("parse name: %w", err)
	}

	bus := workspacebus.Workspace{
		ID:        db.ID,
		Name:      nme,
		Slug:      db.Slug,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

// =============================================================================

type settingsDB struct {
	ID            uuid.UUID `db:"id"`
	WorkspaceID   uuid.UUID `db:"workspace_id"`
	CompanyName   string    `db:"company_name"`
	LogoURL       string    `db:"logo_url"`
	AccentColor   string    `db:"accent_color"`
	InvoicePrefix string    `db:"invoice_prefix"`
	InvoiceNotes  string    `db:"invoice_notes"`
	TaxRateBps    int       `db:"tax_rate_bps"`
	Currency      string    `db:"currency"`
	UpdatedAt     time.Time `db:"date_updated"`
}

func toDBSettings(bus workspacebus.Settings) settingsDB {
	return settingsDB{
		ID:            bus.ID,
		WorkspaceID:   bus.WorkspaceID,
		CompanyName:   bus.CompanyName,
		LogoURL:       bus.LogoURL,
		AccentColor:   bus.AccentColor,
		InvoicePrefix: bus.InvoicePrefix,
		InvoiceNotes:  bus.InvoiceNotes,
		TaxRateBps:    bus.TaxRateBps,
		Currency:      bus.Currency,
		UpdatedAt:     bus.UpdatedAt.UTC(),
	}
}

func toBusSettings(db settingsDB) workspacebus.Settings {
	return workspacebus.Settings{
		ID:            db.ID,
		WorkspaceID:   db.WorkspaceID,
		CompanyName:   db.CompanyName,
		LogoURL:       db.LogoURL,
		AccentColor:   db.AccentColor,
		InvoicePrefix: db.InvoicePrefix,
		InvoiceNotes:  db.InvoiceNotes,
		TaxRateBps:    db.TaxRateBps,
		Currency:      db.Currency,
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}
}

// =============================================================================

type subscriptionDB struct {
	ID               uuid.UUID    `db:"id"`
	WorkspaceID      uuid.UUID    `db:"workspace_id"`
	Plan             string       `db:"plan"`
	Status           string       `db:"status"`
	CurrentPeriodEnd sql.NullTime `db:"current_period_end"`
	CreatedAt        time.Time    `db:"date_created"`
	UpdatedAt        time.Time    `db:"date_updated"`
}

func toDBSubscription(bus workspacebus.Subscription) subscriptionDB {
	db := subscriptionDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Plan:        bus.Plan,
		Status:      bus.Status,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.CurrentPeriodEnd != nil {
		db.CurrentPeriodEnd = sql.NullTime{Time: bus.CurrentPeriodEnd.UTC(), Valid: true}
	}

	return db
}

func toBusSubscription(db subscriptionDB) workspacebus.Subscription {
	bus := workspacebus.Subscription{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Plan:        db.Plan,
		Status:      db.Status,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.CurrentPeriodEnd.Valid {
		t := db.CurrentPeriodEnd.Time.In(time.Local)
		bus.CurrentPeriodEnd = &t
	}

	return bus
}
