package leaddb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

type intakeLinkDB struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Token       string    `db:"token"`
	Name        string    `db:"name"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"date_created"`
	UpdatedAt   time.Time `db:"date_updated"`
}

func toDBIntakeLink(bus leadbus.IntakeLink) intakeLinkDB {
	return intakeLinkDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Token:       bus.Token,
		Name:        bus.Name.String(),
		Active:      bus.Active,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}
}

func toBusIntakeLink(db intakeLinkDB) (leadbus.IntakeLink, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return leadbus.IntakeLink{}, fmt.Errorf("parse name: %w", err)
	}

	bus := leadbus.IntakeLink{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Token:       db.Token,
		Name:        nme,
		Active:      db.Active,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

type leadDB struct {
	ID           uuid.UUID `db:"id"`
	WorkspaceID  uuid.UUID `db:"workspace_id"`
	IntakeLinkID uuid.UUID `db:"intake_link_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Company      string    `db:"company"`
	Message      string    `db:"message"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"date_created"`
	UpdatedAt    time.Time `db:"date_updated"`
}

func toDBLead(bus leadbus.Lead) leadDB {
	return leadDB{
		ID:           bus.ID,
		WorkspaceID:  bus.WorkspaceID,
		IntakeLinkID: bus.IntakeLinkID,
		Name:         bus.Name,
		Email:        bus.Email,
		Company:      bus.Company,
		Message:      bus.Message,
		Status:       bus.Status,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusLead(db leadDB) leadbus.Lead {
	return leadbus.Lead{
		ID:           db.ID,
		WorkspaceID:  db.WorkspaceID,
		IntakeLinkID: db.IntakeLinkID,
		Name:         db.Name,
		Email:        db.Email,
		Company:      db.Company,
		Message:      db.Message,
		Status:       db.Status,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}
}
