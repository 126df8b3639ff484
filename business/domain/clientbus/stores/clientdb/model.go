package clientdb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/clientbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

type clientDB struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Company     string    `db:"company"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"date_created"`
	UpdatedAt   time.Time `db:"date_updated"`
}

func toDBClient(bus clientbus.Client) clientDB {
	return clientDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Name:        bus.Name.String(),
		Email:       bus.Email.Address,
		Company:     bus.Company,
		Status:      bus.Status,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}
}

func toBusClient(db clientDB) (clientbus.Client, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return clientbus.Client{}, fmt.Errorf("parse name: %w", err)
	}

	bus := clientbus.Client{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Name:        nme,
		Email:       mail.Address{Address: db.Email},
		Company:     db.Company,
		Status:      db.Status,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusClients(dbs []clientDB) ([]clientbus.Client, error) {
	bus := make([]clientbus.Client, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusClient(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
