package projectdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

type projectDB struct {
	ID          uuid.UUID      `db:"id"`
	WorkspaceID uuid.UUID      `db:"workspace_id"`
	ClientID    uuid.NullUUID  `db:"client_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   time.Time      `db:"date_created"`
	UpdatedAt   time.Time      `db:"date_updated"`
}

func toDBProject(bus projectbus.Project) projectDB {
	db := projectDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Name:        bus.Name.String(),
		Description: bus.Description,
		Status:      bus.Status,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.ClientID != nil {
		db.ClientID = uuid.NullUUID{UUID: *bus.ClientID, Valid: true}
	}

	if bus.DueDate != nil {
		db.DueDate = sql.NullTime{Time: bus.DueDate.UTC(), Valid: true}
	}

	return db
}

func toBusProject(db projectDB) (projectbus.Project, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return projectbus.Project{}, fmt.Errorf("parse name: %w", err)
	}

	bus := projectbus.Project{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Name:        nme,
		Description: db.Description,
		Status:      db.Status,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.ClientID.Valid {
		id := db.ClientID.UUID
		bus.ClientID = &id
	}

	if db.DueDate.Valid {
		t := db.DueDate.Time.In(time.Local)
		bus.DueDate = &t
	}

	return bus, nil
}

func toBusProjects(dbs []projectDB) ([]projectbus.Project, error) {
	bus := make([]projectbus.Project, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusProject(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
