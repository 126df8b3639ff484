package projectapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// Project represents a unit of work performed for a client.
type Project struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (p Project) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppProject(bus projectbus.Project) Project {
	app := Project{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Description: bus.Description,
		Status:      bus.Status,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.ClientID != nil {
		app.ClientID = bus.ClientID.String()
	}

	if bus.DueDate != nil {
		app.DueDate = bus.DueDate.Format(time.RFC3339)
	}

	return app
}

func toAppProjects(prjs []projectbus.Project) []Project {
	app := make([]Project, len(prjs))
	for i, prj := range prjs {
		app[i] = toAppProject(prj)
	}
	return app
}

// NewProject defines the data needed to add a new project.
type NewProject struct {
	ClientID    string `json:"clientId" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"omitempty"`
}

// Decode implements the web.Decoder interface.
func (app *NewProject) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewProject) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewProject(app NewProject) (projectbus.NewProject, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return projectbus.NewProject{}, fmt.Errorf("parse name: %w", err)
	}

	var clientID *uuid.UUID
	if app.ClientID != "" {
		id, err := uuid.Parse(app.ClientID)
		if err != nil {
			return projectbus.NewProject{}, fmt.Errorf("parse client id: %w", err)
		}
		clientID = &id
	}

	var dueDate *time.Time
	if app.DueDate != "" {
		t, err := time.Parse(time.RFC3339, app.DueDate)
		if err != nil {
			return projectbus.NewProject{}, fmt.Errorf("parse due date: %w", err)
		}
		dueDate = &t
	}

	bus := projectbus.NewProject{
		ClientID:    clientID,
		Name:        nme,
		Description: app.Description,
		DueDate:     dueDate,
	}

	return bus, nil
}

// UpdateProject defines the data needed to update a project.
type UpdateProject struct {
	ClientID    *string `json:"clientId" validate:"omitempty,uuid"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE ON_HOLD DONE ARCHIVED"`
	DueDate     *string `json:"dueDate"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateProject) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateProject) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateProject(app UpdateProject) (projectbus.UpdateProject, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return projectbus.UpdateProject{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var clientID *uuid.UUID
	if app.ClientID != nil {
		id, err := uuid.Parse(*app.ClientID)
		if err != nil {
			return projectbus.UpdateProject{}, fmt.Errorf("parse client id: %w", err)
		}
		clientID = &id
	}

	var dueDate *time.Time
	if app.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *app.DueDate)
		if err != nil {
			return projectbus.UpdateProject{}, fmt.Errorf("parse due date: %w", err)
		}
		dueDate = &t
	}

	bus := projectbus.UpdateProject{
		ClientID:    clientID,
		Name:        nme,
		Description: app.Description,
		Status:      app.Status,
		DueDate:     dueDate,
	}

	return bus, nil
}
