package noteapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/notebus"
)

// Note represents a free-form note, optionally bound to a client or a
// project.
type Note struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (n Note) Encode() ([]byte, string, error) {
	data, err := json.Marshal(n)
	return data, "application/json", err
}

func toAppNote(bus notebus.Note) Note {
	app := Note{
		ID:          bus.ID.String(),
		Title:       bus.Title,
		Body:        bus.Body,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.ClientID != nil {
		app.ClientID = bus.ClientID.String()
	}

	if bus.ProjectID != nil {
		app.ProjectID = bus.ProjectID.String()
	}

	return app
}

// Notes is the list form of Note.
type Notes []Note

// Encode implements the web.Encoder interface.
func (ns Notes) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ns)
	return data, "application/json", err
}

func toAppNotes(ntes []notebus.Note) Notes {
	app := make(Notes, len(ntes))
	for i, nte := range ntes {
		app[i] = toAppNote(nte)
	}
	return app
}

// NewNote defines the data needed to add a new note.
type NewNote struct {
	ClientID  string `json:"clientId" validate:"omitempty,uuid"`
	ProjectID string `json:"projectId" validate:"omitempty,uuid"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body"`
}

// Decode implements the web.Decoder interface.
func (app *NewNote) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewNote) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewNote(app NewNote) (notebus.NewNote, error) {
	var clientID *uuid.UUID
	if app.ClientID != "" {
		id, err := uuid.Parse(app.ClientID)
		if err != nil {
			return notebus.NewNote{}, fmt.Errorf("parse client id: %w", err)
		}
		clientID = &id
	}

	var projectID *uuid.UUID
	if app.ProjectID != "" {
		id, err := uuid.Parse(app.ProjectID)
		if err != nil {
			return notebus.NewNote{}, fmt.Errorf("parse project id: %w", err)
		}
		projectID = &id
	}

	bus := notebus.NewNote{
		ClientID:  clientID,
		ProjectID: projectID,
		Title:     app.Title,
		Body:      app.Body,
	}

	return bus, nil
}

// UpdateNote defines the data needed to update a note.
type UpdateNote struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateNote) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateNote) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateNote(app UpdateNote) notebus.UpdateNote {
	return notebus.UpdateNote{
		Title: app.Title,
		Body:  app.Body,
	}
}
