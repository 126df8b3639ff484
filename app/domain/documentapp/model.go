package documentapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/documentbus"
)

// Document represents a file record in a workspace.
type Document struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId,omitempty"`
	Name        string `json:"name"`
	FileURL     string `json:"fileUrl"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (d Document) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

func toAppDocument(bus documentbus.Document) Document {
	app := Document{
		ID:          bus.ID.String(),
		Name:        bus.Name,
		FileURL:     bus.FileURL,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}

	if bus.ClientID != nil {
		app.ClientID = bus.ClientID.String()
	}

	return app
}

// Documents is the list form of Document.
type Documents []Document

// Encode implements the web.Encoder interface.
func (ds Documents) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ds)
	return data, "application/json", err
}

func toAppDocuments(docs []documentbus.Document) Documents {
	app := make(Documents, len(docs))
	for i, doc := range docs {
		app[i] = toAppDocument(doc)
	}
	return app
}

// NewDocument defines the data needed to record a new document.
type NewDocument struct {
	ClientID string `json:"clientId" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required"`
	FileURL  string `json:"fileUrl" validate:"required,url"`
}

// Decode implements the web.Decoder interface.
func (app *NewDocument) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewDocument) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewDocument(app NewDocument) (documentbus.NewDocument, error) {
	var clientID *uuid.UUID
	if app.ClientID != "" {
		id, err := uuid.Parse(app.ClientID)
		if err != nil {
			return documentbus.NewDocument{}, fmt.Errorf("parse client id: %w", err)
		}
		clientID = &id
	}

	bus := documentbus.NewDocument{
		ClientID: clientID,
		Name:     app.Name,
		FileURL:  app.FileURL,
	}

	return bus, nil
}
