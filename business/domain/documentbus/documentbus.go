// Package documentbus provides business access to stored document records.
// Only metadata lives here; the file bytes sit behind the file_url.
package documentbus

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
var ErrNotFound = errors.New("document not found")

// Document represents a file record, optionally bound to a client.
type Document struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	ClientID    *uuid.UUID
	Name        string
	FileURL     string
	CreatedAt   time.Time
}

// NewDocument contains information needed to create a new document.
type NewDocument struct {
	ClientID *uuid.UUID
	Name     string
	FileURL  string
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, doc Document) error
	Delete(ctx context.Context, doc Document) (int64, error)
	Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Document, error)
	QueryByID(ctx context.Context, workspaceID uuid.UUID, documentID uuid.UUID) (Document, error)
}

// Core manages the set of APIs for document access.
type Core struct {
	storer Storer
}

// NewCore constructs a document core API for use.
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

// Create records a new document inside the workspace.
func (c *Core) Create(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, nd NewDocument) (Document, error) {
	ctx, span := otel.AddSpan(ctx, "business.documentbus.create")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Documents, tenancy.OpInsert, workspaceID) {
		return Document{}, ErrNotFound
	}

	doc := Document{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ClientID:    nd.ClientID,
		Name:        nd.Name,
		FileURL:     nd.FileURL,
		CreatedAt:   time.Now(),
	}

	if err := c.storer.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("create: %w", err)
	}

	return doc, nil
}

// Delete removes a document record. A cross-tenant or unknown id reports
// ErrNotFound.
func (c *Core) Delete(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, documentID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.documentbus.delete")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Documents, tenancy.OpDelete, workspaceID) {
		return ErrNotFound
	}

	doc, err := c.storer.QueryByID(ctx, workspaceID, documentID)
	if err != nil {
		return fmt.Errorf("query: documentID[%s]: %w", documentID, err)
	}

	affected, err := c.storer.Delete(ctx, doc)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Query retrieves the documents of a workspace visible to the principal.
func (c *Core) Query(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]Document, error) {
	ctx, span := otel.AddSpan(ctx, "business.documentbus.query")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Documents, tenancy.OpSelect, workspaceID) {
		return nil, ErrNotFound
	}

	docs, err := c.storer.Query(ctx, p, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return docs, nil
}

// QueryByID finds the document identified by a given ID inside the
// workspace.
func (c *Core) QueryByID(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, documentID uuid.UUID) (Document, error) {
	ctx, span := otel.AddSpan(ctx, "business.documentbus.queryByID")
	defer span.End()

	if !tenancy.Allow(p, tenancy.Documents, tenancy.OpSelect, workspaceID) {
		return Document{}, ErrNotFound
	}

	doc, err := c.storer.QueryByID(ctx, workspaceID, documentID)
	if err != nil {
		return Document{}, fmt.Errorf("query: documentID[%s]: %w", documentID, err)
	}

	return doc, nil
}
