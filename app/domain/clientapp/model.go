package clientapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/clientbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// Client represents an external client of a workspace.
type Client struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Status      string `json:"status"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Client) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppClient(bus clientbus.Client) Client {
	return Client{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Email:       bus.Email.Address,
		Company:     bus.Company,
		Status:      bus.Status,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// Clients is the list form of Client.
type Clients []Client

// Encode implements the web.Encoder interface.
func (cs Clients) Encode() ([]byte, string, error) {
	data, err := json.Marshal(cs)
	return data, "application/json", err
}

func toAppClients(clis []clientbus.Client) Clients {
	app := make(Clients, len(clis))
	for i, cli := range clis {
		app[i] = toAppClient(cli)
	}
	return app
}

// NewClient defines the data needed to add a new client.
type NewClient struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
}

// Decode implements the web.Decoder interface.
func (app *NewClient) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewClient) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewClient(app NewClient) (clientbus.NewClient, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return clientbus.NewClient{}, fmt.Errorf("parse name: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return clientbus.NewClient{}, fmt.Errorf("parse email: %w", err)
	}

	bus := clientbus.NewClient{
		Name:    nme,
		Email:   *addr,
		Company: app.Company,
	}

	return bus, nil
}

// UpdateClient defines the data needed to update a client.
type UpdateClient struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Company *string `json:"company"`
	Status  *string `json:"status" validate:"omitempty,oneof=ACTIVE ARCHIVED"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateClient) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateClient) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateClient(app UpdateClient) (clientbus.UpdateClient, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return clientbus.UpdateClient{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var addr *mail.Address
	if app.Email != nil {
		ad, err := mail.ParseAddress(*app.Email)
		if err != nil {
			return clientbus.UpdateClient{}, fmt.Errorf("parse email: %w", err)
		}
		addr = ad
	}

	bus := clientbus.UpdateClient{
		Name:    nme,
		Email:   addr,
		Company: app.Company,
		Status:  app.Status,
	}

	return bus, nil
}
