package teamapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
)

// Member represents a workspace membership with the user's identity.
type Member struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (m Member) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMember(bus memberbus.Member, usr userbus.User) Member {
	return Member{
		ID:          bus.ID.String(),
		UserID:      bus.UserID.String(),
		Name:        usr.Name.String(),
		Email:       usr.Email.Address,
		Role:        bus.Role.String(),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// Members is the list form of Member.
type Members []Member

// Encode implements the web.Encoder interface.
func (ms Members) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ms)
	return data, "application/json", err
}

func toAppMembers(dtls []memberbus.Detail) Members {
	app := make(Members, len(dtls))
	for i, dtl := range dtls {
		app[i] = Member{
			ID:          dtl.ID.String(),
			UserID:      dtl.UserID.String(),
			Name:        dtl.UserName.String(),
			Email:       dtl.UserEmail.Address,
			Role:        dtl.Role.String(),
			DateCreated: dtl.CreatedAt.Format(time.RFC3339),
		}
	}
	return app
}

// AddMember defines the data needed to add a member by email.
type AddMember struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *AddMember) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app AddMember) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// ChangeRole defines the data needed to change a member's role.
type ChangeRole struct {
	Role string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *ChangeRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app ChangeRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
