package authapp

import (
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/password"
)

// Token carries a signed JWT back to the caller.
type Token struct {
	Token string `json:"token"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppToken(token string) Token {
	return Token{
		Token: token,
	}
}

// Login defines the data needed to authenticate an account.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// Register defines the data needed to create an account.
type Register struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *Register) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Register) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewUser(app Register) (userbus.NewUser, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		Name:     nme,
		Email:    *addr,
		Password: pass,
	}

	return bus, nil
}
