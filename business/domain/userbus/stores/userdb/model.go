package userdb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

type userDB struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	Enabled      bool      `db:"enabled"`
	CreatedAt    time.Time `db:"date_created"`
	UpdatedAt    time.Time `db:"date_updated"`
}

func toDBUser(bus userbus.User) userDB {
	return userDB{
		ID:           bus.ID,
		Name:         bus.Name.String(),
		Email:        bus.Email.Address,
		PasswordHash: bus.PasswordHash,
		Enabled:      bus.Enabled,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (userbus.User, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	bus := userbus.User{
		ID:           db.ID,
		Name:         nme,
		Email:        mail.Address{Address: db.Email},
		PasswordHash: db.PasswordHash,
		Enabled:      db.Enabled,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
