package invitedb

import (
	"database/sql"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
)

type invitationDB struct {
	ID          uuid.UUID     `db:"id"`
	WorkspaceID uuid.UUID     `db:"workspace_id"`
	ClientID    uuid.UUID     `db:"client_id"`
	Email       string        `db:"email"`
	Token       string        `db:"token"`
	ExpiresAt   time.Time     `db:"expires_at"`
	ConsumedAt  sql.NullTime  `db:"consumed_at"`
	ConsumedBy  uuid.NullUUID `db:"consumed_by"`
	CreatedAt   time.Time     `db:"date_created"`
}

func toDBInvitation(bus invitebus.Invitation) invitationDB {
	db := invitationDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		ClientID:    bus.ClientID,
		Email:       bus.Email.Address,
		Token:       bus.Token,
		ExpiresAt:   bus.ExpiresAt.UTC(),
		CreatedAt:   bus.CreatedAt.UTC(),
	}

	if bus.ConsumedAt != nil {
		db.ConsumedAt = sql.NullTime{Time: bus.ConsumedAt.UTC(), Valid: true}
	}
	if bus.ConsumedBy != nil {
		db.ConsumedBy = uuid.NullUUID{UUID: *bus.ConsumedBy, Valid: true}
	}

	return db
}

func toBusInvitation(db invitationDB) invitebus.Invitation {
	bus := invitebus.Invitation{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		ClientID:    db.ClientID,
		Email:       mail.Address{Address: db.Email},
		Token:       db.Token,
		ExpiresAt:   db.ExpiresAt.In(time.Local),
		CreatedAt:   db.CreatedAt.In(time.Local),
	}

	if db.ConsumedAt.Valid {
		t := db.ConsumedAt.Time.In(time.Local)
		bus.ConsumedAt = &t
	}
	if db.ConsumedBy.Valid {
		id := db.ConsumedBy.UUID
		bus.ConsumedBy = &id
	}

	return bus
}

type bindingDB struct {
	ID          uuid.UUID `db:"id"`
	ClientID    uuid.UUID `db:"client_id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	UserID      uuid.UUID `db:"user_id"`
	CreatedAt   time.Time `db:"date_created"`
}

func toDBBinding(bus invitebus.Binding) bindingDB {
	return bindingDB{
		ID:          bus.ID,
		ClientID:    bus.ClientID,
		WorkspaceID: bus.WorkspaceID,
		UserID:      bus.UserID,
		CreatedAt:   bus.CreatedAt.UTC(),
	}
}

func toBusBinding(db bindingDB) invitebus.Binding {
	return invitebus.Binding{
		ID:          db.ID,
		ClientID:    db.ClientID,
		WorkspaceID: db.WorkspaceID,
		UserID:      db.UserID,
		CreatedAt:   db.CreatedAt.In(time.Local),
	}
}
