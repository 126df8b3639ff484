package memberdb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
)

type memberDB struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	UserID      uuid.UUID `db:"user_id"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"date_created"`
	UpdatedAt   time.Time `db:"date_updated"`
}

func toDBMember(bus memberbus.Member) memberDB {
	return memberDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		UserID:      bus.UserID,
		Role:        bus.Role.String(),
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}
}

func toBusMember(db memberDB) (memberbus.Member, error) {
	rl, err := role.Parse(db.Role)
	if err != nil {
		return memberbus.Member{}, fmt.Errorf("parse role: %w", err)
	}

	bus := memberbus.Member{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		UserID:      db.UserID,
		Role:        rl,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusMembers(dbs []memberDB) ([]memberbus.Member, error) {
	bus := make([]memberbus.Member, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusMember(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

// =============================================================================

type detailDB struct {
	memberDB
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

func toBusDetails(dbs []detailDB) ([]memberbus.Detail, error) {
	bus := make([]memberbus.Detail, len(dbs))

	for i, db := range dbs {
		mbr, err := toBusMember(db.memberDB)
		if err != nil {
			return nil, err
		}

		nme, err := name.Parse(db.UserName)
		if err != nil {
			return nil, fmt.Errorf("parse name: %w", err)
		}

		bus[i] = memberbus.Detail{
			Member:    mbr,
			UserName:  nme,
			UserEmail: mail.Address{Address: db.UserEmail},
		}
	}

	return bus, nil
}
