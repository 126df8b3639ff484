package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID             *uuid.UUID
	Name           *name.Name
	Email          *mail.Address
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
