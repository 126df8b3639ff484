package projectbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID           *uuid.UUID
	ClientID     *uuid.UUID
	Name         *name.Name
	Status       *string
	StartDueDate *time.Time
	EndDueDate   *time.Time
}
