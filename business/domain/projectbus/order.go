package projectbus

import "github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "project_id"
	OrderByName      = "name"
	OrderByStatus    = "status"
	OrderByDueDate   = "due_date"
	OrderByCreatedAt = "date_created"
)
