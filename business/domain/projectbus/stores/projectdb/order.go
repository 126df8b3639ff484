package projectdb

import (
	"fmt"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/order"
)

var orderByFields = map[string]string{
	projectbus.OrderByID:        "id",
	projectbus.OrderByName:      "name",
	projectbus.OrderByStatus:    "status",
	projectbus.OrderByDueDate:   "due_date",
	projectbus.OrderByCreatedAt: "date_created",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
