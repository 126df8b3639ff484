package projectapp

import (
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
)

var orderByFields = map[string]string{
	"project_id": projectbus.OrderByID,
	"name":       projectbus.OrderByName,
	"status":     projectbus.OrderByStatus,
	"due_date":   projectbus.OrderByDueDate,
	"created":    projectbus.OrderByCreatedAt,
}
