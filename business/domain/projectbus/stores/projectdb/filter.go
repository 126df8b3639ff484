package projectdb

import (
	"bytes"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
)

// applyFilter appends filter conditions to a statement whose WHERE clause
// is already open with the tenancy scope.
func applyFilter(filter projectbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	if filter.ID != nil {
		data["id"] = *filter.ID
		buf.WriteString(" AND id = :id")
	}

	if filter.ClientID != nil {
		data["client_id"] = *filter.ClientID
		buf.WriteString(" AND client_id = :client_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		buf.WriteString(" AND name LIKE :name")
	}

	if filter.Status != nil {
		data["status"] = *filter.Status
		buf.WriteString(" AND status = :status")
	}

	if filter.StartDueDate != nil {
		data["start_due_date"] = filter.StartDueDate.UTC()
		buf.WriteString(" AND due_date >= :start_due_date")
	}

	if filter.EndDueDate != nil {
		data["end_due_date"] = filter.EndDueDate.UTC()
		buf.WriteString(" AND due_date <= :end_due_date")
	}
}
