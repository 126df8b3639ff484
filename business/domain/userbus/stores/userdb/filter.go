package userdb

import (
	"bytes"
	"strings"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
)

func applyFilter(filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["id"] = *filter.ID
		wc = append(wc, "id = :id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name LIKE :name")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "email = :email")
	}

	if filter.StartCreatedAt != nil {
		data["start_date_created"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "date_created >= :start_date_created")
	}

	if filter.EndCreatedAt != nil {
		data["end_date_created"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "date_created <= :end_date_created")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
