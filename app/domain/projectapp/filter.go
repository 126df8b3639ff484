package projectapp

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
)

type queryParams struct {
	Page         string
	Rows         string
	OrderBy      string
	ID           string
	ClientID     string
	Name         string
	Status       string
	StartDueDate string
	EndDueDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:         values.Get("page"),
		Rows:         values.Get("rows"),
		OrderBy:      values.Get("orderBy"),
		ID:           values.Get("project_id"),
		ClientID:     values.Get("client_id"),
		Name:         values.Get("name"),
		Status:       values.Get("status"),
		StartDueDate: values.Get("start_due_date"),
		EndDueDate:   values.Get("end_due_date"),
	}
}

func parseFilter(qp queryParams) (projectbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter projectbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("project_id", err)
		}
	}

	if qp.ClientID != "" {
		id, err := uuid.Parse(qp.ClientID)
		switch err {
		case nil:
			filter.ClientID = &id
		default:
			fieldErrors.Add("client_id", err)
		}
	}

	if qp.Name != "" {
		nme, err := name.Parse(qp.Name)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if qp.Status != "" {
		status := qp.Status
		filter.Status = &status
	}

	if qp.StartDueDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartDueDate)
		switch err {
		case nil:
			filter.StartDueDate = &t
		default:
			fieldErrors.Add("start_due_date", err)
		}
	}

	if qp.EndDueDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndDueDate)
		switch err {
		case nil:
			filter.EndDueDate = &t
		default:
			fieldErrors.Add("end_due_date", err)
		}
	}

	if fieldErrors != nil {
		return projectbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
