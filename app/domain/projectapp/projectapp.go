// Package projectapp maintains the app layer api for the project domain.
package projectapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/query"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/order"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/page"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	projectBus *projectbus.Core
}

func newApp(projectBus *projectbus.Core) *app {
	return &app{
		projectBus: projectBus,
	}
}

// create adds a new project to the workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewProject
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	np, err := toBusNewProject(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	prj, err := a.projectBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, np)
	if err != nil {
		if errors.Is(err, projectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: prj[%+v]: %s", app, err)
	}

	return toAppProject(prj)
}

// update modifies a project in the workspace.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateProject
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	projectID, err := uuid.Parse(web.Param(r, "project_id"))
	if err != nil {
		return errs.NewFieldErrors("project_id", err)
	}

	up, err := toBusUpdateProject(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	prj, err := a.projectBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, projectID, up)
	if err != nil {
		if errors.Is(err, projectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: projectID[%s]: %s", projectID, err)
	}

	return toAppProject(prj)
}

// delete removes a project from the workspace.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	projectID, err := uuid.Parse(web.Param(r, "project_id"))
	if err != nil {
		return errs.NewFieldErrors("project_id", err)
	}

	if err := a.projectBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, projectID); err != nil {
		if errors.Is(err, projectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: projectID[%s]: %s", projectID, err)
	}

	return nil
}

// query returns the projects of the workspace with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, projectbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	p := mid.GetPrincipal(ctx)

	prjs, err := a.projectBus.Query(ctx, p, workspaceID, filter, orderBy, pg)
	if err != nil {
		if errors.Is(err, projectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.projectBus.Count(ctx, p, workspaceID, filter)
	if err != nil {
		if errors.Is(err, projectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppProjects(prjs), total, pg)
}

// queryByID returns a project by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	projectID, err := uuid.Parse(web.Param(r, "project_id"))
	if err != nil {
		return errs.NewFieldErrors("project_id", err)
	}

	prj, err := a.projectBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, projectID)
	if err != nil {
		if errors.Is(err, projectbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: projectID[%s]: %s", projectID, err)
	}

	return toAppProject(prj)
}
