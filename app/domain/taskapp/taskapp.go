// Package taskapp maintains the app layer api for the task domain.
package taskapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

type app struct {
	taskBus *taskbus.Core
}

func newApp(taskBus *taskbus.Core) *app {
	return &app{
		taskBus: taskBus,
	}
}

// create adds a new task to a project in the workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewTask
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

	nt, err := toBusNewTask(app, projectID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tsk, err := a.taskBus.Create(ctx, mid.GetPrincipal(ctx), workspaceID, nt)
	if err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: tsk[%+v]: %s", app, err)
	}

	return toAppTask(tsk)
}

// update modifies a task in the workspace.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateTask
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.NewFieldErrors("task_id", err)
	}

	ut, err := toBusUpdateTask(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tsk, err := a.taskBus.Update(ctx, mid.GetPrincipal(ctx), workspaceID, taskID, ut)
	if err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: taskID[%s]: %s", taskID, err)
	}

	return toAppTask(tsk)
}

// delete removes a task from the workspace.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.NewFieldErrors("task_id", err)
	}

	if err := a.taskBus.Delete(ctx, mid.GetPrincipal(ctx), workspaceID, taskID); err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: taskID[%s]: %s", taskID, err)
	}

	return nil
}

// queryByProject returns the tasks of a project.
func (a *app) queryByProject(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	projectID, err := uuid.Parse(web.Param(r, "project_id"))
	if err != nil {
		return errs.NewFieldErrors("project_id", err)
	}

	tsks, err := a.taskBus.QueryByProject(ctx, mid.GetPrincipal(ctx), workspaceID, projectID)
	if err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyproject: projectID[%s]: %s", projectID, err)
	}

	return toAppTasks(tsks)
}

// queryByID returns a task by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.NewFieldErrors("task_id", err)
	}

	tsk, err := a.taskBus.QueryByID(ctx, mid.GetPrincipal(ctx), workspaceID, taskID)
	if err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: taskID[%s]: %s", taskID, err)
	}

	return toAppTask(tsk)
}

// attach records a file attachment on a task.
func (a *app) attach(ctx context.Context, r *http.Request) web.Encoder {
	var app NewAttachment
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.NewFieldErrors("task_id", err)
	}

	att, err := a.taskBus.Attach(ctx, mid.GetPrincipal(ctx), workspaceID, toBusNewAttachment(app, taskID))
	if err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "attach: taskID[%s]: %s", taskID, err)
	}

	return toAppAttachment(att)
}

// detach removes an attachment from a task.
func (a *app) detach(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	attachmentID, err := uuid.Parse(web.Param(r, "attachment_id"))
	if err != nil {
		return errs.NewFieldErrors("attachment_id", err)
	}

	if err := a.taskBus.Detach(ctx, mid.GetPrincipal(ctx), workspaceID, attachmentID); err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "detach: attachmentID[%s]: %s", attachmentID, err)
	}

	return nil
}

// queryAttachments returns the attachments of a task.
func (a *app) queryAttachments(ctx context.Context, r *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.NewFieldErrors("task_id", err)
	}

	atts, err := a.taskBus.QueryAttachments(ctx, mid.GetPrincipal(ctx), workspaceID, taskID)
	if err != nil {
		if errors.Is(err, taskbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "queryattachments: taskID[%s]: %s", taskID, err)
	}

	return toAppAttachments(atts)
}
