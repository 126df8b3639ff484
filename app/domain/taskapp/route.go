package taskapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	TaskBus      *taskbus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate
	read := mid.Authorize(cfg.Auth, auth.ObjRecords, auth.ActRead)
	write := mid.Authorize(cfg.Auth, auth.ObjRecords, auth.ActWrite)

	api := newApp(cfg.TaskBus)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/projects/{project_id}/tasks", api.queryByProject, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/workspaces/{workspace_id}/projects/{project_id}/tasks", api.create, authen, write)
	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/tasks/{task_id}", api.queryByID, authen, read)
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}/tasks/{task_id}", api.update, authen, write)
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}/tasks/{task_id}", api.delete, authen, write)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/tasks/{task_id}/attachments", api.queryAttachments, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/workspaces/{workspace_id}/tasks/{task_id}/attachments", api.attach, authen, write)
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}/attachments/{attachment_id}", api.detach, authen, write)
}
