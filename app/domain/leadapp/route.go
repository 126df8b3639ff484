package leadapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	LeadBus      *leadbus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate
	read := mid.Authorize(cfg.Auth, auth.ObjIntake, auth.ActRead)
	manage := mid.Authorize(cfg.Auth, auth.ObjIntake, auth.ActManage)

	api := newApp(cfg.LeadBus)

	// The submission endpoint is public. The token is the only routing
	// information an anonymous caller ever has.
	app.HandlerFunc(http.MethodPost, version, "/intake/{token}/leads", api.submit)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/intake-links", api.queryLinks, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/workspaces/{workspace_id}/intake-links", api.createLink, authen, manage)
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}/intake-links/{link_id}", api.updateLink, authen, manage)
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}/intake-links/{link_id}", api.deleteLink, authen, manage)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/leads", api.queryLeads, authen, read)
	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/leads/{lead_id}", api.queryLeadByID, authen, read)
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}/leads/{lead_id}", api.updateLead, authen, manage)
}
