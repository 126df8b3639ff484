package inviteapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	InviteBus    *invitebus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate
	read := mid.Authorize(cfg.Auth, auth.ObjRecords, auth.ActRead)
	write := mid.Authorize(cfg.Auth, auth.ObjRecords, auth.ActWrite)

	api := newApp(cfg.InviteBus)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/clients/{client_id}/invitations", api.query, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/workspaces/{workspace_id}/clients/{client_id}/invitations", api.create, authen, write)
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}/invitations/{invitation_id}", api.revoke, authen, write)
}
