package teamapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	MemberBus    *memberbus.Core
	UserBus      *userbus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate

	api := newApp(cfg.MemberBus, cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/members", api.query, authen, mid.Authorize(cfg.Auth, auth.ObjTeam, auth.ActRead))
	app.HandlerFunc(http.MethodPost, version, "/workspaces/{workspace_id}/members", api.add, authen, mid.Authorize(cfg.Auth, auth.ObjTeam, auth.ActManage))
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}/members/{member_id}", api.changeRole, authen, mid.Authorize(cfg.Auth, auth.ObjTeam, auth.ActManage))
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}/members/{member_id}", api.remove, authen, mid.Authorize(cfg.Auth, auth.ObjTeam, auth.ActManage))
}
