package workspaceapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log          *logger.Logger
	DB           *sqlx.DB
	Auth         *auth.Auth
	WorkspaceBus *workspacebus.Core
	MemberBus    *memberbus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate
	tran := mid.BeginCommitRollback(cfg.Log, sqldb.NewBeginner(cfg.DB))

	api := newApp(cfg.WorkspaceBus, cfg.MemberBus)

	app.HandlerFunc(http.MethodPost, version, "/workspaces", api.create, authen, tran)
	app.HandlerFunc(http.MethodGet, version, "/workspaces", api.query, authen)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, auth.ObjRecords, auth.ActRead))
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}", api.update, authen, mid.Authorize(cfg.Auth, auth.ObjWorkspace, auth.ActManage))

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/settings", api.querySettings, authen, mid.Authorize(cfg.Auth, auth.ObjSettings, auth.ActRead))
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}/settings", api.updateSettings, authen, mid.Authorize(cfg.Auth, auth.ObjSettings, auth.ActWrite))

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/subscription", api.querySubscription, authen, mid.Authorize(cfg.Auth, auth.ObjBilling, auth.ActManage))
}
