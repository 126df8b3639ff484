package invoiceapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log          *logger.Logger
	DB           *sqlx.DB
	Auth         *auth.Auth
	InvoiceBus   *invoicebus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate
	read := mid.Authorize(cfg.Auth, auth.ObjRecords, auth.ActRead)
	billing := mid.Authorize(cfg.Auth, auth.ObjBilling, auth.ActManage)
	tran := mid.BeginCommitRollback(cfg.Log, sqldb.NewBeginner(cfg.DB))

	api := newApp(cfg.InvoiceBus)

	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/invoices", api.query, authen, read)
	app.HandlerFunc(http.MethodPost, version, "/workspaces/{workspace_id}/invoices", api.create, authen, billing, tran)
	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}/invoices/{invoice_id}", api.queryByID, authen, read)
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}/invoices/{invoice_id}", api.update, authen, billing)
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}/invoices/{invoice_id}", api.delete, authen, billing)
}
