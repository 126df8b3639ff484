package licenseapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	LicenseBus *licensebus.Core
	AdminToken string
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.LicenseBus, cfg.AdminToken)

	app.HandlerFuncNoMid(http.MethodPost, version, "/webhooks/{provider}", api.webhook)
	app.HandlerFuncNoMid(http.MethodPost, version, "/licenses/validate", api.validate)
	app.HandlerFuncNoMid(http.MethodPost, version, "/licenses/generate", api.generate)
	app.HandlerFuncNoMid(http.MethodGet, version, "/licenses", api.query)
	app.HandlerFuncNoMid(http.MethodPost, version, "/licenses/revoke", api.revoke)
}
