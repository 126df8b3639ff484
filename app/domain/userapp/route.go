package userapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	UserBus      *userbus.Core
	Authenticate web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/me", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, version, "/me", api.update, authen)
	app.HandlerFunc(http.MethodDelete, version, "/me", api.delete, authen)
}
