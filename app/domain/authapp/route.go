package authapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	ActiveKID string
	UserBus   *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Auth, cfg.ActiveKID, cfg.UserBus)

	app.HandlerFunc(http.MethodPost, version, "/auth/register", api.register)
	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodPost, version, "/portal/auth/login", api.portalLogin)
}
