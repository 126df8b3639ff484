package portalapp

import (
	"net/http"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	InviteBus     *invitebus.Core
	CredentialBus *credentialbus.Core
	Authenticate  web.MidFunc
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := cfg.Authenticate
	portal := mid.AuthorizePortal()

	api := newApp(cfg.InviteBus, cfg.CredentialBus)

	app.HandlerFuncNoMid(http.MethodGet, version, "/portal/invitations/{token}", api.resolve)
	app.HandlerFunc(http.MethodPost, version, "/portal/invitations/{token}/accept", api.accept, authen, portal)
	app.HandlerFunc(http.MethodGet, version, "/portal/clients", api.queryClients, authen, portal)
	app.HandlerFunc(http.MethodGet, version, "/portal/clients/{client_id}/credentials", api.queryCredentials, authen, portal)
}
