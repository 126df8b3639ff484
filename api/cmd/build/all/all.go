// Package all binds every route of the service into a single instance.
package all

import (
	"context"
	"time"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/authapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/checkapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/clientapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/credentialapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/documentapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/inviteapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/invoiceapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/leadapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/licenseapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/noteapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/portalapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/projectapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/taskapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/teamapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/timeapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/userapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/domain/workspaceapp"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mux"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/clientbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/clientbus/stores/clientdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/credentialbus/stores/credentialdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/documentbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/documentbus/stores/documentdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invitebus/stores/invitedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus/stores/invoicedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus/stores/intakecache"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus/stores/leaddb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus/stores/licensedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus/stores/membercache"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus/stores/memberdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/notebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/notebus/stores/notedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/projectbus/stores/projectdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus/stores/taskdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/timebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/timebus/stores/timedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus/stores/usercache"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus/stores/userdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/workspacebus/stores/workspacedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/notify"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	notifier := notify.NewLogNotifier(cfg.Log)

	userBus := userbus.NewCore(usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), time.Minute*5))
	workspaceBus := workspacebus.NewCore(workspacedb.NewStore(cfg.Log, cfg.DB))
	memberBus := memberbus.NewCore(membercache.NewStore(cfg.Log, memberdb.NewStore(cfg.Log, cfg.DB), time.Minute))
	clientBus := clientbus.NewCore(clientdb.NewStore(cfg.Log, cfg.DB))
	projectBus := projectbus.NewCore(projectdb.NewStore(cfg.Log, cfg.DB))
	taskBus := taskbus.NewCore(taskdb.NewStore(cfg.Log, cfg.DB))
	noteBus := notebus.NewCore(notedb.NewStore(cfg.Log, cfg.DB))
	timeBus := timebus.NewCore(timedb.NewStore(cfg.Log, cfg.DB))
	leadBus := leadbus.NewCore(intakecache.NewStore(cfg.Log, leaddb.NewStore(cfg.Log, cfg.DB), time.Minute))
	inviteBus := invitebus.NewCore(invitedb.NewStore(cfg.Log, cfg.DB), notifier)
	credentialBus := credentialbus.NewCore(credentialdb.NewStore(cfg.Log, cfg.DB))
	invoiceBus := invoicebus.NewCore(invoicedb.NewStore(cfg.Log, cfg.DB))
	licenseBus := licensebus.NewCore(licensedb.NewStore(cfg.Log, cfg.DB))
	documentBus := documentbus.NewCore(documentdb.NewStore(cfg.Log, cfg.DB))

	authClient, err := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
	})
	if err != nil {
		// The role policy is embedded, so a failure here is a build
		// defect and there is nothing sensible to bind.
		cfg.Log.Error(context.Background(), "constructing auth", "ERROR", err)
		return
	}

	authen := mid.Authenticate(authClient, userBus, memberBus, inviteBus)

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		ActiveKID: cfg.AuthConfig.ActiveKID,
		UserBus:   userBus,
	})

	userapp.Routes(app, userapp.Config{
		UserBus:      userBus,
		Authenticate: authen,
	})

	workspaceapp.Routes(app, workspaceapp.Config{
		Log:          cfg.Log,
		DB:           cfg.DB,
		Auth:         authClient,
		WorkspaceBus: workspaceBus,
		MemberBus:    memberBus,
		Authenticate: authen,
	})

	teamapp.Routes(app, teamapp.Config{
		Auth:         authClient,
		MemberBus:    memberBus,
		UserBus:      userBus,
		Authenticate: authen,
	})

	clientapp.Routes(app, clientapp.Config{
		Auth:         authClient,
		ClientBus:    clientBus,
		Authenticate: authen,
	})

	projectapp.Routes(app, projectapp.Config{
		Auth:         authClient,
		ProjectBus:   projectBus,
		Authenticate: authen,
	})

	taskapp.Routes(app, taskapp.Config{
		Auth:         authClient,
		TaskBus:      taskBus,
		Authenticate: authen,
	})

	noteapp.Routes(app, noteapp.Config{
		Auth:         authClient,
		NoteBus:      noteBus,
		Authenticate: authen,
	})

	timeapp.Routes(app, timeapp.Config{
		Auth:         authClient,
		TimeBus:      timeBus,
		Authenticate: authen,
	})

	documentapp.Routes(app, documentapp.Config{
		Auth:         authClient,
		DocumentBus:  documentBus,
		Authenticate: authen,
	})

	leadapp.Routes(app, leadapp.Config{
		Auth:         authClient,
		LeadBus:      leadBus,
		Authenticate: authen,
	})

	inviteapp.Routes(app, inviteapp.Config{
		Auth:         authClient,
		InviteBus:    inviteBus,
		Authenticate: authen,
	})

	portalapp.Routes(app, portalapp.Config{
		InviteBus:     inviteBus,
		CredentialBus: credentialBus,
		Authenticate:  authen,
	})

	credentialapp.Routes(app, credentialapp.Config{
		Auth:          authClient,
		CredentialBus: credentialBus,
		Authenticate:  authen,
	})

	invoiceapp.Routes(app, invoiceapp.Config{
		Log:          cfg.Log,
		DB:           cfg.DB,
		Auth:         authClient,
		InvoiceBus:   invoiceBus,
		Authenticate: authen,
	})

	licenseapp.Routes(app, licenseapp.Config{
		LicenseBus: licenseBus,
		AdminToken: cfg.LicenseConfig.AdminToken,
	})
}
