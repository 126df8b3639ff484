// Admin is the operator command line tool for the service. It runs the
// database migrations, seeds development data, creates accounts and mints
// licenses outside the payment flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus/stores/licensedb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus/stores/memberdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus/stores/usercache"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/userbus/stores/userdb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/migrate"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/name"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/password"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/keystore"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

type Config struct {
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"zarf/keys"`
		ActiveKID  string `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string `envconfig:"AUTH_ISSUER" default:"projoflow"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"projoflow"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, seed, create-user, add-member, gen-license, gen-token")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		if err := migrate.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Println("migrations complete")
		return nil

	case "seed":
		if err := migrate.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Println("seed complete")
		return nil

	case "create-user":
		userBus := userbus.NewCore(usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
		return runCreateUser(ctx, userBus, os.Args[2:])

	case "add-member":
		memberBus := memberbus.NewCore(memberdb.NewStore(log, db))
		return runAddMember(ctx, memberBus, os.Args[2:])

	case "gen-license":
		licenseBus := licensebus.NewCore(licensedb.NewStore(log, db))
		return runGenLicense(ctx, licenseBus, os.Args[2:])

	case "gen-token":
		return runGenToken(log, cfg, os.Args[2:])

	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	nu := userbus.NewUser{
		Name:     n,
		Email:    *addr,
		Password: p,
	}

	usr, err := ub.Create(ctx, nu)
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\n", usr.ID, usr.Email.Address)
	return nil
}

func runAddMember(ctx context.Context, mb *memberbus.Core, args []string) error {
	cmd := flag.NewFlagSet("add-member", flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	wsIDStr := cmd.String("workspace-id", "", "Workspace UUID (Required)")
	roleStr := cmd.String("role", "MEMBER", "Membership role (OWNER, ADMIN, MEMBER)")
	cmd.Parse(args)

	if *userIDStr == "" || *wsIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required IDs")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	wsID, err := uuid.Parse(*wsIDStr)
	if err != nil {
		return fmt.Errorf("invalid workspace uuid: %w", err)
	}

	rl, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	// The owner slot is created directly since a workspace bootstrapped
	// from the CLI has no owner to act on its behalf yet. Every other role
	// goes through the ordinary membership policy with owner authority.
	var mbr memberbus.Member
	if rl == role.Owner {
		mbr, err = mb.CreateOwner(ctx, wsID, userID)
	} else {
		operator := tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{wsID: role.Owner})
		mbr, err = mb.Add(ctx, operator, wsID, userID, rl)
	}
	if err != nil {
		return fmt.Errorf("add member failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User %s added to Workspace %s as %s\n", mbr.UserID, mbr.WorkspaceID, mbr.Role)
	return nil
}

func runGenToken(log *logger.Logger, cfg Config, args []string) error {
	cmd := flag.NewFlagSet("gen-token", flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	kindStr := cmd.String("kind", auth.KindUser, "Token kind (user, portal)")
	cmd.Parse(args)

	if *userIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required IDs")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	if *kindStr != auth.KindUser && *kindStr != auth.KindPortal {
		return fmt.Errorf("invalid kind: %s", *kindStr)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	ath, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	token, err := ath.GenerateToken(cfg.Auth.ActiveKID, userID, *kindStr)
	if err != nil {
		return fmt.Errorf("generate token failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Token issued!\n%s\n", token)
	return nil
}

func runGenLicense(ctx context.Context, lb *licensebus.Core, args []string) error {
	cmd := flag.NewFlagSet("gen-license", flag.ExitOnError)
	emailStr := cmd.String("email", "", "Purchaser email (Required)")
	expiresStr := cmd.String("expires", "", "Expiry as RFC3339, empty for perpetual")
	cmd.Parse(args)

	if *emailStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	var expiresAt *time.Time
	if *expiresStr != "" {
		t, err := time.Parse(time.RFC3339, *expiresStr)
		if err != nil {
			return fmt.Errorf("invalid expiry: %w", err)
		}
		expiresAt = &t
	}

	lic, err := lb.Generate(ctx, *emailStr, expiresAt)
	if err != nil {
		return fmt.Errorf("generate license failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: License issued!\nKey: %s\nEmail: %s\n", lic.Key, lic.Email)
	return nil
}
