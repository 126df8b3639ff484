package main

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/api/cmd/build/all"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/mux"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/keystore"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

var build = "develop"

type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3000"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3010"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"*"`
	}
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
	License struct {
		AdminToken string `envconfig:"LICENSE_ADMIN_TOKEN" default:""`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST" default:"tempo:4317"`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"PROJOFLOW"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
		Enabled     bool    `envconfig:"TEMPO_ENABLED" default:"true"`
	}
}

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "PROJOFLOW", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "PROJOFLOW"

	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	log.Info(ctx, "startup", "version", cfg.Version)
	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	// -------------------------------------------------------------------------
	// App Starting

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

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

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ks := keystore.New()

	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        cfg.Tempo.Host,
		ExcludedRoutes: map[string]struct{}{
			"/v1/liveness":  {},
			"/v1/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Start Debug Service

	go func() {
		log.Info(ctx, "startup", "status", "debug router started", "host", cfg.Web.DebugHost)

		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux()); err != nil {
			log.Error(ctx, "shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "err", err)
		}
	}()

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:  cfg.Version.Build,
		Log:    log,
		DB:     db,
		Tracer: tracer,
		AuthConfig: mux.AuthConfig{
			KeyLookup: ks,
			Issuer:    cfg.Auth.Issuer,
			ActiveKID: cfg.Auth.ActiveKID,
		},
		LicenseConfig: mux.LicenseConfig{
			AdminToken: cfg.License.AdminToken,
		},
	}

	webAPI := mux.WebAPI(cfgMux,
		all.Routes(),
		mux.WithCORS(cfg.Web.CORSAllowedOrigins),
	)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func debugMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	cfg.License.AdminToken = "[MASKED]"

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
