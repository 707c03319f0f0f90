package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ETAnderson/storesync/internal/api/auth"
	"github.com/ETAnderson/storesync/internal/api/handlers"
	"github.com/ETAnderson/storesync/internal/api/middleware"
	"github.com/ETAnderson/storesync/internal/config"
	"github.com/ETAnderson/storesync/internal/logging"
	"github.com/ETAnderson/storesync/internal/migrate"
	"github.com/ETAnderson/storesync/internal/sites"
	"github.com/ETAnderson/storesync/internal/state"
	"github.com/ETAnderson/storesync/internal/storefront"
	"github.com/ETAnderson/storesync/internal/syncer"
)

func main() {
	cfg := config.Load()
	logger := logging.NewStdLogger("storesync-api ")

	logger.Printf("ENV=%q STATE_BACKEND=%q DB_DSN_set=%v",
		cfg.Env, cfg.StateBackend, cfg.MySQLDSN != "")

	table := sites.BuiltIn()
	if cfg.SitesFile != "" {
		loaded, err := sites.LoadFile(cfg.SitesFile)
		if err != nil {
			logger.Printf("sites file load failed: %v", err)
			os.Exit(1)
		}
		table = loaded
	}
	if cfg.DefaultSite != "" {
		table.DefaultKey = cfg.DefaultSite
	}
	if err := table.Validate(); err != nil {
		logger.Printf("site table invalid: %v", err)
		os.Exit(1)
	}

	factoryRes, err := state.NewStore(context.Background(), state.FactoryConfig{
		Backend:  cfg.StateBackend,
		MySQLDSN: cfg.MySQLDSN,
	})
	if err != nil {
		logger.Printf("state store init failed: %v", err)
		os.Exit(1)
	}
	store := factoryRes.Store

	if cfg.RunMigrations && factoryRes.DB != nil {
		n, err := migrate.ApplyDir(context.Background(), factoryRes.DB, "./migrations")
		if err != nil {
			logger.Printf("migrations failed: %v", err)
			os.Exit(1)
		}
		logger.Printf("migrations applied: %d", n)
	}

	client := storefront.NewHTTPClient(cfg.StorefrontBaseURL, cfg.StorefrontTimeout, cfg.StorefrontRatePerMin, logger)

	orch := syncer.NewOrchestrator(
		syncer.DefaultFilter(),
		syncer.NewMapper(cfg.DefaultCurrency),
		store,
		client,
		table,
		logger,
	)

	var pub *rsa.PublicKey
	if cfg.Env == "dev" {
		// Best effort in dev; auth middleware allows unauthenticated local calls.
		pub, _ = auth.LoadRSAPublicKeyFromEnv("JWT_PUBLIC_KEY_PEM")
	} else {
		pub, err = auth.LoadRSAPublicKeyFromEnv("JWT_PUBLIC_KEY_PEM")
		if err != nil {
			logger.Printf("jwt public key load failed: %v", err)
			os.Exit(1)
		}
	}

	hookHandler := handlers.ItemHookHandler{
		Orchestrator: orch,
		Logger:       logger,
	}

	guard := func(next http.Handler) http.Handler {
		return middleware.SiteMiddleware{
			Env:   cfg.Env,
			Table: table,
			Next: middleware.AuthMiddleware{
				Env:       cfg.Env,
				PublicKey: pub,
				Next: middleware.IdempotencyMiddleware{
					Store: store,
					Next:  next,
				},
			},
		}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Method(http.MethodPost, "/v1/hooks/items:created", guard(hookHandler))
	r.Method(http.MethodPost, "/v1/hooks/items:updated", guard(hookHandler))
	r.Method(http.MethodGet, "/v1/items/{code}/sync", handlers.SyncRecordHandler{Records: store})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("starting (env=%s) on %s", cfg.Env, server.Addr)

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Printf("server error: %v", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, server)
}

func waitForShutdown(logger interface{ Printf(string, ...any) }, server *http.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Printf("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(ctx)
	logger.Printf("shutdown complete")
}
