package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PedroSilva44/sistema-de-login/internal/auth"
	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/db"
	httpx "github.com/PedroSilva44/sistema-de-login/internal/http"
	"github.com/PedroSilva44/sistema-de-login/internal/notifications"
	"github.com/PedroSilva44/sistema-de-login/internal/observability"
	"github.com/PedroSilva44/sistema-de-login/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.Env == "prod" && cfg.JWTSecret == "secret" {
		log.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	// tracing is opt-in
	if cfg.TracingOn {
		shutdownTracer, err := observability.InitTracer(context.Background(), "sistema-de-login", cfg.OTELEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	startupCtx, cancel := config.WithTimeout(10 * time.Second)

	err = db.EnsureSchema(startupCtx, pool)

	if err != nil {
		cancel()
		log.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	created, err := db.EnsureAdminUser(startupCtx, pool, cfg)
	cancel()

	if err != nil {
		log.Error("admin bootstrap failed", "err", err)
		os.Exit(1)
	}

	if created {
		log.Info("default admin created", "email", cfg.AdminEmail)
	}

	if cfg.DefaultAdminCredentials() {
		log.Warn("admin account uses default credentials; change ADMIN_EMAIL/ADMIN_PASSWORD before exposing this service")
	}

	// metrics
	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	usersRepo := postgres.NewUsersRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLDays)*24*time.Hour)

	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	router := httpx.NewRouter(httpx.RouterDeps{
		Log:      log,
		Cfg:      cfg,
		Users:    usersRepo,
		JWT:      jwtManager,
		Notifier: notifications.NewLogNotifier(log),
		Prom:     prom,
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Ping:     ping,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
