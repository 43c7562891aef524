package http

import (
	"log/slog"
	"net/http"

	"github.com/PedroSilva44/sistema-de-login/internal/auth"
	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/http/handlers"
	"github.com/PedroSilva44/sistema-de-login/internal/http/middlewares"
	"github.com/PedroSilva44/sistema-de-login/internal/notifications"
	"github.com/PedroSilva44/sistema-de-login/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // JSON bodies here are tiny

// UserStore is everything the HTTP layer needs from a credential store.
// The postgres repo satisfies it in production, the memory repo in tests.
type UserStore interface {
	handlers.UserReader
	handlers.UserWriter
	handlers.UserLister
	middlewares.UserFinder
}

type RouterDeps struct {
	Log      *slog.Logger
	Cfg      config.Config
	Users    UserStore
	JWT      *auth.Manager
	Notifier notifications.Notifier
	Prom     *observability.Prom
	Metrics  http.Handler // promhttp handler, optional
	Ping     func() error
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware; order matters, auth gates are mounted per group below
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	if d.Cfg.TracingOn {
		r.Use(otelgin.Middleware("sistema-de-login"))
	}

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health + metrics
	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	// wire up handlers
	authHandler := handlers.NewAuthHandler(d.Users, d.Users, d.JWT, d.Notifier, d.Prom, d.Log)
	dashboardHandler := handlers.NewDashboardHandler()
	adminHandler := handlers.NewAdminHandler(d.Users, d.Log)

	authGate := middlewares.NewAuthMiddleware(d.JWT, d.Users, d.Prom)

	api := r.Group("/api")

	api.POST("/cadastro", authHandler.Cadastro)
	api.POST("/login", authHandler.Login)

	protected := api.Group("/user", authGate.RequireAuth())
	protected.GET("/dashboard", dashboardHandler.Dashboard)

	admin := api.Group("/admin", authGate.RequireAuth(), authGate.RequireAdmin())
	admin.GET("/estatisticas", adminHandler.Estatisticas)

	return r
}
