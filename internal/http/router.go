package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAUL-ALVES/useradmin/internal/config"
	"github.com/SAUL-ALVES/useradmin/internal/http/flash"
	"github.com/SAUL-ALVES/useradmin/internal/http/handlers"
	"github.com/SAUL-ALVES/useradmin/internal/http/middlewares"
	"github.com/SAUL-ALVES/useradmin/internal/observability"
	"github.com/SAUL-ALVES/useradmin/web"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires middleware, templates and the user pages. store is the
// users repository the handlers talk to; prom may be nil in tests.
func NewRouter(cfg config.Config, log *slog.Logger, store handlers.UsersStore, pool *pgxpool.Pool, prom *observability.Prom, hash handlers.Hasher) (*gin.Engine, error) {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	tmpl, err := web.Templates()

	if err != nil {
		return nil, err
	}

	r.SetHTMLTemplate(tmpl)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(64 << 10))
	r.Use(otelgin.Middleware("useradmin"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if prom != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})))
	}

	// user pages

	fl := flash.NewStore(cfg.SessionSecret, cfg.Env == "prod")
	users := handlers.NewUsersHandler(store, fl, hash, log)

	// the mutating form posts get a per-IP limit
	limiter := middlewares.NewRateLimiter(30, time.Minute)
	limited := limiter.Middleware()

	r.GET("/", users.Index)
	r.GET("/users/new", users.NewForm)
	r.POST("/users/form", limited, users.CreateFromForm)
	r.GET("/users/page", users.ListPage)
	r.GET("/users/:id/edit", users.EditForm)
	r.POST("/users/:id/edit", limited, users.UpdateFromForm)
	r.GET("/users/:id/confirm_delete", users.ConfirmDelete)
	r.POST("/users/:id/delete", limited, users.DeleteFromForm)

	return r, nil
}
