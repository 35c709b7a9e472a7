package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/torchtask/taskhub/internal/auth"
	"github.com/torchtask/taskhub/internal/config"
	"github.com/torchtask/taskhub/internal/graph"
	"github.com/torchtask/taskhub/internal/graph/authctx"
	"github.com/torchtask/taskhub/internal/http/handlers"
	"github.com/torchtask/taskhub/internal/http/middlewares"
	"github.com/torchtask/taskhub/internal/observability"
	"github.com/torchtask/taskhub/internal/repo/postgres"
	"github.com/torchtask/taskhub/internal/service"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, prom *observability.Prom, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(otelgin.Middleware("taskhub"))

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

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// wire up repositories and services
	usersRepo := postgres.NewUsersRepo(pool, prom)
	tasksRepo := postgres.NewTasksRepo(pool, prom)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	tasksService := service.NewTaskService(tasksRepo)
	usersService := service.NewUserService(usersRepo, tasksRepo, tokens)

	builder := authctx.NewBuilder(tokens, usersService, tasksService)

	// single GraphQL endpoint; per-operation auth happens in resolvers
	gql := &relay.Handler{Schema: graph.NewSchema()}
	r.POST("/graphql", middlewares.GraphQLContext(builder), gin.WrapH(gql))

	return r
}
