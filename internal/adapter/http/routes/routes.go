package routes

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	_ "repairdesk/docs"
	"repairdesk/internal/adapter/http/handlers"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/infrastructure/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Jobs   *handlers.JobHandler
	Users  *handlers.UserHandler
	Events *handlers.EventsHandler
}

type Options struct {
	JWTSecret []byte
	Metrics   *observability.Metrics
}

// NewRouter builds the gin engine. /health, /metrics and /swagger are public;
// everything under /v1 requires a bearer token.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, opts.Metrics)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	v1.Use(middleware.JWTAuth(opts.JWTSecret))
	addJobRoutes(v1, h.Jobs, h.Events)
	addUserRoutes(v1, h.Users)

	return router
}

func setMiddlewares(router *gin.Engine, metrics *observability.Metrics) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "recovered from panic", "panic", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

// Run serves router on addr until ctx is cancelled, then drains in-flight
// requests. Write timeouts are left unset so event streams stay open.
func Run(ctx context.Context, addr, serviceName string, router http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		// Request contexts end with ctx so open event streams let Shutdown finish.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
