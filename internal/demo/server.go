package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/toyz/viewcheck/pkg/views"
	"github.com/toyz/viewcheck/pkg/views/adapters"
)

// Module wires the demo server into an fx application. It expects a
// *slog.Logger to be provided.
var Module = fx.Module("demo",
	fx.Provide(LoadConfig, NewRouter),
	fx.Invoke(Mount, Serve),
)

// NewRouter builds the router named by cfg.Adapter with Prometheus metrics
// served on /metrics
func NewRouter(cfg *Config) (views.Router, error) {
	metrics := promhttp.Handler()

	switch cfg.Adapter {
	case "echo":
		a := adapters.NewDefaultEchoAdapter()
		a.GetEngine().GET("/metrics", echo.WrapHandler(metrics))
		return a, nil
	case "gin":
		a := adapters.NewDefaultGinAdapter()
		a.GetEngine().GET("/metrics", gin.WrapH(metrics))
		return a, nil
	case "fiber":
		a := adapters.NewDefaultFiberAdapter()
		a.GetApp().Get("/metrics", adaptor.HTTPHandler(metrics))
		return a, nil
	default:
		return nil, fmt.Errorf("unknown adapter %q, want echo, gin or fiber", cfg.Adapter)
	}
}

// Mount installs request middleware and every registered view on router.
// Middleware goes first since gin and fiber only apply it to later routes.
func Mount(router views.Router) error {
	if err := RegisterEndpoints(views.Default); err != nil {
		return err
	}

	router.Use(views.RequestID())
	router.Use(views.Logging(nil))
	return views.Default.Mount(router)
}

// Serve starts and stops router with the application lifecycle
func Serve(lc fx.Lifecycle, cfg *Config, router views.Router, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("starting server", "adapter", router.Name(), "addr", cfg.Addr())
				if err := router.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping server", "adapter", router.Name())
			return router.Stop(ctx)
		},
	})
}
