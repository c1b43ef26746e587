package app

import (
	"context"

	"log/slog"

	"github.com/guckert-dev/shopify-mcp/config"
	"github.com/guckert-dev/shopify-mcp/internal/analytics"
	httpapi "github.com/guckert-dev/shopify-mcp/internal/api/http"
	"github.com/guckert-dev/shopify-mcp/internal/shopify"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting analytics service")

	client, err := shopify.New(&a.c.Shopify)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't create shopify client",
			slog.String("err", err.Error()))
		return err
	}

	svc := analytics.New(client, a.c.Shopify.StoreDomain, a.c.Benchmarks)

	a.hs = httpapi.New(&a.c.HTTP, svc)
	if err := a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.hs.Done()
		close(a.done)
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		a.hs.Stop(ctx)
	}
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
