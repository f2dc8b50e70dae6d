package app

import (
	"context"

	"log/slog"

	"github.com/evlampy/storeboard/config"
	httpapi "github.com/evlampy/storeboard/internal/api/http"
	"github.com/evlampy/storeboard/internal/apisrv/auth"
	"github.com/evlampy/storeboard/internal/apisrv/dashboard"
	"github.com/evlampy/storeboard/internal/cache"
	"github.com/evlampy/storeboard/internal/dependency"
	"github.com/evlampy/storeboard/internal/mailstats"
	"github.com/evlampy/storeboard/internal/source"
	"github.com/evlampy/storeboard/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
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
	var err error
	slog.Default().InfoContext(ctx, "starting storeboard")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	src := source.New(&a.c.Source, cache.NewTTL())

	var campaigns dependency.CampaignSource
	if a.c.Mail.APIKey != "" {
		campaigns, err = mailstats.New(&a.c.Mail)
		if err != nil {
			slog.Default().ErrorContext(ctx, "failed to create mailstats client",
				slog.String("err", err.Error()),
			)
			return err
		}
	}

	svc := dashboard.New(a.db, src, campaigns)

	authSrv, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, svc, authSrv); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		_ = a.hs.Stop(ctx)
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
