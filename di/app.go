package di

import (
	"context"
	"errors"
	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/transport/http"
	"turfbook/transport/scheduler"
)

// App bundles the HTTP server with the background jobs and the resources that
// must be released on exit.
type App struct {
	HTTP      *http.HTTP
	Scheduler *scheduler.Scheduler
	Otel      otel.Otel
	DB        *postgres.Connection
}

// Close stops the scheduler, flushes traces and closes the database pools.
func (a *App) Close(ctx context.Context) error {
	a.Scheduler.Stop(ctx)

	return errors.Join(a.Otel.Shutdown(ctx), a.DB.Close())
}
