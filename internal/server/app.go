// Package server runs the portfolio HTTP API: it builds the shared service
// stack, serves requests and shuts down gracefully on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/neoportfolio/internal/bootstrap"
	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/server/httpapi"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	logCloser io.Closer
	stack     *bootstrap.Stack
}

func NewApp(ctx context.Context, c *config.Config, env config.Env) (*App, error) {
	logger, closer, err := logging.New(logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		File:    c.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	stack, err := bootstrap.Build(ctx, c, env, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, logCloser: closer, stack: stack}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newHTTPServer() *httpapi.Server {
	return httpapi.NewServer(app.config.HTTPAddr, app.logger, httpapi.Services{
		Admin:   app.stack.Admin,
		Chat:    app.stack.Chat,
		Uploads: app.stack.Uploads,
		Content: app.stack.Content,
	}, app.stack.Metrics, app.config.SecretKey, app.config.TokenValidity)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.newHTTPServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives or the server fails, then releases the
// database and the log file.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	gin.SetMode(gin.ReleaseMode)

	app.logger.Info(ctx, "Starting app...",
		"storage", string(app.stack.Content.Kind(ctx)),
		"uploads", app.config.UploadsEnabled())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.stack.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	_ = app.logCloser.Close()
}
