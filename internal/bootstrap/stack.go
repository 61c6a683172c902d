// Package bootstrap assembles the storage, session and service graph shared
// by the HTTP server and the admin console.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/content"
	"github.com/dmitrijs2005/neoportfolio/internal/dataapi"
	"github.com/dmitrijs2005/neoportfolio/internal/filex"
	"github.com/dmitrijs2005/neoportfolio/internal/gemini"
	"github.com/dmitrijs2005/neoportfolio/internal/kv"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/metrics"
	"github.com/dmitrijs2005/neoportfolio/internal/services"
	"github.com/dmitrijs2005/neoportfolio/internal/session"
	"github.com/dmitrijs2005/neoportfolio/internal/sysconfig"
)

const metricsNamespace = "neoportfolio"

type Stack struct {
	Local    *kv.Store
	Session  *session.Holder
	Resolver *sysconfig.Resolver
	Metrics  *metrics.Collector
	Content  *content.Store

	Admin   *services.AdminService
	Chat    *services.ChatService
	Uploads *services.UploadService
}

// Build opens the local database at cfg.DatabasePath and wires everything
// on top of it. The caller owns the returned stack and must Close it.
func Build(ctx context.Context, cfg *config.Config, env config.Env, logger logging.Logger) (*Stack, error) {
	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	local, err := kv.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := metrics.NewCollector(metricsNamespace)
	holder := session.NewHolder()
	resolver := sysconfig.NewResolver(env, local, holder, logger)

	remote := dataapi.NewHTTPClient(
		dataapi.WithHTTPClient(&http.Client{}),
		dataapi.WithTimeout(cfg.RemoteTimeout),
		dataapi.WithMetrics(m),
		dataapi.WithLogger(logger),
	)
	store := content.NewStore(resolver, local, remote, m, logger)
	gen := gemini.NewClient(&http.Client{}, cfg.GeminiEndpoint, cfg.GeminiModel)

	return &Stack{
		Local:    local,
		Session:  holder,
		Resolver: resolver,
		Metrics:  m,
		Content:  store,
		Admin:    services.NewAdminService(resolver, holder, store, logger),
		Chat:     services.NewChatService(resolver, store, gen, logger),
		Uploads:  services.NewUploadService(cfg),
	}, nil
}

func (s *Stack) Close() error {
	s.Session.Clear()
	return s.Local.Close()
}
