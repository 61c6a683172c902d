// Package content is the uniform CRUD facade over projects and posts.
//
// The backend is chosen again on every call: remote (the Data API) when the
// resolver reports complete storage credentials, the local key/value store
// otherwise. Nothing is migrated when the choice changes.
package content

import (
	"context"

	"github.com/dmitrijs2005/neoportfolio/internal/common"
	"github.com/dmitrijs2005/neoportfolio/internal/dataapi"
	"github.com/dmitrijs2005/neoportfolio/internal/kv"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/metrics"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
)

type BackendKind string

const (
	BackendLocal  BackendKind = "local"
	BackendRemote BackendKind = "remote"
)

// Backend is the outcome of one resolution. Remote is only meaningful for
// BackendRemote.
type Backend struct {
	Kind   BackendKind
	Remote models.SystemConfig
}

// Resolver reports the active storage credentials.
type Resolver interface {
	Storage(ctx context.Context) (models.SystemConfig, bool)
}

// LocalStore is the part of kv.Store the local backend needs.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Update(ctx context.Context, key string, fn kv.UpdateFunc) error
}

type Store struct {
	resolver Resolver
	local    LocalStore
	remote   dataapi.Client
	metrics  *metrics.Collector
	log      logging.Logger

	projects *Collection[models.Project]
	posts    *Collection[models.BlogPost]
}

func NewStore(resolver Resolver, local LocalStore, remote dataapi.Client, m *metrics.Collector, log logging.Logger) *Store {
	s := &Store{
		resolver: resolver,
		local:    local,
		remote:   remote,
		metrics:  m,
		log:      log.With("component", "content"),
	}

	s.projects = &Collection[models.Project]{
		store:    s,
		name:     common.ProjectsCollection,
		localKey: common.ProjectsKey,
		sortDir:  1,
		seed:     SeedProjects,
	}
	s.posts = &Collection[models.BlogPost]{
		store:    s,
		name:     common.PostsCollection,
		localKey: common.PostsKey,
		sortDir:  -1,
		seed:     SeedPosts,
	}
	return s
}

func (s *Store) Projects() *Collection[models.Project] { return s.projects }

func (s *Store) Posts() *Collection[models.BlogPost] { return s.posts }

// Backend resolves the backend for one operation.
func (s *Store) Backend(ctx context.Context) Backend {
	cfg, ok := s.resolver.Storage(ctx)
	if !ok {
		return Backend{Kind: BackendLocal}
	}
	return Backend{Kind: BackendRemote, Remote: cfg}
}

// Kind is the backend the next operation would use.
func (s *Store) Kind(ctx context.Context) BackendKind {
	return s.Backend(ctx).Kind
}
