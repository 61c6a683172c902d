package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/neoportfolio/internal/common"
	"github.com/dmitrijs2005/neoportfolio/internal/content"
	"github.com/dmitrijs2005/neoportfolio/internal/cryptox"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
	"github.com/dmitrijs2005/neoportfolio/internal/session"
)

// ConfigResolver is what the services need from sysconfig.Resolver.
type ConfigResolver interface {
	LoadPersisted(ctx context.Context) (*models.SystemConfig, error)
	LoadPersistedWith(ctx context.Context, key string) (*models.SystemConfig, error)
	Save(ctx context.Context, cfg models.SystemConfig) error
	Clear(ctx context.Context) error
	AdminPassword() string
	AIKey(ctx context.Context) string
}

// ContentStore is what the services need from content.Store.
type ContentStore interface {
	Projects() *content.Collection[models.Project]
	Posts() *content.Collection[models.BlogPost]
	Kind(ctx context.Context) content.BackendKind
}

// Status is the public view of the current mode.
type Status struct {
	Storage   content.BackendKind `json:"storage"`
	AIEnabled bool                `json:"aiEnabled"`
	LoggedIn  bool                `json:"loggedIn"`
}

type AdminService struct {
	resolver ConfigResolver
	session  *session.Holder
	store    ContentStore
	validate *validator.Validate
	now      func() time.Time
	log      logging.Logger
}

func NewAdminService(resolver ConfigResolver, holder *session.Holder, store ContentStore, log logging.Logger) *AdminService {
	return &AdminService{
		resolver: resolver,
		session:  holder,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		log:      log.With("component", "admin"),
	}
}

// Login opens an admin session. When ADMIN_PASSWORD is configured the
// password must match it. If an encrypted config is persisted it must
// decrypt with the password. Only then does the password become the session
// key; a rejected attempt leaves the current session as it was. With no
// admin password and no encrypted config any non-empty password is accepted.
func (s *AdminService) Login(ctx context.Context, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	if admin := s.resolver.AdminPassword(); admin != "" && !cryptox.CheckPassword(password, admin) {
		s.log.Warn(ctx, "login rejected", "reason", "admin password mismatch")
		return ErrAccessDenied
	}

	_, err := s.resolver.LoadPersistedWith(ctx, password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrDecryptionFailed):
		s.log.Warn(ctx, "login rejected", "reason", "config does not decrypt")
		return ErrAccessDenied
	case errors.Is(err, common.ErrCorruptRecord):
		s.log.Warn(ctx, "persisted config is corrupt; save a new one", "error", err)
	default:
		return fmt.Errorf("login: %w", err)
	}

	s.session.SetKey(password)
	s.log.Info(ctx, "admin logged in")
	return nil
}

func (s *AdminService) Logout(ctx context.Context) {
	s.session.Clear()
	s.log.Info(ctx, "admin logged out")
}

func (s *AdminService) LoggedIn() bool {
	return s.session.Active()
}

// SessionID identifies the current admin session; empty when logged out.
func (s *AdminService) SessionID() string {
	return s.session.ID()
}

// Config returns the persisted config (nil when none is saved).
func (s *AdminService) Config(ctx context.Context) (*models.SystemConfig, error) {
	if !s.session.Active() {
		return nil, ErrNotLoggedIn
	}
	return s.resolver.LoadPersisted(ctx)
}

// SaveConfig overwrites the persisted config, encrypted with the session key.
func (s *AdminService) SaveConfig(ctx context.Context, cfg models.SystemConfig) error {
	if !s.session.Active() {
		return ErrNotLoggedIn
	}
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Cluster = strings.TrimSpace(cfg.Cluster)
	cfg.Database = strings.TrimSpace(cfg.Database)
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)

	if err := s.resolver.Save(ctx, cfg); err != nil {
		return err
	}
	s.log.Info(ctx, "system config saved", "remote", cfg.Configured())
	return nil
}

// Disconnect removes the persisted config, returning storage to local
// unless the environment configures a remote.
func (s *AdminService) Disconnect(ctx context.Context) error {
	if !s.session.Active() {
		return ErrNotLoggedIn
	}
	if err := s.resolver.Clear(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "system config removed")
	return nil
}

func (s *AdminService) SaveProject(ctx context.Context, d models.ProjectDraft) (models.Project, error) {
	if !s.session.Active() {
		return models.Project{}, ErrNotLoggedIn
	}
	if err := s.validate.Struct(d); err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	p := d.Project(s.idFor(d.ID))
	if err := s.store.Projects().Save(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *AdminService) SavePost(ctx context.Context, d models.PostDraft) (models.BlogPost, error) {
	if !s.session.Active() {
		return models.BlogPost{}, ErrNotLoggedIn
	}
	if err := s.validate.Struct(d); err != nil {
		return models.BlogPost{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	if strings.TrimSpace(d.Date) == "" {
		d.Date = models.PostDate(s.now())
	}
	p := d.Post(s.idFor(d.ID))
	if err := s.store.Posts().Save(ctx, p); err != nil {
		return models.BlogPost{}, err
	}
	return p, nil
}

func (s *AdminService) DeleteProject(ctx context.Context, id int64) error {
	if !s.session.Active() {
		return ErrNotLoggedIn
	}
	return s.store.Projects().Delete(ctx, id)
}

func (s *AdminService) DeletePost(ctx context.Context, id int64) error {
	if !s.session.Active() {
		return ErrNotLoggedIn
	}
	return s.store.Posts().Delete(ctx, id)
}

func (s *AdminService) Status(ctx context.Context) Status {
	return Status{
		Storage:   s.store.Kind(ctx),
		AIEnabled: s.resolver.AIKey(ctx) != "",
		LoggedIn:  s.session.Active(),
	}
}

// idFor keeps an existing id and mints one from the clock for new entities.
func (s *AdminService) idFor(id int64) int64 {
	if id != 0 {
		return id
	}
	return s.now().UnixMilli()
}
