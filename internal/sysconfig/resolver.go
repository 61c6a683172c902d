// Package sysconfig decides which storage and AI credentials are active.
//
// Every field is resolved on its own: the deploy-time environment wins, then
// the admin-entered config persisted in the local store, then the built-in
// defaults. Storage is remote only when both the API URL and the API key
// resolve to non-empty values.
package sysconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/neoportfolio/internal/common"
	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/cryptox"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
	"github.com/dmitrijs2005/neoportfolio/internal/session"
)

const (
	DefaultDatabase = "portfolio"
	DefaultCluster  = "Cluster0"
)

// Store is the part of the local key/value store the resolver needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Resolver struct {
	env     config.Env
	store   Store
	session *session.Holder
	log     logging.Logger
}

func NewResolver(env config.Env, store Store, holder *session.Holder, log logging.Logger) *Resolver {
	return &Resolver{env: env, store: store, session: holder, log: log.With("component", "sysconfig")}
}

// LoadPersisted reads the admin-entered config.
//
//   - no record: (nil, nil)
//   - plain JSON record: parsed as is, never decrypted
//   - encrypted record without a session key: common.ErrSessionLocked
//   - encrypted record that does not decrypt to valid JSON:
//     common.ErrDecryptionFailed, whether the key was wrong or the data corrupt
func (r *Resolver) LoadPersisted(ctx context.Context) (*models.SystemConfig, error) {
	return r.LoadPersistedWith(ctx, r.session.Key())
}

// LoadPersistedWith is LoadPersisted decrypting with key instead of the
// session key. The session holder is not touched, so a candidate key can be
// checked before it is accepted.
func (r *Resolver) LoadPersistedWith(ctx context.Context, key string) (*models.SystemConfig, error) {
	raw, ok, err := r.store.Get(ctx, common.SystemConfigKey)
	if err != nil {
		return nil, fmt.Errorf("read system config: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	if !cryptox.IsEncrypted(raw) {
		var cfg models.SystemConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			return nil, fmt.Errorf("system config: %w", common.ErrCorruptRecord)
		}
		return &cfg, nil
	}

	if key == "" {
		return nil, common.ErrSessionLocked
	}

	plain, err := cryptox.Decrypt(raw, key)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	var cfg models.SystemConfig
	if err := json.Unmarshal([]byte(plain), &cfg); err != nil {
		return nil, common.ErrDecryptionFailed
	}
	return &cfg, nil
}

// Save overwrites the persisted config. The record is encrypted with the
// session key when one is held and stored as plain JSON otherwise.
func (r *Resolver) Save(ctx context.Context, cfg models.SystemConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode system config: %w", err)
	}

	value := string(b)
	if key := r.session.Key(); key != "" {
		value = cryptox.Encrypt(value, key)
	}

	if err := r.store.Set(ctx, common.SystemConfigKey, value); err != nil {
		return fmt.Errorf("save system config: %w", err)
	}
	return nil
}

// Clear removes the persisted config.
func (r *Resolver) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, common.SystemConfigKey); err != nil {
		return fmt.Errorf("clear system config: %w", err)
	}
	return nil
}

// Storage resolves remote storage credentials. ok=false means the local
// backend must be used.
func (r *Resolver) Storage(ctx context.Context) (models.SystemConfig, bool) {
	cfg := models.SystemConfig{
		APIURL:   r.env.MongoAPIURL,
		APIKey:   r.env.MongoAPIKey,
		Database: r.env.MongoDatabase,
		Cluster:  r.env.MongoCluster,
	}

	if cfg.APIURL == "" || cfg.APIKey == "" || cfg.Database == "" || cfg.Cluster == "" {
		if p := r.persisted(ctx); p != nil {
			cfg.APIURL = firstNonEmpty(cfg.APIURL, p.APIURL)
			cfg.APIKey = firstNonEmpty(cfg.APIKey, p.APIKey)
			cfg.Database = firstNonEmpty(cfg.Database, p.Database)
			cfg.Cluster = firstNonEmpty(cfg.Cluster, p.Cluster)
		}
	}

	cfg.Database = firstNonEmpty(cfg.Database, DefaultDatabase)
	cfg.Cluster = firstNonEmpty(cfg.Cluster, DefaultCluster)

	return cfg, cfg.Configured()
}

// AIKey resolves the Gemini API key; empty means AI features are off.
func (r *Resolver) AIKey(ctx context.Context) string {
	if r.env.GeminiAPIKey != "" {
		return r.env.GeminiAPIKey
	}
	if p := r.persisted(ctx); p != nil {
		return p.GeminiAPIKey
	}
	return ""
}

// AdminPassword returns the deploy-time admin password, if any.
func (r *Resolver) AdminPassword() string {
	return r.env.AdminPassword
}

// persisted is LoadPersisted with every failure treated as "absent".
func (r *Resolver) persisted(ctx context.Context) *models.SystemConfig {
	cfg, err := r.LoadPersisted(ctx)
	switch {
	case err == nil:
		return cfg
	case errors.Is(err, common.ErrSessionLocked):
		r.log.Debug(ctx, "persisted config is locked")
	default:
		r.log.Warn(ctx, "persisted config unreadable", "error", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
