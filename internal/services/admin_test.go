package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/neoportfolio/internal/common"
	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/content"
	"github.com/dmitrijs2005/neoportfolio/internal/cryptox"
	"github.com/dmitrijs2005/neoportfolio/internal/dataapi"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
)

func newAdmin(t *testing.T, env config.Env) (*AdminService, *stack) {
	t.Helper()
	st := newStack(t, env)
	svc := NewAdminService(st.resolver, st.session, st.store, logging.Nop{})
	svc.now = func() time.Time { return time.UnixMilli(1700000000123).UTC() }
	return svc, st
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := cryptox.HashPassword("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		env      config.Env
		password string
		wantErr  error
	}{
		{name: "empty password", password: "", wantErr: ErrEmptyPassword},
		{name: "no admin password, no config", password: "anything"},
		{name: "plain admin password match", env: config.Env{AdminPassword: "s3cret"}, password: "s3cret"},
		{name: "plain admin password mismatch", env: config.Env{AdminPassword: "s3cret"}, password: "guess", wantErr: ErrAccessDenied},
		{name: "bcrypt admin password match", env: config.Env{AdminPassword: hash}, password: "s3cret"},
		{name: "bcrypt admin password mismatch", env: config.Env{AdminPassword: hash}, password: "nope", wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAdmin(t, tt.env)
			err := svc.Login(ctx, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, svc.LoggedIn())
				return
			}
			require.NoError(t, err)
			assert.True(t, svc.LoggedIn())
			assert.NotEmpty(t, svc.SessionID())
		})
	}
}

func TestLogin_EncryptedConfigGatesTheKey(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})

	require.NoError(t, svc.Login(ctx, "hunter2"))
	require.NoError(t, svc.SaveConfig(ctx, models.SystemConfig{APIURL: " https://data ", APIKey: "k"}))
	svc.Logout(ctx)
	assert.False(t, svc.LoggedIn())

	err := svc.Login(ctx, "wrong")
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, svc.LoggedIn())
	assert.Empty(t, st.session.Key(), "failed login must not leave a key behind")

	require.NoError(t, svc.Login(ctx, "hunter2"))
	cfg, err := svc.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://data", cfg.APIURL)
}

func TestLogin_RejectedAttemptKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})

	require.NoError(t, svc.Login(ctx, "hunter2"))
	require.NoError(t, svc.SaveConfig(ctx, models.SystemConfig{APIURL: "https://data", APIKey: "k"}))
	id := svc.SessionID()

	require.ErrorIs(t, svc.Login(ctx, "guess"), ErrAccessDenied)
	assert.True(t, svc.LoggedIn())
	assert.Equal(t, id, svc.SessionID())
	assert.Equal(t, "hunter2", st.session.Key())

	require.NoError(t, svc.SaveConfig(ctx, models.SystemConfig{APIURL: "https://other", APIKey: "k2"}))
	raw, ok, err := st.local.Get(ctx, common.SystemConfigKey)
	require.NoError(t, err)
	require.True(t, ok)
	plain, err := cryptox.Decrypt(raw, "hunter2")
	require.NoError(t, err)
	assert.Contains(t, plain, "https://other")
}

func TestLogin_AdminPasswordMismatchKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdmin(t, config.Env{AdminPassword: "s3cret"})

	require.NoError(t, svc.Login(ctx, "s3cret"))
	id := svc.SessionID()

	require.ErrorIs(t, svc.Login(ctx, "nope"), ErrAccessDenied)
	assert.True(t, svc.LoggedIn())
	assert.Equal(t, id, svc.SessionID())
}

func TestLogin_LegacyConfigAcceptsAnyKey(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})
	require.NoError(t, st.local.Set(ctx, common.SystemConfigKey, `{"apiUrl":"u","apiKey":"k"}`))

	require.NoError(t, svc.Login(ctx, "whatever"))
}

func TestLogin_CorruptLegacyConfigStillLogsIn(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})
	require.NoError(t, st.local.Set(ctx, common.SystemConfigKey, `{broken`))

	require.NoError(t, svc.Login(ctx, "pw"))
	assert.True(t, svc.LoggedIn())
}

func TestLogin_StoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})
	require.NoError(t, st.local.Close())

	err := svc.Login(ctx, "pw")
	require.Error(t, err)
	assert.False(t, svc.LoggedIn())
}

func TestAdmin_RequiresSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdmin(t, config.Env{})

	_, err := svc.Config(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, svc.SaveConfig(ctx, models.SystemConfig{}), ErrNotLoggedIn)
	assert.ErrorIs(t, svc.Disconnect(ctx), ErrNotLoggedIn)
	_, err = svc.SaveProject(ctx, models.ProjectDraft{Title: "x"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.SavePost(ctx, models.PostDraft{Title: "x"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, svc.DeleteProject(ctx, 1), ErrNotLoggedIn)
	assert.ErrorIs(t, svc.DeletePost(ctx, 1), ErrNotLoggedIn)
}

func TestSaveProject(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})
	require.NoError(t, svc.Login(ctx, "pw"))

	_, err := svc.SaveProject(ctx, models.ProjectDraft{Title: ""})
	require.ErrorIs(t, err, ErrInvalidDraft)

	p, err := svc.SaveProject(ctx, models.ProjectDraft{Title: "Neo CMS", Tags: models.TagList{"Go", "SQLite"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), p.ID)

	p2, err := svc.SaveProject(ctx, models.ProjectDraft{ID: p.ID, Title: "Neo CMS v2"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)

	list, err := st.store.Projects().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Neo CMS v2", list[4].Title)
}

func TestSavePost_AndDelete(t *testing.T) {
	ctx := context.Background()
	svc, st := newAdmin(t, config.Env{})
	require.NoError(t, svc.Login(ctx, "pw"))

	p, err := svc.SavePost(ctx, models.PostDraft{Title: "Hello", Content: "## Hi", ReadTime: "1 MIN READ"})
	require.NoError(t, err)
	require.NotNil(t, p.Content)
	assert.Equal(t, "NOV 14, 2023", p.Date)

	require.NoError(t, svc.DeletePost(ctx, p.ID))
	require.NoError(t, svc.DeleteProject(ctx, 1))

	posts, err := st.store.Posts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 4)
	projects, err := st.store.Projects().List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3)
}

func TestSave_RemoteErrorPropagates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdmin(t, config.Env{MongoAPIURL: "https://data", MongoAPIKey: "k"})
	require.NoError(t, svc.Login(ctx, "pw"))

	_, err := svc.SaveProject(ctx, models.ProjectDraft{Title: "x"})
	assert.ErrorIs(t, err, dataapi.ErrUnavailable)
}

func TestStatusAndDisconnect(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdmin(t, config.Env{})

	assert.Equal(t, Status{Storage: content.BackendLocal}, svc.Status(ctx))

	require.NoError(t, svc.Login(ctx, "pw"))
	require.NoError(t, svc.SaveConfig(ctx, models.SystemConfig{APIURL: "https://data", APIKey: "k", GeminiAPIKey: "g"}))
	assert.Equal(t, Status{Storage: content.BackendRemote, AIEnabled: true, LoggedIn: true}, svc.Status(ctx))

	svc.Logout(ctx)
	assert.Equal(t, Status{Storage: content.BackendLocal}, svc.Status(ctx), "encrypted config is locked for visitors")

	require.NoError(t, svc.Login(ctx, "pw"))
	require.NoError(t, svc.Disconnect(ctx))
	assert.Equal(t, Status{Storage: content.BackendLocal, LoggedIn: true}, svc.Status(ctx))
}
