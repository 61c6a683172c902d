package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/content"
	"github.com/dmitrijs2005/neoportfolio/internal/dataapi"
	"github.com/dmitrijs2005/neoportfolio/internal/kv"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/session"
	"github.com/dmitrijs2005/neoportfolio/internal/sysconfig"
)

// noRemote fails every Data API call; tests here run on the local backend
// unless they configure credentials.
type noRemote struct{}

func (noRemote) Find(context.Context, dataapi.Target, any, any) ([]json.RawMessage, error) {
	return nil, dataapi.ErrUnavailable
}
func (noRemote) FindOne(context.Context, dataapi.Target, any) (json.RawMessage, bool, error) {
	return nil, false, dataapi.ErrUnavailable
}
func (noRemote) InsertOne(context.Context, dataapi.Target, any) error { return dataapi.ErrUnavailable }
func (noRemote) UpdateOne(context.Context, dataapi.Target, any, any) error {
	return dataapi.ErrUnavailable
}
func (noRemote) DeleteOne(context.Context, dataapi.Target, any) error { return dataapi.ErrUnavailable }

type stack struct {
	local    *kv.Store
	session  *session.Holder
	resolver *sysconfig.Resolver
	store    *content.Store
}

func newStack(t *testing.T, env config.Env) *stack {
	t.Helper()
	local, err := kv.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	h := session.NewHolder()
	r := sysconfig.NewResolver(env, local, h, logging.Nop{})
	return &stack{
		local:    local,
		session:  h,
		resolver: r,
		store:    content.NewStore(r, local, noRemote{}, nil, logging.Nop{}),
	}
}
