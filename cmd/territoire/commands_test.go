package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/territoire/internal/cache"
	"github.com/jbweber/homelab/territoire/internal/config"
	"github.com/jbweber/homelab/territoire/internal/logger"
)

func TestConnectCache(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	c, closeFn, err := connectCache(ctx, &config.Config{}, log)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, cache.Noop{}, c)

	_, _, err = connectCache(ctx, &config.Config{RedisAddr: "127.0.0.1:1"}, log)
	assert.Error(t, err)

	c, closeFn = openCache(ctx, &config.Config{RedisAddr: "127.0.0.1:1"}, log)
	defer closeFn()
	assert.IsType(t, cache.Noop{}, c)
}

func TestFillNomsCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "territoire.db")

	t.Setenv("TERRITOIRE_DB_DRIVER", "sqlite")
	t.Setenv("REDIS_ADDR", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fill-noms", "--db", db})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "0 département(s) mis à jour\n", out.String())

	// a write that cannot reach the configured cache would leave stale stats
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fill-noms", "--db", db})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
