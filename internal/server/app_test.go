package server

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "nested", "dir", "app.db")
	return cfg
}

func TestNewApp_SQLiteCreatesDirAndMigrates(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t)

	app, err := NewApp(context.Background(), cfg, &logs)
	require.NoError(t, err)
	defer app.db.Close()

	var n int
	require.NoError(t, app.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
	assert.Contains(t, logs.String(), "Database ready")
	assert.NotContains(t, logs.String(), "fallback")
}

func TestNewApp_WarnsAboutFallback(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t)
	cfg.DebugFallbackUser = true

	app, err := NewApp(context.Background(), cfg, &logs)
	require.NoError(t, err)
	defer app.db.Close()

	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), "Debug fallback user is enabled")
}

func TestNewApp_BadLogFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogFormat = "xml"

	_, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "logger init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	app, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	assert.Error(t, app.db.Ping(), "database is closed after Run")
}
