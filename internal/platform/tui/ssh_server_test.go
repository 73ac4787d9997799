package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

func newTestSSHServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")

	srv, err := NewSSHServer(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, srv.store)
	return srv
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	assert.Equal(t, ":23234", cfg.Address)
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 60, cfg.TickRate)
}

func TestSSHServerShutdownClosesStore(t *testing.T) {
	srv := newTestSSHServer(t)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	store := srv.store
	_, err := store.SaveScore(storage.Record{GameID: "match3", Player: "alice", Score: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Nil(t, srv.store)

	// Closing twice is harmless.
	srv.closeStore()

	reopened, err := storage.Open(srv.config.DBPath)
	require.NoError(t, err)
	defer reopened.Close()
	scores, err := reopened.TopScores("match3", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}
