package prompts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/taskroute/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_Reloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("translator: \"v1 {{.Input}}\"\n"), 0o600))

	initial, err := Load(path)
	require.NoError(t, err)
	store := NewStore(initial)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, store, logging.NewNop()) }()

	render := func() string {
		s, err := store.Render(KindTranslator, Data{Input: "x"})
		require.NoError(t, err)
		return s
	}

	// The watcher may not be registered yet, so keep rewriting until it is seen.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("translator: \"v2 {{.Input}}\"\n"), 0o600)
		return render() == "v2 x"
	}, 5*time.Second, 200*time.Millisecond)

	// A broken file keeps the previous templates.
	require.NoError(t, os.WriteFile(path, []byte("translator: \"{{.Input\"\n"), 0o600))
	time.Sleep(4 * reloadDebounce)
	assert.Equal(t, "v2 x", render())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_BadDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "prompts.yaml"), NewStore(nil), logging.NewNop())
	assert.Error(t, err)
}
