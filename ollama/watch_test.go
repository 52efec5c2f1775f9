package ollama

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watchResult struct {
	client *Client
	err    error
}

func TestWatchConfigFile_RebuildsClientOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: first\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan watchResult, 16)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfigFile(ctx, path, func(c *Client, err error) {
			results <- watchResult{client: c, err: err}
		})
	}()

	// The initial client arrives once the watch is in place.
	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, "http://first:11434", r.client.BaseURL())
	case <-time.After(5 * time.Second):
		t.Fatal("no initial client delivered")
	}

	require.NoError(t, os.WriteFile(path, []byte("host: second\ntimeout: 3s\n"), 0o600))

	// A single write can surface as several events, some seeing a partial file.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			if r.err != nil || r.client.BaseURL() != "http://second:11434" {
				continue
			}
			assert.Equal(t, 3*time.Second, r.client.Timeout())
			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("watcher did not stop after cancel")
			}
			return
		case <-deadline:
			t.Fatal("no rebuilt client after config change")
		}
	}
}

func TestWatchConfigFile_ReportsLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.ini")
	require.NoError(t, os.WriteFile(path, []byte("host=x"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())

	var got watchResult
	err := WatchConfigFile(ctx, path, func(c *Client, err error) {
		got = watchResult{client: c, err: err}
		cancel()
	})
	require.NoError(t, err)
	assert.Nil(t, got.client)
	assert.Error(t, got.err)
}

func TestWatchConfigFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "client.yaml")

	err := WatchConfigFile(context.Background(), path, func(*Client, error) {
		t.Error("onChange should not be called")
	})
	assert.Error(t, err)
}
