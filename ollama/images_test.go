package ollama

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/llmconnect/provider"
)

func TestEncodeImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := EncodeImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), got)
}

func TestPrepareImages(t *testing.T) {
	t.Run("base64 is copied", func(t *testing.T) {
		in := []string{"QQ==", "Qg=="}
		got, err := prepareImages(nil, in)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		got[0] = "changed"
		assert.Equal(t, "QQ==", in[0], "caller slice must not be aliased")
	})

	t.Run("both", func(t *testing.T) {
		_, err := prepareImages([]string{"a"}, []string{"b"})
		assert.ErrorIs(t, err, provider.ErrConfiguration)
	})

	t.Run("neither", func(t *testing.T) {
		_, err := prepareImages(nil, []string{})
		assert.ErrorIs(t, err, provider.ErrConfiguration)
	})
}
