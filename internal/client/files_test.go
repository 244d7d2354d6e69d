package client

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenReader struct {
	data string
	done bool
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("connection reset")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "video.mp4")

	var progress []int64
	written, err := SaveTo(context.Background(), strings.NewReader("hello world"), path, func(n int64) {
		progress = append(progress, n)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), written)
	require.NotEmpty(t, progress)
	assert.Equal(t, int64(11), progress[len(progress)-1])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, err = os.Stat(path + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveTo_FailureRemovesPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")

	_, err := SaveTo(context.Background(), &brokenReader{data: "partial"}, path, nil)
	require.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveTo_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SaveTo(ctx, strings.NewReader("data"), path, nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchFile(t *testing.T) {
	backend := newFakeBackend()
	backend.files["Song: Live.mp4"] = "bytes"
	dir := t.TempDir()

	path, err := FetchFile(context.Background(), backend, "Song: Live.mp4", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Song Live.mp4"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))
}

func TestFetchFile_Missing(t *testing.T) {
	backend := newFakeBackend()

	_, err := FetchFile(context.Background(), backend, "missing.mp4", t.TempDir(), nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}
