package baseline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/baseline"
)

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "index/desktop.png", baseline.Key("/", "desktop"))
	assert.Equal(t, "works/mobile.png", baseline.Key("/works", "mobile"))
	assert.Equal(t, "works/the-river/desktop.png", baseline.Key("/works/the-river/", "desktop"))
}

func TestLocalStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store, err := baseline.NewLocalStore(dir)
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "index/desktop.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, "index/desktop.png")
	assert.ErrorIs(t, err, baseline.ErrNotFound)

	require.NoError(t, store.Put(ctx, "index/desktop.png", []byte("png-1")))
	require.NoError(t, store.Put(ctx, "works/mobile.png", []byte("png-2")))
	require.NoError(t, store.Put(ctx, "index/desktop.png", []byte("png-3")))

	data, err := store.Get(ctx, "index/desktop.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-3"), data)

	ok, err = store.Exists(ctx, "works/mobile.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "works")
	require.NoError(t, err)
	assert.False(t, ok, "directories are not baselines")

	keys, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"index/desktop.png", "works/mobile.png"}, keys)

	keys, err = store.List(ctx, "works/")
	require.NoError(t, err)
	assert.Equal(t, []string{"works/mobile.png"}, keys)

	_, err = os.Stat(filepath.Join(dir, "works", "mobile.png"))
	assert.NoError(t, err)
}

func TestLocalStore_InvalidKeys(t *testing.T) {
	t.Parallel()

	store, err := baseline.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../escape.png", "a/../../b.png", `a\b.png`} {
		err := store.Put(context.Background(), key, []byte("x"))
		assert.ErrorIs(t, err, baseline.ErrInvalidKey, key)
	}
}

func TestLocalStore_Canceled(t *testing.T) {
	t.Parallel()

	store, err := baseline.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Put(ctx, "a.png", nil), context.Canceled)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "baselines")
	store, err := baseline.Open(context.Background(), baseline.Config{Dir: dir})
	require.NoError(t, err)
	require.IsType(t, &baseline.LocalStore{}, store)
	assert.DirExists(t, dir)

	_, err = baseline.NewLocalStore("")
	assert.ErrorIs(t, err, baseline.ErrInvalidConfig)
}
