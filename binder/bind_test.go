package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/binder"
)

type generateRequest struct {
	Middle  bool     `query:"middle"`
	Epithet *bool    `query:"epithet"`
	Seed    uint64   `query:"seed"`
	Size    int      `query:"size"`
	Kinds   []string `query:"kind"`
	Scale   float64  `query:"scale"`
	Skipped string   `query:"-"`
	Slug    string   `path:"slug"`
	plain   string
}

func TestBindQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/name?middle=true&epithet=on&seed=42&size=256&kind=novel,story&kind=essay&scale=1.5&Skipped=x", nil)
		var got generateRequest
		require.NoError(t, binder.BindQuery()(req, &got))

		assert.True(t, got.Middle)
		require.NotNil(t, got.Epithet)
		assert.True(t, *got.Epithet)
		assert.Equal(t, uint64(42), got.Seed)
		assert.Equal(t, 256, got.Size)
		assert.Equal(t, []string{"novel", "story", "essay"}, got.Kinds)
		assert.InDelta(t, 1.5, got.Scale, 0.0001)
		assert.Empty(t, got.Skipped)
		assert.Empty(t, got.plain)
	})

	t.Run("no query is not applicable", func(t *testing.T) {
		t.Parallel()
		var got generateRequest
		err := binder.BindQuery()(httptest.NewRequest(http.MethodGet, "/api/name", nil), &got)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		var got generateRequest
		err := binder.BindQuery()(httptest.NewRequest(http.MethodGet, "/api/name?seed=abc", nil), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
		assert.Contains(t, err.Error(), "seed")
	})

	t.Run("negative into unsigned", func(t *testing.T) {
		t.Parallel()
		var got generateRequest
		err := binder.BindQuery()(httptest.NewRequest(http.MethodGet, "/?seed=-1", nil), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		err := binder.BindQuery()(httptest.NewRequest(http.MethodGet, "/?a=1", nil), generateRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/works/the-river", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "the-river")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	var got generateRequest
	require.NoError(t, binder.Path(chi.URLParam)(req, &got))
	assert.Equal(t, "the-river", got.Slug)
	assert.False(t, got.Middle)

	assert.ErrorIs(t, binder.Path(nil)(req, &got), binder.ErrInvalidPath)
}
