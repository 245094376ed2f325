package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/binder"
	"github.com/dmitrymomot/folio/handler"
)

type sortRequest struct {
	Sort string `query:"sort"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/event-stream")
	return req
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds query", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(_ handler.Context, req sortRequest) handler.Response {
			return handler.Templ(text("sorted by " + req.Sort))
		}, handler.WithBinders[handler.Context, sortRequest](binder.BindQuery()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/works?sort=words", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "sorted by words", rec.Body.String())
	})

	t.Run("missing query skips binder", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(_ handler.Context, req sortRequest) handler.Response {
			return handler.Templ(text("sort=" + req.Sort))
		}, handler.WithBinders[handler.Context, sortRequest](binder.BindQuery()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/works", nil))
		assert.Equal(t, "sort=", rec.Body.String())
	})

	t.Run("bind error is bad request", func(t *testing.T) {
		t.Parallel()
		type seeded struct {
			Seed uint64 `query:"seed"`
		}
		h := handler.Wrap(func(handler.Context, seeded) handler.Response {
			return handler.Empty()
		}, handler.WithBinders[handler.Context, seeded](binder.BindQuery()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?seed=nope", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, struct{}](func(_ handler.Context, err error) { got = err }))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("render error goes to default handler", func(t *testing.T) {
		t.Parallel()
		failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return errors.New("boom") })
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return handler.Templ(failing) })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("decorators outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		}, handler.WithDecorators(mark("outer"), mark("inner")))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

type siteContext struct {
	handler.Context
	author string
}

func TestWrap_CustomContext(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx siteContext, _ struct{}) handler.Response {
		return handler.Templ(text(ctx.author))
	}, handler.WithContextFactory[siteContext, struct{}](func(w http.ResponseWriter, r *http.Request) siteContext {
		return siteContext{Context: handler.NewContext(w, r), author: "Li Mubai"}
	}))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Li Mubai", rec.Body.String())

	assert.Panics(t, func() {
		handler.Wrap(func(siteContext, struct{}) handler.Response { return handler.Empty() })(
			httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Equal(t, "v", ctx.Value(key{}))
	assert.Same(t, req, ctx.Request())
	assert.Nil(t, ctx.SSE())
	require.NoError(t, ctx.Err())

	ds := handler.NewContext(httptest.NewRecorder(), datastarRequest("/names/generate"))
	assert.NotNil(t, ds.SSE())
	assert.Same(t, ds.SSE(), ds.SSE())
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	assert.True(t, handler.IsDataStar(datastarRequest("/")))
	assert.True(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)))
	assert.False(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestReadSignals(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/names/generate?datastar="+
		strings.ReplaceAll(`{"middle":true,"seed":7}`, `"`, "%22"), nil)
	var signals struct {
		Middle bool   `json:"middle"`
		Seed   uint64 `json:"seed"`
	}
	require.NoError(t, handler.ReadSignals(req, &signals))
	assert.True(t, signals.Middle)
	assert.Equal(t, uint64(7), signals.Seed)
}
