// Package site serves the portfolio: static pages rendered from the content
// catalog and the Datastar endpoints behind the interactive widgets.
package site

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/folio/binder"
	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/content"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/fragment"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/randomname"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/requestid"
	"github.com/dmitrymomot/folio/pkg/writingprompt"
)

//go:embed static
var staticFiles embed.FS

// DefaultDatastarScript is the Datastar client bundle loaded by every page.
const DefaultDatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// ErrNoContent is returned by New without a catalog.
var ErrNoContent = errors.New("site: content catalog is required")

// Site holds everything needed to render pages.
type Site struct {
	content        *content.Site
	nameCfg        fragment.Config
	promptCfg      fragment.Config
	datastarScript string
	log            *slog.Logger
	static         fs.FS
	errors         handler.ErrorHandler[handler.Context]
	limiter        *ratelimiter.Bucket
	ipHeaders      []string
	qrCache        *cache.LRU[qrKey, []byte]
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger for requests and widget warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNamePools replaces the built-in name pools.
func WithNamePools(cfg fragment.Config) Option {
	return func(s *Site) { s.nameCfg = cfg }
}

// WithPromptPools replaces the built-in prompt pools.
func WithPromptPools(cfg fragment.Config) Option {
	return func(s *Site) { s.promptCfg = cfg }
}

// WithDatastarScript points pages at another Datastar bundle.
func WithDatastarScript(src string) Option {
	return func(s *Site) {
		if src != "" {
			s.datastarScript = src
		}
	}
}

// WithRateLimiter throttles the generator, share and API endpoints per
// client address. Pages are never throttled.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Site) { s.limiter = b }
}

// WithTrustedProxyHeaders names the headers that carry the client address
// when the site runs behind a proxy.
func WithTrustedProxyHeaders(headers ...string) Option {
	return func(s *Site) { s.ipHeaders = headers }
}

// New builds a Site. Generator pools are validated here so that a bad pool
// file stops the process before it serves anything.
func New(c *content.Site, opts ...Option) (*Site, error) {
	if c == nil {
		return nil, ErrNoContent
	}
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	s := &Site{
		content:        c,
		nameCfg:        randomname.DefaultConfig(),
		promptCfg:      writingprompt.DefaultConfig(),
		datastarScript: DefaultDatastarScript,
		log:            slog.New(slog.DiscardHandler),
		static:         static,
		qrCache:        cache.NewLRU[qrKey, []byte](256),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := randomname.NewFromConfig(s.nameCfg); err != nil {
		return nil, err
	}
	if _, err := writingprompt.NewFromConfig(s.promptCfg); err != nil {
		return nil, err
	}

	s.log = s.log.With(logger.Component("site"))
	s.errors = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return s.layout(pageMeta{Path: p.RetryURL, Title: p.Message}, errorBody(p))
		},
		ErrorToast: errorToast,
	})
	return s, nil
}

// Content returns the catalog the site renders.
func (s *Site) Content() *content.Site { return s.content }

// Routes lists every page path, in navigation order. Widget and API
// endpoints are not pages.
func (s *Site) Routes() []string {
	routes := []string{"/", "/works"}
	for _, w := range s.content.Works {
		routes = append(routes, "/works/"+w.Slug)
	}
	return append(routes, "/names", "/prompts")
}

// Router returns the HTTP handler for the site.
func (s *Site) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(s.ipHeaders...))
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/", wrap(s, s.homePage))
	r.Get("/works", wrap(s, s.worksPage, bindQuery))
	r.Get("/works/sort", wrap(s, s.sortWorks, bindQuery))
	r.Get("/works/{slug}", wrap(s, s.workPage, bindPath))
	r.Get("/names", wrap(s, s.namesPage, bindQuery))
	r.Get("/prompts", wrap(s, s.promptsPage, bindQuery))

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Get("/names/generate", wrap(s, s.generateName, bindQuery))
		r.Get("/prompts/generate", wrap(s, s.generatePrompt, bindQuery))
		r.Get("/share/qr", wrap(s, s.shareQR, bindQuery))

		r.Route("/api", func(r chi.Router) {
			r.Get("/name", wrap(s, s.apiName, bindQuery))
			r.Get("/prompt", wrap(s, s.apiPrompt, bindQuery))
			r.Get("/works", wrap(s, s.apiWorks, bindQuery))
		})
	})

	r.Get("/healthz", httpserver.HealthCheckHandler(s.log))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(s.static)))

	r.NotFound(s.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errors(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})
	return r
}

// notFound answers unknown paths. A Datastar action aimed at a missing
// endpoint is logged and ignored so the page stays as it is.
func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	if handler.IsDataStar(r) {
		s.log.WarnContext(r.Context(), "unknown widget endpoint", logger.Route(r.URL.Path))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.errors(handler.NewContext(w, r), handler.ErrNotFound)
}

func (s *Site) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return ratelimiter.Middleware(s.limiter, clientip.Key,
		ratelimiter.WithLimitedHandler(func(w http.ResponseWriter, r *http.Request, res ratelimiter.Result) {
			s.log.WarnContext(r.Context(), "rate limited",
				logger.Route(r.URL.Path),
				slog.Duration("retry_after", res.RetryAfter()),
			)
			s.errors(handler.NewContext(w, r), handler.ErrTooManyRequests)
		}),
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			s.log.ErrorContext(r.Context(), "rate limiter failed", logger.Error(err))
			next.ServeHTTP(w, r)
		}),
	)(next)
}

func (s *Site) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.LogAttrs(r.Context(), slog.LevelDebug, "request",
			slog.String("method", r.Method),
			logger.Route(r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}

var (
	bindQuery = handler.Bind(binder.BindQuery())
	bindPath  = handler.Bind(binder.Path(chi.URLParam))
)

func wrap[R any](s *Site, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errors),
	)
}
