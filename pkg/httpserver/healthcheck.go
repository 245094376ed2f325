package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/folio/pkg/logger"
)

// Probe reports whether a dependency of the site is usable.
type Probe func(ctx context.Context) error

// HealthCheckHandler answers liveness and readiness probes. With no probes it
// returns 200 "ALIVE". Otherwise every probe runs against the request context
// and any failure yields 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")

		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		for _, p := range probes {
			if err := p(ctx); err != nil {
				log.WarnContext(ctx, "readiness probe failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
