package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/requestid"
)

// ErrorPageParams feeds the error page component.
type ErrorPageParams struct {
	StatusCode int
	Message    string
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast patched into the page on Datastar errors.
type ErrorToastParams struct {
	Message   string
	Level     string // "warning" or "error"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast".
	ToastTarget string
	// ToastMode defaults to PatchInner.
	ToastMode datastar.ElementPatchMode
}

type errorInfo struct {
	status  int
	message string
}

func classifyError(err error) errorInfo {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return errorInfo{status: httpErr.Code, message: http.StatusText(httpErr.Code)}
	}
	return errorInfo{
		status:  http.StatusInternalServerError,
		message: http.StatusText(http.StatusInternalServerError),
	}
}

func (e errorInfo) level() slog.Level {
	if e.status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler renders errors as a full page for browser requests and as a
// toast patch for Datastar requests. Every error is logged with the request id.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchInner
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		id := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.level(), "request failed",
			logger.Error(err),
			slog.Int("status", info.status),
			slog.String("method", r.Method),
			logger.Route(r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			lvl := "error"
			if info.status < http.StatusInternalServerError {
				lvl = "warning"
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.message, Level: lvl, RequestID: id})
			if rerr := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)).Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, info.message, info.status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			StatusCode: info.status,
			Message:    info.message,
			RequestID:  id,
			RetryURL:   r.URL.Path,
		})
		if rerr := TemplStatus(info.status, page).Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "render error page", logger.Error(rerr))
		}
	}
}
