package sitecheck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/folio/pkg/logger"
)

// Severity ranks a finding.
type Severity int

const (
	// Soft findings are warnings.
	Soft Severity = iota
	// Hard findings fail the build.
	Hard
)

func (s Severity) String() string {
	switch s {
	case Soft:
		return "soft"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Result is one finding in one file.
type Result struct {
	Check    string
	Severity Severity
	File     string
	Message  string
}

func (r Result) String() string {
	return fmt.Sprintf("%s: [%s] %s: %s", r.File, r.Severity, r.Check, r.Message)
}

// Report aggregates the findings of a Run.
type Report struct {
	Files   []string
	Results []Result
}

// Failed reports whether any hard finding exists.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Severity == Hard {
			return true
		}
	}
	return false
}

// Filter returns findings of the given severity.
func (r *Report) Filter(s Severity) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Severity == s {
			out = append(out, res)
		}
	}
	return out
}

// Log writes hard findings at error level and soft ones at warn level,
// followed by a summary line.
func (r *Report) Log(ctx context.Context, log *slog.Logger) {
	for _, res := range r.Results {
		lvl := slog.LevelWarn
		if res.Severity == Hard {
			lvl = slog.LevelError
		}
		log.LogAttrs(ctx, lvl, res.Message,
			logger.Check(res.Check),
			logger.File(res.File),
			slog.String("severity", res.Severity.String()),
		)
	}
	log.LogAttrs(ctx, slog.LevelInfo, "site check finished",
		logger.Count("files", len(r.Files)),
		logger.Count("hard", len(r.Filter(Hard))),
		logger.Count("soft", len(r.Filter(Soft))),
	)
}
