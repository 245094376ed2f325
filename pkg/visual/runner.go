package visual

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/dmitrymomot/folio/pkg/baseline"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// DefaultThreshold is the share of differing pixels tolerated by ModeVerify.
const DefaultThreshold = 0.001

// Mode selects what a run does with captured screenshots.
type Mode int

const (
	// ModeVerify compares screenshots with stored baselines.
	ModeVerify Mode = iota
	// ModeUpdate stores screenshots as the new baselines.
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "verify"
}

// Capturer takes a full-page PNG of url at vp after removing every element
// matching strip.
type Capturer interface {
	Capture(ctx context.Context, url string, vp Viewport, strip []string) ([]byte, error)
}

// Status is the outcome of one route and viewport.
type Status string

const (
	// StatusUpdated means the screenshot was stored as the new baseline.
	StatusUpdated Status = "updated"
	// StatusPassed means the screenshot matched within the threshold.
	StatusPassed Status = "passed"
	// StatusChanged means the diff exceeded the threshold.
	StatusChanged Status = "changed"
	// StatusMissing means no baseline exists for the key.
	StatusMissing Status = "missing"
)

// Outcome records one screenshot.
type Outcome struct {
	Route    string
	Viewport string
	Key      string
	Status   Status
	// Digest identifies the captured PNG bytes.
	Digest string
	Diff   Diff
	// DiffPath is where the diff mask was written, if anywhere.
	DiffPath string
}

// Summary aggregates a run.
type Summary struct {
	Mode     Mode
	Outcomes []Outcome
}

// Failed reports whether any screenshot is missing a baseline or changed.
func (s *Summary) Failed() bool {
	for _, o := range s.Outcomes {
		if o.Status == StatusChanged || o.Status == StatusMissing {
			return true
		}
	}
	return false
}

// Runner drives a Capturer over routes and viewports.
type Runner struct {
	capturer  Capturer
	store     baseline.Store
	mode      Mode
	viewports []Viewport
	strip     []string
	threshold float64
	diffDir   string
	log       *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMode selects verify (default) or update.
func WithMode(m Mode) Option {
	return func(r *Runner) { r.mode = m }
}

// WithViewports replaces the default viewports. An empty list is ignored.
func WithViewports(vps ...Viewport) Option {
	return func(r *Runner) {
		if len(vps) > 0 {
			r.viewports = vps
		}
	}
}

// WithStripSelectors replaces the selectors removed before capture.
func WithStripSelectors(selectors ...string) Option {
	return func(r *Runner) { r.strip = selectors }
}

// WithThreshold sets the tolerated share of differing pixels, in [0, 1].
func WithThreshold(t float64) Option {
	return func(r *Runner) {
		if t >= 0 && t <= 1 {
			r.threshold = t
		}
	}
}

// WithDiffDir writes a mask PNG for every changed screenshot under dir.
func WithDiffDir(dir string) Option {
	return func(r *Runner) { r.diffDir = dir }
}

// WithLogger sets the logger for per-screenshot results.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(c Capturer, store baseline.Store, opts ...Option) *Runner {
	r := &Runner{
		capturer:  c,
		store:     store,
		viewports: DefaultViewports(),
		strip:     DefaultStripSelectors(),
		threshold: DefaultThreshold,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("visual"), slog.String("mode", r.mode.String()))
	return r
}

// Run captures every route at every viewport. Routes are paths such as
// "/works" resolved against baseURL. Pages are visited one at a time.
func (r *Runner) Run(ctx context.Context, baseURL string, routes []string) (*Summary, error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	sum := &Summary{Mode: r.mode}
	for _, route := range routes {
		target := base.JoinPath(route).String()
		if strings.HasSuffix(route, "/") && !strings.HasSuffix(target, "/") {
			target += "/"
		}
		for _, vp := range r.viewports {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			out, err := r.one(ctx, route, target, vp)
			if err != nil {
				return sum, err
			}
			sum.Outcomes = append(sum.Outcomes, out)
		}
	}
	return sum, nil
}

func (r *Runner) one(ctx context.Context, route, target string, vp Viewport) (Outcome, error) {
	start := time.Now()
	key := baseline.Key(route, vp.Name)
	out := Outcome{Route: route, Viewport: vp.Name, Key: key}

	shot, err := r.capturer.Capture(ctx, target, vp, r.strip)
	if err != nil {
		return out, errors.Join(ErrCapture, fmt.Errorf("%s at %s: %w", route, vp, err))
	}

	sum := blake2b.Sum256(shot)
	out.Digest = digest(sum)
	attrs := []slog.Attr{logger.Route(route), logger.Viewport(vp.Name), slog.String("digest", out.Digest)}

	if r.mode == ModeUpdate {
		if err := r.store.Put(ctx, key, shot); err != nil {
			return out, err
		}
		out.Status = StatusUpdated
		r.log.LogAttrs(ctx, slog.LevelInfo, "baseline updated", append(attrs, logger.Duration(time.Since(start)))...)
		return out, nil
	}

	ref, err := r.store.Get(ctx, key)
	if errors.Is(err, baseline.ErrNotFound) {
		out.Status = StatusMissing
		r.log.LogAttrs(ctx, slog.LevelError, "baseline missing", attrs...)
		return out, nil
	}
	if err != nil {
		return out, err
	}

	if blake2b.Sum256(ref) == sum {
		out.Status = StatusPassed
		r.log.LogAttrs(ctx, slog.LevelInfo, "screenshot matches baseline", append(attrs, logger.Duration(time.Since(start)))...)
		return out, nil
	}

	got, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return out, errors.Join(ErrDecode, err)
	}
	want, err := png.Decode(bytes.NewReader(ref))
	if err != nil {
		return out, errors.Join(ErrDecode, fmt.Errorf("baseline %s: %w", key, err))
	}

	out.Diff = Compare(want, got, r.threshold)
	attrs = append(attrs, slog.Float64("ratio", out.Diff.Ratio), logger.Duration(time.Since(start)))
	if out.Diff.Passed() {
		out.Status = StatusPassed
		r.log.LogAttrs(ctx, slog.LevelInfo, "screenshot matches baseline", attrs...)
		return out, nil
	}

	out.Status = StatusChanged
	if r.diffDir != "" && out.Diff.Mask != nil {
		p, err := writeMask(r.diffDir, key, out.Diff)
		if err != nil {
			r.log.WarnContext(ctx, "write diff mask", logger.Error(err))
		} else {
			out.DiffPath = p
		}
	}
	r.log.LogAttrs(ctx, slog.LevelError, "screenshot differs from baseline",
		append(attrs, slog.Bool("size_mismatch", out.Diff.SizeMismatch), slog.String("diff", out.DiffPath))...)
	return out, nil
}

func digest(sum [blake2b.Size256]byte) string {
	return hex.EncodeToString(sum[:8])
}

func writeMask(dir, key string, d Diff) (string, error) {
	p := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(key, ".png")+".diff.png"))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, d.Mask); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return p, nil
}
