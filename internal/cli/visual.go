package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/pkg/baseline"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/visual"
)

func newVisualCmd(a *app) *cobra.Command {
	var (
		baseURL   string
		update    bool
		routes    []string
		viewports []string
		threshold float64
		diffDir   string
		dir       string
	)
	cmd := &cobra.Command{
		Use:   "visual",
		Short: "Compare page screenshots with stored baselines",
		Long: "visual loads every route at every viewport in Chrome and compares a full-page screenshot with its baseline. " +
			"Without --base-url the site is served in-process on a random local port. With --update the screenshots become the new baselines.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			vps, err := parseViewports(viewports)
			if err != nil {
				return err
			}

			cfg := a.cfg.Baseline
			if dir != "" {
				cfg.Dir, cfg.Bucket = dir, ""
			}
			store, err := baseline.Open(ctx, cfg)
			if err != nil {
				return err
			}

			if baseURL == "" || len(routes) == 0 {
				s, err := a.site()
				if err != nil {
					return err
				}
				if len(routes) == 0 {
					routes = s.Routes()
				}
				if baseURL == "" {
					ln, err := net.Listen("tcp", "127.0.0.1:0")
					if err != nil {
						return err
					}
					srv := httpserver.New(httpserver.WithLogger(a.log))
					errCh := make(chan error, 1)
					go func() { errCh <- srv.Serve(ctx, ln, s.Router()) }()
					defer func() {
						cancel()
						if err := <-errCh; err != nil {
							a.log.Warn("local server", logger.Error(err))
						}
					}()
					baseURL = "http://" + ln.Addr().String()
				}
			}

			capturer, err := visual.NewRodCapturer(ctx, a.cfg.Browser)
			if err != nil {
				return err
			}
			defer func() {
				if err := capturer.Close(); err != nil {
					a.log.Warn("close browser", logger.Error(err))
				}
			}()

			mode := visual.ModeVerify
			if update {
				mode = visual.ModeUpdate
			}
			runner := visual.NewRunner(capturer, store,
				visual.WithMode(mode),
				visual.WithViewports(vps...),
				visual.WithThreshold(threshold),
				visual.WithDiffDir(diffDir),
				visual.WithLogger(a.log),
			)
			sum, err := runner.Run(ctx, baseURL, routes)
			if err != nil {
				return err
			}
			return a.summarize(ctx, sum)
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "site to capture (default: serve the site locally)")
	cmd.Flags().BoolVar(&update, "update", false, "store screenshots as the new baselines")
	cmd.Flags().StringSliceVar(&routes, "route", nil, "routes to capture (default: every page)")
	cmd.Flags().StringSliceVar(&viewports, "viewport", []string{visual.Desktop.Name, visual.Mobile.Name}, "viewports: desktop, mobile or NAME=WIDTHxHEIGHT")
	cmd.Flags().Float64Var(&threshold, "threshold", visual.DefaultThreshold, "tolerated share of differing pixels")
	cmd.Flags().StringVar(&diffDir, "diff-dir", "", "write diff masks for changed screenshots here")
	cmd.Flags().StringVar(&dir, "dir", "", "local baseline directory (overrides $BASELINE_DIR and S3)")
	return cmd
}

func (a *app) summarize(ctx context.Context, sum *visual.Summary) error {
	counts := make(map[visual.Status]int)
	for _, o := range sum.Outcomes {
		counts[o.Status]++
	}
	a.log.LogAttrs(ctx, slog.LevelInfo, "visual run finished",
		slog.String("mode", sum.Mode.String()),
		logger.Count("screenshots", len(sum.Outcomes)),
		logger.Count("updated", counts[visual.StatusUpdated]),
		logger.Count("passed", counts[visual.StatusPassed]),
		logger.Count("changed", counts[visual.StatusChanged]),
		logger.Count("missing", counts[visual.StatusMissing]),
	)
	if sum.Failed() {
		return errFailed
	}
	return nil
}

// parseViewports accepts the names of the built-in viewports or custom
// sizes written NAME=WIDTHxHEIGHT.
func parseViewports(specs []string) ([]visual.Viewport, error) {
	out := make([]visual.Viewport, 0, len(specs))
	for _, spec := range specs {
		switch spec {
		case visual.Desktop.Name:
			out = append(out, visual.Desktop)
			continue
		case visual.Mobile.Name:
			out = append(out, visual.Mobile)
			continue
		}
		name, size, ok := strings.Cut(spec, "=")
		var vp visual.Viewport
		if ok {
			_, err := fmt.Sscanf(size, "%dx%d", &vp.Width, &vp.Height)
			ok = err == nil && vp.Width > 0 && vp.Height > 0 && name != ""
		}
		if !ok {
			return nil, fmt.Errorf("invalid viewport %q: want desktop, mobile or NAME=WIDTHxHEIGHT", spec)
		}
		vp.Name = name
		vp.Mobile = vp.Width < 600
		out = append(out, vp)
	}
	return out, nil
}
