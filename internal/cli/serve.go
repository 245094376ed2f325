package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/site"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ratelimiter.NewMemoryStore()
			defer store.Close()
			bucket, err := ratelimiter.NewBucket(store, a.cfg.RateLimit)
			if err != nil {
				return err
			}
			s, err := a.site(site.WithRateLimiter(bucket))
			if err != nil {
				return err
			}
			opts := []httpserver.Option{
				httpserver.WithLogger(a.log),
				httpserver.WithStartHook(func(addr string, log *slog.Logger) {
					log.Info("site ready", slog.String("base_url", s.Content().BaseURL), slog.Int("pages", len(s.Routes())))
				}),
			}
			if addr != "" {
				opts = append(opts, httpserver.WithAddr(addr))
			}
			return httpserver.NewFromConfig(a.cfg.HTTP, opts...).Run(cmd.Context(), s.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $HTTP_ADDR or :8080)")
	return cmd
}
