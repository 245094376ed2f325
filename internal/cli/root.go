// Package cli implements the folio command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/content"
	"github.com/dmitrymomot/folio/internal/site"
	"github.com/dmitrymomot/folio/pkg/baseline"
	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/config"
	"github.com/dmitrymomot/folio/pkg/fragment"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/randomname"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/requestid"
	"github.com/dmitrymomot/folio/pkg/visual"
	"github.com/dmitrymomot/folio/pkg/writingprompt"
)

// Config is the environment of every command.
type Config struct {
	Log      logger.Config
	HTTP     httpserver.Config
	Baseline baseline.Config
	Browser  visual.RodConfig
	// RateLimit throttles the widget and API endpoints of serve.
	RateLimit ratelimiter.Config
	ClientIP  clientip.Config

	// BaseURL overrides the catalog base URL, e.g. for staging.
	BaseURL string `env:"FOLIO_BASE_URL"`
	// Content is a catalog file used instead of the embedded one.
	Content     string `env:"FOLIO_CONTENT"`
	NamePools   string `env:"FOLIO_NAME_POOLS"`
	PromptPools string `env:"FOLIO_PROMPT_POOLS"`
}

type app struct {
	cfg Config
	log *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var (
		envFiles []string
		logLevel string
	)

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Author portfolio site and its build checks",
		Long:          "folio serves and exports the portfolio site, runs the SEO, accessibility and sanity checks over the export, and compares page screenshots with stored baselines.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			if err := config.Load(&a.cfg); err != nil {
				return err
			}
			if logLevel != "" {
				a.cfg.Log.Level = logLevel
			}
			log, err := logger.NewFromConfig(a.cfg.Log,
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
			)
			if err != nil {
				return err
			}
			a.log = log
			logger.SetAsDefault(log)
			return nil
		},
	}

	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "load environment from these .env files")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default $LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(a),
		newBuildCmd(a),
		newCheckCmd(a),
		newVisualCmd(a),
		newNameCmd(a),
		newPromptCmd(a),
		newWorksCmd(a),
	)
	return root
}

// Execute runs the command line and returns the error that ended it.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return err
}

func (a *app) content() (*content.Site, error) {
	var (
		c   *content.Site
		err error
	)
	if a.cfg.Content != "" {
		c, err = content.Load(os.DirFS(filepath.Dir(a.cfg.Content)), filepath.Base(a.cfg.Content))
	} else {
		c, err = content.Default()
	}
	if err != nil {
		return nil, err
	}
	if a.cfg.BaseURL != "" {
		return c.WithBaseURL(a.cfg.BaseURL)
	}
	return c, nil
}

func (a *app) namePools() (fragment.Config, error) {
	if a.cfg.NamePools == "" {
		return randomname.DefaultConfig(), nil
	}
	return loadPools(a.cfg.NamePools, randomname.LoadPools)
}

func (a *app) promptPools() (fragment.Config, error) {
	if a.cfg.PromptPools == "" {
		return writingprompt.DefaultConfig(), nil
	}
	return loadPools(a.cfg.PromptPools, writingprompt.LoadPools)
}

func loadPools(path string, load func(io.Reader) (fragment.Config, error)) (fragment.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return fragment.Config{}, err
	}
	defer f.Close()
	cfg, err := load(f)
	if err != nil {
		return fragment.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (a *app) site(opts ...site.Option) (*site.Site, error) {
	c, err := a.content()
	if err != nil {
		return nil, err
	}
	names, err := a.namePools()
	if err != nil {
		return nil, err
	}
	prompts, err := a.promptPools()
	if err != nil {
		return nil, err
	}
	return site.New(c, append([]site.Option{
		site.WithLogger(a.log),
		site.WithNamePools(names),
		site.WithPromptPools(prompts),
		site.WithTrustedProxyHeaders(a.cfg.ClientIP.TrustedHeaders...),
	}, opts...)...)
}

// errFailed marks a command that ran but found problems; the findings are
// already logged.
var errFailed = errors.New("checks failed")
