package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/site"
	"github.com/dmitrymomot/folio/pkg/sitecheck"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		out   string
		check bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.site()
			if err != nil {
				return err
			}
			if err := site.Export(cmd.Context(), s, out); err != nil {
				return err
			}
			if !check {
				return nil
			}
			return a.check(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	cmd.Flags().BoolVar(&check, "check", false, "run the site checks over the output")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <dir>",
		Short: "Run SEO, accessibility and sanity checks over exported HTML",
		Long:  "check parses every .html file under dir. Hard findings make the command exit non-zero; soft findings are only logged.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, args[0])
		},
	}
}

func (a *app) check(cmd *cobra.Command, dir string) error {
	report, err := sitecheck.Run(cmd.Context(), dir)
	if err != nil {
		return err
	}
	report.Log(cmd.Context(), a.log)
	if report.Failed() {
		return errFailed
	}
	return nil
}
