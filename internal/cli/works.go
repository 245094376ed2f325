package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/pkg/worklist"
)

func newWorksCmd(a *app) *cobra.Command {
	var sortBy string
	cmd := &cobra.Command{
		Use:   "works",
		Short: "List the works in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := worklist.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			c, err := a.content()
			if err != nil {
				return err
			}
			vis := worklist.Fields(key)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, it := range worklist.Resort(c.Works, key) {
				line := it.Date + "\t" + it.Title
				if vis.WordCount {
					line += fmt.Sprintf("\t%d words", it.WordCount)
				}
				if vis.Color {
					line += "\t" + it.Color
				}
				if _, err := fmt.Fprintln(tw, line); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "date", "sort key: date or words")
	return cmd
}
