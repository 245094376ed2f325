package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/pkg/fragment"
	"github.com/dmitrymomot/folio/pkg/randomname"
	"github.com/dmitrymomot/folio/pkg/writingprompt"
)

type generateFlags struct {
	seed  uint64
	count int
	json  bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for reproducible output (0 picks a random seed)")
	cmd.Flags().IntVarP(&f.count, "count", "n", 1, "how many to generate")
	cmd.Flags().BoolVar(&f.json, "json", false, "print one JSON object per line with the drawn parts")
}

func (f *generateFlags) options() []fragment.Option {
	if f.seed == 0 {
		return nil
	}
	return []fragment.Option{fragment.WithSeed(f.seed)}
}

func (f *generateFlags) print(w io.Writer, next func() fragment.Result) error {
	if f.count < 1 {
		return fmt.Errorf("count must be positive, got %d", f.count)
	}
	enc := json.NewEncoder(w)
	for range f.count {
		res := next()
		if !f.json {
			if _, err := fmt.Fprintln(w, res.Text); err != nil {
				return err
			}
			continue
		}
		parts := make(map[string]string, len(res.Parts))
		for _, p := range res.Parts {
			parts[p.Slot] = p.Value
		}
		if err := enc.Encode(map[string]any{"text": res.Text, "parts": parts}); err != nil {
			return err
		}
	}
	return nil
}

func newNameCmd(a *app) *cobra.Command {
	var (
		flags generateFlags
		opts  randomname.Options
	)
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Generate wuxia character names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pools, err := a.namePools()
			if err != nil {
				return err
			}
			g, err := randomname.NewFromConfig(pools, flags.options()...)
			if err != nil {
				return err
			}
			return flags.print(cmd.OutOrStdout(), func() fragment.Result { return g.Generate(opts) })
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&opts.Middle, "middle", false, "add a middle name")
	cmd.Flags().BoolVar(&opts.Epithet, "epithet", false, "add an epithet")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	var (
		flags generateFlags
		opts  writingprompt.Options
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Generate writing prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pools, err := a.promptPools()
			if err != nil {
				return err
			}
			g, err := writingprompt.NewFromConfig(pools, flags.options()...)
			if err != nil {
				return err
			}
			return flags.print(cmd.OutOrStdout(), func() fragment.Result { return g.Generate(opts) })
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&opts.Twist, "twist", false, "add a twist")
	cmd.Flags().BoolVar(&opts.Shuffle, "shuffle", false, "shuffle the sentences")
	return cmd
}
