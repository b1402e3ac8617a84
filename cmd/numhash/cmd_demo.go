package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Neumenon/numhash/numhash"
)

func newDemoCmd(deps *CmdDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print digests of near-equal example values",
		Long: `Hash pairs of values that differ only in low-order float bits (plus a
text/bytes pair) and print the digests. Within each group the digests
match at the default precision.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := deps.Config.HashOptions()
			group := ""
			for _, ex := range numhash.DemoExamples() {
				if ex.Group != group {
					if group != "" {
						fmt.Fprintln(deps.Out)
					}
					group = ex.Group
					fmt.Fprintf(deps.Out, "# %s\n", group)
				}
				d, err := numhash.HashWithOpts(ex.Value, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", ex.Label, err)
				}
				fmt.Fprintf(deps.Out, "%s  %s\n", d.Hex(), ex.Label)
			}
			return nil
		},
	}
}
