package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Neumenon/numhash/numhash"
)

func newTruncateCmd(deps *CmdDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "truncate x...",
		Short: "Show how floats are truncated before hashing",
		Long: `For each number, print the value left after the low --precision mantissa
bits are cleared, followed by both IEEE-754 bit patterns:

  <input> -> <truncated> (<input bits> -> <truncated bits>)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits := deps.Config.PrecisionBits
			for _, arg := range args {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("truncate: %q is not a number", arg)
				}
				t := numhash.TruncateFloat(x, bits)
				fmt.Fprintf(deps.Out, "%s -> %s (0x%016x -> 0x%016x)\n",
					formatFloat(x), formatFloat(t), math.Float64bits(x), math.Float64bits(t))
			}
			return nil
		},
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
