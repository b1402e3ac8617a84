package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Neumenon/numhash/internal/logging"
	"github.com/Neumenon/numhash/internal/source"
	"github.com/Neumenon/numhash/numhash"
)

// partialError reports that some inputs could not be hashed. Each failure
// has already been written to stderr.
type partialError struct {
	Failed int
	Total  int
}

func (e *partialError) Error() string {
	return fmt.Sprintf("%d of %d inputs failed", e.Failed, e.Total)
}

type sumResult struct {
	digest numhash.Digest
	err    error
}

func newSumCmd(deps *CmdDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "Print the digest of each JSON or YAML document",
		Long: `Print "<digest>  <name>" for each input, in argument order.

Inputs may be zstd or lz4 compressed. The document format is taken from
the file extension (.json, .yaml, .yml) unless --format is given; inputs
without a known extension are sniffed. "-" or no arguments reads stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{source.StdinName}
			}
			return runSum(cmd.Context(), deps, args)
		},
	}

	f := cmd.Flags()
	f.StringP(flagFormat, "f", deps.Config.Format, "input format: auto, json or yaml")
	f.IntP(flagJobs, "j", deps.Config.Jobs, "number of inputs hashed concurrently")
	f.Bool(flagPack, deps.Config.PackArrays, "hash lists of plain numbers as numeric arrays")
	f.Bool(flagPlain, !deps.Config.Extended, `treat "$numhash" marker objects as ordinary maps`)
	return cmd
}

func runSum(ctx context.Context, deps *CmdDeps, names []string) error {
	lg := logging.FromContext(ctx)
	format, err := source.ParseFormat(deps.Config.Format)
	if err != nil {
		return err
	}
	hashOpts := deps.Config.HashOptions()
	bridgeOpts := deps.Config.BridgeOptions()

	results := make([]sumResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deps.Config.Jobs)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			d, err := sumOne(deps, name, format, bridgeOpts, hashOpts)
			results[i] = sumResult{digest: d, err: err}
			if err == nil {
				lg.Debug("hashed",
					slog.String("input", name),
					slog.String("digest", d.Hex()),
					slog.Duration("took", time.Since(start)),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			lg.Info("hash failed", slog.String("input", names[i]), slog.Any("error", r.err))
			fmt.Fprintf(deps.Err, "numhash: %v\n", r.err)
			continue
		}
		fmt.Fprintf(deps.Out, "%s  %s\n", r.digest.Hex(), escapeName(names[i]))
	}
	lg.Info("sum complete", slog.Int("inputs", len(names)), slog.Int("failed", failed))

	if failed > 0 {
		return &partialError{Failed: failed, Total: len(names)}
	}
	return nil
}

func sumOne(deps *CmdDeps, name string, format source.Format, bo numhash.BridgeOpts, ho numhash.Options) (numhash.Digest, error) {
	in, err := source.Read(name, deps.In, format)
	if err != nil {
		return numhash.Digest{}, err
	}
	v, err := in.Value(bo)
	if err != nil {
		return numhash.Digest{}, err
	}
	d, err := numhash.HashWithOpts(v, ho)
	if err != nil {
		return numhash.Digest{}, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// escapeName keeps one result per line for names containing newlines.
func escapeName(name string) string {
	if !strings.ContainsAny(name, "\n\\") {
		return name
	}
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(name)
}
