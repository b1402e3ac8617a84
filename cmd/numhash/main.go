// numhash - precision-tolerant content hashes for numeric data
//
// Usage:
//
//	numhash sum [options] [file...]     Print the digest of each JSON/YAML document
//	numhash truncate [--precision=N] x  Show how floats are truncated before hashing
//	numhash demo                        Print digests of near-equal example values
//	numhash version                     Print version info
//
// Inputs may be zstd or lz4 compressed. If no file is given, reads from stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	code, err := run(context.Background(), os.Args[1:])
	if err != nil && code != exitPartial {
		fmt.Fprintf(os.Stderr, "numhash: %v\n", err)
	}
	os.Exit(code)
}

const (
	exitOK      = 0
	exitFailure = 1
	// exitPartial means some inputs failed; the failures were already reported.
	exitPartial = 2
	exitSignal  = 130
)

func run(ctx context.Context, args []string) (int, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(WithIO(os.Stdin, os.Stdout, os.Stderr))
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var pe *partialError
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return exitSignal, err
		case errors.As(err, &pe):
			return exitPartial, err
		default:
			return exitFailure, err
		}
	}
	return exitOK, nil
}
