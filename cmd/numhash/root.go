package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Neumenon/numhash/internal/logging"
)

var (
	// Version is the build-time version. Override with:
	//   -ldflags "-X main.Version=v1.2.3"
	Version = "dev"
)

// CmdOption is a functional option for configuring command dependencies.
type CmdOption func(*CmdDeps)

// CmdDeps holds injectable dependencies for commands.
type CmdDeps struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Logger overrides the logger built from --verbose/--debug/--log-json.
	Logger *slog.Logger

	Config Config

	flags globalFlags
}

type globalFlags struct {
	CfgFile string
	Verbose bool
	Debug   bool
	LogJSON bool
}

// WithIO sets stdin/stdout/stderr for commands.
func WithIO(in io.Reader, out, errOut io.Writer) CmdOption {
	return func(d *CmdDeps) {
		d.In = in
		d.Out = out
		d.Err = errOut
	}
}

// WithLogger injects a logger, bypassing the logging flags.
func WithLogger(lg *slog.Logger) CmdOption {
	return func(d *CmdDeps) {
		d.Logger = lg
	}
}

func applyCmdOptions(opts ...CmdOption) *CmdDeps {
	deps := &CmdDeps{Config: DefaultConfig()}
	for _, o := range opts {
		if o != nil {
			o(deps)
		}
	}
	return deps
}

// NewRootCmd builds the root command and wires up subcommands.
func NewRootCmd(options ...CmdOption) *cobra.Command {
	deps := applyCmdOptions(options...)
	injected := deps.Logger

	root := &cobra.Command{
		Use:   "numhash",
		Short: "numhash - precision-tolerant content hashes for numeric data",
		Long: `numhash hashes JSON and YAML documents so that values differing only by
floating-point noise produce the same digest. The lowest mantissa bits of
every float are cleared before hashing (12 by default).`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if deps.flags.CfgFile != "" {
				cfg, err := LoadConfig(deps.flags.CfgFile)
				if err != nil {
					return err
				}
				deps.Config = cfg
			}
			if err := deps.Config.applyFlags(cmd.Flags()); err != nil {
				return err
			}

			if injected != nil {
				deps.Logger = injected
			} else {
				deps.Logger = logging.New(logging.Config{
					Out:   deps.Err,
					Level: logging.LevelFor(deps.flags.Verbose, deps.flags.Debug),
					JSON:  deps.flags.LogJSON,
				})
			}
			deps.Logger.Debug("config resolved",
				slog.Uint64("precision_bits", uint64(deps.Config.PrecisionBits)),
				slog.Int("max_depth", deps.Config.MaxDepth),
				slog.String("format", deps.Config.Format),
				slog.Int("jobs", deps.Config.Jobs),
			)
			cmd.SetContext(logging.WithLogger(cmd.Context(), deps.Logger))
			return deps.Config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetIn(deps.In)
	root.SetOut(deps.Out)
	root.SetErr(deps.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&deps.flags.CfgFile, "config", "", "YAML config file")
	pf.BoolVarP(&deps.flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&deps.flags.Debug, "debug", "d", false, "enable debug output")
	pf.BoolVar(&deps.flags.LogJSON, "log-json", false, "write logs as JSON")
	pf.Uint(flagPrecision, deps.Config.PrecisionBits, "low mantissa bits cleared from every float (0-52)")
	pf.Int(flagMaxDepth, deps.Config.MaxDepth, "maximum container nesting depth")

	root.AddCommand(
		newSumCmd(deps),
		newTruncateCmd(deps),
		newDemoCmd(deps),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), "numhash "+Version+"\n")
			return err
		},
	}
}
