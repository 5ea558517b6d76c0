package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/signalctl/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	File       string
	Format     string // backing file codec: "jsonl" | "csv"
	Backend    string // "file" | "sqlite"
	Verbose    bool

	// Config is resolved in PersistentPreRunE before any command runs.
	Config *config.Config
}

// NewRootCommand creates the root command for the signalctl CLI.
// Running it without a subcommand starts the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "signalctl",
		Short: "signalctl - traffic signal record manager",
		Long: `A single-user record manager for traffic signals.

Each signal has an ID, a location, a congestion density and a green light
duration. Records are kept in a backing file that is rewritten after every
change. Run without a subcommand to open the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			opts.Config = cfg
			setupLogging(cmd.ErrOrStderr(), cfg.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./signalctl.yaml or $XDG_CONFIG_HOME/signalctl/signalctl.yaml)")
	cmd.PersistentFlags().StringVar(&opts.File, "file", "", "backing file or database path")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "jsonl", "backing file format (jsonl|csv)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", config.BackendFile, fmt.Sprintf("storage backend %v", config.ValidBackends))
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")

	// Add subcommands
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}
