package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/signalctl/internal/traffic"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Output string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all traffic signals",
		Long: `Print all traffic signals in stored order.

Example:
  signalctl list
  signalctl list --output json
  signalctl list --backend sqlite --file ./signals.db -o yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSignals(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")

	return cmd
}

func listSignals(opts *ListOptions, cmd *cobra.Command) error {
	if !isValidOutput(opts.Output) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid output %q: must be one of %v", opts.Output, ValidOutputs))
	}

	st, err := openStore(commandContext(cmd.Context()), opts.Config)
	if err != nil {
		return err
	}
	defer closeStore(st)

	f := &OutputFormatter{Format: opts.Output, Writer: cmd.OutOrStdout()}
	return f.Signals(st.List())
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Output string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one traffic signal",
		Long: `Print the traffic signal with the given ID.

Exits with code 2 if no signal has that ID.

Example:
  signalctl show 12
  signalctl show 12 --output json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSignal(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")

	return cmd
}

func showSignal(opts *ShowOptions, arg string, cmd *cobra.Command) error {
	if !isValidOutput(opts.Output) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid output %q: must be one of %v", opts.Output, ValidOutputs))
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid signal id %q", arg))
	}

	st, err := openStore(commandContext(cmd.Context()), opts.Config)
	if err != nil {
		return err
	}
	defer closeStore(st)

	f := &OutputFormatter{Format: opts.Output, Writer: cmd.OutOrStdout()}
	sig, ok := st.Find(id)
	if !ok {
		if opts.Output != "text" {
			if err := f.Error("NOT_FOUND", fmt.Sprintf("signal %d not found", id)); err != nil {
				return err
			}
		}
		return WrapExitError(ExitCommandError, fmt.Sprintf("signal %d", id), traffic.ErrNotFound)
	}
	return f.Signal(sig)
}
