package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/signalctl/internal/lineio"
	"github.com/roach88/signalctl/internal/store"
	"github.com/roach88/signalctl/internal/traffic"
)

// Menu choices.
const (
	choiceRegister = iota + 1
	choiceList
	choiceUpdateDensity
	choiceUpdateTiming
	choiceDelete
	choiceExit
)

const menu = `
===== Smart Traffic Management System =====
1. Register a Traffic Signal
2. View All Signals
3. Update Traffic Density
4. Update Signal Timing
5. Delete a Traffic Signal
6. Exit
Enter your choice: `

var (
	// errEndOfInput ends the shell when standard input is exhausted.
	errEndOfInput = errors.New("end of input")

	// errInvalidNumber aborts the current operation on a non-integer answer.
	errInvalidNumber = errors.New("invalid number")

	// errInvalidLocation aborts a registration whose location cannot be stored.
	errInvalidLocation = errors.New("invalid location")
)

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu (default)",
		Long: `Open the interactive traffic signal menu.

The menu reads choices and values from standard input one line at a time and
exits on choice 6 or at end of input.

Example:
  signalctl shell --file ./signals.jsonl
  printf '2\n6\n' | signalctl shell`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd.Context())

	st, err := openStore(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer closeStore(st)

	slog.Info("shell started", "path", opts.Config.File, "signals", st.Len())
	sh := NewShell(st, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := sh.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "shell error", err)
	}
	slog.Info("shell stopped")
	return nil
}

// Shell is the interactive menu loop over a Store.
type Shell struct {
	store *store.Store
	in    *lineio.Reader
	out   io.Writer
}

// NewShell creates a shell reading from in and writing to out.
func NewShell(st *store.Store, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store: st,
		in:    lineio.NewReader(in, lineio.DefaultMaxLine),
		out:   out,
	}
}

// Run presents the menu until the exit choice or end of input.
// Operation errors are reported to the operator and never end the loop.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(sh.out, menu)
		line, err := sh.readLine()
		if errors.Is(err, lineio.ErrLineTooLong) {
			fmt.Fprintln(sh.out, "Invalid choice! Try again.")
			continue
		}
		if err != nil {
			return sh.finish(err)
		}

		choice, err := parseChoice(line)
		if err != nil {
			slog.Debug("rejected menu input", "error", err)
			fmt.Fprintln(sh.out, "Invalid choice! Try again.")
			continue
		}

		if choice == choiceExit {
			fmt.Fprintln(sh.out, "Exiting Smart Traffic Management System. Thank you!")
			return nil
		}

		err = sh.dispatch(ctx, choice)
		switch {
		case errors.Is(err, errInvalidNumber):
			fmt.Fprintln(sh.out, "Invalid number! Try again.")
		case errors.Is(err, errInvalidLocation):
			fmt.Fprintln(sh.out, "Invalid location! Try again.")
		case err != nil:
			return sh.finish(err)
		}
	}
}

// finish ends the loop. End of input is a clean exit.
func (sh *Shell) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		fmt.Fprintln(sh.out)
		fmt.Fprintln(sh.out, "Exiting Smart Traffic Management System. Thank you!")
		return nil
	}
	return err
}

func (sh *Shell) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case choiceRegister:
		return sh.register(ctx)
	case choiceList:
		sh.list()
		return nil
	case choiceUpdateDensity:
		return sh.updateDensity(ctx)
	case choiceUpdateTiming:
		return sh.updateTiming(ctx)
	case choiceDelete:
		return sh.delete(ctx)
	}
	return nil
}

func (sh *Shell) register(ctx context.Context) error {
	id, err := sh.promptInt("Enter Signal ID: ")
	if err != nil {
		return err
	}
	if _, exists := sh.store.Find(id); exists {
		fmt.Fprintln(sh.out, "Error! Signal ID already exists.")
		return nil
	}

	location, err := sh.prompt("Enter Location: ")
	if errors.Is(err, lineio.ErrLineTooLong) {
		return errInvalidLocation
	}
	if err != nil {
		return err
	}
	if traffic.ValidateLocation(location) != nil {
		return errInvalidLocation
	}
	density, err := sh.promptInt("Enter Initial Traffic Density (0-100%): ")
	if err != nil {
		return err
	}
	timing, err := sh.promptInt("Enter Green Light Duration (in seconds): ")
	if err != nil {
		return err
	}

	sig := traffic.Signal{ID: id, Location: location, Density: density, Timing: timing}
	if err := sh.store.Register(ctx, sig); err != nil {
		sh.reportFailure(err)
		return nil
	}
	slog.Debug("signal registered", "id", id)
	fmt.Fprintln(sh.out, "Traffic Signal registered successfully!")
	return nil
}

func (sh *Shell) list() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "===== Traffic Signals List =====")
	signals := sh.store.List()
	if len(signals) == 0 {
		fmt.Fprintln(sh.out, "No traffic signals registered.")
		return
	}
	for _, s := range signals {
		fmt.Fprintln(sh.out, s)
	}
}

func (sh *Shell) updateDensity(ctx context.Context) error {
	id, err := sh.promptInt("Enter Signal ID to update density: ")
	if err != nil {
		return err
	}
	if _, ok := sh.store.Find(id); !ok {
		fmt.Fprintln(sh.out, "Traffic signal not found!")
		return nil
	}

	density, err := sh.promptInt("Enter New Traffic Density (0-100%): ")
	if err != nil {
		return err
	}
	if err := sh.store.UpdateDensity(ctx, id, density); err != nil {
		sh.reportFailure(err)
		return nil
	}
	slog.Debug("density updated", "id", id, "density", density)
	fmt.Fprintln(sh.out, "Traffic density updated successfully!")
	return nil
}

func (sh *Shell) updateTiming(ctx context.Context) error {
	id, err := sh.promptInt("Enter Signal ID to update timing: ")
	if err != nil {
		return err
	}
	if _, ok := sh.store.Find(id); !ok {
		fmt.Fprintln(sh.out, "Traffic signal not found!")
		return nil
	}

	timing, err := sh.promptInt("Enter New Green Light Duration (in seconds): ")
	if err != nil {
		return err
	}
	if err := sh.store.UpdateTiming(ctx, id, timing); err != nil {
		sh.reportFailure(err)
		return nil
	}
	slog.Debug("timing updated", "id", id, "timing", timing)
	fmt.Fprintln(sh.out, "Signal timing updated successfully!")
	return nil
}

func (sh *Shell) delete(ctx context.Context) error {
	id, err := sh.promptInt("Enter Signal ID to delete: ")
	if err != nil {
		return err
	}
	if err := sh.store.Delete(ctx, id); err != nil {
		sh.reportFailure(err)
		return nil
	}
	slog.Debug("signal deleted", "id", id)
	fmt.Fprintln(sh.out, "Traffic signal deleted successfully!")
	return nil
}

// reportFailure prints the operator message for a failed store operation.
func (sh *Shell) reportFailure(err error) {
	switch {
	case traffic.IsNotFound(err):
		fmt.Fprintln(sh.out, "Traffic signal not found!")
	case traffic.IsDuplicate(err):
		fmt.Fprintln(sh.out, "Error! Signal ID already exists.")
	case traffic.IsInvalidLocation(err):
		fmt.Fprintln(sh.out, "Invalid location! Try again.")
	default:
		slog.Error("store operation failed", "error", err)
		fmt.Fprintln(sh.out, "Error! Could not save traffic signals.")
	}
}

func (sh *Shell) prompt(label string) (string, error) {
	fmt.Fprint(sh.out, label)
	return sh.readLine()
}

func (sh *Shell) promptInt(label string) (int, error) {
	line, err := sh.prompt(label)
	if errors.Is(err, lineio.ErrLineTooLong) {
		return 0, errInvalidNumber
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

// readLine returns the next input line. Overlong lines are reported as
// lineio.ErrLineTooLong and leave the reader positioned on the next line.
func (sh *Shell) readLine() (string, error) {
	line, err := sh.in.Next()
	switch {
	case err == nil:
		return string(line), nil
	case errors.Is(err, io.EOF):
		return "", errEndOfInput
	case errors.Is(err, lineio.ErrLineTooLong):
		return "", err
	default:
		return "", fmt.Errorf("read input: %w", err)
	}
}

func parseChoice(line string) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < choiceRegister || choice > choiceExit {
		return 0, &traffic.InvalidChoiceError{Input: line}
	}
	return choice, nil
}
