package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/signalctl/internal/traffic"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (save error, unexpected I/O)
	ExitCommandError = 2 // Command error (bad flags or config, unknown signal, unreadable store)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ValidOutputs defines the allowed output formats for list and show.
var ValidOutputs = []string{"text", "json", "yaml"}

func isValidOutput(output string) bool {
	return slices.Contains(ValidOutputs, output)
}

// OutputFormatter renders signals as text, JSON or YAML.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// signalView is the machine-readable shape of a signal, including the
// derived congestion flag.
type signalView struct {
	ID        int    `json:"id" yaml:"id"`
	Location  string `json:"location" yaml:"location"`
	Density   int    `json:"density" yaml:"density"`
	Timing    int    `json:"timing" yaml:"timing"`
	Congested bool   `json:"congested" yaml:"congested"`
}

func viewOf(s traffic.Signal) signalView {
	return signalView{
		ID:        s.ID,
		Location:  s.Location,
		Density:   s.Density,
		Timing:    s.Timing,
		Congested: s.Congested(),
	}
}

// Signals outputs a list of signals.
func (f *OutputFormatter) Signals(signals []traffic.Signal) error {
	if f.Format == "text" {
		if len(signals) == 0 {
			fmt.Fprintln(f.Writer, "No traffic signals registered.")
			return nil
		}
		for _, s := range signals {
			fmt.Fprintln(f.Writer, s)
		}
		return nil
	}

	views := make([]signalView, len(signals))
	for i, s := range signals {
		views[i] = viewOf(s)
	}
	return f.encode(CLIResponse{Status: "ok", Data: views})
}

// Signal outputs a single signal.
func (f *OutputFormatter) Signal(s traffic.Signal) error {
	if f.Format == "text" {
		fmt.Fprintln(f.Writer, s)
		return nil
	}
	return f.encode(CLIResponse{Status: "ok", Data: viewOf(s)})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "text" {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		return nil
	}
	return f.encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message},
	})
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid output %q: must be one of %v", f.Format, ValidOutputs)
	}
}
