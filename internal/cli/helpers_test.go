package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/signalctl/internal/codec"
	"github.com/roach88/signalctl/internal/store"
	"github.com/roach88/signalctl/internal/traffic"
)

// isolateConfig keeps tests away from any real signalctl.yaml.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateConfig(t)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// seedFile writes signals to a jsonl file in a temp dir and returns its path.
func seedFile(t *testing.T, signals ...traffic.Signal) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signals.jsonl")
	st := store.New(store.NewFileBackend(path, codec.JSONLines{}))
	for _, s := range signals {
		require.NoError(t, st.Register(context.Background(), s))
	}
	require.NoError(t, st.Persist(context.Background()))
	return path
}

// loadFile reads the signals stored in a jsonl file.
func loadFile(t *testing.T, path string) []traffic.Signal {
	t.Helper()
	st := store.New(store.NewFileBackend(path, codec.JSONLines{}))
	require.NoError(t, st.Load(context.Background()))
	return st.List()
}

func input(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), restoring the previous directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory %s: %v", prev, err)
		}
	})
}
