package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config search away from the developer's real files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("file", "", "")
	fs.String("format", "jsonl", "")
	fs.String("backend", BackendFile, "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "traffic_signals.jsonl", cfg.File)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file: /var/lib/signals.txt\nformat: csv\nverbose: true\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/signals.txt", cfg.File)
	assert.Equal(t, "csv", cfg.Format)
	assert.True(t, cfg.Verbose)
}

func TestLoad_DiscoversConfigInWorkingDir(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("signalctl.yaml", []byte("backend: sqlite\n"), 0644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "traffic_signals.db", cfg.File)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("signalctl.yaml", []byte("format: csv\n"), 0644))
	t.Setenv("SIGNALCTL_FORMAT", "jsonl")
	t.Setenv("SIGNALCTL_FILE", "env.jsonl")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, "env.jsonl", cfg.File)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SIGNALCTL_FORMAT", "jsonl")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--format", "csv", "-v"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "traffic_signals.txt", cfg.File)
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsKeepFileValues(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("signalctl.yaml", []byte("format: csv\n"), 0644))

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid file", cfg: Config{File: "a.jsonl", Format: "jsonl", Backend: BackendFile}},
		{name: "valid sqlite ignores format", cfg: Config{File: "a.db", Format: "", Backend: BackendSQLite}},
		{name: "empty file", cfg: Config{File: " ", Format: "jsonl", Backend: BackendFile}, wantErr: "file is required"},
		{name: "bad backend", cfg: Config{File: "a", Format: "jsonl", Backend: "redis"}, wantErr: "invalid backend"},
		{name: "bad format", cfg: Config{File: "a", Format: "xml", Backend: BackendFile}, wantErr: "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "traffic_signals.db", DefaultPath(BackendSQLite, "csv"))
	assert.Equal(t, "traffic_signals.txt", DefaultPath(BackendFile, "csv"))
	assert.Equal(t, "traffic_signals.jsonl", DefaultPath(BackendFile, "jsonl"))
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
