package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, filepath.Join(home, ".config", "codeorbit", "session.json"), cfg.Session.Path)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("CODEORBIT_API_BASE_URL", "https://api.codeorbit.test/")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.codeorbit.test", cfg.API.BaseURL)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CODEORBIT_API_BASE_URL", "https://env.example")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	InitFlags(fs)
	require.NoError(t, fs.Parse([]string{"--api-url", "127.0.0.1:9000", "-o", "yaml", "-q"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.API.BaseURL)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.Output.Quiet)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	content := []byte("api:\n  base_url: https://file.example\noutput:\n  format: json\n")
	require.NoError(t, os.WriteFile("config.yaml", content, 0o600))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", cfg.API.BaseURL)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_RejectsUnknownOutputFormat(t *testing.T) {
	isolate(t)
	t.Setenv("CODEORBIT_OUTPUT_FORMAT", "xml")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	got, err := ExpandPath("~/custom/session.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "custom", "session.json"), got)
}
