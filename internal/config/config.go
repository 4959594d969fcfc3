package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("codeorbit version %s, commit %s, built at %s", version, commit, date)
}

const (
	// DefaultBaseURL is the local development API origin.
	DefaultBaseURL = "http://localhost:5000"

	defaultSessionPath = "~/.config/codeorbit/session.json"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig describes the backend the client talks to.
type APIConfig struct {
	// BaseURL is the API origin. Call paths are resolved against BaseURL + "/api".
	BaseURL   string `json:"base_url" mapstructure:"base_url"`
	UserAgent string `json:"user_agent" mapstructure:"user_agent"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // table, json, yaml
	// Quiet disables the terminal spinner.
	Quiet bool `mapstructure:"quiet"`
}

// InitFlags registers the global flags on the given flag set (without parsing)
func InitFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "", "CodeOrbit API origin (default "+DefaultBaseURL+")")
	fs.String("session-file", "", "Path to the persisted session file")
	fs.String("log-level", "", "Log level (debug|info|warn|error)")
	fs.StringP("format", "o", "", "Output format (table|json|yaml)")
	fs.BoolP("quiet", "q", false, "Do not show the loading spinner")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.user_agent", "codeorbit-cli/"+version)
	v.SetDefault("session.path", defaultSessionPath)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.disable_stacktrace", true)
	v.SetDefault("output.format", "table")
}

// Load reads configuration from ./config.yaml or ~/.config/codeorbit/config.yaml
// (both optional), CODEORBIT_* environment variables and the given flags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CODEORBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "codeorbit"))
	}

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Flags override file and environment values
	if apiURL := v.GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if sessionFile := v.GetString("session-file"); sessionFile != "" {
		cfg.Session.Path = sessionFile
	}
	if level := v.GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if format := v.GetString("format"); format != "" {
		cfg.Output.Format = format
	}
	if v.GetBool("quiet") {
		cfg.Output.Quiet = true
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if !strings.Contains(c.API.BaseURL, "://") {
		c.API.BaseURL = "http://" + c.API.BaseURL
	}

	path, err := ExpandPath(c.Session.Path)
	if err != nil {
		return fmt.Errorf("session.path: %w", err)
	}
	c.Session.Path = path

	switch c.Output.Format {
	case "table", "json", "yaml":
	case "":
		c.Output.Format = "table"
	default:
		return fmt.Errorf("unsupported output format %q, expected table, json or yaml", c.Output.Format)
	}
	return nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultSessionPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
