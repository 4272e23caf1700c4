package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the top-level ghintake configuration.
type Config struct {
	GitHub GitHubConfig `mapstructure:"github" yaml:"github"`
	Serve  ServeConfig  `mapstructure:"serve" yaml:"serve"`
	Intake IntakeConfig `mapstructure:"intake" yaml:"intake"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// GitHubConfig holds the target repository and API connection settings.
type GitHubConfig struct {
	Owner    string        `mapstructure:"owner" yaml:"owner"`
	Repo     string        `mapstructure:"repo" yaml:"repo"`
	Branch   string        `mapstructure:"branch" yaml:"branch,omitempty"`
	TokenEnv string        `mapstructure:"token_env" yaml:"token_env"`
	APIBase  string        `mapstructure:"api_base" yaml:"api_base"`
	Backend  string        `mapstructure:"backend" yaml:"backend"` // "api" or "memory"
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Token    string        `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// ServeConfig holds HTTP listener settings.
type ServeConfig struct {
	Host      string `mapstructure:"host" yaml:"host"`
	Port      int    `mapstructure:"port" yaml:"port"`
	BodyLimit string `mapstructure:"body_limit" yaml:"body_limit"`
}

// IntakeConfig selects the form schema and where its files live.
type IntakeConfig struct {
	Kind        string `mapstructure:"kind" yaml:"kind"` // "prices" or "catalog"
	ListPath    string `mapstructure:"list_path" yaml:"list_path,omitempty"`
	ImageDir    string `mapstructure:"image_dir" yaml:"image_dir,omitempty"`
	MaxAttempts int    `mapstructure:"max_attempts" yaml:"max_attempts"`
}

// LogConfig configures the zap logger and optional file rotation.
type LogConfig struct {
	Mode       string `mapstructure:"mode" yaml:"mode"` // "production" or "development"
	Level      string `mapstructure:"level" yaml:"level"`
	Filename   string `mapstructure:"filename" yaml:"filename,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// Backends.
const (
	BackendAPI    = "api"
	BackendMemory = "memory"
)

// EffectiveListPath returns the configured record list path or the kind's
// default.
func (i *IntakeConfig) EffectiveListPath() string {
	if i.ListPath != "" {
		return i.ListPath
	}
	if i.Kind == "catalog" {
		return "submissions.json"
	}
	return "prices.json"
}

// EffectiveImageDir returns the configured image directory or the kind's
// default.
func (i *IntakeConfig) EffectiveImageDir() string {
	if i.ImageDir != "" {
		return i.ImageDir
	}
	if i.Kind == "catalog" {
		return "images/submissions"
	}
	return "images"
}

// Addr is the listen address.
func (s *ServeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Intake.Kind != "prices" && c.Intake.Kind != "catalog" {
		errs = append(errs, fmt.Errorf("intake.kind must be \"prices\" or \"catalog\", got %q", c.Intake.Kind))
	}
	switch c.GitHub.Backend {
	case BackendMemory:
	case BackendAPI, "":
		if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
			errs = append(errs, errors.New("github.owner and github.repo are required"))
		}
		if c.GitHub.Token == "" {
			errs = append(errs, fmt.Errorf("no GitHub token found — set %s or GHINTAKE_GITHUB_TOKEN", c.GitHub.TokenEnv))
		}
	default:
		errs = append(errs, fmt.Errorf("github.backend must be %q or %q, got %q", BackendAPI, BackendMemory, c.GitHub.Backend))
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		errs = append(errs, fmt.Errorf("serve.port out of range: %d", c.Serve.Port))
	}
	return errors.Join(errs...)
}
