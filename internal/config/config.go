package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/ghintake/internal/util"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ghintake", "config.yml")
}

// Path returns the config file in use: GHINTAKE_CONFIG if set, otherwise
// DefaultPath.
func Path() string {
	if p := os.Getenv("GHINTAKE_CONFIG"); p != "" {
		return util.ExpandHome(p)
	}
	return DefaultPath()
}

// Load reads the config from disk and env. A missing file is fine: every
// setting can come from the environment.
func Load() (*Config, error) {
	v := viper.New()

	// Keys without a real default are still registered so AutomaticEnv
	// reaches them during Unmarshal.
	v.SetDefault("github.owner", "")
	v.SetDefault("github.repo", "")
	v.SetDefault("github.branch", "")
	v.SetDefault("intake.list_path", "")
	v.SetDefault("intake.image_dir", "")
	v.SetDefault("log.filename", "")
	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.token_env", "GITHUB_TOKEN")
	v.SetDefault("github.backend", BackendAPI)
	v.SetDefault("github.timeout", "60s")
	v.SetDefault("serve.host", "")
	v.SetDefault("serve.port", 3000)
	v.SetDefault("serve.body_limit", "10M")
	v.SetDefault("intake.kind", "prices")
	v.SetDefault("intake.max_attempts", 3)
	v.SetDefault("log.mode", "production")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)

	v.SetEnvPrefix("GHINTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Hosting platforms hand the port over as plain PORT.
	_ = v.BindEnv("serve.port", "GHINTAKE_SERVE_PORT", "PORT")

	v.SetConfigFile(Path())
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve token from env (never stored in file).
	tokenEnv := cfg.GitHub.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
		cfg.GitHub.TokenEnv = tokenEnv
	}
	cfg.GitHub.Token = os.Getenv(tokenEnv)
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GHINTAKE_GITHUB_TOKEN")
	}

	return &cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
