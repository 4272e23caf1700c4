package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/ghintake/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	t.Setenv("GHINTAKE_CONFIG", path)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GHINTAKE_GITHUB_TOKEN", "")
	t.Setenv("PORT", "")
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Serve.Port)
	}
	if cfg.Intake.Kind != "prices" || cfg.Intake.MaxAttempts != 3 {
		t.Errorf("Intake = %+v", cfg.Intake)
	}
	if cfg.GitHub.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v", cfg.GitHub.Timeout)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.GitHub.Token)
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "ghp_x")
	t.Setenv("PORT", "8081")
	t.Setenv("GHINTAKE_GITHUB_OWNER", "alice")
	t.Setenv("GHINTAKE_INTAKE_KIND", "catalog")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHub.Token != "ghp_x" {
		t.Errorf("Token = %q", cfg.GitHub.Token)
	}
	if cfg.Serve.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Serve.Port)
	}
	if cfg.GitHub.Owner != "alice" || cfg.Intake.Kind != "catalog" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_CustomTokenEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GHINTAKE_GITHUB_TOKEN_ENV", "FORM_TOKEN")
	t.Setenv("FORM_TOKEN", "secret")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHub.Token != "secret" {
		t.Errorf("Token = %q, want secret", cfg.GitHub.Token)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := isolate(t)
	in := &config.Config{
		GitHub: config.GitHubConfig{Owner: "alice", Repo: "db", Branch: "data", TokenEnv: "GITHUB_TOKEN",
			APIBase: "https://api.github.com", Backend: "api", Timeout: 30 * time.Second, Token: "must-not-persist"},
		Serve:  config.ServeConfig{Port: 9000, BodyLimit: "5M"},
		Intake: config.IntakeConfig{Kind: "catalog", MaxAttempts: 2},
		Log:    config.LogConfig{Mode: "development", Level: "debug"},
	}
	if err := config.Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) == "" {
		t.Fatal("empty config file")
	}
	if strings.Contains(string(raw), "must-not-persist") {
		t.Error("token written to config file")
	}

	out, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.GitHub.Repo != "db" || out.GitHub.Branch != "data" || out.GitHub.Timeout != 30*time.Second {
		t.Errorf("GitHub = %+v", out.GitHub)
	}
	if out.Serve.Port != 9000 || out.Intake.Kind != "catalog" || out.Intake.MaxAttempts != 2 {
		t.Errorf("cfg = %+v", out)
	}
}

func TestLoad_BadFile(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("github: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(); err == nil {
		t.Error("expected error for malformed config file")
	}
}
