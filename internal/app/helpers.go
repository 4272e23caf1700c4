package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ghintake/internal/config"
	"github.com/blackwell-systems/ghintake/internal/github"
	"github.com/blackwell-systems/ghintake/internal/intake"
	"github.com/blackwell-systems/ghintake/internal/store"
)

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

// newGitHubClient builds the API client from config.
func newGitHubClient(c *config.Config) *github.Client {
	return github.New(c.GitHub.Token, c.GitHub.APIBase, c.GitHub.Timeout)
}

// buildStore returns the configured backend. The memory backend starts
// with an empty record list so the prices kind can accept submissions.
func buildStore(c *config.Config) store.Store {
	if c.GitHub.Backend == config.BackendMemory {
		mem := store.NewMemory()
		mem.Seed(c.Intake.EffectiveListPath(), []byte("[]"))
		return mem
	}
	return store.NewGitHub(newGitHubClient(c), c.GitHub.Owner, c.GitHub.Repo, c.GitHub.Branch)
}

// buildService wires the intake service for the configured kind.
func buildService(c *config.Config, st store.Store, log *zap.Logger) (*intake.Service, error) {
	kind, err := intake.KindByName(c.Intake.Kind, c.Intake.EffectiveListPath(), c.Intake.EffectiveImageDir())
	if err != nil {
		return nil, err
	}
	return intake.NewService(st, kind,
		intake.WithMaxAttempts(c.Intake.MaxAttempts),
		intake.WithLogger(log),
	), nil
}
