package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/ghintake/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		owner    string
		repoName string
		branch   string
		kind     string
		listPath string
		imageDir string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file for a target repository",
		Long: `Write a ghintake config file.

ghintake uses a GitHub repository as its database:
  • Records live in one JSON list file (tracked in Git)
  • Uploaded images are committed next to it under an image directory
  • Every submission is one or two commits

The token is never written to the config file. It is read at runtime from
the environment variable named by github.token_env (GITHUB_TOKEN unless
changed).`,
		Example: `  # Price list in alice/collector-db
  ghintake init --owner alice --repo collector-db

  # Community catalog on a dedicated branch
  ghintake init --owner alice --repo collector-db --kind catalog --branch data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateInitParams(owner, repoName, kind); err != nil {
				return err
			}

			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg.GitHub.Owner = owner
			cfg.GitHub.Repo = repoName
			cfg.GitHub.Branch = branch
			cfg.Intake.Kind = kind
			cfg.Intake.ListPath = listPath
			cfg.Intake.ImageDir = imageDir

			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			displayInitSuccess(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "GitHub owner of the target repository")
	cmd.Flags().StringVar(&repoName, "repo", "", "Target repository name")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to commit to (default: repository default branch)")
	cmd.Flags().StringVar(&kind, "kind", "prices", "Form kind: prices or catalog")
	cmd.Flags().StringVar(&listPath, "list-path", "", "Record list path (default depends on kind)")
	cmd.Flags().StringVar(&imageDir, "image-dir", "", "Image directory (default depends on kind)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func validateInitParams(owner, repoName, kind string) error {
	if owner == "" {
		return fmt.Errorf("--owner is required (run 'ghintake init --help' for examples)")
	}
	if repoName == "" {
		return fmt.Errorf("--repo is required (run 'ghintake init --help' for examples)")
	}
	if kind != "prices" && kind != "catalog" {
		return fmt.Errorf("--kind must be prices or catalog, got %q", kind)
	}
	return nil
}

func displayInitSuccess(path string) {
	ok("Wrote %s", path)
	fmt.Printf("  %-10s %s/%s\n", "repo:", cfg.GitHub.Owner, cfg.GitHub.Repo)
	fmt.Printf("  %-10s %s\n", "list:", cfg.Intake.EffectiveListPath())
	fmt.Printf("  %-10s %s\n", "images:", cfg.Intake.EffectiveImageDir())

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. export %s=<token with contents:write>\n", cfg.GitHub.TokenEnv)
	fmt.Printf("  2. %s\n", color.CyanString("ghintake check --fix"))
	fmt.Printf("  3. %s\n", color.CyanString("ghintake serve"))
}
