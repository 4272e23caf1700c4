package app

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/ghintake/internal/config"
	"github.com/blackwell-systems/ghintake/internal/records"
	"github.com/blackwell-systems/ghintake/internal/store"
)

func newCheckCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the target repository and record list",
		Long:  "Checks that the repository exists, that the token can push to it, and that the record list file is present and parses as a JSON array.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			listPath := cfg.Intake.EffectiveListPath()
			anyFailed := false

			header("Target: %s/%s  (kind %s)", cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.Intake.Kind)

			// 1. Repo reachable and writable?
			if cfg.GitHub.Backend == config.BackendMemory {
				fmt.Printf("  %-12s %s\n", "repo:", color.YellowString("skipped (memory backend)"))
			} else {
				repo, err := newGitHubClient(cfg).GetRepo(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo)
				switch {
				case err != nil:
					fmt.Printf("  %-12s %s\n", "repo:", color.RedString("error: %v", err))
					return fmt.Errorf("repository %s/%s is not reachable", cfg.GitHub.Owner, cfg.GitHub.Repo)
				case !repo.Permissions.Push:
					fmt.Printf("  %-12s %s\n", "repo:", color.RedString("no push access"))
					anyFailed = true
				default:
					fmt.Printf("  %-12s %s  (default branch %s)\n", "repo:", color.GreenString("ok"), repo.DefaultBranch)
				}
			}

			// 2. List file present and parseable?
			st := buildStore(cfg)
			label := "list:"
			f, err := st.Read(ctx, listPath)
			switch {
			case errors.Is(err, store.ErrNotFound):
				fmt.Printf("  %-12s %s", label, color.YellowString("missing"))
				if fix {
					if _, err := st.Write(ctx, listPath, []byte("[]\n"), "Initialize "+listPath, ""); err != nil {
						fmt.Printf(" (fix failed: %v)\n", err)
						anyFailed = true
					} else {
						fmt.Printf(" %s\n", color.GreenString("created"))
					}
				} else {
					fmt.Printf(" (use --fix to create)\n")
					anyFailed = true
				}
			case err != nil:
				fmt.Printf("  %-12s %s\n", label, color.RedString("error: %v", err))
				anyFailed = true
			default:
				list := records.ParseList(f.Content)
				if len(list) == 0 && !records.IsList(f.Content) {
					fmt.Printf("  %-12s %s (not a JSON array, next submission starts a new list)\n", label, color.YellowString("unparseable"))
				} else {
					fmt.Printf("  %-12s %s (%d records)\n", label, color.GreenString("ok"), len(list))
				}
			}

			if anyFailed {
				return fmt.Errorf("target has issues (run with --fix to repair)")
			}
			ok("Ready to accept submissions at %s", listPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Create the record list file if it is missing")
	return cmd
}
