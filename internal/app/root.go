package app

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/ghintake/internal/config"
	"github.com/blackwell-systems/ghintake/internal/util"
)

var (
	cfg *config.Config

	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "ghintake",
	Short: "Commit form submissions into a GitHub repository",
	Long: `ghintake receives multipart form submissions and records them in a GitHub
repository used as a database.

Each submission may carry one image, committed under the configured image
directory, and always appends one record to a JSON list file in the same
repository. Writes to the list are conditional on the file's blob SHA, so
concurrent submissions never overwrite each other.`,
}

// Execute is the entry point called from main.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(appVersion),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/ghintake/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		// A missing .env is the normal case outside local development.
		_ = godotenv.Load()

		if flagConfig != "" {
			if err := os.Setenv("GHINTAKE_CONFIG", flagConfig); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newInitCmd(),
		newCheckCmd(),
		newRecordsCmd(),
		newVersionCmd(),
	)
}
