package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ghintake/internal/config"
	"github.com/blackwell-systems/ghintake/internal/logging"
	"github.com/blackwell-systems/ghintake/internal/server"
	"github.com/blackwell-systems/ghintake/internal/store"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var (
		port int
		kind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the form intake HTTP server",
		Long: `Starts the HTTP server. POST /submit accepts multipart or urlencoded form
data, commits the optional "image" file and appends one record to the list
file in the configured repository.`,
		Example: `  ghintake serve
  ghintake serve --kind catalog --port 8080
  GHINTAKE_GITHUB_BACKEND=memory ghintake serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Serve.Port = port
			}
			if cmd.Flags().Changed("kind") {
				cfg.Intake.Kind = kind
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logging.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer func() { _ = log.Sync() }()
			zap.ReplaceGlobals(log)

			st := buildStore(cfg)
			svc, err := buildService(cfg, st, log)
			if err != nil {
				return err
			}

			if cfg.GitHub.Backend == config.BackendMemory {
				warn("Using in-memory backend: submissions are lost on exit")
			} else {
				checkRepoAccess(cmd.Context(), log)
			}

			e := server.New(svc, server.Options{
				BodyLimit: cfg.Serve.BodyLimit,
				Logger:    log,
			})

			return run(cmd.Context(), e, cfg.Serve.Addr(), log, st)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides serve.port and PORT)")
	cmd.Flags().StringVar(&kind, "kind", "", "Form kind: prices or catalog")
	return cmd
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger, st store.Store) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", addr),
			zap.String("store", fmt.Sprint(st)),
			zap.String("kind", cfg.Intake.Kind),
			zap.String("list", cfg.Intake.EffectiveListPath()),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, open := <-errCh:
		if open {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// checkRepoAccess warns when the token cannot push to the target repository.
// Failures here never stop the server.
func checkRepoAccess(ctx context.Context, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	repo, err := newGitHubClient(cfg).GetRepo(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo)
	if err != nil {
		log.Warn("repository check failed",
			zap.String("repo", cfg.GitHub.Owner+"/"+cfg.GitHub.Repo),
			zap.Error(err),
		)
		return
	}
	if !repo.Permissions.Push {
		log.Warn("token has no push access", zap.String("repo", repo.FullName))
	}
}
