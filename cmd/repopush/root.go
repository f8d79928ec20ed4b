package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repopush/internal/api"
	"repopush/internal/config"
	"repopush/internal/eventbus"
	"repopush/internal/logging"
	"repopush/internal/ui/coordinator"
	"repopush/internal/ui/state"
	"repopush/internal/ui/views"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repopush",
		Short:         "Manage a PAT, register repositories and commit-and-push through the repository backend",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().String("config", "", "Configuration file (default $XDG_CONFIG_HOME/repopush/config.toml)")
	cmd.PersistentFlags().String("base-url", "", "Override the backend base URL")
	cmd.PersistentFlags().String("log-level", "", "Override the configured log level")

	cmd.AddCommand(
		newPatCmd(),
		newReposCmd(),
		newCommitCmd(),
		newConfigCmd(),
	)

	return cmd
}

// session is the wiring shared by every command that talks to the backend
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
}

func openSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewConfigServiceAt(path).Load()
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := logging.NewLoggerFactory().CreateLogger(
		logging.LogLevel(cfg.Log.Level),
		logging.LogFormat(cfg.Log.Format),
		cfg.Log.File,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create logger: %w", err)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("session opened",
		zap.String("command", cmd.CommandPath()),
		zap.String("base_url", cfg.Backend.BaseURL))

	return &session{cfg: cfg, logger: logger, client: client}, nil
}

func (s *session) coordinator(ctx context.Context, bus eventbus.EventBus) *coordinator.Coordinator {
	return coordinator.New(ctx, s.client, bus, s.logger)
}

func (s *session) Close() {
	_ = s.logger.Sync()
}

// operationError turns the surfaced error message into a command failure
func operationError(snap state.Snapshot) error {
	if snap.ErrorMessage != "" {
		return errors.New(snap.ErrorMessage)
	}
	return nil
}

// fieldError reports a locally rejected field
func fieldError(name string, f state.Field) error {
	if !f.Invalid() {
		return nil
	}
	return fmt.Errorf("%s: %s", name, views.FieldErrorText(f.Error))
}
