package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/christopherklint97/planr/internal/config"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/store"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "planr",
	Short:         "To-do list and weekly schedule with free-slot suggestions",
	Long:          "planr keeps your to-do list and weekly time blocks, and proposes free slots in your week for pending tasks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("owner", "", "Owner identifier (overrides user.owner and PLANR_OWNER)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app bundles what every command needs once config and storage are open.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	backend  store.Backend
	bookings *schedule.Store
	tasks    *todo.Service
	owner    string
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd, cfg)

	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		owner = cfg.User.Owner
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("no owner configured: pass --owner, set PLANR_OWNER, or run 'planr config --owner <id>'")
	}

	backend, err := store.Open(cmd.Context(), cfg.Storage.Driver, cfg.Storage.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	logger.Debug("storage opened", "driver", cfg.Storage.Driver, "owner", owner)

	return &app{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		bookings: schedule.NewStore(backend, logger),
		tasks:    todo.NewService(backend, logger),
		owner:    owner,
	}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("closing storage", "error", err)
	}
}

func withApp(run func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd.Context(), cmd, a, args)
	}
}
