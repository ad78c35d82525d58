package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/infra/config"
	"github.com/pcasas/gramhound/internal/infra/logger"
	"github.com/pcasas/gramhound/internal/tui"
	"github.com/pcasas/gramhound/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cfgPath string

	cmd := &cobra.Command{
		Use:          "gramhound",
		Short:        "gramhound — hunt unregistered Instagram usernames",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cleanup, _ := logger.Setup(logger.Config{
				StateDir: cfg.StateDir,
				Debug:    debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			parts, closeParts, err := assemble(cfg)
			if err != nil {
				return err
			}
			defer closeParts()

			deps := tui.Deps{
				StartHunt: func(ctx context.Context, onEvent func(usecase.Event)) (usecase.Summary, error) {
					h := usecase.NewHunt(cfg, parts.checker, parts.sink,
						usecase.WithCheckpoint(parts.ckpt),
						usecase.WithLedger(parts.ledger),
						usecase.WithLogger(logger.L()),
						usecase.WithEvents(onEvent),
					)
					return h.Run(ctx)
				},
				Logger: logger.L(),
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to <state-dir>/logs/gramhound.log")
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default gramhound.yaml if present)")

	cmd.AddCommand(huntCmd(&debug, &cfgPath))
	cmd.AddCommand(statsCmd(&cfgPath))
	cmd.AddCommand(versionCmd())
	return cmd
}

// loadConfig reads .env (best-effort), then the YAML file and GRAMHOUND_*
// overrides.
func loadConfig(path string) (domain.Config, error) {
	_ = godotenv.Load()
	return config.Load(path)
}
