package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/infra/ledger"
)

func statsCmd(cfgPath *string) *cobra.Command {
	var recent int

	c := &cobra.Command{
		Use:   "stats",
		Short: "Show per-status totals and recent finds from the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.StateDir, ledgerFile)
			if _, err := os.Stat(path); err != nil {
				return &domain.OpError{
					Op:   "cli.stats",
					Kind: domain.KindNotFound,
					Path: path,
					Err:  fmt.Errorf("no ledger yet, run a hunt first: %w", domain.ErrNotFound),
				}
			}

			led, err := ledger.Open(path)
			if err != nil {
				return err
			}
			defer led.Close()

			counts, err := led.Stats(cmd.Context())
			if err != nil {
				return err
			}

			total := 0
			for _, n := range counts {
				total += n
			}
			fmt.Fprintf(os.Stdout, "Checked:    %d\n", total)
			for _, st := range []domain.Status{
				domain.StatusAvailable,
				domain.StatusTaken,
				domain.StatusBlocked,
				domain.StatusUnknown,
				domain.StatusError,
			} {
				fmt.Fprintf(os.Stdout, "%-11s %d\n", string(st)+":", counts[st])
			}

			names, err := led.RecentAvailable(cmd.Context(), recent)
			if err != nil {
				return err
			}
			if len(names) > 0 {
				fmt.Fprintln(os.Stdout, "\nRecent finds:")
				for _, name := range names {
					fmt.Fprintf(os.Stdout, "  %s\n", name)
				}
			}
			return nil
		},
	}

	c.Flags().IntVar(&recent, "recent", 10, "How many recent finds to list")
	return c
}
