package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/infra/logger"
	"github.com/pcasas/gramhound/internal/usecase"
)

func huntCmd(debug *bool, cfgPath *string) *cobra.Command {
	var threads int
	var minLen int
	var maxLen int
	var out string
	var limit int
	var fresh bool
	var format string

	c := &cobra.Command{
		Use:   "hunt",
		Short: "Run a headless hunt and append finds to the output file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			// Flags override config only when set on the command line.
			if cmd.Flags().Changed("threads") {
				cfg.Threads = threads
			}
			if cmd.Flags().Changed("min-len") {
				cfg.MinLen = minLen
			}
			if cmd.Flags().Changed("max-len") {
				cfg.MaxLen = maxLen
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputPath = out
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cleanup, _ := logger.Setup(logger.Config{
				StateDir: cfg.StateDir,
				Debug:    *debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			parts, closeParts, err := assemble(cfg)
			if err != nil {
				return err
			}
			defer closeParts()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := usecase.NewHunt(cfg, parts.checker, parts.sink,
				usecase.WithCheckpoint(parts.ckpt),
				usecase.WithLedger(parts.ledger),
				usecase.WithLogger(logger.L()),
				usecase.WithEvents(printEvent(os.Stdout)),
				usecase.WithLimit(limit),
				usecase.WithFresh(fresh),
			)

			sum, runErr := h.Run(ctx)
			if runErr != nil && !usecase.IsCancelled(runErr) {
				return runErr
			}
			if usecase.IsCancelled(runErr) {
				fmt.Fprintln(os.Stdout, "interrupted — checkpoint saved")
			}

			return printSummary(os.Stdout, sum, format)
		},
	}

	c.Flags().IntVar(&threads, "threads", 0, "Number of worker threads")
	c.Flags().IntVar(&minLen, "min-len", 0, "Minimum candidate length")
	c.Flags().IntVar(&maxLen, "max-len", 0, "Maximum candidate length")
	c.Flags().StringVar(&out, "out", "", "Output file for available usernames")
	c.Flags().IntVar(&limit, "limit", 0, "Stop after checking N candidates (0 = exhaust)")
	c.Flags().BoolVar(&fresh, "fresh", false, "Ignore the checkpoint and start from the beginning")
	c.Flags().StringVar(&format, "format", "pretty", "Summary format: pretty|json")
	return c
}

func printEvent(w io.Writer) func(usecase.Event) {
	return func(ev usecase.Event) {
		switch ev.Kind {
		case usecase.EventCooldown:
			fmt.Fprintf(w, "[RATE LIMIT] cooling down until %s\n", ev.Until.Format(time.TimeOnly))
		case usecase.EventResult:
			res := ev.Result
			switch res.Status {
			case domain.StatusAvailable:
				fmt.Fprintf(w, "[AVAILABLE] %s\n", res.Candidate)
			case domain.StatusTaken:
				fmt.Fprintf(w, "[TAKEN] %s\n", res.Candidate)
			case domain.StatusError:
				fmt.Fprintf(w, "[ERROR] %s (%s)\n", res.Candidate, res.Err)
			default:
				fmt.Fprintf(w, "[%s] %s\n", res.Status, res.Candidate)
			}
		}
	}
}

func printSummary(w io.Writer, sum usecase.Summary, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"checked":        sum.Checked,
			"counts":         sum.Counts,
			"last_candidate": sum.LastCandidate,
			"started_at":     sum.StartedAt,
			"ended_at":       sum.EndedAt,
			"duration":       sum.EndedAt.Sub(sum.StartedAt).String(),
		}
		return enc.Encode(payload)
	case "pretty", "":
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Checked:    %d\n", sum.Checked)
		fmt.Fprintf(w, "Available:  %d\n", sum.Counts[domain.StatusAvailable])
		fmt.Fprintf(w, "Taken:      %d\n", sum.Counts[domain.StatusTaken])
		fmt.Fprintf(w, "Blocked:    %d\n", sum.Counts[domain.StatusBlocked])
		fmt.Fprintf(w, "Unknown:    %d\n", sum.Counts[domain.StatusUnknown])
		fmt.Fprintf(w, "Errors:     %d\n", sum.Counts[domain.StatusError])
		if sum.LastCandidate != "" {
			fmt.Fprintf(w, "Last:       %s\n", sum.LastCandidate)
		}
		fmt.Fprintf(w, "Duration:   %s\n", sum.EndedAt.Sub(sum.StartedAt).Truncate(time.Millisecond))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
