package cli

import (
	"os"
	"path/filepath"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/infra/checkpoint"
	"github.com/pcasas/gramhound/internal/infra/ledger"
	"github.com/pcasas/gramhound/internal/infra/outfile"
	"github.com/pcasas/gramhound/internal/infra/probe"
	"github.com/pcasas/gramhound/internal/ports"
)

const ledgerFile = "ledger.db"

type huntParts struct {
	checker ports.Checker
	sink    ports.AvailableSink
	ckpt    ports.CheckpointStore
	ledger  ports.Ledger // nil when disabled
}

// assemble wires the infra adapters for a hunt. The returned close func
// releases the sink and ledger.
func assemble(cfg domain.Config) (huntParts, func(), error) {
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return huntParts{}, nil, &domain.OpError{
			Op:   "cli.state_dir",
			Kind: domain.KindStorage,
			Path: cfg.StateDir,
			Err:  err,
		}
	}

	sink, err := outfile.Open(cfg.OutputPath)
	if err != nil {
		return huntParts{}, nil, err
	}

	parts := huntParts{
		checker: probe.New(cfg),
		sink:    sink,
		ckpt:    checkpoint.NewJSONStore(cfg.StateDir),
	}

	if cfg.LedgerEnabled {
		led, err := ledger.Open(filepath.Join(cfg.StateDir, ledgerFile))
		if err != nil {
			_ = sink.Close()
			return huntParts{}, nil, err
		}
		parts.ledger = led
	}

	closeParts := func() {
		_ = sink.Close()
		if parts.ledger != nil {
			_ = parts.ledger.Close()
		}
	}
	return parts, closeParts, nil
}
