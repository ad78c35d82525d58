package ports

import (
	"context"

	"github.com/pcasas/gramhound/internal/domain"
)

// Ledger records every probe outcome for stats and later review.
type Ledger interface {
	Record(ctx context.Context, res domain.CheckResult) error
	Stats(ctx context.Context) (map[domain.Status]int, error)
	RecentAvailable(ctx context.Context, limit int) ([]string, error)
	Close() error
}
