package ports

import (
	"context"

	"github.com/pcasas/gramhound/internal/domain"
)

// Checker probes one candidate against the platform. Transport failures are
// reported inside the result (Status == StatusError), not as an error; the
// error return is reserved for context cancellation.
type Checker interface {
	Check(ctx context.Context, candidate string) (domain.CheckResult, error)
}
