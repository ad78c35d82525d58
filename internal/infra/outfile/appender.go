// Package outfile implements ports.AvailableSink as a locked, deduplicating
// line appender.
package outfile

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/ports"
)

// Appender appends one username per line. Existing lines are loaded at open
// so a name is written exactly once across resumed runs.
type Appender struct {
	mu   sync.Mutex
	f    *os.File
	path string
	seen map[string]struct{}
}

func Open(path string) (*Appender, error) {
	seen := map[string]struct{}{}
	if b, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(string(b), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				seen[line] = struct{}{}
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, &domain.OpError{
			Op:   "outfile.read",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "outfile.open",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}

	return &Appender{f: f, path: path, seen: seen}, nil
}

var _ ports.AvailableSink = (*Appender)(nil)

func (a *Appender) Append(candidate string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.f == nil {
		return &domain.OpError{
			Op:   "outfile.append",
			Kind: domain.KindStorage,
			Path: a.path,
			Err:  os.ErrClosed,
		}
	}
	if _, dup := a.seen[candidate]; dup {
		return nil
	}

	w := bufio.NewWriter(a.f)
	if _, err := w.WriteString(candidate + "\n"); err != nil {
		return &domain.OpError{
			Op:   "outfile.append",
			Kind: domain.KindStorage,
			Path: a.path,
			Err:  err,
		}
	}
	if err := w.Flush(); err != nil {
		return &domain.OpError{
			Op:   "outfile.flush",
			Kind: domain.KindStorage,
			Path: a.path,
			Err:  err,
		}
	}

	a.seen[candidate] = struct{}{}
	return a.f.Sync()
}

func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.f == nil {
		return nil
	}
	err := a.f.Close()
	a.f = nil
	return err
}
