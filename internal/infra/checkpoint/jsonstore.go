// Package checkpoint persists the hunt's resume point as a small JSON file.
package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/ports"
)

const fileName = "checkpoint.json"

type payload struct {
	Last string `json:"last"`
}

// JSONStore writes the checkpoint atomically (tmp then rename) so a crash
// mid-save never leaves a corrupt resume point.
type JSONStore struct {
	dir string
}

func NewJSONStore(stateDir string) *JSONStore {
	return &JSONStore{dir: stateDir}
}

var _ ports.CheckpointStore = (*JSONStore)(nil)

func (s *JSONStore) path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns "" without error when no checkpoint exists yet.
func (s *JSONStore) Load() (string, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", &domain.OpError{
			Op:   "checkpoint.load",
			Kind: domain.KindStorage,
			Path: s.path(),
			Err:  err,
		}
	}

	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return "", &domain.OpError{
			Op:   "checkpoint.decode",
			Kind: domain.KindStorage,
			Path: s.path(),
			Err:  err,
		}
	}
	return p.Last, nil
}

func (s *JSONStore) Save(last string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "checkpoint.mkdir",
			Kind: domain.KindStorage,
			Path: s.dir,
			Err:  err,
		}
	}

	b, err := json.Marshal(payload{Last: last})
	if err != nil {
		return &domain.OpError{
			Op:   "checkpoint.marshal",
			Kind: domain.KindStorage,
			Path: s.path(),
			Err:  err,
		}
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "checkpoint.write",
			Kind: domain.KindStorage,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "checkpoint.rename",
			Kind: domain.KindStorage,
			Path: s.path(),
			Err:  err,
		}
	}
	return nil
}
