package ports

// CheckpointStore persists the hunt's resume point.
type CheckpointStore interface {
	// Load returns the last dispatched candidate, or "" when no checkpoint
	// exists yet.
	Load() (string, error)
	Save(last string) error
}
