package ports

// AvailableSink records available usernames. Append must be safe for
// concurrent use and idempotent per name.
type AvailableSink interface {
	Append(candidate string) error
	Close() error
}
