package domain

import (
	"fmt"
	"strings"
	"time"
)

// UsernamePlaceholder is replaced with the candidate when building the probe
// URL from Config.Endpoint.
const UsernamePlaceholder = "{username}"

// Config is the full hunt configuration, assembled from defaults,
// gramhound.yaml, environment overrides, and flags (in that order).
type Config struct {
	Threads int
	MinLen  int
	MaxLen  int

	// Endpoint is the profile URL pattern containing UsernamePlaceholder.
	Endpoint   string
	OutputPath string
	UserAgents []string

	// ConfirmTakenPath is an optional JSONPath applied to 200 bodies; when
	// set and the path yields nothing, the result downgrades to unknown
	// (login walls return 200 without profile data).
	ConfirmTakenPath string

	RequestTimeout  time.Duration
	DelayMin        time.Duration
	DelayMax        time.Duration
	BlockedCooldown time.Duration
	MaxAttempts     int
	RetryBase       time.Duration

	// StateDir holds the checkpoint, ledger, and logs.
	StateDir           string
	CheckpointInterval time.Duration
	LedgerEnabled      bool
}

// DefaultConfig provides the stock hunt parameters.
func DefaultConfig() Config {
	return Config{
		Threads:    5,
		MinLen:     1,
		MaxLen:     4,
		Endpoint:   "https://www.instagram.com/" + UsernamePlaceholder + "/",
		OutputPath: "available_instagram.txt",
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 14_0)",
			"Mozilla/5.0 (Linux; Android 11)",
		},
		RequestTimeout:     10 * time.Second,
		DelayMin:           800 * time.Millisecond,
		DelayMax:           1500 * time.Millisecond,
		BlockedCooldown:    90 * time.Second,
		MaxAttempts:        3,
		RetryBase:          2 * time.Second,
		StateDir:           ".gramhound",
		CheckpointInterval: 5 * time.Second,
		LedgerEnabled:      true,
	}
}

// Validate rejects configurations the hunt cannot run with.
func (c Config) Validate() error {
	fail := func(msg string) error {
		return &OpError{
			Op:   "config.validate",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("%s: %w", msg, ErrInvalidConfig),
		}
	}

	if c.Threads < 1 {
		return fail(fmt.Sprintf("threads must be >= 1, got %d", c.Threads))
	}
	if c.MinLen < MinUsernameLen || c.MaxLen > MaxUsernameLen || c.MinLen > c.MaxLen {
		return fail(fmt.Sprintf("length window [%d,%d] outside [%d,%d]", c.MinLen, c.MaxLen, MinUsernameLen, MaxUsernameLen))
	}
	if !strings.Contains(c.Endpoint, UsernamePlaceholder) {
		return fail(fmt.Sprintf("endpoint %q lacks %s placeholder", c.Endpoint, UsernamePlaceholder))
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fail("output path is empty")
	}
	if len(c.UserAgents) == 0 {
		return fail("user agent pool is empty")
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fail("delay window is inverted")
	}
	if c.MaxAttempts < 1 {
		return fail(fmt.Sprintf("max attempts must be >= 1, got %d", c.MaxAttempts))
	}
	return nil
}

// ProbeURL renders the endpoint pattern for a candidate.
func (c Config) ProbeURL(candidate string) string {
	return strings.ReplaceAll(c.Endpoint, UsernamePlaceholder, candidate)
}
