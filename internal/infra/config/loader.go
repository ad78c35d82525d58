// Package config assembles the hunt configuration: defaults, then
// gramhound.yaml, then GRAMHOUND_* environment overrides. Flags are applied
// last by the CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pcasas/gramhound/internal/domain"
)

const DefaultFile = "gramhound.yaml"

// Load reads path (DefaultFile when empty) over domain defaults and then
// applies environment overrides. A missing default file is not an error;
// an explicitly named missing file is.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		var dto yamlConfig
		if err := yaml.Unmarshal(b, &dto); err != nil {
			return domain.Config{}, &domain.OpError{
				Op:   "config.parse",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		if err := merge(&cfg, dto); err != nil {
			return domain.Config{}, err
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults apply.
	default:
		return domain.Config{}, &domain.OpError{
			Op:   "config.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func merge(cfg *domain.Config, dto yamlConfig) error {
	if dto.Threads != 0 {
		cfg.Threads = dto.Threads
	}
	if dto.MinLen != 0 {
		cfg.MinLen = dto.MinLen
	}
	if dto.MaxLen != 0 {
		cfg.MaxLen = dto.MaxLen
	}
	if dto.Endpoint != "" {
		cfg.Endpoint = dto.Endpoint
	}
	if dto.Output != "" {
		cfg.OutputPath = dto.Output
	}
	if len(dto.UserAgents) > 0 {
		cfg.UserAgents = dto.UserAgents
	}
	if dto.ConfirmTakenPath != "" {
		cfg.ConfirmTakenPath = dto.ConfirmTakenPath
	}
	if dto.MaxAttempts != 0 {
		cfg.MaxAttempts = dto.MaxAttempts
	}
	if dto.StateDir != "" {
		cfg.StateDir = dto.StateDir
	}
	if dto.Ledger != nil {
		cfg.LedgerEnabled = *dto.Ledger
	}

	for _, d := range []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{dto.RequestTimeout, "request_timeout", &cfg.RequestTimeout},
		{dto.DelayMin, "delay_min", &cfg.DelayMin},
		{dto.DelayMax, "delay_max", &cfg.DelayMax},
		{dto.BlockedCooldown, "blocked_cooldown", &cfg.BlockedCooldown},
		{dto.RetryBase, "retry_base", &cfg.RetryBase},
		{dto.CheckpointInterval, "checkpoint_interval", &cfg.CheckpointInterval},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return &domain.OpError{
				Op:   "config.parse",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%s: %w", d.name, err),
			}
		}
		*d.dst = v
	}

	return nil
}

// envOverrides maps GRAMHOUND_* variables onto the config. Pointer fields
// distinguish "unset" from zero.
type envOverrides struct {
	Threads          *int           `env:"GRAMHOUND_THREADS"`
	MinLen           *int           `env:"GRAMHOUND_MIN_LEN"`
	MaxLen           *int           `env:"GRAMHOUND_MAX_LEN"`
	Endpoint         *string        `env:"GRAMHOUND_ENDPOINT"`
	Output           *string        `env:"GRAMHOUND_OUTPUT"`
	ConfirmTakenPath *string        `env:"GRAMHOUND_CONFIRM_TAKEN_PATH"`
	RequestTimeout   *time.Duration `env:"GRAMHOUND_REQUEST_TIMEOUT"`
	DelayMin         *time.Duration `env:"GRAMHOUND_DELAY_MIN"`
	DelayMax         *time.Duration `env:"GRAMHOUND_DELAY_MAX"`
	BlockedCooldown  *time.Duration `env:"GRAMHOUND_BLOCKED_COOLDOWN"`
	MaxAttempts      *int           `env:"GRAMHOUND_MAX_ATTEMPTS"`
	StateDir         *string        `env:"GRAMHOUND_STATE_DIR"`
	Ledger           *bool          `env:"GRAMHOUND_LEDGER"`
}

func applyEnv(cfg *domain.Config) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return &domain.OpError{
			Op:   "config.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	if ov.Threads != nil {
		cfg.Threads = *ov.Threads
	}
	if ov.MinLen != nil {
		cfg.MinLen = *ov.MinLen
	}
	if ov.MaxLen != nil {
		cfg.MaxLen = *ov.MaxLen
	}
	if ov.Endpoint != nil {
		cfg.Endpoint = *ov.Endpoint
	}
	if ov.Output != nil {
		cfg.OutputPath = *ov.Output
	}
	if ov.ConfirmTakenPath != nil {
		cfg.ConfirmTakenPath = *ov.ConfirmTakenPath
	}
	if ov.RequestTimeout != nil {
		cfg.RequestTimeout = *ov.RequestTimeout
	}
	if ov.DelayMin != nil {
		cfg.DelayMin = *ov.DelayMin
	}
	if ov.DelayMax != nil {
		cfg.DelayMax = *ov.DelayMax
	}
	if ov.BlockedCooldown != nil {
		cfg.BlockedCooldown = *ov.BlockedCooldown
	}
	if ov.MaxAttempts != nil {
		cfg.MaxAttempts = *ov.MaxAttempts
	}
	if ov.StateDir != nil {
		cfg.StateDir = *ov.StateDir
	}
	if ov.Ledger != nil {
		cfg.LedgerEnabled = *ov.Ledger
	}
	return nil
}
