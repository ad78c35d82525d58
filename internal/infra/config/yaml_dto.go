package config

// yamlConfig mirrors gramhound.yaml. Durations are strings in Go duration
// syntax ("90s", "1.5s"); zero values mean "keep the default".
type yamlConfig struct {
	Threads int `yaml:"threads"`
	MinLen  int `yaml:"min_len"`
	MaxLen  int `yaml:"max_len"`

	Endpoint         string   `yaml:"endpoint"`
	Output           string   `yaml:"output"`
	UserAgents       []string `yaml:"user_agents"`
	ConfirmTakenPath string   `yaml:"confirm_taken_path"`

	RequestTimeout  string `yaml:"request_timeout"`
	DelayMin        string `yaml:"delay_min"`
	DelayMax        string `yaml:"delay_max"`
	BlockedCooldown string `yaml:"blocked_cooldown"`
	MaxAttempts     int    `yaml:"max_attempts"`
	RetryBase       string `yaml:"retry_base"`

	StateDir           string `yaml:"state_dir"`
	CheckpointInterval string `yaml:"checkpoint_interval"`
	Ledger             *bool  `yaml:"ledger"`
}
