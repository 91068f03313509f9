package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name searched for on disk.
const FileName = "greedycat.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.greedycat/config.yaml -> ./configs/greedycat.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of DefaultConfig and validates it.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".greedycat", "config.yaml")
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	r := c.Rules
	switch {
	case r.StartLength < 1:
		return fmt.Errorf("%w: start_length must be >= 1", ErrInvalid)
	case r.InputQueueSize < 1:
		return fmt.Errorf("%w: input_queue_size must be >= 1", ErrInvalid)
	case r.SpeedDecay <= 0 || r.SpeedDecay > 1:
		return fmt.Errorf("%w: speed_decay must be in (0, 1]", ErrInvalid)
	case r.MaxMultiplier < 1:
		return fmt.Errorf("%w: max_multiplier must be >= 1", ErrInvalid)
	case r.StreakInterval < 1 || r.MilestoneStep < 1 || r.GrowthEvery < 1:
		return fmt.Errorf("%w: streak_interval, milestone_step and growth_every must be >= 1", ErrInvalid)
	case r.ComboWindow <= 0 || r.DashCooldown < 0 || r.DashDuration < 0:
		return fmt.Errorf("%w: negative or zero timing", ErrInvalid)
	}

	f := c.Food
	if f.Small.Weight < 0 || f.Medium.Weight < 0 || f.Large.Weight < 0 ||
		f.Small.Weight+f.Medium.Weight+f.Large.Weight == 0 {
		return fmt.Errorf("%w: food weights must be non-negative with a positive sum", ErrInvalid)
	}

	p := c.PowerUps
	if p.SpawnChance < 0 || p.SpawnChance > 1 {
		return fmt.Errorf("%w: power_ups.spawn_chance must be in [0, 1]", ErrInvalid)
	}
	if p.SpeedBoostFactor <= 0 || p.SlowMotionFactor <= 0 {
		return fmt.Errorf("%w: power-up speed factors must be positive", ErrInvalid)
	}

	for _, b := range c.Bosses.Roster {
		if b.Type == "" || b.Health < 1 || b.AttackPeriod <= 0 {
			return fmt.Errorf("%w: boss %q needs a type, health >= 1 and a positive attack period", ErrInvalid, b.Type)
		}
	}

	d := c.Difficulty
	if len(d.Bands) == 0 {
		return fmt.Errorf("%w: difficulty.bands is empty", ErrInvalid)
	}
	if d.SpeedFloor <= 0 || d.SpeedFloor > 1 {
		return fmt.Errorf("%w: difficulty.speed_floor must be in (0, 1]", ErrInvalid)
	}

	if len(c.Modes) == 0 {
		return fmt.Errorf("%w: no modes defined", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Modes))
	for _, m := range c.Modes {
		if m.Name == "" || seen[m.Name] {
			return fmt.Errorf("%w: mode names must be unique and non-empty (%q)", ErrInvalid, m.Name)
		}
		seen[m.Name] = true
		if m.SpeedMultiplier <= 0 || m.SpawnRate < 1 || m.MaxObstacles < 0 || m.TimeLimit < 0 {
			return fmt.Errorf("%w: mode %q has invalid tuning", ErrInvalid, m.Name)
		}
	}

	for _, pr := range c.Profiles {
		if pr.Name == "" || pr.GridWidth < 1 || pr.GridHeight < 1 || pr.TickInterval <= 0 {
			return fmt.Errorf("%w: profile %q has invalid dimensions or tick", ErrInvalid, pr.Name)
		}
	}
	return nil
}
