// Package config provides YAML-based tuning tables for the Greedy Cat engine:
// rules, power-ups, bosses, difficulty bands, game modes and device profiles.
package config

import "time"

// Config contains every tunable value the engine and front-ends read.
type Config struct {
	Rules      Rules            `yaml:"rules"`
	Food       FoodTable        `yaml:"food"`
	PowerUps   PowerUpConfig    `yaml:"power_ups"`
	Bosses     BossConfig       `yaml:"bosses"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Modes      []ModeConfig     `yaml:"modes"`
	Profiles   []ProfileConfig  `yaml:"profiles"`
}

// Rules holds the core movement and scoring constants.
type Rules struct {
	StartLength    int           `yaml:"start_length"`
	InputQueueSize int           `yaml:"input_queue_size"`
	MagnetRadius   int           `yaml:"magnet_radius"`
	SpeedDecay     float64       `yaml:"speed_decay"`  // Interval factor applied per food
	MinInterval    time.Duration `yaml:"min_interval"` // Decay is skipped below this
	ComboWindow    time.Duration `yaml:"combo_window"`
	MaxMultiplier  int           `yaml:"max_multiplier"`
	ComboSignals   []int         `yaml:"combo_signals"`
	StreakInterval int           `yaml:"streak_interval"`
	StreakBonus    int           `yaml:"streak_bonus"` // Bonus = streak * StreakBonus
	MilestoneStep  int           `yaml:"milestone_step"`
	GrowthEvery    int           `yaml:"growth_every"`
	DashDistance   int           `yaml:"dash_distance"`
	DashCooldown   time.Duration `yaml:"dash_cooldown"`
	DashDuration   time.Duration `yaml:"dash_duration"`
	TimeWarning    time.Duration `yaml:"time_warning"` // Time-attack urgency threshold
}

// FoodTable lists the three fish kinds.
type FoodTable struct {
	Small  FoodEntry `yaml:"small"`
	Medium FoodEntry `yaml:"medium"`
	Large  FoodEntry `yaml:"large"`
}

// FoodEntry is the score value and spawn weight of one fish kind.
type FoodEntry struct {
	Points int `yaml:"points"`
	Weight int `yaml:"weight"`
}

// PowerUpConfig defines power-up spawning, durations and effects.
type PowerUpConfig struct {
	FieldTTL          time.Duration `yaml:"field_ttl"`
	SpawnChance       float64       `yaml:"spawn_chance"`
	ExpiringSoon      time.Duration `yaml:"expiring_soon"`
	SpeedBoost        time.Duration `yaml:"speed_boost"`
	DoublePoints      time.Duration `yaml:"double_points"`
	Invincibility     time.Duration `yaml:"invincibility"`
	SlowMotion        time.Duration `yaml:"slow_motion"`
	SpeedBoostFactor  float64       `yaml:"speed_boost_factor"`
	SlowMotionFactor  float64       `yaml:"slow_motion_factor"`
	UnstoppableBonus  int           `yaml:"unstoppable_bonus"`
	GreedyCatBonus    int           `yaml:"greedy_cat_bonus"`
	TimeLordBonus     int           `yaml:"time_lord_bonus"`
	OverloadThreshold int           `yaml:"overload_threshold"`
	OverloadBonus     int           `yaml:"overload_bonus"` // Per active effect
}

// BossConfig defines boss spawning and the boss roster.
type BossConfig struct {
	Band      int           `yaml:"band"`   // Width of the spawn score window
	Offset    int           `yaml:"offset"` // Distance from the head when placing a boss
	AttackTTL time.Duration `yaml:"attack_ttl"`
	Roster    []BossEntry   `yaml:"roster"`
}

// BossEntry describes a single boss kind.
type BossEntry struct {
	Type         string        `yaml:"type"`
	Health       int           `yaml:"health"`
	SpawnScore   int           `yaml:"spawn_score"`
	Ability      string        `yaml:"ability"`
	AttackPeriod time.Duration `yaml:"attack_period"`
}

// ModeConfig describes one game mode.
type ModeConfig struct {
	Name            string        `yaml:"name"`
	Description     string        `yaml:"description"`
	Obstacles       bool          `yaml:"obstacles"`
	PowerUps        bool          `yaml:"power_ups"`
	TimeLimit       time.Duration `yaml:"time_limit"` // Zero means unlimited
	SpeedMultiplier float64       `yaml:"speed_multiplier"`
	SpawnRate       int           `yaml:"spawn_rate"` // Score per obstacle
	MaxObstacles    int           `yaml:"max_obstacles"`
}

// ProfileConfig describes a device profile: grid size and base tick.
type ProfileConfig struct {
	Name         string        `yaml:"name"`
	GridWidth    int           `yaml:"grid_width"`
	GridHeight   int           `yaml:"grid_height"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Mode returns the mode with the given name.
func (c Config) Mode(name string) (ModeConfig, bool) {
	for _, m := range c.Modes {
		if m.Name == name {
			return m, true
		}
	}
	return ModeConfig{}, false
}

// Boss returns the roster entry with the given type name.
func (c Config) Boss(name string) (BossEntry, bool) {
	for _, b := range c.Bosses.Roster {
		if b.Type == name {
			return b, true
		}
	}
	return BossEntry{}, false
}

// ModeNames returns mode names in table order.
func (c Config) ModeNames() []string {
	names := make([]string, len(c.Modes))
	for i, m := range c.Modes {
		names[i] = m.Name
	}
	return names
}
