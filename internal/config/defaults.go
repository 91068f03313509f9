package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/greedycat.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the hardcoded configuration. It matches the
// embedded YAML and is used when that cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Rules: Rules{
			StartLength:    3,
			InputQueueSize: 2,
			MagnetRadius:   3,
			SpeedDecay:     0.98,
			MinInterval:    50 * time.Millisecond,
			ComboWindow:    2 * time.Second,
			MaxMultiplier:  5,
			ComboSignals:   []int{3, 5},
			StreakInterval: 10,
			StreakBonus:    5,
			MilestoneStep:  100,
			GrowthEvery:    5,
			DashDistance:   3,
			DashCooldown:   3 * time.Second,
			DashDuration:   200 * time.Millisecond,
			TimeWarning:    10 * time.Second,
		},
		Food: FoodTable{
			Small:  FoodEntry{Points: 10, Weight: 70},
			Medium: FoodEntry{Points: 20, Weight: 25},
			Large:  FoodEntry{Points: 50, Weight: 5},
		},
		PowerUps: PowerUpConfig{
			FieldTTL:          10 * time.Second,
			SpawnChance:       0.15,
			ExpiringSoon:      3 * time.Second,
			SpeedBoost:        5 * time.Second,
			DoublePoints:      8 * time.Second,
			Invincibility:     3 * time.Second,
			SlowMotion:        6 * time.Second,
			SpeedBoostFactor:  0.7,
			SlowMotionFactor:  1.5,
			UnstoppableBonus:  200,
			GreedyCatBonus:    150,
			TimeLordBonus:     100,
			OverloadThreshold: 3,
			OverloadBonus:     50,
		},
		Bosses: BossConfig{
			Band:      100,
			Offset:    5,
			AttackTTL: 2 * time.Second,
			Roster: []BossEntry{
				{Type: "giantFish", Health: 5, SpawnScore: 200, Ability: "dash", AttackPeriod: 3 * time.Second},
				{Type: "ghostCat", Health: 8, SpawnScore: 500, Ability: "teleport", AttackPeriod: 4 * time.Second},
				{Type: "shadowBeast", Health: 10, SpawnScore: 800, Ability: "split", AttackPeriod: 5 * time.Second},
				{Type: "goldenDragon", Health: 15, SpawnScore: 1200, Ability: "fireBreath", AttackPeriod: 2500 * time.Millisecond},
			},
		},
		Difficulty: DifficultyConfig{
			SpeedStep:  0.08,
			SpeedFloor: 0.5,
			Bands: []DifficultyBand{
				{Below: 50, Level: 1},
				{Below: 150, Level: 2, AvgAbove: 15, Boosted: 3},
				{Below: 300, Level: 3, AvgAbove: 20, Boosted: 4},
				{Below: 500, Level: 4, AvgAbove: 25, Boosted: 5},
				{Below: 0, Level: 5, AvgAbove: 30, Boosted: 6},
			},
			Messages: []string{
				"Level Up! Speed Increased!",
				"Faster! More Obstacles!",
				"Challenge Accepted!",
				"Getting Intense!",
				"Maximum Speed!",
				"Ultimate Challenge!",
			},
		},
		Modes: []ModeConfig{
			{Name: "classic", Description: "Traditional snake gameplay", Obstacles: true, PowerUps: true,
				SpeedMultiplier: 1.0, SpawnRate: 50, MaxObstacles: 5},
			{Name: "zen", Description: "No obstacles, relax and play", Obstacles: false, PowerUps: true,
				SpeedMultiplier: 0.8, SpawnRate: 9999, MaxObstacles: 0},
			{Name: "timeAttack", Description: "Get highest score in 2 minutes", Obstacles: true, PowerUps: true,
				TimeLimit: 2 * time.Minute, SpeedMultiplier: 1.2, SpawnRate: 40, MaxObstacles: 8},
			{Name: "hardcore", Description: "Maximum obstacles and speed", Obstacles: true, PowerUps: false,
				SpeedMultiplier: 1.5, SpawnRate: 25, MaxObstacles: 15},
		},
		Profiles: []ProfileConfig{
			{Name: "phone", GridWidth: 20, GridHeight: 20, TickInterval: 150 * time.Millisecond},
			{Name: "tablet", GridWidth: 30, GridHeight: 30, TickInterval: 120 * time.Millisecond},
			{Name: "desktop", GridWidth: 32, GridHeight: 32, TickInterval: 100 * time.Millisecond},
		},
	}
}
