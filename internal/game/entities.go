package game

import (
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

// NoPosition marks an absent entity, such as food on a full grid.
var NoPosition = core.Position{X: -1, Y: -1}

// FoodType is a kind of fish.
type FoodType string

const (
	FoodSmallFish  FoodType = "smallFish"
	FoodMediumFish FoodType = "mediumFish"
	FoodLargeFish  FoodType = "largeFish"
)

// Points returns the base score of this fish kind.
func (t FoodType) Points(table config.FoodTable) int {
	switch t {
	case FoodMediumFish:
		return table.Medium.Points
	case FoodLargeFish:
		return table.Large.Points
	default:
		return table.Small.Points
	}
}

// Food is the single fish on the board.
type Food struct {
	Position core.Position `yaml:"position"`
	Type     FoodType      `yaml:"type"`
	Points   int           `yaml:"points"`
}

// Valid reports whether the food is on the board (not the grid-full marker).
func (f Food) Valid() bool {
	return f.Position != NoPosition
}

// ObstacleType is a kind of static blocker.
type ObstacleType string

const (
	ObstacleRock  ObstacleType = "rock"
	ObstacleSpike ObstacleType = "spike"
	ObstacleIce   ObstacleType = "ice"
)

var obstacleTypes = []ObstacleType{ObstacleRock, ObstacleSpike, ObstacleIce}

// Obstacle blocks a cell for the rest of the session.
type Obstacle struct {
	Position core.Position `yaml:"position"`
	Type     ObstacleType  `yaml:"type"`
}

// PowerUpType is a kind of timed effect.
type PowerUpType string

const (
	PowerUpSpeedBoost    PowerUpType = "speedBoost"
	PowerUpDoublePoints  PowerUpType = "doublePoints"
	PowerUpInvincibility PowerUpType = "invincibility"
	PowerUpSlowMotion    PowerUpType = "slowMotion"
)

var powerUpTypes = []PowerUpType{PowerUpSpeedBoost, PowerUpDoublePoints, PowerUpInvincibility, PowerUpSlowMotion}

// Duration returns how long the effect lasts once collected.
func (t PowerUpType) Duration(cfg config.PowerUpConfig) time.Duration {
	switch t {
	case PowerUpSpeedBoost:
		return cfg.SpeedBoost
	case PowerUpDoublePoints:
		return cfg.DoublePoints
	case PowerUpInvincibility:
		return cfg.Invincibility
	case PowerUpSlowMotion:
		return cfg.SlowMotion
	default:
		return 0
	}
}

// ModifiesSpeed reports whether the effect changes the tick interval.
func (t PowerUpType) ModifiesSpeed() bool {
	return t == PowerUpSpeedBoost || t == PowerUpSlowMotion
}

// PowerUp is an uncollected power-up lying on the board.
type PowerUp struct {
	Position  core.Position `yaml:"position"`
	Type      PowerUpType   `yaml:"type"`
	CreatedAt time.Duration `yaml:"created_at"`
}

// Expired reports whether the field power-up outlived ttl.
func (p PowerUp) Expired(now, ttl time.Duration) bool {
	return now-p.CreatedAt >= ttl
}

// ActivePowerUp is a collected effect with its activation window.
type ActivePowerUp struct {
	Type     PowerUpType   `yaml:"type"`
	Start    time.Duration `yaml:"start"`
	Duration time.Duration `yaml:"duration"`
}

// IsActive reports whether the effect still applies at now.
func (a ActivePowerUp) IsActive(now time.Duration) bool {
	return now-a.Start < a.Duration
}

// Remaining returns the time left, never negative.
func (a ActivePowerUp) Remaining(now time.Duration) time.Duration {
	return max(a.Duration-(now-a.Start), 0)
}

// Progress returns the consumed fraction in [0, 1].
func (a ActivePowerUp) Progress(now time.Duration) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now-a.Start) / float64(a.Duration)
	return min(max(p, 0), 1)
}

// ExpiringSoon reports whether less than threshold remains.
func (a ActivePowerUp) ExpiringSoon(now, threshold time.Duration) bool {
	return a.IsActive(now) && a.Remaining(now) < threshold
}
