package game

import (
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
)

// Difficulty tracks the session difficulty level. The level never drops.
type Difficulty struct {
	cfg   config.DifficultyConfig
	level int
}

// NewDifficulty creates a controller at level 1.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	return &Difficulty{cfg: cfg, level: 1}
}

// Reset returns to level 1.
func (d *Difficulty) Reset() {
	d.level = 1
}

// Level returns the current level.
func (d *Difficulty) Level() int {
	return d.level
}

// Evaluate updates the level from the score and fish count. It returns the
// level and, when the level rose, the notification text.
func (d *Difficulty) Evaluate(score, foodEaten int) (int, string, bool) {
	next := d.cfg.LevelFor(score, foodEaten)
	if next <= d.level {
		return d.level, "", false
	}
	d.level = next
	return d.level, d.cfg.Message(next), true
}

// Interval returns the tick interval for the current level.
func (d *Difficulty) Interval(base time.Duration) time.Duration {
	return d.cfg.IntervalFor(base, d.level)
}
