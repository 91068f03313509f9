package config

import "time"

// DifficultyConfig defines score bands and the speed curve.
type DifficultyConfig struct {
	Bands      []DifficultyBand `yaml:"bands"`
	SpeedStep  float64          `yaml:"speed_step"`  // Interval reduction per level
	SpeedFloor float64          `yaml:"speed_floor"` // Lowest interval factor
	Messages   []string         `yaml:"messages"`    // Indexed by level-1
}

// DifficultyBand maps a score range to a level.
// The band applies while score < Below; Below == 0 means unbounded.
// Players averaging more than AvgAbove points per fish get Boosted instead of Level.
type DifficultyBand struct {
	Below    int     `yaml:"below"`
	Level    int     `yaml:"level"`
	AvgAbove float64 `yaml:"avg_above"`
	Boosted  int     `yaml:"boosted"`
}

// LevelFor evaluates the band table for a score and food count.
// This is the raw level; callers keep it monotonic.
func (d DifficultyConfig) LevelFor(score, foodEaten int) int {
	var avg float64
	if foodEaten > 0 {
		avg = float64(score) / float64(foodEaten)
	}

	for _, b := range d.Bands {
		if b.Below != 0 && score >= b.Below {
			continue
		}
		if b.Boosted > 0 && avg > b.AvgAbove {
			return b.Boosted
		}
		return b.Level
	}
	return 1
}

// IntervalFor returns base scaled by max(floor, 1 - level*step).
func (d DifficultyConfig) IntervalFor(base time.Duration, level int) time.Duration {
	factor := max(d.SpeedFloor, 1.0-float64(level)*d.SpeedStep)
	return time.Duration(float64(base) * factor)
}

// Message returns the notification text for reaching a level.
func (d DifficultyConfig) Message(level int) string {
	if level < 1 || level > len(d.Messages) {
		return ""
	}
	return d.Messages[level-1]
}
