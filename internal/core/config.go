package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings is returned when grid settings cannot host a game.
var ErrInvalidSettings = errors.New("core: invalid settings")

// Settings describes the grid and base cadence of a session.
// Chosen once from a device profile and immutable while a session runs.
type Settings struct {
	GridWidth    int           `yaml:"grid_width"`
	GridHeight   int           `yaml:"grid_height"`
	TickInterval time.Duration `yaml:"tick_interval"` // Base step duration
}

// DefaultSettings returns the phone-sized grid used when no profile is chosen.
func DefaultSettings() Settings {
	return Settings{
		GridWidth:    20,
		GridHeight:   20,
		TickInterval: 150 * time.Millisecond,
	}
}

// Validate checks that the settings describe a playable grid.
func (s Settings) Validate() error {
	if s.GridWidth <= 0 || s.GridHeight <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidSettings, s.GridWidth, s.GridHeight)
	}
	if s.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval %s", ErrInvalidSettings, s.TickInterval)
	}
	return nil
}

// Center returns the middle cell of the grid.
func (s Settings) Center() Position {
	return Position{X: s.GridWidth / 2, Y: s.GridHeight / 2}
}

// Cells returns the number of cells on the grid.
func (s Settings) Cells() int {
	return s.GridWidth * s.GridHeight
}
