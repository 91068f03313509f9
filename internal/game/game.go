// Package game implements the Greedy Cat simulation engine: a tick-driven
// state machine owning grid geometry, cat movement, collisions, spawning,
// combo scoring, power-ups, boss battles, difficulty and win/loss outcomes.
//
// The engine is pure logic. It runs on simulation time (a clock advanced by
// the current tick interval on every Step), so every rule is reproducible
// from a seed without wall-clock waits. It is not safe for concurrent use;
// see package session for a goroutine-owning driver.
package game

import (
	"errors"

	"github.com/vovakirdan/greedycat/internal/core"
)

var (
	// ErrUnknownMode is returned by StartGame for a mode missing from the config.
	ErrUnknownMode = errors.New("game: unknown mode")

	// ErrInvalidSettings is returned by StartGame when the grid cannot host a game.
	ErrInvalidSettings = core.ErrInvalidSettings
)

// Mode names a game mode. Tuning for each mode lives in config.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeZen        Mode = "zen"
	ModeTimeAttack Mode = "timeAttack"
	ModeHardcore   Mode = "hardcore"
)

// State is the engine lifecycle state.
type State string

const (
	StateMenu     State = "menu"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateGameOver State = "game_over"
)

// Outcome records why a session ended.
type Outcome string

const (
	OutcomeNone              Outcome = ""
	OutcomeWallCollision     Outcome = "wall_collision"
	OutcomeObstacleCollision Outcome = "obstacle_collision"
	OutcomeSelfCollision     Outcome = "self_collision"
	OutcomeVictory           Outcome = "victory"
	OutcomeTimeUp            Outcome = "time_up"
)

// IsCollision reports whether the outcome is a game-over caused by a crash.
func (o Outcome) IsCollision() bool {
	switch o {
	case OutcomeWallCollision, OutcomeObstacleCollision, OutcomeSelfCollision:
		return true
	}
	return false
}
