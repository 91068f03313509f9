package game

import (
	"slices"
	"time"

	"github.com/vovakirdan/greedycat/internal/core"
)

// ActiveEffect is an active power-up as seen by front-ends.
type ActiveEffect struct {
	Type         PowerUpType   `yaml:"type"`
	Remaining    time.Duration `yaml:"remaining"`
	Progress     float64       `yaml:"progress"`
	ExpiringSoon bool          `yaml:"expiring_soon"`
}

// Snapshot captures the complete observable state for rendering,
// determinism testing and replay.
type Snapshot struct {
	Tick    uint64        `yaml:"tick"`
	Time    time.Duration `yaml:"time"`
	State   State         `yaml:"state"`
	Outcome Outcome       `yaml:"outcome,omitempty"`
	Mode    Mode          `yaml:"mode"`
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`

	Cat       []core.Position `yaml:"cat"`
	Direction core.Direction  `yaml:"direction"`
	Food      Food            `yaml:"food"`
	Obstacles []Obstacle      `yaml:"obstacles"`
	PowerUps  []PowerUp       `yaml:"power_ups"`
	Effects   []ActiveEffect  `yaml:"effects"`
	Boss      *Boss           `yaml:"boss,omitempty"`
	Attacks   []BossAttack    `yaml:"attacks"`

	Score      int `yaml:"score"`
	HighScore  int `yaml:"high_score"`
	Combo      int `yaml:"combo"`
	Multiplier int `yaml:"multiplier"`
	Streak     int `yaml:"streak"`
	Level      int `yaml:"level"`

	Interval      time.Duration `yaml:"interval"`
	TimeLimited   bool          `yaml:"time_limited"`
	TimeRemaining time.Duration `yaml:"time_remaining"`
	CanDash       bool          `yaml:"can_dash"`
	Dashing       bool          `yaml:"dashing"`
	Invincible    bool          `yaml:"invincible"`

	FoodEaten         int `yaml:"food_eaten"`
	PowerUpsCollected int `yaml:"power_ups_collected"`
	DashesUsed        int `yaml:"dashes_used"`
	BossesDefeated    int `yaml:"bosses_defeated"`
}

// Head returns the cat's head, or NoPosition for an empty snapshot.
func (s Snapshot) Head() core.Position {
	if len(s.Cat) == 0 {
		return NoPosition
	}
	return s.Cat[0]
}

// Snapshot returns a copy of the current state. Slices are not shared
// with the engine.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     e.tick,
		Time:     e.now,
		State:    e.state,
		Outcome:  e.outcome,
		Mode:     e.mode,
		Width:    e.settings.GridWidth,
		Height:   e.settings.GridHeight,
		Food:     e.food,
		Interval: e.Interval(),

		Score:      e.scoring.Score(),
		HighScore:  e.highScore,
		Combo:      e.scoring.Combo(),
		Multiplier: e.scoring.Multiplier(),
		Streak:     e.scoring.Streak(),
		Level:      e.difficulty.Level(),

		TimeLimited:   e.modeCfg.TimeLimit > 0,
		TimeRemaining: e.timeRemaining,
		CanDash:       e.state == StatePlaying && !e.dashing && e.now >= e.dashReadyAt,
		Dashing:       e.dashing,
		Invincible:    e.powerUps.Invincible(e.now),

		FoodEaten:         e.foodEaten,
		PowerUpsCollected: e.powerUpsCollected,
		DashesUsed:        e.dashesUsed,
		BossesDefeated:    e.bossesDefeated,

		Obstacles: slices.Clone(e.obstacles),
		PowerUps:  e.powerUps.Field(),
		Attacks:   e.bosses.Attacks(),
	}

	if e.cat != nil {
		s.Cat = e.cat.Body()
		s.Direction = e.cat.Direction()
	}
	if b := e.bosses.Active(); b != nil {
		boss := *b
		s.Boss = &boss
	}
	for _, a := range e.powerUps.Active() {
		s.Effects = append(s.Effects, ActiveEffect{
			Type:         a.Type,
			Remaining:    a.Remaining(e.now),
			Progress:     a.Progress(e.now),
			ExpiringSoon: a.ExpiringSoon(e.now, e.cfg.PowerUps.ExpiringSoon),
		})
	}
	return s
}
