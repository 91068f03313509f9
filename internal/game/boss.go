package game

import (
	"slices"
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

// BossType names a boss kind from the roster.
type BossType string

const (
	BossGiantFish    BossType = "giantFish"
	BossGhostCat     BossType = "ghostCat"
	BossShadowBeast  BossType = "shadowBeast"
	BossGoldenDragon BossType = "goldenDragon"
)

// Boss is the active boss.
type Boss struct {
	ID         int           `yaml:"id"`
	Type       BossType      `yaml:"type"`
	Ability    string        `yaml:"ability"`
	Position   core.Position `yaml:"position"`
	Health     int           `yaml:"health"`
	MaxHealth  int           `yaml:"max_health"`
	SpawnScore int           `yaml:"spawn_score"`
}

// Defeated reports whether the boss has no health left.
func (b Boss) Defeated() bool {
	return b.Health <= 0
}

// BossAttack is a short-lived projectile aimed at the cat.
type BossAttack struct {
	Boss      BossType       `yaml:"boss"`
	Ability   string         `yaml:"ability"`
	Position  core.Position  `yaml:"position"`
	Direction core.Direction `yaml:"direction"`
	CreatedAt time.Duration  `yaml:"created_at"`
}

// Bosses holds at most one active boss and its pending attacks.
type Bosses struct {
	cfg     config.BossConfig
	boss    *Boss
	attacks []BossAttack
	timer   TimerID
	nextID  int
}

// NewBosses creates an idle boss controller.
func NewBosses(cfg config.BossConfig) *Bosses {
	return &Bosses{cfg: cfg}
}

// Active returns the active boss or nil.
func (b *Bosses) Active() *Boss {
	return b.boss
}

// Attacks returns a copy of the pending attacks.
func (b *Bosses) Attacks() []BossAttack {
	return slices.Clone(b.attacks)
}

// Trigger returns the roster entry whose spawn band contains score.
// Nothing triggers while a boss is active.
func (b *Bosses) Trigger(score int) (config.BossEntry, bool) {
	if b.boss != nil {
		return config.BossEntry{}, false
	}
	for _, e := range b.cfg.Roster {
		if score >= e.SpawnScore && score < e.SpawnScore+b.cfg.Band {
			return e, true
		}
	}
	return config.BossEntry{}, false
}

// Spawn activates a boss at pos. The caller owns the attack timer and
// records it with SetTimer.
func (b *Bosses) Spawn(e config.BossEntry, pos core.Position) *Boss {
	b.nextID++
	b.boss = &Boss{
		ID:         b.nextID,
		Type:       BossType(e.Type),
		Ability:    e.Ability,
		Position:   pos,
		Health:     e.Health,
		MaxHealth:  e.Health,
		SpawnScore: e.SpawnScore,
	}
	return b.boss
}

// SetTimer records the attack timer of the active boss.
func (b *Bosses) SetTimer(id TimerID) {
	b.timer = id
}

// Timer returns the attack timer of the active boss.
func (b *Bosses) Timer() TimerID {
	return b.timer
}

// Attack appends an attack from the boss toward target.
func (b *Bosses) Attack(target core.Position, now time.Duration) BossAttack {
	dx := target.X - b.boss.Position.X
	dy := target.Y - b.boss.Position.Y

	var dir core.Direction
	if core.Abs(dx) > core.Abs(dy) {
		dir = core.DirLeft
		if dx > 0 {
			dir = core.DirRight
		}
	} else {
		dir = core.DirUp
		if dy > 0 {
			dir = core.DirDown
		}
	}

	a := BossAttack{
		Boss:      b.boss.Type,
		Ability:   b.boss.Ability,
		Position:  b.boss.Position,
		Direction: dir,
		CreatedAt: now,
	}
	b.attacks = append(b.attacks, a)
	return a
}

// Hit removes one health point. When the boss is defeated it is cleared
// along with its attacks and the spawn score is returned as the bonus.
func (b *Bosses) Hit() (boss Boss, defeated bool, bonus int) {
	if b.boss == nil {
		return Boss{}, false, 0
	}
	b.boss.Health--
	boss = *b.boss
	if !boss.Defeated() {
		return boss, false, 0
	}
	b.Clear()
	return boss, true, boss.SpawnScore
}

// ExpireAttacks drops attacks older than the attack TTL.
func (b *Bosses) ExpireAttacks(now time.Duration) {
	b.attacks = slices.DeleteFunc(b.attacks, func(a BossAttack) bool {
		return now-a.CreatedAt >= b.cfg.AttackTTL
	})
}

// Clear removes the boss and its attacks. The caller cancels the timer.
func (b *Bosses) Clear() {
	b.boss = nil
	b.attacks = nil
	b.timer = 0
}
