package game

import (
	"slices"
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

// PowerUpCombo is a bonus for stacking effects.
type PowerUpCombo struct {
	Name  string
	Bonus int
}

// PowerUps owns the field power-ups and the active effects.
type PowerUps struct {
	cfg    config.PowerUpConfig
	field  []PowerUp
	active []ActivePowerUp
}

// NewPowerUps creates an empty tracker.
func NewPowerUps(cfg config.PowerUpConfig) *PowerUps {
	return &PowerUps{cfg: cfg}
}

// Reset removes every power-up and effect.
func (p *PowerUps) Reset() {
	p.field = nil
	p.active = nil
}

// Place puts a power-up on the board.
func (p *PowerUps) Place(pu PowerUp) {
	p.field = append(p.field, pu)
}

// At returns the field power-up at pos, if any.
func (p *PowerUps) At(pos core.Position) (PowerUp, bool) {
	for _, pu := range p.field {
		if pu.Position == pos {
			return pu, true
		}
	}
	return PowerUp{}, false
}

// Collect removes the field power-up at pos and activates it. The combo
// bonus is evaluated against the effects active before this one.
func (p *PowerUps) Collect(pos core.Position, now time.Duration) (ActivePowerUp, *PowerUpCombo, bool) {
	i := slices.IndexFunc(p.field, func(pu PowerUp) bool { return pu.Position == pos })
	if i < 0 {
		return ActivePowerUp{}, nil, false
	}
	pu := p.field[i]
	p.field = slices.Delete(p.field, i, i+1)

	combo := p.combination(pu.Type, now)
	a := ActivePowerUp{Type: pu.Type, Start: now, Duration: pu.Type.Duration(p.cfg)}
	p.active = append(p.active, a)
	return a, combo, true
}

// combination applies the stacking table; the first matching rule wins.
func (p *PowerUps) combination(incoming PowerUpType, now time.Duration) *PowerUpCombo {
	has := func(t PowerUpType) bool { return p.Has(t, now) }
	count := len(p.activeAt(now)) + 1

	switch {
	case has(PowerUpSpeedBoost) && has(PowerUpInvincibility) && incoming == PowerUpDoublePoints:
		return &PowerUpCombo{Name: "Unstoppable", Bonus: p.cfg.UnstoppableBonus}
	case has(PowerUpDoublePoints) && has(PowerUpSpeedBoost) && incoming == PowerUpDoublePoints:
		return &PowerUpCombo{Name: "Greedy Cat", Bonus: p.cfg.GreedyCatBonus}
	case has(PowerUpInvincibility) && has(PowerUpSlowMotion) && incoming == PowerUpInvincibility:
		return &PowerUpCombo{Name: "Time Lord", Bonus: p.cfg.TimeLordBonus}
	case count >= p.cfg.OverloadThreshold:
		return &PowerUpCombo{Name: "Power Overload", Bonus: count * p.cfg.OverloadBonus}
	}
	return nil
}

// Expire drops field power-ups older than the TTL and effects that ended.
// It returns the expired effects.
func (p *PowerUps) Expire(now time.Duration) []ActivePowerUp {
	p.field = slices.DeleteFunc(p.field, func(pu PowerUp) bool {
		return pu.Expired(now, p.cfg.FieldTTL)
	})

	var expired []ActivePowerUp
	p.active = slices.DeleteFunc(p.active, func(a ActivePowerUp) bool {
		if a.IsActive(now) {
			return false
		}
		expired = append(expired, a)
		return true
	})
	return expired
}

// Has reports whether an effect of type t is active at now.
func (p *PowerUps) Has(t PowerUpType, now time.Duration) bool {
	for _, a := range p.active {
		if a.Type == t && a.IsActive(now) {
			return true
		}
	}
	return false
}

// Invincible reports whether collisions are suppressed.
func (p *PowerUps) Invincible(now time.Duration) bool {
	return p.Has(PowerUpInvincibility, now)
}

// DoublePoints reports whether food scores double.
func (p *PowerUps) DoublePoints(now time.Duration) bool {
	return p.Has(PowerUpDoublePoints, now)
}

// SpeedModified reports whether any speed-changing effect is active.
func (p *PowerUps) SpeedModified(now time.Duration) bool {
	return p.Has(PowerUpSpeedBoost, now) || p.Has(PowerUpSlowMotion, now)
}

func (p *PowerUps) activeAt(now time.Duration) []ActivePowerUp {
	var out []ActivePowerUp
	for _, a := range p.active {
		if a.IsActive(now) {
			out = append(out, a)
		}
	}
	return out
}

// Active returns a copy of the active effects.
func (p *PowerUps) Active() []ActivePowerUp {
	return slices.Clone(p.active)
}

// Field returns a copy of the uncollected power-ups.
func (p *PowerUps) Field() []PowerUp {
	return slices.Clone(p.field)
}
