package game

import (
	"slices"
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
)

// Scoring tracks score, combo and streak. Every score change goes through
// add, which emits one milestone event per boundary crossed.
type Scoring struct {
	rules config.Rules

	score    int
	combo    int
	maxCombo int
	streak   int
	lastEat  time.Duration
	hasEaten bool
}

// NewScoring creates a scoring tracker.
func NewScoring(rules config.Rules) *Scoring {
	return &Scoring{rules: rules}
}

// Reset clears all counters.
func (s *Scoring) Reset() {
	*s = Scoring{rules: s.rules}
}

// Score returns the current score.
func (s *Scoring) Score() int { return s.score }

// Combo returns the current combo count.
func (s *Scoring) Combo() int { return s.combo }

// MaxCombo returns the highest combo reached.
func (s *Scoring) MaxCombo() int { return s.maxCombo }

// Streak returns the number of fish eaten in this session.
func (s *Scoring) Streak() int { return s.streak }

// Multiplier returns the combo multiplier, min(combo, max).
func (s *Scoring) Multiplier() int {
	return min(max(s.combo, 1), s.rules.MaxMultiplier)
}

// EatFood scores a fish eaten at now and returns the points awarded for
// the fish itself along with any signals.
func (s *Scoring) EatFood(now time.Duration, points int, doublePoints bool) (int, []Event) {
	if s.hasEaten && now-s.lastEat <= s.rules.ComboWindow {
		s.combo++
	} else {
		s.combo = 1
	}
	s.lastEat = now
	s.hasEaten = true
	s.maxCombo = max(s.maxCombo, s.combo)

	awarded := points * s.Multiplier()
	if doublePoints {
		awarded *= 2
	}

	events := []Event{{Kind: EventFoodEaten, At: now, Points: awarded, Value: s.combo}}
	events = append(events, s.add(now, awarded)...)

	if slices.Contains(s.rules.ComboSignals, s.combo) {
		events = append(events, Event{Kind: EventCombo, At: now, Value: s.combo})
	}

	s.streak++
	if s.streak%s.rules.StreakInterval == 0 {
		bonus := s.streak * s.rules.StreakBonus
		events = append(events, Event{Kind: EventStreak, At: now, Points: bonus, Value: s.streak})
		events = append(events, s.add(now, bonus)...)
	}
	return awarded, events
}

// AddBonus adds points outside food scoring (power-up combos, boss defeat).
func (s *Scoring) AddBonus(now time.Duration, points int, reason string) []Event {
	events := []Event{{Kind: EventBonus, At: now, Points: points, Message: reason}}
	return append(events, s.add(now, points)...)
}

func (s *Scoring) add(now time.Duration, points int) []Event {
	prev := s.score
	s.score += points

	var events []Event
	step := s.rules.MilestoneStep
	for m := (prev/step + 1) * step; m <= s.score; m += step {
		events = append(events, Event{Kind: EventScoreMilestone, At: now, Value: m})
	}
	return events
}

// GrowthMilestone reports whether a body length deserves a celebration.
// Lengths up to the starting length never count.
func GrowthMilestone(length, start, every int) bool {
	return length > start && length%every == 0
}
