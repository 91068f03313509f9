package game

import "slices"

// Achievement identifies an unlockable badge.
type Achievement string

const (
	AchievementFirstCatch    Achievement = "firstCatch"
	AchievementComboStarter  Achievement = "comboStarter"
	AchievementSpeedDemon    Achievement = "speedDemon"
	AchievementCollector     Achievement = "collector"
	AchievementSurvivor      Achievement = "survivor"
	AchievementCenturion     Achievement = "centurion"
	AchievementPerfectionist Achievement = "perfectionist"
	AchievementDashMaster    Achievement = "dashMaster"
)

// Achievements lists every achievement in display order.
var Achievements = []Achievement{
	AchievementFirstCatch,
	AchievementComboStarter,
	AchievementSpeedDemon,
	AchievementCollector,
	AchievementSurvivor,
	AchievementCenturion,
	AchievementPerfectionist,
	AchievementDashMaster,
}

// Title returns the display name.
func (a Achievement) Title() string {
	switch a {
	case AchievementFirstCatch:
		return "First Catch"
	case AchievementComboStarter:
		return "Combo Starter"
	case AchievementSpeedDemon:
		return "Speed Demon"
	case AchievementCollector:
		return "Collector"
	case AchievementSurvivor:
		return "Survivor"
	case AchievementCenturion:
		return "Centurion"
	case AchievementPerfectionist:
		return "Perfectionist"
	case AchievementDashMaster:
		return "Dash Master"
	}
	return string(a)
}

// Description explains how to unlock the achievement.
func (a Achievement) Description() string {
	switch a {
	case AchievementFirstCatch:
		return "Catch your first fish"
	case AchievementComboStarter:
		return "Reach a 3x combo"
	case AchievementSpeedDemon:
		return "Score 100 points in Time Attack"
	case AchievementCollector:
		return "Collect 10 power-ups"
	case AchievementSurvivor:
		return "Reach a length of 20"
	case AchievementCenturion:
		return "Score 100 points in any mode"
	case AchievementPerfectionist:
		return "Reach 5x combo"
	case AchievementDashMaster:
		return "Use dash 10 times"
	}
	return ""
}

// Unlocked evaluates the achievement against aggregate stats.
func (a Achievement) Unlocked(s Stats) bool {
	switch a {
	case AchievementFirstCatch:
		return s.TotalFoodEaten >= 1
	case AchievementComboStarter:
		return s.MaxCombo >= 3
	case AchievementSpeedDemon:
		return s.TimeAttackHighScore >= 100
	case AchievementCollector:
		return s.TotalPowerUps >= 10
	case AchievementSurvivor:
		return s.MaxLength >= 20
	case AchievementCenturion:
		return s.TotalHighScore >= 100
	case AchievementPerfectionist:
		return s.MaxCombo >= 5
	case AchievementDashMaster:
		return s.TotalDashes >= 10
	}
	return false
}

// Stats aggregates results across sessions.
type Stats struct {
	GamesPlayed         int           `msgpack:"games_played" yaml:"games_played"`
	TotalFoodEaten      int           `msgpack:"total_food_eaten" yaml:"total_food_eaten"`
	TotalPowerUps       int           `msgpack:"total_power_ups" yaml:"total_power_ups"`
	TotalDashes         int           `msgpack:"total_dashes" yaml:"total_dashes"`
	MaxCombo            int           `msgpack:"max_combo" yaml:"max_combo"`
	MaxLength           int           `msgpack:"max_length" yaml:"max_length"`
	TotalHighScore      int           `msgpack:"total_high_score" yaml:"total_high_score"`
	TimeAttackHighScore int           `msgpack:"time_attack_high_score" yaml:"time_attack_high_score"`
	Unlocked            []Achievement `msgpack:"unlocked" yaml:"unlocked"`
}

// SessionResult summarizes one finished session.
type SessionResult struct {
	Mode              Mode
	Outcome           Outcome
	Score             int
	FoodEaten         int
	PowerUpsCollected int
	DashesUsed        int
	MaxCombo          int
	Length            int
	Ticks             uint64
}

// Record folds a session into the stats. prevHigh is the mode's high score
// before this session; an improvement adds the difference to
// TotalHighScore. It returns achievements unlocked by this session.
func (s *Stats) Record(r SessionResult, prevHigh int) []Achievement {
	s.GamesPlayed++
	s.TotalFoodEaten += r.FoodEaten
	s.TotalPowerUps += r.PowerUpsCollected
	s.TotalDashes += r.DashesUsed
	s.MaxCombo = max(s.MaxCombo, r.MaxCombo)
	s.MaxLength = max(s.MaxLength, r.Length)

	if r.Score > prevHigh {
		s.TotalHighScore += r.Score - prevHigh
		if r.Mode == ModeTimeAttack {
			s.TimeAttackHighScore = r.Score
		}
	}

	var unlocked []Achievement
	for _, a := range Achievements {
		if slices.Contains(s.Unlocked, a) || !a.Unlocked(*s) {
			continue
		}
		s.Unlocked = append(s.Unlocked, a)
		unlocked = append(unlocked, a)
	}
	return unlocked
}
