package game

import (
	"time"

	"github.com/vovakirdan/greedycat/internal/core"
)

// EventKind identifies a gameplay signal for front-ends.
type EventKind string

const (
	EventFoodEaten        EventKind = "food_eaten"
	EventLargeFish        EventKind = "large_fish"
	EventCombo            EventKind = "combo"
	EventStreak           EventKind = "streak"
	EventScoreMilestone   EventKind = "score_milestone"
	EventGrowthMilestone  EventKind = "growth_milestone"
	EventBonus            EventKind = "bonus"
	EventPowerUpSpawned   EventKind = "power_up_spawned"
	EventPowerUpCollected EventKind = "power_up_collected"
	EventPowerUpExpired   EventKind = "power_up_expired"
	EventPowerUpCombo     EventKind = "power_up_combo"
	EventObstacleSpawned  EventKind = "obstacle_spawned"
	EventDifficultyUp     EventKind = "difficulty_up"
	EventBossSpawned      EventKind = "boss_spawned"
	EventBossAttack       EventKind = "boss_attack"
	EventBossHit          EventKind = "boss_hit"
	EventBossDefeated     EventKind = "boss_defeated"
	EventDash             EventKind = "dash"
	EventTimeRunningOut   EventKind = "time_running_out"
	EventGameOver         EventKind = "game_over"
	EventVictory          EventKind = "victory"
	EventTimeUp           EventKind = "time_up"
	EventNewHighScore     EventKind = "new_high_score"
	EventAchievement      EventKind = "achievement"
)

// Event is a signal emitted while stepping. Fields beyond Kind and At are
// filled as relevant to the kind: Points for score changes, Value for
// counts (combo, level, milestone, length, health), Message for names.
type Event struct {
	Kind     EventKind     `yaml:"kind"`
	At       time.Duration `yaml:"at"`
	Points   int           `yaml:"points,omitempty"`
	Value    int           `yaml:"value,omitempty"`
	Message  string        `yaml:"message,omitempty"`
	Position core.Position `yaml:"position"`
}
