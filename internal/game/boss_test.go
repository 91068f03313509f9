package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

func TestBossTrigger(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{150, ""},
		{200, "giantFish"},
		{299, "giantFish"},
		{300, ""},
		{550, "ghostCat"},
		{850, "shadowBeast"},
		{1250, "goldenDragon"},
		{1300, ""},
	}

	b := NewBosses(config.DefaultConfig().Bosses)
	for _, tc := range tests {
		e, ok := b.Trigger(tc.score)
		got := ""
		if ok {
			got = e.Type
		}
		if got != tc.expected {
			t.Errorf("Trigger(%d) = %q, expected %q", tc.score, got, tc.expected)
		}
	}
}

func TestBossSingleInstance(t *testing.T) {
	b := NewBosses(config.DefaultConfig().Bosses)
	e, _ := b.Trigger(210)
	b.Spawn(e, core.P(5, 5))

	if _, ok := b.Trigger(220); ok {
		t.Error("Trigger() with an active boss succeeded")
	}
}

func TestBossAttackDirection(t *testing.T) {
	b := NewBosses(config.DefaultConfig().Bosses)
	e, _ := b.Trigger(200)
	b.Spawn(e, core.P(5, 5))

	tests := []struct {
		target   core.Position
		expected core.Direction
	}{
		{core.P(10, 6), core.DirRight},
		{core.P(0, 4), core.DirLeft},
		{core.P(6, 12), core.DirDown},
		{core.P(5, 0), core.DirUp},
		{core.P(8, 8), core.DirDown}, // ties go vertical
	}
	for _, tc := range tests {
		a := b.Attack(tc.target, time.Second)
		if a.Direction != tc.expected {
			t.Errorf("Attack(%v).Direction = %v, expected %v", tc.target, a.Direction, tc.expected)
		}
		if a.Position != core.P(5, 5) {
			t.Errorf("Attack(%v).Position = %v, expected the boss cell", tc.target, a.Position)
		}
	}

	b.ExpireAttacks(2500 * time.Millisecond)
	if len(b.Attacks()) != len(tests) {
		t.Errorf("Attacks() = %d before TTL, expected %d", len(b.Attacks()), len(tests))
	}
	b.ExpireAttacks(3 * time.Second)
	if len(b.Attacks()) != 0 {
		t.Errorf("Attacks() = %d after TTL, expected 0", len(b.Attacks()))
	}
}

func TestBossDefeat(t *testing.T) {
	b := NewBosses(config.DefaultConfig().Bosses)
	e, _ := b.Trigger(200)
	b.Spawn(e, core.P(5, 5))
	b.SetTimer(7)
	b.Attack(core.P(0, 0), 0)

	for i := 1; i < 5; i++ {
		boss, defeated, _ := b.Hit()
		if defeated {
			t.Fatalf("defeated after %d hits", i)
		}
		if boss.Health != 5-i {
			t.Errorf("Health after %d hits = %d, expected %d", i, boss.Health, 5-i)
		}
	}

	boss, defeated, bonus := b.Hit()
	if !defeated || bonus != 200 {
		t.Errorf("final Hit() = %v, %d; expected defeat with 200", defeated, bonus)
	}
	if boss.Type != BossGiantFish {
		t.Errorf("defeated boss = %v, expected giantFish", boss.Type)
	}
	if b.Active() != nil || len(b.Attacks()) != 0 || b.Timer() != 0 {
		t.Error("defeat did not clear the boss, its attacks and timer")
	}

	if _, defeated, _ := b.Hit(); defeated {
		t.Error("Hit() without a boss reported a defeat")
	}
}
