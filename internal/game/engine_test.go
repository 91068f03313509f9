package game

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

func testSettings(w, h int) core.Settings {
	return core.Settings{GridWidth: w, GridHeight: h, TickInterval: 100 * time.Millisecond}
}

func newEngineWith(t *testing.T, cfg config.Config, mode Mode, w, h int, opts ...Option) *Engine {
	t.Helper()
	e := New(cfg, append([]Option{WithSeed(42)}, opts...)...)
	if err := e.StartGame(mode, testSettings(w, h)); err != nil {
		t.Fatalf("StartGame(%s, %dx%d) error = %v", mode, w, h, err)
	}
	e.DrainEvents()
	return e
}

func newTestEngine(t *testing.T, mode Mode, w, h int) *Engine {
	t.Helper()
	return newEngineWith(t, config.DefaultConfig(), mode, w, h)
}

// quiet turns off random obstacle and power-up spawning.
func quiet(e *Engine) {
	e.modeCfg.Obstacles = false
	e.modeCfg.PowerUps = false
}

func placeFood(e *Engine, p core.Position) {
	e.food = Food{Position: p, Type: FoodSmallFish, Points: 10}
}

func hasEvent(events []Event, kind EventKind) bool {
	return countKind(events, kind) > 0
}

func TestStartGameErrors(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		settings core.Settings
		expected error
	}{
		{"unknown mode", Mode("speedrun"), testSettings(20, 20), ErrUnknownMode},
		{"empty grid", ModeClassic, testSettings(0, 0), ErrInvalidSettings},
		{"zero interval", ModeClassic, core.Settings{GridWidth: 20, GridHeight: 20}, ErrInvalidSettings},
		{"too narrow for the cat", ModeClassic, testSettings(3, 10), ErrInvalidSettings},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New(config.DefaultConfig(), WithSeed(1))
			err := e.StartGame(tc.mode, tc.settings)
			if !errors.Is(err, tc.expected) {
				t.Errorf("StartGame() error = %v, expected %v", err, tc.expected)
			}
			if e.State() != StateMenu {
				t.Errorf("State() = %s after a failed start, expected menu", e.State())
			}
		})
	}
}

func TestStartGameInitialState(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	s := e.Snapshot()

	expected := []core.Position{core.P(10, 10), core.P(9, 10), core.P(8, 10)}
	if !reflect.DeepEqual(s.Cat, expected) {
		t.Errorf("Cat = %v, expected %v", s.Cat, expected)
	}
	if s.State != StatePlaying || s.Direction != core.DirRight {
		t.Errorf("State/Direction = %s/%v, expected playing/right", s.State, s.Direction)
	}
	if !s.Food.Valid() || !s.Food.Position.InBounds(20, 20) {
		t.Errorf("Food = %+v, expected a cell on the grid", s.Food)
	}
	for _, p := range s.Cat {
		if p == s.Food.Position {
			t.Errorf("food spawned on the cat at %v", p)
		}
	}
	if s.Interval != 100*time.Millisecond {
		t.Errorf("Interval = %s, expected 100ms", s.Interval)
	}
	if s.TimeLimited {
		t.Error("classic mode reports a time limit")
	}
}

func TestMagnetPullsTowardFood(t *testing.T) {
	e := newTestEngine(t, ModeZen, 20, 20)
	e.cat = NewCat(core.P(5, 5), 3, core.DirRight)
	placeFood(e, core.P(5, 2))

	res := e.Step()
	if res.Snapshot.Head() != core.P(5, 4) {
		t.Errorf("Head() = %v, expected (5,4)", res.Snapshot.Head())
	}
	if res.Snapshot.Direction != core.DirRight {
		t.Errorf("Direction = %v, magnet must not turn the cat", res.Snapshot.Direction)
	}
}

func TestMagnetize(t *testing.T) {
	head := core.P(5, 5)
	tests := []struct {
		name     string
		target   core.Position
		dir      core.Direction
		expected core.Position
	}{
		{"same column", core.P(5, 8), core.DirRight, core.P(5, 6)},
		{"same row", core.P(2, 5), core.DirUp, core.P(4, 5)},
		{"keeps heading right", core.P(7, 6), core.DirRight, core.P(6, 5)},
		{"up but food below", core.P(7, 6), core.DirUp, core.P(6, 5)},
		{"keeps heading down", core.P(6, 8), core.DirDown, core.P(5, 6)},
		{"keeps heading left", core.P(3, 4), core.DirLeft, core.P(4, 5)},
		{"left but food right", core.P(6, 3), core.DirLeft, core.P(5, 4)},
		{"diagonal tie heading right", core.P(6, 6), core.DirRight, core.P(6, 5)},
		{"diagonal tie heading down", core.P(6, 6), core.DirDown, core.P(5, 6)},
		{"diagonal tie heading up", core.P(6, 6), core.DirUp, core.P(6, 5)},
		{"diagonal tie heading left", core.P(6, 6), core.DirLeft, core.P(5, 6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := magnetize(head, tc.target, tc.dir); got != tc.expected {
				t.Errorf("magnetize(%v, %v, %v) = %v, expected %v", head, tc.target, tc.dir, got, tc.expected)
			}
		})
	}
}

func TestMagnetIntoBodyIsSelfCollision(t *testing.T) {
	e := newTestEngine(t, ModeZen, 20, 20)
	e.cat = &Cat{
		body:      []core.Position{core.P(5, 5), core.P(4, 5), core.P(3, 5), core.P(3, 6), core.P(4, 6)},
		direction: core.DirRight,
	}
	placeFood(e, core.P(2, 5))

	res := e.Step()
	if res.Snapshot.Outcome != OutcomeSelfCollision {
		t.Errorf("Outcome = %q, expected self collision", res.Snapshot.Outcome)
	}
	if !hasEvent(res.Events, EventGameOver) {
		t.Error("no game_over event emitted")
	}
}

func TestWallCollisionRecordsStats(t *testing.T) {
	store := NewMemoryStore()
	e := newEngineWith(t, config.DefaultConfig(), ModeClassic, 20, 20, WithStore(store))
	e.cat = NewCat(core.P(19, 5), 3, core.DirRight)
	placeFood(e, core.P(0, 15))
	e.scoring.score = 30

	res := e.Step()
	if e.State() != StateGameOver || e.Outcome() != OutcomeWallCollision {
		t.Fatalf("State/Outcome = %s/%q, expected game over by wall", e.State(), e.Outcome())
	}
	if !res.Snapshot.Outcome.IsCollision() {
		t.Error("IsCollision() = false for a wall crash")
	}
	if !hasEvent(res.Events, EventNewHighScore) {
		t.Error("no new_high_score event for a first score")
	}

	if hs, _ := store.LoadHighScore(ModeClassic); hs != 30 {
		t.Errorf("stored high score = %d, expected 30", hs)
	}
	stats, _ := store.LoadStats()
	if stats.GamesPlayed != 1 || stats.TotalHighScore != 30 {
		t.Errorf("stats = %+v, expected one game with 30 high score total", stats)
	}

	// a new engine picks up the stored high score
	next := newEngineWith(t, config.DefaultConfig(), ModeClassic, 20, 20, WithStore(store))
	if got := next.Snapshot().HighScore; got != 30 {
		t.Errorf("HighScore = %d, expected 30 from the store", got)
	}
}

// flakyStore fails the next stats update.
type flakyStore struct {
	*MemoryStore
	failStats bool
}

var errStatsUnavailable = errors.New("stats unavailable")

func (f *flakyStore) UpdateStats(fn func(*Stats)) error {
	if f.failStats {
		f.failStats = false
		return errStatsUnavailable
	}
	return f.MemoryStore.UpdateStats(fn)
}

func TestStatsKeptWhenLoadFails(t *testing.T) {
	seeded := Stats{GamesPlayed: 50, TotalFoodEaten: 900, Unlocked: []Achievement{AchievementFirstCatch}}

	tests := []struct {
		name      string
		failStats bool
		expected  Stats
	}{
		{"load fails", true, seeded},
		{"load succeeds", false, Stats{GamesPlayed: 51, TotalFoodEaten: 900, MaxLength: 3, Unlocked: []Achievement{AchievementFirstCatch}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &flakyStore{MemoryStore: NewMemoryStore(), failStats: tc.failStats}
			store.SaveStats(seeded)
			e := newEngineWith(t, config.DefaultConfig(), ModeClassic, 20, 20, WithStore(store))
			e.cat = NewCat(core.P(19, 5), 3, core.DirRight)
			placeFood(e, core.P(0, 15))

			res := e.Step()
			if e.Outcome() != OutcomeWallCollision {
				t.Fatalf("Outcome() = %q, expected %q", e.Outcome(), OutcomeWallCollision)
			}
			if hasEvent(res.Events, EventAchievement) {
				t.Error("achievement event emitted")
			}
			if got, _ := store.LoadStats(); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("LoadStats() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestConcurrentSessionsShareStats(t *testing.T) {
	store := NewMemoryStore()
	store.SaveHighScore(ModeClassic, 500)

	first := newEngineWith(t, config.DefaultConfig(), ModeClassic, 20, 20, WithStore(store))
	second := newEngineWith(t, config.DefaultConfig(), ModeClassic, 20, 20, WithStore(store))
	for _, e := range []*Engine{first, second} {
		e.cat = NewCat(core.P(19, 5), 3, core.DirRight)
		placeFood(e, core.P(0, 15))
	}
	first.scoring.score = 300
	second.scoring.score = 40

	first.Step()
	second.Step()

	if hs, _ := store.LoadHighScore(ModeClassic); hs != 500 {
		t.Errorf("LoadHighScore() = %d, expected %d", hs, 500)
	}
	if stats, _ := store.LoadStats(); stats.GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d, expected %d", stats.GamesPlayed, 2)
	}
}

func TestObstacleCollision(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	e.obstacles = []Obstacle{{Position: core.P(11, 10), Type: ObstacleRock}}
	placeFood(e, core.P(0, 0))

	e.Step()
	if e.Outcome() != OutcomeObstacleCollision {
		t.Errorf("Outcome() = %q, expected obstacle collision", e.Outcome())
	}
}

func TestVictoryWhenGridFills(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.StartLength = 2
	e := newEngineWith(t, cfg, ModeClassic, 2, 2)
	e.cat = &Cat{
		body:      []core.Position{core.P(1, 0), core.P(1, 1), core.P(0, 1)},
		direction: core.DirLeft,
	}
	placeFood(e, core.P(0, 0))

	res := e.Step()
	if res.Snapshot.Outcome != OutcomeVictory {
		t.Fatalf("Outcome = %q, expected victory", res.Snapshot.Outcome)
	}
	if len(res.Snapshot.Cat) != 4 {
		t.Errorf("cat length = %d, expected 4", len(res.Snapshot.Cat))
	}
	if res.Snapshot.Food.Valid() {
		t.Errorf("Food = %+v, expected none on a full grid", res.Snapshot.Food)
	}
	if !hasEvent(res.Events, EventVictory) {
		t.Error("no victory event emitted")
	}
}

func TestVictoryOnStart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.StartLength = 2
	e := New(cfg, WithSeed(3))
	if err := e.StartGame(ModeZen, testSettings(2, 1)); err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	if e.Outcome() != OutcomeVictory {
		t.Errorf("Outcome() = %q, expected immediate victory", e.Outcome())
	}
}

func TestTimeAttackRunsOut(t *testing.T) {
	cfg := config.DefaultConfig()
	for i := range cfg.Modes {
		if cfg.Modes[i].Name == string(ModeTimeAttack) {
			cfg.Modes[i].TimeLimit = 500 * time.Millisecond
		}
	}
	e := newEngineWith(t, cfg, ModeTimeAttack, 30, 30)
	placeFood(e, core.P(0, 0))

	var events []Event
	for i := 0; i < 20 && e.State() == StatePlaying; i++ {
		events = append(events, e.Step().Events...)
	}

	if e.Outcome() != OutcomeTimeUp {
		t.Fatalf("Outcome() = %q, expected time up", e.Outcome())
	}
	if s := e.Snapshot(); s.TimeRemaining != 0 || !s.TimeLimited {
		t.Errorf("TimeRemaining/TimeLimited = %s/%v, expected 0/true", s.TimeRemaining, s.TimeLimited)
	}
	if n := countKind(events, EventTimeRunningOut); n != 1 {
		t.Errorf("time_running_out emitted %d times, expected once", n)
	}
	if !hasEvent(events, EventTimeUp) {
		t.Error("no time_up event emitted")
	}
}

func TestInputQueue(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	placeFood(e, core.P(19, 19))

	steps := []struct {
		dir      core.Direction
		expected bool
	}{
		{core.DirLeft, false},  // reverse
		{core.DirRight, false}, // repeat
		{core.DirUp, true},
		{core.DirDown, false}, // reverses the queued turn
		{core.DirLeft, true},
		{core.DirUp, false}, // queue full
	}
	for i, st := range steps {
		if got := e.ChangeDirection(st.dir); got != st.expected {
			t.Errorf("step %d: ChangeDirection(%v) = %v, expected %v", i, st.dir, got, st.expected)
		}
	}

	if s := e.Step().Snapshot; s.Direction != core.DirUp || s.Head() != core.P(10, 9) {
		t.Errorf("after first step: %v at %v, expected up at (10,9)", s.Direction, s.Head())
	}
	if s := e.Step().Snapshot; s.Direction != core.DirLeft || s.Head() != core.P(9, 9) {
		t.Errorf("after second step: %v at %v, expected left at (9,9)", s.Direction, s.Head())
	}
}

func TestPauseResumeRestart(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	placeFood(e, core.P(0, 0))
	e.Step()

	e.PauseGame()
	before := e.Snapshot()
	after := e.Step().Snapshot
	if after.Tick != before.Tick || after.State != StatePaused {
		t.Errorf("Step() while paused moved from tick %d to %d", before.Tick, after.Tick)
	}
	if e.ChangeDirection(core.DirUp) || e.PerformDash() {
		t.Error("intents accepted while paused")
	}

	e.ResumeGame()
	if s := e.Step().Snapshot; s.Tick != before.Tick+1 {
		t.Errorf("Tick after resume = %d, expected %d", s.Tick, before.Tick+1)
	}

	e.scoring.score = 70
	e.RestartGame()
	s := e.Snapshot()
	if s.Tick != 0 || s.Score != 0 || len(s.Cat) != 3 || s.State != StatePlaying {
		t.Errorf("RestartGame() left tick %d score %d len %d state %s", s.Tick, s.Score, len(s.Cat), s.State)
	}

	e.QuitToMenu()
	if e.State() != StateMenu {
		t.Errorf("State() after QuitToMenu() = %s", e.State())
	}
	if e.Step().Snapshot.Tick != 0 {
		t.Error("Step() in the menu advanced the simulation")
	}
}

func TestDashCooldown(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 128, 128)
	quiet(e)
	placeFood(e, core.P(0, 0))

	if !e.PerformDash() {
		t.Fatal("first PerformDash() rejected")
	}
	s := e.Snapshot()
	if s.Head() != core.P(67, 64) || !s.Dashing || s.CanDash || s.DashesUsed != 1 {
		t.Errorf("after dash: head %v dashing %v canDash %v used %d", s.Head(), s.Dashing, s.CanDash, s.DashesUsed)
	}
	if e.PerformDash() {
		t.Error("PerformDash() accepted while dashing")
	}

	e.Step()
	e.Step()
	if e.Snapshot().Dashing {
		t.Error("Dashing still set after the dash duration")
	}
	if e.PerformDash() {
		t.Error("PerformDash() accepted during cooldown")
	}

	for e.now < 3*time.Second && e.State() == StatePlaying {
		e.Step()
	}
	if !e.PerformDash() {
		t.Error("PerformDash() rejected after the cooldown")
	}
}

func TestDashStopsAtWall(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 64, 64)
	e.cat = NewCat(core.P(61, 5), 3, core.DirRight)
	placeFood(e, core.P(0, 60))

	e.PerformDash()
	events := e.DrainEvents()
	if e.cat.Head() != core.P(63, 5) {
		t.Errorf("Head() = %v, expected (63,5)", e.cat.Head())
	}
	if len(events) != 1 || events[0].Kind != EventDash || events[0].Value != 2 {
		t.Errorf("events = %+v, expected one dash of 2 cells", events)
	}
	if e.State() != StatePlaying {
		t.Errorf("State() = %s, dash must not crash into walls", e.State())
	}
}

func TestDashIgnoresBody(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	e.cat = &Cat{
		body: []core.Position{
			core.P(5, 5), core.P(5, 6), core.P(6, 6), core.P(7, 6),
			core.P(8, 6), core.P(8, 5), core.P(8, 4), core.P(7, 4),
		},
		direction: core.DirRight,
	}
	placeFood(e, core.P(0, 19))

	e.PerformDash()
	if e.cat.Head() != core.P(8, 5) {
		t.Errorf("Head() = %v, expected the dash to pass over the body to (8,5)", e.cat.Head())
	}
	if e.State() != StatePlaying {
		t.Errorf("State() = %s, dash must not self-collide", e.State())
	}
	if e.cat.Len() != 8 {
		t.Errorf("Len() = %d, dash must not grow the cat", e.cat.Len())
	}
}

func TestInvincibilityWraps(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	e.cat = NewCat(core.P(19, 5), 3, core.DirRight)
	placeFood(e, core.P(0, 15))
	e.powerUps.Place(PowerUp{Position: core.P(0, 0), Type: PowerUpInvincibility})
	e.powerUps.Collect(core.P(0, 0), e.now)

	s := e.Step().Snapshot
	if s.State != StatePlaying {
		t.Fatalf("State = %s, invincibility must prevent the wall crash", s.State)
	}
	if s.Head() != core.P(0, 5) {
		t.Errorf("Head() = %v, expected wrap to (0,5)", s.Head())
	}
	if !s.Invincible {
		t.Error("Invincible = false with the effect active")
	}
}

func TestInvincibilityIgnoresCollisions(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(e *Engine)
		expected core.Position
	}{
		{"right wall", func(e *Engine) {
			e.cat = NewCat(core.P(19, 5), 3, core.DirRight)
		}, core.P(0, 5)},
		{"top wall", func(e *Engine) {
			e.cat = NewCat(core.P(5, 0), 3, core.DirUp)
		}, core.P(5, 19)},
		{"obstacle", func(e *Engine) {
			e.cat = NewCat(core.P(5, 5), 3, core.DirRight)
			e.obstacles = []Obstacle{{Position: core.P(6, 5), Type: ObstacleRock}}
		}, core.P(6, 5)},
		{"own body", func(e *Engine) {
			e.cat = &Cat{
				body:      []core.Position{core.P(5, 5), core.P(5, 6), core.P(6, 6), core.P(6, 5), core.P(7, 5)},
				direction: core.DirRight,
			}
		}, core.P(6, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, ModeClassic, 20, 20)
			quiet(e)
			placeFood(e, core.P(10, 15))
			tc.setup(e)
			e.powerUps.Place(PowerUp{Position: core.P(15, 15), Type: PowerUpInvincibility})
			e.powerUps.Collect(core.P(15, 15), e.now)

			s := e.Step().Snapshot
			if s.State != StatePlaying {
				t.Fatalf("State = %s, expected %s", s.State, StatePlaying)
			}
			if s.Head() != tc.expected {
				t.Errorf("Head() = %v, expected %v", s.Head(), tc.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, expected core.Position
	}{
		{core.P(20, 5), core.P(0, 5)},
		{core.P(-1, 3), core.P(19, 3)},
		{core.P(4, -1), core.P(4, 19)},
		{core.P(7, 20), core.P(7, 0)},
		{core.P(3, 3), core.P(3, 3)},
	}
	for _, tc := range tests {
		if got := wrap(tc.in, 20, 20); got != tc.expected {
			t.Errorf("wrap(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestSpeedBoostExpires(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 128, 128)
	quiet(e)
	placeFood(e, core.P(0, 0))
	e.powerUps.Place(PowerUp{Position: core.P(65, 64), Type: PowerUpSpeedBoost})

	res := e.Step()
	if !hasEvent(res.Events, EventPowerUpCollected) {
		t.Fatal("speed boost not collected")
	}
	if e.Interval() >= 100*time.Millisecond {
		t.Errorf("Interval() = %s during speed boost, expected faster than 100ms", e.Interval())
	}

	var expired bool
	for i := 0; i < 200 && !expired; i++ {
		if e.cat.Head().X > 120 {
			e.cat = NewCat(core.P(10, 64), 3, core.DirRight)
		}
		expired = hasEvent(e.Step().Events, EventPowerUpExpired)
	}
	if !expired {
		t.Fatal("speed boost never expired")
	}
	if e.now < 5100*time.Millisecond {
		t.Errorf("expired at %s, expected at or after 5.1s", e.now)
	}
	if e.Interval() != 100*time.Millisecond {
		t.Errorf("Interval() after expiry = %s, expected the 100ms baseline", e.Interval())
	}
	if len(e.Snapshot().Effects) != 0 {
		t.Errorf("Effects = %+v, expected none", e.Snapshot().Effects)
	}
}

func TestEatingSpeedsUp(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 20, 20)
	quiet(e)
	placeFood(e, core.P(11, 10))

	res := e.Step()
	if !hasEvent(res.Events, EventFoodEaten) {
		t.Fatal("food at the next cell was not eaten")
	}
	s := res.Snapshot
	if s.Score != 10 || s.FoodEaten != 1 || len(s.Cat) != 4 {
		t.Errorf("score %d eaten %d len %d, expected 10/1/4", s.Score, s.FoodEaten, len(s.Cat))
	}
	if s.Interval != 98*time.Millisecond {
		t.Errorf("Interval = %s, expected 98ms", s.Interval)
	}
	if s.Food.Position == core.P(11, 10) || !s.Food.Valid() {
		t.Errorf("Food = %+v, expected a fresh fish", s.Food)
	}
}

func TestObstacleSpawning(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 40, 40)
	e.modeCfg.PowerUps = false
	placeFood(e, core.P(0, 39))
	e.scoring.score = 100

	var events []Event
	for range 3 {
		events = append(events, e.Step().Events...)
	}

	// 100 points at one obstacle per 50, one spawned per tick
	if len(e.obstacles) != 2 {
		t.Errorf("obstacles = %d, expected 2", len(e.obstacles))
	}
	if n := countKind(events, EventObstacleSpawned); n != 2 {
		t.Errorf("obstacle_spawned emitted %d times, expected 2", n)
	}
	for _, o := range e.obstacles {
		if e.spawner.InSafeZone(o.Position) {
			t.Errorf("obstacle at %v inside the safe zone", o.Position)
		}
	}

	zen := newTestEngine(t, ModeZen, 40, 40)
	placeFood(zen, core.P(0, 39))
	zen.scoring.score = 1000
	zen.Step()
	if len(zen.obstacles) != 0 {
		t.Errorf("zen obstacles = %d, expected none", len(zen.obstacles))
	}
}

func TestBossBattle(t *testing.T) {
	e := newTestEngine(t, ModeClassic, 128, 128)
	quiet(e)
	e.scoring.score = 195
	placeFood(e, core.P(65, 64))

	res := e.Step()
	if !hasEvent(res.Events, EventBossSpawned) {
		t.Fatalf("no boss at score %d", res.Snapshot.Score)
	}
	boss := res.Snapshot.Boss
	if boss == nil || boss.Type != BossGiantFish || boss.Health != 5 {
		t.Fatalf("Boss = %+v, expected a giant fish with 5 health", boss)
	}
	spawnedAt := e.now

	placeFood(e, core.P(66, 64))
	if res := e.Step(); hasEvent(res.Events, EventBossSpawned) {
		t.Error("a second boss spawned while one was active")
	}

	var attacks int
	for e.now < spawnedAt+3*time.Second && e.State() == StatePlaying {
		placeFood(e, core.P(0, 127))
		attacks += countKind(e.Step().Events, EventBossAttack)
	}
	if attacks != 1 {
		t.Errorf("boss attacked %d times in its first period, expected 1", attacks)
	}
	if len(e.Snapshot().Attacks) == 0 {
		t.Error("Attacks empty right after an attack")
	}

	score := e.scoring.Score()
	for i := range 5 {
		if !e.AttackBoss() {
			t.Fatalf("AttackBoss() %d rejected", i+1)
		}
	}
	events := e.DrainEvents()
	if !hasEvent(events, EventBossDefeated) {
		t.Fatal("no boss_defeated event after 5 hits")
	}
	if got := e.scoring.Score() - score; got != 200 {
		t.Errorf("defeat bonus = %d, expected 200", got)
	}
	s := e.Snapshot()
	if s.Boss != nil || len(s.Attacks) != 0 || s.BossesDefeated != 1 {
		t.Errorf("after defeat: boss %v attacks %d defeated %d", s.Boss, len(s.Attacks), s.BossesDefeated)
	}
	if e.sched.Len() != 0 {
		t.Errorf("scheduler holds %d timers after the defeat", e.sched.Len())
	}
	if e.AttackBoss() {
		t.Error("AttackBoss() accepted with no boss")
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []Snapshot {
		e := New(config.DefaultConfig(), WithSeed(99))
		if err := e.StartGame(ModeClassic, testSettings(20, 20)); err != nil {
			t.Fatalf("StartGame() error = %v", err)
		}
		var out []Snapshot
		for range 300 {
			if d, ok := Autopilot(e.Snapshot()); ok {
				e.ChangeDirection(d)
			}
			out = append(out, e.Step().Snapshot)
			if e.State() != StatePlaying {
				break
			}
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs lasted %d and %d ticks", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("tick %d diverged:\n%+v\n%+v", i, a[i], b[i])
		}
	}
	if a[len(a)-1].FoodEaten == 0 {
		t.Error("autopilot never ate; the replay exercised nothing")
	}
}
