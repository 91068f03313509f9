package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

// StepResult is the outcome of one Step.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the engine's random source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithStore sets the persistence collaborator. Defaults to a MemoryStore.
func WithStore(p Persistence) Option {
	return func(e *Engine) {
		e.store = p
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine is the authoritative game state machine.
type Engine struct {
	cfg    config.Config
	rng    *rand.Rand
	store  Persistence
	logger *log.Logger

	state    State
	outcome  Outcome
	mode     Mode
	modeCfg  config.ModeConfig
	settings core.Settings

	tick uint64
	now  time.Duration

	// base is the mode-scaled tick, baseline the interval without speed
	// power-ups, interval the one in effect.
	base     time.Duration
	baseline time.Duration
	interval time.Duration

	cat       *Cat
	queue     []core.Direction
	food      Food
	obstacles []Obstacle

	spawner    *Spawner
	scoring    *Scoring
	powerUps   *PowerUps
	difficulty *Difficulty
	bosses     *Bosses
	sched      *Scheduler

	timeRemaining time.Duration
	timeWarned    bool

	dashReadyAt time.Duration
	dashing     bool

	foodEaten         int
	powerUpsCollected int
	dashesUsed        int
	bossesDefeated    int
	highScore         int

	events []Event
}

// New creates an engine in the menu state.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		state:  StateMenu,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.store == nil {
		e.store = NewMemoryStore()
	}

	e.scoring = NewScoring(cfg.Rules)
	e.powerUps = NewPowerUps(cfg.PowerUps)
	e.difficulty = NewDifficulty(cfg.Difficulty)
	e.bosses = NewBosses(cfg.Bosses)
	e.sched = &Scheduler{}
	return e
}

// StartGame begins a new session in the given mode on the given grid.
func (e *Engine) StartGame(mode Mode, settings core.Settings) error {
	mc, ok := e.cfg.Mode(string(mode))
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if settings.GridWidth/2 < e.cfg.Rules.StartLength-1 {
		return fmt.Errorf("%w: grid %dx%d too small for a cat of length %d",
			ErrInvalidSettings, settings.GridWidth, settings.GridHeight, e.cfg.Rules.StartLength)
	}

	e.mode = mode
	e.modeCfg = mc
	e.settings = settings
	e.reset()
	return nil
}

// RestartGame starts over with the current mode and settings.
// Ignored before the first StartGame.
func (e *Engine) RestartGame() {
	if e.cat == nil {
		return
	}
	e.reset()
}

// PauseGame freezes a running session.
func (e *Engine) PauseGame() {
	if e.state == StatePlaying {
		e.state = StatePaused
		e.logger.Debug("paused", "tick", e.tick)
	}
}

// ResumeGame continues a paused session.
func (e *Engine) ResumeGame() {
	if e.state == StatePaused {
		e.state = StatePlaying
		e.logger.Debug("resumed", "tick", e.tick)
	}
}

// QuitToMenu abandons the session and cancels all of its timers.
func (e *Engine) QuitToMenu() {
	e.sched.CancelAll()
	e.bosses.Clear()
	e.queue = e.queue[:0]
	e.dashing = false
	e.state = StateMenu
}

func (e *Engine) reset() {
	e.sched.CancelAll()
	e.scoring.Reset()
	e.powerUps.Reset()
	e.difficulty.Reset()
	e.bosses.Clear()

	w, h := e.settings.GridWidth, e.settings.GridHeight
	e.spawner = NewSpawner(e.rng, w, h, e.cfg.Food)
	e.cat = NewCat(e.settings.Center(), e.cfg.Rules.StartLength, core.DirRight)
	e.queue = e.queue[:0]
	e.obstacles = nil
	e.events = nil

	e.tick = 0
	e.now = 0
	e.base = time.Duration(float64(e.settings.TickInterval) / e.modeCfg.SpeedMultiplier)
	e.baseline = e.base
	e.interval = e.base

	e.timeRemaining = e.modeCfg.TimeLimit
	e.timeWarned = false
	e.dashReadyAt = 0
	e.dashing = false

	e.foodEaten = 0
	e.powerUpsCollected = 0
	e.dashesUsed = 0
	e.bossesDefeated = 0
	e.outcome = OutcomeNone
	e.highScore = e.loadHighScore(0)

	e.state = StatePlaying
	e.logger.Debug("game started", "mode", e.mode, "grid", fmt.Sprintf("%dx%d", w, h), "interval", e.interval)

	if !e.spawnFood() {
		e.finish(OutcomeVictory)
	}
}

// ChangeDirection queues a turn. Reversals of the last queued direction
// (or the current one when the queue is empty), repeats and turns beyond
// the queue capacity are rejected.
func (e *Engine) ChangeDirection(d core.Direction) bool {
	if e.state != StatePlaying {
		return false
	}
	last := e.cat.Direction()
	if n := len(e.queue); n > 0 {
		last = e.queue[n-1]
	}
	if d == last || d == last.Opposite() || len(e.queue) >= e.cfg.Rules.InputQueueSize {
		return false
	}
	e.queue = append(e.queue, d)
	return true
}

// PerformDash moves the cat up to the dash distance at once. The dash
// stops at walls and obstacles, never eats or grows, and ignores the body.
func (e *Engine) PerformDash() bool {
	if e.state != StatePlaying || e.dashing || e.now < e.dashReadyAt {
		return false
	}

	dir := e.cat.Direction()
	moved := 0
	for range e.cfg.Rules.DashDistance {
		next := e.cat.Head().Step(dir)
		if !next.InBounds(e.settings.GridWidth, e.settings.GridHeight) || e.obstacleAt(next) {
			break
		}
		e.cat.Move(next, false)
		moved++
	}

	e.dashesUsed++
	e.dashReadyAt = e.now + e.cfg.Rules.DashCooldown
	e.dashing = true
	e.sched.After(e.now, e.cfg.Rules.DashDuration, func(time.Duration) {
		e.dashing = false
	})
	e.emit(Event{Kind: EventDash, At: e.now, Value: moved, Position: e.cat.Head()})
	return true
}

// AttackBoss strikes the active boss.
func (e *Engine) AttackBoss() bool {
	if e.state != StatePlaying || e.bosses.Active() == nil {
		return false
	}

	timer := e.bosses.Timer()
	boss, defeated, bonus := e.bosses.Hit()
	e.emit(Event{Kind: EventBossHit, At: e.now, Value: boss.Health, Message: string(boss.Type), Position: boss.Position})
	if !defeated {
		return true
	}

	e.sched.Cancel(timer)
	e.bossesDefeated++
	e.emit(Event{Kind: EventBossDefeated, At: e.now, Points: bonus, Message: string(boss.Type), Position: boss.Position})
	e.emit(e.scoring.AddBonus(e.now, bonus, "boss:"+string(boss.Type))...)
	e.logger.Debug("boss defeated", "boss", boss.Type, "bonus", bonus)
	return true
}

// Step advances the simulation by one tick. Outside the playing state it
// only reports the current snapshot.
func (e *Engine) Step() StepResult {
	if e.state == StatePlaying {
		e.step()
	}
	return StepResult{Snapshot: e.Snapshot(), Events: e.DrainEvents()}
}

func (e *Engine) step() {
	e.tick++
	elapsed := e.interval
	e.now += elapsed

	// Timed effects
	speedEnded := false
	for _, a := range e.powerUps.Expire(e.now) {
		e.emit(Event{Kind: EventPowerUpExpired, At: e.now, Message: string(a.Type)})
		if a.Type.ModifiesSpeed() {
			speedEnded = true
		}
	}
	if speedEnded && !e.powerUps.SpeedModified(e.now) {
		e.interval = e.baseline
	}

	e.sched.Advance(e.now)
	e.bosses.ExpireAttacks(e.now)

	if e.modeCfg.TimeLimit > 0 {
		e.timeRemaining -= elapsed
		if !e.timeWarned && e.timeRemaining > 0 && e.timeRemaining <= e.cfg.Rules.TimeWarning {
			e.timeWarned = true
			e.emit(Event{Kind: EventTimeRunningOut, At: e.now, Value: int(e.timeRemaining / time.Second)})
		}
		if e.timeRemaining <= 0 {
			e.timeRemaining = 0
			e.finish(OutcomeTimeUp)
			return
		}
	}

	// Input
	if len(e.queue) > 0 {
		d := e.queue[0]
		e.queue = e.queue[1:]
		e.cat.ChangeDirection(d)
	}

	head := e.cat.Head()
	candidate := head.Step(e.cat.Direction())
	if e.food.Valid() && head.Manhattan(e.food.Position) <= e.cfg.Rules.MagnetRadius {
		candidate = magnetize(head, e.food.Position, e.cat.Direction())
	}

	// Collisions
	w, h := e.settings.GridWidth, e.settings.GridHeight
	if e.powerUps.Invincible(e.now) {
		candidate = wrap(candidate, w, h)
	} else {
		switch {
		case !candidate.InBounds(w, h):
			e.finish(OutcomeWallCollision)
			return
		case e.obstacleAt(candidate):
			e.finish(OutcomeObstacleCollision)
			return
		case e.cat.ContainsExceptTail(candidate):
			e.finish(OutcomeSelfCollision)
			return
		}
	}

	ateFood := e.food.Valid() && candidate == e.food.Position
	e.cat.Move(candidate, ateFood)

	if ateFood && !e.eat(candidate) {
		return
	}

	if _, ok := e.powerUps.At(candidate); ok {
		e.collectPowerUp(candidate)
	}

	if b := e.bosses.Active(); b != nil && b.Position == candidate {
		e.AttackBoss()
	}

	if !e.powerUps.Invincible(e.now) && e.cat.CheckSelfCollision() {
		e.finish(OutcomeSelfCollision)
		return
	}

	e.spawnObstacleIfNeeded()
}

// magnetize steers one step toward target, following the current
// direction when it already leads there.
func magnetize(head, target core.Position, dir core.Direction) core.Position {
	dx := target.X - head.X
	dy := target.Y - head.Y
	stepX := core.Position{X: head.X + towards(dx), Y: head.Y}
	stepY := core.Position{X: head.X, Y: head.Y + towards(dy)}

	if dx == 0 {
		return stepY
	}
	if dy == 0 {
		return stepX
	}

	ahead := head.Step(dir)
	switch dir {
	case core.DirUp:
		if dy < 0 && core.Abs(dy) >= core.Abs(dx) {
			return ahead
		}
		return stepX
	case core.DirDown:
		if dy > 0 && core.Abs(dy) >= core.Abs(dx) {
			return ahead
		}
		return stepX
	case core.DirLeft:
		if dx < 0 && core.Abs(dx) >= core.Abs(dy) {
			return ahead
		}
		return stepY
	default:
		if dx > 0 && core.Abs(dx) >= core.Abs(dy) {
			return ahead
		}
		return stepY
	}
}

// towards returns +1 for positive deltas and -1 otherwise.
func towards(d int) int {
	if d > 0 {
		return 1
	}
	return -1
}

// wrap moves an off-grid cell to the opposite edge.
func wrap(p core.Position, w, h int) core.Position {
	return core.Position{X: (p.X%w + w) % w, Y: (p.Y%h + h) % h}
}

// eat handles a fish eaten at pos. It returns false when the session ended.
func (e *Engine) eat(pos core.Position) bool {
	eaten := e.food
	e.foodEaten++

	_, events := e.scoring.EatFood(e.now, eaten.Points, e.powerUps.DoublePoints(e.now))
	for i := range events {
		events[i].Position = pos
	}
	e.emit(events...)
	if eaten.Type == FoodLargeFish {
		e.emit(Event{Kind: EventLargeFish, At: e.now, Points: eaten.Points, Position: pos})
	}

	if !e.spawnFood() {
		e.finish(OutcomeVictory)
		return false
	}

	if e.modeCfg.PowerUps && e.spawner.Chance(e.cfg.PowerUps.SpawnChance) {
		e.spawnPowerUp()
	}

	e.interval = decay(e.interval, e.cfg.Rules.SpeedDecay, e.cfg.Rules.MinInterval)
	e.baseline = decay(e.baseline, e.cfg.Rules.SpeedDecay, e.cfg.Rules.MinInterval)

	if level, msg, up := e.difficulty.Evaluate(e.scoring.Score(), e.foodEaten); up {
		e.baseline = e.difficulty.Interval(e.base)
		if !e.powerUps.SpeedModified(e.now) {
			e.interval = e.baseline
		}
		e.emit(Event{Kind: EventDifficultyUp, At: e.now, Value: level, Message: msg})
		e.logger.Debug("difficulty up", "level", level, "interval", e.interval)
	}

	if entry, ok := e.bosses.Trigger(e.scoring.Score()); ok {
		e.spawnBoss(entry)
	}

	if GrowthMilestone(e.cat.Len(), e.cfg.Rules.StartLength, e.cfg.Rules.GrowthEvery) {
		e.emit(Event{Kind: EventGrowthMilestone, At: e.now, Value: e.cat.Len(), Position: pos})
	}
	return true
}

// decay scales d by factor unless the result drops below floor.
func decay(d time.Duration, factor float64, floor time.Duration) time.Duration {
	next := time.Duration(float64(d) * factor)
	if next < floor {
		return d
	}
	return next
}

func (e *Engine) collectPowerUp(pos core.Position) {
	a, combo, ok := e.powerUps.Collect(pos, e.now)
	if !ok {
		return
	}
	e.powerUpsCollected++
	e.emit(Event{Kind: EventPowerUpCollected, At: e.now, Message: string(a.Type), Position: pos})

	if combo != nil {
		e.emit(Event{Kind: EventPowerUpCombo, At: e.now, Points: combo.Bonus, Message: combo.Name, Position: pos})
		e.emit(e.scoring.AddBonus(e.now, combo.Bonus, combo.Name)...)
	}

	switch a.Type {
	case PowerUpSpeedBoost:
		e.interval = time.Duration(float64(e.base) * e.cfg.PowerUps.SpeedBoostFactor)
	case PowerUpSlowMotion:
		e.interval = time.Duration(float64(e.base) * e.cfg.PowerUps.SlowMotionFactor)
	}
}

func (e *Engine) spawnFood() bool {
	p, ok := e.spawner.FoodCell(e.occupied(false))
	if !ok {
		e.food = Food{Position: NoPosition}
		return false
	}
	t := e.spawner.RandomFoodType()
	e.food = Food{Position: p, Type: t, Points: t.Points(e.cfg.Food)}
	return true
}

func (e *Engine) spawnPowerUp() {
	p, ok := e.spawner.PowerUpCell(e.occupied(true))
	if !ok {
		return
	}
	pu := PowerUp{Position: p, Type: e.spawner.RandomPowerUpType(), CreatedAt: e.now}
	e.powerUps.Place(pu)
	e.emit(Event{Kind: EventPowerUpSpawned, At: e.now, Message: string(pu.Type), Position: p})
}

func (e *Engine) spawnObstacleIfNeeded() {
	if !e.modeCfg.Obstacles {
		return
	}
	target := min(e.scoring.Score()/e.modeCfg.SpawnRate, e.modeCfg.MaxObstacles)
	if len(e.obstacles) >= target {
		return
	}
	p, ok := e.spawner.ObstacleCell(e.occupied(true))
	if !ok {
		return
	}
	o := Obstacle{Position: p, Type: e.spawner.RandomObstacleType()}
	e.obstacles = append(e.obstacles, o)
	e.emit(Event{Kind: EventObstacleSpawned, At: e.now, Message: string(o.Type), Position: p})
}

func (e *Engine) spawnBoss(entry config.BossEntry) {
	pos := e.spawner.BossCell(e.cat.Head(), e.cfg.Bosses.Offset, e.occupied(true))
	boss := e.bosses.Spawn(entry, pos)

	id := boss.ID
	timer := e.sched.Every(e.now, entry.AttackPeriod, func(now time.Duration) bool {
		return e.bossAttack(id, now)
	})
	e.bosses.SetTimer(timer)

	e.emit(Event{Kind: EventBossSpawned, At: e.now, Value: boss.Health, Message: string(boss.Type), Position: pos})
	e.logger.Debug("boss spawned", "boss", boss.Type, "pos", pos)
}

// bossAttack is the periodic attack callback. It cancels itself when the
// boss it was scheduled for is gone or the session is not running.
func (e *Engine) bossAttack(id int, now time.Duration) bool {
	b := e.bosses.Active()
	if e.state != StatePlaying || b == nil || b.ID != id {
		return false
	}
	a := e.bosses.Attack(e.cat.Head(), now)
	e.emit(Event{Kind: EventBossAttack, At: now, Message: a.Direction.String(), Position: a.Position})
	return true
}

// occupied returns a predicate over cells taken by the cat, obstacles,
// field power-ups and the boss, plus the food when withFood is set.
func (e *Engine) occupied(withFood bool) Blocked {
	taken := make(map[core.Position]struct{}, e.cat.Len()+len(e.obstacles)+4)
	for _, p := range e.cat.body {
		taken[p] = struct{}{}
	}
	for _, o := range e.obstacles {
		taken[o.Position] = struct{}{}
	}
	for _, pu := range e.powerUps.field {
		taken[pu.Position] = struct{}{}
	}
	if b := e.bosses.Active(); b != nil {
		taken[b.Position] = struct{}{}
	}
	if withFood && e.food.Valid() {
		taken[e.food.Position] = struct{}{}
	}
	return func(p core.Position) bool {
		_, ok := taken[p]
		return ok
	}
}

func (e *Engine) obstacleAt(p core.Position) bool {
	for _, o := range e.obstacles {
		if o.Position == p {
			return true
		}
	}
	return false
}

// finish ends the session, persists the result and emits the outcome.
func (e *Engine) finish(outcome Outcome) {
	e.state = StateGameOver
	e.outcome = outcome
	e.sched.CancelAll()
	e.bosses.Clear()
	e.queue = e.queue[:0]
	e.dashing = false

	kind := EventGameOver
	switch outcome {
	case OutcomeVictory:
		kind = EventVictory
	case OutcomeTimeUp:
		kind = EventTimeUp
	}
	score := e.scoring.Score()
	e.emit(Event{Kind: kind, At: e.now, Points: score, Message: string(outcome), Position: e.cat.Head()})

	prevHigh := e.loadHighScore(e.highScore)
	if score > prevHigh {
		e.highScore = score
		if err := e.store.SaveHighScore(e.mode, score); err != nil {
			e.logger.Warn("failed to save high score", "mode", e.mode, "err", err)
		}
		e.emit(Event{Kind: EventNewHighScore, At: e.now, Points: score})
	} else {
		e.highScore = prevHigh
	}

	// Stats that fail to load are left as stored rather than replaced by
	// this session alone.
	var unlocked []Achievement
	res := e.result()
	if err := e.store.UpdateStats(func(s *Stats) { unlocked = s.Record(res, prevHigh) }); err != nil {
		e.logger.Warn("failed to record stats", "err", err)
		unlocked = nil
	}
	for _, a := range unlocked {
		e.emit(Event{Kind: EventAchievement, At: e.now, Message: string(a)})
	}

	e.logger.Debug("game over", "outcome", outcome, "score", score, "ticks", e.tick)
}

func (e *Engine) loadHighScore(fallback int) int {
	hs, err := e.store.LoadHighScore(e.mode)
	if err != nil {
		e.logger.Warn("failed to load high score", "mode", e.mode, "err", err)
		return fallback
	}
	return hs
}

func (e *Engine) result() SessionResult {
	return SessionResult{
		Mode:              e.mode,
		Outcome:           e.outcome,
		Score:             e.scoring.Score(),
		FoodEaten:         e.foodEaten,
		PowerUpsCollected: e.powerUpsCollected,
		DashesUsed:        e.dashesUsed,
		MaxCombo:          e.scoring.MaxCombo(),
		Length:            e.cat.Len(),
		Ticks:             e.tick,
	}
}

// Result summarizes the current or last session.
func (e *Engine) Result() SessionResult {
	if e.cat == nil {
		return SessionResult{Mode: e.mode}
	}
	return e.result()
}

func (e *Engine) emit(events ...Event) {
	e.events = append(e.events, events...)
}

// DrainEvents returns and clears the pending events.
func (e *Engine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}

// Interval returns the tick interval currently in effect.
func (e *Engine) Interval() time.Duration {
	if e.interval <= 0 {
		return e.cfg.Rules.MinInterval
	}
	return e.interval
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Outcome returns why the last session ended.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}
