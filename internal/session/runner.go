// Package session drives a game.Engine in real time. A Runner owns one
// engine and serializes every call into it through a single goroutine:
// intents are applied between ticks and the tick period follows the
// engine's interval.
package session

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedycat/internal/core"
	"github.com/vovakirdan/greedycat/internal/game"
)

// ErrStopped is returned by calls made after the runner has exited.
var ErrStopped = errors.New("session: runner stopped")

// intentBuffer bounds pending actions; extra presses are dropped.
const intentBuffer = 32

type startRequest struct {
	mode     game.Mode
	settings core.Settings
	reply    chan error
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithResultHandler registers fn to be called, on the runner goroutine,
// each time a session ends with an outcome.
func WithResultHandler(fn func(game.SessionResult)) Option {
	return func(r *Runner) {
		r.onResult = fn
	}
}

// Runner is the real-time driver of one engine.
type Runner struct {
	engine   *game.Engine
	logger   *log.Logger
	onResult func(game.SessionResult)

	actions chan core.Action
	starts  chan startRequest

	subMu sync.Mutex
	subs  []*Subscription

	snapMu sync.RWMutex
	last   game.Snapshot

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRunner creates a runner for engine. The engine must not be used
// directly once Run has been called.
func NewRunner(engine *game.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		logger:  log.New(io.Discard),
		actions: make(chan core.Action, intentBuffer),
		starts:  make(chan startRequest),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		last:    engine.Snapshot(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send queues an action. Non-blocking; the action is dropped when the
// queue is full or the runner has stopped.
func (r *Runner) Send(a core.Action) {
	select {
	case <-r.done:
		return
	default:
	}
	select {
	case r.actions <- a:
	default:
		r.logger.Debug("action dropped", "action", a)
	}
}

// Start begins a session on the runner goroutine and waits for the result.
func (r *Runner) Start(ctx context.Context, mode game.Mode, settings core.Settings) error {
	req := startRequest{mode: mode, settings: settings, reply: make(chan error, 1)}
	select {
	case r.starts <- req:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a new update stream with the given buffer size.
// The latest snapshot is delivered immediately.
func (r *Runner) Subscribe(buffer int) *Subscription {
	sub := newSubscription(buffer)
	sub.send(Update{Snapshot: r.Snapshot()})

	r.subMu.Lock()
	r.subs = append(r.subs, sub)
	r.subMu.Unlock()
	return sub
}

// Snapshot returns the most recently published snapshot.
func (r *Runner) Snapshot() game.Snapshot {
	r.snapMu.RLock()
	defer r.snapMu.RUnlock()
	return r.last
}

// Stop asks Run to return. Safe to call multiple times.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Done returns a channel that closes when Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run executes the loop until ctx is cancelled or Stop is called. On exit
// the engine is returned to the menu, which cancels its timers, and all
// subscriptions are closed.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	// Created stopped; sync arms it once a session is playing.
	ticker := time.NewTicker(time.Hour)
	ticker.Stop()
	defer ticker.Stop()

	clock := tickerClock{ticker: ticker}
	prev := r.engine.State()

	for {
		select {
		case <-ctx.Done():
			r.teardown()
			return ctx.Err()

		case <-r.stop:
			r.teardown()
			return nil

		case req := <-r.starts:
			// Actions sent before the start request apply first.
			prev = r.flushActions(prev)
			err := r.engine.StartGame(req.mode, req.settings)
			req.reply <- err
			if err != nil {
				r.logger.Warn("start failed", "mode", req.mode, "err", err)
				continue
			}
			r.logger.Info("session started", "mode", req.mode,
				"grid", req.settings.GridWidth, "interval", r.engine.Interval())
			prev = r.publish(game.StateMenu)

		case a := <-r.actions:
			r.apply(a)
			prev = r.publish(prev)

		case <-ticker.C:
			res := r.engine.Step()
			prev = r.broadcast(prev, res.Snapshot, res.Events)
		}

		clock.sync(r.engine)
	}
}

func (r *Runner) flushActions(prev game.State) game.State {
	for {
		select {
		case a := <-r.actions:
			r.apply(a)
			prev = r.publish(prev)
		default:
			return prev
		}
	}
}

// apply maps an action to an engine intent.
func (r *Runner) apply(a core.Action) {
	if d, ok := a.Direction(); ok {
		r.engine.ChangeDirection(d)
		return
	}

	switch a {
	case core.ActionDash:
		r.engine.PerformDash()
	case core.ActionAttack:
		r.engine.AttackBoss()
	case core.ActionPause:
		switch r.engine.State() {
		case game.StatePlaying:
			r.engine.PauseGame()
		case game.StatePaused:
			r.engine.ResumeGame()
		}
	case core.ActionRestart, core.ActionConfirm:
		if r.engine.State() == game.StateGameOver || a == core.ActionRestart {
			r.engine.RestartGame()
		}
	case core.ActionBack, core.ActionQuit:
		r.engine.QuitToMenu()
	}
}

// publish reads the engine's current state and fans it out.
func (r *Runner) publish(prev game.State) game.State {
	return r.broadcast(prev, r.engine.Snapshot(), r.engine.DrainEvents())
}

func (r *Runner) broadcast(prev game.State, snap game.Snapshot, events []game.Event) game.State {
	r.snapMu.Lock()
	r.last = snap
	r.snapMu.Unlock()

	if snap.State == game.StateGameOver && prev != game.StateGameOver {
		r.logger.Info("session ended", "mode", snap.Mode, "outcome", snap.Outcome,
			"score", snap.Score, "ticks", snap.Tick)
		if r.onResult != nil {
			r.onResult(r.engine.Result())
		}
	}

	u := Update{Snapshot: snap, Events: events}
	r.subMu.Lock()
	r.subs = slices.DeleteFunc(r.subs, (*Subscription).closed)
	for _, sub := range r.subs {
		sub.send(u)
	}
	r.subMu.Unlock()

	return snap.State
}

func (r *Runner) teardown() {
	r.engine.QuitToMenu()
	r.engine.DrainEvents()

	snap := r.engine.Snapshot()
	r.snapMu.Lock()
	r.last = snap
	r.snapMu.Unlock()

	r.subMu.Lock()
	for _, sub := range r.subs {
		sub.send(Update{Snapshot: snap})
		sub.Close()
	}
	r.subs = nil
	r.subMu.Unlock()
	r.logger.Debug("runner stopped")
}

// tickerClock keeps a ticker in step with the engine: running at the
// engine interval while playing, stopped otherwise.
type tickerClock struct {
	ticker  *time.Ticker
	period  time.Duration
	running bool
}

func (c *tickerClock) sync(e *game.Engine) {
	if e.State() != game.StatePlaying {
		if c.running {
			c.ticker.Stop()
			c.running = false
		}
		return
	}

	iv := e.Interval()
	if c.running && iv == c.period {
		return
	}
	c.ticker.Reset(iv)
	c.period = iv
	c.running = true
}
