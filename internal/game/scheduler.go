package game

import "time"

// TimerID identifies a scheduled callback.
type TimerID int

// timer fires at next; periodic timers reschedule while fn returns true.
type timer struct {
	id     TimerID
	next   time.Duration
	period time.Duration
	fn     func(now time.Duration) bool
}

// Scheduler runs callbacks on simulation time. All timers belong to one
// session and are cancelled together when it ends.
type Scheduler struct {
	timers []*timer
	nextID TimerID
}

// After schedules fn once, d after now.
func (s *Scheduler) After(now, d time.Duration, fn func(now time.Duration)) TimerID {
	return s.add(now+d, 0, func(at time.Duration) bool {
		fn(at)
		return false
	})
}

// Every schedules fn each period after now until it returns false or is cancelled.
func (s *Scheduler) Every(now, period time.Duration, fn func(now time.Duration) bool) TimerID {
	if period <= 0 {
		panic("game: scheduler period must be positive")
	}
	return s.add(now+period, period, fn)
}

func (s *Scheduler) add(at, period time.Duration, fn func(time.Duration) bool) TimerID {
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, next: at, period: period, fn: fn})
	return s.nextID
}

// Cancel removes a timer. Unknown IDs are ignored.
func (s *Scheduler) Cancel(id TimerID) {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// CancelAll removes every timer.
func (s *Scheduler) CancelAll() {
	s.timers = nil
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance fires every timer due at or before now, earliest first. Timers
// due at the same instant fire in creation order. Callbacks may schedule
// or cancel timers.
func (s *Scheduler) Advance(now time.Duration) {
	for {
		t := s.earliest(now)
		if t == nil {
			return
		}
		at := t.next
		if t.fn(at) && t.period > 0 {
			t.next += t.period
			continue
		}
		s.Cancel(t.id)
	}
}

func (s *Scheduler) earliest(now time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.next > now {
			continue
		}
		if best == nil || t.next < best.next || (t.next == best.next && t.id < best.id) {
			best = t
		}
	}
	return best
}
