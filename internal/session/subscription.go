package session

import (
	"sync"

	"github.com/vovakirdan/greedycat/internal/game"
)

// Update is what a runner publishes after every step or applied intent.
type Update struct {
	Snapshot game.Snapshot
	Events   []game.Event
}

// Subscription receives updates from a Runner through a bounded buffer.
// When the reader falls behind, the oldest update is dropped.
type Subscription struct {
	updates   chan Update
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscription(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 16
	}
	return &Subscription{
		updates: make(chan Update, buffer),
		done:    make(chan struct{}),
	}
}

// Updates returns the channel to receive updates from.
func (s *Subscription) Updates() <-chan Update {
	return s.updates
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close ends the subscription. Safe to call multiple times.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Subscription) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// send never blocks. Only the runner goroutine sends, so a drop followed
// by a retry always has room.
func (s *Subscription) send(u Update) {
	if s.closed() {
		return
	}

	select {
	case s.updates <- u:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- u:
	default:
	}
}
