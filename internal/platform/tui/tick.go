// Package tui provides the Bubble Tea front-end for Greedy Cat.
// It maps keys to actions, draws session snapshots and hosts the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/greedycat/internal/session"
)

// UpdateMsg carries one published snapshot and the events since the last
// one. Sub identifies the subscription it came from, so a model ignores
// leftovers from a session it already left.
type UpdateMsg struct {
	session.Update
	Sub *session.Subscription
}

// sessionClosedMsg is sent when a subscription ends.
type sessionClosedMsg struct {
	sub *session.Subscription
}

// waitForUpdate returns a command that blocks on the next update.
// The model re-issues it after every UpdateMsg.
func waitForUpdate(sub *session.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-sub.Updates():
			return UpdateMsg{Update: u, Sub: sub}
		case <-sub.Done():
			return sessionClosedMsg{sub: sub}
		}
	}
}
