package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
	"github.com/vovakirdan/greedycat/internal/game"
	"github.com/vovakirdan/greedycat/internal/session"
	"github.com/vovakirdan/greedycat/internal/storage"
)

// updateBuffer is the subscription depth for a model. Rendering only
// needs the newest snapshot, but events ride along with every update.
const updateBuffer = 32

// startFailedMsg reports that the runner rejected the session.
type startFailedMsg struct{ err error }

// NewRunner builds an engine and its runner. Finished sessions are
// appended to the store's score history when store is non-nil.
func NewRunner(cfg config.Config, store *storage.Store, logger *log.Logger, seed int64) *session.Runner {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []game.Option{game.WithSeed(seed), game.WithLogger(logger)}
	if store != nil {
		opts = append(opts, game.WithStore(store))
	}
	engine := game.New(cfg, opts...)

	return session.NewRunner(engine,
		session.WithLogger(logger),
		session.WithResultHandler(func(res game.SessionResult) {
			if store == nil {
				return
			}
			if _, err := store.SaveResult(res); err != nil {
				logger.Warn("could not save score", "mode", res.Mode, "error", err)
			}
		}),
	)
}

// GameModel is the Bubble Tea model for one game session. The simulation
// runs on the runner's goroutine; the model forwards actions and draws
// whatever the runner publishes.
type GameModel struct {
	runner    *session.Runner
	sub       *session.Subscription
	mode      game.Mode
	settings  core.Settings
	snap      game.Snapshot
	board     *Board
	screen    *core.Screen
	keyMapper *KeyMapper
	help      help.Model
	err       error
	quitting  bool
	backTo    bool

	// quitOnBack ends the program on B when there is no menu to return to.
	quitOnBack bool
}

// NewGameModel creates a model that starts mode on runner when initialized.
func NewGameModel(runner *session.Runner, mode game.Mode, settings core.Settings, width, height int) GameModel {
	h := help.New()
	h.Width = width

	return GameModel{
		runner:    runner,
		sub:       runner.Subscribe(updateBuffer),
		mode:      mode,
		settings:  settings,
		snap:      runner.Snapshot(),
		board:     NewBoard(),
		screen:    core.NewScreen(width, max(height-1, 1)),
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init starts the session and begins listening for updates.
func (m GameModel) Init() tea.Cmd {
	runner, mode, settings := m.runner, m.mode, m.settings
	start := func() tea.Msg {
		if err := runner.Start(context.Background(), mode, settings); err != nil {
			return startFailedMsg{err: err}
		}
		return nil
	}
	return tea.Batch(start, waitForUpdate(m.sub))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case UpdateMsg:
		if msg.Sub != m.sub {
			return m, nil
		}
		m.snap = msg.Snapshot
		m.board.Push(msg.Events)
		return m, waitForUpdate(m.sub)

	case startFailedMsg:
		m.err = msg.err
		m.quitting = true
		m.sub.Close()
		return m, tea.Quit

	case sessionClosedMsg:
		if msg.sub == m.sub && !m.backTo {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionBack:
		// Only a stopped board can be left; B mid-run is ignored.
		if m.snap.State == game.StatePaused || m.snap.State == game.StateGameOver {
			m.leave()
			m.backTo = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.runner.Send(action)
	return m, nil
}

// leave returns the engine to the menu and stops listening.
func (m *GameModel) leave() {
	m.runner.Send(core.ActionBack)
	m.sub.Close()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.board.Draw(m.screen, m.snap)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".greedycat", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.mode, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backTo {
		return ""
	}

	m.board.Draw(m.screen, m.snap)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Snapshot returns the last snapshot the model received.
func (m GameModel) Snapshot() game.Snapshot {
	return m.snap
}

// Err returns the error that ended the model, if any.
func (m GameModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backTo
}
