package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
	"github.com/vovakirdan/greedycat/internal/game"
	"github.com/vovakirdan/greedycat/internal/registry"
	"github.com/vovakirdan/greedycat/internal/session"
	"github.com/vovakirdan/greedycat/internal/storage"
)

// FitSettings returns the largest registered profile whose board fits a
// terminal of the given size, falling back to the smallest profile.
func FitSettings(width, height int) core.Settings {
	profiles := registry.List()
	if len(profiles) == 0 {
		return core.DefaultSettings()
	}

	best := profiles[0].Settings
	for _, p := range profiles {
		s := p.Settings
		// Board border plus HUD above and the help line below.
		if s.GridWidth+2 <= width && s.GridHeight+2+hudRows+1 <= height {
			best = s
		}
	}
	return best
}

// AppModel manages the full flow of a player: menu -> game -> menu, with
// the scoreboard one key away. It owns no goroutines; the runner it drives
// is started and stopped by the caller.
type AppModel struct {
	cfg        config.Config
	store      *storage.Store
	runner     *session.Runner
	settings   *core.Settings // Fixed grid, or nil to fit the terminal
	width      int
	height     int
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *GameModel
	quitting   bool
	err        error
}

// NewAppModel creates the top-level model. A nil settings picks a profile
// that fits the terminal each time a game starts.
func NewAppModel(cfg config.Config, store *storage.Store, runner *session.Runner, settings *core.Settings, width, height int) AppModel {
	return AppModel{
		cfg:      cfg,
		store:    store,
		runner:   runner,
		settings: settings,
		width:    width,
		height:   height,
		menu:     NewMenuModel(cfg, store, width, height),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.cfg, m.store, m.width, m.height)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		settings := FitSettings(m.width, m.height)
		if m.settings != nil {
			settings = *m.settings
		}
		gm := NewGameModel(m.runner, m.menu.Selected().Mode, settings, m.width, m.height)
		m.game = &gm
		return m, gm.Init()
	}

	return m, cmd
}

func (m AppModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.BackToMenu():
		return m.backToMenu()
	case m.game.IsQuitting():
		m.err = m.game.Err()
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// backToMenu rebuilds the menu so high scores are fresh.
func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.cfg, m.store, m.width, m.height)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the app, if any.
func (m AppModel) Err() error {
	return m.err
}

// RunApp runs the interactive app on the local terminal.
func RunApp(cfg config.Config, store *storage.Store, runner *session.Runner, settings *core.Settings, width, height int) error {
	model := NewAppModel(cfg, store, runner, settings, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(AppModel); ok {
		return m.Err()
	}
	return nil
}

// Run plays a single session of mode without the menu.
func Run(runner *session.Runner, mode string, settings core.Settings, width, height int) error {
	model := NewGameModel(runner, game.Mode(mode), settings, width, height)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(GameModel); ok {
		return m.Err()
	}
	return nil
}
