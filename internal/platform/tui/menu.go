package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/game"
	"github.com/vovakirdan/greedycat/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// MenuItem is one playable mode.
type MenuItem struct {
	Mode        game.Mode
	Title       string
	Description string
	Tags        []string // Short rule notes, e.g. "2:00 limit"
	HighScore   int
}

// modeTags summarizes how a mode differs from plain snake.
func modeTags(mc config.ModeConfig) []string {
	var tags []string
	if mc.TimeLimit > 0 {
		tags = append(tags, clock(mc.TimeLimit)+" limit")
	}
	if mc.SpeedMultiplier > 0 && mc.SpeedMultiplier != 1 {
		tags = append(tags, fmt.Sprintf("x%.1f speed", mc.SpeedMultiplier))
	}
	if mc.Obstacles {
		tags = append(tags, "obstacles")
	}
	if mc.PowerUps {
		tags = append(tags, "power-ups")
	}
	return tags
}

// MenuModel is the Bubble Tea model for the mode picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a mode
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing the modes of cfg.
func NewMenuModel(cfg config.Config, store *storage.Store, width, height int) MenuModel {
	items := make([]MenuItem, 0, len(cfg.Modes))
	for _, mc := range cfg.Modes {
		item := MenuItem{
			Mode:        game.Mode(mc.Name),
			Title:       humanize(mc.Name),
			Description: mc.Description,
			Tags:        modeTags(mc),
		}
		if store != nil {
			if high, err := store.LoadHighScore(item.Mode); err == nil {
				item.HighScore = high
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("  G R E E D Y   C A T  "),
		"",
		"Choose a mode",
		"",
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%-12s  best %d", item.Title, item.HighScore)
		if i == m.cursor {
			lines = append(lines, menuActiveStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	if len(m.items) > 0 {
		item := m.items[m.cursor]
		lines = append(lines, "", menuDimStyle.Render(item.Description))
		if len(item.Tags) > 0 {
			lines = append(lines, menuDimStyle.Render(strings.Join(item.Tags, " · ")))
		}
	}
	lines = append(lines, "", "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit")

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width. Styled text is measured
// by its visible width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
