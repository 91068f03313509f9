package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/game"
	"github.com/vovakirdan/greedycat/internal/storage"
)

const (
	minWidthForSidebar = 90 // Below this the modes become tabs above the table
	sidebarWidth       = 22
	maxScores          = 100
)

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreTab        = scoreActive.Background(lipgloss.Color("57")).Padding(0, 1)
	scorePanel      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextMode, k.PrevMode}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings. Mode switching
// accepts both arrows and tab so it works in narrow terminals too.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextMode: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the score history of one mode at a time, the
// best score of every mode and the lifetime achievement count.
type ScoreboardModel struct {
	modes      []game.Mode
	modeCursor int
	store      *storage.Store

	scores   []storage.ScoreEntry
	perMode  map[game.Mode]*storage.ModeStats
	lifetime game.Stats

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard with one page per mode of cfg.
// A nil store shows empty pages.
func NewScoreboardModel(cfg config.Config, store *storage.Store, width, height int) ScoreboardModel {
	modes := make([]game.Mode, len(cfg.Modes))
	for i, mc := range cfg.Modes {
		modes[i] = game.Mode(mc.Name)
	}

	m := ScoreboardModel{
		modes:  modes,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	if store != nil {
		if all, err := store.AllModeStats(); err == nil {
			m.perMode = all
		}
		if stats, err := store.LoadStats(); err == nil {
			m.lifetime = stats
		}
	}

	m.table = m.newTable()
	m.showMode(0)
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Length", Width: 6},
		{Title: "Outcome", Width: 9},
		{Title: "Date", Width: 12},
	}

	// Spare width goes to the outcome column.
	avail := m.width - 8
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	if spare := avail - 49; spare > 0 {
		columns[3].Width += min(spare, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	return t
}

// showMode switches to mode i and reloads its history.
func (m *ScoreboardModel) showMode(i int) {
	if len(m.modes) == 0 {
		return
	}
	m.modeCursor = (i%len(m.modes) + len(m.modes)) % len(m.modes)

	m.scores = nil
	if m.store != nil {
		if scores, err := m.store.TopScores(m.modes[m.modeCursor], maxScores); err == nil {
			m.scores = scores
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Length),
			outcomeLabel(s.Outcome),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func outcomeLabel(o game.Outcome) string {
	switch o {
	case game.OutcomeVictory:
		return "victory"
	case game.OutcomeTimeUp:
		return "time up"
	case game.OutcomeWallCollision:
		return "wall"
	case game.OutcomeObstacleCollision:
		return "obstacle"
	case game.OutcomeSelfCollision:
		return "tail"
	default:
		return string(o)
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.showMode(m.modeCursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.showMode(m.modeCursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.modes) > 0 {
		title += " - " + humanize(string(m.modes[m.modeCursor]))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(scoreTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", scorePanel.Render(m.renderHistory())))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(scorePanel.Render(m.renderHistory()))
	}

	b.WriteString("\n")
	b.WriteString(scoreDimStyle.Render(m.lifetimeLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderSidebar lists every mode with its best score.
func (m ScoreboardModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString("Modes\n")
	for i, mode := range m.modes {
		best := 0
		if ms, ok := m.perMode[mode]; ok {
			best = ms.HighScore
		}
		line := fmt.Sprintf("%-12s %5d", truncate(humanize(string(mode)), 12), best)
		if i == m.modeCursor {
			b.WriteString(scoreActive.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return scorePanel.Width(sidebarWidth).Render(strings.TrimSuffix(b.String(), "\n"))
}

// renderTabs shows the modes in one line, or only the current one with
// arrows when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		name := truncate(humanize(string(mode)), 10)
		if i == m.modeCursor {
			tabs[i] = scoreTab.Render(name)
		} else {
			tabs[i] = scoreDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.modes) > 0 {
		line = "< " + humanize(string(m.modes[m.modeCursor])) + " >"
	}
	return line
}

func (m ScoreboardModel) renderHistory() string {
	if len(m.scores) == 0 {
		return scoreDimStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	out := m.table.View()
	if len(m.modes) > 0 {
		if ms, ok := m.perMode[m.modes[m.modeCursor]]; ok && ms.GamesCount > 0 {
			out += "\n" + scoreDimStyle.Render(fmt.Sprintf("%d games  avg %.0f  total %d",
				ms.GamesCount, ms.AvgScore, ms.TotalScore))
		}
	}
	return out
}

func (m ScoreboardModel) lifetimeLine() string {
	return fmt.Sprintf(" %d games  %d fish  best combo %d  achievements %d/%d",
		m.lifetime.GamesPlayed, m.lifetime.TotalFoodEaten, m.lifetime.MaxCombo,
		len(m.lifetime.Unlocked), len(game.Achievements))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
