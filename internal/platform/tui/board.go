package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vovakirdan/greedycat/internal/core"
	"github.com/vovakirdan/greedycat/internal/game"
)

// Board layout constants
const (
	hudRows       = 3 // Status line, effects line, separator
	maxToasts     = 3
	toastDuration = 2 * time.Second
)

type toast struct {
	text  string
	color core.Color
	until time.Duration // Session time the toast disappears at
}

// Board draws session snapshots onto a screen buffer and keeps the short
// notifications raised by gameplay events.
type Board struct {
	toasts   []toast
	lastTick uint64
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Push records the notifications for a batch of events.
func (b *Board) Push(events []game.Event) {
	for _, ev := range events {
		text, color, ok := eventText(ev)
		if !ok {
			continue
		}
		b.toasts = append(b.toasts, toast{text: text, color: color, until: ev.At + toastDuration})
	}
	if len(b.toasts) > maxToasts {
		b.toasts = b.toasts[len(b.toasts)-maxToasts:]
	}
}

// Draw renders s into dst.
func (b *Board) Draw(dst *core.Screen, s game.Snapshot) {
	dst.Clear()

	// A restart rewinds session time; old toasts would linger.
	if s.Tick < b.lastTick {
		b.toasts = nil
	}
	b.lastTick = s.Tick

	if s.State == game.StateMenu || len(s.Cat) == 0 {
		renderOverlay(dst, "Greedy Cat", "Waiting for a game")
		return
	}

	cellW := 1
	if dst.Width() >= s.Width*2+2 {
		cellW = 2
	}
	boardW := s.Width*cellW + 2
	boardH := s.Height + 2
	if dst.Width() < boardW || dst.Height() < hudRows+boardH {
		renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", boardW, hudRows+boardH, dst.Width(), dst.Height()))
		return
	}

	renderHUD(dst, s)

	g := grid{dst: dst, x: (dst.Width() - boardW) / 2, y: hudRows, cellW: cellW}
	dst.DrawBox(core.NewRect(g.x, g.y, boardW, boardH), core.ColorGray)

	for _, o := range s.Obstacles {
		r, c := obstacleGlyph(o.Type)
		g.plot(o.Position, r, c)
	}
	for _, p := range s.PowerUps {
		r, c := powerUpGlyph(p.Type)
		g.plot(p.Position, r, c)
	}
	if s.Food.Valid() {
		r, c := foodGlyph(s.Food.Type)
		g.plot(s.Food.Position, r, c)
	}
	for _, a := range s.Attacks {
		g.plot(a.Position, 'x', core.ColorRed)
	}
	if s.Boss != nil {
		g.plot(s.Boss.Position, 'B', core.ColorBrightRed)
	}
	renderCat(g, s)

	below := g.y + boardH
	if s.Boss != nil {
		line := fmt.Sprintf("%s %s  f/x: attack", humanize(string(s.Boss.Type)), healthBar(s.Boss.Health, s.Boss.MaxHealth))
		dst.DrawTextCentered(below, line, core.ColorBrightRed)
		below++
	}
	for i := len(b.toasts) - 1; i >= 0; i-- {
		t := b.toasts[i]
		if s.Time >= t.until {
			continue
		}
		dst.DrawTextCentered(below, t.text, t.color)
		below++
	}

	switch {
	case s.State == game.StatePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case s.Outcome == game.OutcomeVictory:
		renderOverlay(dst, "Victory!", fmt.Sprintf("Final Score: %d", s.Score), "R: restart  B: menu")
	case s.Outcome == game.OutcomeTimeUp:
		renderOverlay(dst, "Time's Up!", fmt.Sprintf("Final Score: %d", s.Score), "R: restart  B: menu")
	case s.State == game.StateGameOver:
		renderOverlay(dst, "Game Over", outcomeText(s.Outcome), "R: restart  B: menu")
	}
}

// grid maps board cells to screen coordinates inside the border.
type grid struct {
	dst   *core.Screen
	x, y  int
	cellW int
}

func (g grid) plot(p core.Position, r rune, c core.Color) {
	g.dst.SetColored(g.x+1+p.X*g.cellW, g.y+1+p.Y, r, c)
}

func renderCat(g grid, s game.Snapshot) {
	body, head := core.ColorYellow, core.ColorBrightYellow
	if s.Invincible {
		body, head = core.ColorMagenta, core.ColorBrightMagenta
	}
	if s.Dashing {
		head = core.ColorBrightCyan
	}

	// Tail first so the head wins on overlap.
	for i := len(s.Cat) - 1; i > 0; i-- {
		g.plot(s.Cat[i], 'o', body)
	}
	g.plot(s.Cat[0], headRune(s.Direction), head)
}

// renderHUD draws the two status lines and the separator.
func renderHUD(dst *core.Screen, s game.Snapshot) {
	hud := fmt.Sprintf(" Greedy Cat (%s) | Score: %d  Hi: %d  Level: %d  Length: %d",
		s.Mode, s.Score, s.HighScore, s.Level, len(s.Cat))
	dst.DrawText(0, 0, hud)

	x := 1
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 1, text, c)
		x += len([]rune(text)) + 2
	}

	if s.Multiplier > 1 {
		put(fmt.Sprintf("Combo x%d", s.Multiplier), core.ColorBrightGreen)
	}
	if s.TimeLimited {
		c := core.ColorWhite
		if s.TimeRemaining <= 10*time.Second {
			c = core.ColorBrightRed
		}
		put("Time "+clock(s.TimeRemaining), c)
	}
	switch {
	case s.Dashing:
		put("Dash!", core.ColorBrightCyan)
	case s.CanDash:
		put("Dash: ready", core.ColorCyan)
	default:
		put("Dash: cooling", core.ColorGray)
	}
	for _, e := range s.Effects {
		c := core.ColorBrightBlue
		if e.ExpiringSoon {
			c = core.ColorRed
		}
		put(fmt.Sprintf("[%s %.1fs]", humanize(string(e.Type)), e.Remaining.Seconds()), c)
	}

	for x := range dst.Width() {
		dst.Set(x, 2, '─')
	}
}

// renderOverlay draws a centered box with the given lines.
func renderOverlay(dst *core.Screen, lines ...string) {
	w, h := dst.Width(), dst.Height()

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorBrightWhite
		}
		dst.DrawTextCentered(boxY+2+i, l, c)
	}
}

func headRune(d core.Direction) rune {
	switch d {
	case core.DirUp:
		return '^'
	case core.DirDown:
		return 'v'
	case core.DirLeft:
		return '<'
	default:
		return '>'
	}
}

func foodGlyph(t game.FoodType) (rune, core.Color) {
	switch t {
	case game.FoodMediumFish:
		return '%', core.ColorBrightCyan
	case game.FoodLargeFish:
		return '&', core.ColorBrightMagenta
	default:
		return '*', core.ColorCyan
	}
}

func obstacleGlyph(t game.ObstacleType) (rune, core.Color) {
	switch t {
	case game.ObstacleSpike:
		return '^', core.ColorRed
	case game.ObstacleIce:
		return '=', core.ColorBrightBlue
	default:
		return '#', core.ColorGray
	}
}

func powerUpGlyph(t game.PowerUpType) (rune, core.Color) {
	switch t {
	case game.PowerUpSpeedBoost:
		return 'S', core.ColorBrightGreen
	case game.PowerUpDoublePoints:
		return '2', core.ColorBrightYellow
	case game.PowerUpInvincibility:
		return 'I', core.ColorBrightMagenta
	default:
		return 'M', core.ColorBlue
	}
}

func healthBar(health, maxHealth int) string {
	if maxHealth <= 0 {
		return "[]"
	}
	health = core.Clamp(health, 0, maxHealth)
	return "[" + strings.Repeat("#", health) + strings.Repeat("-", maxHealth-health) + "]"
}

func outcomeText(o game.Outcome) string {
	switch o {
	case game.OutcomeWallCollision:
		return "Hit the wall"
	case game.OutcomeObstacleCollision:
		return "Hit an obstacle"
	case game.OutcomeSelfCollision:
		return "Bit your own tail"
	default:
		return string(o)
	}
}

// clock formats d as m:ss, rounding up so 0:00 only shows at the end.
func clock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// humanize turns an identifier like "giantFish" into "Giant Fish".
func humanize(id string) string {
	var b strings.Builder
	for i, r := range id {
		switch {
		case i == 0:
			r = unicode.ToUpper(r)
		case unicode.IsUpper(r):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// eventText returns the notification for an event, if it has one.
func eventText(ev game.Event) (string, core.Color, bool) {
	switch ev.Kind {
	case game.EventCombo:
		return fmt.Sprintf("Combo x%d!", ev.Value), core.ColorBrightGreen, true
	case game.EventStreak:
		return fmt.Sprintf("Streak %d! +%d", ev.Value, ev.Points), core.ColorBrightGreen, true
	case game.EventLargeFish:
		return fmt.Sprintf("Big catch! +%d", ev.Points), core.ColorBrightMagenta, true
	case game.EventScoreMilestone:
		return fmt.Sprintf("%d points!", ev.Value), core.ColorBrightYellow, true
	case game.EventGrowthMilestone:
		return fmt.Sprintf("Length %d!", ev.Value), core.ColorYellow, true
	case game.EventPowerUpCollected:
		return humanize(ev.Message) + "!", core.ColorBrightBlue, true
	case game.EventPowerUpCombo:
		return fmt.Sprintf("%s! +%d", ev.Message, ev.Points), core.ColorBrightMagenta, true
	case game.EventPowerUpExpired:
		return humanize(ev.Message) + " wore off", core.ColorGray, true
	case game.EventDifficultyUp:
		if ev.Message != "" {
			return ev.Message, core.ColorOrange, true
		}
		return fmt.Sprintf("Level %d", ev.Value), core.ColorOrange, true
	case game.EventBossSpawned:
		return humanize(ev.Message) + " appeared!", core.ColorBrightRed, true
	case game.EventBossHit:
		return fmt.Sprintf("Hit! %d left", ev.Value), core.ColorRed, true
	case game.EventBossDefeated:
		return fmt.Sprintf("%s defeated! +%d", humanize(ev.Message), ev.Points), core.ColorBrightYellow, true
	case game.EventTimeRunningOut:
		return fmt.Sprintf("%ds left!", ev.Value), core.ColorBrightRed, true
	case game.EventNewHighScore:
		return "New high score!", core.ColorBrightYellow, true
	case game.EventAchievement:
		return "Achievement: " + game.Achievement(ev.Message).Title(), core.ColorBrightYellow, true
	}
	return "", core.ColorDefault, false
}
