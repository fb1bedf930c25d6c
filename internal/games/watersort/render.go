package watersort

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/watersort/internal/core"
	wcore "github.com/vovakirdan/watersort/internal/games/watersort/core"
)

const (
	bottleW   = 5 // border, three liquid cells, border
	slotW     = bottleW + 1
	hudHeight = 3
	footerH   = 2
	minWidth  = 40
)

// liquidColors maps liquids to screen colors.
var liquidColors = map[wcore.Liquid]core.Color{
	wcore.LiquidRed:    core.ColorRed,
	wcore.LiquidBlue:   core.ColorBlue,
	wcore.LiquidGreen:  core.ColorGreen,
	wcore.LiquidYellow: core.ColorYellow,
	wcore.LiquidPurple: core.ColorMagenta,
	wcore.LiquidOrange: core.ColorOrange,
}

// layout describes where bottles go for the current screen and level.
type layout struct {
	perRow int
	rows   int
	blockH int // lift row, cap, body, base, label, cursor
}

func (g *Game) layout() layout {
	l := layout{perRow: (g.screenW - 2) / slotW}
	if l.perRow < 1 {
		l.perRow = 1
	}
	capacity := wcore.DefaultCapacity
	n := 0
	if g.level != nil {
		capacity = g.level.Capacity
		n = g.level.Len()
	}
	l.rows = (n + l.perRow - 1) / l.perRow
	if l.rows < 1 {
		l.rows = 1
	}
	l.blockH = capacity + 5
	return l
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	l := g.layout()
	needH := hudHeight + l.rows*l.blockH + footerH
	g.tooSmall = g.screenW < minWidth || g.screenH < needH
}

// origin returns the top-left corner of bottle i's block (the lift row).
func (g *Game) origin(l layout, i int) (int, int) {
	n := g.level.Len()
	r := i / l.perRow
	c := i % l.perRow
	cols := min(l.perRow, n-r*l.perRow)
	rowW := cols*slotW - 1
	x := (g.screenW-rowW)/2 + c*slotW
	y := hudHeight + r*l.blockH
	return x, y
}

// HitTest returns the bottle drawn at screen position (x, y), or -1.
func (g *Game) HitTest(x, y int) int {
	if g.level == nil || g.tooSmall {
		return -1
	}
	l := g.layout()
	for i := 0; i < g.level.Len(); i++ {
		bx, by := g.origin(l, i)
		if core.NewRect(bx, by, bottleW, l.blockH).Contains(x, y) {
			return i
		}
	}
	return -1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)

	l := g.layout()
	for i := 0; i < g.level.Len(); i++ {
		g.renderBottle(dst, l, i)
	}

	g.renderFooter(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, level and pour counter.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, "WATER SORT")

	info := fmt.Sprintf("Level %d  %s", g.levelIndex, g.level.Profile.Name)
	if g.fixed != nil {
		info = "Level file  " + g.level.Profile.Name
	}
	dst.DrawText(2, 1, info)

	pours := fmt.Sprintf("Pours: %d", g.pours)
	dst.DrawText(g.screenW-len(pours)-2, 1, pours)
}

// unitsShown returns the units drawn for bottle i. While a pour is staged the
// moved units are still shown on the source and hidden on the target, and
// shift over one at a time as the stage runs down.
func (g *Game) unitsShown(i int) []wcore.Liquid {
	units := g.level.Bottle(i).Units()
	if g.stageTicks == 0 || g.stageLen == 0 {
		return units
	}

	res := g.lastPour
	inFlight := (res.Amount*g.stageTicks + g.stageLen - 1) / g.stageLen
	switch i {
	case res.Source:
		for k := 0; k < inFlight; k++ {
			units = append(units, res.Color)
		}
	case res.Target:
		units = units[:len(units)-inFlight]
	}
	return units
}

func (g *Game) renderBottle(dst *core.Screen, l layout, i int) {
	b := g.level.Bottle(i)
	x, y := g.origin(l, i)
	if g.selected != i {
		y++ // held bottles are drawn lifted by one row
	}

	border := core.ColorGray
	if g.cursor == i {
		border = core.ColorBrightWhite
	}

	// Stopper on completed bottles
	if b.IsCompleted() && g.stageTicks == 0 {
		dst.DrawText(x+1, y, "▄▄▄")
	}

	units := g.unitsShown(i)
	capacity := b.Capacity()
	for k := 0; k < capacity; k++ {
		row := y + 1 + k
		slot := capacity - 1 - k
		dst.SetCell(x, row, '│', border)
		dst.SetCell(x+bottleW-1, row, '│', border)
		if slot < len(units) {
			dst.DrawTextColor(x+1, row, "███", liquidColors[units[slot]])
		}
	}
	base := y + 1 + capacity
	dst.DrawTextColor(x, base, "╰───╯", border)

	label := strconv.Itoa(i + 1)
	dst.DrawText(x+(bottleW-len(label))/2, base+1, label)
	if g.cursor == i {
		dst.SetCell(x+bottleW/2, base+2, '▲', core.ColorBrightWhite)
	}
}

// renderFooter draws the status line.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.screenH - footerH
	var msg string
	color := core.ColorDefault

	switch {
	case g.paused:
		msg = "PAUSED"
	case g.outcome == core.OutcomeWon && g.fixed != nil:
		msg = fmt.Sprintf("Solved in %d pours!  R: replay", g.pours)
		color = core.ColorBrightGreen
	case g.outcome == core.OutcomeWon:
		msg = fmt.Sprintf("Solved in %d pours!  Enter: next level  R: replay", g.pours)
		color = core.ColorBrightGreen
	case g.outcome == core.OutcomeStuck:
		msg = "No moves left.  R: restart"
		color = core.ColorBrightRed
	case g.selected >= 0:
		msg = fmt.Sprintf("Holding bottle %d, pick a bottle to pour into", g.selected+1)
	}
	if msg == "" {
		return
	}

	x := (g.screenW - len([]rune(msg))) / 2
	dst.DrawTextColor(x, y, msg, color)
}
