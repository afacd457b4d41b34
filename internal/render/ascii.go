// Package render draws a game as text: the board, the tick, a life bar per
// hero and, in debug mode, what happened during the last tick.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"tota/internal/game"
	"tota/internal/grid"
	"tota/internal/sim"
)

// Icons is the glyph set used for the board and the hero bars.
type Icons struct {
	Things    map[sim.Kind]string
	Empty     string
	Alive     string
	Dead      string
	BarFull   string
	BarEmpty  string
	CellWidth int
	BarLength int
}

var Unicode = Icons{
	Things: map[sim.Kind]string{
		sim.KindTree:    "ϔ",
		sim.KindCreep:   "⚫",
		sim.KindTower:   "♜",
		sim.KindHero:    "⚉",
		sim.KindAncient: "♛",
	},
	Empty:     " ",
	Alive:     "♥",
	Dead:      "☠",
	BarFull:   "█",
	BarEmpty:  "░",
	CellWidth: 2,
	BarLength: 10,
}

// Basic sticks to ASCII for terminals without the unicode glyphs.
var Basic = Icons{
	Things: map[sim.Kind]string{
		sim.KindTree:    "Y",
		sim.KindCreep:   ".",
		sim.KindTower:   "I",
		sim.KindHero:    "o",
		sim.KindAncient: "@",
	},
	Empty:     " ",
	Alive:     "+",
	Dead:      "x",
	BarFull:   "#",
	BarEmpty:  "-",
	CellWidth: 2,
	BarLength: 10,
}

// Palette maps the color names accepted in teams.colors to terminal colors.
var Palette = map[string]color.Attribute{
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"hiblack":   color.FgHiBlack,
	"hired":     color.FgHiRed,
	"higreen":   color.FgHiGreen,
	"hiyellow":  color.FgHiYellow,
	"hiblue":    color.FgHiBlue,
	"himagenta": color.FgHiMagenta,
	"hicyan":    color.FgHiCyan,
	"hiwhite":   color.FgHiWhite,
}

const clearScreen = "\x1b[H\x1b[2J"

type Drawer struct {
	out   io.Writer
	icons Icons
	color bool
	debug bool
	clear bool
}

type Option func(*Drawer)

func WithIcons(i Icons) Option { return func(d *Drawer) { d.icons = i } }

func WithColor(on bool) Option { return func(d *Drawer) { d.color = on } }

// WithDebug appends the events of the last tick to every frame.
func WithDebug() Option { return func(d *Drawer) { d.debug = true } }

// WithClear wipes the terminal before each frame.
func WithClear() Option { return func(d *Drawer) { d.clear = true } }

// New draws to out. Color is on by default only when out is a terminal.
func New(out io.Writer, opts ...Option) *Drawer {
	d := &Drawer{out: out, icons: Unicode}
	if f, ok := out.(*os.File); ok {
		d.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Drawer) Draw(g *game.Game) error {
	_, err := io.WriteString(d.out, d.Frame(g))
	return err
}

// Frame renders g without writing it.
func (d *Drawer) Frame(g *game.Game) string {
	var sb strings.Builder
	if d.clear {
		sb.WriteString(clearScreen)
	}
	w := g.World
	size := w.Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			sb.WriteString(d.cell(g, grid.Position{X: x, Y: y}))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "ticks:%d\n", w.T)

	hs := append([]*sim.Hero(nil), g.Heroes...)
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Name < hs[j].Name })
	for _, h := range hs {
		sb.WriteString(d.paint(h.Team, g, d.heroLine(h)))
		sb.WriteByte('\n')
	}

	if d.debug && w.T > 0 {
		for _, ev := range w.EventsAt(w.T - 1) {
			sb.WriteString(d.paint(ev.Team, g, fmt.Sprintf("%s: %s", ev.Name, ev.Text)))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (d *Drawer) cell(g *game.Game, p grid.Position) string {
	icon := d.icons.Empty
	th, ok := g.World.Get(p)
	if ok {
		if i, known := d.icons.Things[th.Kind()]; known {
			icon = i
		} else {
			icon = "?"
		}
	}
	icon = runewidth.FillRight(icon, d.icons.CellWidth)
	if !ok {
		return icon
	}
	return d.paint(th.Base().Team, g, icon)
}

func (d *Drawer) heroLine(h *sim.Hero) string {
	var bar string
	if h.Alive() {
		n := int(float64(d.icons.BarLength) / h.MaxLife() * h.Life)
		n = min(max(n, 0), d.icons.BarLength)
		bar = d.icons.Alive + " " + strings.Repeat(d.icons.BarFull, n) + strings.Repeat(d.icons.BarEmpty, d.icons.BarLength-n)
	} else {
		bar = d.icons.Dead + " [dead]"
	}
	return fmt.Sprintf("%s(%d) %s (%d)", bar, int(h.Life), h.Name, h.Level())
}

// paint draws s in the team's color. Unknown teams and color names are left
// plain.
func (d *Drawer) paint(team string, g *game.Game, s string) string {
	if !d.color {
		return s
	}
	attr, ok := Palette[g.Settings().Teams.Colors[team]]
	if !ok {
		return s
	}
	// Enabled per color so NO_COLOR and color.NoColor do not override WithColor.
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
