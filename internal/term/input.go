package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// cellAt maps a terminal position to the board cell drawn there.
func cellAt(b *sim.Board, x, y int) (sim.Cell, bool) {
	if x < boardLeft || y < boardTop {
		return sim.Cell{}, false
	}
	c := sim.Cell{X: (x - boardLeft) / cellCols, Y: y - boardTop}
	if !b.InBounds(c) {
		return sim.Cell{}, false
	}
	return c, true
}

// handleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		if c, ok := cellAt(a.world.Board(), x, y); ok {
			a.hover = sim.Some(c)
		} else {
			a.hover = sim.Maybe[sim.Cell]{}
		}
		// Clicks fire on the press edge only; a held button is one click.
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.mouseDown {
			a.click = true
		}
		a.mouseDown = down
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.confirm = true
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r == ' ':
		a.confirm = true
	case r == 's':
		a.skip = true
	case r == 'p':
		a.paused = !a.paused
	case r >= '1' && r <= '9':
		if i := int(r - '1'); i < len(sim.BuildableTypes) {
			a.world.Select(sim.BuildableTypes[i])
		}
	}
	return true
}
