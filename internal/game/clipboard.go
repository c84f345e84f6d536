package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// reportLogLines is how many recent log lines the copied report carries.
const reportLogLines = 40

// debugReport assembles the text placed on the clipboard: the world summary,
// the reporter window and the tail of the simulation log.
func debugReport(w *sim.World, r *sim.Reporter, seed int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Ink Wars report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d\n\n", seed, w.TickCount())
	b.WriteString(sim.Summary(w))
	b.WriteString("\n")
	if ws := r.WindowSummary(); ws != nil {
		b.WriteString(ws.Format())
		b.WriteString("\n")
	}

	entries := w.Log().Entries()
	if len(entries) > reportLogLines {
		entries = entries[len(entries)-reportLogLines:]
	}
	fmt.Fprintf(&b, "== last %d log entries ==\n", len(entries))
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}

// copyReport writes the debug report to the system clipboard and reports
// the result in the HUD.
func (g *Game) copyReport() {
	if err := clipboard.WriteAll(debugReport(g.world, g.reporter, g.seed)); err != nil {
		g.setStatus(fmt.Sprintf("copy failed: %v", err))
		return
	}
	g.setStatus("report copied to clipboard")
}
