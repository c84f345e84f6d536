package sim

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour
// reports (10s at 60TPS).
const reportWindowTicks = 600

// SideReport is one side's state at one point in time.
type SideReport struct {
	Ownership  float64
	Funds      int
	Structures map[StructureType]int
	HQHealth   float64 // fraction of max HP, 0 once destroyed
	Counters   SideStats
}

// SimReport is a snapshot of a world at one tick.
type SimReport struct {
	Tick        int
	Stage       int
	Turn        int
	Phase       Phase
	Outcome     Outcome
	Sides       [sideCount]SideReport
	Projectiles int
	Agents      int
	PlayerAlive bool
}

// Reporter collects periodic snapshots and summarises them over a sliding
// window of ticks.
type Reporter struct {
	history     []SimReport
	windowTicks int
}

// NewReporter creates a reporter with the given window size.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{windowTicks: windowTicks}
}

// Snapshot captures w as it stands.
func Snapshot(w *World) SimReport {
	rpt := SimReport{
		Tick:        w.TickCount(),
		Stage:       w.Stage(),
		Turn:        w.Turn(),
		Phase:       w.Phase(),
		Outcome:     w.Outcome(),
		Projectiles: len(w.Projectiles()),
		Agents:      len(w.Agents()),
		PlayerAlive: w.Player() != nil,
	}
	for side := SideA; side < sideCount; side++ {
		sr := SideReport{
			Ownership:  w.Board().OwnershipOf(side),
			Funds:      w.Funds(side),
			Structures: make(map[StructureType]int),
			Counters:   *w.Stats().Side(side),
		}
		w.Structures().Each(side, func(_ Handle, s *Structure) {
			sr.Structures[s.Type]++
		})
		if hq, ok := w.Structures().Get(w.HQ(side)); ok {
			sr.HQHealth = hq.HP / w.Specs().Spec(StructureHQ).MaxHP
		}
		rpt.Sides[side] = sr
	}
	return rpt
}

// Collect appends a snapshot of w. Call it periodically (e.g. every 60
// ticks).
func (r *Reporter) Collect(w *World) {
	r.history = append(r.history, Snapshot(w))
}

// Latest returns the most recent snapshot, or nil.
func (r *Reporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected snapshots.
func (r *Reporter) History() []SimReport {
	return r.history
}

// WindowReport aggregates the snapshots of the last window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int
	AvgOwnership     [sideCount]float64
	MinOwnership     [sideCount]float64
	MaxOwnership     [sideCount]float64
	Captures         [sideCount]int // gained inside the window
	Shots            [sideCount]int
}

// WindowSummary summarises the snapshots within the configured window ending
// at the latest one.
func (r *Reporter) WindowSummary() *WindowReport {
	last := r.Latest()
	if last == nil {
		return nil
	}
	from := last.Tick - r.windowTicks
	var first *SimReport
	wr := &WindowReport{ToTick: last.Tick}
	for side := range wr.MinOwnership {
		wr.MinOwnership[side] = 1
	}
	for i := range r.history {
		rpt := &r.history[i]
		if rpt.Tick < from {
			continue
		}
		if first == nil {
			first = rpt
			wr.FromTick = rpt.Tick
		}
		wr.SampleCount++
		for side := SideA; side < sideCount; side++ {
			o := rpt.Sides[side].Ownership
			wr.AvgOwnership[side] += o
			wr.MinOwnership[side] = min(wr.MinOwnership[side], o)
			wr.MaxOwnership[side] = max(wr.MaxOwnership[side], o)
		}
	}
	for side := SideA; side < sideCount; side++ {
		wr.AvgOwnership[side] /= float64(wr.SampleCount)
		wr.Captures[side] = last.Sides[side].Counters.Captures - first.Sides[side].Counters.Captures
		wr.Shots[side] = last.Sides[side].Counters.Shots - first.Sides[side].Counters.Shots
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Battle Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	sb.WriteString("\n--- Ownership ---\n")
	for side := SideA; side < sideCount; side++ {
		fmt.Fprintf(&sb, "  %s: avg=%5.1f%%  min=%5.1f%%  max=%5.1f%%  (%s)\n", side,
			wr.AvgOwnership[side]*100, wr.MinOwnership[side]*100, wr.MaxOwnership[side]*100,
			trendLabel(wr.MaxOwnership[side]-wr.MinOwnership[side]))
	}
	sb.WriteString("\n--- Activity ---\n")
	for side := SideA; side < sideCount; side++ {
		fmt.Fprintf(&sb, "  %s: shots=%d  captures=%d\n", side, wr.Shots[side], wr.Captures[side])
	}
	return sb.String()
}

func trendLabel(swing float64) string {
	switch {
	case swing > 0.25:
		return "landslide"
	case swing > 0.10:
		return "shifting"
	case swing > 0.02:
		return "contested"
	default:
		return "static"
	}
}

// Format returns a concise multi-line rendering of the snapshot.
func (rpt *SimReport) Format() string {
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d stage=%d turn=%d phase=%s outcome=%s ---\n",
		rpt.Tick, rpt.Stage, rpt.Turn, rpt.Phase, rpt.Outcome)
	for side := SideA; side < sideCount; side++ {
		sr := &rpt.Sides[side]
		fmt.Fprintf(&sb, "%s: own=%5.1f%% funds=%d hq=%3.0f%%  shots=%d captures=%d lost=%d explosions=%d\n",
			side, sr.Ownership*100, sr.Funds, sr.HQHealth*100,
			sr.Counters.Shots, sr.Counters.Captures, sr.Counters.Lost, sr.Counters.Explosions)
		sb.WriteString("   ")
		for t := StructureType(0); t < structureTypeCount; t++ {
			if n := sr.Structures[t]; n > 0 {
				fmt.Fprintf(&sb, " %s=%d", t, n)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "projectiles=%d agents=%d player=%v\n", rpt.Projectiles, rpt.Agents, rpt.PlayerAlive)
	return sb.String()
}

// FormatLatest returns the most recent snapshot formatted.
func (r *Reporter) FormatLatest() string {
	return r.Latest().Format()
}
