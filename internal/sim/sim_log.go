package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded engine event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // structure or actor label, or "--" for global events
	Side     string  // "a", "b", or "--"
	Category string  // place, fire, capture, actor, phase, economy, stage
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] b:basic@29,7    capture  captured   a
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-16s %-8s %-10s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events from a World. It is unbounded and meant
// for tests, reports and the frontend event panel.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
	sink    func(SimLogEntry)
}

// NewSimLog creates a SimLog. If verbose is true, per-shot and per-command
// entries are recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// OnAdd registers fn to see every entry as it is recorded.
func (sl *SimLog) OnAdd(fn func(SimLogEntry)) {
	sl.sink = fn
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, side, category, key, value string, numVal float64) {
	e := SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	sl.entries = append(sl.entries, e)
	if sl.sink != nil {
		sl.sink(e)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, side, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, side, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSide returns entries recorded for side.
func (sl *SimLog) FilterSide(side Side) []SimLogEntry {
	var out []SimLogEntry
	label := side.String()
	for _, e := range sl.entries {
		if e.Side == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstOf returns the earliest entry matching category+key.
func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Clear drops every entry.
func (sl *SimLog) Clear() {
	sl.entries = sl.entries[:0]
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable picture of w.
func Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", w.TickCount())
	fmt.Fprintf(&sb, "Stage %d turn %d phase %s outcome %s\n", w.Stage(), w.Turn(), w.Phase(), w.Outcome())

	a, b := w.Board().Ownership()
	fmt.Fprintf(&sb, "Ownership: a=%.1f%%  b=%.1f%%\n", a*100, b*100)
	fmt.Fprintf(&sb, "Funds: a=%d  b=%d\n", w.Funds(SideA), w.Funds(SideB))

	for side := SideA; side < sideCount; side++ {
		counts := map[StructureType]int{}
		w.Structures().Each(side, func(_ Handle, s *Structure) {
			counts[s.Type]++
		})
		fmt.Fprintf(&sb, "Side %s structures: ", side)
		for t := StructureType(0); t < structureTypeCount; t++ {
			if n := counts[t]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", t, n)
			}
		}
		sb.WriteByte('\n')
	}

	player := "none"
	if p := w.Player(); p != nil {
		player = fmt.Sprintf("%s %.0fs left", p.Label(), p.Life-p.Age)
	}
	fmt.Fprintf(&sb, "Player: %s  agents: %d  projectiles: %d\n", player, len(w.Agents()), len(w.Projectiles()))
	return sb.String()
}
