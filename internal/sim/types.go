// Package sim is the battle-phase engine of Ink Wars: the painted grid, the
// structures standing on it, the projectiles they fire, the roaming actors
// and the phase machine that drives one battle at a time. It has no rendering,
// audio or window code; frontends feed it Input and receive Effects.
package sim

import (
	"fmt"
	"math"
)

// Side identifies one of the two players. SideA is the human (blue) side and
// paints toward 1; SideB is the AI (red) side and paints toward 0.
type Side uint8

const (
	SideA Side = iota
	SideB
	sideCount
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// PaintSign is +1 for SideA and -1 for SideB.
func (s Side) PaintSign() float64 {
	if s == SideA {
		return 1
	}
	return -1
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "a"
	case SideB:
		return "b"
	default:
		return "--"
	}
}

// Phase is the state of the turn machine.
type Phase uint8

const (
	PhasePlanning Phase = iota
	PhaseSimulating
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseSimulating:
		return "simulating"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Outcome is the result shown in the Summary phase, from SideA's view.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeTurnEnd
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeTurnEnd:
		return "turn_end"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Vec2 is a point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// WithLen returns v rescaled to length l, or the zero vector when v is zero.
func (v Vec2) WithLen(l float64) Vec2 {
	n := v.Len()
	if n == 0 {
		return Vec2{}
	}
	return v.Scale(l / n)
}

// Maybe is an optional value. The zero value is empty.
type Maybe[T any] struct {
	v  T
	ok bool
}

// Some wraps v.
func Some[T any](v T) Maybe[T] { return Maybe[T]{v: v, ok: true} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.v, m.ok }

// Present reports whether a value is held.
func (m Maybe[T]) Present() bool { return m.ok }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
