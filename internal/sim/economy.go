package sim

import "fmt"

// Income is what side would earn if the turn ended now: a share for every
// owned tile plus the bonus of each live income structure.
func (w *World) Income(side Side) int {
	frac := w.board.OwnershipOf(side)
	tiles := int(frac * float64(w.board.Cols*w.board.Rows))
	total := tiles * w.rules.Economy.IncomePerTile
	w.store.Each(side, func(_ Handle, s *Structure) {
		total += w.specs.Spec(s.Type).Income
	})
	return total
}

// EndTurn pays both sides, lets side B's AI build and returns to Planning.
func (w *World) EndTurn() {
	var earned [sideCount]int
	for side := SideA; side < sideCount; side++ {
		earned[side] = w.Income(side)
	}
	for side := SideA; side < sideCount; side++ {
		w.funds[side] = min(w.funds[side]+earned[side], w.rules.Economy.FundsCap)
		w.stats.Side(side).Income += earned[side]
	}
	w.recordGlobal("economy", "income", fmt.Sprintf("a=+%d b=+%d", earned[SideA], earned[SideB]), float64(earned[SideA]))

	w.PlaceAI(SideB)

	w.phase = PhasePlanning
	w.outcome = OutcomeNone
	w.turn++
	w.remaining = w.rules.Battle.Duration
}

// NextStage moves on to the following stage.
func (w *World) NextStage() {
	next := w.stage + 1
	if err := w.BuildStage(next); err != nil {
		w.recordGlobal("stage", "error", err.Error(), float64(next))
	}
}

// RetryStage rebuilds the current stage from scratch.
func (w *World) RetryStage() {
	if err := w.BuildStage(w.stage); err != nil {
		w.recordGlobal("stage", "error", err.Error(), float64(w.stage))
	}
}
