package sim

import "fmt"

// hitStopScale is the time dilation applied while a hit-stop is running.
const hitStopScale = 0.0

// Tick advances the world by dt real seconds, reading one frame of input.
func (w *World) Tick(dt float64, in Input) {
	if in == nil {
		in = NoInput{}
	}
	w.tick++
	switch w.phase {
	case PhasePlanning:
		w.tickPlanning(dt, in)
	case PhaseSimulating:
		w.tickBattle(dt, in)
	case PhaseSummary:
		if in.ConfirmPressed() {
			w.Confirm()
		}
	}
}

func (w *World) tickPlanning(dt float64, in Input) {
	if in.PrimaryClicked() {
		if c, ok := in.PointerCell(); ok && !w.SpawnPlayerFrom(c) {
			if err := w.Place(SideA, w.selected, c); err != nil {
				w.recordGlobal("place", "rejected", err.Error(), 0)
			}
		}
	}
	if in.ConfirmPressed() {
		w.BeginBattle()
		return
	}
	w.updatePlayer(dt)
}

func (w *World) tickBattle(dt float64, in Input) {
	if in.SkipPressed() {
		w.Skip()
		return
	}
	sdt := dt
	if w.hitStop > 0 {
		w.hitStop -= dt
		if w.hitStop > 0 {
			sdt = dt * hitStopScale
		} else {
			w.hitStop = 0
		}
	}
	w.elapsed += sdt
	w.remaining -= sdt

	w.stepFire(SideA)
	w.stepFire(SideB)
	w.advanceProjectiles(sdt)
	w.produceAgents()
	w.updateAgents(sdt)
	if in.PrimaryClicked() {
		if c, ok := in.PointerCell(); ok && !w.SpawnPlayerFrom(c) {
			w.CommandPlayer(c)
		}
	}
	w.updatePlayer(sdt)

	switch {
	case w.Lost(SideA):
		w.finishBattle(OutcomeLoss)
	case w.Win(SideA):
		w.finishBattle(OutcomeWin)
	case w.remaining <= 0:
		w.remaining = 0
		w.finishBattle(OutcomeTurnEnd)
	}
}

// BeginBattle leaves Planning and starts the timed battle.
func (w *World) BeginBattle() {
	if w.phase != PhasePlanning {
		return
	}
	w.phase = PhaseSimulating
	w.outcome = OutcomeNone
	w.elapsed = 0
	w.remaining = w.rules.Battle.Duration
	w.hitStop = 0
	w.setupSchedules()
	w.fx.Play(SoundUIConfirm)
	w.recordGlobal("phase", "battle", fmt.Sprintf("stage %d turn %d", w.stage, w.turn), w.remaining)
}

// Skip ends the running battle now. The outcome is judged on the board as
// it stands.
func (w *World) Skip() {
	if w.phase != PhaseSimulating {
		return
	}
	w.recordGlobal("phase", "skip", "", w.remaining)
	switch {
	case w.Lost(SideA):
		w.finishBattle(OutcomeLoss)
	case w.Win(SideA):
		w.finishBattle(OutcomeWin)
	default:
		w.finishBattle(OutcomeTurnEnd)
	}
}

func (w *World) finishBattle(o Outcome) {
	w.phase = PhaseSummary
	w.outcome = o
	w.hitStop = 0
	clear(w.projectiles)
	w.projectiles = w.projectiles[:0]
	w.stats.Battles++
	a, b := w.board.Ownership()
	switch o {
	case OutcomeWin:
		w.stats.Wins++
		w.fx.Play(SoundStageClear)
		w.fx.Burst(Burst{Kind: BurstCelebrate, Side: SideA, Pos: w.board.CellCenter(Cell{X: w.board.Cols / 2, Y: w.board.Rows / 2})})
	case OutcomeLoss:
		w.stats.Losses++
		w.fx.Play(SoundGameOver)
	}
	w.recordGlobal("phase", "summary", fmt.Sprintf("%s a=%.2f b=%.2f", o, a, b), w.elapsed)
}

// Confirm leaves Summary: a win advances the stage, a loss restarts it and
// anything else runs the end-of-turn economy.
func (w *World) Confirm() {
	if w.phase != PhaseSummary {
		return
	}
	w.fx.Play(SoundUIConfirm)
	switch w.outcome {
	case OutcomeWin:
		w.NextStage()
	case OutcomeLoss:
		w.RetryStage()
	default:
		w.EndTurn()
	}
}

// Win reports whether side has met a victory condition: near-total board
// ownership or the opposing headquarters destroyed.
func (w *World) Win(side Side) bool {
	if w.board.OwnershipOf(side) >= winOwnership {
		return true
	}
	hq := w.hq[side.Opponent()]
	return hq.Valid() && !w.store.Alive(hq)
}

// Lost reports whether side has been beaten.
func (w *World) Lost(side Side) bool {
	return w.Win(side.Opponent())
}
