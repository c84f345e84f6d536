package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

func TestPointerFrame_OnAndOffBoard(t *testing.T) {
	b := sim.NewBoard(10, 6, sim.Vec2{}, 32)

	f := pointerFrame(b, 70, 40, true, false, false)
	c, ok := f.PointerCell()
	if !ok || c != (sim.Cell{X: 2, Y: 1}) {
		t.Fatalf("pointer at (70,40) should map to (2,1), got %v ok=%v", c, ok)
	}
	if !f.PrimaryClicked() || f.ConfirmPressed() || f.SkipPressed() {
		t.Fatalf("button state not carried: %+v", f)
	}

	off := pointerFrame(b, -5, 40, false, true, true)
	if _, ok := off.PointerCell(); ok {
		t.Fatal("cursor left of the board should have no pointer cell")
	}
	if !off.ConfirmPressed() || !off.SkipPressed() {
		t.Fatal("keys must be reported even with the cursor off the board")
	}
}

func TestStepSpeed(t *testing.T) {
	cases := []struct {
		cur  float64
		dir  int
		want float64
	}{
		{1, +1, 2},
		{1, -1, 0.5},
		{4, +1, 4},
		{0, -1, 0},
		{0, +1, 0.5},
		{3, -1, 1}, // off-step values snap to the step below first
	}
	for _, tc := range cases {
		if got := stepSpeed(tc.cur, tc.dir); got != tc.want {
			t.Errorf("stepSpeed(%g, %+d) = %g, want %g", tc.cur, tc.dir, got, tc.want)
		}
	}
}

func TestEventLog_RingKeepsNewest(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(i, "--", "--", "tick")
	}
	got := el.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d oldest first, got %d..%d",
			logMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestEventLog_AddSimEntry(t *testing.T) {
	el := NewEventLog()
	el.AddSimEntry(sim.SimLogEntry{Tick: 42, Actor: "b:basic@3,4", Side: "b", Category: "capture", Key: "captured", Value: "a"})
	got := el.Recent()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.Tick != 42 || e.Label != "b:basic@3,4" || e.Side != "b" || e.Message != "capture captured a" {
		t.Fatalf("unexpected entry %+v", e)
	}
}

type countingSounds struct{ n map[sim.SoundID]int }

func (c *countingSounds) Play(id sim.SoundID) { c.n[id]++ }

func TestFX_BurstAndExpire(t *testing.T) {
	fx := NewFX(1, nil)
	fx.Burst(sim.Burst{Kind: sim.BurstCapture, Side: sim.SideA, Pos: sim.Vec2{X: 50, Y: 50}})
	want := sim.BurstCapture.Profile().Count
	if fx.ParticleCount() != want {
		t.Fatalf("expected %d particles, got %d", want, fx.ParticleCount())
	}
	// Longest life is LifeMax; one more second clears everything.
	for i := 0; i < 60; i++ {
		fx.Update(1.0 / 60)
	}
	if fx.ParticleCount() != 0 {
		t.Fatalf("particles should expire, %d left", fx.ParticleCount())
	}
}

func TestFX_BurstCap(t *testing.T) {
	fx := NewFX(1, nil)
	n := sim.BurstExplosionA.Profile().Count
	for i := 0; i < maxParticles/n+5; i++ {
		fx.Burst(sim.Burst{Kind: sim.BurstExplosionA, Side: sim.SideB})
	}
	if fx.ParticleCount() != maxParticles {
		t.Fatalf("particle count should cap at %d, got %d", maxParticles, fx.ParticleCount())
	}
}

func TestFX_ShakeMergeKeepsStronger(t *testing.T) {
	fx := NewFX(1, nil)
	fx.Shake(8, 0.3)
	fx.Shake(2, 1.0) // weaker, but extends the remaining time
	if fx.shakePower != 8 {
		t.Fatalf("weaker shake must not replace power, got %.1f", fx.shakePower)
	}
	if fx.shakeLeft != 1.0 {
		t.Fatalf("remaining time should extend to 1.0, got %.2f", fx.shakeLeft)
	}
	fx.Update(0.1)
	x, y := fx.Offset()
	if x*x+y*y == 0 {
		t.Fatal("running shake should offset the camera")
	}
	for i := 0; i < 20; i++ {
		fx.Update(0.1)
	}
	if x, y := fx.Offset(); x != 0 || y != 0 {
		t.Fatalf("finished shake should leave no offset, got (%.2f,%.2f)", x, y)
	}
}

func TestFX_HitStopFlashAndSound(t *testing.T) {
	snd := &countingSounds{n: map[sim.SoundID]int{}}
	fx := NewFX(1, snd)
	fx.HitStop(0.05)
	fx.HitStop(0.02)
	if fx.flash != 0.05 {
		t.Fatalf("flash should keep the longest freeze, got %.3f", fx.flash)
	}
	fx.Play(sim.SoundHit)
	fx.Play(sim.SoundHit)
	fx.Play(sim.SoundPlace)
	if snd.n[sim.SoundHit] != 1 || snd.n[sim.SoundPlace] != 1 {
		t.Fatalf("one start per sound per frame, got hit=%d place=%d", snd.n[sim.SoundHit], snd.n[sim.SoundPlace])
	}
	for i := 0; i < soundGapFrames-1; i++ {
		fx.Update(1.0 / 60.0)
		fx.Play(sim.SoundHit)
	}
	if snd.n[sim.SoundHit] != 1 {
		t.Fatalf("hit restarted inside the gap, got %d", snd.n[sim.SoundHit])
	}
	fx.Update(1.0 / 60.0)
	fx.Play(sim.SoundHit)
	if snd.n[sim.SoundHit] != 2 {
		t.Fatalf("hit should play again after %d frames, got %d", soundGapFrames, snd.n[sim.SoundHit])
	}
	fx.Clear()
	if fx.flash != 0 || fx.ParticleCount() != 0 {
		t.Fatal("Clear should reset flash and particles")
	}
}

func TestSynthPCM_LengthAndRange(t *testing.T) {
	for _, id := range sim.AllSounds() {
		tn, ok := tones[id]
		if !ok {
			t.Errorf("sound %s has no tone", id)
			continue
		}
		pcm := synthPCM(tn, 1)
		if want := 4 * int(tn.dur*sampleRate); len(pcm) != want {
			t.Errorf("sound %s: %d bytes, want %d", id, len(pcm), want)
		}
	}
}

func TestPaintColor_Endpoints(t *testing.T) {
	if got := paintColor(1); got != colTileA {
		t.Errorf("paint 1 should be side A's tint, got %v", got)
	}
	if got := paintColor(0); got != colTileB {
		t.Errorf("paint 0 should be side B's tint, got %v", got)
	}
	if got := paintColor(0.5); got != colNeutral {
		t.Errorf("paint 0.5 should be neutral, got %v", got)
	}
}

func TestHUDLines_Planning(t *testing.T) {
	ts := sim.NewTestSim(sim.WithOpenField(12, 5))
	lines := hudLines(ts.World, 0, "")
	all := strings.Join(lines, "\n")
	for _, want := range []string{"STAGE 1", "TURN 1", "PLANNING", "PAUSED", "Enter=battle", ">[1]basic"} {
		if !strings.Contains(all, want) {
			t.Errorf("HUD missing %q:\n%s", want, all)
		}
	}
	if got := hudLines(ts.World, 2, "report copied"); got[3] != "report copied" {
		t.Errorf("status should replace the hint line, got %q", got[3])
	}
}

func TestSummaryLines_Outcomes(t *testing.T) {
	ts := sim.NewTestSim(sim.WithOpenField(60, 3), sim.WithUniformPaint(0.99))
	ts.BeginBattle()
	ts.RunUntil(func(ts *sim.TestSim) bool { return ts.World.Phase() == sim.PhaseSummary }, 200)
	if ts.World.Outcome() != sim.OutcomeWin {
		t.Fatalf("expected a win on a painted board, got %s", ts.World.Outcome())
	}
	lines := summaryLines(ts.World)
	if lines[0] != "STAGE CLEAR" {
		t.Errorf("title should be STAGE CLEAR, got %q", lines[0])
	}
	if last := lines[len(lines)-1]; last != "Enter: stage 2" {
		t.Errorf("expected next stage hint, got %q", last)
	}
}

func TestHoverHelp_ByPhase(t *testing.T) {
	ts := sim.NewTestSim(
		sim.WithOpenField(12, 5),
		sim.WithStructure(sim.SideA, sim.StructureSpawner, sim.Cell{X: 1, Y: 0}),
		sim.WithFunds(sim.SideA, 100),
	)
	w := ts.World

	if got := hoverHelp(w, sim.Cell{X: 1, Y: 0}); got != "click to deploy the player" {
		t.Errorf("own spawner: got %q", got)
	}
	if got := hoverHelp(w, sim.Cell{X: 1, Y: 4}); got != "place basic for 40" {
		t.Errorf("free own tile: got %q", got)
	}
	if got := hoverHelp(w, sim.Cell{X: 9, Y: 1}); !strings.Contains(got, sim.ErrNotOwnPaint.Error()) {
		t.Errorf("enemy paint should give the rejection reason, got %q", got)
	}

	ts.BeginBattle()
	if got := hoverHelp(w, sim.Cell{X: 5, Y: 1}); got != "deploy from a spawner to move" {
		t.Errorf("battle without player: got %q", got)
	}
}

func TestInspectLines_Structure(t *testing.T) {
	ts := sim.NewTestSim(
		sim.WithOpenField(12, 5),
		sim.WithStructure(sim.SideB, sim.StructureSniper, sim.Cell{X: 9, Y: 1}),
	)
	curated := inspectLines(ts.World, sim.Cell{X: 9, Y: 1}, false)
	raw := inspectLines(ts.World, sim.Cell{X: 9, Y: 1}, true)
	all := strings.Join(curated, "\n")
	if !strings.Contains(all, "side b sniper") || !strings.Contains(all, "range") {
		t.Fatalf("curated view should name the structure and its range:\n%s", all)
	}
	if len(raw) <= len(curated) {
		t.Fatalf("raw view should add lines (%d vs %d)", len(raw), len(curated))
	}
	if inspectLines(ts.World, sim.Cell{X: 40, Y: 40}, false) != nil {
		t.Fatal("off-board cell should give no lines")
	}
}

func TestDebugReport_Sections(t *testing.T) {
	ts := sim.NewTestSim(sim.WithOpenField(12, 5))
	r := sim.NewReporter(0)
	ts.BeginBattle()
	ts.RunTicks(120)
	r.Collect(ts.World)
	out := debugReport(ts.World, r, 9)
	for _, want := range []string{"--- Ink Wars report ---", "seed=9", "Stage 1 turn 1", "Battle Report", "log entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
