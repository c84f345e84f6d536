package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Wars/internal/config"
	"github.com/Garsondee/Ink-Wars/internal/sim"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 32)

	rules, err := config.Default()
	if err != nil {
		t.Fatalf("default rules: %v", err)
	}
	app, err := New(screen, rules, WithSeed(3))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app, screen
}

// screenPos is the terminal position of the left column of c.
func screenPos(c sim.Cell) (int, int) {
	return boardLeft + c.X*cellCols, boardTop + c.Y
}

func placeableCell(t *testing.T, w *sim.World) sim.Cell {
	t.Helper()
	b := w.Board()
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			c := sim.Cell{X: x, Y: y}
			if w.CanPlace(sim.SideA, w.Selected(), c) == nil {
				return c
			}
		}
	}
	t.Fatal("no placeable cell for side a on stage 1")
	return sim.Cell{}
}

func TestCellAt(t *testing.T) {
	b := sim.NewBoard(10, 5, sim.Vec2{}, 32)
	cases := []struct {
		x, y int
		want sim.Cell
		ok   bool
	}{
		{boardLeft, boardTop, sim.Cell{X: 0, Y: 0}, true},
		{boardLeft + 1, boardTop, sim.Cell{X: 0, Y: 0}, true}, // second column of the same cell
		{boardLeft + 2*cellCols, boardTop + 3, sim.Cell{X: 2, Y: 3}, true},
		{0, boardTop, sim.Cell{}, false},
		{boardLeft, boardTop - 1, sim.Cell{}, false},
		{boardLeft + 10*cellCols, boardTop, sim.Cell{}, false},
		{boardLeft, boardTop + 5, sim.Cell{}, false},
	}
	for _, tc := range cases {
		got, ok := cellAt(b, tc.x, tc.y)
		if ok != tc.ok || got != tc.want {
			t.Errorf("cellAt(%d,%d) = %v,%v want %v,%v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHandleEvent_QuitKeys(t *testing.T) {
	app, _ := newTestApp(t)
	if app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if !app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)) {
		t.Error("unbound key should not quit")
	}
}

func TestHandleEvent_SelectPauseConfirm(t *testing.T) {
	app, _ := newTestApp(t)
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone))
	if got := app.World().Selected(); got != sim.BuildableTypes[2] {
		t.Fatalf("key 3 should select %s, got %s", sim.BuildableTypes[2], got)
	}
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	if !app.paused {
		t.Fatal("p should pause")
	}
	app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if !app.confirm || !app.skip {
		t.Fatal("Enter and s should queue confirm and skip")
	}
}

func TestMouse_ClickOnPressEdgeOnly(t *testing.T) {
	app, _ := newTestApp(t)
	x, y := screenPos(sim.Cell{X: 4, Y: 2})

	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if !app.click {
		t.Fatal("press should queue a click")
	}
	if c, ok := app.hover.Get(); !ok || c != (sim.Cell{X: 4, Y: 2}) {
		t.Fatalf("hover should be (4,2), got %v ok=%v", c, ok)
	}
	app.click = false
	app.handleEvent(tcell.NewEventMouse(x+1, y, tcell.Button1, tcell.ModNone))
	if app.click {
		t.Fatal("a held button must not click again")
	}
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if !app.click {
		t.Fatal("release then press should click")
	}

	app.handleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if app.hover.Present() {
		t.Fatal("pointer over the HUD should clear hover")
	}
}

func TestStep_ClickPlacesStructure(t *testing.T) {
	app, _ := newTestApp(t)
	w := app.World()
	c := placeableCell(t, w)
	before := w.Funds(sim.SideA)

	x, y := screenPos(c)
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.step(1.0 / 60)

	if _, _, ok := w.StructureAt(sim.SideA, c); !ok {
		t.Fatalf("click at %v should place a %s", c, w.Selected())
	}
	if got, want := w.Funds(sim.SideA), before-w.Specs().Spec(w.Selected()).Cost; got != want {
		t.Fatalf("funds %d, want %d", got, want)
	}
	if app.click {
		t.Fatal("the click must be consumed by the tick")
	}
}

func TestStep_PausedHoldsTheWorld(t *testing.T) {
	app, _ := newTestApp(t)
	app.paused = true
	app.confirm = true
	tick := app.World().TickCount()
	app.step(1.0 / 60)
	if app.World().TickCount() != tick || app.World().Phase() != sim.PhasePlanning {
		t.Fatal("a paused app must not tick")
	}
	app.paused = false
	app.step(1.0 / 60)
	if app.World().Phase() != sim.PhaseSimulating {
		t.Fatalf("queued confirm should start the battle once unpaused, phase %s", app.World().Phase())
	}
}

func TestStep_RejectedPlacementShowsStatus(t *testing.T) {
	app, _ := newTestApp(t)
	w := app.World()
	hq := w.Structures().Handles(sim.SideB)[0]
	s, _ := w.Structures().Get(hq)

	x, y := screenPos(s.Cell)
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.step(1.0 / 60)
	if app.status == "" {
		t.Fatal("a rejected placement should show its reason")
	}
}

func TestDraw_HUDAndStructures(t *testing.T) {
	app, screen := newTestApp(t)
	w := app.World()
	app.draw()

	if r, _, _, _ := screen.GetContent(0, 0); r != 'I' {
		t.Fatalf("HUD should start with INK WARS, got %q", r)
	}

	drawn := 0
	w.Structures().Each(sim.SideA, func(_ sim.Handle, s *sim.Structure) {
		want := w.Specs().Spec(s.Type).Glyph
		if want == 0 {
			want = '?'
		}
		x, y := screenPos(s.Cell)
		if r, _, _, _ := screen.GetContent(x, y); r != want {
			t.Errorf("%s at %v: drawn %q, want %q", s.Type, s.Cell, r, want)
		}
		drawn++
	})
	if drawn == 0 {
		t.Fatal("stage 1 should give side a at least its headquarters")
	}
}

func TestStatusLines_MarksSelection(t *testing.T) {
	app, _ := newTestApp(t)
	lines := statusLines(app.World(), true, "")
	if !strings.Contains(lines[2], "[1:basic") {
		t.Errorf("selected type should be bracketed: %q", lines[2])
	}
	if !strings.Contains(lines[0], "PAUSED") {
		t.Errorf("paused clock missing: %q", lines[0])
	}
	if got := statusLines(app.World(), false, "not a floor tile")[3]; got != "not a floor tile" {
		t.Errorf("status should replace the hint, got %q", got)
	}
}

func TestTileRGB_Bands(t *testing.T) {
	if got := tileRGB(&sim.Tile{Paint: 1}); got != rgbTileA {
		t.Errorf("paint 1: %v", got)
	}
	if got := tileRGB(&sim.Tile{Paint: 0}); got != rgbTileB {
		t.Errorf("paint 0: %v", got)
	}
	if got := tileRGB(&sim.Tile{Paint: 0.5}); got != rgbNeutral {
		t.Errorf("paint 0.5: %v", got)
	}
	if got := tileRGB(&sim.Tile{Kind: sim.TileWall, Paint: 1}); got != rgbWall {
		t.Errorf("walls ignore paint: %v", got)
	}
}

func TestTermFX_FlashAndShake(t *testing.T) {
	fx := newTermFX(silent{})
	fx.board = sim.NewBoard(10, 5, sim.Vec2{}, 32)
	fx.Burst(sim.Burst{Kind: sim.BurstImpact, Side: sim.SideB, Pos: sim.Vec2{X: 80, Y: 40}})
	if f, ok := fx.flashAt(sim.Cell{X: 2, Y: 1}); !ok || f.side != sim.SideB {
		t.Fatalf("burst should light (2,1), got %+v ok=%v", f, ok)
	}
	fx.Burst(sim.Burst{Kind: sim.BurstImpact, Side: sim.SideA, Pos: sim.Vec2{X: 80, Y: 40}})
	if len(fx.flashes) != 1 {
		t.Fatalf("a second burst on the same cell should replace the first, got %d", len(fx.flashes))
	}
	fx.Burst(sim.Burst{Kind: sim.BurstImpact, Pos: sim.Vec2{X: -40, Y: 0}})
	if len(fx.flashes) != 1 {
		t.Fatal("off-board bursts are dropped")
	}
	fx.update(1)
	if len(fx.flashes) != 0 {
		t.Fatal("flashes should expire")
	}

	fx.Shake(2, 0.5)
	moved := false
	for i := 0; i < 4; i++ {
		fx.update(0.01)
		moved = moved || fx.offset() != 0
	}
	if moved {
		t.Fatal("weak shakes should not move the board")
	}
	fx.Shake(8, 0.5)
	for i := 0; i < 4; i++ {
		fx.update(0.01)
		moved = moved || fx.offset() != 0
	}
	if !moved {
		t.Fatal("strong shake should jitter the board")
	}
	fx.update(1)
	if fx.offset() != 0 {
		t.Fatal("finished shake should stop")
	}
}

type countingSounder map[sim.SoundID]int

func (c countingSounder) Play(id sim.SoundID) { c[id]++ }

func TestTermFX_SoundGapCountsFrames(t *testing.T) {
	snd := countingSounder{}
	fx := newTermFX(snd)
	for i := 0; i < 5; i++ {
		fx.Play(sim.SoundShootBasic)
	}
	if snd[sim.SoundShootBasic] != 1 {
		t.Fatalf("a volley in one frame should start once, got %d", snd[sim.SoundShootBasic])
	}
	for i := 0; i < soundGapFrames; i++ {
		fx.update(frameTime.Seconds())
	}
	fx.Play(sim.SoundShootBasic)
	if snd[sim.SoundShootBasic] != 2 {
		t.Fatalf("sound should restart after the gap, got %d", snd[sim.SoundShootBasic])
	}
}

func TestToneStream_Length(t *testing.T) {
	for id, tn := range beepTones {
		s, err := toneStream(tn, 0.5)
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok || n == 0 {
				break
			}
		}
		if want := sampleRate.N(tn.dur); total != want {
			t.Errorf("%s: %d samples, want %d", id, total, want)
		}
	}
}

func TestToneTable_CoversEverySound(t *testing.T) {
	for _, id := range sim.AllSounds() {
		if _, ok := beepTones[id]; !ok {
			t.Errorf("no tone for %s", id)
		}
	}
}

func TestOnLog_EventColumnKeepsNewest(t *testing.T) {
	app, _ := newTestApp(t)
	app.events = nil
	for i := 0; i < eventLines+4; i++ {
		app.onLog(sim.SimLogEntry{Tick: i, Category: "fire", Key: "shot", Value: "(1,1)"})
	}
	if len(app.events) != eventLines {
		t.Fatalf("expected %d lines, got %d", eventLines, len(app.events))
	}
	if !strings.HasPrefix(app.events[len(app.events)-1], "0019 shot") {
		t.Fatalf("newest entry should be last, got %q", app.events[len(app.events)-1])
	}
	if app.status != "" {
		t.Fatalf("fire entries should not touch the status line, got %q", app.status)
	}
}

func TestPumpEvents_StopsWhenRunEnds(t *testing.T) {
	_, screen := newTestApp(t)
	out := make(chan tcell.Event) // nobody reads: the loop has gone
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pumpEvents(screen, out, done)
		close(finished)
	}()
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("post event: %v", err)
	}
	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump still blocked on send after done closed")
	}
}
