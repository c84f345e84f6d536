package sim

import "testing"

func TestAreaWeight_FallsOffWithDistance(t *testing.T) {
	for _, r := range []int{1, 2, 3} {
		prev := AreaWeight(0, r)
		if !approx(prev, 1) {
			t.Fatalf("weight at centre = %v", prev)
		}
		for d2 := 1; d2 <= r*r; d2++ {
			w := AreaWeight(d2, r)
			if w > prev || w <= 0 {
				t.Fatalf("r=%d d2=%d weight %v after %v", r, d2, w, prev)
			}
			prev = w
		}
	}
}

func TestScenario_AreaPaintCoversDisc(t *testing.T) {
	center := Cell{X: 10, Y: 5}
	ts := NewTestSim(WithOpenField(21, 11), WithUniformPaint(0.5))
	w := ts.World
	w.applyAreaOfEffect(center, 2, 0.1, 0, SideA)

	gain := map[int]float64{}
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			c := Cell{X: center.X + dx, Y: center.Y + dy}
			d2 := dx*dx + dy*dy
			g := w.board.PaintAt(c) - 0.5
			if d2 > 4 {
				if g != 0 {
					t.Errorf("%v outside the disc gained %v", c, g)
				}
				continue
			}
			if g <= 0 {
				t.Errorf("%v inside the disc gained nothing", c)
			}
			gain[d2] = g
		}
	}
	if !approx(gain[0], 0.1) {
		t.Errorf("centre gain = %v, want 0.1", gain[0])
	}
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 4}} {
		if gain[pair[1]] > gain[pair[0]] {
			t.Errorf("gain at d2=%d (%v) exceeds d2=%d (%v)", pair[1], gain[pair[1]], pair[0], gain[pair[0]])
		}
	}
	if gain[4] < 0.05-1e-6 {
		t.Errorf("rim gain %v below half strength", gain[4])
	}
}

func TestScenario_AreaDamageFallsOff(t *testing.T) {
	center, rim := Cell{X: 10, Y: 5}, Cell{X: 12, Y: 5}
	ts := NewTestSim(
		WithOpenField(21, 11),
		WithStructure(SideB, StructureBasic, center),
		WithStructure(SideB, StructureBasic, rim),
	)
	ts.World.applyAreaOfEffect(center, 2, -0.1, 35, SideA)
	c, r := ts.Structure(SideB, center), ts.Structure(SideB, rim)
	if c == nil || r == nil {
		t.Fatal("structures should survive 35 damage")
	}
	if !approx(c.HP, 85) {
		t.Errorf("centre HP = %v, want 85", c.HP)
	}
	if r.HP <= c.HP || r.HP >= 120 {
		t.Errorf("rim HP = %v, want between %v and 120", r.HP, c.HP)
	}
}

func TestScenario_CaptureCreatesFreshRecord(t *testing.T) {
	cell := Cell{X: 8, Y: 1}
	ts := NewTestSim(WithOpenField(12, 5), WithStructure(SideB, StructureBasic, cell))
	w := ts.World
	ts.BeginBattle()
	w.elapsed = 2.5

	old := w.board.Occupant(SideB, cell)
	handlesA := len(w.store.Handles(SideA))
	handlesB := len(w.store.Handles(SideB))
	if !w.applyDamage(cell, 500, SideA) {
		t.Fatal("500 damage should take the structure")
	}

	if w.store.Alive(old) {
		t.Error("old record still alive")
	}
	if w.board.Occupied(SideB, cell) {
		t.Error("side b still indexed on the captured cell")
	}
	if got := len(w.store.Handles(SideA)); got != handlesA+1 {
		t.Errorf("side a records = %d, want %d", got, handlesA+1)
	}
	if got := len(w.store.Handles(SideB)); got != handlesB {
		t.Errorf("side b records = %d, want %d (append-only)", got, handlesB)
	}
	s := ts.Structure(SideA, cell)
	if s == nil {
		t.Fatal("no side a structure on the captured cell")
	}
	if s.Type != StructureBasic || s.HP != 120 || s.Owner != SideA {
		t.Errorf("captured record = %+v", s)
	}
	if s.NextFire < w.elapsed || s.NextFire > w.elapsed+1e-9 {
		t.Errorf("NextFire = %v, want ready at %v", s.NextFire, w.elapsed)
	}
	if !approx(s.Interval, 1) {
		t.Errorf("Interval = %v, want 1", s.Interval)
	}
	if got := w.board.PaintAt(cell); !approx(got, homePaintB+captureNudge) {
		t.Errorf("paint after capture = %v", got)
	}
	if w.stats.Side(SideA).Captures != 1 || w.stats.Side(SideB).Lost != 1 {
		t.Errorf("stats = %+v", w.stats)
	}
	if ts.FX.CountBurst(BurstCapture) != 1 || ts.FX.CountSound(SoundHit) != 1 {
		t.Errorf("feedback bursts=%d hits=%d", ts.FX.CountBurst(BurstCapture), ts.FX.CountSound(SoundHit))
	}
	if !ts.SimLog.HasEntry("capture", "captured", "a") {
		t.Error("capture not logged")
	}
	if v := ts.Violations(); len(v) > 0 {
		t.Errorf("invariants broken: %v", v)
	}
}

func TestScenario_DamageOnTakenCellIsNoop(t *testing.T) {
	cell := Cell{X: 8, Y: 1}
	ts := NewTestSim(WithOpenField(12, 5), WithStructure(SideB, StructureBasic, cell))
	w := ts.World
	w.applyDamage(cell, 500, SideA)
	before := len(w.store.Handles(SideA))
	if w.applyDamage(cell, 500, SideA) {
		t.Error("second hit on a captured cell should do nothing")
	}
	if len(w.store.Handles(SideA)) != before {
		t.Error("second hit created a record")
	}
	if s := ts.Structure(SideA, cell); s == nil || s.HP != 120 {
		t.Errorf("attacker hurt its own capture: %+v", s)
	}
}

func TestScenario_HeadquartersIsDestroyedNotCaptured(t *testing.T) {
	ts := NewTestSim(WithOpenField(12, 5))
	w := ts.World
	hqCell := Cell{X: 11, Y: 2}
	if !w.applyDamage(hqCell, 1e6, SideA) {
		t.Fatal("headquarters should fall")
	}
	if w.store.Alive(w.HQ(SideB)) {
		t.Error("side b headquarters still alive")
	}
	if w.board.Occupied(SideA, hqCell) || w.board.Occupied(SideB, hqCell) {
		t.Error("headquarters cell still indexed")
	}
	if !w.Win(SideA) || !w.Lost(SideB) {
		t.Error("losing the headquarters should decide the game")
	}
	if !ts.SimLog.HasEntry("capture", "destroyed", "") {
		t.Error("destruction not logged")
	}
}

func TestScenario_SingleCellImpactPaintsAndHurts(t *testing.T) {
	cell := Cell{X: 9, Y: 3}
	ts := NewTestSim(WithOpenField(12, 5), WithStructure(SideB, StructureMortar, cell))
	w := ts.World
	w.impact(&Projectile{Owner: SideA, Damage: 30, Paint: 0.25}, cell)
	if s := ts.Structure(SideB, cell); s == nil || !approx(s.HP, 70) {
		t.Errorf("mortar after hit = %+v", s)
	}
	if got := w.board.PaintAt(cell); !approx(got, 0.45) {
		t.Errorf("paint = %v, want 0.45", got)
	}
	if len(ts.FX.Shakes) != 1 || ts.FX.Shakes[0].Power != 3 {
		t.Errorf("shakes = %+v", ts.FX.Shakes)
	}
}
