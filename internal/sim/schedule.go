package sim

// scheduleSlack absorbs float drift so an activation due exactly now fires.
const scheduleSlack = 1e-6

// scheduleFor returns the activation interval of a structure of typ owned by
// side, or false when it never activates on its own.
func (w *World) scheduleFor(side Side, typ StructureType) (float64, bool) {
	spec := w.specs.Spec(typ)
	switch spec.Fire {
	case FireTargeted, FireScatter:
		if spec.Shots > 0 {
			return w.rules.Battle.Duration / float64(spec.Shots), true
		}
	case FireSpawn:
		if side == SideB {
			return w.rules.Battle.SpawnerInterval, true
		}
	}
	return 0, false
}

// setupSchedules arms every structure for a fresh battle.
func (w *World) setupSchedules() {
	for side := SideA; side < sideCount; side++ {
		w.store.Each(side, func(_ Handle, s *Structure) {
			w.armAt(s, 0)
		})
	}
}

// scheduleCaptured arms a freshly captured structure so it may fire at once.
func (w *World) scheduleCaptured(s *Structure) {
	w.armAt(s, w.elapsed)
}

func (w *World) armAt(s *Structure, at float64) {
	if iv, ok := w.scheduleFor(s.Owner, s.Type); ok {
		s.Interval = iv
		s.NextFire = at
		return
	}
	s.Interval = 0
	s.NextFire = neverFires
}

// stepFire fires every due shooter of side, catching up on missed
// activations.
func (w *World) stepFire(side Side) {
	w.store.Each(side, func(h Handle, s *Structure) {
		fire := w.specs.Spec(s.Type).Fire
		if fire != FireTargeted && fire != FireScatter {
			return
		}
		for s.Interval > 0 && w.elapsed+scheduleSlack >= s.NextFire {
			w.fireOnce(h)
			// The arena may have grown; re-resolve before touching s.
			cur, ok := w.store.Get(h)
			if !ok {
				return
			}
			s = cur
			s.NextFire += s.Interval
		}
	})
}

// produceAgents lets every due SideB spawner release an agent.
func (w *World) produceAgents() {
	w.store.Each(SideB, func(h Handle, s *Structure) {
		if w.specs.Spec(s.Type).Fire != FireSpawn {
			return
		}
		for s.Interval > 0 && w.elapsed+scheduleSlack >= s.NextFire {
			w.spawnAgent(w.board.CellCenter(s.Cell))
			s.NextFire += s.Interval
		}
	})
}
