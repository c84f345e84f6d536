package sim

import "fmt"

// Handle is a stable reference to a structure: an arena slot plus the
// generation that slot had when the structure was created. A handle whose
// structure has been destroyed or captured no longer resolves.
type Handle struct {
	slot int32
	gen  uint32
}

// Valid reports whether h was ever issued. It does not mean the structure is
// still alive; use StructureStore.Get for that.
func (h Handle) Valid() bool { return h.gen != 0 }

func (h Handle) String() string {
	if !h.Valid() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.slot, h.gen)
}

// Structure is one building on the board.
type Structure struct {
	Owner    Side
	Type     StructureType
	Cell     Cell
	HP       float64
	NextFire float64 // battle-elapsed seconds of the next activation
	Interval float64 // seconds between activations
}

type arenaSlot struct {
	gen  uint32
	live bool
	s    Structure
}

// StructureStore owns every structure of the current stage. Each side keeps
// its structures in creation order; that order is append-only until Reset.
type StructureStore struct {
	slots []arenaSlot
	free  []int32
	order [sideCount][]Handle
}

// NewStructureStore returns an empty store.
func NewStructureStore() *StructureStore {
	return &StructureStore{}
}

// Reset drops every structure. Generations keep counting so handles from a
// previous stage never resolve again.
func (st *StructureStore) Reset() {
	st.free = st.free[:0]
	for i := range st.slots {
		st.slots[i].live = false
		st.slots[i].s = Structure{}
		st.free = append(st.free, int32(i))
	}
	for s := range st.order {
		st.order[s] = st.order[s][:0]
	}
}

// Add stores s and returns its handle.
func (st *StructureStore) Add(s Structure) Handle {
	var idx int32
	if n := len(st.free); n > 0 {
		idx = st.free[n-1]
		st.free = st.free[:n-1]
	} else {
		idx = int32(len(st.slots))
		st.slots = append(st.slots, arenaSlot{})
	}
	sl := &st.slots[idx]
	sl.gen++
	sl.live = true
	sl.s = s
	h := Handle{slot: idx, gen: sl.gen}
	st.order[s.Owner] = append(st.order[s.Owner], h)
	return h
}

// Get resolves h. Stale or zero handles return false.
func (st *StructureStore) Get(h Handle) (*Structure, bool) {
	if !h.Valid() || int(h.slot) >= len(st.slots) {
		return nil, false
	}
	sl := &st.slots[h.slot]
	if !sl.live || sl.gen != h.gen {
		return nil, false
	}
	return &sl.s, true
}

// Alive reports whether h still resolves.
func (st *StructureStore) Alive(h Handle) bool {
	_, ok := st.Get(h)
	return ok
}

// Kill retires h. Killing a stale handle is a no-op.
func (st *StructureStore) Kill(h Handle) bool {
	if !st.Alive(h) {
		return false
	}
	sl := &st.slots[h.slot]
	sl.live = false
	st.free = append(st.free, h.slot)
	return true
}

// Handles returns side's handles in creation order, including retired ones.
// The slice must not be modified.
func (st *StructureStore) Handles(side Side) []Handle {
	return st.order[side]
}

// Each calls fn for every live structure of side in creation order.
// Structures added during the walk are not visited.
func (st *StructureStore) Each(side Side, fn func(Handle, *Structure)) {
	hs := st.order[side]
	n := len(hs)
	for i := 0; i < n; i++ {
		if s, ok := st.Get(hs[i]); ok {
			fn(hs[i], s)
		}
	}
}

// Count returns the number of live structures of side, optionally filtered by
// type when match is non-nil.
func (st *StructureStore) Count(side Side, match func(*Structure) bool) int {
	n := 0
	st.Each(side, func(_ Handle, s *Structure) {
		if match == nil || match(s) {
			n++
		}
	})
	return n
}
