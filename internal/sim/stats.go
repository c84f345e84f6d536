package sim

// SideStats are running counters for one side across a world's lifetime.
type SideStats struct {
	Shots       int // activations that launched something
	Projectiles int
	Impacts     int
	Captures    int // opponent structures taken over
	Lost        int // own structures captured or destroyed
	Explosions  int
	Deployed    int // actors put on the field
	Placed      int
	Spent       int
	Income      int
}

// Stats are the world's counters. They survive stage rebuilds.
type Stats struct {
	Sides   [sideCount]SideStats
	Battles int
	Wins    int
	Losses  int
}

// Side returns side's counters.
func (s *Stats) Side(side Side) *SideStats {
	return &s.Sides[side]
}
