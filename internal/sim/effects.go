package sim

// SoundID names a sound effect. Playback belongs to the frontend.
type SoundID uint8

const (
	SoundNone SoundID = iota
	SoundPlace
	SoundShootBasic
	SoundShootSniper
	SoundMortarLaunch
	SoundSprinkler
	SoundHit
	SoundUIConfirm
	SoundStageClear
	SoundGameOver
	soundCount
)

var soundNames = [soundCount]string{
	SoundNone:         "",
	SoundPlace:        "place",
	SoundShootBasic:   "shoot_basic",
	SoundShootSniper:  "shoot_sniper",
	SoundMortarLaunch: "mortar_launch",
	SoundSprinkler:    "sprinkler",
	SoundHit:          "hit",
	SoundUIConfirm:    "ui_confirm",
	SoundStageClear:   "stage_clear",
	SoundGameOver:     "game_over",
}

func (s SoundID) String() string {
	if s < soundCount {
		if s == SoundNone {
			return "none"
		}
		return soundNames[s]
	}
	return "unknown"
}

// ParseSoundID maps a rules name to its sound. The empty name is SoundNone.
func ParseSoundID(name string) (SoundID, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundID(i), true
		}
	}
	return SoundNone, false
}

// AllSounds lists every playable sound, for frontends building their tables.
func AllSounds() []SoundID {
	out := make([]SoundID, 0, soundCount-1)
	for s := SoundPlace; s < soundCount; s++ {
		out = append(out, s)
	}
	return out
}

// BurstKind selects a particle burst profile.
type BurstKind uint8

const (
	BurstMuzzle BurstKind = iota
	BurstImpact
	BurstImpactArea
	BurstCapture
	BurstExplosionA
	BurstExplosionB
	BurstFlash
	BurstDeploy
	BurstSpawn
	BurstExpire
	BurstPlace
	BurstCelebrate
	burstKindCount
)

// BurstProfile is the shape of a radially expanding particle burst.
type BurstProfile struct {
	Count              int
	SpeedMin, SpeedMax float64 // world units per second
	LifeMin, LifeMax   float64 // seconds
	SizeMin, SizeMax   float64 // start and end radius
	Neutral            bool    // white instead of the side colour
}

var burstProfiles = [burstKindCount]BurstProfile{
	BurstMuzzle:     {Count: 6, SpeedMin: 120, SpeedMax: 260, LifeMin: 0.08, LifeMax: 0.22, SizeMin: 3, SizeMax: 10},
	BurstImpact:     {Count: 10, SpeedMin: 120, SpeedMax: 220, LifeMin: 0.20, LifeMax: 0.45, SizeMin: 3, SizeMax: 12},
	BurstImpactArea: {Count: 18, SpeedMin: 140, SpeedMax: 260, LifeMin: 0.25, LifeMax: 0.60, SizeMin: 4, SizeMax: 18},
	BurstCapture:    {Count: 28, SpeedMin: 150, SpeedMax: 320, LifeMin: 0.30, LifeMax: 0.60, SizeMin: 3, SizeMax: 20},
	BurstExplosionA: {Count: 36, SpeedMin: 180, SpeedMax: 360, LifeMin: 0.30, LifeMax: 0.70, SizeMin: 5, SizeMax: 22},
	BurstExplosionB: {Count: 28, SpeedMin: 160, SpeedMax: 320, LifeMin: 0.25, LifeMax: 0.60, SizeMin: 5, SizeMax: 20},
	BurstFlash:      {Count: 18, SpeedMin: 120, SpeedMax: 260, LifeMin: 0.12, LifeMax: 0.25, SizeMin: 4, SizeMax: 14, Neutral: true},
	BurstDeploy:     {Count: 14, SpeedMin: 120, SpeedMax: 240, LifeMin: 0.18, LifeMax: 0.35, SizeMin: 3, SizeMax: 12},
	BurstSpawn:      {Count: 10, SpeedMin: 100, SpeedMax: 200, LifeMin: 0.15, LifeMax: 0.30, SizeMin: 3, SizeMax: 12},
	BurstExpire:     {Count: 12, SpeedMin: 80, SpeedMax: 160, LifeMin: 0.18, LifeMax: 0.36, SizeMin: 3, SizeMax: 12},
	BurstPlace:      {Count: 10, SpeedMin: 90, SpeedMax: 180, LifeMin: 0.20, LifeMax: 0.45, SizeMin: 2, SizeMax: 10},
	BurstCelebrate:  {Count: 30, SpeedMin: 120, SpeedMax: 260, LifeMin: 0.40, LifeMax: 0.90, SizeMin: 3, SizeMax: 18},
}

// Profile returns the particle shape of k.
func (k BurstKind) Profile() BurstProfile {
	if k < burstKindCount {
		return burstProfiles[k]
	}
	return BurstProfile{}
}

// Burst is a request to spawn particles at Pos coloured for Side.
type Burst struct {
	Kind BurstKind
	Side Side
	Pos  Vec2
}

// Effects receives presentation requests from the engine. Calls are
// fire-and-forget; implementations must not call back into the World.
type Effects interface {
	Burst(b Burst)
	Shake(power, duration float64)
	HitStop(duration float64)
	Play(id SoundID)
}

// NopEffects discards every request.
type NopEffects struct{}

func (NopEffects) Burst(Burst) {}
func (NopEffects) Shake(float64, float64) {}
func (NopEffects) HitStop(float64) {}
func (NopEffects) Play(SoundID) {}

// ShakeRequest is one recorded Shake call.
type ShakeRequest struct {
	Power, Duration float64
}

// EffectRecorder keeps every request it receives. Tests and the headless
// report read it back.
type EffectRecorder struct {
	Bursts   []Burst
	Shakes   []ShakeRequest
	HitStops []float64
	Sounds   []SoundID
}

func (r *EffectRecorder) Burst(b Burst) { r.Bursts = append(r.Bursts, b) }
func (r *EffectRecorder) Shake(p, d float64) {
	r.Shakes = append(r.Shakes, ShakeRequest{Power: p, Duration: d})
}
func (r *EffectRecorder) HitStop(d float64) { r.HitStops = append(r.HitStops, d) }
func (r *EffectRecorder) Play(id SoundID) { r.Sounds = append(r.Sounds, id) }

// CountSound returns how many times id was requested.
func (r *EffectRecorder) CountSound(id SoundID) int {
	n := 0
	for _, s := range r.Sounds {
		if s == id {
			n++
		}
	}
	return n
}

// CountBurst returns how many bursts of kind k were requested.
func (r *EffectRecorder) CountBurst(k BurstKind) int {
	n := 0
	for _, b := range r.Bursts {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets every recorded request.
func (r *EffectRecorder) Reset() {
	r.Bursts = r.Bursts[:0]
	r.Shakes = r.Shakes[:0]
	r.HitStops = r.HitStops[:0]
	r.Sounds = r.Sounds[:0]
}
