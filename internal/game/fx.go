package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// maxParticles caps the live particle count; new bursts are trimmed beyond it.
const maxParticles = 2400

// particleDrag is the per-second velocity retention of a particle.
const particleDrag = 0.08

// particle is a single fading dot of a burst.
type particle struct {
	x, y   float64
	vx, vy float64
	age    float64
	life   float64
	size0  float64 // radius at birth
	size1  float64 // radius at death
	col    color.RGBA
}

// SoundPlayer plays a sound effect. Implementations must not block.
type SoundPlayer interface {
	Play(id sim.SoundID)
}

// soundGapFrames is the minimum number of frames between two starts of the
// same sound, so a volley does not stack a dozen copies.
const soundGapFrames = 3

type muteSounds struct{}

func (muteSounds) Play(sim.SoundID) {}

// FX turns the engine's presentation requests into particles, camera shake,
// a brief flash and sounds. It implements sim.Effects.
type FX struct {
	particles []particle
	rng       *rand.Rand
	sounds    SoundPlayer

	shakePower float64
	shakeDur   float64
	shakeLeft  float64
	offX       float64
	offY       float64

	flash float64 // seconds of hit-stop flash left

	frame     int
	lastSound map[sim.SoundID]int // frame each sound last started
}

// NewFX creates an effects sink. A nil player mutes sound.
func NewFX(seed int64, sounds SoundPlayer) *FX {
	if sounds == nil {
		sounds = muteSounds{}
	}
	return &FX{
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic only
		sounds:    sounds,
		lastSound: make(map[sim.SoundID]int),
	}
}

// Burst spawns the particles of b's profile.
func (fx *FX) Burst(b sim.Burst) {
	p := b.Kind.Profile()
	col := sideColor(b.Side)
	if p.Neutral {
		col = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	n := min(p.Count, maxParticles-len(fx.particles))
	for i := 0; i < n; i++ {
		ang := fx.rng.Float64() * 2 * math.Pi
		spd := lerp(p.SpeedMin, p.SpeedMax, fx.rng.Float64())
		fx.particles = append(fx.particles, particle{
			x:     b.Pos.X,
			y:     b.Pos.Y,
			vx:    math.Cos(ang) * spd,
			vy:    math.Sin(ang) * spd,
			life:  lerp(p.LifeMin, p.LifeMax, fx.rng.Float64()),
			size0: p.SizeMin + fx.rng.Float64()*(p.SizeMax-p.SizeMin)*0.5,
			size1: p.SizeMin * 0.5,
			col:   col,
		})
	}
}

// Shake merges a request into the running shake: the stronger of the two
// powers and the longer of the two remaining times win.
func (fx *FX) Shake(power, duration float64) {
	if duration <= 0 || power <= 0 {
		return
	}
	if power > fx.currentShake() {
		fx.shakePower = power
		fx.shakeDur = duration
		fx.shakeLeft = duration
		return
	}
	fx.shakeLeft = max(fx.shakeLeft, duration)
	fx.shakeDur = max(fx.shakeDur, fx.shakeLeft)
}

// HitStop flashes the board for the length of the freeze. The freeze itself
// is run by the engine.
func (fx *FX) HitStop(duration float64) {
	fx.flash = max(fx.flash, duration)
}

// Play forwards to the sound player unless id already started within the
// last soundGapFrames frames.
func (fx *FX) Play(id sim.SoundID) {
	if last, seen := fx.lastSound[id]; seen && fx.frame-last < soundGapFrames {
		return
	}
	fx.lastSound[id] = fx.frame
	fx.sounds.Play(id)
}

func (fx *FX) currentShake() float64 {
	if fx.shakeLeft <= 0 || fx.shakeDur <= 0 {
		return 0
	}
	return fx.shakePower * fx.shakeLeft / fx.shakeDur
}

// Update ages particles, decays the shake and picks this frame's offset.
// It runs on real time so effects keep moving during a hit-stop.
func (fx *FX) Update(dt float64) {
	fx.frame++
	drag := math.Pow(particleDrag, dt)
	live := fx.particles[:0]
	for _, p := range fx.particles {
		p.age += dt
		if p.age >= p.life {
			continue
		}
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.vx *= drag
		p.vy *= drag
		live = append(live, p)
	}
	fx.particles = live

	fx.shakeLeft = max(fx.shakeLeft-dt, 0)
	if s := fx.currentShake(); s > 0 {
		fx.offX = (fx.rng.Float64()*2 - 1) * s
		fx.offY = (fx.rng.Float64()*2 - 1) * s
	} else {
		fx.offX, fx.offY = 0, 0
	}
	fx.flash = max(fx.flash-dt, 0)
}

// Offset returns the camera shake offset for this frame.
func (fx *FX) Offset() (float64, float64) { return fx.offX, fx.offY }

// ParticleCount returns the number of live particles.
func (fx *FX) ParticleCount() int { return len(fx.particles) }

// Clear drops every particle and stops the shake.
func (fx *FX) Clear() {
	fx.particles = fx.particles[:0]
	fx.shakeLeft, fx.shakePower, fx.offX, fx.offY = 0, 0, 0, 0
	fx.flash = 0
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
