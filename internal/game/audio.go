package game

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// sampleRate of the synthesized sound table.
const sampleRate = 48000

// tone is a synthesized effect: a frequency sweep under an exponential
// decay, optionally mixed with noise.
type tone struct {
	freq    float64 // Hz at the start
	freqEnd float64 // Hz at the end
	dur     float64 // seconds
	vol     float64 // 0..1
	noise   float64 // noise mix, 0..1
	square  bool
}

var tones = map[sim.SoundID]tone{
	sim.SoundPlace:        {freq: 520, freqEnd: 780, dur: 0.09, vol: 0.35},
	sim.SoundShootBasic:   {freq: 900, freqEnd: 420, dur: 0.06, vol: 0.22, noise: 0.3, square: true},
	sim.SoundShootSniper:  {freq: 1500, freqEnd: 300, dur: 0.14, vol: 0.30, noise: 0.2},
	sim.SoundMortarLaunch: {freq: 140, freqEnd: 70, dur: 0.22, vol: 0.40, noise: 0.5},
	sim.SoundSprinkler:    {freq: 1200, freqEnd: 1600, dur: 0.04, vol: 0.15, noise: 0.6},
	sim.SoundHit:          {freq: 220, freqEnd: 110, dur: 0.08, vol: 0.30, noise: 0.4},
	sim.SoundUIConfirm:    {freq: 660, freqEnd: 990, dur: 0.12, vol: 0.30},
	sim.SoundStageClear:   {freq: 523, freqEnd: 1046, dur: 0.6, vol: 0.40, square: true},
	sim.SoundGameOver:     {freq: 392, freqEnd: 98, dur: 0.8, vol: 0.40, square: true},
}

// synthPCM renders t as 16-bit little-endian stereo at sampleRate.
func synthPCM(t tone, seed int64) []byte {
	n := int(t.dur * sampleRate)
	buf := make([]byte, n*4)
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- audio noise
	phase := 0.0
	for i := 0; i < n; i++ {
		u := float64(i) / float64(n)
		f := t.freq + (t.freqEnd-t.freq)*u
		phase += 2 * math.Pi * f / sampleRate
		s := math.Sin(phase)
		if t.square {
			s = math.Copysign(0.6, s)
		}
		if t.noise > 0 {
			s = s*(1-t.noise) + (rng.Float64()*2-1)*t.noise
		}
		env := math.Exp(-4*u) * math.Min(1, float64(i)/64)
		v := int16(clampUnit(s*env*t.vol) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// Sounds plays the synthesized sound table through Ebiten's audio context.
type Sounds struct {
	ctx    *audio.Context
	pcm    map[sim.SoundID][]byte
	volume float64
}

// NewSounds builds every sound once. It reuses the process-wide audio
// context when one exists.
func NewSounds(volume float64) *Sounds {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	s := &Sounds{
		ctx:    ctx,
		pcm:    make(map[sim.SoundID][]byte, len(tones)),
		volume: volume,
	}
	for _, id := range sim.AllSounds() {
		if t, ok := tones[id]; ok {
			s.pcm[id] = synthPCM(t, int64(id)+1)
		}
	}
	return s
}

// Play starts id on a fresh player so overlapping sounds mix.
func (s *Sounds) Play(id sim.SoundID) {
	pcm, ok := s.pcm[id]
	if !ok {
		return
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(s.volume)
	p.Play()
}
