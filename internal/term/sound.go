package term

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// Sounder plays sound effects. Implementations must not block.
type Sounder interface {
	Play(id sim.SoundID)
}

type silent struct{}

func (silent) Play(sim.SoundID) {}

// beepTone is a decaying sine blip.
type beepTone struct {
	freq float64
	dur  time.Duration
	vol  float64
}

var beepTones = map[sim.SoundID]beepTone{
	sim.SoundPlace:        {freq: 660, dur: 80 * time.Millisecond, vol: 0.5},
	sim.SoundShootBasic:   {freq: 880, dur: 40 * time.Millisecond, vol: 0.3},
	sim.SoundShootSniper:  {freq: 1320, dur: 90 * time.Millisecond, vol: 0.4},
	sim.SoundMortarLaunch: {freq: 110, dur: 200 * time.Millisecond, vol: 0.6},
	sim.SoundSprinkler:    {freq: 1760, dur: 30 * time.Millisecond, vol: 0.2},
	sim.SoundHit:          {freq: 220, dur: 70 * time.Millisecond, vol: 0.5},
	sim.SoundUIConfirm:    {freq: 990, dur: 100 * time.Millisecond, vol: 0.4},
	sim.SoundStageClear:   {freq: 1046, dur: 500 * time.Millisecond, vol: 0.5},
	sim.SoundGameOver:     {freq: 98, dur: 700 * time.Millisecond, vol: 0.5},
}

// Beeper plays effects on the system speaker through one mixer.
type Beeper struct {
	mixer  *beep.Mixer
	volume float64
}

// NewBeeper opens the speaker. The app runs silent when this fails.
func NewBeeper(volume float64) (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	b := &Beeper{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	speaker.Play(b.mixer)
	return b, nil
}

func (b *Beeper) Play(id sim.SoundID) {
	t, ok := beepTones[id]
	if !ok {
		return
	}
	s, err := toneStream(t, b.volume)
	if err != nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// Close stops every sound and releases the speaker.
func (b *Beeper) Close() {
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// toneStream renders t as a finite streamer at volume in [0,1].
func toneStream(t beepTone, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.0fHz: %w", t.freq, err)
	}
	n := sampleRate.N(t.dur)
	return newVolume(&decay{streamer: beep.Take(n, sine), total: n}, volume*t.vol), nil
}

// decay fades a streamer out exponentially over total samples.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-4 * float64(d.pos) / float64(d.total))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s by the linear gain vol; zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
