package term

import "github.com/Garsondee/Ink-Wars/internal/sim"

// flash is a burst shown as a briefly lit board cell.
type flash struct {
	cell    sim.Cell
	side    sim.Side
	neutral bool
	left    float64
}

// termFX is the terminal's sim.Effects: bursts light cells, shake jitters
// the board by a column and a hit-stop inverts the clock.
type termFX struct {
	board  *sim.Board
	sounds Sounder

	flashes    []flash
	shakePower float64
	shakeLeft  float64
	hitStop    float64
	frame      int
	lastSound  map[sim.SoundID]int // frame each sound last started
}

// soundGapFrames is the minimum number of frames between two starts of the
// same sound.
const soundGapFrames = 3

func newTermFX(sounds Sounder) *termFX {
	return &termFX{sounds: sounds, lastSound: make(map[sim.SoundID]int)}
}

func (fx *termFX) Burst(b sim.Burst) {
	if fx.board == nil {
		return
	}
	c, ok := fx.board.ScreenToCell(b.Pos)
	if !ok {
		return
	}
	p := b.Kind.Profile()
	for i := range fx.flashes {
		if fx.flashes[i].cell == c {
			fx.flashes[i] = flash{cell: c, side: b.Side, neutral: p.Neutral, left: max(fx.flashes[i].left, p.LifeMax)}
			return
		}
	}
	fx.flashes = append(fx.flashes, flash{cell: c, side: b.Side, neutral: p.Neutral, left: p.LifeMax})
}

func (fx *termFX) Shake(power, duration float64) {
	if duration <= 0 || power <= 0 {
		return
	}
	fx.shakePower = max(fx.shakePower, power)
	fx.shakeLeft = max(fx.shakeLeft, duration)
}

func (fx *termFX) HitStop(duration float64) {
	fx.hitStop = max(fx.hitStop, duration)
}

func (fx *termFX) Play(id sim.SoundID) {
	if last, seen := fx.lastSound[id]; seen && fx.frame-last < soundGapFrames {
		return
	}
	fx.lastSound[id] = fx.frame
	fx.sounds.Play(id)
}

func (fx *termFX) update(dt float64) {
	fx.frame++
	live := fx.flashes[:0]
	for _, f := range fx.flashes {
		f.left -= dt
		if f.left > 0 {
			live = append(live, f)
		}
	}
	fx.flashes = live

	fx.shakeLeft = max(fx.shakeLeft-dt, 0)
	if fx.shakeLeft == 0 {
		fx.shakePower = 0
	}
	fx.hitStop = max(fx.hitStop-dt, 0)
}

// offset is the board's column shift this frame. Only strong shakes move
// it; a one-column jitter is already coarse.
func (fx *termFX) offset() int {
	if fx.shakeLeft > 0 && fx.shakePower >= 4 {
		return fx.frame % 2
	}
	return 0
}

func (fx *termFX) flashAt(c sim.Cell) (flash, bool) {
	for _, f := range fx.flashes {
		if f.cell == c {
			return f, true
		}
	}
	return flash{}, false
}
