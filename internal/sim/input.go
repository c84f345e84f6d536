package sim

// Input is what the engine pulls from its frontend once per tick. Click and
// key methods report edges: true only on the tick the press happened.
type Input interface {
	PointerCell() (Cell, bool)
	PrimaryClicked() bool
	ConfirmPressed() bool
	SkipPressed() bool
}

// NoInput is an idle frontend.
type NoInput struct{}

func (NoInput) PointerCell() (Cell, bool) { return Cell{}, false }
func (NoInput) PrimaryClicked() bool { return false }
func (NoInput) ConfirmPressed() bool { return false }
func (NoInput) SkipPressed() bool { return false }

// Frame is a value Input describing one tick. Frontends that poll devices
// fill one per tick; tests script them directly.
type Frame struct {
	Pointer Maybe[Cell]
	Click   bool
	Confirm bool
	Skip    bool
}

func (f Frame) PointerCell() (Cell, bool) { return f.Pointer.Get() }
func (f Frame) PrimaryClicked() bool { return f.Click }
func (f Frame) ConfirmPressed() bool { return f.Confirm }
func (f Frame) SkipPressed() bool { return f.Skip }

// ClickAt is a Frame with a click on c.
func ClickAt(c Cell) Frame {
	return Frame{Pointer: Some(c), Click: true}
}
