package sprig

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput adapts Ebitengine's device polling to the InputSource
// contract. Pointer slot 0 is the mouse's left button; touches occupy
// slots 1 through 9, keeping their slot for the duration of the touch.
//
// Call [EbitenInput.Update] once per tick, from the game's Update, before
// running the UI; the snapshot then stays stable for both passes.
type EbitenInput struct {
	pointers [MaxPointers]Pointer
	used     int
	wheel    Vec2
	axes     Vec2
	keys     map[Key]bool
	text     []TextEvent

	touchSlots [MaxPointers]ebiten.TouchID
	touchIDs   []ebiten.TouchID
	runes      []rune

	sawTouch   bool
	wheelScale float64
}

// NewEbitenInput returns an input adapter with default wheel scaling.
func NewEbitenInput() *EbitenInput {
	in := &EbitenInput{
		keys:       make(map[Key]bool),
		wheelScale: 1,
	}
	for i := range in.touchSlots {
		in.touchSlots[i] = -1
	}
	return in
}

// SetWheelScale adjusts how many virtual units one wheel tick reports.
func (in *EbitenInput) SetWheelScale(s float64) { in.wheelScale = s }

// Update snapshots the devices for this tick.
func (in *EbitenInput) Update() {
	in.updateMouse()
	in.updateTouches()
	in.updateKeys()
	in.updateGamepad()

	wx, wy := ebiten.Wheel()
	in.wheel = Vec2{X: wx * in.wheelScale, Y: wy * in.wheelScale}
}

func (in *EbitenInput) updateMouse() {
	mx, my := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p := &in.pointers[0]
	p.Position = image.Point{X: mx, Y: my}
	p.WentDown = down && !p.IsDown
	p.WentUp = !down && p.IsDown
	p.IsDown = down
	in.used = 1
}

func (in *EbitenInput) updateTouches() {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		in.sawTouch = true
	}

	live := make(map[ebiten.TouchID]bool, len(in.touchIDs))
	for _, tid := range in.touchIDs {
		live[tid] = true
	}

	// Lifted touches report a final went-up frame, then free their slot.
	for slot := 1; slot < MaxPointers; slot++ {
		p := &in.pointers[slot]
		if in.touchSlots[slot] >= 0 && !live[in.touchSlots[slot]] {
			p.WentUp = p.IsDown
			p.WentDown = false
			p.IsDown = false
			in.touchSlots[slot] = -1
			if slot >= in.used {
				in.used = slot + 1
			}
			continue
		}
		if in.touchSlots[slot] < 0 {
			*p = Pointer{}
		}
	}

	for _, tid := range in.touchIDs {
		slot := in.slotFor(tid)
		if slot < 0 {
			continue
		}
		tx, ty := ebiten.TouchPosition(tid)
		p := &in.pointers[slot]
		p.Position = image.Point{X: tx, Y: ty}
		p.WentDown = inpututil.TouchPressDuration(tid) == 1
		p.WentUp = false
		p.IsDown = true
		if slot >= in.used {
			in.used = slot + 1
		}
	}
}

func (in *EbitenInput) slotFor(tid ebiten.TouchID) int {
	for slot := 1; slot < MaxPointers; slot++ {
		if in.touchSlots[slot] == tid {
			return slot
		}
	}
	for slot := 1; slot < MaxPointers; slot++ {
		if in.touchSlots[slot] < 0 {
			in.touchSlots[slot] = tid
			return slot
		}
	}
	return -1
}

var ebitenKeyMap = map[Key]ebiten.Key{
	KeyEnter:     ebiten.KeyEnter,
	KeyEscape:    ebiten.KeyEscape,
	KeyBackspace: ebiten.KeyBackspace,
	KeyDelete:    ebiten.KeyDelete,
	KeyLeft:      ebiten.KeyArrowLeft,
	KeyRight:     ebiten.KeyArrowRight,
	KeyUp:        ebiten.KeyArrowUp,
	KeyDown:      ebiten.KeyArrowDown,
	KeyHome:      ebiten.KeyHome,
	KeyEnd:       ebiten.KeyEnd,
	KeyNavNext:   ebiten.KeyTab,
}

func (in *EbitenInput) updateKeys() {
	clear(in.keys)
	in.text = in.text[:0]

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	for k, ek := range ebitenKeyMap {
		if !keyRepeated(ek) {
			continue
		}
		switch {
		case ctrl && k == KeyLeft:
			k = KeyWordLeft
		case ctrl && k == KeyRight:
			k = KeyWordRight
		case shift && k == KeyNavNext:
			k = KeyNavPrev
		}
		in.keys[k] = true
		switch k {
		case KeyNavNext, KeyNavPrev:
		default:
			in.text = append(in.text, TextEvent{Key: k})
		}
	}

	in.runes = ebiten.AppendInputChars(in.runes[:0])
	for _, r := range in.runes {
		if r >= ' ' {
			in.text = append(in.text, TextEvent{Rune: r})
		}
	}
}

// keyRepeated reports a press edge with key-repeat after a hold delay.
func keyRepeated(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && (d-30)%4 == 0)
}

func (in *EbitenInput) updateGamepad() {
	in.axes = Vec2{}
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return
	}
	id := ids[0]
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		in.axes = Vec2{
			X: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			Y: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			in.keys[KeyActivate] = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			in.keys[KeyNavNext] = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			in.keys[KeyNavPrev] = true
		}
	}
}

// Pointers implements InputSource.
func (in *EbitenInput) Pointers() []Pointer { return in.pointers[:in.used] }

// WheelDelta implements InputSource.
func (in *EbitenInput) WheelDelta() Vec2 { return in.wheel }

// GamepadAxes implements InputSource.
func (in *EbitenInput) GamepadAxes() Vec2 { return in.axes }

// KeyWentDown implements InputSource.
func (in *EbitenInput) KeyWentDown(k Key) bool { return in.keys[k] }

// TextEvents implements InputSource.
func (in *EbitenInput) TextEvents() []TextEvent { return in.text }

// HasPointingDevice implements InputSource. It reports true until the
// first touch arrives: a finger cannot hover, so touch input switches the
// engine out of hover styling.
func (in *EbitenInput) HasPointingDevice() bool { return !in.sawTouch }
