package sprig

import "image"

// MaxPointers is the most simultaneous pointers (fingers, mouse buttons)
// the engine tracks in a frame.
const MaxPointers = 10

// defaultDragStartThreshold is how far a pointer must travel, in physical
// pixels, before a press turns into a drag.
const defaultDragStartThreshold = 8

// Pointer is the state of one pointing device (or finger) for the current
// frame. Position is in physical pixels.
type Pointer struct {
	Position image.Point
	WentDown bool
	WentUp   bool
	IsDown   bool
}

// Key identifies a non-character key relevant to UI interaction. The set is
// deliberately small: navigation, editing, and activation. Everything else
// reaches the engine as text runes.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyWordLeft
	KeyWordRight
	KeyNavNext  // move focus to the next widget (e.g. Tab)
	KeyNavPrev  // move focus to the previous widget (e.g. Shift+Tab)
	KeyActivate // activate the focused widget (e.g. gamepad A button)
)

// TextEvent is one unit of keyboard input for text editing: either a typed
// rune or a pressed editing key, never both.
type TextEvent struct {
	Rune rune
	Key  Key
}

// InputSource supplies per-frame input snapshots to the engine. The engine
// calls each method any number of times during a frame and expects stable
// answers across both the layout and render passes; implementations should
// capture device state once per frame.
//
// EbitenInput is the production implementation. ScriptInput replays
// recorded input for tests and automation.
type InputSource interface {
	// Pointers returns the active pointers, at most MaxPointers. Index 0 is
	// the primary pointer.
	Pointers() []Pointer

	// WheelDelta returns this frame's scroll wheel movement in virtual
	// units after the caller's scaling; zero when the wheel is idle.
	WheelDelta() Vec2

	// GamepadAxes returns the primary stick or dpad direction, each axis
	// in [-1, 1].
	GamepadAxes() Vec2

	// KeyWentDown reports whether k was pressed this frame, including
	// key-repeat for editing and navigation keys.
	KeyWentDown(k Key) bool

	// TextEvents returns this frame's text input in arrival order.
	TextEvents() []TextEvent

	// HasPointingDevice reports whether a mouse or touch screen is
	// present. When false the engine runs in gamepad navigation mode and
	// suppresses hover highlighting.
	HasPointingDevice() bool
}
