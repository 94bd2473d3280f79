package sprig

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
)

// ScriptInput is a deterministic InputSource driven either by direct calls
// or by a JSON script. It lets tests and automation run full frames without
// a display or real devices.
//
// State set with the builder methods describes the current frame; call
// [ScriptInput.Advance] between frames to clear the edge-triggered parts
// (went-down/went-up, keys, text, wheel) while positions and held buttons
// persist.
type ScriptInput struct {
	pointers   [MaxPointers]Pointer
	used       int
	wheel      Vec2
	axes       Vec2
	keys       map[Key]bool
	text       []TextEvent
	hasPointer bool

	steps []scriptStep
	step  int
	wait  int
}

// NewScriptInput returns a script input with one idle pointer and a
// pointing device present.
func NewScriptInput() *ScriptInput {
	return &ScriptInput{used: 1, hasPointer: true, keys: make(map[Key]bool)}
}

// Pointers implements InputSource.
func (s *ScriptInput) Pointers() []Pointer { return s.pointers[:s.used] }

// WheelDelta implements InputSource.
func (s *ScriptInput) WheelDelta() Vec2 { return s.wheel }

// GamepadAxes implements InputSource.
func (s *ScriptInput) GamepadAxes() Vec2 { return s.axes }

// KeyWentDown implements InputSource.
func (s *ScriptInput) KeyWentDown(k Key) bool { return s.keys[k] }

// TextEvents implements InputSource.
func (s *ScriptInput) TextEvents() []TextEvent { return s.text }

// HasPointingDevice implements InputSource.
func (s *ScriptInput) HasPointingDevice() bool { return s.hasPointer }

// SetPointingDevice switches between pointer mode and gamepad navigation
// mode.
func (s *ScriptInput) SetPointingDevice(present bool) { s.hasPointer = present }

// MoveTo places the primary pointer, in physical pixels.
func (s *ScriptInput) MoveTo(x, y int) {
	s.pointers[0].Position = image.Point{X: x, Y: y}
}

// Press pushes the primary pointer down this frame.
func (s *ScriptInput) Press() {
	s.pointers[0].WentDown = true
	s.pointers[0].IsDown = true
}

// Release lifts the primary pointer this frame.
func (s *ScriptInput) Release() {
	s.pointers[0].WentUp = true
	s.pointers[0].IsDown = false
}

// SetPointer sets an arbitrary pointer slot, for multi-touch scenarios.
func (s *ScriptInput) SetPointer(i int, p Pointer) {
	if i < 0 || i >= MaxPointers {
		return
	}
	s.pointers[i] = p
	if i >= s.used {
		s.used = i + 1
	}
}

// Wheel adds scroll wheel movement for this frame.
func (s *ScriptInput) Wheel(dx, dy float64) { s.wheel = Vec2{X: dx, Y: dy} }

// Axes sets the gamepad stick deflection for this frame.
func (s *ScriptInput) Axes(x, y float64) { s.axes = Vec2{X: x, Y: y} }

// PressKey presses a key for this frame. Editing keys also reach the text
// event stream, so edit boxes see them.
func (s *ScriptInput) PressKey(k Key) {
	s.keys[k] = true
	s.text = append(s.text, TextEvent{Key: k})
}

// Type appends typed runes for this frame.
func (s *ScriptInput) Type(str string) {
	for _, r := range str {
		s.text = append(s.text, TextEvent{Rune: r})
	}
}

// Advance ends the current frame: edge-triggered state clears, held state
// persists. When a script is loaded, the next scripted step is applied.
func (s *ScriptInput) Advance() {
	for i := range s.pointers {
		s.pointers[i].WentDown = false
		s.pointers[i].WentUp = false
	}
	s.wheel = Vec2{}
	s.axes = Vec2{}
	s.text = s.text[:0]
	clear(s.keys)

	if s.wait > 0 {
		s.wait--
		return
	}
	if s.step < len(s.steps) {
		s.applyStep(s.steps[s.step])
		s.step++
	}
}

// Done reports whether the loaded script has been fully played.
func (s *ScriptInput) Done() bool {
	return s.step >= len(s.steps) && s.wait == 0
}

// scriptStep is one frame's worth of scripted input. Fields are optional
// and combine freely.
type scriptStep struct {
	Move    *[2]int     `json:"move,omitempty"`
	Press   bool        `json:"press,omitempty"`
	Release bool        `json:"release,omitempty"`
	Wheel   *[2]float64 `json:"wheel,omitempty"`
	Axes    *[2]float64 `json:"axes,omitempty"`
	Key     string      `json:"key,omitempty"`
	Text    string      `json:"text,omitempty"`
	Wait    int         `json:"wait,omitempty"`
}

var scriptKeyNames = map[string]Key{
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"left":      KeyLeft,
	"right":     KeyRight,
	"up":        KeyUp,
	"down":      KeyDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"wordleft":  KeyWordLeft,
	"wordright": KeyWordRight,
	"navnext":   KeyNavNext,
	"navprev":   KeyNavPrev,
	"activate":  KeyActivate,
}

// LoadScript parses a JSON array of steps, one applied per Advance. A step
// may combine a pointer move, press or release, wheel or axis input, a key
// by name, typed text, and a number of idle frames to wait afterwards:
//
//	[{"move": [40, 40]}, {"press": true}, {"wait": 2}, {"release": true}]
func (s *ScriptInput) LoadScript(r io.Reader) error {
	var steps []scriptStep
	if err := json.NewDecoder(r).Decode(&steps); err != nil {
		return fmt.Errorf("parse input script: %w", err)
	}
	for i, st := range steps {
		if st.Key != "" {
			if _, ok := scriptKeyNames[st.Key]; !ok {
				return fmt.Errorf("input script step %d: unknown key %q", i, st.Key)
			}
		}
	}
	s.steps = steps
	s.step = 0
	s.wait = 0
	return nil
}

func (s *ScriptInput) applyStep(st scriptStep) {
	if st.Move != nil {
		s.MoveTo(st.Move[0], st.Move[1])
	}
	if st.Press {
		s.Press()
	}
	if st.Release {
		s.Release()
	}
	if st.Wheel != nil {
		s.Wheel(st.Wheel[0], st.Wheel[1])
	}
	if st.Axes != nil {
		s.Axes(st.Axes[0], st.Axes[1])
	}
	if st.Key != "" {
		s.PressKey(scriptKeyNames[st.Key])
	}
	if st.Text != "" {
		s.Type(st.Text)
	}
	s.wait = st.Wait
}
