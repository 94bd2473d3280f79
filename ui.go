package sprig

import (
	"fmt"
	"image"
	"os"
	"time"
)

// UI is the immediate-mode engine. Client code declares its whole interface
// every frame inside the closure passed to [UI.Run]; the engine recovers
// element identity through hashed ids, so no widget objects persist between
// frames.
//
// A UI is single-threaded by construction: one frame at a time, two passes
// per frame, no concurrent access.
type UI struct {
	renderer Renderer
	shaper   TextShaper
	input    InputSource
	motion   MotionEngine

	layout layoutManager
	state  stateStore
	cfg    Config

	running bool
	now     func() time.Time
	last    time.Time
	dt      float64

	// Input snapshot for the frame, stable across both passes.
	pointers      []Pointer
	pointerPos    [MaxPointers]image.Point
	pointerDelta  [MaxPointers]image.Point
	rawDelta      [MaxPointers]image.Point
	prevRawPos    [MaxPointers]image.Point
	pointerStates [MaxPointers]pointerState
	wheel         Vec2
	axes          Vec2
	hasPointer    bool

	focused      HashedID
	defaultFocus HashedID

	captureOwner   HashedID
	capturePointer int

	dragThreshold       int
	lastEventPointer    bool
	lastEventPointerIdx int
	globalListener      func(HashedID, Event)

	modalCutoff     int
	interactiveIdx  int
	focusOrder      []HashedID
	lastInteractive HashedID

	pointerXform Affine
	hasXform     bool

	scissors []image.Rectangle
	scrolls  []scrollFrame

	textColor       Color
	caretColor      Color
	lineHeightScale float64
	kerningScale    float64
	ellipsis        string

	imageColor Color
	hoverColor Color
	clickColor Color

	scrollDragSpeed    float64
	scrollWheelSpeed   float64
	scrollGamepadSpeed float64
	caretBlinkRate     float64

	sprites   map[HashedID][]*sprite
	spriteSeq SequenceID

	deferred []func()
}

// New creates an engine wired to its three required collaborators. The
// motion engine is optional; install one with [UI.SetMotionEngine] before
// using the animation API.
func New(r Renderer, shaper TextShaper, input InputSource, cfg Config) *UI {
	if r == nil || shaper == nil || input == nil {
		panic("sprig: renderer, text shaper, and input source are required")
	}
	cfg = cfg.withDefaults()
	u := &UI{
		renderer: r,
		shaper:   shaper,
		input:    input,
		cfg:      cfg,

		capturePointer: -1,

		dragThreshold:      cfg.DragStartThreshold,
		scrollDragSpeed:    cfg.ScrollDragSpeed,
		scrollWheelSpeed:   cfg.ScrollWheelSpeed,
		scrollGamepadSpeed: cfg.ScrollGamepadSpeed,
		caretBlinkRate:     cfg.CaretBlinkRate,

		textColor:  ColorWhite,
		caretColor: ColorWhite,
		imageColor: ColorWhite,
		hoverColor: Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5},
		clickColor: Color{R: 1, G: 1, B: 1, A: 0.5},

		sprites: make(map[HashedID][]*sprite),
		now:     time.Now,
	}
	u.layout.virtualResolution = cfg.VirtualResolution
	return u
}

// SetMotionEngine installs the engine that integrates animation curves.
// [TweenEngine] is the default implementation.
func (u *UI) SetMotionEngine(m MotionEngine) { u.motion = m }

// Run executes one frame: it calls gui twice, first to measure every
// element, then to position, draw, and dispatch events. The canvas size is
// in physical pixels. Calling Run from inside gui is a fatal usage error.
func (u *UI) Run(canvasSize image.Point, gui func()) {
	if u.running {
		panic("sprig: Run called while a frame is already in progress")
	}
	u.running = true
	defer func() { u.running = false }()

	u.advanceClock()
	u.state.beginFrame()
	u.snapshotInput()
	u.beginFrameState()
	u.layout.beginFrame(canvasSize)

	gui()

	if u.layout.startSecondPass() {
		u.interactiveIdx = 0
		gui()
		u.stepFocus()
	}
	u.state.collect()
	u.layout.endFrame()

	for _, fn := range u.deferred {
		fn()
	}
	u.deferred = u.deferred[:0]

	if u.motion != nil {
		u.motion.Advance(u.dt)
	}
}

// deferToFrameEnd queues a mutation until after both passes, for state that
// changes which elements the frame declares. Running it mid-frame would
// make the render pass disagree with the layout pass.
func (u *UI) deferToFrameEnd(fn func()) {
	u.deferred = append(u.deferred, fn)
}

// Defer queues fn to run after the current frame finishes. Use it for state
// that changes which groups or elements the gui closure declares, such as
// opening a dialog in response to a click; mutating such state mid-frame
// would make the two passes of the frame disagree about structure. Called
// outside a frame, fn runs immediately.
func (u *UI) Defer(fn func()) {
	if !u.running {
		fn()
		return
	}
	u.deferToFrameEnd(fn)
}

func (u *UI) advanceClock() {
	now := u.now()
	if u.last.IsZero() {
		u.dt = 1.0 / 60.0
	} else {
		u.dt = clampf(now.Sub(u.last).Seconds(), 0, 0.25)
	}
	u.last = now
}

func (u *UI) snapshotInput() {
	ps := u.input.Pointers()
	if len(ps) > MaxPointers {
		ps = ps[:MaxPointers]
	}
	u.pointers = append(u.pointers[:0], ps...)
	for i, p := range u.pointers {
		u.pointerPos[i] = p.Position
		if p.WentDown {
			u.rawDelta[i] = image.Point{}
		} else {
			u.rawDelta[i] = p.Position.Sub(u.prevRawPos[i])
		}
		u.prevRawPos[i] = p.Position
		u.pointerDelta[i] = u.rawDelta[i]
	}
	u.wheel = u.input.WheelDelta()
	u.axes = u.input.GamepadAxes()
	u.hasPointer = u.input.HasPointingDevice()
}

func (u *UI) beginFrameState() {
	u.interactiveIdx = 0
	u.modalCutoff = -1
	u.focusOrder = u.focusOrder[:0]
	u.defaultFocus = NullHash
	u.lastInteractive = NullHash
	u.hasXform = false
	u.scissors = u.scissors[:0]
	u.scrolls = u.scrolls[:0]
}

func (u *UI) debugf(format string, args ...any) {
	if !u.cfg.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[sprig] "+format+"\n", args...)
}

// --- Groups ---

// StartGroup opens a layout group. Pass [DefaultGroupID] as the id for
// groups that never receive events; interactive groups need an id that is
// unique among this frame's elements. Spacing is in virtual units.
func (u *UI) StartGroup(layout Layout, spacing float64, id string) {
	u.layout.startGroup(layout.direction(), layout.alignment(), spacing, HashID(id))
}

// EndGroup closes the innermost open group. Every StartGroup needs a
// matching EndGroup within the same frame.
func (u *UI) EndGroup() { u.layout.endGroup() }

// SetMargin reserves space inside the current group. Call it before the
// group's first child.
func (u *UI) SetMargin(m Margin) { u.layout.setMargin(m) }

// PositionGroup anchors the current top-level group within the canvas using
// one of nine alignment combinations plus a virtual-unit offset. Meaningful
// for the children of a root overlay group.
func (u *UI) PositionGroup(horizontal, vertical Alignment, offset Vec2) {
	u.layout.positionGroup(horizontal, vertical, offset)
}

// GroupPosition returns the current group's top-left corner in virtual
// units. During the layout pass the answer comes from the previous frame,
// since this frame's positions are not yet known.
func (u *UI) GroupPosition() Vec2 { return u.layout.groupPosition() }

// GroupSize returns the current group's extent in virtual units, including
// scroll overflow. During the layout pass the answer comes from the
// previous frame.
func (u *UI) GroupSize() Vec2 { return u.layout.groupSize() }

// ColorBackground fills the current group's rect with a color. Call it
// right after StartGroup, before any child advances the group's position.
func (u *UI) ColorBackground(c Color) {
	if u.layout.layoutPass {
		return
	}
	u.renderer.DrawQuad(u.layout.groupRect(), c)
}

// ImageBackground stretches a texture over the current group's rect. The
// same call placement rule as ColorBackground applies.
func (u *UI) ImageBackground(tex Texture) {
	if u.layout.layoutPass {
		return
	}
	src := image.Rectangle{Max: tex.Size()}
	u.renderer.DrawTexture(tex, src, u.layout.groupRect(), ColorWhite)
}

// ImageBackgroundNinePatch draws a texture over the current group's rect,
// stretching only the inner region given in source pixels.
func (u *UI) ImageBackgroundNinePatch(tex Texture, inner image.Rectangle) {
	if u.layout.layoutPass {
		return
	}
	u.renderer.DrawNinePatch(tex, inner, u.layout.groupRect(), ColorWhite)
}

// --- Elements ---

// Label lays out a single line of text at the given height in virtual
// units. The element's id derives from the text itself; two labels with
// identical text in one frame need [UI.LabelBox] with distinct sizes or a
// wrapping group with an explicit id to stay distinguishable.
func (u *UI) Label(text string, ysize float64) {
	u.label(text, ysize, Vec2{}, TextAlignLeft)
}

// LabelBox lays out text inside a box, word-wrapped to the box width and
// aligned per align. A zero size component means "grow to fit the text" on
// that axis.
func (u *UI) LabelBox(text string, ysize float64, size Vec2, align TextAlignment) {
	u.label(text, ysize, size, align)
}

func (u *UI) label(text string, ysize float64, size Vec2, align TextAlignment) {
	st := u.shape(text, ysize, size, align)
	vsize := u.layout.physicalToVirtual(st.Size)
	if size.X > 0 {
		vsize.X = size.X
	}
	if size.Y > 0 {
		vsize.Y = size.Y
	}
	u.layout.element(vsize, HashID(text), func(pos, _ image.Point) {
		u.drawShaped(st, pos, u.textColor)
	})
}

func (u *UI) shape(text string, ysize float64, size Vec2, align TextAlignment) ShapedText {
	req := ShapeRequest{
		PixelSize:       float64(u.layout.virtualToPhysicalScalar(ysize)),
		Align:           align,
		LineHeightScale: u.lineHeightScale,
		KerningScale:    u.kerningScale,
		Ellipsis:        u.ellipsis,
	}
	if size.X > 0 {
		req.MaxWidth = u.layout.virtualToPhysicalScalar(size.X)
	}
	return u.shaper.Shape(text, req)
}

func (u *UI) drawShaped(st ShapedText, origin image.Point, c Color) {
	for _, q := range st.Quads {
		u.renderer.DrawTexture(q.Atlas, q.Src, q.Dst.Add(origin), c)
	}
}

// Image draws a texture at the given height in virtual units, width scaled
// to preserve the texture's aspect ratio. Identity derives from the
// texture's name.
func (u *UI) Image(tex Texture, ysize float64) {
	sz := tex.Size()
	aspect := 1.0
	if sz.Y > 0 {
		aspect = float64(sz.X) / float64(sz.Y)
	}
	hash := HashIDFrom(HashID(DefaultImageID), tex.Name())
	u.layout.element(Vec2{X: ysize * aspect, Y: ysize}, hash, func(pos, size image.Point) {
		dst := image.Rectangle{Min: pos, Max: pos.Add(size)}
		u.renderer.DrawTexture(tex, image.Rectangle{Max: sz}, dst, u.imageColor)
	})
}

// SetImageColor tints subsequent Image elements.
func (u *UI) SetImageColor(c Color) { u.imageColor = c }

// CustomElement reserves space for a caller-rendered element. The render
// callback runs during the render pass only, with the element's final
// physical rect; use [UI.RenderTexture] and friends inside it.
func (u *UI) CustomElement(size Vec2, id string, render func(pos, size image.Point)) {
	u.layout.element(size, HashID(id), render)
}

// RenderTexture draws a texture at an arbitrary physical rect, for use
// inside CustomElement callbacks.
func (u *UI) RenderTexture(tex Texture, pos, size image.Point) {
	if u.layout.layoutPass {
		return
	}
	src := image.Rectangle{Max: tex.Size()}
	u.renderer.DrawTexture(tex, src, image.Rectangle{Min: pos, Max: pos.Add(size)}, u.imageColor)
}

// RenderTextureNinePatch is RenderTexture with a stretchable inner region
// given in source pixels.
func (u *UI) RenderTextureNinePatch(tex Texture, inner image.Rectangle, pos, size image.Point) {
	if u.layout.layoutPass {
		return
	}
	u.renderer.DrawNinePatch(tex, inner, image.Rectangle{Min: pos, Max: pos.Add(size)}, u.imageColor)
}

// --- Coordinate mapping ---

// SetVirtualResolution fixes how many virtual units span the screen's
// shorter dimension. Call it before any element; it only takes effect
// during the layout pass so both passes agree.
func (u *UI) SetVirtualResolution(v float64) { u.layout.setVirtualResolution(v) }

// GetVirtualResolution returns the current virtual resolution.
func (u *UI) GetVirtualResolution() float64 { return u.layout.virtualResolution }

// GetScale returns this frame's physical pixels per virtual unit.
func (u *UI) GetScale() float64 { return u.layout.scale() }

// CanvasSize returns the whole canvas in virtual units.
func (u *UI) CanvasSize() Vec2 { return u.layout.virtualResolutionSize() }

// VirtualToPhysical converts virtual units to physical pixels.
func (u *UI) VirtualToPhysical(v Vec2) image.Point { return u.layout.virtualToPhysical(v) }

// PhysicalToVirtual converts physical pixels to virtual units.
func (u *UI) PhysicalToVirtual(p image.Point) Vec2 { return u.layout.physicalToVirtual(p) }

// ApplyCustomTransform replaces the default screen-space mapping for
// pointer input with the inverse of the given transform, for interfaces
// rendered into a transformed plane. Call it before any element, in both
// passes; the degenerate transform is rejected.
func (u *UI) ApplyCustomTransform(m Affine) {
	inv, ok := m.Invert()
	if !ok {
		u.debugf("ApplyCustomTransform: transform is not invertible, ignored")
		return
	}
	u.pointerXform = inv
	u.hasXform = true
	for i := range u.pointers {
		raw := u.pointers[i].Position
		u.pointerPos[i] = inv.applyToPoint(raw)
		// Deltas move with the same mapping as positions, so drag distances
		// stay consistent with the transformed hit rects.
		u.pointerDelta[i] = u.pointerPos[i].Sub(inv.applyToPoint(raw.Sub(u.rawDelta[i])))
	}
}

// UseExistingProjection tells the renderer to draw with the projection
// already in effect instead of installing its own. Backends that always
// manage their own target ignore it.
func (u *UI) UseExistingProjection() {
	if r, ok := u.renderer.(interface{ UseExistingProjection() }); ok {
		r.UseExistingProjection()
	}
}

// SetDepthTest toggles depth testing on the renderer.
func (u *UI) SetDepthTest(on bool) { u.renderer.SetDepthTest(on) }

// --- Text attributes ---

// SetTextFont selects the font stack for subsequent text, reporting whether
// every font loaded. On failure the previous stack stays in effect.
func (u *UI) SetTextFont(names ...string) bool { return u.shaper.SetFont(names...) }

// SetTextColor sets the color for subsequent text.
func (u *UI) SetTextColor(c Color) { u.textColor = c }

// GetTextColor returns the current text color.
func (u *UI) GetTextColor() Color { return u.textColor }

// SetCaretColor sets the edit caret color.
func (u *UI) SetCaretColor(c Color) { u.caretColor = c }

// GetCaretColor returns the edit caret color.
func (u *UI) GetCaretColor() Color { return u.caretColor }

// SetTextLineHeightScale scales the distance between lines of wrapped text.
func (u *UI) SetTextLineHeightScale(s float64) { u.lineHeightScale = s }

// SetTextKerningScale scales inter-glyph spacing.
func (u *UI) SetTextKerningScale(s float64) { u.kerningScale = s }

// SetTextEllipsis sets the string shown where text is truncated to fit.
func (u *UI) SetTextEllipsis(s string) { u.ellipsis = s }

// SetScrollSpeed sets how fast scroll areas respond to drags, the mouse
// wheel, and gamepad axes respectively.
func (u *UI) SetScrollSpeed(drag, wheel, gamepad float64) {
	u.scrollDragSpeed = drag
	u.scrollWheelSpeed = wheel
	u.scrollGamepadSpeed = gamepad
}
