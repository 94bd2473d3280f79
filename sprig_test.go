package sprig

import (
	"image"
	"time"
	"unicode/utf8"
)

// stubShaper shapes text with a fixed advance of half the pixel size per
// rune, so layout tests are deterministic without real fonts.
type stubShaper struct{}

func (stubShaper) SetFont(...string) bool { return true }

func (stubShaper) Shape(str string, req ShapeRequest) ShapedText {
	adv := int(req.PixelSize) / 2
	n := utf8.RuneCountInString(str)
	st := ShapedText{Size: image.Point{X: n * adv, Y: int(req.PixelSize)}}
	for i := 0; i <= n; i++ {
		st.Carets = append(st.Carets, image.Point{X: i * adv})
	}
	if str == "" {
		st.Size = image.Point{}
	}
	return st
}

type drawOp struct {
	kind string // "quad", "texture", "ninepatch"
	rect image.Rectangle
	col  Color
}

// stubRenderer records draw calls instead of drawing.
type stubRenderer struct {
	ops      []drawOp
	scissors []image.Rectangle
	depth    int
}

func (r *stubRenderer) DrawQuad(dst image.Rectangle, c Color) {
	r.ops = append(r.ops, drawOp{kind: "quad", rect: dst, col: c})
}

func (r *stubRenderer) DrawTexture(_ Texture, _, dst image.Rectangle, c Color) {
	r.ops = append(r.ops, drawOp{kind: "texture", rect: dst, col: c})
}

func (r *stubRenderer) DrawNinePatch(_ Texture, _ image.Rectangle, dst image.Rectangle, c Color) {
	r.ops = append(r.ops, drawOp{kind: "ninepatch", rect: dst, col: c})
}

func (r *stubRenderer) PushScissor(clip image.Rectangle) {
	r.scissors = append(r.scissors, clip)
}

func (r *stubRenderer) PopScissor() {}

func (r *stubRenderer) SetDepthTest(on bool) {
	if on {
		r.depth++
	}
}

func (r *stubRenderer) reset() { r.ops = r.ops[:0]; r.scissors = r.scissors[:0] }

// testTexture is a Texture with no pixels behind it.
type testTexture struct {
	name string
	size image.Point
}

func (t testTexture) Name() string      { return t.name }
func (t testTexture) Size() image.Point { return t.size }

// newTestUI builds an engine on the deterministic test collaborators. The
// canvas used by runFrame is 1000x1000, which at the default virtual
// resolution makes one virtual unit exactly one pixel.
func newTestUI() (*UI, *ScriptInput, *stubRenderer) {
	rd := &stubRenderer{}
	in := NewScriptInput()
	u := New(rd, stubShaper{}, in, Config{})
	tm := time.Unix(0, 0)
	u.now = func() time.Time {
		tm = tm.Add(time.Second / 60)
		return tm
	}
	return u, in, rd
}

// runFrame executes one frame and then rolls the scripted input forward.
func runFrame(u *UI, in *ScriptInput, gui func()) {
	u.Run(image.Pt(1000, 1000), gui)
	in.Advance()
}
