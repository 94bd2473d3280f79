package sprig

import "image"

// TextAlignment positions lines of text horizontally within their box.
type TextAlignment int

const (
	TextAlignLeft TextAlignment = iota
	TextAlignCenter
	TextAlignRight
)

// ShapeRequest describes how a string should be shaped. All measurements are
// in physical pixels; the engine converts from virtual units before calling
// the shaper.
type ShapeRequest struct {
	// PixelSize is the font size in pixels.
	PixelSize float64

	// MaxWidth bounds line length for word wrapping; zero means a single
	// unwrapped line.
	MaxWidth int

	Align           TextAlignment
	LineHeightScale float64 // 0 means 1.0
	KerningScale    float64 // 0 means 1.0

	// Ellipsis, when non-empty, replaces the tail of text that cannot fit
	// within MaxWidth on the final line.
	Ellipsis string
}

// GlyphQuad is one positioned glyph, ready to draw. Dst is relative to the
// shaped text's origin; Src selects the glyph's region within Atlas.
type GlyphQuad struct {
	Atlas Texture
	Src   image.Rectangle
	Dst   image.Rectangle
}

// ShapedText is the result of shaping one string: its measured extent, its
// glyph quads, and the caret position at every rune boundary (len is rune
// count plus one). The same result serves the layout pass for sizing and the
// render pass for drawing.
type ShapedText struct {
	Size   image.Point
	Quads  []GlyphQuad
	Carets []image.Point
}

// TextShaper turns strings into positioned glyph quads. Glyph shaping, font
// fallback and hyphenation live entirely behind this interface; the engine
// treats its output as opaque geometry.
//
// EbitenTextShaper is the production implementation.
type TextShaper interface {
	// SetFont selects the font stack for subsequent Shape calls, loading
	// fonts as needed. It reports whether every font in the stack loaded.
	SetFont(names ...string) bool

	// Shape lays out text per the request. An empty string yields a
	// zero-size result with a single caret at the origin.
	Shape(text string, req ShapeRequest) ShapedText
}

// caretIndexNear returns the rune boundary whose caret position is closest
// to p along the x axis, preferring the same line.
func (st ShapedText) caretIndexNear(p image.Point) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, c := range st.Carets {
		dx := absi(c.X - p.X)
		dy := absi(c.Y - p.Y)
		d := dx + dy*4096
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
