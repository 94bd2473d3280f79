package sprig

import (
	"bytes"
	"image"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// EbitenTextShaper implements TextShaper on Ebitengine's text/v2 package.
// Fonts are referenced by name: either a path SetFont loads from disk, or a
// name registered up front with [EbitenTextShaper.RegisterFont] for
// embedded font data. Multiple names form a fallback stack.
//
// KerningScale is not honored; text/v2 owns glyph spacing.
type EbitenTextShaper struct {
	sources map[string]*text.GoTextFaceSource
	stack   []*text.GoTextFaceSource
}

// NewEbitenTextShaper returns a shaper with no fonts loaded.
func NewEbitenTextShaper() *EbitenTextShaper {
	return &EbitenTextShaper{sources: make(map[string]*text.GoTextFaceSource)}
}

// RegisterFont parses TTF/OTF data and makes it available under name.
func (s *EbitenTextShaper) RegisterFont(name string, data []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.sources[name] = src
	return nil
}

// SetFont implements TextShaper. Names not yet registered are read from
// disk. When every name fails, the previous stack stays in effect.
func (s *EbitenTextShaper) SetFont(names ...string) bool {
	ok := true
	var stack []*text.GoTextFaceSource
	for _, name := range names {
		src := s.sources[name]
		if src == nil {
			data, err := os.ReadFile(name)
			if err != nil {
				ok = false
				continue
			}
			src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
			if err != nil {
				ok = false
				continue
			}
			s.sources[name] = src
		}
		stack = append(stack, src)
	}
	if len(stack) > 0 {
		s.stack = stack
	}
	return ok
}

func (s *EbitenTextShaper) face(size float64) text.Face {
	if len(s.stack) == 0 {
		return nil
	}
	if len(s.stack) == 1 {
		return &text.GoTextFace{Source: s.stack[0], Size: size}
	}
	faces := make([]text.Face, len(s.stack))
	for i, src := range s.stack {
		faces[i] = &text.GoTextFace{Source: src, Size: size}
	}
	mf, err := text.NewMultiFace(faces...)
	if err != nil {
		return &text.GoTextFace{Source: s.stack[0], Size: size}
	}
	return mf
}

// Shape implements TextShaper.
func (s *EbitenTextShaper) Shape(str string, req ShapeRequest) ShapedText {
	face := s.face(req.PixelSize)
	if face == nil || str == "" {
		return ShapedText{Carets: []image.Point{{}}}
	}

	m := face.Metrics()
	lhScale := req.LineHeightScale
	if lhScale == 0 {
		lhScale = 1
	}
	lineH := (m.HAscent + m.HDescent + m.HLineGap) * lhScale

	lines := wrapLines(str, face, req.MaxWidth, req.Ellipsis)

	maxW := 0.0
	widths := make([]float64, len(lines))
	for i, line := range lines {
		widths[i] = text.Advance(line, face)
		if widths[i] > maxW {
			maxW = widths[i]
		}
	}
	boxW := maxW
	if req.MaxWidth > 0 {
		boxW = float64(req.MaxWidth)
	}

	st := ShapedText{
		Size: image.Point{X: int(boxW + 0.5), Y: int(lineH*float64(len(lines)) + 0.5)},
	}

	opts := &text.LayoutOptions{LineSpacing: lineH}
	var glyphs []text.Glyph
	for i, line := range lines {
		var ox float64
		switch req.Align {
		case TextAlignCenter:
			ox = (boxW - widths[i]) / 2
		case TextAlignRight:
			ox = boxW - widths[i]
		}
		oy := lineH * float64(i)

		glyphs = text.AppendGlyphs(glyphs[:0], line, face, opts)
		for _, g := range glyphs {
			if g.Image == nil {
				continue
			}
			b := g.Image.Bounds()
			min := image.Point{X: int(ox + g.X), Y: int(oy + g.Y)}
			st.Quads = append(st.Quads, GlyphQuad{
				Atlas: NewEbitenTexture(g.Image, "glyph"),
				Src:   b,
				Dst:   image.Rectangle{Min: min, Max: min.Add(image.Point{X: b.Dx(), Y: b.Dy()})},
			})
		}

		st.Carets = append(st.Carets, lineCarets(line, face, ox, oy)...)
	}
	// Line break boundaries between lines collapse onto line starts; the
	// final boundary already came from the last line.
	return st
}

// lineCarets returns a caret position for each rune boundary in line,
// including the trailing one.
func lineCarets(line string, face text.Face, ox, oy float64) []image.Point {
	carets := make([]image.Point, 0, len(line)+1)
	for i := range line {
		carets = append(carets, image.Point{
			X: int(ox + text.Advance(line[:i], face)),
			Y: int(oy),
		})
	}
	carets = append(carets, image.Point{
		X: int(ox + text.Advance(line, face)),
		Y: int(oy),
	})
	return carets
}

// wrapLines splits on newlines and word-wraps each paragraph to maxWidth
// pixels. A word too long for the width is trimmed with the ellipsis.
func wrapLines(str string, face text.Face, maxWidth int, ellipsis string) []string {
	paras := strings.Split(str, "\n")
	if maxWidth <= 0 {
		return paras
	}
	w := float64(maxWidth)
	var lines []string
	for _, para := range paras {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			joined := cur + " " + word
			if text.Advance(joined, face) <= w {
				cur = joined
				continue
			}
			lines = append(lines, fitLine(cur, face, w, ellipsis))
			cur = word
		}
		lines = append(lines, fitLine(cur, face, w, ellipsis))
	}
	return lines
}

func fitLine(line string, face text.Face, w float64, ellipsis string) string {
	if text.Advance(line, face) <= w {
		return line
	}
	runes := []rune(line)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if text.Advance(string(runes)+ellipsis, face) <= w {
			return string(runes) + ellipsis
		}
	}
	return ellipsis
}
