package sprig

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel backs solid color fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// EbitenTexture wraps an ebiten image as a Texture.
type EbitenTexture struct {
	img  *ebiten.Image
	name string
}

// NewEbitenTexture wraps an existing ebiten image. The name feeds element
// identity hashing, so it should be unique per texture, typically the
// asset's path.
func NewEbitenTexture(img *ebiten.Image, name string) *EbitenTexture {
	return &EbitenTexture{img: img, name: name}
}

// NewTextureFromImage uploads a decoded image.
func NewTextureFromImage(src image.Image, name string) *EbitenTexture {
	return &EbitenTexture{img: ebiten.NewImageFromImage(src), name: name}
}

// Name implements Texture.
func (t *EbitenTexture) Name() string { return t.name }

// Size implements Texture.
func (t *EbitenTexture) Size() image.Point {
	b := t.img.Bounds()
	return image.Point{X: b.Dx(), Y: b.Dy()}
}

// Image returns the underlying ebiten image.
func (t *EbitenTexture) Image() *ebiten.Image { return t.img }

// EbitenRenderer draws UI output onto an ebiten image. Point it at the
// screen with [EbitenRenderer.BeginFrame] each Draw call, then run the UI.
// Scissoring uses SubImage, so clipped draws stay on the GPU.
type EbitenRenderer struct {
	screen  *ebiten.Image
	target  *ebiten.Image
	filter  ebiten.Filter
	targets []*ebiten.Image
}

// NewEbitenRenderer creates a renderer with linear filtering.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{filter: ebiten.FilterLinear}
}

// SetFilter selects the sampling filter for textured draws.
func (r *EbitenRenderer) SetFilter(f ebiten.Filter) { r.filter = f }

// BeginFrame points the renderer at this frame's destination.
func (r *EbitenRenderer) BeginFrame(screen *ebiten.Image) {
	r.screen = screen
	r.target = screen
	r.targets = r.targets[:0]
}

func colorScale(c Color) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	cs.ScaleAlpha(float32(c.A))
	return cs
}

// DrawQuad implements Renderer.
func (r *EbitenRenderer) DrawQuad(dst image.Rectangle, c Color) {
	if r.target == nil || dst.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx()), float64(dst.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	op.ColorScale = colorScale(c)
	r.target.DrawImage(whitePixel, op)
}

// DrawTexture implements Renderer.
func (r *EbitenRenderer) DrawTexture(t Texture, src, dst image.Rectangle, c Color) {
	et, ok := t.(*EbitenTexture)
	if !ok || r.target == nil || dst.Empty() || src.Empty() {
		return
	}
	part := et.img.SubImage(src).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.Filter = r.filter
	op.GeoM.Scale(
		float64(dst.Dx())/float64(src.Dx()),
		float64(dst.Dy())/float64(src.Dy()),
	)
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	op.ColorScale = colorScale(c)
	r.target.DrawImage(part, op)
}

// DrawNinePatch implements Renderer. The inner rect, in source pixels,
// stretches; the surrounding border keeps its native thickness.
func (r *EbitenRenderer) DrawNinePatch(t Texture, inner image.Rectangle, dst image.Rectangle, c Color) {
	sz := t.Size()
	srcX := [4]int{0, inner.Min.X, inner.Max.X, sz.X}
	srcY := [4]int{0, inner.Min.Y, inner.Max.Y, sz.Y}

	left := inner.Min.X
	right := sz.X - inner.Max.X
	top := inner.Min.Y
	bottom := sz.Y - inner.Max.Y
	dstX := [4]int{dst.Min.X, dst.Min.X + left, dst.Max.X - right, dst.Max.X}
	dstY := [4]int{dst.Min.Y, dst.Min.Y + top, dst.Max.Y - bottom, dst.Max.Y}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(srcX[col], srcY[row], srcX[col+1], srcY[row+1])
			cell := image.Rect(dstX[col], dstY[row], dstX[col+1], dstY[row+1])
			if src.Empty() || cell.Empty() {
				continue
			}
			r.DrawTexture(t, src, cell, c)
		}
	}
}

// PushScissor implements Renderer.
func (r *EbitenRenderer) PushScissor(clip image.Rectangle) {
	if r.target == nil {
		return
	}
	r.targets = append(r.targets, r.target)
	clipped := r.target.SubImage(clip.Intersect(r.target.Bounds()))
	r.target = clipped.(*ebiten.Image)
}

// PopScissor implements Renderer.
func (r *EbitenRenderer) PopScissor() {
	if len(r.targets) == 0 {
		return
	}
	r.target = r.targets[len(r.targets)-1]
	r.targets = r.targets[:len(r.targets)-1]
}

// SetDepthTest implements Renderer. Ebitengine's 2D pipeline has no depth
// buffer; draw order is depth.
func (r *EbitenRenderer) SetDepthTest(bool) {}
