package sprig

import "image"

// Texture is an image resource owned by the renderer backend. The engine
// only needs its pixel size for layout and its name for identity hashing.
type Texture interface {
	// Name identifies the texture, typically the path it was loaded from.
	Name() string

	// Size returns the texture's dimensions in pixels.
	Size() image.Point
}

// Renderer draws the engine's output. All rects are in device pixels, after
// the virtual to physical mapping. Draw calls only happen during the render
// pass of a frame.
//
// EbitenRenderer is the production implementation.
type Renderer interface {
	// DrawQuad fills a rect with a solid color.
	DrawQuad(dst image.Rectangle, c Color)

	// DrawTexture draws the src region of t into dst, scaled to fit and
	// modulated by c.
	DrawTexture(t Texture, src, dst image.Rectangle, c Color)

	// DrawNinePatch draws t into dst, stretching only the inner region
	// given in source pixels and keeping the border at its native size.
	DrawNinePatch(t Texture, inner image.Rectangle, dst image.Rectangle, c Color)

	// PushScissor clips subsequent draws to r, intersected with any
	// enclosing scissor. Scissors nest.
	PushScissor(r image.Rectangle)

	// PopScissor restores the scissor in effect before the matching
	// PushScissor.
	PopScissor()

	// SetDepthTest toggles depth testing for custom-transformed output.
	// Backends without a depth buffer may ignore it.
	SetDepthTest(on bool)
}
