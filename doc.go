// Package sprig is an immediate-mode GUI engine for [Ebitengine] games.
//
// Client code declares its whole interface every frame as nested groups of
// labels, images, edit boxes, and custom elements; sprig computes layout,
// draws, and dispatches hover, press, drag, and focus events without any
// retained widget tree. Elements are recognized across frames by hashed
// ids, so interaction state (focus, pointer capture, edit carets, scroll
// offsets) survives even though the tree is rebuilt from scratch each
// frame.
//
// # Quick start
//
// Wire the Ebitengine adapters into a [UI] and call [UI.Run] from your
// game's Draw:
//
//	type Game struct {
//		ui    *sprig.UI
//		in    *sprig.EbitenInput
//		rd    *sprig.EbitenRenderer
//		click int
//	}
//
//	func (g *Game) Update() error { g.in.Update(); return nil }
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.rd.BeginFrame(screen)
//		g.ui.Run(screen.Bounds().Size(), func() {
//			g.ui.StartGroup(sprig.LayoutVerticalCenter, 10, "root")
//			g.ui.Label(fmt.Sprintf("clicks: %d", g.click), 40)
//			if g.ui.TextButton("Click me", 30, sprig.UniformMargin(5)).Has(sprig.EventWentUp) {
//				g.click++
//			}
//			g.ui.EndGroup()
//		})
//	}
//
// Sizes are in resolution-independent virtual units; the canvas's shorter
// dimension spans [DefaultVirtualResolution] units unless
// [UI.SetVirtualResolution] says otherwise.
//
// Run executes the closure twice per frame: a layout pass that measures
// every element, then a render pass that positions, draws, and dispatches
// events. The closure must declare the same group structure both times;
// state that changes which elements exist should be mutated outside the
// frame (or see [UI.CollapsibleHeader] for the built-in pattern).
//
// [Ebitengine]: https://ebitengine.org
package sprig
