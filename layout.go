package sprig

import (
	"image"
	"math"
)

// Alignment positions children along a group's cross axis, and whole groups
// within the canvas via [UI.PositionGroup]. AlignTop and AlignLeft (as well
// as AlignBottom and AlignRight) are aliases of one another — they express
// the same thing on their respective axis.
type Alignment int

const (
	AlignTop    Alignment = 1
	AlignLeft   Alignment = 1
	AlignCenter Alignment = 2
	AlignBottom Alignment = 3
	AlignRight  Alignment = 3
)

// Direction selects the main axis of a group.
type Direction int

const (
	DirHorizontal Direction = 4
	DirVertical   Direction = 8
	DirOverlay    Direction = 12
)

// Layout combines a Direction with a cross-axis Alignment. The enum values
// compose bitwise, so e.g. LayoutHorizontalTop means "lay children out left
// to right, aligning uneven heights along the top".
type Layout int

const (
	LayoutHorizontalTop    Layout = Layout(DirHorizontal) | Layout(AlignTop)
	LayoutHorizontalCenter Layout = Layout(DirHorizontal) | Layout(AlignCenter)
	LayoutHorizontalBottom Layout = Layout(DirHorizontal) | Layout(AlignBottom)
	LayoutVerticalLeft     Layout = Layout(DirVertical) | Layout(AlignLeft)
	LayoutVerticalCenter   Layout = Layout(DirVertical) | Layout(AlignCenter)
	LayoutVerticalRight    Layout = Layout(DirVertical) | Layout(AlignRight)
	LayoutOverlay          Layout = Layout(DirOverlay) | Layout(AlignCenter)
)

// direction extracts the Direction bits.
func (l Layout) direction() Direction { return Direction(l & ^Layout(3)) }

// alignment extracts the Alignment bits.
func (l Layout) alignment() Alignment { return Alignment(l & 3) }

// DefaultVirtualResolution is the virtual size of the screen's shorter
// dimension when [UI.SetVirtualResolution] is never called.
const DefaultVirtualResolution = 1000.0

// uiElement records one GUI element across the two passes of a frame. One of
// these exists per element, so new fields are only added when necessary.
type uiElement struct {
	size        image.Point // minimum on-screen size computed by the layout pass
	extraSize   image.Point // additional content size inside a scrolling area
	hash        HashedID    // from the id specified by the caller
	interactive bool        // wants to respond to user input
}

// group holds the transient state of a group while its layout is being
// calculated or rendered.
type group struct {
	dir        Direction
	align      Alignment
	spacing    int         // physical pixels between children
	size       image.Point // accumulated (pass 1) or final (pass 2) extent
	position   image.Point // top-left corner, physical pixels (pass 2)
	elementIdx int         // index of the element tracking this group
	margin     [4]int      // left, top, right, bottom in physical pixels
	hash       HashedID
}

// extend grows the group by the size of a new element, inserting spacing if
// it wasn't the first.
func (g *group) extend(ext image.Point) {
	switch g.dir {
	case DirHorizontal:
		pad := 0
		if g.size.X != 0 {
			pad = g.spacing
		}
		g.size = image.Point{X: g.size.X + ext.X + pad, Y: maxi(g.size.Y, ext.Y)}
	case DirVertical:
		pad := 0
		if g.size.Y != 0 {
			pad = g.spacing
		}
		g.size = image.Point{X: maxi(g.size.X, ext.X), Y: g.size.Y + ext.Y + pad}
	case DirOverlay:
		g.size = image.Point{X: maxi(g.size.X, ext.X), Y: maxi(g.size.Y, ext.Y)}
	}
}

// layoutManager performs the two-pass layout algorithm: the first pass
// measures every element, the second assigns final positions from those
// measurements. It holds no state that outlives a frame except the previous
// frame's measured rects, which answer size queries during pass 1.
type layoutManager struct {
	cur        group
	groupStack []group

	layoutPass bool
	elements   []uiElement
	elementIt  int

	canvasSize        image.Point
	virtualResolution float64
	pixelScale        float64

	// Sequence of group opens (the group's hash) and closes (NullHash) per
	// pass. The two sequences must match exactly, so a frame whose passes
	// nest groups differently is caught even when the counts agree.
	groupSeq [2][]HashedID

	// Previous frame's final rects by element hash. Size queries during the
	// layout pass answer from here, since the current frame's results are
	// not known yet.
	prevRects map[HashedID]image.Rectangle
	curRects  map[HashedID]image.Rectangle
}

// beginFrame resets transient layout state and recomputes the pixel scale
// from the current canvas size.
func (lm *layoutManager) beginFrame(canvasSize image.Point) {
	lm.canvasSize = canvasSize
	if lm.virtualResolution == 0 {
		lm.virtualResolution = DefaultVirtualResolution
	}
	lm.cur = group{dir: DirVertical, align: AlignLeft}
	lm.groupStack = lm.groupStack[:0]
	lm.elements = lm.elements[:0]
	lm.elementIt = 0
	lm.layoutPass = true
	lm.groupSeq[0] = lm.groupSeq[0][:0]
	lm.groupSeq[1] = lm.groupSeq[1][:0]
	if lm.curRects == nil {
		lm.curRects = make(map[HashedID]image.Rectangle)
	}
	if lm.prevRects == nil {
		lm.prevRects = make(map[HashedID]image.Rectangle)
	}
	lm.setScale()
}

// setVirtualResolution fixes how many physical pixels correspond to one
// virtual unit along the screen's shorter dimension. Only honored during the
// layout pass so both passes see the same scale.
func (lm *layoutManager) setVirtualResolution(v float64) {
	if lm.layoutPass {
		lm.virtualResolution = v
		lm.setScale()
	}
}

func (lm *layoutManager) setScale() {
	sx := float64(lm.canvasSize.X) / lm.virtualResolution
	sy := float64(lm.canvasSize.Y) / lm.virtualResolution
	lm.pixelScale = math.Min(sx, sy)
	if lm.pixelScale <= 0 {
		lm.pixelScale = 1
	}
}

// scale returns the physical pixels per virtual unit for this frame.
func (lm *layoutManager) scale() float64 { return lm.pixelScale }

// virtualResolutionSize returns the whole canvas expressed in virtual units.
func (lm *layoutManager) virtualResolutionSize() Vec2 {
	return Vec2{
		X: float64(lm.canvasSize.X) / lm.pixelScale,
		Y: float64(lm.canvasSize.Y) / lm.pixelScale,
	}
}

// virtualToPhysical converts a virtual coordinate to physical pixels,
// rounding to the nearest pixel.
func (lm *layoutManager) virtualToPhysical(v Vec2) image.Point {
	return image.Point{
		X: int(v.X*lm.pixelScale + 0.5),
		Y: int(v.Y*lm.pixelScale + 0.5),
	}
}

// physicalToVirtual converts physical pixels back to virtual units.
func (lm *layoutManager) physicalToVirtual(p image.Point) Vec2 {
	return Vec2{
		X: float64(p.X) / lm.pixelScale,
		Y: float64(p.Y) / lm.pixelScale,
	}
}

func (lm *layoutManager) virtualToPhysicalScalar(v float64) int {
	return int(v*lm.pixelScale + 0.5)
}

// passIndex is 0 during the layout pass and 1 during the render pass.
func (lm *layoutManager) passIndex() int {
	if lm.layoutPass {
		return 0
	}
	return 1
}

// startSecondPass switches from measuring to positioning. Returns false when
// the frame declared no elements at all.
func (lm *layoutManager) startSecondPass() bool {
	if len(lm.groupStack) != 0 {
		panic("sprig: missing EndGroup")
	}
	if len(lm.elements) == 0 {
		return false
	}

	// Sentinel element, pointed to when a group exists during the render
	// pass but did not exist during layout.
	lm.newElement(image.Point{}, NullHash)

	lm.cur.position = image.Point{}
	lm.cur.size = lm.elements[0].size
	lm.layoutPass = false
	lm.elementIt = 0
	return true
}

// endFrame validates group balance across the two passes and rolls the
// current frame's rects over as next frame's "previous" results.
func (lm *layoutManager) endFrame() {
	if len(lm.groupStack) != 0 {
		panic("sprig: missing EndGroup")
	}
	if !groupSeqEqual(lm.groupSeq[0], lm.groupSeq[1]) {
		panic("sprig: group structure differs between layout and render passes")
	}
	lm.prevRects, lm.curRects = lm.curRects, lm.prevRects
	clear(lm.curRects)
}

// setMargin shrinks the current group's usable interior. Must be called
// before any child element of the group.
func (lm *layoutManager) setMargin(m Margin) {
	lm.cur.margin = [4]int{
		lm.virtualToPhysicalScalar(m.Left),
		lm.virtualToPhysicalScalar(m.Top),
		lm.virtualToPhysicalScalar(m.Right),
		lm.virtualToPhysicalScalar(m.Bottom),
	}
}

// positionGroup places the current top-level group within the canvas.
func (lm *layoutManager) positionGroup(horizontal, vertical Alignment, offset Vec2) {
	if lm.layoutPass {
		return
	}
	space := lm.canvasSize.Sub(lm.cur.size)
	pos := alignDimension(horizontal, 0, space).
		Add(alignDimension(vertical, 1, space)).
		Add(lm.virtualToPhysical(offset))
	lm.cur.position = pos
}

// element declares a generic leaf element. During the layout pass it records
// the measured size; during the render pass it resolves the final position
// and invokes render, then advances past the element.
func (lm *layoutManager) element(virtualSize Vec2, hash HashedID, render func(pos, size image.Point)) {
	if lm.layoutPass {
		size := lm.virtualToPhysical(virtualSize)
		lm.newElement(size, hash)
		lm.cur.extend(size)
		return
	}
	elem := lm.nextElement(hash)
	if elem == nil {
		return
	}
	pos := lm.positionOf(elem)
	if render != nil {
		render(pos, elem.size)
	}
	lm.curRects[hash] = image.Rectangle{Min: pos, Max: pos.Add(elem.size)}
	lm.advance(elem.size)
}

// startGroup opens a nested group. In the render pass it returns the group's
// resolved rect (zero during layout, or when the group did not exist in the
// layout pass).
func (lm *layoutManager) startGroup(dir Direction, align Alignment, spacing float64, hash HashedID) image.Rectangle {
	p := lm.passIndex()
	lm.groupSeq[p] = append(lm.groupSeq[p], hash)
	next := group{
		dir:        dir,
		align:      align,
		spacing:    lm.virtualToPhysicalScalar(spacing),
		elementIdx: len(lm.elements),
		hash:       hash,
	}
	lm.groupStack = append(lm.groupStack, lm.cur)

	var rect image.Rectangle
	if lm.layoutPass {
		lm.newElement(image.Point{}, hash)
	} else {
		elem := lm.nextElement(hash)
		if elem != nil {
			next.position = lm.positionOf(elem)
			next.size = elem.size
			// Point the group at the element it originates from; the
			// iterator has already moved one past it.
			next.elementIdx = lm.elementIt - 1
			rect = image.Rectangle{Min: next.position, Max: next.position.Add(elem.size)}
		} else {
			// The group did not exist during layout. Everything inside it
			// still runs, so track it with the (empty) sentinel element.
			next.elementIdx = len(lm.elements) - 1
		}
	}
	lm.cur = next
	return rect
}

// endGroup closes the innermost group, folding its measured extent into the
// parent according to the parent's layout direction.
func (lm *layoutManager) endGroup() {
	if len(lm.groupStack) == 0 {
		panic("sprig: EndGroup without matching StartGroup")
	}
	p := lm.passIndex()
	lm.groupSeq[p] = append(lm.groupSeq[p], NullHash)

	size := lm.cur.size
	margin := image.Point{
		X: lm.cur.margin[0] + lm.cur.margin[2],
		Y: lm.cur.margin[1] + lm.cur.margin[3],
	}
	elementIdx := lm.cur.elementIdx
	hash := lm.cur.hash
	pos := lm.cur.position

	lm.cur = lm.groupStack[len(lm.groupStack)-1]
	lm.groupStack = lm.groupStack[:len(lm.groupStack)-1]

	if lm.layoutPass {
		size = size.Add(margin)
		lm.cur.extend(size)
		lm.elements[elementIdx].size = size
		return
	}
	if hash != NullHash {
		lm.curRects[hash] = image.Rectangle{
			Min: pos,
			Max: pos.Add(lm.elements[elementIdx].size),
		}
	}
	lm.advance(lm.elements[elementIdx].size)
}

// groupPosition returns the current group's top-left corner in virtual
// coordinates. During the layout pass this is the previous frame's result.
func (lm *layoutManager) groupPosition() Vec2 {
	if lm.layoutPass {
		return lm.physicalToVirtual(lm.prevRects[lm.cur.hash].Min)
	}
	return lm.physicalToVirtual(lm.cur.position)
}

// groupSize returns the current group's extent in virtual coordinates,
// including any scroll content overflow. During the layout pass this is the
// previous frame's measurement — the current frame's is not yet known.
func (lm *layoutManager) groupSize() Vec2 {
	if lm.layoutPass {
		r := lm.prevRects[lm.cur.hash]
		return lm.physicalToVirtual(r.Size().Add(lm.extraSizeOf(lm.cur.hash)))
	}
	return lm.physicalToVirtual(lm.cur.size.Add(lm.elements[lm.cur.elementIdx].extraSize))
}

// extraSizeOf finds the scroll overflow recorded for a hash this frame.
func (lm *layoutManager) extraSizeOf(hash HashedID) image.Point {
	for i := range lm.elements {
		if lm.elements[i].hash == hash {
			return lm.elements[i].extraSize
		}
	}
	return image.Point{}
}

// groupRect returns the current group's physical rect (render pass only).
func (lm *layoutManager) groupRect() image.Rectangle {
	return image.Rectangle{Min: lm.cur.position, Max: lm.cur.position.Add(lm.cur.size)}
}

// nextElement retrieves the element created for hash during the layout pass.
// Usually this returns on the first iteration; when an event handler removed
// elements between passes it skips forward, and when it added elements the
// lookup fails and returns nil.
func (lm *layoutManager) nextElement(hash HashedID) *uiElement {
	backup := lm.elementIt
	for lm.elementIt < len(lm.elements) {
		elem := &lm.elements[lm.elementIt]
		lm.elementIt++
		if elem.hash == hash {
			return elem
		}
	}
	lm.elementIt = backup
	return nil
}

// newElement appends an element during the layout pass.
func (lm *layoutManager) newElement(size image.Point, hash HashedID) {
	lm.elements = append(lm.elements, uiElement{size: size, hash: hash})
}

// advance moves the group's position past an element of the given size.
func (lm *layoutManager) advance(size image.Point) {
	switch lm.cur.dir {
	case DirHorizontal:
		lm.cur.position.X += size.X + lm.cur.spacing
	case DirVertical:
		lm.cur.position.Y += size.Y + lm.cur.spacing
	case DirOverlay:
		// All children share the group origin.
	}
}

// positionOf computes the top-left corner of an element from the group's
// running position, margin, and cross-axis alignment.
func (lm *layoutManager) positionOf(elem *uiElement) image.Point {
	pos := lm.cur.position.Add(image.Point{X: lm.cur.margin[0], Y: lm.cur.margin[1]})
	space := lm.cur.size.Sub(elem.size).
		Sub(image.Point{X: lm.cur.margin[0], Y: lm.cur.margin[1]}).
		Sub(image.Point{X: lm.cur.margin[2], Y: lm.cur.margin[3]})
	switch lm.cur.dir {
	case DirHorizontal:
		pos = pos.Add(alignDimension(lm.cur.align, 1, space))
	case DirVertical:
		pos = pos.Add(alignDimension(lm.cur.align, 0, space))
	case DirOverlay:
		pos = pos.Add(alignDimension(lm.cur.align, 0, space))
		pos = pos.Add(alignDimension(lm.cur.align, 1, space))
	}
	return pos
}

// groupSeqEqual compares the group open/close sequences of the two passes.
func groupSeqEqual(a, b []HashedID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// alignDimension offsets one dimension of a point by the free space an
// alignment leaves before it.
func alignDimension(align Alignment, dim int, space image.Point) image.Point {
	var dest image.Point
	v := space.X
	if dim == 1 {
		v = space.Y
	}
	switch align {
	case AlignCenter:
		v /= 2
	case AlignBottom: // same as AlignRight
	default: // AlignTop / AlignLeft
		v = 0
	}
	if dim == 0 {
		dest.X = v
	} else {
		dest.Y = v
	}
	return dest
}
