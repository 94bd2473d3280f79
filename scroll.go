package sprig

import "image"

// scrollFrame tracks one StartScroll/EndScroll pair while the group between
// them executes.
type scrollFrame struct {
	offset   *Vec2
	viewport image.Point
}

// StartScroll turns the current group into a scrolling viewport of the
// given size in virtual units. Children are measured at their full extent
// but rendered and hit-tested only within the viewport, shifted by the
// caller-owned offset. Drags inside the viewport, the mouse wheel while
// hovering, and gamepad axes while focused all move the offset, which is
// then clamped so the content never scrolls past its edges.
//
// Call it right after StartGroup and close it with [UI.EndScroll] before
// the matching EndGroup.
func (u *UI) StartScroll(viewport Vec2, offset *Vec2) {
	lm := &u.layout
	vp := lm.virtualToPhysical(viewport)
	u.scrolls = append(u.scrolls, scrollFrame{offset: offset, viewport: vp})

	if lm.layoutPass {
		u.checkEvent(lm.cur.hash, image.Rectangle{}, true)
		return
	}

	rect := lm.groupRect()
	ev := u.checkEvent(lm.cur.hash, rect, true)

	extra := lm.elements[lm.cur.elementIdx].extraSize
	content := lm.physicalToVirtual(vp.Add(extra))

	if ev&(EventStartDrag|EventIsDragging) != 0 {
		for i := range u.pointerStates {
			if u.pointerStates[i].drag.owner == lm.cur.hash {
				d := lm.physicalToVirtual(u.pointerDelta[i])
				*offset = offset.Sub(d.Scale(u.scrollDragSpeed))
				break
			}
		}
	}
	if u.hasPointer && len(u.pointers) > 0 && ptInRect(u.pointerPos[0], rect) {
		*offset = offset.Sub(u.wheel.Scale(u.scrollWheelSpeed))
	}
	if u.focused == lm.cur.hash {
		*offset = offset.Add(u.axes.Scale(u.scrollGamepadSpeed))
	}

	offset.X = clampf(offset.X, 0, maxf(0, content.X-viewport.X))
	offset.Y = clampf(offset.Y, 0, maxf(0, content.Y-viewport.Y))

	u.pushScissor(rect)

	// Children lay out against the full content extent, shifted so the
	// offset window shows through the viewport.
	lm.cur.position = lm.cur.position.Sub(lm.virtualToPhysical(*offset))
	lm.cur.size = vp.Add(extra)
}

// EndScroll closes the scrolling region opened by StartScroll.
func (u *UI) EndScroll() {
	if len(u.scrolls) == 0 {
		panic("sprig: EndScroll without matching StartScroll")
	}
	sf := u.scrolls[len(u.scrolls)-1]
	u.scrolls = u.scrolls[:len(u.scrolls)-1]

	lm := &u.layout
	if lm.layoutPass {
		// The group accumulated its true content size; remember the
		// overflow and present only the viewport to the parent.
		content := lm.cur.size
		lm.elements[lm.cur.elementIdx].extraSize = image.Point{
			X: maxi(0, content.X-sf.viewport.X),
			Y: maxi(0, content.Y-sf.viewport.Y),
		}
		lm.cur.size = sf.viewport
		return
	}
	u.popScissor()
}

func (u *UI) pushScissor(r image.Rectangle) {
	if n := len(u.scissors); n > 0 {
		r = r.Intersect(u.scissors[n-1])
	}
	u.scissors = append(u.scissors, r)
	u.renderer.PushScissor(r)
}

func (u *UI) popScissor() {
	u.scissors = u.scissors[:len(u.scissors)-1]
	u.renderer.PopScissor()
}

// StartSlider turns the current group into a slider along one axis. While
// pressed or dragged, value tracks the pointer's position along the axis,
// normalized to [0, 1]. handleMargin, in virtual units, keeps the usable
// track away from the group's ends by half the handle's size. The returned
// events are the group's, so callers can restyle on hover or press.
func (u *UI) StartSlider(dir Direction, handleMargin float64, value *float64) Event {
	lm := &u.layout
	if lm.layoutPass {
		u.checkEvent(lm.cur.hash, image.Rectangle{}, false)
		return EventNone
	}

	rect := lm.groupRect()
	ev := u.checkEvent(lm.cur.hash, rect, false)
	if ev&(EventWentDown|EventIsDown|EventStartDrag|EventIsDragging) != 0 {
		for i := range u.pointerStates {
			if u.pointerStates[i].press.owner != lm.cur.hash {
				continue
			}
			pos := u.pointerPos[i]
			margin := lm.virtualToPhysicalScalar(handleMargin) / 2
			if dir == DirHorizontal {
				track := rect.Dx() - 2*margin
				if track > 0 {
					*value = clampf(float64(pos.X-rect.Min.X-margin)/float64(track), 0, 1)
				}
			} else {
				track := rect.Dy() - 2*margin
				if track > 0 {
					*value = clampf(float64(pos.Y-rect.Min.Y-margin)/float64(track), 0, 1)
				}
			}
			break
		}
	}
	return ev
}

// EndSlider closes the slider region opened by StartSlider.
func (u *UI) EndSlider() {}
