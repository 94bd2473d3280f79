package sprig

import "image"

// Event is a bitmask of the interaction events an element received this
// frame. Multiple flags may be set at once; a click shorter than one frame
// yields EventWentDown|EventWentUp.
type Event int

const (
	EventNone       Event = 0
	EventWentUp     Event = 1 << 0
	EventWentDown   Event = 1 << 1
	EventIsDown     Event = 1 << 2
	EventStartDrag  Event = 1 << 3
	EventEndDrag    Event = 1 << 4
	EventIsDragging Event = 1 << 5
	EventHover      Event = 1 << 6
)

// Has reports whether every flag in f is set.
func (e Event) Has(f Event) bool { return e&f == f }

// CheckEvent returns the events the current group received this frame.
// Call it inside the group, after StartGroup. During the layout pass it
// always returns EventNone; only the render pass computes events.
func (u *UI) CheckEvent() Event {
	return u.checkEvent(u.layout.cur.hash, u.layout.groupRect(), false)
}

// CheckDragEvent is like CheckEvent but only reports drag events
// (EventStartDrag, EventIsDragging, EventEndDrag). A drag-only group never
// claims the press, so a button inside a scroll area still receives its
// click while the scroll area receives the drag.
func (u *UI) CheckDragEvent() Event {
	return u.checkEvent(u.layout.cur.hash, u.layout.groupRect(), true)
}

// checkEvent runs the per-element event machine. Interactive calls are
// counted in both passes so that modal suppression recorded in pass 1 lines
// up with the same calls in pass 2.
func (u *UI) checkEvent(hash HashedID, rect image.Rectangle, dragOnly bool) Event {
	idx := u.interactiveIdx
	u.interactiveIdx++
	if u.layout.layoutPass {
		return EventNone
	}

	u.state.record(hash)
	u.lastInteractive = hash
	if !dragOnly {
		u.focusOrder = append(u.focusOrder, hash)
	}

	suppressed := u.modalCutoff >= 0 && idx < u.modalCutoff

	// Hit testing respects the active scroll viewport clip.
	clip := rect
	if n := len(u.scissors); n > 0 {
		clip = rect.Intersect(u.scissors[n-1])
	}

	var ev Event
	for i := range u.pointers {
		p := u.pointers[i]
		ps := &u.pointerStates[i]
		pos := u.pointerPos[i]

		captured := u.captureOwner != NullHash && u.capturePointer == i
		if captured && u.captureOwner != hash {
			// Capture suppresses every other element for this pointer.
			continue
		}
		if suppressed && !captured {
			continue
		}
		hit := captured || ptInRect(pos, clip)

		own := &ps.press
		if dragOnly {
			own = &ps.drag
		}

		if p.WentDown && hit && own.owner == NullHash {
			own.owner = hash
			own.downPos = pos
			own.dragging = false
			if !dragOnly {
				ev |= EventWentDown
				u.focused = hash
			}
			u.notePointerEvent(i)
		}
		if own.owner != hash {
			continue
		}

		if p.IsDown && !dragOnly {
			ev |= EventIsDown
		}
		if p.IsDown || p.WentUp {
			delta := pos.Sub(own.downPos)
			over := absi(delta.X) > u.dragThreshold || absi(delta.Y) > u.dragThreshold
			if !own.dragging && over {
				own.dragging = true
				ev |= EventStartDrag
			} else if own.dragging && p.IsDown && !p.WentUp {
				ev |= EventIsDragging
			}
		}
		if p.WentUp {
			// Up pairs with the down by ownership, not by position, so a
			// press released off-element still resolves for its owner.
			if !dragOnly {
				ev |= EventWentUp
			}
			if own.dragging {
				ev |= EventEndDrag
			}
			own.reset()
			if captured {
				u.captureOwner = NullHash
				u.capturePointer = -1
			}
			u.notePointerEvent(i)
		}
	}

	// Hover needs an actual pointing device and an unpressed primary
	// pointer; touch screens never hover.
	if !dragOnly && !suppressed && u.hasPointer && len(u.pointers) > 0 {
		if !u.pointers[0].IsDown && ptInRect(u.pointerPos[0], clip) &&
			(u.captureOwner == NullHash || u.captureOwner == hash) {
			ev |= EventHover
		}
	}

	// Without a pointing device the focused element stands in for the
	// hovered one, and the activate button stands in for a click.
	if !dragOnly && !u.hasPointer && u.focused == hash {
		ev |= EventHover
		if u.input.KeyWentDown(KeyActivate) {
			ev |= EventWentDown | EventWentUp
			u.lastEventPointer = false
		}
	}

	if ev != EventNone && u.globalListener != nil {
		u.globalListener(hash, ev)
	}
	return ev
}

func (u *UI) notePointerEvent(idx int) {
	u.lastEventPointer = true
	u.lastEventPointerIdx = idx
}

// CapturePointer binds the pointer behind the most recent pointer event
// exclusively to the element with the given id. While bound, no other
// element receives events for that pointer. Capture ends on ReleasePointer
// or when the pointer goes up.
func (u *UI) CapturePointer(id string) {
	if u.layout.layoutPass {
		return
	}
	u.captureOwner = HashID(id)
	u.capturePointer = u.lastEventPointerIdx
}

// ReleasePointer ends the current pointer capture, if any.
func (u *UI) ReleasePointer() {
	u.captureOwner = NullHash
	u.capturePointer = -1
}

// CapturedPointerIndex returns the index of the captured pointer, or -1
// when no capture is active.
func (u *UI) CapturedPointerIndex() int {
	if u.captureOwner == NullHash {
		return -1
	}
	return u.capturePointer
}

// SetDragStartThreshold sets how far, in physical pixels, a pointer must
// move while down before drag events begin.
func (u *UI) SetDragStartThreshold(pixels int) {
	u.dragThreshold = pixels
}

// SetDefaultFocus marks the most recently declared interactive element as
// the fallback focus target. If nothing holds focus when the frame ends,
// focus moves to it.
func (u *UI) SetDefaultFocus() {
	if u.layout.layoutPass {
		return
	}
	u.defaultFocus = u.lastInteractive
}

// ModalGroup makes the current group modal for this frame: elements declared
// before it receive no events. The effect is recomputed every frame, so a
// dialog simply stops calling ModalGroup to dismiss itself.
func (u *UI) ModalGroup() {
	if u.layout.layoutPass {
		u.modalCutoff = u.interactiveIdx
	}
}

// SetGlobalListener installs an observer invoked for every non-empty event
// produced during the render pass, in dispatch order. The listener cannot
// alter dispatch.
func (u *UI) SetGlobalListener(fn func(id HashedID, ev Event)) {
	u.globalListener = fn
}

// IsLastEventPointerType reports whether the most recent input event came
// from a pointer rather than the keyboard or a gamepad. Useful for hiding
// hover styling while the user is navigating by key.
func (u *UI) IsLastEventPointerType() bool {
	return u.lastEventPointer
}

// stepFocus handles keyboard and gamepad focus navigation at the end of the
// render pass, once this frame's focus-eligible elements are known.
func (u *UI) stepFocus() {
	if u.focused == NullHash && u.defaultFocus != NullHash {
		u.focused = u.defaultFocus
	}
	if len(u.focusOrder) == 0 {
		return
	}
	next := u.input.KeyWentDown(KeyNavNext)
	prev := u.input.KeyWentDown(KeyNavPrev)
	if !next && !prev {
		return
	}
	u.lastEventPointer = false

	cur := -1
	for i, h := range u.focusOrder {
		if h == u.focused {
			cur = i
			break
		}
	}
	n := len(u.focusOrder)
	switch {
	case cur < 0:
		cur = 0
	case next:
		cur = (cur + 1) % n
	case prev:
		cur = (cur - 1 + n) % n
	}
	u.focused = u.focusOrder[cur]
}
