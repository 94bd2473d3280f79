package sprig

import (
	"image"
	"math"
	"unicode"
	"unicode/utf8"
)

// EditStatus reports where an edit box is in its lifecycle this frame.
type EditStatus int

const (
	// EditStatusNone means the box is idle and unfocused.
	EditStatusNone EditStatus = iota

	// EditStatusInEdit means the box holds focus and is accepting input.
	EditStatusInEdit

	// EditStatusUpdated means a keystroke changed the text this frame.
	EditStatusUpdated

	// EditStatusFinished means the edit was committed, by enter or by the
	// box losing focus.
	EditStatusFinished

	// EditStatusCanceled means escape reverted the text to its value at
	// edit start.
	EditStatusCanceled
)

// editState is the per-element editor state, persisted on the element's
// interaction record while the element keeps appearing.
type editState struct {
	editing bool
	caret   int // byte offset into the text
	preEdit string
	blink   float64
}

// Edit declares a text edit box. The caller owns the string; the engine
// mutates it in place during the render pass. Clicking the box (or focus
// navigation reaching it) starts an edit; enter commits, escape reverts to
// the text as it was when the edit began. A size with room for more than
// one line makes enter insert a newline instead of committing.
//
// The returned status reflects this frame's render pass; the layout pass
// reports only None or InEdit.
func (u *UI) Edit(ysize float64, size Vec2, id string, text *string) EditStatus {
	hash := HashID(id)
	st := u.shape(*text, ysize, size, TextAlignLeft)

	vsize := u.layout.physicalToVirtual(st.Size)
	vsize.X += 1 // room for the caret after the last rune
	vsize.Y = maxf(vsize.Y, ysize)
	if size.X > 0 {
		vsize.X = size.X
	}
	if size.Y > 0 {
		vsize.Y = size.Y
	}

	if u.layout.layoutPass {
		u.layout.element(vsize, hash, nil)
		u.checkEvent(hash, image.Rectangle{}, false)
		if rec := u.state.peek(hash); rec != nil && rec.edit != nil && rec.edit.editing {
			return EditStatusInEdit
		}
		return EditStatusNone
	}

	multiline := size.Y >= ysize*2
	status := EditStatusNone
	u.layout.element(vsize, hash, func(pos, esize image.Point) {
		rect := image.Rectangle{Min: pos, Max: pos.Add(esize)}
		ev := u.checkEvent(hash, rect, false)

		rec := u.state.record(hash)
		if rec.edit == nil {
			rec.edit = &editState{caret: len(*text)}
		}
		es := rec.edit

		focused := u.focused == hash
		if focused && !es.editing {
			es.editing = true
			es.preEdit = *text
			es.caret = len(*text)
			es.blink = 0
		}
		if es.editing && !focused {
			es.editing = false
			status = EditStatusFinished
		}

		if ev.Has(EventWentDown) {
			local := u.pointerPos[u.lastEventPointerIdx].Sub(pos)
			es.caret = byteIndexOfRune(*text, st.caretIndexNear(local))
			es.blink = 0
		}

		if es.editing {
			status = EditStatusInEdit
			switch u.applyTextInput(es, text, multiline) {
			case EditStatusUpdated:
				status = EditStatusUpdated
				es.blink = 0
			case EditStatusFinished:
				status = EditStatusFinished
				es.editing = false
				u.focused = NullHash
			case EditStatusCanceled:
				status = EditStatusCanceled
				es.editing = false
				u.focused = NullHash
			}
		}

		u.drawShaped(st, pos, u.textColor)
		if es.editing {
			es.blink += u.dt
			u.drawCaret(es, *text, st, pos, ysize)
		}
	})
	return status
}

// applyTextInput feeds this frame's text events into the buffer. Returns
// Updated when the buffer or caret changed, Finished on commit, Canceled on
// escape, None otherwise.
func (u *UI) applyTextInput(es *editState, text *string, multiline bool) EditStatus {
	status := EditStatusNone
	for _, te := range u.input.TextEvents() {
		if te.Rune != 0 {
			*text = (*text)[:es.caret] + string(te.Rune) + (*text)[es.caret:]
			es.caret += utf8.RuneLen(te.Rune)
			status = EditStatusUpdated
			continue
		}
		switch te.Key {
		case KeyBackspace:
			if es.caret > 0 {
				prev := prevRuneStart(*text, es.caret)
				*text = (*text)[:prev] + (*text)[es.caret:]
				es.caret = prev
				status = EditStatusUpdated
			}
		case KeyDelete:
			if es.caret < len(*text) {
				*text = (*text)[:es.caret] + (*text)[nextRuneEnd(*text, es.caret):]
				status = EditStatusUpdated
			}
		case KeyLeft:
			if es.caret > 0 {
				es.caret = prevRuneStart(*text, es.caret)
				status = EditStatusUpdated
			}
		case KeyRight:
			if es.caret < len(*text) {
				es.caret = nextRuneEnd(*text, es.caret)
				status = EditStatusUpdated
			}
		case KeyHome:
			es.caret = 0
			status = EditStatusUpdated
		case KeyEnd:
			es.caret = len(*text)
			status = EditStatusUpdated
		case KeyWordLeft:
			es.caret = wordLeft(*text, es.caret)
			status = EditStatusUpdated
		case KeyWordRight:
			es.caret = wordRight(*text, es.caret)
			status = EditStatusUpdated
		case KeyEnter:
			if multiline {
				*text = (*text)[:es.caret] + "\n" + (*text)[es.caret:]
				es.caret++
				status = EditStatusUpdated
			} else {
				return EditStatusFinished
			}
		case KeyEscape:
			*text = es.preEdit
			es.caret = len(*text)
			return EditStatusCanceled
		}
	}
	return status
}

func (u *UI) drawCaret(es *editState, text string, st ShapedText, origin image.Point, ysize float64) {
	rate := u.caretBlinkRate
	if math.Mod(es.blink, rate*2) >= rate {
		return
	}
	idx := utf8.RuneCountInString(text[:es.caret])
	if idx >= len(st.Carets) {
		idx = len(st.Carets) - 1
	}
	var cp image.Point
	if idx >= 0 {
		cp = st.Carets[idx]
	}
	w := maxi(1, int(u.layout.scale()))
	h := u.layout.virtualToPhysicalScalar(ysize)
	pos := origin.Add(cp)
	u.renderer.DrawQuad(image.Rectangle{Min: pos, Max: pos.Add(image.Point{X: w, Y: h})}, u.caretColor)
}

func prevRuneStart(s string, i int) int {
	_, n := utf8.DecodeLastRuneInString(s[:i])
	return i - n
}

func nextRuneEnd(s string, i int) int {
	_, n := utf8.DecodeRuneInString(s[i:])
	return i + n
}

// wordLeft moves to the start of the previous word: back over spaces, then
// back over the word itself.
func wordLeft(s string, i int) int {
	for i > 0 {
		r, n := utf8.DecodeLastRuneInString(s[:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= n
	}
	for i > 0 {
		r, n := utf8.DecodeLastRuneInString(s[:i])
		if unicode.IsSpace(r) {
			break
		}
		i -= n
	}
	return i
}

// wordRight moves past the current word and any spaces after it.
func wordRight(s string, i int) int {
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += n
	}
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += n
	}
	return i
}

// byteIndexOfRune converts a rune index into a byte offset within s.
func byteIndexOfRune(s string, runeIdx int) int {
	for i := range s {
		if runeIdx == 0 {
			return i
		}
		runeIdx--
	}
	return len(s)
}
