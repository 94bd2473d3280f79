package sprig

import "image"

// ButtonProperty is a bitmask of button options.
type ButtonProperty int

const (
	ButtonPropertyDisabled ButtonProperty = 1 << iota
	ButtonPropertyImageLeft
	ButtonPropertyImageRight
)

// SetHoverClickColor sets the background colors EventBackground uses for
// hovered and pressed widgets.
func (u *UI) SetHoverClickColor(hover, click Color) {
	u.hoverColor = hover
	u.clickColor = click
}

// EventBackground fills the current group with the hover or click color
// when ev indicates the group is hovered or pressed. Call it right after
// CheckEvent, before the group's children.
func (u *UI) EventBackground(ev Event) {
	switch {
	case ev&(EventIsDown|EventWentDown) != 0:
		u.ColorBackground(u.clickColor)
	case ev.Has(EventHover):
		u.ColorBackground(u.hoverColor)
	}
}

// TextButton is a clickable label with a margin and hover/click feedback.
// The button's id derives from its text.
func (u *UI) TextButton(text string, ysize float64, margin Margin) Event {
	u.StartGroup(LayoutVerticalLeft, 0, text+"_button")
	u.SetMargin(margin)
	ev := u.CheckEvent()
	u.EventBackground(ev)
	u.Label(text, ysize)
	u.EndGroup()
	return ev
}

// TextButtonWithImage is TextButton with an icon on the side chosen by
// property. ButtonPropertyDisabled renders the button without dispatching
// events.
func (u *UI) TextButtonWithImage(tex Texture, texMargin Margin, text string, ysize float64,
	margin Margin, property ButtonProperty) Event {

	u.StartGroup(LayoutHorizontalCenter, 0, text+"_button")
	u.SetMargin(margin)
	ev := EventNone
	if property&ButtonPropertyDisabled == 0 {
		ev = u.CheckEvent()
		u.EventBackground(ev)
	}
	if property&ButtonPropertyImageLeft != 0 {
		u.StartGroup(LayoutVerticalCenter, 0, DefaultGroupID)
		u.SetMargin(texMargin)
		u.Image(tex, ysize)
		u.EndGroup()
	}
	u.Label(text, ysize)
	if property&ButtonPropertyImageRight != 0 {
		u.StartGroup(LayoutVerticalCenter, 0, DefaultGroupID)
		u.SetMargin(texMargin)
		u.Image(tex, ysize)
		u.EndGroup()
	}
	u.EndGroup()
	return ev
}

// ImageButton is a clickable image with hover/click feedback.
func (u *UI) ImageButton(tex Texture, ysize float64, margin Margin, id string) Event {
	u.StartGroup(LayoutVerticalLeft, 0, id)
	u.SetMargin(margin)
	ev := u.CheckEvent()
	u.EventBackground(ev)
	u.Image(tex, ysize)
	u.EndGroup()
	return ev
}

// ToggleImageButton flips isOn on every click and shows the corresponding
// texture.
func (u *UI) ToggleImageButton(up, down Texture, ysize float64, margin Margin,
	id string, isOn *bool) Event {

	u.StartGroup(LayoutVerticalLeft, 0, id)
	u.SetMargin(margin)
	ev := u.CheckEvent()
	u.EventBackground(ev)
	if *isOn {
		u.Image(down, ysize)
	} else {
		u.Image(up, ysize)
	}
	if ev.Has(EventWentUp) {
		*isOn = !*isOn
	}
	u.EndGroup()
	return ev
}

// CheckBox is a toggle with a label; clicking either flips isOn.
func (u *UI) CheckBox(checked, unchecked Texture, label string, ysize float64,
	margin Margin, isOn *bool) Event {

	u.StartGroup(LayoutHorizontalCenter, 0, label+"_checkbox")
	u.SetMargin(margin)
	tex := unchecked
	if *isOn {
		tex = checked
	}
	ev := u.CheckEvent()
	u.Image(tex, ysize)
	u.Label(label, ysize)
	if ev.Has(EventWentUp) {
		*isOn = !*isOn
	}
	u.EndGroup()
	return ev
}

// Slider is a horizontal slider of the given size in virtual units. The
// bar texture is nine-patch stretched across the track at barHeight times
// the slider's height; the knob rides it at the current value. value is
// normalized to [0, 1] and updated while pressed or dragged.
func (u *UI) Slider(bar, knob Texture, size Vec2, barHeight float64,
	id string, value *float64) Event {

	u.StartGroup(LayoutHorizontalTop, 0, id)
	ev := u.StartSlider(DirHorizontal, size.Y, value)
	v := *value
	u.CustomElement(size, id+"_track", func(pos, esize image.Point) {
		barH := int(float64(esize.Y) * clampf(barHeight, 0, 1))
		barRect := image.Rect(
			pos.X, pos.Y+(esize.Y-barH)/2,
			pos.X+esize.X, pos.Y+(esize.Y-barH)/2+barH,
		)
		inner := centerThird(bar.Size())
		u.renderer.DrawNinePatch(bar, inner, barRect, ColorWhite)

		knobSize := esize.Y
		kx := pos.X + int(v*float64(esize.X-knobSize))
		u.RenderTexture(knob, image.Point{X: kx, Y: pos.Y}, image.Point{X: knobSize, Y: knobSize})
	})
	u.EndSlider()
	u.EndGroup()
	return ev
}

// ScrollBar indicates and controls a scroll position. barSize is the
// visible fraction of the content, sizing the foreground bar relative to
// the track; value is normalized to [0, 1].
func (u *UI) ScrollBar(background, foreground Texture, size Vec2, barSize float64,
	id string, value *float64) Event {

	vertical := size.Y > size.X
	dir := DirHorizontal
	if vertical {
		dir = DirVertical
	}
	u.StartGroup(LayoutHorizontalTop, 0, id)
	ev := u.StartSlider(dir, 0, value)
	v := *value
	frac := clampf(barSize, 0, 1)
	u.CustomElement(size, id+"_track", func(pos, esize image.Point) {
		u.renderer.DrawNinePatch(background, centerThird(background.Size()),
			image.Rectangle{Min: pos, Max: pos.Add(esize)}, ColorWhite)

		var barRect image.Rectangle
		if vertical {
			barLen := int(float64(esize.Y) * frac)
			by := pos.Y + int(v*float64(esize.Y-barLen))
			barRect = image.Rect(pos.X, by, pos.X+esize.X, by+barLen)
		} else {
			barLen := int(float64(esize.X) * frac)
			bx := pos.X + int(v*float64(esize.X-barLen))
			barRect = image.Rect(bx, pos.Y, bx+barLen, pos.Y+esize.Y)
		}
		u.renderer.DrawNinePatch(foreground, centerThird(foreground.Size()), barRect, ColorWhite)
	})
	u.EndSlider()
	u.EndGroup()
	return ev
}

// CollapsibleHeader is a clickable section header that toggles open. The
// toggle is deferred to the end of the frame so both passes of the frame
// declare the same structure; callers branch on the return value:
//
//	if ui.CollapsibleHeader("Options", 20, "options", &open) {
//	    // section contents
//	}
func (u *UI) CollapsibleHeader(title string, ysize float64, id string, open *bool) bool {
	marker := "+ "
	if *open {
		marker = "- "
	}
	u.StartGroup(LayoutVerticalLeft, 0, id)
	ev := u.CheckEvent()
	u.EventBackground(ev)
	u.Label(marker+title, ysize)
	u.EndGroup()
	if ev.Has(EventWentUp) {
		u.deferToFrameEnd(func() { *open = !*open })
	}
	return *open
}

// centerThird returns the middle ninth of a texture as its stretchable
// region, a reasonable default for symmetric nine-patch art.
func centerThird(sz image.Point) image.Rectangle {
	return image.Rect(sz.X/3, sz.Y/3, sz.X*2/3, sz.Y*2/3)
}
