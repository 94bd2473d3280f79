package sprig

import (
	"encoding/json"
	"fmt"
	"io"
)

// WidgetDef is one node of a declared widget tree. Fields are optional and
// which ones a node uses depends on its type; see [LoadWidgetTree] for the
// accepted types. Custom widget builders receive their node through this
// type.
type WidgetDef struct {
	Type          string      `json:"type"`
	ID            string      `json:"id,omitempty"`
	Text          string      `json:"text,omitempty"`
	Size          float64     `json:"size,omitempty"`
	Size2         *[2]float64 `json:"size_2f,omitempty"`
	Layout        string      `json:"layout,omitempty"`
	Spacing       float64     `json:"spacing,omitempty"`
	Margin        []float64   `json:"margin,omitempty"`
	Align         string      `json:"align,omitempty"`
	Texture       string      `json:"texture,omitempty"`
	TextureAlt    string      `json:"texture_secondary,omitempty"`
	TextureMargin []float64   `json:"texture_margin,omitempty"`
	BarSize       float64     `json:"bar_size,omitempty"`
	Property      []string    `json:"property,omitempty"`
	Horizontal    string      `json:"horizontal,omitempty"`
	Vertical      string      `json:"vertical,omitempty"`
	Offset        *[2]float64 `json:"offset,omitempty"`
	Modal         bool        `json:"modal,omitempty"`
	Resolution    float64     `json:"virtual_resolution,omitempty"`
	Children      []WidgetDef `json:"elements,omitempty"`
}

// CustomWidget builds a widget type the core set does not know. It runs in
// both passes of the frame like any other declaration code; emit routes an
// event to the tree's event handler under the node's id.
type CustomWidget func(u *UI, w *WidgetDef, emit func(Event))

// WidgetTree is a GUI declared from data instead of code. Load one with
// [LoadWidgetTree], register the mutable values and textures its nodes refer
// to, then call [WidgetTree.Build] inside the [UI.Run] closure every frame.
//
// Bound pointers work both ways: a node missing a text field reads it from
// the string bound under its id, and widgets that produce output (edit
// boxes, checkboxes, sliders, scroll bars) write through the bound pointer.
// The pointers must stay valid for as long as the tree is built.
type WidgetTree struct {
	roots []WidgetDef

	strings  map[string]*string
	floats   map[string]*float64
	bools    map[string]*bool
	textures map[string]Texture
	custom   map[string]CustomWidget

	handler func(id string, ev Event)
}

var treeLayoutNames = map[string]Layout{
	"horizontal_top":    LayoutHorizontalTop,
	"horizontal_center": LayoutHorizontalCenter,
	"horizontal_bottom": LayoutHorizontalBottom,
	"vertical_left":     LayoutVerticalLeft,
	"vertical_center":   LayoutVerticalCenter,
	"vertical_right":    LayoutVerticalRight,
	"overlay":           LayoutOverlay,
}

var treeAlignNames = map[string]Alignment{
	"left":   AlignLeft,
	"center": AlignCenter,
	"right":  AlignRight,
	"top":    AlignTop,
	"bottom": AlignBottom,
}

var treeTextAlignNames = map[string]TextAlignment{
	"left":   TextAlignLeft,
	"center": TextAlignCenter,
	"right":  TextAlignRight,
}

var treePropertyNames = map[string]ButtonProperty{
	"disabled":    ButtonPropertyDisabled,
	"image_left":  ButtonPropertyImageLeft,
	"image_right": ButtonPropertyImageRight,
}

// treeBuiltins names the widget types Build handles itself. Anything else
// must be registered with RegisterWidget before the tree is built.
var treeBuiltins = map[string]bool{
	"group":              true,
	"label":              true,
	"image":              true,
	"text_button":        true,
	"image_button":       true,
	"checkbox":           true,
	"edit":               true,
	"slider":             true,
	"scrollbar":          true,
	"virtual_resolution": true,
}

// LoadWidgetTree parses a JSON array of widget nodes:
//
//	[{"type": "group", "layout": "vertical_left", "spacing": 10, "elements": [
//	    {"type": "label", "text": "Volume", "size": 25},
//	    {"type": "slider", "id": "volume", "size_2f": [300, 25], "bar_size": 0.3,
//	     "texture": "bar", "texture_secondary": "knob"}
//	]}]
//
// The core types are group, label, image, text_button, image_button,
// checkbox, edit, slider, scrollbar, and virtual_resolution. Structural
// mistakes — an unknown layout or alignment name, a margin that is not 1, 2,
// or 4 values, an output widget without an id — fail the load; missing
// bindings and textures only surface when the tree is built, since they may
// be registered after loading.
func LoadWidgetTree(r io.Reader) (*WidgetTree, error) {
	var roots []WidgetDef
	if err := json.NewDecoder(r).Decode(&roots); err != nil {
		return nil, fmt.Errorf("parse widget tree: %w", err)
	}
	t := &WidgetTree{
		roots:    roots,
		strings:  make(map[string]*string),
		floats:   make(map[string]*float64),
		bools:    make(map[string]*bool),
		textures: make(map[string]Texture),
		custom:   make(map[string]CustomWidget),
	}
	for i := range t.roots {
		if err := validateNode(&t.roots[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func validateNode(w *WidgetDef) error {
	if w.Type == "" {
		return fmt.Errorf("widget %q: missing type", w.ID)
	}
	if w.Layout != "" {
		if _, ok := treeLayoutNames[w.Layout]; !ok {
			return fmt.Errorf("widget %q: unknown layout %q", w.ID, w.Layout)
		}
	}
	if w.Align != "" {
		if _, ok := treeTextAlignNames[w.Align]; !ok {
			return fmt.Errorf("widget %q: unknown align %q", w.ID, w.Align)
		}
	}
	for _, name := range []string{w.Horizontal, w.Vertical} {
		if name == "" {
			continue
		}
		if _, ok := treeAlignNames[name]; !ok {
			return fmt.Errorf("widget %q: unknown alignment %q", w.ID, name)
		}
	}
	for _, p := range w.Property {
		if _, ok := treePropertyNames[p]; !ok {
			return fmt.Errorf("widget %q: unknown property %q", w.ID, p)
		}
	}
	for _, m := range [][]float64{w.Margin, w.TextureMargin} {
		switch len(m) {
		case 0, 1, 2, 4:
		default:
			return fmt.Errorf("widget %q: margin needs 1, 2, or 4 values, got %d", w.ID, len(m))
		}
	}
	switch w.Type {
	case "group":
		if w.Layout == "" {
			return fmt.Errorf("group %q: missing layout", w.ID)
		}
	case "edit", "checkbox", "slider", "scrollbar", "image_button":
		if w.ID == "" {
			return fmt.Errorf("%s widget: missing id", w.Type)
		}
	}
	for i := range w.Children {
		if err := validateNode(&w.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// BindString registers the string a node reads its text from, or writes its
// output to, under the node's id.
func (t *WidgetTree) BindString(id string, p *string) { t.strings[id] = p }

// BindFloat registers the float behind a slider or scroll bar, or a node's
// missing size field.
func (t *WidgetTree) BindFloat(id string, p *float64) { t.floats[id] = p }

// BindBool registers the bool behind a checkbox.
func (t *WidgetTree) BindBool(id string, p *bool) { t.bools[id] = p }

// AddTexture makes a texture available to nodes under its Name.
func (t *WidgetTree) AddTexture(tex Texture) { t.textures[tex.Name()] = tex }

// OnEvent installs the handler invoked whenever a widget in the tree reports
// a non-zero event. The id is the node's id, falling back to its text for
// text buttons declared without one.
func (t *WidgetTree) OnEvent(fn func(id string, ev Event)) { t.handler = fn }

// RegisterWidget installs a builder for a custom node type. Core type names
// cannot be overridden.
func (t *WidgetTree) RegisterWidget(typeName string, w CustomWidget) error {
	if treeBuiltins[typeName] {
		return fmt.Errorf("widget type %q is a core type", typeName)
	}
	if w == nil {
		return fmt.Errorf("widget type %q: nil builder", typeName)
	}
	t.custom[typeName] = w
	return nil
}

// Build declares the tree's widgets on u. Call it inside the [UI.Run]
// closure; it runs in both passes like handwritten declaration code. Nodes
// whose bindings or textures are missing are skipped with a debug log, which
// keeps the two passes structurally consistent as long as registrations do
// not change mid-frame.
func (t *WidgetTree) Build(u *UI) {
	for i := range t.roots {
		t.build(u, &t.roots[i])
	}
}

func (t *WidgetTree) build(u *UI, w *WidgetDef) {
	switch w.Type {
	case "group":
		t.buildGroup(u, w)
	case "label":
		t.buildLabel(u, w)
	case "image":
		if tex, ok := t.texture(u, w, w.Texture); ok {
			u.Image(tex, t.ysize(w))
		}
	case "text_button":
		t.buildTextButton(u, w)
	case "image_button":
		if tex, ok := t.texture(u, w, w.Texture); ok {
			t.emit(w.ID, u.ImageButton(tex, t.ysize(w), marginOf(w.Margin), w.ID))
		}
	case "checkbox":
		t.buildCheckBox(u, w)
	case "edit":
		t.buildEdit(u, w)
	case "slider":
		t.buildSlider(u, w)
	case "scrollbar":
		t.buildScrollBar(u, w)
	case "virtual_resolution":
		u.SetVirtualResolution(w.Resolution)
	default:
		fn := t.custom[w.Type]
		if fn == nil {
			u.debugf("widget %q: type %q is not registered", w.ID, w.Type)
			return
		}
		fn(u, w, func(ev Event) { t.emit(w.ID, ev) })
	}
}

func (t *WidgetTree) buildGroup(u *UI, w *WidgetDef) {
	id := w.ID
	if id == "" {
		id = DefaultGroupID
	}
	u.StartGroup(treeLayoutNames[w.Layout], w.Spacing, id)
	if len(w.Margin) > 0 {
		u.SetMargin(marginOf(w.Margin))
	}
	if w.Horizontal != "" && w.Vertical != "" {
		var offset Vec2
		if w.Offset != nil {
			offset = Vec2{X: w.Offset[0], Y: w.Offset[1]}
		}
		u.PositionGroup(treeAlignNames[w.Horizontal], treeAlignNames[w.Vertical], offset)
	}
	if w.Modal {
		u.ModalGroup()
	}
	for i := range w.Children {
		t.build(u, &w.Children[i])
	}
	u.EndGroup()
}

func (t *WidgetTree) buildLabel(u *UI, w *WidgetDef) {
	text, ok := t.text(u, w)
	if !ok {
		return
	}
	if w.Size2 != nil {
		align := TextAlignLeft
		if w.Align != "" {
			align = treeTextAlignNames[w.Align]
		}
		u.LabelBox(text, t.ysize(w), Vec2{X: w.Size2[0], Y: w.Size2[1]}, align)
		return
	}
	u.Label(text, t.ysize(w))
}

func (t *WidgetTree) buildTextButton(u *UI, w *WidgetDef) {
	text, ok := t.text(u, w)
	if !ok {
		return
	}
	id := w.ID
	if id == "" {
		id = text
	}
	if w.Texture != "" {
		tex, ok := t.texture(u, w, w.Texture)
		if !ok {
			return
		}
		var prop ButtonProperty
		for _, p := range w.Property {
			prop |= treePropertyNames[p]
		}
		t.emit(id, u.TextButtonWithImage(tex, marginOf(w.TextureMargin),
			text, t.ysize(w), marginOf(w.Margin), prop))
		return
	}
	t.emit(id, u.TextButton(text, t.ysize(w), marginOf(w.Margin)))
}

func (t *WidgetTree) buildCheckBox(u *UI, w *WidgetDef) {
	on := t.bools[w.ID]
	if on == nil {
		u.debugf("checkbox %q: no bool bound", w.ID)
		return
	}
	checked, ok1 := t.texture(u, w, w.Texture)
	unchecked, ok2 := t.texture(u, w, w.TextureAlt)
	if !ok1 || !ok2 {
		return
	}
	t.emit(w.ID, u.CheckBox(checked, unchecked, w.Text, t.ysize(w), marginOf(w.Margin), on))
}

func (t *WidgetTree) buildEdit(u *UI, w *WidgetDef) {
	text := t.strings[w.ID]
	if text == nil {
		u.debugf("edit %q: no string bound", w.ID)
		return
	}
	var size Vec2
	if w.Size2 != nil {
		size = Vec2{X: w.Size2[0], Y: w.Size2[1]}
	}
	u.Edit(t.ysize(w), size, w.ID, text)
}

func (t *WidgetTree) buildSlider(u *UI, w *WidgetDef) {
	value := t.floats[w.ID]
	if value == nil {
		u.debugf("slider %q: no float bound", w.ID)
		return
	}
	bar, ok1 := t.texture(u, w, w.Texture)
	knob, ok2 := t.texture(u, w, w.TextureAlt)
	if !ok1 || !ok2 {
		return
	}
	var size Vec2
	if w.Size2 != nil {
		size = Vec2{X: w.Size2[0], Y: w.Size2[1]}
	}
	t.emit(w.ID, u.Slider(bar, knob, size, w.BarSize, w.ID, value))
}

func (t *WidgetTree) buildScrollBar(u *UI, w *WidgetDef) {
	value := t.floats[w.ID]
	if value == nil {
		u.debugf("scrollbar %q: no float bound", w.ID)
		return
	}
	bg, ok1 := t.texture(u, w, w.Texture)
	fg, ok2 := t.texture(u, w, w.TextureAlt)
	if !ok1 || !ok2 {
		return
	}
	var size Vec2
	if w.Size2 != nil {
		size = Vec2{X: w.Size2[0], Y: w.Size2[1]}
	}
	t.emit(w.ID, u.ScrollBar(bg, fg, size, w.BarSize, w.ID, value))
}

// text resolves a node's text field, falling back to a bound string.
func (t *WidgetTree) text(u *UI, w *WidgetDef) (string, bool) {
	if w.Text != "" {
		return w.Text, true
	}
	if p := t.strings[w.ID]; p != nil {
		return *p, true
	}
	u.debugf("widget %q: missing text and no string bound", w.ID)
	return "", false
}

// ysize resolves a node's size field, falling back to a bound float.
func (t *WidgetTree) ysize(w *WidgetDef) float64 {
	if w.Size != 0 {
		return w.Size
	}
	if p := t.floats[w.ID]; p != nil {
		return *p
	}
	return 0
}

func (t *WidgetTree) texture(u *UI, w *WidgetDef, name string) (Texture, bool) {
	if name == "" {
		if p := t.strings[w.ID]; p != nil {
			name = *p
		}
	}
	tex := t.textures[name]
	if tex == nil {
		u.debugf("widget %q: texture %q is not registered", w.ID, name)
		return nil, false
	}
	return tex, true
}

func (t *WidgetTree) emit(id string, ev Event) {
	if t.handler != nil && ev != EventNone {
		t.handler(id, ev)
	}
}

// marginOf turns a margin value list into a Margin: one value for all sides,
// two for horizontal/vertical, four for left, top, right, bottom.
func marginOf(vals []float64) Margin {
	switch len(vals) {
	case 1:
		return UniformMargin(vals[0])
	case 2:
		return SymmetricMargin(vals[0], vals[1])
	case 4:
		return Margin{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	}
	return Margin{}
}
