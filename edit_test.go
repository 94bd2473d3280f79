package sprig

import "testing"

func editGUI(u *UI, text *string, status *EditStatus) func() {
	return func() {
		u.StartGroup(LayoutVerticalLeft, 0, "form")
		*status = u.Edit(20, Vec2{X: 200}, "name", text)
		u.EndGroup()
	}
}

func TestEditLifecycle(t *testing.T) {
	u, in, _ := newTestUI()
	text := "ab"
	var status EditStatus
	gui := editGUI(u, &text, &status)

	runFrame(u, in, gui)
	if status != EditStatusNone {
		t.Fatalf("idle edit box status = %v, want None", status)
	}

	// Click between the two runes: enters edit with the caret placed
	// from the pointer.
	in.MoveTo(10, 10)
	in.Press()
	in.Release()
	runFrame(u, in, gui)
	if status != EditStatusInEdit {
		t.Fatalf("status after click = %v, want InEdit", status)
	}

	in.Type("c")
	runFrame(u, in, gui)
	if status != EditStatusUpdated {
		t.Errorf("status after keystroke = %v, want Updated", status)
	}
	if text != "acb" {
		t.Errorf("text after typing at caret = %q, want %q", text, "acb")
	}

	in.PressKey(KeyEnter)
	runFrame(u, in, gui)
	if status != EditStatusFinished {
		t.Errorf("status after enter = %v, want Finished", status)
	}
	if u.focused == HashID("name") {
		t.Error("commit did not release focus")
	}
}

func TestEditEscapeReverts(t *testing.T) {
	u, in, _ := newTestUI()
	text := "hello"
	var status EditStatus
	gui := editGUI(u, &text, &status)

	in.MoveTo(10, 10)
	in.Press()
	in.Release()
	runFrame(u, in, gui)

	in.PressKey(KeyEnd)
	runFrame(u, in, gui)
	in.Type(" world")
	runFrame(u, in, gui)
	if text != "hello world" {
		t.Fatalf("text before escape = %q, want %q", text, "hello world")
	}

	in.PressKey(KeyEscape)
	runFrame(u, in, gui)
	if status != EditStatusCanceled {
		t.Errorf("status after escape = %v, want Canceled", status)
	}
	if text != "hello" {
		t.Errorf("text after escape = %q, want the pre-edit %q", text, "hello")
	}
}

func TestEditBackspaceAndMovement(t *testing.T) {
	u, in, _ := newTestUI()
	text := "abc"
	var status EditStatus
	gui := editGUI(u, &text, &status)

	in.MoveTo(195, 10) // far right: caret lands after the last rune
	in.Press()
	in.Release()
	runFrame(u, in, gui)

	in.PressKey(KeyBackspace)
	runFrame(u, in, gui)
	if text != "ab" {
		t.Errorf("text after backspace = %q, want %q", text, "ab")
	}

	in.PressKey(KeyHome)
	runFrame(u, in, gui)
	in.PressKey(KeyDelete)
	runFrame(u, in, gui)
	if text != "b" {
		t.Errorf("text after home+delete = %q, want %q", text, "b")
	}
}

func TestEditLosingFocusFinishes(t *testing.T) {
	u, in, _ := newTestUI()
	text := "x"
	var status EditStatus
	var otherEv Event

	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "form")
		status = u.Edit(20, Vec2{X: 100}, "name", &text)
		u.StartGroup(LayoutVerticalLeft, 0, "other")
		otherEv = u.CheckEvent()
		u.CustomElement(Vec2{X: 100, Y: 40}, "obody", nil)
		u.EndGroup()
		u.EndGroup()
	}

	in.MoveTo(10, 10)
	in.Press()
	in.Release()
	runFrame(u, in, gui)
	if status != EditStatusInEdit {
		t.Fatalf("status after click = %v, want InEdit", status)
	}

	// Click the element below the edit box: focus moves, edit commits.
	in.MoveTo(10, 40)
	in.Press()
	in.Release()
	runFrame(u, in, gui)
	if !otherEv.Has(EventWentDown) {
		t.Fatal("click did not land on the other element")
	}

	// The edit box notices the focus change on its next declaration.
	runFrame(u, in, gui)
	if status != EditStatusFinished {
		t.Errorf("status after focus loss = %v, want Finished", status)
	}
}

func TestWordMovement(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		left  int
		right int
	}{
		{"middle", "one two three", 6, 4, 8},
		{"at start", "one two", 0, 0, 4},
		{"at end", "one two", 7, 4, 7},
		{"spaces", "a  b", 3, 0, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wordLeft(tc.text, tc.start); got != tc.left {
				t.Errorf("wordLeft(%q, %d) = %d, want %d", tc.text, tc.start, got, tc.left)
			}
			if got := wordRight(tc.text, tc.start); got != tc.right {
				t.Errorf("wordRight(%q, %d) = %d, want %d", tc.text, tc.start, got, tc.right)
			}
		})
	}
}
