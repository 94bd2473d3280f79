package sprig

import (
	"testing"
)

func TestClickWithinOneFrame(t *testing.T) {
	u, in, _ := newTestUI()

	var got Event
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "btn")
		got = u.CheckEvent()
		u.CustomElement(Vec2{X: 100, Y: 100}, "body", nil)
		u.EndGroup()
	}

	in.MoveTo(50, 50)
	runFrame(u, in, gui)

	in.Press()
	in.Release()
	runFrame(u, in, gui)

	if !got.Has(EventWentDown | EventWentUp) {
		t.Errorf("one-frame click events = %b, want WentDown|WentUp", got)
	}
	if got.Has(EventIsDown) {
		t.Errorf("one-frame click reported EventIsDown: %b", got)
	}
}

func TestHoverRequiresPointingDevice(t *testing.T) {
	u, in, _ := newTestUI()

	var got Event
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "btn")
		got = u.CheckEvent()
		u.CustomElement(Vec2{X: 100, Y: 100}, "body", nil)
		u.EndGroup()
	}

	in.MoveTo(50, 50)
	runFrame(u, in, gui)
	if !got.Has(EventHover) {
		t.Error("pointer inside rect did not hover")
	}

	in.SetPointingDevice(false)
	in.MoveTo(50, 50)
	runFrame(u, in, gui)
	if got.Has(EventHover) {
		t.Error("hover fired without a pointing device and without focus")
	}
}

func TestDragThreshold(t *testing.T) {
	u, in, _ := newTestUI()
	u.SetDragStartThreshold(5)

	events := make([]Event, 0, 8)
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "drag")
		events = append(events, u.CheckEvent())
		u.CustomElement(Vec2{X: 200, Y: 200}, "body", nil)
		u.EndGroup()
	}
	lastEvent := func() Event { return events[len(events)-1] }

	in.MoveTo(0, 0)
	in.Press()
	runFrame(u, in, gui)

	in.MoveTo(3, 0)
	runFrame(u, in, gui)
	if lastEvent().Has(EventStartDrag) {
		t.Error("3px move under a 5px threshold started a drag")
	}

	in.MoveTo(6, 0)
	runFrame(u, in, gui)
	if !lastEvent().Has(EventStartDrag) {
		t.Error("6px move over a 5px threshold did not start a drag")
	}

	in.MoveTo(7, 0)
	runFrame(u, in, gui)
	if lastEvent().Has(EventStartDrag) {
		t.Error("EventStartDrag fired twice for one drag")
	}
	if !lastEvent().Has(EventIsDragging) {
		t.Error("held drag did not report EventIsDragging")
	}

	in.Release()
	runFrame(u, in, gui)
	if !lastEvent().Has(EventEndDrag) {
		t.Error("release did not end the drag")
	}
	if !lastEvent().Has(EventWentUp) {
		t.Error("release did not report EventWentUp to the drag owner")
	}
}

func TestCaptureExclusivity(t *testing.T) {
	u, in, _ := newTestUI()

	var evA, evB Event
	gui := func() {
		u.StartGroup(LayoutHorizontalTop, 0, "row")
		u.StartGroup(LayoutVerticalLeft, 0, "A")
		evA = u.CheckEvent()
		if evA.Has(EventWentDown) {
			u.CapturePointer("A")
		}
		u.CustomElement(Vec2{X: 100, Y: 100}, "abody", nil)
		u.EndGroup()
		u.StartGroup(LayoutVerticalLeft, 0, "B")
		evB = u.CheckEvent()
		u.CustomElement(Vec2{X: 100, Y: 100}, "bbody", nil)
		u.EndGroup()
		u.EndGroup()
	}

	in.MoveTo(50, 50)
	in.Press()
	runFrame(u, in, gui)
	if !evA.Has(EventWentDown) {
		t.Fatal("press over A did not reach A")
	}
	if u.CapturedPointerIndex() != 0 {
		t.Fatalf("captured pointer index = %d, want 0", u.CapturedPointerIndex())
	}

	// Pointer moves over B while captured by A.
	in.MoveTo(150, 50)
	runFrame(u, in, gui)
	if evB != EventNone {
		t.Errorf("B received %b during A's capture, want none", evB)
	}
	if !evA.Has(EventIsDown) {
		t.Error("capture owner lost EventIsDown while pointer was over B")
	}

	in.Release()
	runFrame(u, in, gui)
	if !evA.Has(EventWentUp) {
		t.Error("capture owner did not receive EventWentUp on release")
	}
	if u.CapturedPointerIndex() != -1 {
		t.Error("pointer-up did not end the capture")
	}
}

func TestInteractionRecordReclamation(t *testing.T) {
	u, in, _ := newTestUI()

	withX := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "X")
		u.CheckEvent()
		u.CustomElement(Vec2{X: 10, Y: 10}, "body", nil)
		u.EndGroup()
	}
	withoutX := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "other")
		u.CheckEvent()
		u.CustomElement(Vec2{X: 10, Y: 10}, "body", nil)
		u.EndGroup()
	}

	runFrame(u, in, withX)
	if u.state.peek(HashID("X")) == nil {
		t.Fatal("no record created for an interactive element")
	}

	runFrame(u, in, withoutX)
	if u.state.peek(HashID("X")) != nil {
		t.Error("record for an omitted element survived collection")
	}
}

func TestRecordsReclaimedAfterEmptyFrame(t *testing.T) {
	u, in, _ := newTestUI()

	runFrame(u, in, func() {
		u.StartGroup(LayoutVerticalLeft, 0, "btn")
		u.CheckEvent()
		u.CustomElement(Vec2{X: 10, Y: 10}, "body", nil)
		u.EndGroup()
	})
	if u.state.peek(HashID("btn")) == nil {
		t.Fatal("no record created for an interactive element")
	}

	// A frame that declares nothing at all still reclaims stale records.
	runFrame(u, in, func() {})
	if u.state.peek(HashID("btn")) != nil {
		t.Error("record survived a frame that declared no elements")
	}
}

func TestModalGroupSuppressesEarlierElements(t *testing.T) {
	u, in, _ := newTestUI()

	var evBehind, evModal Event
	gui := func() {
		u.StartGroup(LayoutOverlay, 0, "root")
		u.StartGroup(LayoutVerticalLeft, 0, "behind")
		evBehind = u.CheckEvent()
		u.CustomElement(Vec2{X: 200, Y: 200}, "bbody", nil)
		u.EndGroup()
		u.StartGroup(LayoutVerticalLeft, 0, "dialog")
		u.ModalGroup()
		evModal = u.CheckEvent()
		u.CustomElement(Vec2{X: 200, Y: 200}, "dbody", nil)
		u.EndGroup()
		u.EndGroup()
	}

	in.MoveTo(50, 50)
	in.Press()
	in.Release()
	runFrame(u, in, gui)

	if evBehind != EventNone {
		t.Errorf("element behind a modal group received %b, want none", evBehind)
	}
	if !evModal.Has(EventWentDown) {
		t.Error("modal group's own element received no events")
	}
}

func TestFocusNavigationFollowsCallOrder(t *testing.T) {
	u, in, _ := newTestUI()
	in.SetPointingDevice(false)

	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "col")
		u.StartGroup(LayoutVerticalLeft, 0, "first")
		u.CheckEvent()
		u.CustomElement(Vec2{X: 50, Y: 20}, "fbody", nil)
		u.EndGroup()
		u.StartGroup(LayoutVerticalLeft, 0, "second")
		u.CheckEvent()
		u.CustomElement(Vec2{X: 50, Y: 20}, "sbody", nil)
		u.EndGroup()
		u.EndGroup()
	}

	in.PressKey(KeyNavNext)
	runFrame(u, in, gui)
	if u.focused != HashID("first") {
		t.Fatalf("first NavNext focused %v, want %v", u.focused, HashID("first"))
	}

	in.PressKey(KeyNavNext)
	runFrame(u, in, gui)
	if u.focused != HashID("second") {
		t.Errorf("second NavNext focused %v, want %v", u.focused, HashID("second"))
	}

	in.PressKey(KeyNavPrev)
	runFrame(u, in, gui)
	if u.focused != HashID("first") {
		t.Errorf("NavPrev focused %v, want %v", u.focused, HashID("first"))
	}

	if u.IsLastEventPointerType() {
		t.Error("keyboard navigation left the last-event type as pointer")
	}
}

func TestDefaultFocusAndGamepadActivate(t *testing.T) {
	u, in, _ := newTestUI()
	in.SetPointingDevice(false)

	var ev Event
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "ok")
		ev = u.CheckEvent()
		u.SetDefaultFocus()
		u.CustomElement(Vec2{X: 50, Y: 20}, "body", nil)
		u.EndGroup()
	}

	runFrame(u, in, gui)
	if u.focused != HashID("ok") {
		t.Fatal("default focus did not apply with nothing focused")
	}

	in.PressKey(KeyActivate)
	runFrame(u, in, gui)
	if !ev.Has(EventWentDown) || !ev.Has(EventWentUp) {
		t.Errorf("activate on focused element = %b, want WentDown|WentUp", ev)
	}
	if !ev.Has(EventHover) {
		t.Error("focused element in gamepad mode did not report hover")
	}
}

func TestGlobalListenerObservesDispatch(t *testing.T) {
	u, in, _ := newTestUI()

	var seen []struct {
		id HashedID
		ev Event
	}
	u.SetGlobalListener(func(id HashedID, ev Event) {
		seen = append(seen, struct {
			id HashedID
			ev Event
		}{id, ev})
	})

	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "btn")
		u.CheckEvent()
		u.CustomElement(Vec2{X: 100, Y: 100}, "body", nil)
		u.EndGroup()
	}

	in.MoveTo(50, 50)
	in.Press()
	runFrame(u, in, gui)

	found := false
	for _, s := range seen {
		if s.id == HashID("btn") && s.ev.Has(EventWentDown) {
			found = true
		}
	}
	if !found {
		t.Error("global listener did not observe the WentDown dispatch")
	}
}
