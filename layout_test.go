package sprig

import (
	"image"
	"testing"
)

func TestVerticalGroupLayout(t *testing.T) {
	u, in, _ := newTestUI()

	var posA, posB image.Point
	var groupSize Vec2
	runFrame(u, in, func() {
		u.StartGroup(LayoutVerticalLeft, 5, "root")
		groupSize = u.GroupSize()
		u.CustomElement(Vec2{X: 30, Y: 10}, "a", func(pos, _ image.Point) { posA = pos })
		u.CustomElement(Vec2{X: 30, Y: 20}, "b", func(pos, _ image.Point) { posB = pos })
		u.EndGroup()
	})

	if posA.Y != 0 {
		t.Errorf("first element y = %d, want 0", posA.Y)
	}
	if posB.Y != 15 {
		t.Errorf("second element y = %d, want 15", posB.Y)
	}
	if groupSize.Y != 35 {
		t.Errorf("group height = %v, want 35", groupSize.Y)
	}
	if groupSize.X != 30 {
		t.Errorf("group width = %v, want 30", groupSize.X)
	}
}

func TestHorizontalCenterAlignment(t *testing.T) {
	u, in, _ := newTestUI()

	var posShort image.Point
	runFrame(u, in, func() {
		u.StartGroup(LayoutHorizontalCenter, 0, "root")
		u.CustomElement(Vec2{X: 10, Y: 10}, "short", func(pos, _ image.Point) { posShort = pos })
		u.CustomElement(Vec2{X: 10, Y: 30}, "tall", nil)
		u.EndGroup()
	})

	if posShort.Y != 10 {
		t.Errorf("short element y = %d, want 10 (centered against height 30)", posShort.Y)
	}
}

func TestEmptyGroupOccupiesMargins(t *testing.T) {
	u, in, _ := newTestUI()

	var posAfter image.Point
	runFrame(u, in, func() {
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		u.StartGroup(LayoutVerticalLeft, 0, "empty")
		u.SetMargin(UniformMargin(5))
		u.EndGroup()
		u.CustomElement(Vec2{X: 10, Y: 10}, "after", func(pos, _ image.Point) { posAfter = pos })
		u.EndGroup()
	})

	if posAfter.Y != 10 {
		t.Errorf("element after empty group at y = %d, want 10 (margins only)", posAfter.Y)
	}
}

func TestUnbalancedGroupPanics(t *testing.T) {
	u, in, _ := newTestUI()
	defer func() {
		if recover() == nil {
			t.Fatal("missing EndGroup did not panic")
		}
	}()
	runFrame(u, in, func() {
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		u.Label("oops", 10)
	})
}

func TestEndGroupWithoutStartPanics(t *testing.T) {
	u, in, _ := newTestUI()
	defer func() {
		if recover() == nil {
			t.Fatal("stray EndGroup did not panic")
		}
	}()
	runFrame(u, in, func() {
		u.EndGroup()
	})
}

func TestGroupNestingMismatchPanics(t *testing.T) {
	u, in, _ := newTestUI()
	defer func() {
		if recover() == nil {
			t.Fatal("pass-dependent group nesting did not panic")
		}
	}()
	// Both passes open and close two groups, but the layout pass nests them
	// while the render pass declares them as siblings.
	runFrame(u, in, func() {
		u.StartGroup(LayoutVerticalLeft, 0, "outer")
		if u.layout.layoutPass {
			u.StartGroup(LayoutVerticalLeft, 0, "inner")
			u.EndGroup()
			u.EndGroup()
		} else {
			u.EndGroup()
			u.StartGroup(LayoutVerticalLeft, 0, "inner")
			u.EndGroup()
		}
	})
}

func TestPositionGroupAnchorsToCanvas(t *testing.T) {
	u, in, _ := newTestUI()

	var pos image.Point
	runFrame(u, in, func() {
		u.StartGroup(LayoutOverlay, 0, "root")
		u.StartGroup(LayoutVerticalLeft, 0, "panel")
		u.PositionGroup(AlignRight, AlignBottom, Vec2{})
		u.CustomElement(Vec2{X: 100, Y: 50}, "content", func(p, _ image.Point) { pos = p })
		u.EndGroup()
		u.EndGroup()
	})

	if pos.X != 900 || pos.Y != 950 {
		t.Errorf("bottom-right anchored content at %v, want (900, 950)", pos)
	}
}

func TestVirtualResolutionScaling(t *testing.T) {
	u, in, _ := newTestUI()

	var size image.Point
	runFrame(u, in, func() {
		u.SetVirtualResolution(500)
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		u.CustomElement(Vec2{X: 10, Y: 10}, "box", func(_, s image.Point) { size = s })
		u.EndGroup()
	})

	if u.GetScale() != 2 {
		t.Fatalf("scale = %v, want 2", u.GetScale())
	}
	if size.X != 20 || size.Y != 20 {
		t.Errorf("10-virtual-unit box measured %v physical, want (20, 20)", size)
	}
}

func TestGroupSizeUsesPreviousFrameDuringLayout(t *testing.T) {
	u, in, _ := newTestUI()

	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		u.CustomElement(Vec2{X: 40, Y: 25}, "box", nil)
		u.EndGroup()
	}
	var firstPassSize Vec2
	observed := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		if u.layout.layoutPass {
			firstPassSize = u.GroupSize()
		}
		u.CustomElement(Vec2{X: 40, Y: 25}, "box", nil)
		u.EndGroup()
	}

	runFrame(u, in, gui)
	runFrame(u, in, observed)

	if firstPassSize.X != 40 || firstPassSize.Y != 25 {
		t.Errorf("layout-pass GroupSize = %v, want previous frame's (40, 25)", firstPassSize)
	}
}

func TestLayoutIdempotentAcrossFrames(t *testing.T) {
	u, in, _ := newTestUI()

	var rects []image.Rectangle
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 3, "root")
		u.CustomElement(Vec2{X: 20, Y: 10}, "a", func(pos, size image.Point) {
			rects = append(rects, image.Rectangle{Min: pos, Max: pos.Add(size)})
		})
		u.CustomElement(Vec2{X: 20, Y: 10}, "b", func(pos, size image.Point) {
			rects = append(rects, image.Rectangle{Min: pos, Max: pos.Add(size)})
		})
		u.EndGroup()
	}

	for i := 0; i < 3; i++ {
		runFrame(u, in, gui)
	}

	if len(rects) != 6 {
		t.Fatalf("recorded %d rects, want 6", len(rects))
	}
	for i := 2; i < 6; i++ {
		if rects[i] != rects[i%2] {
			t.Errorf("frame %d rect %d = %v, want %v", i/2, i%2, rects[i], rects[i%2])
		}
	}
}
