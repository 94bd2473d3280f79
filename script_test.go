package sprig

import (
	"strings"
	"testing"
)

func TestScriptInputEdges(t *testing.T) {
	in := NewScriptInput()

	in.MoveTo(5, 7)
	in.Press()
	p := in.Pointers()[0]
	if !p.WentDown || !p.IsDown {
		t.Fatalf("press state = %+v", p)
	}

	in.Advance()
	p = in.Pointers()[0]
	if p.WentDown {
		t.Error("WentDown survived Advance")
	}
	if !p.IsDown {
		t.Error("held button released by Advance")
	}
	if p.Position.X != 5 || p.Position.Y != 7 {
		t.Error("pointer position reset by Advance")
	}

	in.Release()
	if !in.Pointers()[0].WentUp {
		t.Error("release not reported")
	}
}

func TestLoadScript(t *testing.T) {
	in := NewScriptInput()
	script := `[
		{"move": [40, 40]},
		{"press": true},
		{"release": true, "wait": 1},
		{"key": "enter", "text": "hi"}
	]`
	if err := in.LoadScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}

	in.Advance() // step 1
	if got := in.Pointers()[0].Position; got.X != 40 || got.Y != 40 {
		t.Errorf("position after move step = %v, want (40, 40)", got)
	}

	in.Advance() // step 2
	if !in.Pointers()[0].WentDown {
		t.Error("press step did not press")
	}

	in.Advance() // step 3
	if !in.Pointers()[0].WentUp {
		t.Error("release step did not release")
	}

	in.Advance() // wait frame
	if len(in.TextEvents()) != 0 {
		t.Error("wait frame carried input")
	}

	in.Advance() // step 4
	if !in.KeyWentDown(KeyEnter) {
		t.Error("key step did not press enter")
	}
	if got := len(in.TextEvents()); got != 3 {
		t.Errorf("text events = %d, want 3 (enter key + 2 runes)", got)
	}
	if !in.Done() {
		t.Error("script not done after all steps")
	}
}

func TestLoadScriptRejectsUnknownKey(t *testing.T) {
	in := NewScriptInput()
	err := in.LoadScript(strings.NewReader(`[{"key": "frobnicate"}]`))
	if err == nil {
		t.Fatal("unknown key name accepted")
	}
}

func TestScriptedClickEndToEnd(t *testing.T) {
	u, in, _ := newTestUI()
	script := `[
		{"move": [50, 50]},
		{"press": true},
		{"release": true}
	]`
	if err := in.LoadScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}

	clicks := 0
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "btn")
		if u.CheckEvent().Has(EventWentUp) {
			clicks++
		}
		u.CustomElement(Vec2{X: 100, Y: 100}, "body", nil)
		u.EndGroup()
	}

	for i := 0; i < 6; i++ {
		runFrame(u, in, gui)
	}
	if clicks != 1 {
		t.Errorf("scripted click fired %d times, want 1", clicks)
	}
}
