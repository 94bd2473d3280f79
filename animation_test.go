package sprig

import (
	"image"
	"math"
	"testing"
)

func TestCurveDurationScalesWithDistance(t *testing.T) {
	desc := AnimCurveDescription{
		Type:                 AnimEase,
		TypicalDeltaDistance: 100,
		TypicalTotalTime:     1,
		Bias:                 0.5,
	}

	durTypical, _ := curveParams(desc, 100)
	if math.Abs(float64(durTypical)-1) > 1e-6 {
		t.Errorf("duration at typical distance = %v, want 1", durTypical)
	}

	durFar, _ := curveParams(desc, 400)
	if math.Abs(float64(durFar)-2) > 1e-6 {
		t.Errorf("duration at 4x distance = %v, want 2 (sqrt scaling)", durFar)
	}

	// Longer distances never animate faster.
	prev := float32(0)
	for _, d := range []float64{1, 10, 100, 1000} {
		dur, _ := curveParams(desc, d)
		if dur < prev {
			t.Errorf("duration decreased from %v to %v at distance %v", prev, dur, d)
		}
		prev = dur
	}
}

func TestTweenEngineReachesTarget(t *testing.T) {
	e := NewTweenEngine()
	id := HashID("panel_x")

	start := e.Animatable(id, []float64{0, 50})
	if start[0] != 0 || start[1] != 50 {
		t.Fatalf("initial value = %v, want [0 50]", start)
	}

	e.StartAnimation(id, []float64{100, 50}, nil, AnimCurveDescription{
		Type:                 AnimEase,
		TypicalDeltaDistance: 100,
		TypicalTotalTime:     0.5,
		Bias:                 0.5,
	})
	if e.TimeRemaining(id) <= 0 {
		t.Fatal("animation reported no time remaining right after start")
	}

	for i := 0; i < 60; i++ {
		e.Advance(1.0 / 60.0)
	}

	v := e.Animatable(id, nil)
	if math.Abs(v[0]-100) > 1e-3 {
		t.Errorf("animated value = %v, want 100", v[0])
	}
	if v[1] != 50 {
		t.Errorf("unchanged dimension = %v, want 50", v[1])
	}
	if e.TimeRemaining(id) != 0 {
		t.Errorf("finished animation still reports %v remaining", e.TimeRemaining(id))
	}
}

func TestSpringEaseSettlesAtTarget(t *testing.T) {
	fn := springEase(1)
	end := fn(1, 0, 1, 1)
	if end != 1 {
		t.Errorf("spring at t=d = %v, want exactly 1", end)
	}

	// The spring overshoots the target somewhere mid-flight.
	overshot := false
	for p := float32(0.05); p < 1; p += 0.05 {
		if fn(p, 0, 1, 1) > 1 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("spring curve never overshot the target")
	}
}

func TestAnimationAPIWithoutEngineIsFatal(t *testing.T) {
	u, _, _ := newTestUI()
	defer func() {
		if recover() == nil {
			t.Fatal("Animatable without a motion engine did not panic")
		}
	}()
	u.Animatable("x", []float64{0})
}

func TestUIAnimationRoundTrip(t *testing.T) {
	u, in, _ := newTestUI()
	u.SetMotionEngine(NewTweenEngine())

	desc := AnimCurveDescription{TypicalDeltaDistance: 10, TypicalTotalTime: 0.1, Bias: 0.5}
	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		v := u.Animatable("slide", []float64{0})
		if !u.layout.layoutPass && v[0] == 0 {
			u.StartAnimation("slide", []float64{10}, nil, desc)
		}
		u.CustomElement(Vec2{X: 10, Y: 10}, "box", nil)
		u.EndGroup()
	}

	for i := 0; i < 30; i++ {
		runFrame(u, in, gui)
	}
	v := u.Animatable("slide", nil)
	if math.Abs(v[0]-10) > 1e-3 {
		t.Errorf("animated value after 30 frames = %v, want 10", v[0])
	}
}

func TestSpriteLifecycle(t *testing.T) {
	u, in, _ := newTestUI()

	calls := 0
	u.AddSprite("fx", func(SequenceID) bool {
		calls++
		return calls < 3
	})
	if u.NumActiveSprites(HashID("fx")) != 1 {
		t.Fatal("added sprite not active")
	}

	gui := func() {
		u.StartGroup(LayoutVerticalLeft, 0, "root")
		u.CustomElement(Vec2{X: 10, Y: 10}, "fxhost", func(_, _ image.Point) {
			u.DrawSprites("fx")
		})
		u.EndGroup()
	}

	for i := 0; i < 4; i++ {
		runFrame(u, in, gui)
	}
	if calls != 3 {
		t.Errorf("sprite drawn %d times, want 3 (removed on completion)", calls)
	}
	if u.NumActiveSprites(HashID("fx")) != 0 {
		t.Error("completed sprite still counted as active")
	}
}

func TestSpriteSequenceIDsDistinct(t *testing.T) {
	u, _, _ := newTestUI()
	a := u.AddSprite("fx", func(SequenceID) bool { return false })
	b := u.AddSprite("fx", func(SequenceID) bool { return false })
	if a == b {
		t.Errorf("two sprites share sequence id %v", a)
	}
}
