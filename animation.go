package sprig

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimType selects the family of animation curve.
type AnimType int

const (
	// AnimEase is a conventional eased interpolation toward the target.
	AnimEase AnimType = iota

	// AnimSpring overshoots and oscillates around the target before
	// settling, like a damped spring.
	AnimSpring
)

// AnimCurveDescription describes an animation in terms of what it should
// feel like rather than raw curve coefficients. TypicalDeltaDistance and
// TypicalTotalTime calibrate speed: an animation over the typical distance
// takes the typical time, and other distances scale the duration by the
// square root of the ratio so long moves don't crawl. Bias shapes the
// curve: for eases, low values front-load the acceleration and high values
// the deceleration; for springs it sets how much the value overshoots.
type AnimCurveDescription struct {
	Type                 AnimType
	TypicalDeltaDistance float64
	TypicalTotalTime     float64 // seconds
	Bias                 float64
}

// MotionEngine integrates animation curves over time. The engine core only
// computes curve parameters and reads current values back; all numeric
// state lives behind this interface.
//
// TweenEngine is the default implementation.
type MotionEngine interface {
	// Animatable returns the current value of the animation channel for
	// id, creating it at start if it does not exist. The slice length sets
	// the channel's dimensionality.
	Animatable(id HashedID, start []float64) []float64

	// StartAnimation retargets the channel toward target along the
	// described curve. targetVelocity is the velocity the value should
	// have on arrival; engines that cannot honor it may treat it as zero.
	StartAnimation(id HashedID, target, targetVelocity []float64, curve AnimCurveDescription)

	// TimeRemaining returns seconds until the channel's animation
	// completes, zero when idle.
	TimeRemaining(id HashedID) float64

	// Advance steps all animations by dt seconds. The UI calls it once
	// per frame.
	Advance(dt float64)
}

// Animatable reads (creating if needed) the animation channel for id.
// Panics when no motion engine is installed.
func (u *UI) Animatable(id string, start []float64) []float64 {
	u.requireMotion()
	return u.motion.Animatable(HashID(id), start)
}

// StartAnimation retargets id's animation channel. Only the render pass
// mutates animation state; layout-pass calls are ignored. Panics when no
// motion engine is installed.
func (u *UI) StartAnimation(id string, target, targetVelocity []float64, curve AnimCurveDescription) {
	u.requireMotion()
	if u.layout.layoutPass {
		return
	}
	u.motion.StartAnimation(HashID(id), target, targetVelocity, curve)
}

// AnimationTimeRemaining returns seconds left on id's animation. Panics
// when no motion engine is installed.
func (u *UI) AnimationTimeRemaining(id string) float64 {
	u.requireMotion()
	return u.motion.TimeRemaining(HashID(id))
}

func (u *UI) requireMotion() {
	if u.motion == nil {
		panic("sprig: animation API called without a motion engine")
	}
}

// curveParams turns a curve description into the duration and easing
// function a tween needs, given the distance the value must travel.
func curveParams(d AnimCurveDescription, distance float64) (float32, ease.TweenFunc) {
	dur := d.TypicalTotalTime
	if d.TypicalDeltaDistance > 0 && distance > 0 {
		dur = d.TypicalTotalTime * math.Sqrt(distance/d.TypicalDeltaDistance)
	}
	if dur <= 0 {
		dur = 1e-3
	}
	if d.Type == AnimSpring {
		return float32(dur), springEase(d.Bias)
	}
	var fn ease.TweenFunc
	switch {
	case d.Bias < 0.25:
		fn = ease.InQuad
	case d.Bias <= 0.75:
		fn = ease.InOutQuad
	default:
		fn = ease.OutQuad
	}
	return float32(dur), fn
}

// springEase builds a damped-oscillator easing function. Bias scales both
// the oscillation frequency and how slowly it decays.
func springEase(bias float64) ease.TweenFunc {
	if bias <= 0 {
		bias = 0.5
	}
	freq := 1 + 2*bias
	return func(t, b, c, d float32) float32 {
		p := float64(t) / float64(d)
		if p >= 1 {
			return b + c
		}
		v := 1 - math.Exp(-6*p)*math.Cos(freq*math.Pi*p)
		return b + c*float32(v)
	}
}

// tweenChannel is one id's animation state inside the TweenEngine: the
// current value per dimension and the in-flight tweens driving it.
type tweenChannel struct {
	value  []float64
	tweens []*gween.Tween
	remain float64
}

// TweenEngine is the default MotionEngine, built on gween tweens, one per
// animated dimension.
type TweenEngine struct {
	channels map[HashedID]*tweenChannel
}

// NewTweenEngine creates an empty engine.
func NewTweenEngine() *TweenEngine {
	return &TweenEngine{channels: make(map[HashedID]*tweenChannel)}
}

func (e *TweenEngine) channel(id HashedID, start []float64) *tweenChannel {
	ch := e.channels[id]
	if ch == nil {
		ch = &tweenChannel{value: append([]float64(nil), start...)}
		e.channels[id] = ch
	}
	return ch
}

// Animatable implements MotionEngine.
func (e *TweenEngine) Animatable(id HashedID, start []float64) []float64 {
	return e.channel(id, start).value
}

// StartAnimation implements MotionEngine. Target velocity is not
// representable with tweens and is treated as zero.
func (e *TweenEngine) StartAnimation(id HashedID, target, _ []float64, curve AnimCurveDescription) {
	ch := e.channel(id, target)
	if len(ch.value) < len(target) {
		ch.value = append(ch.value, target[len(ch.value):]...)
	}

	distance := 0.0
	for i := range target {
		distance = maxf(distance, math.Abs(target[i]-ch.value[i]))
	}
	dur, fn := curveParams(curve, distance)

	ch.tweens = ch.tweens[:0]
	for i := range target {
		ch.tweens = append(ch.tweens, gween.New(float32(ch.value[i]), float32(target[i]), dur, fn))
	}
	ch.remain = float64(dur)
}

// TimeRemaining implements MotionEngine.
func (e *TweenEngine) TimeRemaining(id HashedID) float64 {
	ch := e.channels[id]
	if ch == nil || len(ch.tweens) == 0 {
		return 0
	}
	return ch.remain
}

// Advance implements MotionEngine.
func (e *TweenEngine) Advance(dt float64) {
	for _, ch := range e.channels {
		if len(ch.tweens) == 0 {
			continue
		}
		finished := true
		for i, tw := range ch.tweens {
			v, done := tw.Update(float32(dt))
			ch.value[i] = float64(v)
			if !done {
				finished = false
			}
		}
		ch.remain = maxf(0, ch.remain-dt)
		if finished {
			ch.tweens = ch.tweens[:0]
			ch.remain = 0
		}
	}
}

// sprite is one transient draw callback attached to a group.
type sprite struct {
	seq  SequenceID
	draw func(seq SequenceID) bool
}

// AddSprite attaches a transient animation to a group: draw is invoked by
// [UI.DrawSprites] every frame until it returns false, then removed. The
// returned SequenceID distinguishes sprites sharing one group. Sprites are
// typically added from event handlers, during the render pass.
func (u *UI) AddSprite(groupID string, draw func(seq SequenceID) bool) SequenceID {
	u.spriteSeq++
	h := HashID(groupID)
	u.sprites[h] = append(u.sprites[h], &sprite{seq: u.spriteSeq, draw: draw})
	return u.spriteSeq
}

// DrawSprites runs every sprite attached to the group, dropping the ones
// that report completion. Call it during the render pass, usually inside a
// CustomElement callback.
func (u *UI) DrawSprites(groupID string) {
	if u.layout.layoutPass {
		return
	}
	h := HashID(groupID)
	list := u.sprites[h]
	kept := list[:0]
	for _, s := range list {
		if s.draw(s.seq) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(u.sprites, h)
	} else {
		u.sprites[h] = kept
	}
}

// NumActiveSprites returns how many sprites are attached to the group with
// the given hashed id.
func (u *UI) NumActiveSprites(id HashedID) int {
	return len(u.sprites[id])
}
