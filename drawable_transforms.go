package cadence

import "math"

// AnimatedTransform is a transform the scheduler can apply to a drawable.
// PropertyTransform is the stock implementation.
type AnimatedTransform interface {
	Property() Property
	Start() float64
	End() float64
	// Apply writes the property value at time now onto d.
	Apply(d *Drawable, now float64)
}

// PropertyTransform animates one drawable property.
type PropertyTransform[T any] struct {
	Transform[T]

	property Property
	set      func(d *Drawable, v T)
	released uint8
}

// Axes of a position transform taken over by a later single-axis move.
const (
	releasedX uint8 = 1 << iota
	releasedY
)

// axisReleaser is implemented by position transforms that can stop writing
// one axis while still animating the other.
type axisReleaser interface {
	releaseAxis(axis Property)
}

// NewPropertyTransform wraps t so it writes p through set.
func NewPropertyTransform[T any](p Property, t Transform[T], set func(d *Drawable, v T)) *PropertyTransform[T] {
	if p >= propertyCount {
		panic("cadence: unknown transform property")
	}
	return &PropertyTransform[T]{Transform: t, property: p, set: set}
}

func (t *PropertyTransform[T]) Property() Property { return t.property }
func (t *PropertyTransform[T]) Start() float64     { return t.StartTime }
func (t *PropertyTransform[T]) End() float64       { return t.EndTime }

func (t *PropertyTransform[T]) Apply(d *Drawable, now float64) {
	v := t.Evaluate(now)
	if t.released != 0 {
		if p, ok := any(v).(Vec2); ok {
			if t.released&releasedX != 0 {
				p.X = d.Position.X
			}
			if t.released&releasedY != 0 {
				p.Y = d.Position.Y
			}
			v = any(p).(T)
		}
	}
	t.set(d, v)
}

func (t *PropertyTransform[T]) releaseAxis(axis Property) {
	if t.property != PropertyPosition {
		return
	}
	switch axis {
	case PropertyPositionX:
		t.released |= releasedX
	case PropertyPositionY:
		t.released |= releasedY
	}
}

type scheduledAction struct {
	at float64
	fn func()
}

// --- Registration ---

// AddTransform registers t after every existing transform and resets the
// chain cursor.
func (d *Drawable) AddTransform(t AnimatedTransform) *Drawable {
	if t.Property() >= propertyCount {
		panic("cadence: unknown transform property")
	}
	d.transforms = append(d.transforms, t)
	d.latestTransformEnd = math.Max(d.latestTransformEnd, t.End())
	d.transformDelay = 0
	return d
}

// Schedule runs fn once the clock reaches now + the chain cursor.
func (d *Drawable) Schedule(fn func()) *Drawable {
	at := d.transformStart()
	d.actions = append(d.actions, scheduledAction{at: at, fn: fn})
	d.latestTransformEnd = math.Max(d.latestTransformEnd, at)
	d.transformDelay = 0
	return d
}

// transformStart is the absolute start time of the next registration.
func (d *Drawable) transformStart() float64 {
	return d.Time() + d.transformDelay
}

// Transforms returns registered transforms in registration order. The
// returned slice MUST NOT be mutated.
func (d *Drawable) Transforms() []AnimatedTransform {
	return d.transforms
}

// HasTransforms reports whether any transform or action is pending.
func (d *Drawable) HasTransforms() bool {
	return len(d.transforms) > 0 || len(d.actions) > 0
}

// LatestTransformEndTime returns the latest end time of anything registered
// since the last ClearTransforms, or -Inf if nothing was.
func (d *Drawable) LatestTransformEndTime() float64 {
	return d.latestTransformEnd
}

// TransformDelay returns the chain cursor: the offset from the clock's
// current time at which the next transform starts.
func (d *Drawable) TransformDelay() float64 {
	return d.transformDelay
}

// ClearTransforms drops pending transforms and actions and resets the cursor.
// Property values stay where they are.
func (d *Drawable) ClearTransforms() {
	clear(d.transforms)
	d.transforms = d.transforms[:0]
	clear(d.actions)
	d.actions = d.actions[:0]
	d.transformDelay = 0
	d.latestTransformEnd = math.Inf(-1)
}

// --- Chaining ---

// Wait moves the cursor to duration after every registered transform has
// ended (or after now, if that is later) and returns a Sequence anchored
// there.
func (d *Drawable) Wait(duration float64) *Sequence {
	checkDuration(duration)
	now := d.Time()
	d.transformDelay = math.Max(d.latestTransformEnd, now) - now + duration
	return &Sequence{d: d, anchor: now + d.transformDelay}
}

// Then is Wait(0).
func (d *Drawable) Then() *Sequence {
	return d.Wait(0)
}

// Delay pushes the cursor back by duration regardless of pending transforms.
func (d *Drawable) Delay(duration float64) *Sequence {
	checkDuration(duration)
	d.transformDelay += duration
	return &Sequence{d: d, anchor: d.transformStart()}
}

// --- Operations ---

// MoveTo animates Position to pos.
func (d *Drawable) MoveTo(pos Vec2, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyPosition, d.Position, pos, start, duration, easing, Vec2.Lerp, (*Drawable).SetPosition)
	return d
}

// MoveToX animates Position.X to x.
func (d *Drawable) MoveToX(x, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyPositionX, d.Position.X, x, start, duration, easing, LerpFloat, setPositionX)
	return d
}

// MoveToY animates Position.Y to y.
func (d *Drawable) MoveToY(y, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyPositionY, d.Position.Y, y, start, duration, easing, LerpFloat, setPositionY)
	return d
}

// MoveToOffset animates Position by delta relative to where it will be when
// the move starts.
func (d *Drawable) MoveToOffset(delta Vec2, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	from := pendingValue(d, PropertyPosition, d.Position, start)
	scheduleTo(d, PropertyPosition, d.Position, from.Add(delta), start, duration, easing, Vec2.Lerp, (*Drawable).SetPosition)
	return d
}

// ResizeTo animates Size to size.
func (d *Drawable) ResizeTo(size Vec2, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertySize, d.Size, size, start, duration, easing, Vec2.Lerp, (*Drawable).SetSize)
	return d
}

// ScaleTo animates Scale to scale.
func (d *Drawable) ScaleTo(scale Vec2, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyScale, d.Scale, scale, start, duration, easing, Vec2.Lerp, (*Drawable).SetScale)
	return d
}

// RotateTo animates Rotation to radians.
func (d *Drawable) RotateTo(radians, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyRotation, d.Rotation, radians, start, duration, easing, LerpFloat, (*Drawable).SetRotation)
	return d
}

// FadeTo animates Alpha to alpha.
func (d *Drawable) FadeTo(alpha, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyAlpha, d.Alpha, alpha, start, duration, easing, LerpFloat, (*Drawable).SetAlpha)
	return d
}

// FadeIn is FadeTo(1).
func (d *Drawable) FadeIn(duration float64, easing Easing) *Drawable {
	return d.FadeTo(1, duration, easing)
}

// FadeOut is FadeTo(0).
func (d *Drawable) FadeOut(duration float64, easing Easing) *Drawable {
	return d.FadeTo(0, duration, easing)
}

// FadeInFromZero snaps Alpha to 0 at the start time, then fades to 1.
func (d *Drawable) FadeInFromZero(duration float64, easing Easing) *Drawable {
	d.fadeFrom(0, 1, duration, easing)
	return d
}

// FadeOutFromOne snaps Alpha to 1 at the start time, then fades to 0.
func (d *Drawable) FadeOutFromOne(duration float64, easing Easing) *Drawable {
	d.fadeFrom(1, 0, duration, easing)
	return d
}

func (d *Drawable) fadeFrom(from, to, duration float64, easing Easing) {
	checkDuration(duration)
	start := d.transformStart()
	d.AddTransform(NewPropertyTransform(PropertyAlpha,
		NewTransform(from, to, start, start+duration, easing, LerpFloat), (*Drawable).SetAlpha))
}

// FadeColor animates Color to c.
func (d *Drawable) FadeColor(c Color, duration float64, easing Easing) *Drawable {
	start := d.transformStart()
	scheduleTo(d, PropertyColor, d.Color, c, start, duration, easing, Color.Lerp, (*Drawable).SetColor)
	return d
}

// FlashColor jumps Color to flash at the start time and fades back to the
// colour the drawable would otherwise have.
func (d *Drawable) FlashColor(flash Color, duration float64, easing Easing) *Drawable {
	checkDuration(duration)
	start := d.transformStart()
	back := pendingValue(d, PropertyColor, d.Color, start)
	d.AddTransform(NewPropertyTransform(PropertyColor,
		NewTransform(flash, back, start, start+duration, easing, Color.Lerp), (*Drawable).SetColor))
	return d
}

// scheduleTo registers a transform of property p from the value it will have
// at start to end.
func scheduleTo[T any](d *Drawable, p Property, current, end T, start, duration float64, easing Easing,
	lerp func(a, b T, p float64) T, set func(*Drawable, T)) {
	checkDuration(duration)
	from := pendingValue(d, p, current, start)
	d.AddTransform(NewPropertyTransform(p, NewTransform(from, end, start, start+duration, easing, lerp), set))
}

// pendingValue returns the value property p will hold at start: current if
// start is now, else the end value of the last transform registered on p.
func pendingValue[T any](d *Drawable, p Property, current T, start float64) T {
	if start <= d.Time() {
		return current
	}
	for i := len(d.transforms) - 1; i >= 0; i-- {
		if d.transforms[i].Property() != p {
			continue
		}
		if pt, ok := d.transforms[i].(*PropertyTransform[T]); ok && pt.StartTime <= start {
			return pt.EndValue
		}
	}
	return current
}

func checkDuration(duration float64) {
	if duration < 0 || math.IsNaN(duration) {
		panic("cadence: negative transform duration")
	}
}

func setPositionX(d *Drawable, x float64) {
	d.Position.X = x
	d.transformDirty = true
}

func setPositionY(d *Drawable, y float64) {
	d.Position.Y = y
	d.transformDirty = true
}

// --- Evaluation ---

// UpdateTransforms applies every started transform at the clock's current
// time and runs due actions.
//
// Among started transforms on the same property the last registered wins.
// Started transforms that lost are discarded, and a winner is discarded once
// it has written its end value. Transforms that have not started yet do
// nothing.
//
// Position and its single axes resolve per axis in registration order: a
// later MoveTo discards started MoveToX/MoveToY transforms, and a later
// MoveToX or MoveToY takes that axis away from a running MoveTo for good.
func (d *Drawable) UpdateTransforms() {
	if len(d.transforms) == 0 && len(d.actions) == 0 {
		return
	}
	now := d.Time()

	if len(d.transforms) > 0 {
		var winner [propertyCount]int
		for i := range winner {
			winner[i] = -1
		}
		for i := len(d.transforms) - 1; i >= 0; i-- {
			t := d.transforms[i]
			if t.Start() <= now && winner[t.Property()] < 0 {
				winner[t.Property()] = i
			}
		}
		if p := winner[PropertyPosition]; p >= 0 {
			for _, axis := range [...]Property{PropertyPositionX, PropertyPositionY} {
				switch a := winner[axis]; {
				case a < 0:
				case a < p:
					winner[axis] = -1
				default:
					if r, ok := d.transforms[p].(axisReleaser); ok {
						r.releaseAxis(axis)
					}
				}
			}
		}

		kept := d.transforms[:0]
		for i, t := range d.transforms {
			switch {
			case t.Start() > now:
				kept = append(kept, t)
			case winner[t.Property()] == i:
				t.Apply(d, now)
				if now < t.End() {
					kept = append(kept, t)
				}
			}
		}
		clear(d.transforms[len(kept):])
		d.transforms = kept
	}

	d.runDueActions(now)
}

func (d *Drawable) runDueActions(now float64) {
	if len(d.actions) == 0 {
		return
	}
	due := d.dueActions[:0]
	pending := d.actions[:0]
	for _, a := range d.actions {
		if a.at <= now {
			due = append(due, a)
		} else {
			pending = append(pending, a)
		}
	}
	clear(d.actions[len(pending):])
	d.actions = pending

	// Actions may register more actions; keep the due buffer separate.
	d.dueActions = nil
	for _, a := range due {
		a.fn()
	}
	clear(due)
	d.dueActions = due[:0]
}
