package cadence

import (
	"math"
	"testing"
)

// newTimedBox returns a box driven by a manual clock at t.
func newTimedBox(t float64) (*Drawable, *ManualClock) {
	clock := NewManualClock(t)
	d := NewBox("box", Vec2{10, 10})
	d.SetClock(clock)
	return d, clock
}

func transformAt[T any](t *testing.T, d *Drawable, i int) *PropertyTransform[T] {
	t.Helper()
	if i >= len(d.Transforms()) {
		t.Fatalf("want transform %d, have %d", i, len(d.Transforms()))
	}
	pt, ok := d.Transforms()[i].(*PropertyTransform[T])
	if !ok {
		t.Fatalf("transform %d is %T", i, d.Transforms()[i])
	}
	return pt
}

// --- Registration ---

func TestMoveToRegistersFromCurrentValue(t *testing.T) {
	d, _ := newTimedBox(1000)
	d.SetPosition(Vec2{5, 5})
	d.MoveTo(Vec2{100, 50}, 300, EasingOutQuad)

	tr := transformAt[Vec2](t, d, 0)
	if tr.Property() != PropertyPosition {
		t.Errorf("Property = %v", tr.Property())
	}
	if tr.StartValue != (Vec2{5, 5}) || tr.EndValue != (Vec2{100, 50}) {
		t.Errorf("values = %v -> %v", tr.StartValue, tr.EndValue)
	}
	if tr.StartTime != 1000 || tr.EndTime != 1300 || tr.Easing != EasingOutQuad {
		t.Errorf("times = %v..%v easing %v", tr.StartTime, tr.EndTime, tr.Easing)
	}
	if d.LatestTransformEndTime() != 1300 {
		t.Errorf("LatestTransformEndTime = %v", d.LatestTransformEndTime())
	}
}

func TestOperationsTargetProperties(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveToX(1, 10, EasingNone).
		MoveToY(2, 10, EasingNone).
		ResizeTo(Vec2{3, 3}, 10, EasingNone).
		ScaleTo(Vec2{4, 4}, 10, EasingNone).
		RotateTo(5, 10, EasingNone).
		FadeTo(0.5, 10, EasingNone).
		FadeColor(Color{1, 0, 0, 1}, 10, EasingNone)

	want := []Property{
		PropertyPositionX, PropertyPositionY, PropertySize, PropertyScale,
		PropertyRotation, PropertyAlpha, PropertyColor,
	}
	if len(d.Transforms()) != len(want) {
		t.Fatalf("registered %d transforms", len(d.Transforms()))
	}
	for i, p := range want {
		if got := d.Transforms()[i].Property(); got != p {
			t.Errorf("transform %d property = %v, want %v", i, got, p)
		}
	}

	clock.Advance(10)
	d.UpdateTransforms()
	if d.Position != (Vec2{1, 2}) || d.Size != (Vec2{3, 3}) || d.Scale != (Vec2{4, 4}) {
		t.Errorf("spatial = %v %v %v", d.Position, d.Size, d.Scale)
	}
	if d.Rotation != 5 || d.Alpha != 0.5 || d.Color != (Color{1, 0, 0, 1}) {
		t.Errorf("appearance = %v %v %v", d.Rotation, d.Alpha, d.Color)
	}
	if d.HasTransforms() {
		t.Error("finished transforms should be discarded")
	}
}

func TestNegativeDurationPanics(t *testing.T) {
	ops := map[string]func(d *Drawable){
		"MoveTo":     func(d *Drawable) { d.MoveTo(Vec2{}, -1, EasingNone) },
		"FadeIn":     func(d *Drawable) { d.FadeInFromZero(-1, EasingNone) },
		"FlashColor": func(d *Drawable) { d.FlashColor(ColorWhite, -1, EasingNone) },
		"Wait":       func(d *Drawable) { d.Wait(-1) },
		"Delay":      func(d *Drawable) { d.Delay(-1) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			d, _ := newTimedBox(0)
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			op(d)
		})
	}
}

// --- Evaluation ---

func TestUpdateTransformsInterpolates(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveTo(Vec2{100, 0}, 100, EasingNone)

	clock.Set(50)
	d.UpdateTransforms()
	if !vecApprox(d.Position, Vec2{50, 0}) {
		t.Errorf("Position at 50 = %v", d.Position)
	}
	if !d.transformDirty {
		t.Error("applying a position should mark the drawable dirty")
	}

	clock.Set(200)
	d.UpdateTransforms()
	if d.Position != (Vec2{100, 0}) {
		t.Errorf("Position after end = %v", d.Position)
	}
	if d.HasTransforms() {
		t.Error("transform should be discarded after end")
	}
}

func TestZeroDurationMoveSnaps(t *testing.T) {
	d, _ := newTimedBox(500)
	target := Vec2{42, -7}
	d.MoveTo(target, 0, EasingInOutElastic)
	d.UpdateTransforms()
	if d.Position != target {
		t.Errorf("Position = %v, want %v", d.Position, target)
	}
	if math.IsNaN(d.Position.X) || math.IsNaN(d.Position.Y) {
		t.Error("NaN position")
	}
}

func TestFutureTransformHasNoEffect(t *testing.T) {
	d, clock := newTimedBox(0)
	d.SetAlpha(0.3)
	d.Delay(100).FadeTo(1, 100, EasingNone)

	clock.Set(50)
	d.UpdateTransforms()
	if d.Alpha != 0.3 {
		t.Errorf("Alpha before start = %v, want 0.3", d.Alpha)
	}
	if len(d.Transforms()) != 1 {
		t.Error("pending transform should be kept")
	}
}

func TestOverlapLastRegisteredWins(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveTo(Vec2{100, 0}, 1000, EasingNone)
	clock.Set(100)
	d.MoveTo(Vec2{0, 100}, 100, EasingNone)

	clock.Set(150)
	d.UpdateTransforms()
	// The second move began at Position {0,0} (no update ran yet) and is half way.
	if !vecApprox(d.Position, Vec2{0, 50}) {
		t.Errorf("Position = %v, want {0 50}", d.Position)
	}
	if len(d.Transforms()) != 1 {
		t.Fatalf("superseded transform should be discarded, have %d", len(d.Transforms()))
	}

	clock.Set(500)
	d.UpdateTransforms()
	if d.Position != (Vec2{0, 100}) {
		t.Errorf("Position = %v, want {0 100}", d.Position)
	}
	if d.HasTransforms() {
		t.Error("superseded move must not resume")
	}
}

func TestLaterMoveToSupersedesAxisMove(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveToX(300, 1000, EasingNone)
	d.MoveTo(Vec2{50, 50}, 100, EasingNone)

	clock.Set(50)
	d.UpdateTransforms()
	if !vecApprox(d.Position, Vec2{25, 25}) {
		t.Errorf("Position = %v, want {25 25}", d.Position)
	}
	if len(d.Transforms()) != 1 {
		t.Fatalf("superseded axis move should be discarded, have %d", len(d.Transforms()))
	}

	clock.Set(500)
	d.UpdateTransforms()
	if d.Position != (Vec2{50, 50}) {
		t.Errorf("Position = %v, want {50 50}", d.Position)
	}
	if d.HasTransforms() {
		t.Error("superseded axis move must not resume")
	}
}

func TestLaterAxisMoveTakesAxisFromMoveTo(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveTo(Vec2{100, 100}, 1000, EasingNone)
	d.MoveToX(-50, 100, EasingNone)

	clock.Set(50)
	d.UpdateTransforms()
	if !vecApprox(d.Position, Vec2{-25, 5}) {
		t.Errorf("Position = %v, want {-25 5}", d.Position)
	}

	clock.Set(200)
	d.UpdateTransforms()
	if !vecApprox(d.Position, Vec2{-50, 20}) {
		t.Errorf("Position = %v, want {-50 20}", d.Position)
	}

	clock.Set(1000)
	d.UpdateTransforms()
	if d.Position != (Vec2{-50, 100}) {
		t.Errorf("Position = %v, want {-50 100}", d.Position)
	}
}

func TestDifferentPropertiesDoNotInterfere(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveTo(Vec2{100, 0}, 100, EasingNone)
	d.FadeTo(0, 100, EasingNone)
	clock.Set(50)
	d.UpdateTransforms()
	if !vecApprox(d.Position, Vec2{50, 0}) || !approxEqual(d.Alpha, 0.5, 1e-6) {
		t.Errorf("Position=%v Alpha=%v", d.Position, d.Alpha)
	}
}

func TestDelayedStartValueFollowsPendingTransform(t *testing.T) {
	d, _ := newTimedBox(0)
	d.FadeTo(0.2, 100, EasingNone)
	d.Wait(0).FadeTo(0.8, 100, EasingNone)

	second := transformAt[float64](t, d, 1)
	if second.StartTime != 100 {
		t.Errorf("StartTime = %v, want 100", second.StartTime)
	}
	if second.StartValue != 0.2 {
		t.Errorf("StartValue = %v, want 0.2 (end of the pending fade)", second.StartValue)
	}
}

func TestMoveToOffset(t *testing.T) {
	d, clock := newTimedBox(0)
	d.SetPosition(Vec2{10, 10})
	d.MoveToOffset(Vec2{5, -5}, 100, EasingNone)
	d.Then().MoveToOffset(Vec2{5, -5}, 100, EasingNone)

	clock.Set(300)
	d.UpdateTransforms()
	if d.Position != (Vec2{20, 0}) {
		t.Errorf("Position = %v, want {20 0}", d.Position)
	}
}

func TestFadeFromHelpers(t *testing.T) {
	d, clock := newTimedBox(0)
	d.SetAlpha(0.5)
	d.FadeInFromZero(100, EasingNone)
	d.UpdateTransforms()
	if d.Alpha != 0 {
		t.Errorf("FadeInFromZero start Alpha = %v, want 0", d.Alpha)
	}
	clock.Set(100)
	d.UpdateTransforms()
	if d.Alpha != 1 {
		t.Errorf("FadeInFromZero end Alpha = %v", d.Alpha)
	}

	d.FadeOutFromOne(100, EasingNone)
	d.SetAlpha(0.2)
	d.UpdateTransforms()
	if d.Alpha != 1 {
		t.Errorf("FadeOutFromOne start Alpha = %v, want 1", d.Alpha)
	}
	clock.Set(200)
	d.UpdateTransforms()
	if d.Alpha != 0 {
		t.Errorf("FadeOutFromOne end Alpha = %v", d.Alpha)
	}

	d.FadeIn(0, EasingNone).UpdateTransforms()
	if d.Alpha != 1 {
		t.Errorf("FadeIn Alpha = %v", d.Alpha)
	}
	d.FadeOut(0, EasingNone).UpdateTransforms()
	if d.Alpha != 0 {
		t.Errorf("FadeOut Alpha = %v", d.Alpha)
	}
}

func TestFlashColorReturnsToCurrent(t *testing.T) {
	d, clock := newTimedBox(0)
	base := Color{0.2, 0.4, 0.6, 1}
	d.SetColor(base)
	d.FlashColor(Color{1, 1, 1, 1}, 100, EasingNone)

	d.UpdateTransforms()
	if d.Color != (Color{1, 1, 1, 1}) {
		t.Errorf("flash start = %v", d.Color)
	}
	clock.Set(100)
	d.UpdateTransforms()
	if d.Color != base {
		t.Errorf("flash end = %v, want %v", d.Color, base)
	}
}

// --- Chaining ---

func TestWaitChainStartsTogether(t *testing.T) {
	d, _ := newTimedBox(1000)
	d.Wait(500).MoveTo(Vec2{100, 0}, 300, EasingNone).FadeTo(0, 200, EasingNone)

	move := transformAt[Vec2](t, d, 0)
	fade := transformAt[float64](t, d, 1)
	if move.StartTime != 1500 || fade.StartTime != 1500 {
		t.Errorf("StartTimes = %v, %v, want 1500 both", move.StartTime, fade.StartTime)
	}
	if d.TransformDelay() != 0 {
		t.Errorf("cursor = %v, want 0 after registration", d.TransformDelay())
	}
}

func TestWaitCursorResetsAfterAdd(t *testing.T) {
	d, _ := newTimedBox(1000)
	d.Wait(500)
	d.MoveTo(Vec2{100, 0}, 300, EasingNone)
	d.FadeTo(0, 200, EasingNone)

	move := transformAt[Vec2](t, d, 0)
	fade := transformAt[float64](t, d, 1)
	if move.StartTime != 1500 {
		t.Errorf("move StartTime = %v, want 1500", move.StartTime)
	}
	if fade.StartTime != 1000 {
		t.Errorf("fade StartTime = %v, want 1000 (cursor reset)", fade.StartTime)
	}
}

func TestWaitAfterPendingTransforms(t *testing.T) {
	d, _ := newTimedBox(0)
	d.MoveTo(Vec2{1, 0}, 400, EasingNone)
	seq := d.Wait(100)
	if seq.StartTime() != 500 {
		t.Errorf("Wait anchor = %v, want 500", seq.StartTime())
	}
	if d.TransformDelay() != 500 {
		t.Errorf("cursor = %v, want 500", d.TransformDelay())
	}
	if seq.Drawable() != d {
		t.Error("Drawable mismatch")
	}
}

func TestDelayIgnoresPendingTransforms(t *testing.T) {
	d, _ := newTimedBox(0)
	d.MoveTo(Vec2{1, 0}, 400, EasingNone)
	d.Delay(100)
	seq := d.Delay(50)
	if seq.StartTime() != 150 {
		t.Errorf("Delay anchor = %v, want 150", seq.StartTime())
	}
}

func TestThenChainsSequentially(t *testing.T) {
	d, clock := newTimedBox(0)
	d.FadeIn(100, EasingNone).
		Then().MoveTo(Vec2{10, 0}, 200, EasingNone).ScaleTo(Vec2{2, 2}, 100, EasingNone).
		Then().FadeOut(100, EasingNone)

	out := transformAt[float64](t, d, 3)
	if out.StartTime != 300 || out.EndTime != 400 {
		t.Errorf("fade out = %v..%v, want 300..400", out.StartTime, out.EndTime)
	}

	clock.Set(400)
	d.UpdateTransforms()
	if d.Alpha != 0 || d.Position != (Vec2{10, 0}) || d.Scale != (Vec2{2, 2}) {
		t.Errorf("final state alpha=%v pos=%v scale=%v", d.Alpha, d.Position, d.Scale)
	}
}

func TestSequenceDelayAndWait(t *testing.T) {
	d, _ := newTimedBox(0)
	seq := d.Delay(0)
	if seq.StartTime() != 0 {
		t.Fatalf("anchor = %v", seq.StartTime())
	}
	seq = seq.Delay(50).Delay(25)
	if seq.StartTime() != 75 {
		t.Errorf("Delay anchor = %v, want 75", seq.StartTime())
	}
	seq.RotateTo(1, 100, EasingNone)
	if seq = seq.Wait(10); seq.StartTime() != 185 {
		t.Errorf("Wait anchor = %v, want 185", seq.StartTime())
	}
	if seq = seq.Then(); seq.StartTime() != 185 {
		t.Errorf("Then after an empty anchor = %v, want 185", seq.StartTime())
	}
}

func TestSequenceAnchorInPastStartsNow(t *testing.T) {
	d, clock := newTimedBox(0)
	seq := d.Delay(10)
	clock.Set(100)
	seq.FadeTo(0, 50, EasingNone)
	if got := transformAt[float64](t, d, 0).StartTime; got != 100 {
		t.Errorf("StartTime = %v, want 100", got)
	}
}

func TestSequenceMirrorsOperations(t *testing.T) {
	d, _ := newTimedBox(0)
	d.Wait(10).
		MoveTo(Vec2{1, 1}, 1, EasingNone).
		MoveToX(1, 1, EasingNone).
		MoveToY(1, 1, EasingNone).
		MoveToOffset(Vec2{1, 1}, 1, EasingNone).
		ResizeTo(Vec2{1, 1}, 1, EasingNone).
		ScaleTo(Vec2{1, 1}, 1, EasingNone).
		RotateTo(1, 1, EasingNone).
		FadeTo(1, 1, EasingNone).
		FadeIn(1, EasingNone).
		FadeOut(1, EasingNone).
		FadeInFromZero(1, EasingNone).
		FadeOutFromOne(1, EasingNone).
		FadeColor(ColorWhite, 1, EasingNone).
		FlashColor(ColorWhite, 1, EasingNone)

	if len(d.Transforms()) != 14 {
		t.Fatalf("registered %d transforms, want 14", len(d.Transforms()))
	}
	for i, tr := range d.Transforms() {
		if tr.Start() != 10 {
			t.Errorf("transform %d starts at %v, want 10", i, tr.Start())
		}
	}
}

// --- Actions ---

func TestScheduleRunsWhenDue(t *testing.T) {
	d, clock := newTimedBox(0)
	var order []string
	d.Schedule(func() { order = append(order, "now") })
	d.Delay(100).Schedule(func() { order = append(order, "later") })
	d.Delay(100).Schedule(func() { order = append(order, "later2") })

	d.UpdateTransforms()
	if len(order) != 1 || order[0] != "now" {
		t.Fatalf("order = %v", order)
	}
	clock.Set(100)
	d.UpdateTransforms()
	if len(order) != 3 || order[1] != "later" || order[2] != "later2" {
		t.Errorf("order = %v", order)
	}
	if d.HasTransforms() {
		t.Error("actions should be discarded after running")
	}
}

func TestScheduledActionCanScheduleMore(t *testing.T) {
	d, clock := newTimedBox(0)
	runs := 0
	var tick func()
	tick = func() {
		runs++
		if runs < 3 {
			d.Delay(10).Schedule(tick)
		}
	}
	d.Schedule(tick)
	for i := 0; i < 5; i++ {
		d.UpdateTransforms()
		clock.Advance(10)
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestThenWaitsForScheduledActions(t *testing.T) {
	d, _ := newTimedBox(0)
	d.Delay(200).Schedule(func() {})
	if got := d.Then().StartTime(); got != 200 {
		t.Errorf("Then anchor = %v, want 200", got)
	}
}

// --- Clearing ---

func TestClearTransforms(t *testing.T) {
	d, clock := newTimedBox(0)
	ran := false
	d.MoveTo(Vec2{100, 0}, 100, EasingNone)
	d.Delay(50).Schedule(func() { ran = true })
	d.Wait(300)

	d.ClearTransforms()
	if d.HasTransforms() || d.TransformDelay() != 0 {
		t.Error("ClearTransforms left state behind")
	}
	if !math.IsInf(d.LatestTransformEndTime(), -1) {
		t.Errorf("LatestTransformEndTime = %v", d.LatestTransformEndTime())
	}
	clock.Set(100)
	d.UpdateTransforms()
	if ran || d.Position != (Vec2{}) {
		t.Error("cleared work still ran")
	}
}

func TestAddTransformCustom(t *testing.T) {
	d, clock := newTimedBox(0)
	tr := NewPropertyTransform(PropertyRotation, NewTransform(0.0, math.Pi, 0, 100, EasingNone, LerpFloat), (*Drawable).SetRotation)
	d.AddTransform(tr)
	clock.Set(100)
	d.UpdateTransforms()
	if d.Rotation != math.Pi {
		t.Errorf("Rotation = %v", d.Rotation)
	}
}

func TestUnknownPropertyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewPropertyTransform(propertyCount, NewTransform(0.0, 1, 0, 1, EasingNone, LerpFloat), (*Drawable).SetAlpha)
}

func TestUpdateTransformsNoAllocs(t *testing.T) {
	d, clock := newTimedBox(0)
	d.MoveTo(Vec2{100, 100}, 1e9, EasingNone)
	d.FadeTo(0, 1e9, EasingNone)
	result := testing.AllocsPerRun(100, func() {
		clock.Advance(1)
		d.UpdateTransforms()
	})
	if result > 0 {
		t.Errorf("UpdateTransforms allocated %f times per run, want 0", result)
	}
}
