package cadence

import (
	"math"
	"testing"
)

func TestTransformEvaluateEndpoints(t *testing.T) {
	for e := Easing(0); e < easingCount; e++ {
		tr := NewTransform(10.0, 50.0, 100, 400, e, LerpFloat)
		if got := tr.Evaluate(100); got != 10 {
			t.Errorf("%v: Evaluate(StartTime) = %v, want 10", e, got)
		}
		if got := tr.Evaluate(400); got != 50 {
			t.Errorf("%v: Evaluate(EndTime) = %v, want 50", e, got)
		}
		if got := tr.Evaluate(-1e9); got != 10 {
			t.Errorf("%v: Evaluate(before) = %v, want 10", e, got)
		}
		if got := tr.Evaluate(1e9); got != 50 {
			t.Errorf("%v: Evaluate(after) = %v, want 50", e, got)
		}
	}
}

func TestTransformLinearMonotonic(t *testing.T) {
	tr := NewTransform(Vec2{0, 100}, Vec2{300, -100}, 0, 1000, EasingNone, Vec2.Lerp)
	prev := tr.Evaluate(0)
	for ms := 1.0; ms <= 1000; ms++ {
		cur := tr.Evaluate(ms)
		if cur.X < prev.X || cur.Y > prev.Y {
			t.Fatalf("not monotonic at %v: %v after %v", ms, cur, prev)
		}
		prev = cur
	}
	if mid := tr.Evaluate(500); !vecApprox(mid, Vec2{150, 0}) {
		t.Errorf("midpoint = %v, want {150 0}", mid)
	}
}

func TestTransformZeroDurationSnaps(t *testing.T) {
	tr := NewTransform(Color{0, 0, 0, 1}, Color{1, 1, 1, 1}, 200, 200, EasingOutQuad, Color.Lerp)
	if got := tr.Evaluate(200); got != (Color{1, 1, 1, 1}) {
		t.Errorf("Evaluate(StartTime) of zero-length = %v, want EndValue", got)
	}
	if got := tr.Evaluate(199); got != (Color{0, 0, 0, 1}) {
		t.Errorf("Evaluate(before) = %v, want StartValue", got)
	}
	if tr.Duration() != 0 {
		t.Errorf("Duration = %v", tr.Duration())
	}
	v := tr.Evaluate(200)
	if math.IsNaN(v.R) {
		t.Error("NaN from zero-length transform")
	}
}

func TestTransformEndBeforeStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewTransform(0.0, 1.0, 100, 50, EasingNone, LerpFloat)
}

func TestTransformNilLerpPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewTransform(0.0, 1.0, 0, 50, EasingNone, nil)
}
