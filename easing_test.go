package cadence

import "testing"

func TestEasingEndpoints(t *testing.T) {
	for e := Easing(0); e < easingCount; e++ {
		if got := e.Apply(0); got != 0 {
			t.Errorf("%v.Apply(0) = %v, want 0", e, got)
		}
		if got := e.Apply(1); got != 1 {
			t.Errorf("%v.Apply(1) = %v, want 1", e, got)
		}
		if got := e.Apply(-3); got != 0 {
			t.Errorf("%v.Apply(-3) = %v, want 0", e, got)
		}
		if got := e.Apply(7); got != 1 {
			t.Errorf("%v.Apply(7) = %v, want 1", e, got)
		}
	}
}

func TestEasingNoneIsLinear(t *testing.T) {
	for _, p := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		if got := EasingNone.Apply(p); !approxEqual(got, p, 1e-6) {
			t.Errorf("EasingNone.Apply(%v) = %v", p, got)
		}
	}
}

func TestEasingNoneIsExact(t *testing.T) {
	for _, p := range []float64{1.0 / 3, 0.123456789012345, 0.999999999} {
		if got := EasingNone.Apply(p); got != p {
			t.Errorf("EasingNone.Apply(%v) = %v, want exact", p, got)
		}
	}

	// A long linear move stays free of float32 rounding.
	tr := NewTransform(0.0, 1e7, 0, 3, EasingNone, LerpFloat)
	if got, want := tr.Evaluate(1), 1e7/3; !approxEqual(got, want, 1e-6) {
		t.Errorf("Evaluate(1) = %v, want %v", got, want)
	}
}

func TestEasingShapes(t *testing.T) {
	if got := EasingInQuad.Apply(0.5); !approxEqual(got, 0.25, 1e-6) {
		t.Errorf("InQuad(0.5) = %v, want 0.25", got)
	}
	if got := EasingOutQuad.Apply(0.5); !approxEqual(got, 0.75, 1e-6) {
		t.Errorf("OutQuad(0.5) = %v, want 0.75", got)
	}
}

func TestParseEasing(t *testing.T) {
	tests := []struct {
		in   string
		want Easing
	}{
		{"", EasingNone},
		{"linear", EasingNone},
		{"none", EasingNone},
		{"out_quad", EasingOutQuad},
		{"In-Out-Sine", EasingInOutSine},
		{" out_bounce ", EasingOutBounce},
	}
	for _, tt := range tests {
		got, err := ParseEasing(tt.in)
		if err != nil {
			t.Errorf("ParseEasing(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEasing(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseEasing("wobble"); err == nil {
		t.Error("expected error for unknown easing")
	}
}

func TestEasingStringRoundTrip(t *testing.T) {
	for e := Easing(0); e < easingCount; e++ {
		got, err := ParseEasing(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEasing(%q) = %v, %v", e.String(), got, err)
		}
	}
	if Easing(250).String() != "Easing(250)" {
		t.Errorf("unknown easing String = %q", Easing(250).String())
	}
}
