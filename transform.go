package cadence

// Transform interpolates a value of type T between two absolute clock times
// in milliseconds.
type Transform[T any] struct {
	StartValue T
	EndValue   T
	StartTime  float64
	EndTime    float64
	Easing     Easing

	// Lerp blends two values by progress p in [0, 1]. Eased progress may
	// leave that range for elastic and back curves.
	Lerp func(a, b T, p float64) T
}

// NewTransform returns a transform from start to end over [startTime, endTime].
// Panics if endTime is before startTime or lerp is nil.
func NewTransform[T any](start, end T, startTime, endTime float64, easing Easing, lerp func(a, b T, p float64) T) Transform[T] {
	if endTime < startTime {
		panic("cadence: transform ends before it starts")
	}
	if lerp == nil {
		panic("cadence: transform needs an interpolation function")
	}
	return Transform[T]{
		StartValue: start,
		EndValue:   end,
		StartTime:  startTime,
		EndTime:    endTime,
		Easing:     easing,
		Lerp:       lerp,
	}
}

// Duration returns EndTime - StartTime.
func (t *Transform[T]) Duration() float64 {
	return t.EndTime - t.StartTime
}

// Evaluate returns the value at time now. A zero-length transform yields
// EndValue from StartTime on.
func (t *Transform[T]) Evaluate(now float64) T {
	if now >= t.EndTime {
		return t.EndValue
	}
	if now <= t.StartTime {
		return t.StartValue
	}
	p := (now - t.StartTime) / (t.EndTime - t.StartTime)
	return t.Lerp(t.StartValue, t.EndValue, t.Easing.Apply(p))
}

// LerpFloat interpolates scalars.
func LerpFloat(a, b, p float64) float64 {
	return a + (b-a)*p
}
