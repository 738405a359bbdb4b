package cadence

// Sequence registers transforms on one drawable at a fixed anchor time.
// Every operation called on the same Sequence starts at the anchor, so
//
//	d.Wait(500).MoveTo(p, 300, EasingNone).FadeTo(0, 200, EasingNone)
//
// moves and fades together 500ms after d's pending transforms end. Then,
// Wait and Delay return a new Sequence with a later anchor.
type Sequence struct {
	d      *Drawable
	anchor float64
}

// Drawable returns the drawable the sequence schedules on.
func (s *Sequence) Drawable() *Drawable {
	return s.d
}

// StartTime returns the absolute time operations on s start at.
func (s *Sequence) StartTime() float64 {
	return s.anchor
}

// at points the drawable's cursor at the anchor for the next registration.
// An anchor already in the past starts transforms now.
func (s *Sequence) at() *Drawable {
	now := s.d.Time()
	if s.anchor > now {
		s.d.transformDelay = s.anchor - now
	} else {
		s.d.transformDelay = 0
	}
	return s.d
}

// Then anchors a new sequence where every registered transform has ended.
func (s *Sequence) Then() *Sequence {
	return s.Wait(0)
}

// Wait anchors a new sequence duration after every registered transform has
// ended, or after this sequence's anchor if that is later.
func (s *Sequence) Wait(duration float64) *Sequence {
	checkDuration(duration)
	end := s.d.latestTransformEnd
	if s.anchor > end {
		end = s.anchor
	}
	now := s.d.Time()
	if now > end {
		end = now
	}
	return &Sequence{d: s.d, anchor: end + duration}
}

// Delay anchors a new sequence duration after this one.
func (s *Sequence) Delay(duration float64) *Sequence {
	checkDuration(duration)
	return &Sequence{d: s.d, anchor: s.anchor + duration}
}

func (s *Sequence) MoveTo(pos Vec2, duration float64, easing Easing) *Sequence {
	s.at().MoveTo(pos, duration, easing)
	return s
}

func (s *Sequence) MoveToX(x, duration float64, easing Easing) *Sequence {
	s.at().MoveToX(x, duration, easing)
	return s
}

func (s *Sequence) MoveToY(y, duration float64, easing Easing) *Sequence {
	s.at().MoveToY(y, duration, easing)
	return s
}

func (s *Sequence) MoveToOffset(delta Vec2, duration float64, easing Easing) *Sequence {
	s.at().MoveToOffset(delta, duration, easing)
	return s
}

func (s *Sequence) ResizeTo(size Vec2, duration float64, easing Easing) *Sequence {
	s.at().ResizeTo(size, duration, easing)
	return s
}

func (s *Sequence) ScaleTo(scale Vec2, duration float64, easing Easing) *Sequence {
	s.at().ScaleTo(scale, duration, easing)
	return s
}

func (s *Sequence) RotateTo(radians, duration float64, easing Easing) *Sequence {
	s.at().RotateTo(radians, duration, easing)
	return s
}

func (s *Sequence) FadeTo(alpha, duration float64, easing Easing) *Sequence {
	s.at().FadeTo(alpha, duration, easing)
	return s
}

func (s *Sequence) FadeIn(duration float64, easing Easing) *Sequence {
	s.at().FadeIn(duration, easing)
	return s
}

func (s *Sequence) FadeOut(duration float64, easing Easing) *Sequence {
	s.at().FadeOut(duration, easing)
	return s
}

func (s *Sequence) FadeInFromZero(duration float64, easing Easing) *Sequence {
	s.at().FadeInFromZero(duration, easing)
	return s
}

func (s *Sequence) FadeOutFromOne(duration float64, easing Easing) *Sequence {
	s.at().FadeOutFromOne(duration, easing)
	return s
}

func (s *Sequence) FadeColor(c Color, duration float64, easing Easing) *Sequence {
	s.at().FadeColor(c, duration, easing)
	return s
}

func (s *Sequence) FlashColor(flash Color, duration float64, easing Easing) *Sequence {
	s.at().FlashColor(flash, duration, easing)
	return s
}

// Schedule runs fn at the anchor.
func (s *Sequence) Schedule(fn func()) *Sequence {
	s.at().Schedule(fn)
	return s
}
