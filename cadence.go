package cadence

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Lerp interpolates component-wise from c to to by p.
func (c Color) Lerp(to Color, p float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*p,
		G: c.G + (to.G-c.G)*p,
		B: c.B + (to.B-c.B)*p,
		A: c.A + (to.A-c.A)*p,
	}
}

// Vec2 is a 2D vector used for positions, sizes, scales and offsets
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled component-wise by o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Scaled returns v scaled by s.
func (v Vec2) Scaled(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Lerp interpolates component-wise from v to to by p.
func (v Vec2) Lerp(to Vec2, p float64) Vec2 {
	return Vec2{v.X + (to.X-v.X)*p, v.Y + (to.Y-v.Y)*p}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// DrawableType distinguishes rendering behavior for a Drawable.
type DrawableType uint8

const (
	DrawableContainer DrawableType = iota // group node with no visual output
	DrawableBox                           // solid tinted rectangle of Size
)

func (t DrawableType) String() string {
	switch t {
	case DrawableContainer:
		return "container"
	case DrawableBox:
		return "box"
	default:
		return "unknown"
	}
}

// Property identifies an animatable drawable property.
type Property uint8

const (
	PropertyPosition  Property = iota // Position (Vec2)
	PropertyPositionX                 // Position.X (float64)
	PropertyPositionY                 // Position.Y (float64)
	PropertySize                      // Size (Vec2)
	PropertyScale                     // Scale (Vec2)
	PropertyRotation                  // Rotation in radians (float64)
	PropertyAlpha                     // Alpha (float64)
	PropertyColor                     // Color (Color)

	propertyCount
)

func (p Property) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyPositionX:
		return "position.x"
	case PropertyPositionY:
		return "position.y"
	case PropertySize:
		return "size"
	case PropertyScale:
		return "scale"
	case PropertyRotation:
		return "rotation"
	case PropertyAlpha:
		return "alpha"
	case PropertyColor:
		return "color"
	default:
		return "unknown"
	}
}
