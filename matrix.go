package cadence

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the drawable's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-Origin*Size) -> Scale -> Rotate -> Translate(Position)
func computeLocalTransform(d *Drawable) [6]float64 {
	sx := d.Scale.X
	sy := d.Scale.Y
	sin, cos := math.Sincos(d.Rotation)

	px := d.Origin.X * d.Size.X
	py := d.Origin.Y * d.Size.Y
	preTx := -px * sx
	preTy := -py * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + d.Position.X,
		sin*preTx + cos*preTy + d.Position.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// geoM converts an affine matrix into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// updateWorldTransform recomputes world matrices and alpha for d's subtree.
// parentRecomputed forces recomputation of clean children whose parent moved.
func updateWorldTransform(d *Drawable, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := d.transformDirty || parentRecomputed
	if recompute {
		d.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(d))
		d.worldAlpha = parentAlpha * d.Alpha
		d.transformDirty = false
	}
	for _, child := range d.children {
		updateWorldTransform(child, d.worldTransform, d.worldAlpha, recompute)
	}
}

// --- Property setters ---

// SetPosition sets the local position and marks the drawable dirty.
func (d *Drawable) SetPosition(p Vec2) {
	d.Position = p
	d.transformDirty = true
}

// SetSize sets the size and marks the drawable dirty.
func (d *Drawable) SetSize(s Vec2) {
	d.Size = s
	d.transformDirty = true
}

// SetScale sets the scale and marks the drawable dirty.
func (d *Drawable) SetScale(s Vec2) {
	d.Scale = s
	d.transformDirty = true
}

// SetRotation sets the rotation in radians and marks the drawable dirty.
func (d *Drawable) SetRotation(r float64) {
	d.Rotation = r
	d.transformDirty = true
}

// SetOrigin sets the relative anchor and marks the drawable dirty.
func (d *Drawable) SetOrigin(o Vec2) {
	d.Origin = o
	d.transformDirty = true
}

// SetAlpha sets alpha and marks the drawable dirty.
func (d *Drawable) SetAlpha(a float64) {
	d.Alpha = a
	d.transformDirty = true
}

// SetColor sets the tint. Color does not affect the world transform.
func (d *Drawable) SetColor(c Color) {
	d.Color = c
}

// MarkDirty forces recomputation of the world transform on the next frame.
// Call it after writing transform fields directly.
func (d *Drawable) MarkDirty() {
	d.transformDirty = true
}

// --- Coordinate conversion ---

// WorldTransform returns the cached world matrix as of the last scene update.
func (d *Drawable) WorldTransform() [6]float64 {
	return d.worldTransform
}

// WorldAlpha returns the cached product of ancestor alphas and Alpha.
func (d *Drawable) WorldAlpha() float64 {
	return d.worldAlpha
}

// WorldToLocal converts a world-space point to local space.
func (d *Drawable) WorldToLocal(w Vec2) Vec2 {
	x, y := transformPoint(invertAffine(d.worldTransform), w.X, w.Y)
	return Vec2{x, y}
}

// LocalToWorld converts a local-space point to world space.
func (d *Drawable) LocalToWorld(l Vec2) Vec2 {
	x, y := transformPoint(d.worldTransform, l.X, l.Y)
	return Vec2{x, y}
}
