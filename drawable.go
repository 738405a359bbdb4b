package cadence

import "math"

// drawableIDCounter is a plain counter (no atomic, cadence is single-threaded).
var drawableIDCounter uint32

func nextDrawableID() uint32 {
	drawableIDCounter++
	return drawableIDCounter
}

// Drawable is the scene graph element. A single flat struct serves every
// drawable type to avoid interface dispatch on the hot path.
//
// Fields may be written directly; call MarkDirty afterwards when a transform
// field changed, or use the Set* helpers.
type Drawable struct {
	// Identity
	ID   uint32
	Name string
	Type DrawableType

	// Hierarchy
	Parent   *Drawable
	children []*Drawable

	// Transform (local)
	Position Vec2
	Size     Vec2
	Scale    Vec2
	Rotation float64
	// Origin is the anchor relative to Size: {0,0} top-left, {0.5,0.5} centre.
	Origin Vec2

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool

	// Metadata
	UserData any

	// OnUpdate runs once per scene update before transforms are applied.
	OnUpdate func(d *Drawable)

	// Computed during the scene update
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Timing
	clock Clock

	// Transform scheduling (drawable_transforms.go)
	transforms         []AnimatedTransform
	actions            []scheduledAction
	dueActions         []scheduledAction
	transformDelay     float64
	latestTransformEnd float64

	disposed bool
}

// drawableDefaults sets the common default field values shared by all constructors.
func drawableDefaults(d *Drawable) {
	d.ID = nextDrawableID()
	d.Scale = Vec2{1, 1}
	d.Alpha = 1
	d.Color = ColorWhite
	d.Visible = true
	d.transformDirty = true
	d.latestTransformEnd = math.Inf(-1)
}

// NewContainer creates a drawable with no visual output.
func NewContainer(name string) *Drawable {
	d := &Drawable{Name: name, Type: DrawableContainer}
	drawableDefaults(d)
	return d
}

// NewBox creates a solid rectangle of the given size, tinted by Color.
func NewBox(name string, size Vec2) *Drawable {
	d := &Drawable{Name: name, Type: DrawableBox, Size: size}
	drawableDefaults(d)
	return d
}

// --- Clock ---

// SetClock assigns d its own clock. nil makes d inherit its parent's again.
func (d *Drawable) SetClock(c Clock) {
	d.clock = c
}

// Clock returns d's own clock or the nearest ancestor's, or nil.
func (d *Drawable) Clock() Clock {
	for p := d; p != nil; p = p.Parent {
		if p.clock != nil {
			return p.clock
		}
	}
	return nil
}

// Time returns the current time of d's clock. Panics if d has none.
func (d *Drawable) Time() float64 {
	c := d.Clock()
	if c == nil {
		panic("cadence: drawable has no clock")
	}
	return c.CurrentTime()
}

// --- Tree manipulation ---

// AddChild appends child to d's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, disposed, or an ancestor of d (cycle).
func (d *Drawable) AddChild(child *Drawable) {
	d.checkAdd(child)
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = d
	d.children = append(d.children, child)
	markSubtreeDirty(child)
}

// AddChildAt inserts child at index. Same rules as AddChild. When child is
// already one of d's children, index counts positions without it.
func (d *Drawable) AddChildAt(child *Drawable, index int) {
	d.checkAdd(child)
	n := len(d.children)
	if child.Parent == d {
		n--
	}
	if index < 0 || index > n {
		panic("cadence: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = d
	d.children = append(d.children, nil)
	copy(d.children[index+1:], d.children[index:])
	d.children[index] = child
	markSubtreeDirty(child)
}

func (d *Drawable) checkAdd(child *Drawable) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if child.disposed || d.disposed {
		panic("cadence: cannot add to or from a disposed drawable")
	}
	if isAncestor(child, d) {
		panic("cadence: adding child would create a cycle")
	}
}

// RemoveChild detaches child from d. Panics if child.Parent != d.
func (d *Drawable) RemoveChild(child *Drawable) {
	if child.Parent != d {
		panic("cadence: child's parent is not this drawable")
	}
	d.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches d from its parent. No-op without a parent.
func (d *Drawable) RemoveFromParent() {
	if d.Parent == nil {
		return
	}
	d.Parent.RemoveChild(d)
}

// RemoveChildren detaches all children. Children are NOT disposed.
func (d *Drawable) RemoveChildren() {
	for _, child := range d.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(d.children)
	d.children = d.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (d *Drawable) Children() []*Drawable {
	return d.children
}

// NumChildren returns the number of children.
func (d *Drawable) NumChildren() int {
	return len(d.children)
}

// ChildAt returns the child at index.
func (d *Drawable) ChildAt(index int) *Drawable {
	return d.children[index]
}

// --- Disposal ---

// Dispose removes d from its parent, drops its transforms and recursively
// disposes all descendants.
func (d *Drawable) Dispose() {
	if d.disposed {
		return
	}
	d.RemoveFromParent()
	d.dispose()
}

func (d *Drawable) dispose() {
	d.disposed = true
	d.ID = 0
	for _, child := range d.children {
		child.Parent = nil
		child.dispose()
	}
	d.children = nil
	d.Parent = nil
	d.clock = nil
	d.transforms = nil
	d.actions = nil
	d.dueActions = nil
	d.UserData = nil
	d.OnUpdate = nil
}

// IsDisposed reports whether d has been disposed.
func (d *Drawable) IsDisposed() bool {
	return d.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is d or one of its ancestors.
func isAncestor(candidate, d *Drawable) bool {
	for p := d; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from d.children without clearing child.Parent.
func (d *Drawable) removeChildByPtr(child *Drawable) {
	for i, c := range d.children {
		if c == child {
			copy(d.children[i:], d.children[i+1:])
			d.children[len(d.children)-1] = nil
			d.children = d.children[:len(d.children)-1]
			return
		}
	}
}

func markSubtreeDirty(d *Drawable) {
	d.transformDirty = true
	for _, child := range d.children {
		markSubtreeDirty(child)
	}
}
