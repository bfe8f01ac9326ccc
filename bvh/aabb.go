package bvh

import (
	"fmt"

	"github.com/Feilkin/blob-game/types"
)

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a bounding box and validate its extents.
func NewAABB(min, max types.Vec3) (AABB, error) {
	box := AABB{Min: min, Max: max}
	if err := box.Validate(); err != nil {
		return AABB{}, err
	}
	return box, nil
}

// Validate returns ErrInvalidBound if any component is NaN or infinite or if
// min exceeds max along any axis.
func (b AABB) Validate() error {
	if !b.Min.IsFinite() || !b.Max.IsFinite() {
		return fmt.Errorf("%w: non-finite extents %v, %v", ErrInvalidBound, b.Min, b.Max)
	}
	for axis := XAxis; axis <= ZAxis; axis++ {
		lo, hi := b.Min[axis], b.Max[axis]
		if lo > hi {
			return fmt.Errorf("%w: inverted %s extent [%v, %v]", ErrInvalidBound, axis, lo, hi)
		}
	}
	return nil
}

// Centroid returns the box center.
func (b AABB) Centroid() types.Vec3 {
	return b.Min.Add(b.Max.Sub(b.Min).Mul(0.5))
}

// SurfaceArea returns the total area of the six box faces. It is only
// compared against other areas so its scale is irrelevant.
func (b AABB) SurfaceArea() float32 {
	d := b.Max.Sub(b.Min)
	return 2 * (d[0]*d[1] + d[0]*d[2] + d[1]*d[2])
}

// Union returns the smallest box enclosing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Contains returns true if other lies entirely inside b.
func (b AABB) Contains(other AABB) bool {
	return types.MinVec3(b.Min, other.Min) == b.Min && types.MaxVec3(b.Max, other.Max) == b.Max
}

// Transform scales the box about the origin and then translates it. Only
// axis-aligned scaling is modeled; bounds of rotated geometry must be
// approximated by the caller. A negative scale component mirrors that axis so
// the corners are re-ordered to keep min <= max.
func (b AABB) Transform(scale, translation types.Vec3) AABB {
	c0 := b.Min.MulVec(scale).Add(translation)
	c1 := b.Max.MulVec(scale).Add(translation)
	return AABB{
		Min: types.MinVec3(c0, c1),
		Max: types.MaxVec3(c0, c1),
	}
}

// Merge returns the componentwise union of a non-empty set of boxes. An
// empty set yields ErrEmptyInput and any non-finite or inverted box yields
// ErrInvalidBound.
func Merge(boxes ...AABB) (AABB, error) {
	if len(boxes) == 0 {
		return AABB{}, ErrEmptyInput
	}

	out := boxes[0]
	for index, box := range boxes {
		if err := box.Validate(); err != nil {
			return AABB{}, fmt.Errorf("merge box %d: %w", index, err)
		}
		out = out.Union(box)
	}
	return out, nil
}
