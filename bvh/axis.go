package bvh

// Axis selects a coordinate of a Vec3.
type Axis uint8

// The axes in tie-break order.
const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	}
	return "?"
}
