package scene

import (
	"github.com/Feilkin/blob-game/bvh"
	"github.com/Feilkin/blob-game/types"
	"github.com/google/uuid"
)

// Namespace for deriving object ids from object names.
var objectNamespace = uuid.MustParse("7c0f3f2e-55b1-4d0a-9a61-3b1f2d8e4c70")

// ObjectID derives a stable id from an object name so that the same scene
// always produces the same ids.
func ObjectID(name string) uuid.UUID {
	return uuid.NewSHA1(objectNamespace, []byte(name))
}

// An Object is a scene entity that participates in the BVH.
type Object struct {
	ID   uuid.UUID
	Name string

	// Bounding box in model space (not scaled, not translated).
	Local bvh.AABB

	// Axis-aligned transform applied to Local. Rotations are not modeled.
	Scale       types.Vec3
	Translation types.Vec3

	// Slot of this object in the per-object GPU buffer or nil if the
	// object has not been assigned one yet.
	BufferIndex *int32
}

// Create an object with an identity transform.
func NewObject(name string, local bvh.AABB) *Object {
	return &Object{
		ID:    ObjectID(name),
		Name:  name,
		Local: local,
		Scale: types.Splat(1),
	}
}

// Assign the object buffer slot.
func (o *Object) SetBufferIndex(index int32) {
	o.BufferIndex = &index
}

// Get the object buffer slot or bvh.MissIndex if none is assigned.
func (o *Object) Index() int32 {
	if o.BufferIndex == nil {
		return bvh.MissIndex
	}
	return *o.BufferIndex
}

// Get the world-space bounding box.
func (o *Object) WorldBounds() bvh.AABB {
	return o.Local.Transform(o.Scale, o.Translation)
}
