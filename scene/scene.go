package scene

import (
	"time"

	"github.com/Feilkin/blob-game/bvh"
	"github.com/Feilkin/blob-game/log"
	"github.com/google/uuid"
)

// A Scene is the set of objects that feed the BVH.
type Scene struct {
	Objects []*Object
}

// Add objects to the scene.
func (sc *Scene) Add(objects ...*Object) {
	sc.Objects = append(sc.Objects, objects...)
}

// Snapshot captures the world-space bounds of all objects in scene order.
// The returned list is independent of the scene and safe to hand to the
// builder while the scene keeps changing.
func (sc *Scene) Snapshot() []bvh.ObjectRef[uuid.UUID] {
	refs := make([]bvh.ObjectRef[uuid.UUID], len(sc.Objects))
	for index, obj := range sc.Objects {
		refs[index] = bvh.ObjectRef[uuid.UUID]{
			ID:     obj.ID,
			Bounds: obj.WorldBounds(),
		}
	}
	return refs
}

// Resolver returns a resolver over the current object buffer indices.
// Objects without a buffer index resolve to bvh.MissIndex.
func (sc *Scene) Resolver() bvh.Resolver[uuid.UUID] {
	indices := make(map[uuid.UUID]int32, len(sc.Objects))
	for _, obj := range sc.Objects {
		if obj.BufferIndex != nil {
			indices[obj.ID] = *obj.BufferIndex
		}
	}
	return bvh.MapResolver(indices)
}

// Compile builds a BVH for the scene and flattens it into a GPU-friendly
// node list. An empty scene yields bvh.ErrEmptyInput; callers are expected to
// skip the update and keep their previous tree.
func (sc *Scene) Compile(opts ...bvh.BuildOption) (bvh.FlatTree, error) {
	logger := log.New("scene compiler")
	start := time.Now()

	refs := sc.Snapshot()
	if len(refs) == 0 {
		logger.Warning("no objects for BVH")
		return nil, bvh.ErrEmptyInput
	}

	logger.Infof("building scene BVH tree (%d objects)", len(refs))
	root, err := bvh.Build(refs, opts...)
	if err != nil {
		return nil, err
	}

	tree := bvh.Flatten(root, sc.Resolver())
	if stats := bvh.Stats(tree); stats.UnresolvedLeafs > 0 {
		logger.Warningf("%d of %d objects have no buffer index; their leafs will not reference object data", stats.UnresolvedLeafs, stats.Leafs)
	}

	logger.Noticef("compiled BVH with %d nodes in %d ms", len(tree), time.Since(start).Nanoseconds()/1e6)
	return tree, nil
}
