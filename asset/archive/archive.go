// Package archive stores compiled BVH trees as zip files.
//
// An archive contains two entries:
//   - bvh.bin: the flattened tree encoded as fixed-size GPU records.
//   - objects.cbor: the objects that fed the tree and their buffer slots.
package archive

import (
	"github.com/Feilkin/blob-game/bvh"
	"github.com/Feilkin/blob-game/scene"
	"github.com/google/uuid"
)

const (
	treeFile   = "bvh.bin"
	objectFile = "objects.cbor"
)

// ObjectRecord describes an object referenced by the tree leafs.
type ObjectRecord struct {
	ID          uuid.UUID `cbor:"1,keyasint"`
	Name        string    `cbor:"2,keyasint"`
	BufferIndex int32     `cbor:"3,keyasint"`
}

// Compiled bundles a flattened tree with its object table.
type Compiled struct {
	Tree    bvh.FlatTree
	Objects []ObjectRecord
}

// Create a compiled bundle from a scene and its flattened tree.
func NewCompiled(sc *scene.Scene, tree bvh.FlatTree) *Compiled {
	objects := make([]ObjectRecord, len(sc.Objects))
	for index, obj := range sc.Objects {
		objects[index] = ObjectRecord{
			ID:          obj.ID,
			Name:        obj.Name,
			BufferIndex: obj.Index(),
		}
	}

	return &Compiled{
		Tree:    tree,
		Objects: objects,
	}
}
