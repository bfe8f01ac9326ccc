package bvh

import (
	"fmt"

	"github.com/Feilkin/blob-game/types"
)

// FlatNode is the pointer-free node record consumed by traversal kernels.
//
// For branches Left and Right hold the indices of the child records, which
// always follow the parent record. For leafs Left is -1 and Right holds the
// resolved object buffer index (or MissIndex).
type FlatNode struct {
	Min types.Vec3
	Max types.Vec3

	Left  int32
	Right int32
}

// Returns true if this record is a leaf.
func (n *FlatNode) IsLeaf() bool {
	return n.Left < 0
}

// Set left and right child node indices.
func (n *FlatNode) SetChildNodes(left, right int32) {
	n.Left = left
	n.Right = right
}

// Set the buffer index of the object referenced by this leaf.
func (n *FlatNode) SetObjectIndex(index int32) {
	n.Left = -1
	n.Right = index
}

// Get the bounding box stored in this record.
func (n *FlatNode) Bounds() AABB {
	return AABB{Min: n.Min, Max: n.Max}
}

// FlatTree stores BVH nodes as a contiguous list in pre-order; the root is
// at index 0.
type FlatTree []FlatNode

type linearizer[ID comparable] struct {
	nodes   FlatTree
	resolve Resolver[ID]
}

// Flatten serializes a tree into a FlatTree using a pre-order traversal.
// Each branch record is followed by its entire left subtree and then its
// entire right subtree. Leaf object ids are mapped through resolve; a nil
// resolver or a miss results in a MissIndex leaf. Flatten never fails.
func Flatten[ID comparable](root *Node[ID], resolve Resolver[ID]) FlatTree {
	if root == nil {
		return FlatTree{}
	}

	if resolve == nil {
		resolve = func(ID) int32 { return MissIndex }
	}

	l := &linearizer[ID]{
		nodes:   make(FlatTree, 0, 2*root.LeafCount()-1),
		resolve: resolve,
	}
	l.emit(root)
	return l.nodes
}

// Append node and its subtree to the list and return the node index.
func (l *linearizer[ID]) emit(node *Node[ID]) int32 {
	nodeIndex := int32(len(l.nodes))
	l.nodes = append(l.nodes, FlatNode{
		Min: node.Bounds.Min,
		Max: node.Bounds.Max,
	})

	if node.Leaf() {
		l.nodes[nodeIndex].SetObjectIndex(l.resolve(node.ObjectID))
		return nodeIndex
	}

	// Children are emitted first; patch the reserved record afterwards
	leftNodeIndex := l.emit(node.Left)
	rightNodeIndex := l.emit(node.Right)
	l.nodes[nodeIndex].SetChildNodes(leftNodeIndex, rightNodeIndex)

	return nodeIndex
}

// Number of leaf records.
func (t FlatTree) LeafCount() int {
	leafs := 0
	for index := range t {
		if t[index].IsLeaf() {
			leafs++
		}
	}
	return leafs
}

// Validate checks the structural invariants of a flattened tree: every
// branch at index k is followed by its left child at k+1, its right child
// starts right after the last record of the left subtree, every branch
// bbox equals the union of its children and the list has exactly 2N-1
// records for N leafs.
func (t FlatTree) Validate() error {
	if len(t) == 0 {
		return ErrEmptyInput
	}

	end, err := t.validateNode(0)
	if err != nil {
		return err
	}
	if end != len(t) {
		return fmt.Errorf("%w: tree rooted at 0 spans %d records; list has %d", ErrMalformedTree, end, len(t))
	}
	return nil
}

// Validate the subtree at index and return the index just past its last
// record.
func (t FlatTree) validateNode(index int) (int, error) {
	node := &t[index]
	if node.IsLeaf() {
		if node.Left != -1 {
			return 0, fmt.Errorf("%w: leaf %d has left index %d", ErrMalformedTree, index, node.Left)
		}
		return index + 1, nil
	}

	if int(node.Left) != index+1 || int(node.Left) >= len(t) {
		return 0, fmt.Errorf("%w: branch %d has left index %d", ErrMalformedTree, index, node.Left)
	}
	leftEnd, err := t.validateNode(int(node.Left))
	if err != nil {
		return 0, err
	}

	if int(node.Right) != leftEnd || int(node.Right) >= len(t) {
		return 0, fmt.Errorf("%w: branch %d has right index %d; expected %d", ErrMalformedTree, index, node.Right, leftEnd)
	}
	rightEnd, err := t.validateNode(int(node.Right))
	if err != nil {
		return 0, err
	}

	childBounds := t[node.Left].Bounds().Union(t[node.Right].Bounds())
	if childBounds != node.Bounds() {
		return 0, fmt.Errorf("%w: branch %d bbox %v does not match union of children %v", ErrMalformedTree, index, node.Bounds(), childBounds)
	}

	return rightEnd, nil
}
