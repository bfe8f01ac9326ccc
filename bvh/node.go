package bvh

// ObjectRef pairs an opaque object identifier with its world-space bounds.
type ObjectRef[ID comparable] struct {
	ID     ID
	Bounds AABB
}

// Node is either a leaf referencing a single object or a branch that owns
// exactly two child subtrees. Leafs have nil children. A node with exactly
// one nil child is malformed; Build never produces one and the tree walkers
// (LeafCount, Depth, Flatten) assume it does not occur.
type Node[ID comparable] struct {
	// Union of all leaf bounds in this subtree.
	Bounds AABB

	// Only meaningful for leafs.
	ObjectID ID

	Left  *Node[ID]
	Right *Node[ID]
}

// Returns true if this node references an object.
func (n *Node[ID]) Leaf() bool {
	return n.Left == nil && n.Right == nil
}

// Number of leafs in the subtree rooted at this node.
func (n *Node[ID]) LeafCount() int {
	if n.Leaf() {
		return 1
	}
	return n.Left.LeafCount() + n.Right.LeafCount()
}

// Length of the longest root-to-leaf path; a single leaf has depth 0.
func (n *Node[ID]) Depth() int {
	if n.Leaf() {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}
