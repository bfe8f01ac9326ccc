package bvh

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Feilkin/blob-game/log"
	"golang.org/x/sync/errgroup"
)

type splitScore struct {
	axis  Axis
	index int
	score float32
}

type buildOptions struct {
	logger        log.Logger
	parallelDepth int
}

// A BuildOption customizes Build.
type BuildOption func(*buildOptions)

// Partition the subtrees of the top maxDepth levels on separate goroutines.
// The resulting tree is identical to a sequential build.
func WithParallelism(maxDepth int) BuildOption {
	return func(o *buildOptions) {
		o.parallelDepth = maxDepth
	}
}

// Report build statistics to logger instead of the package default.
func WithLogger(logger log.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

type builder[ID comparable] struct {
	// Sub-builds above this depth run concurrently.
	parallelDepth int
}

// Construct a BVH from a set of object references.
//
// The builder splits the work list in two at every level using the surface
// area heuristic:
//
// score = left count * left bbox area + right count * right bbox area
//
// Split candidates are generated by ordering the work list along each axis
// using the bbox centroids and scoring every index in [1, N). The lowest score
// wins; ties favor the lower split index and then the x, y, z axis order.
// Every leaf holds exactly one object.
//
// The input slice is copied before partitioning and is never modified. Build
// returns ErrEmptyInput when refs is empty and ErrInvalidBound when any bbox is
// non-finite or inverted.
func Build[ID comparable](refs []ObjectRef[ID], opts ...BuildOption) (*Node[ID], error) {
	if len(refs) == 0 {
		return nil, ErrEmptyInput
	}
	for index, ref := range refs {
		if err := ref.Bounds.Validate(); err != nil {
			return nil, fmt.Errorf("object %d: %w", index, err)
		}
	}

	o := buildOptions{logger: log.New("bvh builder")}
	for _, opt := range opts {
		opt(&o)
	}

	workList := make([]ObjectRef[ID], len(refs))
	copy(workList, refs)

	b := &builder[ID]{
		parallelDepth: o.parallelDepth,
	}

	start := time.Now()
	root, err := b.partition(workList, 0)
	if err != nil {
		return nil, err
	}
	o.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		root.Depth(), 2*len(workList)-1, len(workList),
	)
	return root, nil
}

// Partition work list and return the subtree root.
//
// Each axis is stable-sorted from the same incoming order and the work list
// is split in the ordering of the winning axis. With tied centroids this can
// produce a different tree than sorting x, y, z in place and then re-sorting
// by the winner, since that re-sort may not reproduce the scored ordering.
func (b *builder[ID]) partition(workList []ObjectRef[ID], depth int) (*Node[ID], error) {
	if len(workList) == 1 {
		return &Node[ID]{
			Bounds:   workList[0].Bounds,
			ObjectID: workList[0].ID,
		}, nil
	}

	bounds, err := mergeWorkList(workList)
	if err != nil {
		return nil, err
	}

	// Only a strictly better score replaces the current best; ties keep
	// the earlier axis.
	var bestSplit splitScore
	ordered := make([]ObjectRef[ID], len(workList))
	scratch := make([]ObjectRef[ID], len(workList))
	for axis := XAxis; axis <= ZAxis; axis++ {
		copy(scratch, workList)
		sortByCentroid(scratch, axis)
		candidate := scoreAxis(scratch, axis)
		if axis == XAxis || candidate.score < bestSplit.score {
			bestSplit = candidate
			ordered, scratch = scratch, ordered
		}
	}
	copy(workList, ordered)

	leftWorkList := workList[:bestSplit.index]
	rightWorkList := workList[bestSplit.index:]

	node := &Node[ID]{Bounds: bounds}
	if depth < b.parallelDepth {
		var g errgroup.Group
		g.Go(func() (err error) {
			node.Left, err = b.partition(leftWorkList, depth+1)
			return err
		})
		g.Go(func() (err error) {
			node.Right, err = b.partition(rightWorkList, depth+1)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return node, nil
	}

	if node.Left, err = b.partition(leftWorkList, depth+1); err != nil {
		return nil, err
	}
	if node.Right, err = b.partition(rightWorkList, depth+1); err != nil {
		return nil, err
	}
	return node, nil
}

// Find the best SAH split of a work list that is already ordered along axis.
//
// The bounds of every suffix are accumulated in a backwards sweep and the
// bounds of every prefix in a forward sweep so each candidate is scored in
// constant time. Since min/max are exact, the areas match merging each
// partition from scratch.
func scoreAxis[ID comparable](workList []ObjectRef[ID], axis Axis) splitScore {
	count := len(workList)

	rightArea := make([]float32, count)
	acc := workList[count-1].Bounds
	for i := count - 1; i >= 1; i-- {
		acc = acc.Union(workList[i].Bounds)
		rightArea[i] = acc.SurfaceArea()
	}

	best := splitScore{
		axis:  axis,
		index: 1,
		score: float32(math.Inf(1)),
	}

	acc = workList[0].Bounds
	for i := 1; i < count; i++ {
		score := acc.SurfaceArea()*float32(i) + rightArea[i]*float32(count-i)
		if score < best.score {
			best.index = i
			best.score = score
		}
		acc = acc.Union(workList[i].Bounds)
	}

	return best
}

// Stable sort so that the order of items with equal centroids only depends
// on the input order.
func sortByCentroid[ID comparable](workList []ObjectRef[ID], axis Axis) {
	sort.SliceStable(workList, func(i, j int) bool {
		return workList[i].Bounds.Centroid()[axis] < workList[j].Bounds.Centroid()[axis]
	})
}

func mergeWorkList[ID comparable](workList []ObjectRef[ID]) (AABB, error) {
	boxes := make([]AABB, len(workList))
	for index, item := range workList {
		boxes[index] = item.Bounds
	}
	return Merge(boxes...)
}
