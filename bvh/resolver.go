package bvh

// MissIndex is emitted in place of an object buffer index that the resolver
// could not find.
const MissIndex int32 = -1

// A Resolver maps an object id to its slot in the per-object buffer used by
// the traversal code. It must be total and return MissIndex for unknown ids.
type Resolver[ID comparable] func(id ID) int32

// Create a resolver backed by a map snapshot.
func MapResolver[ID comparable](indices map[ID]int32) Resolver[ID] {
	return func(id ID) int32 {
		if index, ok := indices[id]; ok {
			return index
		}
		return MissIndex
	}
}
