package bvh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Feilkin/blob-game/types"
)

// RecordSize is the encoded size of a FlatNode: min.xyz, max.xyz, left and
// right packed as little-endian 32-bit values without padding.
const RecordSize = 32

// MarshalBinary encodes the tree as a sequence of fixed-size records.
func (t FlatTree) MarshalBinary() ([]byte, error) {
	data := make([]byte, len(t)*RecordSize)
	for index := range t {
		rec := data[index*RecordSize:]
		putVec3(rec[0:], t[index].Min)
		putVec3(rec[12:], t[index].Max)
		binary.LittleEndian.PutUint32(rec[24:], uint32(t[index].Left))
		binary.LittleEndian.PutUint32(rec[28:], uint32(t[index].Right))
	}
	return data, nil
}

// UnmarshalBinary decodes a record sequence produced by MarshalBinary.
func (t *FlatTree) UnmarshalBinary(data []byte) error {
	if len(data)%RecordSize != 0 {
		return fmt.Errorf("bvh: record stream length %d is not a multiple of %d", len(data), RecordSize)
	}

	nodes := make(FlatTree, len(data)/RecordSize)
	for index := range nodes {
		rec := data[index*RecordSize:]
		nodes[index] = FlatNode{
			Min:   getVec3(rec[0:]),
			Max:   getVec3(rec[12:]),
			Left:  int32(binary.LittleEndian.Uint32(rec[24:])),
			Right: int32(binary.LittleEndian.Uint32(rec[28:])),
		}
	}

	*t = nodes
	return nil
}

func putVec3(buf []byte, v types.Vec3) {
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(v[2]))
}

func getVec3(buf []byte) types.Vec3 {
	return types.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])),
	}
}
