package svo

import (
	"fmt"
	"iter"
	"math/bits"
)

// Depth is the level of an octant in the tree. The root is at depth 0.
type Depth = uint8

// OctantID identifies an octant by its Morton code prefixed with a single
// marker bit. The position of the marker encodes the depth, the bits below it
// interleave the x, y and z coordinates three bits per level.
type OctantID uint64

const (
	InvalidOctantID OctantID = 0
	RootOctantID    OctantID = 1

	// MaxDepth is the deepest level addressable with 16 bits per axis.
	MaxDepth Depth = 16
)

// FromXYZ builds the id of the octant at (x, y, z) on the grid of the given
// depth. Each coordinate must be in [0, 2^depth-1].
func FromXYZ(x, y, z uint16, depth Depth) (OctantID, error) {
	return FromXYZArray([3]uint16{x, y, z}, depth)
}

// FromXYZArray is FromXYZ for a coordinate triple.
func FromXYZArray(xyz [3]uint16, depth Depth) (OctantID, error) {
	if _, err := ValidateXYZ([3]int32{int32(xyz[0]), int32(xyz[1]), int32(xyz[2])}, depth); err != nil {
		return InvalidOctantID, err
	}
	return OctantID(encodeMorton(xyz) | uint64(RootOctantID)<<(3*uint(depth))), nil
}

// FromMortonCode wraps a raw code without validation.
func FromMortonCode(code uint64) OctantID {
	return OctantID(code)
}

// ValidateXYZ checks signed coordinates against the grid of the given depth
// and narrows them on success.
func ValidateXYZ(xyz [3]int32, depth Depth) ([3]uint16, error) {
	size, ok := GridSize(depth)
	if !ok {
		return [3]uint16{}, &ValidationError{Depth: depth, Coords: xyz}
	}
	verr := &ValidationError{Depth: depth, Max: int32(size - 1), Coords: xyz}
	failed := false
	for i, v := range xyz {
		if v < 0 || v > verr.Max {
			verr.Invalid[i] = true
			failed = true
		}
	}
	if failed {
		return [3]uint16{}, verr
	}
	return [3]uint16{uint16(xyz[0]), uint16(xyz[1]), uint16(xyz[2])}, nil
}

// GridSize returns the number of cells per axis at depth.
func GridSize(depth Depth) (uint32, bool) {
	if depth > MaxDepth {
		return 0, false
	}
	return 1 << depth, true
}

// Morton returns the raw code, marker bit included.
func (id OctantID) Morton() uint64 { return uint64(id) }

// IsRoot reports whether id is the root octant.
func (id OctantID) IsRoot() bool { return id == RootOctantID }

// IsValid reports whether id is structurally usable. It says nothing about
// existence in a storage.
func (id OctantID) IsValid() bool { return id != InvalidOctantID }

// Depth derives the depth from the position of the marker bit.
func (id OctantID) Depth() Depth {
	return Depth((64 - bits.LeadingZeros64(uint64(id))) / 3)
}

// XYZ returns the grid coordinates of the octant at its own depth.
func (id OctantID) XYZ() [3]uint16 {
	code := uint64(id) &^ (uint64(RootOctantID) << (3 * uint(id.Depth())))
	return decodeMorton(code)
}

// MaxAxis is the largest coordinate value at the octant's depth.
func (id OctantID) MaxAxis() uint16 {
	return uint16((uint32(1) << id.Depth()) - 1)
}

// Parent returns InvalidOctantID for the root and for the invalid id.
func (id OctantID) Parent() OctantID {
	if id.IsRoot() || !id.IsValid() {
		return InvalidOctantID
	}
	return id >> 3
}

// Children returns the ids of all eight children in OctantsOrdered.
func (id OctantID) Children() [OctantCount]OctantID {
	var children [OctantCount]OctantID
	base := id << 3
	for i, p := range OctantsOrdered {
		children[i] = base | OctantID(p)
	}
	return children
}

// Child returns the id of the child at placement p.
func (id OctantID) Child(p OctantPlacement) OctantID {
	return id<<3 | OctantID(p)
}

// Placement returns where the octant sits under its parent.
func (id OctantID) Placement() (OctantPlacement, bool) {
	if id.IsRoot() || !id.IsValid() {
		return 0, false
	}
	return OctantPlacement(id & 7), true
}

// PlacementOf reports which placement child occupies under id, or false if
// child is not a direct child of id.
func (id OctantID) PlacementOf(child OctantID) (OctantPlacement, bool) {
	if !id.IsValid() || child.Parent() != id {
		return 0, false
	}
	return child.Placement()
}

// Ancestors walks from the parent of id up to the root.
func (id OctantID) Ancestors() *AncestorIter {
	return &AncestorIter{current: id}
}

// Neighbor returns the octant adjacent to id in direction dir at the same
// depth. It fails with a *ValidationError when the neighbour would leave the
// grid.
func (id OctantID) Neighbor(dir NeighborDirection) (OctantID, error) {
	depth := id.Depth()
	xyz := id.XYZ()
	off := dir.Offset()
	coords := [3]int32{
		int32(xyz[0]) + int32(off[0]),
		int32(xyz[1]) + int32(off[1]),
		int32(xyz[2]) + int32(off[2]),
	}
	valid, err := ValidateXYZ(coords, depth)
	if err != nil {
		return InvalidOctantID, err
	}
	return FromXYZArray(valid, depth)
}

// NeighborResult pairs a direction with the outcome of Neighbor.
type NeighborResult struct {
	Direction NeighborDirection
	ID        OctantID
	Err       error
}

func (id OctantID) neighbors(dirs []NeighborDirection, out []NeighborResult) {
	for i, dir := range dirs {
		n, err := id.Neighbor(dir)
		out[i] = NeighborResult{Direction: dir, ID: n, Err: err}
	}
}

// FacingNeighbors returns the six face neighbours in FacingDirections order.
func (id OctantID) FacingNeighbors() [FacingDirectionCount]NeighborResult {
	var out [FacingDirectionCount]NeighborResult
	id.neighbors(FacingDirections[:], out[:])
	return out
}

// DiagonalNeighbors returns the twenty edge and corner neighbours in
// DiagonalDirections order.
func (id OctantID) DiagonalNeighbors() [DiagonalDirectionCount]NeighborResult {
	var out [DiagonalDirectionCount]NeighborResult
	id.neighbors(DiagonalDirections[:], out[:])
	return out
}

// AllNeighbors returns all 26 neighbours in AllDirections order.
func (id OctantID) AllNeighbors() [DirectionCount]NeighborResult {
	var out [DirectionCount]NeighborResult
	id.neighbors(AllDirections[:], out[:])
	return out
}

func (id OctantID) String() string {
	switch {
	case !id.IsValid():
		return "OctantID(none)"
	case id.IsRoot():
		return "OctantID(root)"
	}
	xyz := id.XYZ()
	return fmt.Sprintf("OctantID(%d)[x:%d y:%d z:%d] parent(%d) depth(%d)",
		uint64(id), xyz[0], xyz[1], xyz[2], uint64(id.Parent()), id.Depth())
}

// AncestorIter yields the ancestors of an octant, nearest first, ending at the
// root. It cannot be restarted.
type AncestorIter struct {
	current OctantID
}

// Next returns the next ancestor, or false once the root has been returned.
func (it *AncestorIter) Next() (OctantID, bool) {
	if it.current.IsRoot() || !it.current.IsValid() {
		return InvalidOctantID, false
	}
	it.current = it.current.Parent()
	return it.current, true
}

// All drains the iterator.
func (it *AncestorIter) All() iter.Seq[OctantID] {
	return func(yield func(OctantID) bool) {
		for {
			id, ok := it.Next()
			if !ok || !yield(id) {
				return
			}
		}
	}
}

func encodeMorton(xyz [3]uint16) uint64 {
	return spread3(uint64(xyz[0]))<<2 | spread3(uint64(xyz[1]))<<1 | spread3(uint64(xyz[2]))
}

func decodeMorton(code uint64) [3]uint16 {
	return [3]uint16{
		uint16(compact3(code >> 2)),
		uint16(compact3(code >> 1)),
		uint16(compact3(code)),
	}
}

// spread3 inserts two zero bits after each of the low 21 bits of v.
func spread3(v uint64) uint64 {
	v &= 0x1fffff
	v = (v | v<<32) & 0x1f00000000ffff
	v = (v | v<<16) & 0x1f0000ff0000ff
	v = (v | v<<8) & 0x100f00f00f00f00f
	v = (v | v<<4) & 0x10c30c30c30c30c3
	v = (v | v<<2) & 0x1249249249249249
	return v
}

func compact3(v uint64) uint64 {
	v &= 0x1249249249249249
	v = (v ^ v>>2) & 0x10c30c30c30c30c3
	v = (v ^ v>>4) & 0x100f00f00f00f00f
	v = (v ^ v>>8) & 0x1f0000ff0000ff
	v = (v ^ v>>16) & 0x1f00000000ffff
	v = (v ^ v>>32) & 0x1fffff
	return v
}
