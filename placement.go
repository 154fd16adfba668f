package svo

import "fmt"

// OctantPlacement is the position of a child inside its parent. Its value is
// the Morton digit x<<2 | y<<1 | z, so RIGHT is +x, UPPER is +y and TOP is +z.
type OctantPlacement uint8

const (
	LowerBottomLeft  OctantPlacement = iota // [0, 0, 0]
	LowerTopLeft                            // [0, 0, 1]
	UpperBottomLeft                         // [0, 1, 0]
	UpperTopLeft                            // [0, 1, 1]
	LowerBottomRight                        // [1, 0, 0]
	LowerTopRight                           // [1, 0, 1]
	UpperBottomRight                        // [1, 1, 0]
	UpperTopRight                           // [1, 1, 1]
)

const (
	OctantCount = 8

	FacingNeighborCount   = 3
	DiagonalNeighborCount = 4
	AllNeighborCount      = FacingNeighborCount + DiagonalNeighborCount
)

// OctantsOrdered is the order used by every operation that returns one value
// per child.
var OctantsOrdered = [OctantCount]OctantPlacement{
	LowerBottomLeft,
	LowerTopLeft,
	UpperBottomLeft,
	UpperTopLeft,
	LowerBottomRight,
	LowerTopRight,
	UpperBottomRight,
	UpperTopRight,
}

var placementNames = [OctantCount]string{
	"LowerBottomLeft",
	"LowerTopLeft",
	"UpperBottomLeft",
	"UpperTopLeft",
	"LowerBottomRight",
	"LowerTopRight",
	"UpperBottomRight",
	"UpperTopRight",
}

// PlacementFromIndex maps an index into OctantsOrdered back to a placement.
func PlacementFromIndex(i int) (OctantPlacement, bool) {
	if i < 0 || i >= OctantCount {
		return 0, false
	}
	return OctantsOrdered[i], true
}

func placementFromXYZ(x, y, z uint8) OctantPlacement {
	return OctantPlacement((x&1)<<2 | (y&1)<<1 | z&1)
}

// IsValid reports whether p is one of the eight placements.
func (p OctantPlacement) IsValid() bool { return p < OctantCount }

// XYZ returns the 0/1 offset of the placement on each axis.
func (p OctantPlacement) XYZ() [3]uint8 {
	return [3]uint8{uint8(p>>2) & 1, uint8(p>>1) & 1, uint8(p) & 1}
}

func (p OctantPlacement) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("OctantPlacement(%d)", uint8(p))
	}
	return placementNames[p]
}

// Neighbor returns the placement of the octant adjacent to p in direction
// dir and whether that octant shares p's parent. When it does not, the
// returned placement is relative to the neighbouring parent.
func (p OctantPlacement) Neighbor(dir NeighborDirection) (OctantPlacement, bool) {
	xyz := p.XYZ()
	off := dir.Offset()
	sameParent := true
	for axis, o := range off {
		switch o {
		case 1:
			sameParent = sameParent && xyz[axis] == 0
		case -1:
			sameParent = sameParent && xyz[axis] == 1
		default:
			continue
		}
		xyz[axis] ^= 1
	}
	return placementFromXYZ(xyz[0], xyz[1], xyz[2]), sameParent
}

// Adjacency names a sibling placement and the direction leading to it.
type Adjacency struct {
	Direction NeighborDirection
	Placement OctantPlacement
}

var (
	facingNeighbors   [OctantCount][FacingNeighborCount]Adjacency
	diagonalNeighbors [OctantCount][DiagonalNeighborCount]Adjacency
)

func init() {
	facingNeighbors = buildFacingNeighbors()
	diagonalNeighbors = buildDiagonalNeighbors()
}

// FacingNeighborsOf returns the three siblings sharing a face with p, ordered
// x, z, y.
func FacingNeighborsOf(p OctantPlacement) [FacingNeighborCount]Adjacency {
	return facingNeighbors[p]
}

// DiagonalNeighborsOf returns the four siblings sharing only an edge or a
// corner with p, ordered y+z, y+x, y+x+z, x+z.
func DiagonalNeighborsOf(p OctantPlacement) [DiagonalNeighborCount]Adjacency {
	return diagonalNeighbors[p]
}

// AllNeighborsOf returns the seven siblings of p, facing ones first.
func AllNeighborsOf(p OctantPlacement) [AllNeighborCount]Adjacency {
	var all [AllNeighborCount]Adjacency
	f, d := facingNeighbors[p], diagonalNeighbors[p]
	copy(all[:], f[:])
	copy(all[FacingNeighborCount:], d[:])
	return all
}

// towardSiblings returns the per-axis step from p into its parent's interior.
func towardSiblings(p OctantPlacement) [3]int8 {
	var step [3]int8
	for axis, bit := range p.XYZ() {
		step[axis] = 1 - 2*int8(bit)
	}
	return step
}

func sibling(p OctantPlacement, off [3]int8) Adjacency {
	dir, ok := DirectionFromOffset(off)
	if !ok {
		panic(fmt.Sprintf("svo: no direction for offset %v", off))
	}
	n, _ := p.Neighbor(dir)
	return Adjacency{Direction: dir, Placement: n}
}

func buildFacingNeighbors() [OctantCount][FacingNeighborCount]Adjacency {
	var table [OctantCount][FacingNeighborCount]Adjacency
	for _, p := range OctantsOrdered {
		s := towardSiblings(p)
		table[p] = [FacingNeighborCount]Adjacency{
			sibling(p, [3]int8{s[0], 0, 0}),
			sibling(p, [3]int8{0, 0, s[2]}),
			sibling(p, [3]int8{0, s[1], 0}),
		}
	}
	return table
}

func buildDiagonalNeighbors() [OctantCount][DiagonalNeighborCount]Adjacency {
	var table [OctantCount][DiagonalNeighborCount]Adjacency
	for _, p := range OctantsOrdered {
		s := towardSiblings(p)
		table[p] = [DiagonalNeighborCount]Adjacency{
			sibling(p, [3]int8{0, s[1], s[2]}),
			sibling(p, [3]int8{s[0], s[1], 0}),
			sibling(p, [3]int8{s[0], s[1], s[2]}),
			sibling(p, [3]int8{s[0], 0, s[2]}),
		}
	}
	return table
}
