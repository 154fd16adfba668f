package svo

import "fmt"

// NeighborDirection is one of the 26 directions to an adjacent octant at the
// same depth: 6 through a face, 12 through an edge and 8 through a corner.
// East is +x, Up is +y and North is +z.
type NeighborDirection uint8

const (
	Up NeighborDirection = iota
	Down
	North
	South
	East
	West

	NorthEast
	NorthWest
	SouthEast
	SouthWest

	UpNorth
	UpSouth
	UpEast
	UpWest

	DownNorth
	DownSouth
	DownEast
	DownWest

	UpNorthEast
	UpNorthWest
	UpSouthEast
	UpSouthWest

	DownNorthEast
	DownNorthWest
	DownSouthEast
	DownSouthWest
)

const (
	DirectionCount         = 26
	FacingDirectionCount   = 6
	DiagonalDirectionCount = DirectionCount - FacingDirectionCount
)

// FacingDirections lists the face directions in declaration order.
var FacingDirections = [FacingDirectionCount]NeighborDirection{
	Up, Down, North, South, East, West,
}

// DiagonalDirections lists the edge then corner directions.
var DiagonalDirections = [DiagonalDirectionCount]NeighborDirection{
	NorthEast, NorthWest, SouthEast, SouthWest,
	UpNorth, UpSouth, UpEast, UpWest,
	DownNorth, DownSouth, DownEast, DownWest,
	UpNorthEast, UpNorthWest, UpSouthEast, UpSouthWest,
	DownNorthEast, DownNorthWest, DownSouthEast, DownSouthWest,
}

// AllDirections lists the face directions followed by DiagonalDirections.
var AllDirections = [DirectionCount]NeighborDirection{
	Up, Down, North, South, East, West,
	NorthEast, NorthWest, SouthEast, SouthWest,
	UpNorth, UpSouth, UpEast, UpWest,
	DownNorth, DownSouth, DownEast, DownWest,
	UpNorthEast, UpNorthWest, UpSouthEast, UpSouthWest,
	DownNorthEast, DownNorthWest, DownSouthEast, DownSouthWest,
}

var directions = [DirectionCount]struct {
	name   string
	offset [3]int8
}{
	Up:            {"U", [3]int8{0, 1, 0}},
	Down:          {"D", [3]int8{0, -1, 0}},
	North:         {"N", [3]int8{0, 0, 1}},
	South:         {"S", [3]int8{0, 0, -1}},
	East:          {"E", [3]int8{1, 0, 0}},
	West:          {"W", [3]int8{-1, 0, 0}},
	NorthEast:     {"NE", [3]int8{1, 0, 1}},
	NorthWest:     {"NW", [3]int8{-1, 0, 1}},
	SouthEast:     {"SE", [3]int8{1, 0, -1}},
	SouthWest:     {"SW", [3]int8{-1, 0, -1}},
	UpNorth:       {"UN", [3]int8{0, 1, 1}},
	UpSouth:       {"US", [3]int8{0, 1, -1}},
	UpEast:        {"UE", [3]int8{1, 1, 0}},
	UpWest:        {"UW", [3]int8{-1, 1, 0}},
	DownNorth:     {"DN", [3]int8{0, -1, 1}},
	DownSouth:     {"DS", [3]int8{0, -1, -1}},
	DownEast:      {"DE", [3]int8{1, -1, 0}},
	DownWest:      {"DW", [3]int8{-1, -1, 0}},
	UpNorthEast:   {"UNE", [3]int8{1, 1, 1}},
	UpNorthWest:   {"UNW", [3]int8{-1, 1, 1}},
	UpSouthEast:   {"USE", [3]int8{1, 1, -1}},
	UpSouthWest:   {"USW", [3]int8{-1, 1, -1}},
	DownNorthEast: {"DNE", [3]int8{1, -1, 1}},
	DownNorthWest: {"DNW", [3]int8{-1, -1, 1}},
	DownSouthEast: {"DSE", [3]int8{1, -1, -1}},
	DownSouthWest: {"DSW", [3]int8{-1, -1, -1}},
}

var directionByOffset = buildDirectionIndex()

func buildDirectionIndex() map[[3]int8]NeighborDirection {
	index := make(map[[3]int8]NeighborDirection, DirectionCount)
	for _, d := range AllDirections {
		index[directions[d].offset] = d
	}
	return index
}

// DirectionFromOffset maps a unit step on each axis to its direction. The
// zero offset has no direction.
func DirectionFromOffset(off [3]int8) (NeighborDirection, bool) {
	d, ok := directionByOffset[off]
	return d, ok
}

// Offset returns the per-axis step, each component in {-1, 0, 1}.
func (d NeighborDirection) Offset() [3]int8 {
	if int(d) >= DirectionCount {
		return [3]int8{}
	}
	return directions[d].offset
}

// IsFacing reports whether the direction crosses a face.
func (d NeighborDirection) IsFacing() bool { return d < FacingDirectionCount }

// Opposite returns the direction with every offset component negated.
func (d NeighborDirection) Opposite() NeighborDirection {
	off := d.Offset()
	o, _ := DirectionFromOffset([3]int8{-off[0], -off[1], -off[2]})
	return o
}

func (d NeighborDirection) String() string {
	if int(d) >= DirectionCount {
		return fmt.Sprintf("NeighborDirection(%d)", uint8(d))
	}
	return directions[d].name
}
