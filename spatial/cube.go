package spatial

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/aweris/svo"
)

// Cube is an axis-aligned cube given by its center and half edge length.
type Cube struct {
	Center     r3.Vector
	HalfExtent float64
}

var _ Region[Cube] = Cube{}

func NewCube(center r3.Vector, halfExtent float64) Cube {
	return Cube{Center: center, HalfExtent: halfExtent}
}

// SubRegion returns the child cube at p. Each placement bit selects the
// upper half of its axis.
func (c Cube) SubRegion(p svo.OctantPlacement) Cube {
	half := c.HalfExtent / 2
	return Cube{
		Center:     c.Center.Add(cornerDirection(p).Mul(half)),
		HalfExtent: half,
	}
}

func (c Cube) Min() r3.Vector {
	return c.Center.Sub(r3.Vector{X: c.HalfExtent, Y: c.HalfExtent, Z: c.HalfExtent})
}

func (c Cube) Max() r3.Vector {
	return c.Center.Add(r3.Vector{X: c.HalfExtent, Y: c.HalfExtent, Z: c.HalfExtent})
}

// Corner returns the corner of the cube that lies in the child at p.
func (c Cube) Corner(p svo.OctantPlacement) r3.Vector {
	return c.Center.Add(cornerDirection(p).Mul(c.HalfExtent))
}

// Contains reports whether point lies inside the cube, boundary included.
func (c Cube) Contains(point r3.Vector) bool {
	lo, hi := c.Min(), c.Max()
	return point.X >= lo.X && point.X <= hi.X &&
		point.Y >= lo.Y && point.Y <= hi.Y &&
		point.Z >= lo.Z && point.Z <= hi.Z
}

// Octant returns the placement of the child cube holding point. Points on a
// dividing plane go to the upper half.
func (c Cube) Octant(point r3.Vector) svo.OctantPlacement {
	var p svo.OctantPlacement
	if point.X >= c.Center.X {
		p |= 1 << 2
	}
	if point.Y >= c.Center.Y {
		p |= 1 << 1
	}
	if point.Z >= c.Center.Z {
		p |= 1
	}
	return p
}

func (c Cube) String() string {
	return fmt.Sprintf("Cube(center:(%g, %g, %g) half:%g)", c.Center.X, c.Center.Y, c.Center.Z, c.HalfExtent)
}

func cornerDirection(p svo.OctantPlacement) r3.Vector {
	xyz := p.XYZ()
	return r3.Vector{X: unit(xyz[0]), Y: unit(xyz[1]), Z: unit(xyz[2])}
}

func unit(bit uint8) float64 {
	if bit == 1 {
		return 1
	}
	return -1
}
