package svo

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromXYZRoundTrip(t *testing.T) {
	for depth := Depth(0); depth <= 4; depth++ {
		size := uint16(1) << depth
		for x := uint16(0); x < size; x++ {
			for y := uint16(0); y < size; y++ {
				for z := uint16(0); z < size; z++ {
					id, err := FromXYZ(x, y, z, depth)
					require.NoError(t, err)
					require.Equal(t, [3]uint16{x, y, z}, id.XYZ())
					require.Equal(t, depth, id.Depth())
				}
			}
		}
	}
}

func TestFromXYZRoundTripMaxDepthDiagonal(t *testing.T) {
	maxAxis := uint16(1<<MaxDepth - 1)
	for axis := uint32(0); axis <= uint32(maxAxis); axis++ {
		a := uint16(axis)
		id, err := FromXYZArray([3]uint16{a, a, a}, MaxDepth)
		require.NoError(t, err)
		require.Equal(t, [3]uint16{a, a, a}, id.XYZ())
		require.Equal(t, MaxDepth, id.Depth())
	}
}

func TestFromXYZKnownCodes(t *testing.T) {
	tests := []struct {
		xyz   [3]uint16
		depth Depth
		want  OctantID
	}{
		{[3]uint16{0, 0, 0}, 0, RootOctantID},
		{[3]uint16{0, 0, 0}, 1, 8},
		{[3]uint16{0, 0, 1}, 1, 9},
		{[3]uint16{1, 0, 0}, 1, 12},
		{[3]uint16{1, 1, 1}, 1, 15},
		{[3]uint16{0, 1, 0}, 2, 66},
		{[3]uint16{0, 1, 2}, 2, 74},
	}

	for _, tt := range tests {
		id, err := FromXYZArray(tt.xyz, tt.depth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, id, "xyz %v depth %d", tt.xyz, tt.depth)
	}
}

func TestFromXYZValidation(t *testing.T) {
	t.Run("axis above max", func(t *testing.T) {
		_, err := FromXYZ(4, 0, 3, 2)
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.True(t, verr.AboveLimit(AxisX))
		require.False(t, verr.AboveLimit(AxisZ))
		require.False(t, verr.BelowLimit(AxisX))
		require.Equal(t, int32(3), verr.Max)
	})

	t.Run("negative axis", func(t *testing.T) {
		_, err := ValidateXYZ([3]int32{0, -1, 0}, 3)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.True(t, verr.BelowLimit(AxisY))
		require.False(t, verr.AboveLimit(AxisY))
		require.Contains(t, verr.Error(), "y: -1")
	})

	t.Run("depth over max", func(t *testing.T) {
		_, err := FromXYZ(0, 0, 0, MaxDepth+1)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.True(t, verr.DepthExceeded())
	})
}

func TestParentChildren(t *testing.T) {
	var walk func(id OctantID, depth Depth)
	walk = func(id OctantID, depth Depth) {
		require.Equal(t, depth, id.Depth())
		if depth == 4 {
			return
		}
		for i, child := range id.Children() {
			require.Equal(t, id, child.Parent())
			require.Equal(t, depth+1, child.Depth())
			require.Equal(t, id.Child(OctantsOrdered[i]), child)

			p, ok := id.PlacementOf(child)
			require.True(t, ok)
			require.Equal(t, OctantsOrdered[i], p)
			walk(child, depth+1)
		}
	}
	walk(RootOctantID, 0)
}

func TestParentOfRootAndInvalid(t *testing.T) {
	require.Equal(t, InvalidOctantID, RootOctantID.Parent())
	require.Equal(t, InvalidOctantID, InvalidOctantID.Parent())

	_, ok := RootOctantID.Placement()
	require.False(t, ok)

	_, ok = OctantID(74).PlacementOf(OctantID(9))
	require.False(t, ok)
	_, ok = InvalidOctantID.PlacementOf(OctantID(5))
	require.False(t, ok)
}

func TestAncestors(t *testing.T) {
	it := OctantID(4797).Ancestors()
	require.Equal(t, []OctantID{599, 74, 9, 1}, slices.Collect(it.All()))

	_, ok := it.Next()
	require.False(t, ok, "iterator is single pass")

	_, ok = RootOctantID.Ancestors().Next()
	require.False(t, ok)
}

func TestNeighborInsideGrid(t *testing.T) {
	id, err := FromXYZ(1<<15, 1<<15, 1<<15, MaxDepth)
	require.NoError(t, err)

	for _, n := range id.AllNeighbors() {
		require.NoError(t, n.Err, "direction %s", n.Direction)

		off := n.Direction.Offset()
		xyz := n.ID.XYZ()
		require.Equal(t, int32(1<<15)+int32(off[0]), int32(xyz[0]))
		require.Equal(t, int32(1<<15)+int32(off[1]), int32(xyz[1]))
		require.Equal(t, int32(1<<15)+int32(off[2]), int32(xyz[2]))
		require.Equal(t, MaxDepth, n.ID.Depth())
	}
}

func TestNeighborBounds(t *testing.T) {
	t.Run("lower corner", func(t *testing.T) {
		id, err := FromXYZ(0, 0, 0, 3)
		require.NoError(t, err)

		_, err = id.Neighbor(West)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.True(t, verr.BelowLimit(AxisX))

		_, err = id.Neighbor(DownSouth)
		require.True(t, errors.As(err, &verr))
		require.True(t, verr.BelowLimit(AxisY))
		require.True(t, verr.BelowLimit(AxisZ))
		require.False(t, verr.Invalid[AxisX])

		east, err := id.Neighbor(East)
		require.NoError(t, err)
		require.Equal(t, [3]uint16{1, 0, 0}, east.XYZ())
	})

	t.Run("upper corner", func(t *testing.T) {
		id, err := FromXYZ(7, 7, 7, 3)
		require.NoError(t, err)
		require.Equal(t, uint16(7), id.MaxAxis())

		_, err = id.Neighbor(UpNorthEast)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		for _, a := range []Axis{AxisX, AxisY, AxisZ} {
			require.True(t, verr.AboveLimit(a))
		}
	})

	t.Run("root has no neighbours", func(t *testing.T) {
		for _, n := range RootOctantID.AllNeighbors() {
			require.ErrorIs(t, n.Err, ErrValidation)
		}
	})
}

func TestNeighborsMatchSiblingTables(t *testing.T) {
	for _, xyz := range [][3]uint16{{0, 0, 0}, {1<<MaxDepth - 1, 1<<MaxDepth - 1, 1<<MaxDepth - 1}} {
		id, err := FromXYZArray(xyz, MaxDepth)
		require.NoError(t, err)
		parent := id.Parent()
		placement, ok := parent.PlacementOf(id)
		require.True(t, ok)

		found := 0
		for _, n := range id.AllNeighbors() {
			if n.Err != nil {
				continue
			}
			np, ok := parent.PlacementOf(n.ID)
			require.True(t, ok, "corner neighbours share the parent")
			require.Contains(t, AllNeighborsOf(placement), Adjacency{Direction: n.Direction, Placement: np})
			found++
		}
		require.Equal(t, AllNeighborCount, found)
	}
}

func TestBatchNeighborOrder(t *testing.T) {
	id, err := FromXYZ(2, 2, 2, 2)
	require.NoError(t, err)

	facing := id.FacingNeighbors()
	for i, n := range facing {
		require.Equal(t, FacingDirections[i], n.Direction)
	}
	diagonal := id.DiagonalNeighbors()
	for i, n := range diagonal {
		require.Equal(t, DiagonalDirections[i], n.Direction)
	}
}

func TestGridSize(t *testing.T) {
	size, ok := GridSize(MaxDepth)
	require.True(t, ok)
	require.Equal(t, uint32(1<<16), size)

	_, ok = GridSize(MaxDepth + 1)
	require.False(t, ok)
}

func TestOctantIDString(t *testing.T) {
	require.Equal(t, "OctantID(none)", InvalidOctantID.String())
	require.Equal(t, "OctantID(root)", RootOctantID.String())
	require.Equal(t, "OctantID(74)[x:0 y:1 z:2] parent(9) depth(2)", OctantID(74).String())
}
