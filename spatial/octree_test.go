package spatial

import (
	"bytes"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aweris/svo"
)

const rootHalfExtent = 8

func rootCube() Cube { return NewCube(r3.Vector{}, rootHalfExtent) }

// gridCube computes the cube of id directly from its grid coordinates.
func gridCube(id svo.OctantID) Cube {
	size := float64(2*rootHalfExtent) / float64(uint32(1)<<id.Depth())
	xyz := id.XYZ()
	return Cube{
		Center: r3.Vector{
			X: -rootHalfExtent + (float64(xyz[0])+0.5)*size,
			Y: -rootHalfExtent + (float64(xyz[1])+0.5)*size,
			Z: -rootHalfExtent + (float64(xyz[2])+0.5)*size,
		},
		HalfExtent: size / 2,
	}
}

// newFullTree returns a spatial octree subdivided everywhere down to depth.
func newFullTree(t *testing.T, depth svo.Depth, opts ...Option) *Octree[int, Cube] {
	t.Helper()
	tree, err := New[int](rootCube(), opts...)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	_, err = tree.SubdivideIfFromRoot(func(d svo.Depth, id svo.OctantID, region Cube, _ svo.AccessorMut[int]) svo.Subdivision[int] {
		require.Equal(t, gridCube(id), region)
		if d >= depth {
			return svo.Subdivision[int]{Flow: svo.Skip}
		}
		return svo.SubdivideWith(func(p svo.OctantPlacement) int { return int(p) })
	})
	require.NoError(t, err)
	return tree
}

func TestRegionOf(t *testing.T) {
	tree := newFullTree(t, 3)

	for id := range tree.Storage().(*svo.HashedStorage[int]).All() {
		region, ok := RegionOf[int, Cube](tree.Storage(), id, rootCube())
		require.True(t, ok)
		require.Equal(t, gridCube(id), region, "octant %d", id)

		cached, ok := tree.RegionOf(id)
		require.True(t, ok)
		require.Equal(t, region, cached)

		cached, ok = tree.RegionOf(id)
		require.True(t, ok)
		require.Equal(t, region, cached)
	}

	_, ok := RegionOf[int, Cube](tree.Storage(), svo.OctantID(1<<15), rootCube())
	require.False(t, ok)
	_, ok = tree.RegionOf(svo.InvalidOctantID)
	require.False(t, ok)

	region, ok := tree.RegionOf(tree.RootID())
	require.True(t, ok)
	require.Equal(t, rootCube(), region)
}

func TestRegionOfAfterRemove(t *testing.T) {
	tree := newFullTree(t, 2)
	id := svo.RootOctantID.Child(svo.UpperTopRight).Child(svo.LowerTopLeft)

	_, ok := tree.RegionOf(id)
	require.True(t, ok)

	require.True(t, tree.Storage().RemoveOctant(id.Parent()))
	_, ok = tree.RegionOf(id)
	require.False(t, ok)
}

func TestSetRootRegion(t *testing.T) {
	tree := newFullTree(t, 1)
	id := svo.RootOctantID.Child(svo.UpperTopRight)

	region, _ := tree.RegionOf(id)
	require.Equal(t, 4.0, region.HalfExtent)

	tree.SetRootRegion(NewCube(r3.Vector{X: 100}, 2))
	region, _ = tree.RegionOf(id)
	require.Equal(t, NewCube(r3.Vector{X: 101, Y: 1, Z: 1}, 1), region)
}

func TestSpatialDepthFirstSearch(t *testing.T) {
	for _, size := range []int64{0, 64} {
		tree := newFullTree(t, 3, WithCacheSize(size))

		visited := 0
		_, err := tree.DepthFirstSearchFromRoot(func(_ svo.Depth, id svo.OctantID, region Cube) svo.SearchControlFlow {
			visited++
			require.Equal(t, gridCube(id), region, "octant %d", id)
			return svo.Continue
		})
		require.NoError(t, err)
		require.Equal(t, 1+8+64+512, visited)

		start := svo.RootOctantID.Child(svo.LowerTopRight)
		_, err = tree.DepthFirstSearchMut(start, func(_ svo.Depth, id svo.OctantID, region Cube, acc svo.AccessorMut[int]) svo.SearchControlFlow {
			require.Equal(t, gridCube(id), region)
			data, _ := acc.GetMut(id)
			*data = -1
			return svo.Continue
		})
		require.NoError(t, err)

		data, _ := tree.Storage().Get(start.Child(svo.UpperTopLeft))
		require.Equal(t, -1, data)
	}
}

func TestSpatialBreadthFirstSearch(t *testing.T) {
	tree := newFullTree(t, 3)

	var last svo.OctantID
	res, err := tree.BreadthFirstSearchFromRoot(func(depth svo.Depth, id svo.OctantID, region Cube) svo.SearchControlFlow {
		require.Equal(t, gridCube(id), region)
		last = id
		if depth >= 2 {
			return svo.Skip
		}
		return svo.Continue
	})
	require.NoError(t, err)
	require.Equal(t, last, res.ID)
	require.Equal(t, svo.Depth(2), last.Depth())

	res, err = tree.BreadthFirstSearchMutFromRoot(func(_ svo.Depth, id svo.OctantID, region Cube, _ svo.AccessorMut[int]) svo.SearchControlFlow {
		require.Equal(t, gridCube(id), region)
		if region.Contains(r3.Vector{X: 7, Y: 7, Z: 7}) && id.Depth() == 3 {
			return svo.Break
		}
		return svo.Continue
	})
	require.NoError(t, err)
	require.Equal(t, svo.Break, res.Flow)
	require.Equal(t, [3]uint16{7, 7, 7}, res.ID.XYZ())
}

func TestSpatialGuidedSearch(t *testing.T) {
	tree := newFullTree(t, 3)
	point := r3.Vector{X: -7.5, Y: 3.2, Z: 0.1}

	id, err := tree.GuidedSearchFromRoot(func(_ svo.Depth, id svo.OctantID, region Cube) (svo.OctantPlacement, bool) {
		require.Equal(t, gridCube(id), region)
		require.True(t, region.Contains(point))
		return region.Octant(point), true
	})
	require.NoError(t, err)
	require.Equal(t, svo.Depth(3), id.Depth())
	require.True(t, gridCube(id).Contains(point))

	id, err = tree.GuidedSearchMutFromRoot(func(depth svo.Depth, id svo.OctantID, region Cube, acc svo.AccessorMut[int]) (svo.OctantPlacement, bool) {
		require.Equal(t, gridCube(id), region)
		if depth >= 1 {
			return 0, false
		}
		return svo.LowerBottomLeft, true
	})
	require.NoError(t, err)
	require.Equal(t, svo.RootOctantID.Child(svo.LowerBottomLeft), id)
}

func TestLocate(t *testing.T) {
	tree := newFullTree(t, 2)

	point := r3.Vector{X: 5, Y: -1, Z: 3}
	id, cube, err := Locate(tree, point)
	require.NoError(t, err)
	require.Equal(t, svo.Depth(2), id.Depth())
	require.Equal(t, gridCube(id), cube)
	require.True(t, cube.Contains(point))

	_, _, err = Locate(tree, r3.Vector{X: 9})
	require.ErrorIs(t, err, ErrOutsideRegion)
}

func TestSpatialDrill(t *testing.T) {
	tree, err := New[string](rootCube())
	require.NoError(t, err)
	defer tree.Close()

	point := r3.Vector{X: 1, Y: 2, Z: 3}
	id, err := tree.DrillFromRoot(func(depth svo.Depth, id svo.OctantID, region Cube, _ svo.AccessorMut[string]) *svo.Assignment[string] {
		require.Equal(t, gridCube(id), region)
		if depth >= 5 {
			return nil
		}
		return svo.AssignNext(region.Octant(point), region.String())
	})
	require.NoError(t, err)
	require.Equal(t, svo.Depth(5), id.Depth())

	region, ok := tree.RegionOf(id)
	require.True(t, ok)
	require.True(t, region.Contains(point))
	require.Equal(t, 0.25, region.HalfExtent)

	located, cube, err := Locate(tree, point)
	require.NoError(t, err)
	require.Equal(t, id, located)
	require.Equal(t, region, cube)

	data, _ := tree.Storage().Get(id)
	parentRegion, _ := tree.RegionOf(id.Parent())
	require.Equal(t, parentRegion.String(), data)
}

func TestSpatialSubdivideIfSome(t *testing.T) {
	tree, err := New[int](rootCube(), WithCacheSize(0))
	require.NoError(t, err)

	sphereCenter := r3.Vector{X: 4, Y: 4, Z: 4}
	_, err = tree.SubdivideIfSomeFromRoot(func(depth svo.Depth, id svo.OctantID, region Cube, _ svo.AccessorMut[int]) svo.SparseSubdivision[int] {
		require.Equal(t, gridCube(id), region)
		if depth >= 3 {
			return svo.SparseSubdivision[int]{Flow: svo.Skip}
		}
		return svo.SubdivideSomeWith(func(p svo.OctantPlacement) (int, bool) {
			return int(depth) + 1, region.SubRegion(p).Contains(sphereCenter)
		})
	})
	require.NoError(t, err)

	// (4,4,4) is the center of the depth 1 cube: all eight of its children
	// touch it, and each of those has a single child in that corner.
	s := tree.Storage().(*svo.HashedStorage[int])
	require.Equal(t, 1+1+8+8, s.Len())
}

func TestSpatialInvalidStart(t *testing.T) {
	var buf bytes.Buffer
	tree, err := New[int](rootCube(), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)
	defer tree.Close()

	_, err = tree.DepthFirstSearch(svo.OctantID(9), func(svo.Depth, svo.OctantID, Cube) svo.SearchControlFlow {
		return svo.Continue
	})
	require.ErrorIs(t, err, svo.ErrInvalidOctantID)
	require.Contains(t, buf.String(), `"op":"depth_first_search"`)

	_, err = tree.Drill(svo.OctantID(9), func(svo.Depth, svo.OctantID, Cube, svo.AccessorMut[int]) *svo.Assignment[int] {
		return nil
	})
	require.ErrorIs(t, err, svo.ErrInvalidOctantID)

	_, err = tree.SubdivideIf(svo.OctantID(9), func(svo.Depth, svo.OctantID, Cube, svo.AccessorMut[int]) svo.Subdivision[int] {
		return svo.Subdivision[int]{}
	})
	require.ErrorIs(t, err, svo.ErrInvalidOctantID)
}
