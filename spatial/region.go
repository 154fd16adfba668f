package spatial

import (
	"fmt"

	"github.com/aweris/svo"
)

// Region is a volume that splits into one sub-region per placement.
type Region[R any] interface {
	SubRegion(p svo.OctantPlacement) R
}

// SubRegions returns the eight sub-regions of r in svo.OctantsOrdered.
func SubRegions[R Region[R]](r R) [svo.OctantCount]R {
	var out [svo.OctantCount]R
	for i, p := range svo.OctantsOrdered {
		out[i] = r.SubRegion(p)
	}
	return out
}

// RegionOf returns the region of an existing octant, derived from root
// through the ancestor chain. It returns false if id does not exist.
func RegionOf[D any, R Region[R]](s svo.Storage[D], id svo.OctantID, root R) (R, bool) {
	var zero R
	if _, ok := s.OctantDepth(id); !ok {
		return zero, false
	}
	ancestors, ok := s.Ancestors(id)
	if !ok {
		return zero, false
	}

	path := []svo.OctantID{id}
	for a := range ancestors.All() {
		path = append(path, a)
	}
	if path[len(path)-1] != s.RootID() {
		brokenLink(path[len(path)-1], s.RootID(), svo.ErrInvalidOctantID)
	}

	region := root
	for i := len(path) - 1; i > 0; i-- {
		region = region.SubRegion(placementOf(s, path[i], path[i-1]))
	}
	return region, true
}

func placementOf[D any](s svo.Storage[D], parent, child svo.OctantID) svo.OctantPlacement {
	p, err := svo.WhichChildOf(s, parent, child)
	if err != nil {
		brokenLink(parent, child, err)
	}
	return p
}

func brokenLink(parent, child svo.OctantID, err error) {
	panic(fmt.Sprintf("spatial: broken link between octants %d and %d: %v", uint64(parent), uint64(child), err))
}

// tracker hands out the region of each octant a traversal visits. Octants
// are entered parent first.
type tracker[R any] interface {
	enter(depth svo.Depth, id svo.OctantID) R
}

type pathEntry[R any] struct {
	id     svo.OctantID
	region R
}

// pathTracker keeps only the current root-to-node path, which is all a
// pre-order walk needs.
type pathTracker[D any, R Region[R]] struct {
	s     svo.Storage[D]
	start svo.Depth
	path  []pathEntry[R]
}

func newPathTracker[D any, R Region[R]](s svo.Storage[D], start svo.OctantID, depth svo.Depth, region R) *pathTracker[D, R] {
	return &pathTracker[D, R]{
		s:     s,
		start: depth,
		path:  []pathEntry[R]{{id: start, region: region}},
	}
}

func (t *pathTracker[D, R]) enter(depth svo.Depth, id svo.OctantID) R {
	i := int(depth - t.start)
	if i == 0 {
		return t.path[0].region
	}
	t.path = t.path[:i]
	parent := t.path[i-1]
	region := parent.region.SubRegion(placementOf(t.s, parent.id, id))
	t.path = append(t.path, pathEntry[R]{id: id, region: region})
	return region
}

// levelTracker remembers the region of every entered octant so level-order
// walks can find the parent of any queued child.
type levelTracker[D any, R Region[R]] struct {
	s       svo.Storage[D]
	regions map[svo.OctantID]R
}

func newLevelTracker[D any, R Region[R]](s svo.Storage[D], start svo.OctantID, region R) *levelTracker[D, R] {
	return &levelTracker[D, R]{
		s:       s,
		regions: map[svo.OctantID]R{start: region},
	}
}

func (t *levelTracker[D, R]) enter(_ svo.Depth, id svo.OctantID) R {
	if region, ok := t.regions[id]; ok {
		return region
	}
	parent, ok := t.s.Parent(id)
	if !ok {
		brokenLink(svo.InvalidOctantID, id, svo.ErrInvalidOctantID)
	}
	parentRegion, ok := t.regions[parent]
	if !ok {
		brokenLink(parent, id, svo.ErrInvalidOctantID)
	}
	region := parentRegion.SubRegion(placementOf(t.s, parent, id))
	t.regions[id] = region
	return region
}
