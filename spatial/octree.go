package spatial

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/rs/zerolog"

	"github.com/aweris/svo"
	"github.com/aweris/svo/internal/regioncache"
)

var ErrOutsideRegion = errors.New("spatial: point outside root region")

// Callbacks mirror the svo engine callbacks with the region of the current
// octant added.
type (
	GuideFunc[R any]                func(depth svo.Depth, id svo.OctantID, region R) (svo.OctantPlacement, bool)
	GuideMutFunc[D any, R any]      func(depth svo.Depth, id svo.OctantID, region R, acc svo.AccessorMut[D]) (svo.OctantPlacement, bool)
	VisitFunc[R any]                func(depth svo.Depth, id svo.OctantID, region R) svo.SearchControlFlow
	VisitMutFunc[D any, R any]      func(depth svo.Depth, id svo.OctantID, region R, acc svo.AccessorMut[D]) svo.SearchControlFlow
	DrillFunc[D any, R any]         func(depth svo.Depth, id svo.OctantID, region R, acc svo.AccessorMut[D]) *svo.Assignment[D]
	SubdivideFunc[D any, R any]     func(depth svo.Depth, id svo.OctantID, region R, acc svo.AccessorMut[D]) svo.Subdivision[D]
	SubdivideSomeFunc[D any, R any] func(depth svo.Depth, id svo.OctantID, region R, acc svo.AccessorMut[D]) svo.SparseSubdivision[D]
)

// Octree is an svo.Octree whose octants each cover a region derived from a
// root region.
type Octree[D any, R Region[R]] struct {
	tree  *svo.Octree[D]
	root  R
	cache regioncache.Cache[R]
	log   zerolog.Logger
}

// New returns a spatial octree over a hashed storage with a zero-value root
// payload covering root.
func New[D any, R Region[R]](root R, opts ...Option) (*Octree[D, R], error) {
	return NewWithStorage[D](svo.NewHashedStorage[D](), root, opts...)
}

// NewWithStorage returns a spatial octree over s covering root.
func NewWithStorage[D any, R Region[R]](s svo.ModifiableStorage[D], root R, opts ...Option) (*Octree[D, R], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var cache regioncache.Cache[R] = regioncache.Nop[R]{}
	if o.CacheSize > 0 {
		c, err := regioncache.NewRistrettoCache[R](o.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create region cache: %w", err)
		}
		cache = c
	}

	return &Octree[D, R]{
		tree:  svo.NewWithStorage(s, svo.WithLogger(o.Logger)),
		root:  root,
		cache: cache,
		log:   o.Logger,
	}, nil
}

// Tree returns the underlying octree.
func (t *Octree[D, R]) Tree() *svo.Octree[D] { return t.tree }

func (t *Octree[D, R]) Storage() svo.ModifiableStorage[D] { return t.tree.Storage() }

func (t *Octree[D, R]) RootID() svo.OctantID { return t.tree.RootID() }

func (t *Octree[D, R]) RootRegion() R { return t.root }

// SetRootRegion moves the whole tree to a new root region.
func (t *Octree[D, R]) SetRootRegion(root R) {
	t.root = root
	t.cache.Clear()
}

// RegionOf returns the region of an existing octant.
func (t *Octree[D, R]) RegionOf(id svo.OctantID) (R, bool) {
	s := t.tree.Storage()
	if _, ok := s.OctantDepth(id); !ok {
		var zero R
		return zero, false
	}
	if region, ok := t.cache.Get(uint64(id)); ok {
		return region, true
	}

	region, ok := RegionOf[D, R](s, id, t.root)
	if ok {
		t.cache.Add(uint64(id), region)
	}
	return region, ok
}

// Close releases the region cache.
func (t *Octree[D, R]) Close() {
	t.cache.Close()
}

func (t *Octree[D, R]) startRegion(op string, start svo.OctantID) (R, svo.Depth, error) {
	region, ok := t.RegionOf(start)
	if !ok {
		t.log.Debug().Err(svo.ErrInvalidOctantID).Str("op", op).Uint64("start", uint64(start)).Msg("spatial operation failed")
		return region, 0, svo.ErrInvalidOctantID
	}
	depth, _ := t.tree.Storage().OctantDepth(start)
	return region, depth, nil
}

func (t *Octree[D, R]) GuidedSearch(start svo.OctantID, guide GuideFunc[R]) (svo.OctantID, error) {
	region, _, err := t.startRegion("guided_search", start)
	if err != nil {
		return svo.InvalidOctantID, err
	}
	step := stepper[R]{region: region}
	return t.tree.GuidedSearch(start, func(depth svo.Depth, id svo.OctantID) (svo.OctantPlacement, bool) {
		p, ok := guide(depth, id, step.current())
		step.next(p, ok)
		return p, ok
	})
}

func (t *Octree[D, R]) GuidedSearchFromRoot(guide GuideFunc[R]) (svo.OctantID, error) {
	return t.GuidedSearch(t.RootID(), guide)
}

func (t *Octree[D, R]) GuidedSearchMut(start svo.OctantID, guide GuideMutFunc[D, R]) (svo.OctantID, error) {
	region, _, err := t.startRegion("guided_search_mut", start)
	if err != nil {
		return svo.InvalidOctantID, err
	}
	step := stepper[R]{region: region}
	return t.tree.GuidedSearchMut(start, func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[D]) (svo.OctantPlacement, bool) {
		p, ok := guide(depth, id, step.current(), acc)
		step.next(p, ok)
		return p, ok
	})
}

func (t *Octree[D, R]) GuidedSearchMutFromRoot(guide GuideMutFunc[D, R]) (svo.OctantID, error) {
	return t.GuidedSearchMut(t.RootID(), guide)
}

func (t *Octree[D, R]) DepthFirstSearch(start svo.OctantID, visit VisitFunc[R]) (svo.SearchResult, error) {
	region, depth, err := t.startRegion("depth_first_search", start)
	if err != nil {
		return svo.SearchResult{}, err
	}
	tr := newPathTracker[D, R](t.tree.Storage(), start, depth, region)
	return t.tree.DepthFirstSearch(start, func(depth svo.Depth, id svo.OctantID) svo.SearchControlFlow {
		return visit(depth, id, tr.enter(depth, id))
	})
}

func (t *Octree[D, R]) DepthFirstSearchFromRoot(visit VisitFunc[R]) (svo.SearchResult, error) {
	return t.DepthFirstSearch(t.RootID(), visit)
}

func (t *Octree[D, R]) DepthFirstSearchMut(start svo.OctantID, visit VisitMutFunc[D, R]) (svo.SearchResult, error) {
	region, depth, err := t.startRegion("depth_first_search_mut", start)
	if err != nil {
		return svo.SearchResult{}, err
	}
	tr := newPathTracker[D, R](t.tree.Storage(), start, depth, region)
	return t.tree.DepthFirstSearchMut(start, func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[D]) svo.SearchControlFlow {
		return visit(depth, id, tr.enter(depth, id), acc)
	})
}

func (t *Octree[D, R]) DepthFirstSearchMutFromRoot(visit VisitMutFunc[D, R]) (svo.SearchResult, error) {
	return t.DepthFirstSearchMut(t.RootID(), visit)
}

func (t *Octree[D, R]) BreadthFirstSearch(start svo.OctantID, visit VisitFunc[R]) (svo.SearchResult, error) {
	region, _, err := t.startRegion("breadth_first_search", start)
	if err != nil {
		return svo.SearchResult{}, err
	}
	tr := newLevelTracker[D, R](t.tree.Storage(), start, region)
	return t.tree.BreadthFirstSearch(start, func(depth svo.Depth, id svo.OctantID) svo.SearchControlFlow {
		return visit(depth, id, tr.enter(depth, id))
	})
}

func (t *Octree[D, R]) BreadthFirstSearchFromRoot(visit VisitFunc[R]) (svo.SearchResult, error) {
	return t.BreadthFirstSearch(t.RootID(), visit)
}

func (t *Octree[D, R]) BreadthFirstSearchMut(start svo.OctantID, visit VisitMutFunc[D, R]) (svo.SearchResult, error) {
	region, _, err := t.startRegion("breadth_first_search_mut", start)
	if err != nil {
		return svo.SearchResult{}, err
	}
	tr := newLevelTracker[D, R](t.tree.Storage(), start, region)
	return t.tree.BreadthFirstSearchMut(start, func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[D]) svo.SearchControlFlow {
		return visit(depth, id, tr.enter(depth, id), acc)
	})
}

func (t *Octree[D, R]) BreadthFirstSearchMutFromRoot(visit VisitMutFunc[D, R]) (svo.SearchResult, error) {
	return t.BreadthFirstSearchMut(t.RootID(), visit)
}

func (t *Octree[D, R]) Drill(start svo.OctantID, fn DrillFunc[D, R]) (svo.OctantID, error) {
	region, _, err := t.startRegion("drill", start)
	if err != nil {
		return svo.InvalidOctantID, err
	}
	step := stepper[R]{region: region}
	return t.tree.Drill(start, func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[D]) *svo.Assignment[D] {
		a := fn(depth, id, step.current(), acc)
		if a == nil {
			step.next(0, false)
			return nil
		}
		step.next(a.Placement, true)
		return a
	})
}

func (t *Octree[D, R]) DrillFromRoot(fn DrillFunc[D, R]) (svo.OctantID, error) {
	return t.Drill(t.RootID(), fn)
}

func (t *Octree[D, R]) SubdivideIf(start svo.OctantID, fn SubdivideFunc[D, R]) (svo.SearchResult, error) {
	region, _, err := t.startRegion("subdivide_if", start)
	if err != nil {
		return svo.SearchResult{}, err
	}
	tr := newLevelTracker[D, R](t.tree.Storage(), start, region)
	return t.tree.SubdivideIf(start, func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[D]) svo.Subdivision[D] {
		return fn(depth, id, tr.enter(depth, id), acc)
	})
}

func (t *Octree[D, R]) SubdivideIfFromRoot(fn SubdivideFunc[D, R]) (svo.SearchResult, error) {
	return t.SubdivideIf(t.RootID(), fn)
}

func (t *Octree[D, R]) SubdivideIfSome(start svo.OctantID, fn SubdivideSomeFunc[D, R]) (svo.SearchResult, error) {
	region, _, err := t.startRegion("subdivide_if_some", start)
	if err != nil {
		return svo.SearchResult{}, err
	}
	tr := newLevelTracker[D, R](t.tree.Storage(), start, region)
	return t.tree.SubdivideIfSome(start, func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[D]) svo.SparseSubdivision[D] {
		return fn(depth, id, tr.enter(depth, id), acc)
	})
}

func (t *Octree[D, R]) SubdivideIfSomeFromRoot(fn SubdivideSomeFunc[D, R]) (svo.SearchResult, error) {
	return t.SubdivideIfSome(t.RootID(), fn)
}

// stepper follows a single descending path, applying the placement chosen
// at the previous level before the next callback.
type stepper[R Region[R]] struct {
	region  R
	pending bool
	p       svo.OctantPlacement
}

func (s *stepper[R]) current() R {
	if s.pending {
		s.region = s.region.SubRegion(s.p)
		s.pending = false
	}
	return s.region
}

func (s *stepper[R]) next(p svo.OctantPlacement, ok bool) {
	s.p, s.pending = p, ok
}

// Locate returns the deepest existing octant whose cube holds point, and
// that cube.
func Locate[D any](t *Octree[D, Cube], point r3.Vector) (svo.OctantID, Cube, error) {
	if !t.RootRegion().Contains(point) {
		return svo.InvalidOctantID, Cube{}, ErrOutsideRegion
	}

	maxDepth := t.Storage().MaxDepth()
	var found Cube
	id, err := t.GuidedSearchFromRoot(func(depth svo.Depth, _ svo.OctantID, region Cube) (svo.OctantPlacement, bool) {
		found = region
		if depth >= maxDepth {
			return 0, false
		}
		return region.Octant(point), true
	})
	if err != nil {
		return svo.InvalidOctantID, Cube{}, err
	}
	return id, found, nil
}
