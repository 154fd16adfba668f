package svo

import (
	"iter"

	"github.com/rs/zerolog"
)

// Octree pairs a storage backend with the traversal engine.
type Octree[D any] struct {
	storage ModifiableStorage[D]
	log     zerolog.Logger
}

// New returns an octree over a hashed storage with a zero-value root.
func New[D any](opts ...Option) *Octree[D] {
	return NewWithStorage[D](NewHashedStorage[D](), opts...)
}

// NewWithRoot returns an octree over a hashed storage seeded with root.
func NewWithRoot[D any](root D, opts ...Option) *Octree[D] {
	return NewWithStorage[D](NewHashedStorageWithRoot(root), opts...)
}

// NewWithStorage returns an octree over s.
func NewWithStorage[D any](s ModifiableStorage[D], opts ...Option) *Octree[D] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Octree[D]{storage: s, log: o.Logger}
}

// Storage returns the backend the octree operates on.
func (t *Octree[D]) Storage() ModifiableStorage[D] { return t.storage }

func (t *Octree[D]) RootID() OctantID { return t.storage.RootID() }

// Logger returns the logger the octree reports failures to.
func (t *Octree[D]) Logger() zerolog.Logger { return t.log }

func (t *Octree[D]) failed(op string, start OctantID, err error) {
	t.log.Debug().Err(err).Str("op", op).Uint64("start", uint64(start)).Msg("octree operation failed")
}

func (t *Octree[D]) GuidedSearch(start OctantID, guide GuideFunc) (OctantID, error) {
	id, err := GuidedSearch[D](t.storage, start, guide)
	if err != nil {
		t.failed("guided_search", start, err)
	}
	return id, err
}

func (t *Octree[D]) GuidedSearchFromRoot(guide GuideFunc) (OctantID, error) {
	return t.GuidedSearch(t.RootID(), guide)
}

func (t *Octree[D]) GuidedSearchMut(start OctantID, guide GuideMutFunc[D]) (OctantID, error) {
	id, err := GuidedSearchMut(t.storage, start, guide)
	if err != nil {
		t.failed("guided_search_mut", start, err)
	}
	return id, err
}

func (t *Octree[D]) GuidedSearchMutFromRoot(guide GuideMutFunc[D]) (OctantID, error) {
	return t.GuidedSearchMut(t.RootID(), guide)
}

func (t *Octree[D]) DepthFirstSearch(start OctantID, visit VisitFunc) (SearchResult, error) {
	res, err := DepthFirstSearch[D](t.storage, start, visit)
	if err != nil {
		t.failed("depth_first_search", start, err)
	}
	return res, err
}

func (t *Octree[D]) DepthFirstSearchFromRoot(visit VisitFunc) (SearchResult, error) {
	return t.DepthFirstSearch(t.RootID(), visit)
}

func (t *Octree[D]) DepthFirstSearchMut(start OctantID, visit VisitMutFunc[D]) (SearchResult, error) {
	res, err := DepthFirstSearchMut(t.storage, start, visit)
	if err != nil {
		t.failed("depth_first_search_mut", start, err)
	}
	return res, err
}

func (t *Octree[D]) DepthFirstSearchMutFromRoot(visit VisitMutFunc[D]) (SearchResult, error) {
	return t.DepthFirstSearchMut(t.RootID(), visit)
}

func (t *Octree[D]) BreadthFirstSearch(start OctantID, visit VisitFunc) (SearchResult, error) {
	res, err := BreadthFirstSearch[D](t.storage, start, visit)
	if err != nil {
		t.failed("breadth_first_search", start, err)
	}
	return res, err
}

func (t *Octree[D]) BreadthFirstSearchFromRoot(visit VisitFunc) (SearchResult, error) {
	return t.BreadthFirstSearch(t.RootID(), visit)
}

func (t *Octree[D]) BreadthFirstSearchMut(start OctantID, visit VisitMutFunc[D]) (SearchResult, error) {
	res, err := BreadthFirstSearchMut(t.storage, start, visit)
	if err != nil {
		t.failed("breadth_first_search_mut", start, err)
	}
	return res, err
}

func (t *Octree[D]) BreadthFirstSearchMutFromRoot(visit VisitMutFunc[D]) (SearchResult, error) {
	return t.BreadthFirstSearchMut(t.RootID(), visit)
}

// BreadthFirst yields every octant from the root in level order.
func (t *Octree[D]) BreadthFirst() iter.Seq2[Depth, OctantID] {
	return BreadthFirst[D](t.storage, t.RootID())
}

func (t *Octree[D]) Drill(start OctantID, fn DrillFunc[D]) (OctantID, error) {
	id, err := Drill(t.storage, start, fn)
	if err != nil {
		t.failed("drill", start, err)
	}
	return id, err
}

func (t *Octree[D]) DrillFromRoot(fn DrillFunc[D]) (OctantID, error) {
	return t.Drill(t.RootID(), fn)
}

func (t *Octree[D]) SubdivideIf(start OctantID, fn SubdivideFunc[D]) (SearchResult, error) {
	res, err := SubdivideIf(t.storage, start, fn)
	if err != nil {
		t.failed("subdivide_if", start, err)
	}
	return res, err
}

func (t *Octree[D]) SubdivideIfFromRoot(fn SubdivideFunc[D]) (SearchResult, error) {
	return t.SubdivideIf(t.RootID(), fn)
}

func (t *Octree[D]) SubdivideIfSome(start OctantID, fn SubdivideSomeFunc[D]) (SearchResult, error) {
	res, err := SubdivideIfSome(t.storage, start, fn)
	if err != nil {
		t.failed("subdivide_if_some", start, err)
	}
	return res, err
}

func (t *Octree[D]) SubdivideIfSomeFromRoot(fn SubdivideSomeFunc[D]) (SearchResult, error) {
	return t.SubdivideIfSome(t.RootID(), fn)
}
