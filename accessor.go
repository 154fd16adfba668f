package svo

// Accessor is a read-only view of a storage. Traversal callbacks receive
// views instead of the storage so they can inspect the tree but cannot insert
// or remove octants.
type Accessor[D any] struct {
	s Storage[D]
}

var _ Storage[struct{}] = Accessor[struct{}]{}

// NewAccessor returns a read-only view of s.
func NewAccessor[D any](s Storage[D]) Accessor[D] {
	return Accessor[D]{s: s}
}

func (a Accessor[D]) RootID() OctantID { return a.s.RootID() }

func (a Accessor[D]) MaxDepth() Depth { return a.s.MaxDepth() }

func (a Accessor[D]) OctantDepth(id OctantID) (Depth, bool) { return a.s.OctantDepth(id) }

func (a Accessor[D]) Get(id OctantID) (D, bool) { return a.s.Get(id) }

func (a Accessor[D]) ExistingChild(parent OctantID, p OctantPlacement) (OctantID, error) {
	return a.s.ExistingChild(parent, p)
}

func (a Accessor[D]) Ancestors(id OctantID) (*AncestorIter, bool) { return a.s.Ancestors(id) }

func (a Accessor[D]) Parent(id OctantID) (OctantID, bool) { return a.s.Parent(id) }

func (a Accessor[D]) ExistingChildren(parent OctantID) ([OctantCount]OctantID, error) {
	return ExistingChildren(a.s, parent)
}

func (a Accessor[D]) WhichChildOf(parent, child OctantID) (OctantPlacement, error) {
	return WhichChildOf(a.s, parent, child)
}

// AccessorMut is Accessor plus in-place mutation of existing payloads.
type AccessorMut[D any] struct {
	Accessor[D]
	s ModifiableStorage[D]
}

// NewAccessorMut returns a view of s that can change payloads in place.
func NewAccessorMut[D any](s ModifiableStorage[D]) AccessorMut[D] {
	return AccessorMut[D]{Accessor: NewAccessor[D](s), s: s}
}

// GetMut returns a pointer to the payload of an existing octant.
func (a AccessorMut[D]) GetMut(id OctantID) (*D, bool) { return a.s.GetMut(id) }
