package svo

import (
	"iter"
	"maps"
	"slices"
)

// HashedStorage keeps payloads in a map keyed by octant id. It is not safe
// for concurrent use.
type HashedStorage[D any] struct {
	octants map[OctantID]*D
}

var _ ModifiableStorage[struct{}] = (*HashedStorage[struct{}])(nil)

// NewHashedStorage returns a storage holding a zero-value root.
func NewHashedStorage[D any]() *HashedStorage[D] {
	var zero D
	return NewHashedStorageWithRoot(zero)
}

// NewHashedStorageWithRoot returns a storage holding root as the root payload.
func NewHashedStorageWithRoot[D any](root D) *HashedStorage[D] {
	return &HashedStorage[D]{octants: map[OctantID]*D{RootOctantID: &root}}
}

// NewEmptyHashedStorage returns a storage without a root.
func NewEmptyHashedStorage[D any]() *HashedStorage[D] {
	return &HashedStorage[D]{octants: make(map[OctantID]*D)}
}

func (h *HashedStorage[D]) RootID() OctantID { return RootOctantID }

func (h *HashedStorage[D]) MaxDepth() Depth { return MaxDepth }

// Len returns the number of existing octants.
func (h *HashedStorage[D]) Len() int { return len(h.octants) }

// All yields every octant in unspecified order.
func (h *HashedStorage[D]) All() iter.Seq2[OctantID, *D] {
	return func(yield func(OctantID, *D) bool) {
		for id, data := range h.octants {
			if !yield(id, data) {
				return
			}
		}
	}
}

func (h *HashedStorage[D]) exists(id OctantID) bool {
	_, ok := h.octants[id]
	return ok
}

func (h *HashedStorage[D]) OctantDepth(id OctantID) (Depth, bool) {
	if !h.exists(id) {
		return 0, false
	}
	return id.Depth(), true
}

func (h *HashedStorage[D]) Get(id OctantID) (D, bool) {
	data, ok := h.octants[id]
	if !ok {
		var zero D
		return zero, false
	}
	return *data, true
}

func (h *HashedStorage[D]) GetMut(id OctantID) (*D, bool) {
	data, ok := h.octants[id]
	return data, ok
}

func (h *HashedStorage[D]) ExistingChild(parent OctantID, p OctantPlacement) (OctantID, error) {
	if parent.Depth() >= MaxDepth {
		return InvalidOctantID, &OverMaxDepthError{MaxDepth: MaxDepth}
	}
	if !parent.IsValid() {
		return InvalidOctantID, ErrInvalidOctantID
	}

	child := parent.Child(p)
	switch {
	case h.exists(child):
		return child, nil
	case h.exists(parent):
		return InvalidOctantID, &ChildNotFoundError{Placement: p, Known: true}
	default:
		return InvalidOctantID, ErrInvalidOctantID
	}
}

func (h *HashedStorage[D]) Ancestors(id OctantID) (*AncestorIter, bool) {
	if !h.exists(id) {
		return nil, false
	}
	return id.Ancestors(), true
}

func (h *HashedStorage[D]) Parent(id OctantID) (OctantID, bool) {
	if id == RootOctantID || !h.exists(id) {
		return InvalidOctantID, false
	}
	return id.Parent(), true
}

// WhichChildOf answers from the id algebra instead of probing all eight
// placements.
func (h *HashedStorage[D]) WhichChildOf(parent, child OctantID) (OctantPlacement, error) {
	if !parent.IsValid() || !h.exists(parent) {
		return 0, ErrInvalidOctantID
	}
	p, ok := parent.PlacementOf(child)
	if !ok || !h.exists(child) {
		return 0, &ChildNotFoundError{}
	}
	return p, nil
}

func (h *HashedStorage[D]) InsertRoot(data D) *D {
	prev := h.octants[RootOctantID]
	h.octants[RootOctantID] = &data
	return prev
}

func (h *HashedStorage[D]) InsertOctant(parent OctantID, p OctantPlacement, data D) (OctantID, *D, error) {
	if parent.Depth() >= MaxDepth {
		return InvalidOctantID, nil, &OverMaxDepthError{MaxDepth: MaxDepth}
	}
	if !parent.IsValid() || !h.exists(parent) {
		return InvalidOctantID, nil, ErrInvalidOctantID
	}

	child := parent.Child(p)
	prev := h.octants[child]
	h.octants[child] = &data
	return child, prev, nil
}

func (h *HashedStorage[D]) RemoveOctant(id OctantID) bool {
	if !h.exists(id) {
		return false
	}
	if id == RootOctantID {
		clear(h.octants)
		return true
	}

	delete(h.octants, id)
	for _, child := range id.Children() {
		h.RemoveOctant(child)
	}
	return true
}

func (h *HashedStorage[D]) RemoveOctantAndFill(id OctantID, buf *[]Entry[D]) bool {
	data, ok := h.octants[id]
	if !ok {
		return false
	}
	if id == RootOctantID {
		*buf = slices.Grow(*buf, len(h.octants))
		for _, octant := range slices.Sorted(maps.Keys(h.octants)) {
			*buf = append(*buf, Entry[D]{ID: octant, Data: *h.octants[octant]})
		}
		clear(h.octants)
		return true
	}

	delete(h.octants, id)
	*buf = append(*buf, Entry[D]{ID: id, Data: *data})
	for _, child := range id.Children() {
		h.RemoveOctantAndFill(child, buf)
	}
	return true
}
