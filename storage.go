package svo

import "errors"

// Entry is an octant id together with its payload.
type Entry[D any] struct {
	ID   OctantID
	Data D
}

// Storage is the read side of an octree backend. Presence of an id is the
// only definition of existence: children and ancestors are derived from the
// id and verified by lookups.
type Storage[D any] interface {
	RootID() OctantID
	MaxDepth() Depth

	// OctantDepth reports the depth of id if it exists.
	OctantDepth(id OctantID) (Depth, bool)
	Get(id OctantID) (D, bool)

	// ExistingChild returns the child of parent at placement p. It fails with
	// *OverMaxDepthError if parent is at MaxDepth, *ChildNotFoundError if the
	// parent exists without that child, and ErrInvalidOctantID if the parent
	// does not exist.
	ExistingChild(parent OctantID, p OctantPlacement) (OctantID, error)

	// Ancestors returns an iterator over the ancestors of an existing id.
	Ancestors(id OctantID) (*AncestorIter, bool)
	// Parent returns false for the root and for ids that do not exist.
	Parent(id OctantID) (OctantID, bool)
}

// ModifiableStorage extends Storage with in-place mutation, insertion and
// cascading removal.
type ModifiableStorage[D any] interface {
	Storage[D]

	GetMut(id OctantID) (*D, bool)

	// InsertRoot sets the root payload and returns the previous one, if any.
	InsertRoot(data D) *D

	// InsertOctant creates or replaces the child of parent at placement p.
	// It returns the child id and the replaced payload, if any.
	InsertOctant(parent OctantID, p OctantPlacement, data D) (OctantID, *D, error)

	// RemoveOctant removes id and every existing descendant. Removing the
	// root empties the storage. It returns false if id does not exist.
	RemoveOctant(id OctantID) bool

	// RemoveOctantAndFill is RemoveOctant that also appends every removed
	// entry to buf.
	RemoveOctantAndFill(id OctantID, buf *[]Entry[D]) bool
}

// A backend may implement these to replace the generic versions below.
type (
	existingChildrenLister interface {
		ExistingChildren(parent OctantID) ([OctantCount]OctantID, error)
	}
	childPlacementFinder interface {
		WhichChildOf(parent, child OctantID) (OctantPlacement, error)
	}
)

// ExistingChildren returns the children of parent in OctantsOrdered, with
// InvalidOctantID in place of absent ones. Errors follow ExistingChild except
// that a missing child is not an error.
func ExistingChildren[D any](s Storage[D], parent OctantID) ([OctantCount]OctantID, error) {
	if l, ok := s.(existingChildrenLister); ok {
		return l.ExistingChildren(parent)
	}

	var children [OctantCount]OctantID
	for i, p := range OctantsOrdered {
		child, err := s.ExistingChild(parent, p)
		if err != nil {
			if i == 0 && !errors.Is(err, ErrChildNotFound) {
				return children, err
			}
			continue
		}
		children[i] = child
	}
	return children, nil
}

// WhichChildOf returns the placement child occupies under parent. It fails
// with ErrInvalidOctantID if parent does not exist and *ChildNotFoundError if
// child is not one of its existing children, which is always the case for a
// parent at MaxDepth.
func WhichChildOf[D any](s Storage[D], parent, child OctantID) (OctantPlacement, error) {
	if f, ok := s.(childPlacementFinder); ok {
		return f.WhichChildOf(parent, child)
	}

	children, err := ExistingChildren(s, parent)
	if errors.Is(err, ErrOverMaxDepth) {
		if _, ok := s.OctantDepth(parent); !ok {
			return 0, ErrInvalidOctantID
		}
		return 0, &ChildNotFoundError{}
	}
	if err != nil {
		return 0, err
	}
	for i, c := range children {
		if c.IsValid() && c == child {
			return OctantsOrdered[i], nil
		}
	}
	return 0, &ChildNotFoundError{}
}

// Subdivide creates or replaces all eight children of parent, asking
// newData for each payload in OctantsOrdered. It stops at the first error.
func Subdivide[D any](s ModifiableStorage[D], parent OctantID, newData func(OctantPlacement) D) ([OctantCount]OctantID, error) {
	var children [OctantCount]OctantID
	for i, p := range OctantsOrdered {
		child, _, err := s.InsertOctant(parent, p, newData(p))
		if err != nil {
			return children, err
		}
		children[i] = child
	}
	return children, nil
}

// SubdivideWithDefault subdivides parent with zero-value payloads.
func SubdivideWithDefault[D any](s ModifiableStorage[D], parent OctantID) ([OctantCount]OctantID, error) {
	return Subdivide(s, parent, zeroData[D])
}

// RemoveOctantAndCollect removes id and its descendants and returns the
// removed entries.
func RemoveOctantAndCollect[D any](s ModifiableStorage[D], id OctantID) ([]Entry[D], bool) {
	var removed []Entry[D]
	if !s.RemoveOctantAndFill(id, &removed) {
		return nil, false
	}
	return removed, true
}

func zeroData[D any](OctantPlacement) D {
	var zero D
	return zero
}
