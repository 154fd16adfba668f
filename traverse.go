package svo

import (
	"errors"
	"fmt"
	"iter"
)

// GuideFunc picks the child to descend into, or returns false to stop.
type GuideFunc func(depth Depth, id OctantID) (OctantPlacement, bool)

// VisitFunc decides how a search proceeds after visiting id.
type VisitFunc func(depth Depth, id OctantID) SearchControlFlow

type (
	GuideMutFunc[D any] func(depth Depth, id OctantID, acc AccessorMut[D]) (OctantPlacement, bool)
	VisitMutFunc[D any] func(depth Depth, id OctantID, acc AccessorMut[D]) SearchControlFlow
	DrillFunc[D any]    func(depth Depth, id OctantID, acc AccessorMut[D]) *Assignment[D]

	SubdivideFunc[D any]     func(depth Depth, id OctantID, acc AccessorMut[D]) Subdivision[D]
	SubdivideSomeFunc[D any] func(depth Depth, id OctantID, acc AccessorMut[D]) SparseSubdivision[D]
)

type queued struct {
	depth Depth
	id    OctantID
}

// brokenLink reports a backend that lost an octant it had just handed out.
func brokenLink(id OctantID, err error) {
	panic(fmt.Sprintf("svo: broken link at octant %d: %v", uint64(id), err))
}

func startDepth[D any](s Storage[D], start OctantID) (Depth, error) {
	depth, ok := s.OctantDepth(start)
	if !ok {
		return 0, ErrInvalidOctantID
	}
	return depth, nil
}

// GuidedSearch descends a single path from start, asking guide for the next
// placement at each level. It returns the octant where guide stopped or where
// the requested child does not exist.
func GuidedSearch[D any](s Storage[D], start OctantID, guide GuideFunc) (OctantID, error) {
	depth, err := startDepth(s, start)
	if err != nil {
		return InvalidOctantID, err
	}

	maxDepth := s.MaxDepth()
	current := start
	for d := int(depth); d <= int(maxDepth); d++ {
		p, ok := guide(Depth(d), current)
		if !ok {
			return current, nil
		}
		child, err := s.ExistingChild(current, p)
		switch {
		case err == nil:
			current = child
		case errors.Is(err, ErrChildNotFound):
			return current, nil
		case errors.Is(err, ErrOverMaxDepth):
			return InvalidOctantID, err
		default:
			brokenLink(current, err)
		}
	}
	return InvalidOctantID, &OverMaxDepthError{MaxDepth: maxDepth}
}

// GuidedSearchMut is GuidedSearch with a guide that may mutate payloads.
func GuidedSearchMut[D any](s ModifiableStorage[D], start OctantID, guide GuideMutFunc[D]) (OctantID, error) {
	acc := NewAccessorMut(s)
	return GuidedSearch[D](s, start, func(depth Depth, id OctantID) (OctantPlacement, bool) {
		return guide(depth, id, acc)
	})
}

// DepthFirstSearch visits the subtree of start in pre-order, children in
// OctantsOrdered. Break anywhere ends the whole search.
func DepthFirstSearch[D any](s Storage[D], start OctantID, visit VisitFunc) (SearchResult, error) {
	depth, err := startDepth(s, start)
	if err != nil {
		return SearchResult{}, err
	}
	return depthFirst(s, depth, start, visit)
}

// DepthFirstSearchMut is DepthFirstSearch with a visitor that may mutate
// payloads.
func DepthFirstSearchMut[D any](s ModifiableStorage[D], start OctantID, visit VisitMutFunc[D]) (SearchResult, error) {
	acc := NewAccessorMut(s)
	return DepthFirstSearch[D](s, start, func(depth Depth, id OctantID) SearchControlFlow {
		return visit(depth, id, acc)
	})
}

func depthFirst[D any](s Storage[D], depth Depth, id OctantID, visit VisitFunc) (SearchResult, error) {
	flow := visit(depth, id)
	if flow != Continue {
		return flow.result(id), nil
	}
	if maxDepth := s.MaxDepth(); depth >= maxDepth {
		return SearchResult{}, &OverMaxDepthError{MaxDepth: maxDepth}
	}

	children, err := ExistingChildren(s, id)
	if err != nil {
		brokenLink(id, err)
	}

	last := flow.result(id)
	for _, child := range children {
		if !child.IsValid() {
			continue
		}
		res, err := depthFirst(s, depth+1, child, visit)
		if err != nil {
			return SearchResult{}, err
		}
		if res.Flow == Break {
			return res, nil
		}
		last = res
	}
	return last, nil
}

// BreadthFirstSearch visits the subtree of start in level order.
func BreadthFirstSearch[D any](s Storage[D], start OctantID, visit VisitFunc) (SearchResult, error) {
	depth, err := startDepth(s, start)
	if err != nil {
		return SearchResult{}, err
	}

	maxDepth := s.MaxDepth()
	queue := []queued{{depth: depth, id: start}}
	var last SearchResult
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		flow := visit(n.depth, n.id)
		last = flow.result(n.id)
		if flow != Continue {
			if flow == Break {
				return last, nil
			}
			continue
		}
		if n.depth >= maxDepth {
			return SearchResult{}, &OverMaxDepthError{MaxDepth: maxDepth}
		}

		children, err := ExistingChildren(s, n.id)
		if err != nil {
			brokenLink(n.id, err)
		}
		for _, child := range children {
			if child.IsValid() {
				queue = append(queue, queued{depth: n.depth + 1, id: child})
			}
		}
	}
	return last, nil
}

// BreadthFirstSearchMut is BreadthFirstSearch with a visitor that may mutate
// payloads.
func BreadthFirstSearchMut[D any](s ModifiableStorage[D], start OctantID, visit VisitMutFunc[D]) (SearchResult, error) {
	acc := NewAccessorMut(s)
	return BreadthFirstSearch[D](s, start, func(depth Depth, id OctantID) SearchControlFlow {
		return visit(depth, id, acc)
	})
}

// BreadthFirst yields the subtree of start in level order. It yields nothing
// if start does not exist.
func BreadthFirst[D any](s Storage[D], start OctantID) iter.Seq2[Depth, OctantID] {
	return func(yield func(Depth, OctantID) bool) {
		depth, ok := s.OctantDepth(start)
		if !ok {
			return
		}
		queue := []queued{{depth: depth, id: start}}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if !yield(n.depth, n.id) {
				return
			}
			children, err := ExistingChildren(s, n.id)
			if err != nil {
				continue
			}
			for _, child := range children {
				if child.IsValid() {
					queue = append(queue, queued{depth: n.depth + 1, id: child})
				}
			}
		}
	}
}

// Drill descends a single path from start, letting fn create or replace one
// child per level. It returns the octant where the descent stopped.
func Drill[D any](s ModifiableStorage[D], start OctantID, fn DrillFunc[D]) (OctantID, error) {
	depth, err := startDepth(s, start)
	if err != nil {
		return InvalidOctantID, err
	}

	acc := NewAccessorMut(s)
	maxDepth := s.MaxDepth()
	current := start
	for d := int(depth); d <= int(maxDepth); d++ {
		a := fn(Depth(d), current, acc)
		if a == nil {
			return current, nil
		}

		switch a.Kind {
		case AssignmentNextExisting:
			child, err := s.ExistingChild(current, a.Placement)
			if errors.Is(err, ErrChildNotFound) {
				return current, nil
			}
			if err != nil {
				return InvalidOctantID, err
			}
			data, ok := s.GetMut(child)
			if !ok {
				brokenLink(child, ErrInvalidOctantID)
			}
			*data, a.Data = a.Data, *data
			current = child
		case AssignmentNextWhenNew:
			_, err := s.ExistingChild(current, a.Placement)
			if err == nil {
				return current, nil
			}
			if !errors.Is(err, ErrChildNotFound) {
				return InvalidOctantID, err
			}
			fallthrough
		default:
			child, _, err := s.InsertOctant(current, a.Placement, a.Data)
			if err != nil {
				return InvalidOctantID, err
			}
			current = child
		}
	}
	return InvalidOctantID, &OverMaxDepthError{MaxDepth: maxDepth}
}

// SubdivideIf walks the subtree of start in level order and subdivides every
// octant for which fn answers Continue. New children are queued and visited
// in turn.
func SubdivideIf[D any](s ModifiableStorage[D], start OctantID, fn SubdivideFunc[D]) (SearchResult, error) {
	return subdivideWhile(s, start, func(n queued, acc AccessorMut[D], enqueue func(OctantID)) (SearchControlFlow, error) {
		sub := fn(n.depth, n.id, acc)
		if sub.Flow != Continue {
			return sub.Flow, nil
		}
		factory := sub.Factory
		if factory == nil {
			factory = zeroData[D]
		}
		children, err := Subdivide(s, n.id, factory)
		if err != nil {
			return sub.Flow, err
		}
		for _, child := range children {
			enqueue(child)
		}
		return sub.Flow, nil
	})
}

// SubdivideIfSome is SubdivideIf where the factory may decline placements.
func SubdivideIfSome[D any](s ModifiableStorage[D], start OctantID, fn SubdivideSomeFunc[D]) (SearchResult, error) {
	return subdivideWhile(s, start, func(n queued, acc AccessorMut[D], enqueue func(OctantID)) (SearchControlFlow, error) {
		sub := fn(n.depth, n.id, acc)
		if sub.Flow != Continue {
			return sub.Flow, nil
		}
		for _, p := range OctantsOrdered {
			var data D
			if sub.Factory != nil {
				var ok bool
				if data, ok = sub.Factory(p); !ok {
					continue
				}
			}
			child, _, err := s.InsertOctant(n.id, p, data)
			if err != nil {
				return sub.Flow, err
			}
			enqueue(child)
		}
		return sub.Flow, nil
	})
}

type subdivideStep[D any] func(n queued, acc AccessorMut[D], enqueue func(OctantID)) (SearchControlFlow, error)

func subdivideWhile[D any](s ModifiableStorage[D], start OctantID, step subdivideStep[D]) (SearchResult, error) {
	depth, err := startDepth(s, start)
	if err != nil {
		return SearchResult{}, err
	}

	acc := NewAccessorMut(s)
	queue := []queued{{depth: depth, id: start}}
	var last SearchResult
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		enqueue := func(child OctantID) {
			queue = append(queue, queued{depth: n.depth + 1, id: child})
		}
		flow, err := step(n, acc, enqueue)
		if err != nil {
			return SearchResult{}, err
		}
		last = flow.result(n.id)
		if flow == Break {
			return last, nil
		}
	}
	return last, nil
}
