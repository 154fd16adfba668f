package svo

import "fmt"

// SearchControlFlow tells a traversal what to do after visiting an octant.
type SearchControlFlow uint8

const (
	// Continue descends into the children of the current octant.
	Continue SearchControlFlow = iota
	// Skip stops descending into the current branch. The visit still counts.
	Skip
	// Break ends the traversal immediately.
	Break
)

func (f SearchControlFlow) String() string {
	switch f {
	case Continue:
		return "Continue"
	case Skip:
		return "Skip"
	case Break:
		return "Break"
	}
	return fmt.Sprintf("SearchControlFlow(%d)", uint8(f))
}

// SearchResult is the outcome of a traversal. For Break, ID is the octant
// that broke; otherwise it is the last octant visited.
type SearchResult struct {
	Flow SearchControlFlow
	ID   OctantID
}

func (f SearchControlFlow) result(id OctantID) SearchResult {
	return SearchResult{Flow: f, ID: id}
}

// AssignmentKind selects how Drill treats the next child.
type AssignmentKind uint8

const (
	// AssignmentNext creates or replaces the child.
	AssignmentNext AssignmentKind = iota
	// AssignmentNextExisting replaces the payload of an existing child only.
	AssignmentNextExisting
	// AssignmentNextWhenNew creates the child only if it is absent.
	AssignmentNextWhenNew
)

// Assignment is the step a drill callback asks for. After an
// AssignmentNextExisting step, Data holds the payload it replaced.
type Assignment[D any] struct {
	Kind      AssignmentKind
	Placement OctantPlacement
	Data      D
}

// AssignNext creates the child at p, or replaces its payload.
func AssignNext[D any](p OctantPlacement, data D) *Assignment[D] {
	return &Assignment[D]{Kind: AssignmentNext, Placement: p, Data: data}
}

// AssignNextExisting swaps data into the existing child at p.
func AssignNextExisting[D any](p OctantPlacement, data D) *Assignment[D] {
	return &Assignment[D]{Kind: AssignmentNextExisting, Placement: p, Data: data}
}

// AssignNextWhenNew creates the child at p only if it does not exist yet.
func AssignNextWhenNew[D any](p OctantPlacement, data D) *Assignment[D] {
	return &Assignment[D]{Kind: AssignmentNextWhenNew, Placement: p, Data: data}
}

// Subdivision is the answer of a SubdivideIf predicate. On Continue the
// octant is subdivided with Factory; a nil Factory gives zero-value children.
type Subdivision[D any] struct {
	Flow    SearchControlFlow
	Factory func(OctantPlacement) D
}

// SubdivideWith is a Continue subdivision using factory.
func SubdivideWith[D any](factory func(OctantPlacement) D) Subdivision[D] {
	return Subdivision[D]{Flow: Continue, Factory: factory}
}

// SparseSubdivision is the answer of a SubdivideIfSome predicate. On Continue
// only the placements for which Factory returns true are created; a nil
// Factory creates all eight with zero values.
type SparseSubdivision[D any] struct {
	Flow    SearchControlFlow
	Factory func(OctantPlacement) (D, bool)
}

// SubdivideSomeWith is a Continue sparse subdivision using factory.
func SubdivideSomeWith[D any](factory func(OctantPlacement) (D, bool)) SparseSubdivision[D] {
	return SparseSubdivision[D]{Flow: Continue, Factory: factory}
}
