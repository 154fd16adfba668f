// Package svo provides a sparse octree with Morton-coded octant ids and a
// traversal engine that works over any storage backend.
//
// Every octant is identified by an OctantID: its Morton code with a marker bit
// above it. The root is 1, the children of an id are id<<3 | placement, and
// the depth is recovered from the position of the marker. Payloads are stored
// only for octants that were explicitly created.
//
// Basic usage:
//
//	tree := svo.New[int]()
//
//	// Subdivide everything down to depth 3
//	tree.SubdivideIfFromRoot(func(depth svo.Depth, id svo.OctantID, _ svo.AccessorMut[int]) svo.Subdivision[int] {
//	    if depth >= 3 {
//	        return svo.Subdivision[int]{Flow: svo.Skip}
//	    }
//	    return svo.SubdivideWith(func(p svo.OctantPlacement) int { return int(p) })
//	})
//
//	// Visit in pre-order
//	tree.DepthFirstSearchFromRoot(func(depth svo.Depth, id svo.OctantID) svo.SearchControlFlow {
//	    fmt.Println(depth, id)
//	    return svo.Continue
//	})
//
//	// Create or update a single path
//	tree.DrillFromRoot(func(depth svo.Depth, id svo.OctantID, acc svo.AccessorMut[int]) *svo.Assignment[int] {
//	    if depth >= 5 {
//	        return nil
//	    }
//	    return svo.AssignNext(svo.UpperTopRight, 42)
//	})
//
// Working with ids directly:
//
//	id, _ := svo.FromXYZ(3, 0, 5, 3)
//	fmt.Println(id.Depth(), id.XYZ(), id.Parent())
//	east, err := id.Neighbor(svo.East)
//
// Storage backends implement Storage and ModifiableStorage; HashedStorage is
// the map-backed reference implementation. Package spatial attaches regions
// such as cubes to octants.
package svo
