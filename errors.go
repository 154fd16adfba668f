package svo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidOctantID = errors.New("svo: invalid octant id")
	ErrOverMaxDepth    = errors.New("svo: over max depth")
	ErrChildNotFound   = errors.New("svo: child not found")
	ErrValidation      = errors.New("svo: coordinates out of bounds")
)

// OverMaxDepthError is returned when an operation addresses or creates an
// octant below the deepest level supported by the storage.
type OverMaxDepthError struct {
	MaxDepth Depth
}

func (e *OverMaxDepthError) Error() string {
	return fmt.Sprintf("svo: over max depth %d", e.MaxDepth)
}

func (e *OverMaxDepthError) Is(target error) bool { return target == ErrOverMaxDepth }

// ChildNotFoundError is returned when a parent exists but the requested child
// placement is unoccupied. Known is false when the lookup was for any child.
type ChildNotFoundError struct {
	Placement OctantPlacement
	Known     bool
}

func (e *ChildNotFoundError) Error() string {
	if !e.Known {
		return "svo: child not found"
	}
	return fmt.Sprintf("svo: child %s not found", e.Placement)
}

func (e *ChildNotFoundError) Is(target error) bool { return target == ErrChildNotFound }

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ValidationError reports coordinates that fall outside [0, Max] at Depth, or
// a depth that the identifier scheme cannot represent.
type ValidationError struct {
	Depth   Depth
	Max     int32
	Coords  [3]int32
	Invalid [3]bool
}

// DepthExceeded reports whether the error is about the depth itself rather
// than a coordinate.
func (e *ValidationError) DepthExceeded() bool { return e.Depth > MaxDepth }

// BelowLimit reports whether the coordinate on axis a is negative.
func (e *ValidationError) BelowLimit(a Axis) bool {
	return e.Invalid[a] && e.Coords[a] < 0
}

// AboveLimit reports whether the coordinate on axis a is greater than Max.
func (e *ValidationError) AboveLimit(a Axis) bool {
	return e.Invalid[a] && e.Coords[a] > e.Max
}

func (e *ValidationError) Error() string {
	if e.DepthExceeded() {
		return fmt.Sprintf("svo: depth %d is over max value %d", e.Depth, MaxDepth)
	}
	var b strings.Builder
	b.WriteString("svo: axis out of bounds")
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		switch {
		case e.BelowLimit(a):
			fmt.Fprintf(&b, ", %s: %d (min: 0)", a, e.Coords[a])
		case e.AboveLimit(a):
			fmt.Fprintf(&b, ", %s: %d (max: %d)", a, e.Coords[a], e.Max)
		}
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
