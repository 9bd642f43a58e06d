package quickhull

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
//
// The degeneracy messages are part of the public contract: callers match on
// the exact strings when classifying unusable inputs.
var (
	ErrCoincident = errors.New("Input points appear to be coincident")
	ErrColinear   = errors.New("Input points appear to be colinear")
	ErrCoplanar   = errors.New("Input points appear to be coplanar")

	ErrCoordinateCount = errors.New("coordinate count is not a multiple of 3")
	ErrTooFewPoints    = errors.New("at least 4 points are required")
)

// ConsistencyError reports a violated half-edge invariant discovered while
// traversing a face ring. It indicates a defect in the mesh, not in the
// caller's input.
type ConsistencyError struct {
	Face    string // vertex indices of the offending face
	Message string
}

func (ce ConsistencyError) Error() string {
	return fmt.Sprintf("consistency error on face [%s]: %s", ce.Face, ce.Message)
}
