package quickhull

import (
	"fmt"
	"io"
)

// Check verifies the built hull: every face ring satisfies the half-edge
// invariants, adjacent faces are convex across their shared edges within the
// distance tolerance, no face carries a redundant vertex, and every input
// point lies on or inside the hull within ten times the tolerance.
//
// Check never fails the program; on the first violation it writes a one-line
// diagnostic to w (which may be nil) and returns false.
func (h *Hull) Check(w io.Writer) bool {
	return h.checkWithTolerance(w, h.tolerance)
}

func (h *Hull) checkWithTolerance(w io.Writer, tol float64) bool {
	if !h.checkFaces(w, tol) {
		return false
	}

	// check point inclusion
	pointTol := 10 * tol
	for i, vtx := range h.pointBuffer {
		for _, face := range h.faces {
			if face.mark != faceVisible {
				continue
			}

			if dist := face.DistanceToPlane(vtx.pnt); dist > pointTol {
				diagf(w, "point %d is %g above face [%s]", i, dist, face.vertexString())
				return false
			}
		}
	}

	return true
}

func (h *Hull) checkFaces(w io.Writer, tol float64) bool {
	for _, face := range h.faces {
		if face.mark != faceVisible {
			continue
		}

		if err := face.checkConsistency(); err != nil {
			diagf(w, "%v", err)
			return false
		}
		if !h.checkFaceConvexity(w, face, tol) {
			return false
		}
	}

	return true
}

// checkFaceConvexity verifies that face is convex with respect to each of its
// neighbors within tol, on both sides of every shared edge, and that no ring
// vertex is redundant.
func (h *Hull) checkFaceConvexity(w io.Writer, face *Face, tol float64) bool {
	he := face.he0
	for {
		if dist := h.oppFaceDistance(he); dist > tol {
			diagf(w, "edge %s is non-convex by %g", he, dist)
			return false
		}
		if dist := h.oppFaceDistance(he.opposite); dist > tol {
			diagf(w, "opposite edge %s is non-convex by %g", he.opposite, dist)
			return false
		}
		if he.next.oppositeFace() == he.oppositeFace() {
			diagf(w, "redundant vertex %d in face [%s]", he.vertex.index, face.vertexString())
			return false
		}

		he = he.next
		if he == face.he0 {
			break
		}
	}

	return true
}

func diagf(w io.Writer, format string, args ...interface{}) {
	if w != nil {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
