// Package quickhull computes the convex hull of a finite set of points in
// three dimensions using the Quickhull algorithm of Barber, Dobkin and
// Huhdanpaa (1996).
//
// The hull is represented internally as a half-edge mesh that evolves from an
// initial tetrahedron: each iteration inserts the claimed point furthest from
// its face, deletes the faces visible from it, and erects a fan of new faces
// over the horizon of the visible region. Faces that end up non-convex within
// the distance tolerance are merged, so the result may contain polygonal
// faces with more than three vertices.
//
// Example usage:
//
//	hull, err := quickhull.New(coords) // x,y,z triplets
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := hull.Build(); err != nil {
//	    log.Fatal(err) // degenerate input
//	}
//
//	for _, face := range hull.Faces() {
//	    fmt.Println(face) // input indices, counter-clockwise from outside
//	}
//
// All convexity and containment decisions are guided by a single distance
// tolerance derived from the magnitude of the input coordinates; it can be
// overridden with SetExplicitDistanceTolerance for inputs with known noise
// levels.
package quickhull

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// AutomaticTolerance selects a distance tolerance computed from the input
// coordinate magnitudes. It is the default for new hulls and may be passed to
// SetExplicitDistanceTolerance to restore automatic behavior.
const AutomaticTolerance = -1

// Hull computes and stores the convex hull of a point set.
//
// A Hull instance is not safe for concurrent use; distinct instances share no
// state and may be built in parallel.
type Hull struct {
	pointBuffer []*Vertex

	// extreme vertices per axis, set by the bounds scan
	maxVtxs [3]*Vertex
	minVtxs [3]*Vertex

	// charLength is the largest axis spread of the input
	charLength        float64
	tolerance         float64
	explicitTolerance float64

	faces   []*Face
	horizon []*HalfEdge

	newFaces  faceList
	claimed   vertexList
	unclaimed vertexList

	// scratch buffer for faces discarded by a single merge
	discardedFaces [3]*Face

	debug    bool
	debugOut io.Writer
}

// New creates a hull engine over the given coordinate array, which holds the
// points as x,y,z triplets. It fails if the length of coords is not a
// multiple of three or if fewer than four points are supplied.
func New(coords []float64) (*Hull, error) {
	if len(coords)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrCoordinateCount, len(coords))
	}

	numPoints := len(coords) / 3
	if numPoints < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, numPoints)
	}

	h := &Hull{
		pointBuffer:       make([]*Vertex, numPoints),
		explicitTolerance: AutomaticTolerance,
		debugOut:          os.Stdout,
	}
	for i := 0; i < numPoints; i++ {
		h.pointBuffer[i] = &Vertex{
			pnt:   mgl64.Vec3{coords[3*i], coords[3*i+1], coords[3*i+2]},
			index: i,
		}
	}

	return h, nil
}

// ConvexHull builds the convex hull of the points given as x,y,z triplets and
// returns its faces as counter-clockwise rings of input indices.
func ConvexHull(coords []float64) ([][]int, error) {
	hull, err := New(coords)
	if err != nil {
		return nil, err
	}
	if err := hull.Build(); err != nil {
		return nil, err
	}

	return hull.Faces(), nil
}

// DistanceTolerance returns the distance tolerance used by the most recent
// build: the explicit override if one was in effect, otherwise the tolerance
// derived from the input coordinate magnitudes. It is zero before the first
// build.
func (h *Hull) DistanceTolerance() float64 {
	return h.tolerance
}

// SetExplicitDistanceTolerance overrides the automatically computed distance
// tolerance. Passing AutomaticTolerance restores automatic computation on the
// next build.
func (h *Hull) SetExplicitDistanceTolerance(tol float64) {
	h.explicitTolerance = tol
}

// ExplicitDistanceTolerance returns the explicit tolerance override, or
// AutomaticTolerance if none is set.
func (h *Hull) ExplicitDistanceTolerance() float64 {
	return h.explicitTolerance
}

// SetDebug toggles a verbose trace of the build: initial vertex choice,
// per-iteration eye selection, horizon edges, merge events and claim
// outcomes.
func (h *Hull) SetDebug(enabled bool) {
	h.debug = enabled
}

// Debug reports whether the verbose build trace is enabled.
func (h *Hull) Debug() bool {
	return h.debug
}

func (h *Hull) debugf(format string, args ...interface{}) {
	if h.debug {
		fmt.Fprintf(h.debugOut, format+"\n", args...)
	}
}

// NumPoints returns the number of input points.
func (h *Hull) NumPoints() int {
	return len(h.pointBuffer)
}

// NumFaces returns the number of faces of the built hull.
func (h *Hull) NumFaces() int {
	return len(h.faces)
}

// Faces returns the faces of the built hull. Each face is a freshly allocated
// ring of at least three original-input indices, ordered counter-clockwise
// when viewed from outside the hull.
func (h *Hull) Faces() [][]int {
	faces := make([][]int, 0, len(h.faces))
	for _, face := range h.faces {
		faces = append(faces, face.vertexIndices())
	}

	return faces
}

// Vertices returns the sorted original-input indices of the points that
// appear as vertices of the built hull.
func (h *Hull) Vertices() []int {
	seen := make(map[int]bool)
	indices := make([]int, 0, len(h.faces))

	for _, face := range h.faces {
		he := face.he0
		for {
			if !seen[he.vertex.index] {
				seen[he.vertex.index] = true
				indices = append(indices, he.vertex.index)
			}

			he = he.next
			if he == face.he0 {
				break
			}
		}
	}
	sort.Ints(indices)

	return indices
}

// NumVertices returns the number of distinct hull vertices.
func (h *Hull) NumVertices() int {
	return len(h.Vertices())
}

// addPointToFace claims vtx for face, keeping the face's outside points
// contiguous in the claimed list.
func (h *Hull) addPointToFace(vtx *Vertex, face *Face) {
	vtx.face = face

	if face.outside == nil {
		h.claimed.add(vtx)
	} else {
		h.claimed.insertBefore(vtx, face.outside)
	}
	face.outside = vtx
}

// removePointFromFace releases vtx from face's outside segment.
func (h *Hull) removePointFromFace(vtx *Vertex, face *Face) {
	if vtx == face.outside {
		if vtx.next != nil && vtx.next.face == face {
			face.outside = vtx.next
		} else {
			face.outside = nil
		}
	}
	h.claimed.remove(vtx)
}

// removeAllPointsFromFace detaches face's whole outside segment from the
// claimed list and returns it as a chain, or nil if the face claims nothing.
func (h *Hull) removeAllPointsFromFace(face *Face) *Vertex {
	if face.outside == nil {
		return nil
	}

	end := face.outside
	for end.next != nil && end.next.face == face {
		end = end.next
	}
	h.claimed.removeChain(face.outside, end)
	end.next = nil

	return face.outside
}
