package quickhull

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// faceMark tracks the lifecycle of a face during hull construction.
type faceMark int

const (
	// faceVisible marks a face that is part of the current hull.
	faceVisible faceMark = iota
	// faceNonConvex marks a face found non-convex during the first merge pass.
	faceNonConvex
	// faceDeleted marks a face absorbed by a merge or hidden by a new vertex.
	faceDeleted
)

// Face represents a convex polygonal face of the evolving hull. Its boundary
// is a cyclic ring of half-edges anchored at he0, with the face's vertices
// ordered counter-clockwise when viewed from outside.
//
// The plane normal, plane offset, centroid and area are cached and recomputed
// whenever the ring changes. The outside pointer addresses the first vertex of
// the contiguous segment of the claimed list assigned to this face. The next
// link is only meaningful while the face sits on the per-iteration list of
// newly created faces.
type Face struct {
	he0 *HalfEdge

	normal      mgl64.Vec3
	centroid    mgl64.Vec3
	area        float64
	planeOffset float64
	numVerts    int

	mark    faceMark
	outside *Vertex
	next    *Face
}

// newTriangle creates a triangular face v0-v1-v2, wires its edge ring and
// computes its plane. A positive minArea enables the thin-face normal
// stabilization of computeNormalMinArea.
func newTriangle(v0, v1, v2 *Vertex, minArea float64) *Face {
	face := &Face{}

	he0 := &HalfEdge{vertex: v0, face: face}
	he1 := &HalfEdge{vertex: v1, face: face}
	he2 := &HalfEdge{vertex: v2, face: face}

	he0.prev = he2
	he0.next = he1
	he1.prev = he0
	he1.next = he2
	he2.prev = he1
	he2.next = he0

	face.he0 = he0
	face.computeNormalAndCentroid(minArea)

	return face
}

// computeNormal accumulates the cross products of consecutive ring vertices
// relative to the first, yielding a vector normal to the face whose length is
// twice the polygon area. It also refreshes the cached vertex count.
func (f *Face) computeNormal() {
	he1 := f.he0.next
	he2 := he1.next

	p0 := f.he0.vertex.pnt
	d2 := he1.vertex.pnt.Sub(p0)

	sum := mgl64.Vec3{}
	f.numVerts = 2

	for he2 != f.he0 {
		d1 := d2
		d2 = he2.vertex.pnt.Sub(p0)
		sum = sum.Add(d1.Cross(d2))

		he2 = he2.next
		f.numVerts++
	}

	norm := sum.Len()
	f.area = 0.5 * norm
	f.normal = sum.Mul(1.0 / norm)
}

// computeNormalMinArea computes the normal as usual, but for faces thinner
// than minArea it removes the component parallel to the longest edge and
// renormalizes. The direction of a sliver's longest edge dominates the
// roundoff error of the cross-product sum.
func (f *Face) computeNormalMinArea(minArea float64) {
	f.computeNormal()

	if f.area < minArea {
		var hedgeMax *HalfEdge
		lenSqrMax := 0.0

		hedge := f.he0
		for {
			lenSqr := hedge.lengthSquared()
			if lenSqr > lenSqrMax {
				hedgeMax = hedge
				lenSqrMax = lenSqr
			}

			hedge = hedge.next
			if hedge == f.he0 {
				break
			}
		}

		u := hedgeMax.vertex.pnt.Sub(hedgeMax.Tail().pnt).Mul(1.0 / math.Sqrt(lenSqrMax))
		f.normal = normalize(f.normal.Sub(u.Mul(f.normal.Dot(u))))
	}
}

func (f *Face) computeCentroid() {
	sum := mgl64.Vec3{}
	n := 0

	he := f.he0
	for {
		sum = sum.Add(he.vertex.pnt)
		n++

		he = he.next
		if he == f.he0 {
			break
		}
	}

	f.centroid = sum.Mul(1.0 / float64(n))
}

func (f *Face) computeNormalAndCentroid(minArea float64) {
	if minArea > 0 {
		f.computeNormalMinArea(minArea)
	} else {
		f.computeNormal()
	}
	f.computeCentroid()
	f.planeOffset = f.normal.Dot(f.centroid)
}

// DistanceToPlane returns the signed distance of p from the face plane.
// Positive values lie on the outside of the hull.
func (f *Face) DistanceToPlane(p mgl64.Vec3) float64 {
	return f.normal.Dot(p) - f.planeOffset
}

// Normal returns the unit normal of the face plane.
func (f *Face) Normal() mgl64.Vec3 {
	return f.normal
}

// Centroid returns the average of the face's ring vertices.
func (f *Face) Centroid() mgl64.Vec3 {
	return f.centroid
}

// Area returns the area of the face polygon.
func (f *Face) Area() float64 {
	return f.area
}

// NumVertices returns the number of vertices bounding the face.
func (f *Face) NumVertices() int {
	return f.numVerts
}

// FirstEdge returns the anchor half-edge of the face ring.
func (f *Face) FirstEdge() *HalfEdge {
	return f.he0
}

// edge returns the ring edge i steps forward from the anchor; negative
// indices walk backward, so edge(-1) is the anchor's predecessor.
func (f *Face) edge(i int) *HalfEdge {
	he := f.he0
	for i > 0 {
		he = he.next
		i--
	}
	for i < 0 {
		he = he.prev
		i++
	}

	return he
}

// findEdge returns the ring edge running from tail to head, or nil.
func (f *Face) findEdge(tail, head *Vertex) *HalfEdge {
	he := f.he0
	for {
		if he.vertex == head && he.Tail() == tail {
			return he
		}

		he = he.next
		if he == f.he0 {
			return nil
		}
	}
}

// vertexIndices collects the input indices of the ring vertices in
// counter-clockwise order.
func (f *Face) vertexIndices() []int {
	indices := make([]int, 0, f.numVerts)

	he := f.he0
	for {
		indices = append(indices, he.vertex.index)

		he = he.next
		if he == f.he0 {
			break
		}
	}

	return indices
}

// vertexString renders the ring's vertex indices for diagnostics, e.g. "2 4 0".
func (f *Face) vertexString() string {
	var sb strings.Builder

	he := f.he0
	for {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(he.vertex.index))

		he = he.next
		if he == f.he0 {
			break
		}
	}

	return sb.String()
}

// checkConsistency traverses the face ring and verifies the half-edge
// invariants: at least three edges, symmetric opposite pairing, matching
// head/tail across each edge pair, a live distinct face on the far side, and
// a ring whose length matches the cached vertex count.
func (f *Face) checkConsistency() error {
	if f.numVerts < 3 {
		return ConsistencyError{Face: f.vertexString(), Message: "degenerate face with fewer than 3 vertices"}
	}

	numv := 0
	maxd := 0.0

	hedge := f.he0
	for {
		hedgeOpp := hedge.opposite
		if hedgeOpp == nil {
			return ConsistencyError{Face: f.vertexString(), Message: "unreflected half edge " + hedge.String()}
		}
		if hedgeOpp.opposite != hedge {
			return ConsistencyError{
				Face:    f.vertexString(),
				Message: "opposite half edge " + hedgeOpp.String() + " has opposite " + hedgeOpp.opposite.String(),
			}
		}
		if hedgeOpp.vertex != hedge.Tail() || hedge.vertex != hedgeOpp.Tail() {
			return ConsistencyError{
				Face:    f.vertexString(),
				Message: "half edge " + hedge.String() + " reflected by " + hedgeOpp.String(),
			}
		}

		oppFace := hedgeOpp.face
		switch {
		case oppFace == nil:
			return ConsistencyError{Face: f.vertexString(), Message: "no face on half edge " + hedgeOpp.String()}
		case oppFace == f:
			return ConsistencyError{Face: f.vertexString(), Message: "half edge " + hedge.String() + " opposes its own face"}
		case oppFace.mark == faceDeleted:
			return ConsistencyError{Face: f.vertexString(), Message: "opposite face [" + oppFace.vertexString() + "] not on hull"}
		}

		if hedge.next.prev != hedge || hedge.prev.next != hedge {
			return ConsistencyError{Face: f.vertexString(), Message: "broken ring links at half edge " + hedge.String()}
		}

		d := math.Abs(f.DistanceToPlane(hedge.vertex.pnt))
		if d > maxd {
			maxd = d
		}

		numv++
		hedge = hedge.next
		if hedge == f.he0 {
			break
		}
	}

	if numv != f.numVerts {
		return ConsistencyError{Face: f.vertexString(), Message: "ring length differs from cached vertex count"}
	}

	return nil
}

// mergeAdjacentFace absorbs the face across hedgeAdj into f, splicing the two
// edge rings into one polygonal ring. Redundant vertices created by the
// splice (a vertex whose two incident ring edges share the same opposite
// face) are removed by further splicing, which may discard additional faces.
//
// Discarded faces are appended to discarded, which must have capacity for at
// least three entries; the count stored is returned. The merged plane is
// recomputed with the face's previous area as the stabilization threshold.
func (f *Face) mergeAdjacentFace(hedgeAdj *HalfEdge, discarded []*Face) (int, error) {
	oppFace := hedgeAdj.oppositeFace()
	numDiscarded := 0

	discarded[numDiscarded] = oppFace
	numDiscarded++
	oppFace.mark = faceDeleted

	hedgeOpp := hedgeAdj.opposite

	hedgeAdjPrev := hedgeAdj.prev
	hedgeAdjNext := hedgeAdj.next
	hedgeOppPrev := hedgeOpp.prev
	hedgeOppNext := hedgeOpp.next

	for hedgeAdjPrev.oppositeFace() == oppFace {
		hedgeAdjPrev = hedgeAdjPrev.prev
		hedgeOppNext = hedgeOppNext.next
	}
	for hedgeAdjNext.oppositeFace() == oppFace {
		hedgeOppPrev = hedgeOppPrev.prev
		hedgeAdjNext = hedgeAdjNext.next
	}

	for hedge := hedgeOppNext; hedge != hedgeOppPrev.next; hedge = hedge.next {
		hedge.face = f
	}

	if hedgeAdj == f.he0 {
		f.he0 = hedgeAdjNext
	}

	// handle the half edges at the head
	if discardedFace := f.connectHalfEdges(hedgeOppPrev, hedgeAdjNext); discardedFace != nil {
		discarded[numDiscarded] = discardedFace
		numDiscarded++
	}

	// handle the half edges at the tail
	if discardedFace := f.connectHalfEdges(hedgeAdjPrev, hedgeOppNext); discardedFace != nil {
		discarded[numDiscarded] = discardedFace
		numDiscarded++
	}

	f.computeNormalAndCentroid(f.area)

	if err := f.checkConsistency(); err != nil {
		return numDiscarded, err
	}

	return numDiscarded, nil
}

// connectHalfEdges joins hedgePrev and hedge after a ring splice. If the two
// edges face the same opposite face, the vertex between them is redundant and
// the pair collapses into a single edge; a triangular opposite face collapses
// entirely and is returned for discarding.
func (f *Face) connectHalfEdges(hedgePrev, hedge *HalfEdge) *Face {
	var discardedFace *Face

	if hedgePrev.oppositeFace() == hedge.oppositeFace() {
		oppFace := hedge.oppositeFace()

		var hedgeOpp *HalfEdge
		if hedgePrev == f.he0 {
			f.he0 = hedge
		}
		if oppFace.numVerts == 3 {
			// the opposite face collapses to a single edge pair
			hedgeOpp = hedge.opposite.prev.opposite
			oppFace.mark = faceDeleted
			discardedFace = oppFace
		} else {
			hedgeOpp = hedge.opposite.next
			if oppFace.he0 == hedgeOpp.prev {
				oppFace.he0 = hedgeOpp
			}
			hedgeOpp.prev = hedgeOpp.prev.prev
			hedgeOpp.prev.next = hedgeOpp
		}

		hedge.prev = hedgePrev.prev
		hedge.prev.next = hedge
		hedge.setOpposite(hedgeOpp)

		// oppFace's ring was modified, refresh its plane
		oppFace.computeNormalAndCentroid(0)
	} else {
		hedgePrev.next = hedge
		hedge.prev = hedgePrev
	}

	return discardedFace
}
