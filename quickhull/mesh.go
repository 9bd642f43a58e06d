package quickhull

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// distEps is the precision of double-precision floating point arithmetic.
const distEps = 2.2204460492503131e-16

// normalize returns v scaled to unit length. Vectors whose squared length is
// already within 2*distEps of one are returned unchanged, so repeated
// normalization of a unit vector does not accumulate drift.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	lenSqr := v.LenSqr()
	if math.Abs(lenSqr-1) <= 2*distEps {
		return v
	}

	return v.Mul(1.0 / math.Sqrt(lenSqr))
}

// Vertex represents an input point together with its position in the original
// coordinate array. While the hull is being built a vertex may be threaded
// onto a claim list through its prev/next links and assigned to the face it
// currently lies outside of.
type Vertex struct {
	pnt   mgl64.Vec3
	index int

	// links within whichever claim list currently holds the vertex
	prev, next *Vertex

	// face that currently claims this vertex, nil if none
	face *Face
}

// Point returns the position of the vertex.
func (v *Vertex) Point() mgl64.Vec3 {
	return v.pnt
}

// Index returns the position of the vertex in the original input.
func (v *Vertex) Index() int {
	return v.index
}

// HalfEdge represents one of the two oriented edges bounding an undirected
// mesh edge. Each half-edge points to its head vertex, belongs to the face on
// its left, and is linked into that face's cyclic edge ring. The paired
// half-edge on the adjacent face is its opposite; the pairing is symmetric.
type HalfEdge struct {
	vertex   *Vertex // head vertex; the edge points to this vertex
	face     *Face   // face to the left of the edge
	next     *HalfEdge
	prev     *HalfEdge
	opposite *HalfEdge
}

// Head returns the vertex the half-edge points to.
func (e *HalfEdge) Head() *Vertex {
	return e.vertex
}

// Tail returns the vertex the half-edge originates from, or nil if the edge
// is not yet linked into a ring.
func (e *HalfEdge) Tail() *Vertex {
	if e.prev == nil {
		return nil
	}

	return e.prev.vertex
}

// Face returns the face to the left of the half-edge.
func (e *HalfEdge) Face() *Face {
	return e.face
}

// Next returns the following half-edge in the face ring.
func (e *HalfEdge) Next() *HalfEdge {
	return e.next
}

// Prev returns the preceding half-edge in the face ring.
func (e *HalfEdge) Prev() *HalfEdge {
	return e.prev
}

// Opposite returns the paired half-edge on the adjacent face.
func (e *HalfEdge) Opposite() *HalfEdge {
	return e.opposite
}

// setOpposite pairs e with opp in both directions.
func (e *HalfEdge) setOpposite(opp *HalfEdge) {
	e.opposite = opp
	opp.opposite = e
}

// oppositeFace returns the face adjacent across the edge, or nil while the
// mesh is being rewired and no opposite exists yet.
func (e *HalfEdge) oppositeFace() *Face {
	if e.opposite == nil {
		return nil
	}

	return e.opposite.face
}

func (e *HalfEdge) length() float64 {
	if e.Tail() == nil {
		return -1
	}

	return e.vertex.pnt.Sub(e.Tail().pnt).Len()
}

func (e *HalfEdge) lengthSquared() float64 {
	if e.Tail() == nil {
		return -1
	}

	return e.vertex.pnt.Sub(e.Tail().pnt).LenSqr()
}

// String renders the edge as "tail-head" using input indices, for diagnostics.
func (e *HalfEdge) String() string {
	if e.Tail() != nil {
		return fmt.Sprintf("%d-%d", e.Tail().index, e.vertex.index)
	}

	return fmt.Sprintf("?-%d", e.vertex.index)
}
