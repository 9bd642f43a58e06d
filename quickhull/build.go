package quickhull

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// mergeType selects the convexity criterion of doAdjacentMerge.
type mergeType int

const (
	// mergeNonConvexWrtLargerFace merges only when the larger of the two
	// adjacent faces sees the pair as non-convex; the smaller face seeing
	// non-convexity merely marks the face for the second pass.
	mergeNonConvexWrtLargerFace mergeType = iota
	// mergeNonConvex merges when either adjacent face sees the pair as
	// non-convex.
	mergeNonConvex
)

// Build computes the convex hull. It fails with ErrCoincident, ErrColinear or
// ErrCoplanar when the input does not span three dimensions within tolerance,
// and surfaces half-edge invariant violations as ConsistencyError values.
// On failure no partial result is retained.
func (h *Hull) Build() error {
	h.reset()
	h.computeMaxAndMin()

	if err := h.createInitialSimplex(); err != nil {
		h.faces = nil
		return err
	}

	iterations := 0
	for {
		eyeVtx := h.nextPointToAdd()
		if eyeVtx == nil {
			break
		}
		iterations++
		h.debugf("iteration %d", iterations)

		if err := h.addPointToHull(eyeVtx); err != nil {
			h.faces = nil
			return err
		}
	}
	h.removeHiddenFaces()

	return nil
}

// reset restores the engine to its pre-build state so Build can run again.
func (h *Hull) reset() {
	for _, vtx := range h.pointBuffer {
		vtx.prev = nil
		vtx.next = nil
		vtx.face = nil
	}
	h.faces = h.faces[:0]
	h.horizon = h.horizon[:0]
	h.newFaces.clear()
	h.claimed.clear()
	h.unclaimed.clear()
}

// computeMaxAndMin scans the input once, recording the extreme vertex along
// each axis, and derives the distance tolerance from the coordinate
// magnitudes unless an explicit tolerance is in effect.
func (h *Hull) computeMaxAndMin() {
	v0 := h.pointBuffer[0]
	for i := 0; i < 3; i++ {
		h.maxVtxs[i] = v0
		h.minVtxs[i] = v0
	}

	max := v0.pnt
	min := v0.pnt
	for _, vtx := range h.pointBuffer[1:] {
		for i := 0; i < 3; i++ {
			switch {
			case vtx.pnt[i] > max[i]:
				max[i] = vtx.pnt[i]
				h.maxVtxs[i] = vtx
			case vtx.pnt[i] < min[i]:
				min[i] = vtx.pnt[i]
				h.minVtxs[i] = vtx
			}
		}
	}

	h.charLength = math.Max(max[0]-min[0], math.Max(max[1]-min[1], max[2]-min[2]))

	if h.explicitTolerance == AutomaticTolerance {
		h.tolerance = 3 * distEps *
			(math.Max(math.Abs(max[0]), math.Abs(min[0])) +
				math.Max(math.Abs(max[1]), math.Abs(min[1])) +
				math.Max(math.Abs(max[2]), math.Abs(min[2])))
	} else {
		h.tolerance = h.explicitTolerance
	}
	h.debugf("distance tolerance = %g", h.tolerance)
}

// createInitialSimplex selects four affinely independent input points and
// builds the starting tetrahedron, claiming every point that lies outside it.
// Inputs that are coincident, colinear or coplanar within tolerance cannot
// form a simplex and abort the build.
func (h *Hull) createInitialSimplex() error {
	max := 0.0
	imax := 0
	for i := 0; i < 3; i++ {
		diff := h.maxVtxs[i].pnt[i] - h.minVtxs[i].pnt[i]
		if diff > max {
			max = diff
			imax = i
		}
	}
	if max <= h.tolerance {
		return ErrCoincident
	}

	var vtx [4]*Vertex
	// v0 and v1 are the extremes along the axis with the largest spread
	vtx[0] = h.maxVtxs[imax]
	vtx[1] = h.minVtxs[imax]

	// v2 is the point farthest from the line through v0 and v1
	u01 := normalize(vtx[1].pnt.Sub(vtx[0].pnt))
	var nrml mgl64.Vec3
	maxSqr := 0.0
	for _, p := range h.pointBuffer {
		if p == vtx[0] || p == vtx[1] {
			continue
		}

		xprod := u01.Cross(p.pnt.Sub(vtx[0].pnt))
		lenSqr := xprod.LenSqr()
		if lenSqr > maxSqr {
			maxSqr = lenSqr
			vtx[2] = p
			nrml = xprod
		}
	}
	if math.Sqrt(maxSqr) <= 100*h.tolerance {
		return ErrColinear
	}
	nrml = normalize(nrml)

	// recompute nrml to make sure it is normal to u01, since roundoff can
	// creep in when v2 lies close to the line
	nrml = normalize(nrml.Sub(u01.Mul(nrml.Dot(u01))))

	// v3 is the point farthest from the plane through v0, v1 and v2
	maxDist := 0.0
	d0 := vtx[2].pnt.Dot(nrml)
	for _, p := range h.pointBuffer {
		if p == vtx[0] || p == vtx[1] || p == vtx[2] {
			continue
		}

		dist := math.Abs(p.pnt.Dot(nrml) - d0)
		if dist > maxDist {
			maxDist = dist
			vtx[3] = p
		}
	}
	if maxDist <= 100*h.tolerance {
		return ErrCoplanar
	}

	if h.debug {
		h.debugf("initial vertices:")
		for i := 0; i < 4; i++ {
			h.debugf("  %d: %v", vtx[i].index, vtx[i].pnt)
		}
	}

	var tris [4]*Face
	if vtx[3].pnt.Dot(nrml)-d0 < 0 {
		tris[0] = newTriangle(vtx[0], vtx[1], vtx[2], 0)
		tris[1] = newTriangle(vtx[3], vtx[1], vtx[0], 0)
		tris[2] = newTriangle(vtx[3], vtx[2], vtx[1], 0)
		tris[3] = newTriangle(vtx[3], vtx[0], vtx[2], 0)

		for i := 0; i < 3; i++ {
			k := (i + 1) % 3
			tris[i+1].edge(1).setOpposite(tris[k+1].edge(0))
			tris[i+1].edge(2).setOpposite(tris[0].edge(k))
		}
	} else {
		tris[0] = newTriangle(vtx[0], vtx[2], vtx[1], 0)
		tris[1] = newTriangle(vtx[3], vtx[0], vtx[1], 0)
		tris[2] = newTriangle(vtx[3], vtx[1], vtx[2], 0)
		tris[3] = newTriangle(vtx[3], vtx[2], vtx[0], 0)

		for i := 0; i < 3; i++ {
			k := (i + 1) % 3
			tris[i+1].edge(0).setOpposite(tris[k+1].edge(1))
			tris[i+1].edge(2).setOpposite(tris[0].edge((3 - i) % 3))
		}
	}
	h.faces = append(h.faces, tris[0], tris[1], tris[2], tris[3])

	for _, p := range h.pointBuffer {
		if p == vtx[0] || p == vtx[1] || p == vtx[2] || p == vtx[3] {
			continue
		}

		maxDist := h.tolerance
		var maxFace *Face
		for k := 0; k < 4; k++ {
			dist := tris[k].DistanceToPlane(p.pnt)
			if dist > maxDist {
				maxFace = tris[k]
				maxDist = dist
			}
		}
		if maxFace != nil {
			h.addPointToFace(p, maxFace)
		}
	}

	return nil
}

// nextPointToAdd selects the eye vertex for the next iteration: the vertex in
// the first claiming face's outside segment that lies furthest above the
// face. Returns nil when no claimed points remain.
func (h *Hull) nextPointToAdd() *Vertex {
	if h.claimed.isEmpty() {
		return nil
	}

	eyeFace := h.claimed.first().face
	var eyeVtx *Vertex
	maxDist := 0.0
	for vtx := eyeFace.outside; vtx != nil && vtx.face == eyeFace; vtx = vtx.next {
		dist := eyeFace.DistanceToPlane(vtx.pnt)
		if dist > maxDist {
			maxDist = dist
			eyeVtx = vtx
		}
	}

	return eyeVtx
}

// addPointToHull performs one insertion iteration: it removes the eye vertex
// from its claim segment, computes the horizon of the region visible from it,
// erects the fan of new faces over the horizon, merges away any non-convexity
// the new faces introduced, and redistributes the points orphaned by deleted
// faces.
func (h *Hull) addPointToHull(eyeVtx *Vertex) error {
	h.horizon = h.horizon[:0]
	h.unclaimed.clear()

	h.debugf("adding point %d which is %g above face [%s]",
		eyeVtx.index, eyeVtx.face.DistanceToPlane(eyeVtx.pnt), eyeVtx.face.vertexString())

	h.removePointFromFace(eyeVtx, eyeVtx.face)
	h.calculateHorizon(eyeVtx.pnt, nil, eyeVtx.face)
	h.newFaces.clear()
	h.addNewFaces(eyeVtx)

	// first merge pass: merge pairs that are non-convex as determined by
	// the larger face
	for face := h.newFaces.first(); face != nil; face = face.next {
		if face.mark != faceVisible {
			continue
		}
		for {
			merged, err := h.doAdjacentMerge(face, mergeNonConvexWrtLargerFace)
			if err != nil {
				return err
			}
			if !merged {
				break
			}
		}
	}

	// second merge pass: merge pairs that are non-convex with respect to
	// either face
	for face := h.newFaces.first(); face != nil; face = face.next {
		if face.mark != faceNonConvex {
			continue
		}
		face.mark = faceVisible
		for {
			merged, err := h.doAdjacentMerge(face, mergeNonConvex)
			if err != nil {
				return err
			}
			if !merged {
				break
			}
		}
	}

	h.resolveUnclaimedPoints()

	return nil
}

// horizonFrame is one level of the iterative depth-first traversal of the
// faces visible from the eye point. stop is the edge through which the face
// was entered; cur walks the remainder of the ring.
type horizonFrame struct {
	cur  *HalfEdge
	stop *HalfEdge
	done bool
}

// calculateHorizon walks the faces visible from eyePnt depth-first, deleting
// them and releasing their outside points into the unclaimed list. Every edge
// crossed into a face that is not visible is appended to h.horizon; the
// traversal order makes the horizon come out ordered counter-clockwise around
// the visible region.
//
// The traversal uses an explicit frame stack so that inputs with very long
// visible regions cannot exhaust the call stack.
func (h *Hull) calculateHorizon(eyePnt mgl64.Vec3, edge0 *HalfEdge, face *Face) {
	h.deleteFacePoints(face, nil)
	face.mark = faceDeleted
	h.debugf("  visiting face [%s]", face.vertexString())

	var root horizonFrame
	if edge0 == nil {
		e := face.edge(0)
		root = horizonFrame{cur: e, stop: e}
	} else {
		root = horizonFrame{cur: edge0.next, stop: edge0}
	}
	stack := []horizonFrame{root}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		edge := frame.cur

		descend := false
		oppFace := edge.oppositeFace()
		if oppFace.mark == faceVisible {
			if oppFace.DistanceToPlane(eyePnt) > h.tolerance {
				descend = true
			} else {
				h.horizon = append(h.horizon, edge)
				h.debugf("  adding horizon edge %s", edge)
			}
		}

		frame.cur = edge.next
		if frame.cur == frame.stop {
			frame.done = true
		}

		if descend {
			oppFace := edge.opposite.face
			h.deleteFacePoints(oppFace, nil)
			oppFace.mark = faceDeleted
			h.debugf("  visiting face [%s]", oppFace.vertexString())

			stack = append(stack, horizonFrame{cur: edge.opposite.next, stop: edge.opposite})
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].done {
			stack = stack[:len(stack)-1]
		}
	}
}

// deleteFacePoints releases the outside points of face. With an absorbing
// face, points still above it are claimed by it and the rest join the
// unclaimed list; without one, the whole segment joins the unclaimed list.
func (h *Hull) deleteFacePoints(face, absorbingFace *Face) {
	faceVtxs := h.removeAllPointsFromFace(face)
	if faceVtxs == nil {
		return
	}

	if absorbingFace == nil {
		h.unclaimed.addChain(faceVtxs)
		return
	}

	var vtxNext *Vertex
	for vtx := faceVtxs; vtx != nil; vtx = vtxNext {
		vtxNext = vtx.next

		if absorbingFace.DistanceToPlane(vtx.pnt) > h.tolerance {
			h.addPointToFace(vtx, absorbingFace)
		} else {
			h.unclaimed.add(vtx)
		}
	}
}

// addAdjoiningFace erects the triangle (eyeVtx, he.tail, he.head) over a
// horizon edge, pairs its horizon-side edge with the face beyond the horizon,
// and returns its first eye-side edge for stitching to its neighbors.
func (h *Hull) addAdjoiningFace(eyeVtx *Vertex, he *HalfEdge) *HalfEdge {
	face := newTriangle(eyeVtx, he.Tail(), he.Head(), 0)
	h.faces = append(h.faces, face)
	face.edge(-1).setOpposite(he.opposite)

	return face.edge(0)
}

// addNewFaces builds one new face per horizon edge, in horizon order, and
// stitches consecutive faces to each other, closing the cone around the eye
// vertex.
func (h *Hull) addNewFaces(eyeVtx *Vertex) {
	var hedgeSideBegin, hedgeSidePrev *HalfEdge

	for _, horizonHe := range h.horizon {
		hedgeSide := h.addAdjoiningFace(eyeVtx, horizonHe)
		h.debugf("  new face [%s]", hedgeSide.face.vertexString())

		if hedgeSidePrev != nil {
			hedgeSide.next.setOpposite(hedgeSidePrev)
		} else {
			hedgeSideBegin = hedgeSide
		}

		h.newFaces.add(hedgeSide.face)
		hedgeSidePrev = hedgeSide
	}
	hedgeSideBegin.next.setOpposite(hedgeSidePrev)
}

// oppFaceDistance returns the signed distance of the neighboring face's
// centroid from he's face plane. Negative means the neighbor lies clearly
// below the plane and the pair is convex across the edge.
func (h *Hull) oppFaceDistance(he *HalfEdge) float64 {
	return he.face.DistanceToPlane(he.opposite.face.centroid)
}

// doAdjacentMerge walks face's ring looking for an edge whose two adjacent
// faces are non-convex under the given criterion, and merges across the first
// such edge found. It reports whether a merge happened, in which case the
// caller re-walks the face from its anchor edge, since the ring has changed.
func (h *Hull) doAdjacentMerge(face *Face, kind mergeType) (bool, error) {
	convex := true

	hedge := face.he0
	for {
		oppFace := hedge.oppositeFace()
		merge := false

		if kind == mergeNonConvex {
			// merge faces if they are definitively non-convex
			if h.oppFaceDistance(hedge) > -h.tolerance ||
				h.oppFaceDistance(hedge.opposite) > -h.tolerance {
				merge = true
			}
		} else {
			// merge faces if they are parallel or non-convex as
			// determined by the larger face; otherwise remember the
			// non-convexity for the second pass
			if face.area > oppFace.area {
				if h.oppFaceDistance(hedge) > -h.tolerance {
					merge = true
				} else if h.oppFaceDistance(hedge.opposite) > -h.tolerance {
					convex = false
				}
			} else {
				if h.oppFaceDistance(hedge.opposite) > -h.tolerance {
					merge = true
				} else if h.oppFaceDistance(hedge) > -h.tolerance {
					convex = false
				}
			}
		}

		if merge {
			h.debugf("  merging [%s] and [%s]", face.vertexString(), oppFace.vertexString())

			numDiscarded, err := face.mergeAdjacentFace(hedge, h.discardedFaces[:])
			if err != nil {
				return false, err
			}
			for i := 0; i < numDiscarded; i++ {
				h.deleteFacePoints(h.discardedFaces[i], face)
			}

			h.debugf("  result: [%s]", face.vertexString())

			return true, nil
		}

		hedge = hedge.next
		if hedge == face.he0 {
			break
		}
	}

	if !convex {
		face.mark = faceNonConvex
	}

	return false, nil
}

// resolveUnclaimedPoints reassigns every vertex released during this
// iteration to the new visible face it lies furthest above, or drops it as
// interior when it is above none. A distance beyond 1000 times the tolerance
// cannot be beaten enough to matter and ends the face scan early.
func (h *Hull) resolveUnclaimedPoints() {
	var vtxNext *Vertex
	for vtx := h.unclaimed.first(); vtx != nil; vtx = vtxNext {
		vtxNext = vtx.next

		maxDist := h.tolerance
		var maxFace *Face
		for newFace := h.newFaces.first(); newFace != nil; newFace = newFace.next {
			if newFace.mark != faceVisible {
				continue
			}

			dist := newFace.DistanceToPlane(vtx.pnt)
			if dist > maxDist {
				maxDist = dist
				maxFace = newFace
			}
			if maxDist > 1000*h.tolerance {
				break
			}
		}

		if maxFace != nil {
			h.addPointToFace(vtx, maxFace)
			h.debugf("  claiming point %d by face [%s]", vtx.index, maxFace.vertexString())
		} else {
			h.debugf("  discarding point %d as interior", vtx.index)
		}
	}
}

// removeHiddenFaces drops every face not marked visible from the face list.
func (h *Hull) removeHiddenFaces() {
	visible := h.faces[:0]
	for _, face := range h.faces {
		if face.mark == faceVisible {
			visible = append(visible, face)
		}
	}
	h.faces = visible
}
