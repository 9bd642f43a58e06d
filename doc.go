// Package qhull3d provides three-dimensional convex hull computation for Go.
//
// The library lives in the quickhull subpackage, which implements the
// Quickhull algorithm (Barber, Dobkin, Huhdanpaa, 1996) over a half-edge
// mesh. Given a set of points it produces the faces bounding their convex
// hull, each face a convex polygon of original-input indices ordered
// counter-clockwise when viewed from outside.
//
// # Basic Usage
//
// The simplest way to use this library is through the ConvexHull function:
//
//	faces, err := quickhull.ConvexHull([]float64{
//	    0, 0, 0,
//	    1, 0, 0,
//	    0, 1, 0,
//	    0, 0, 1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, face := range faces {
//	    fmt.Println(face)
//	}
//
// # Advanced Usage
//
// For more control, construct a Hull directly:
//
//	hull, err := quickhull.New(coords)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hull.SetExplicitDistanceTolerance(1e-8)
//	if err := hull.Build(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(hull.Stats())
//
// # Degenerate Inputs
//
// Inputs that do not span three dimensions cannot form a hull. Build reports
// them with the sentinel errors ErrCoincident, ErrColinear and ErrCoplanar,
// whose messages are stable and may be matched by callers.
//
// # Verification
//
// A finished hull can be verified:
//
//	if !hull.Check(os.Stderr) {
//	    log.Fatal("hull failed verification")
//	}
//
// Check confirms the half-edge invariants, convexity across every edge, and
// containment of every input point. It does not count vertices, edges and
// faces; the Euler characteristic (V - E + F) is reported by ComputeStats.
package qhull3d
