package quickhull

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// randomCloud returns n points drawn uniformly from the cube [-1,1]^3.
func randomCloud(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))

	coords := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		coords = append(coords, 2*r.Float64()-1, 2*r.Float64()-1, 2*r.Float64()-1)
	}

	return coords
}

func buildHull(t *testing.T, coords []float64) *Hull {
	t.Helper()

	hull, err := New(coords)
	if err != nil {
		t.Fatal(err)
	}
	if err := hull.Build(); err != nil {
		t.Fatal(err)
	}

	return hull
}

// checkHalfEdgeInvariants verifies the pointer-graph invariants of every
// surviving face ring.
func checkHalfEdgeInvariants(t *testing.T, hull *Hull) {
	t.Helper()

	for _, face := range hull.faces {
		if face.mark != faceVisible {
			t.Errorf("face [%s] survived with mark %d", face.vertexString(), face.mark)
		}
		if face.area <= 0 {
			t.Errorf("face [%s] has non-positive area %g", face.vertexString(), face.area)
		}

		he := face.he0
		for {
			if he.opposite == nil {
				t.Fatalf("face [%s]: unreflected half edge %s", face.vertexString(), he)
			}
			if he.opposite.opposite != he {
				t.Fatalf("face [%s]: asymmetric opposite at %s", face.vertexString(), he)
			}
			if he.next.prev != he || he.prev.next != he {
				t.Fatalf("face [%s]: broken ring links at %s", face.vertexString(), he)
			}
			if he.opposite.face == face {
				t.Fatalf("face [%s]: edge %s opposes its own face", face.vertexString(), he)
			}
			if he.vertex == he.prev.vertex {
				t.Fatalf("face [%s]: zero-length edge %s", face.vertexString(), he)
			}

			he = he.next
			if he == face.he0 {
				break
			}
		}
	}
}

// TestPlatonicHulls checks the hulls of the five Platonic point clouds
// against their known topology. The cube and dodecahedron exercise the
// coplanar-face merging: their hulls carry quadrilateral and pentagonal
// faces.
func TestPlatonicHulls(t *testing.T) {
	tests := []struct {
		name      string
		cloud     func() []float64
		vertices  int
		edges     int
		faces     int
		faceSides int
	}{
		{"Tetrahedron", tetrahedronCloud, 4, 6, 4, 3},
		{"Cube", cubeCloud, 8, 12, 6, 4},
		{"Octahedron", octahedronCloud, 6, 12, 8, 3},
		{"Dodecahedron", dodecahedronCloud, 20, 30, 12, 5},
		{"Icosahedron", icosahedronCloud, 12, 30, 20, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hull := buildHull(t, tt.cloud())

			stats := hull.ComputeStats()
			if stats.VertexCount != tt.vertices {
				t.Errorf("expected %d vertices, got %d", tt.vertices, stats.VertexCount)
			}
			if stats.EdgeCount != tt.edges {
				t.Errorf("expected %d edges, got %d", tt.edges, stats.EdgeCount)
			}
			if stats.FaceCount != tt.faces {
				t.Errorf("expected %d faces, got %d", tt.faces, stats.FaceCount)
			}
			if stats.EulerCharacteristic != 2 {
				t.Errorf("expected Euler characteristic 2, got %d", stats.EulerCharacteristic)
			}

			for _, face := range hull.Faces() {
				if len(face) != tt.faceSides {
					t.Errorf("expected %d-sided faces, got %v", tt.faceSides, face)
				}
			}

			checkHalfEdgeInvariants(t, hull)
			if !hull.Check(testWriter{t}) {
				t.Error("hull failed verification")
			}
		})
	}
}

// TestRandomHullInvariants builds hulls over random clouds of several sizes
// and verifies the structural invariants and the verification pass.
func TestRandomHullInvariants(t *testing.T) {
	sizes := []int{10, 25, 100, 500}

	for _, n := range sizes {
		for seed := int64(1); seed <= 4; seed++ {
			hull := buildHull(t, randomCloud(n, seed))

			checkHalfEdgeInvariants(t, hull)
			if !hull.Check(testWriter{t}) {
				t.Fatalf("hull of %d points (seed %d) failed verification", n, seed)
			}

			stats := hull.ComputeStats()
			if stats.EulerCharacteristic != 2 {
				t.Errorf("n=%d seed=%d: Euler characteristic %d", n, seed, stats.EulerCharacteristic)
			}
			for _, face := range hull.Faces() {
				if len(face) < 3 {
					t.Errorf("n=%d seed=%d: face with %d vertices", n, seed, len(face))
				}
			}
		}
	}
}

// TestPointInclusion verifies that no input point lies further than 10 times
// the tolerance outside any hull face.
func TestPointInclusion(t *testing.T) {
	hull := buildHull(t, randomCloud(200, 11))

	limit := 10 * hull.DistanceTolerance()
	for _, vtx := range hull.pointBuffer {
		for _, face := range hull.faces {
			if dist := face.DistanceToPlane(vtx.pnt); dist > limit {
				t.Fatalf("point %d is %g outside face [%s]", vtx.index, dist, face.vertexString())
			}
		}
	}
}

// TestEdgeConvexity verifies that every adjacent face pair is convex across
// its shared edge within tolerance, in both directions.
func TestEdgeConvexity(t *testing.T) {
	hull := buildHull(t, randomCloud(150, 5))

	tol := hull.DistanceTolerance()
	for _, face := range hull.faces {
		he := face.he0
		for {
			if dist := hull.oppFaceDistance(he); dist > tol {
				t.Fatalf("edge %s is non-convex by %g", he, dist)
			}
			if dist := hull.oppFaceDistance(he.opposite); dist > tol {
				t.Fatalf("edge %s is non-convex by %g on the far side", he.opposite, dist)
			}

			he = he.next
			if he == face.he0 {
				break
			}
		}
	}
}

// TestRotationInvariance checks that rigidly rotating the input produces a
// combinatorially identical hull: the same set of index rings up to cyclic
// rotation.
func TestRotationInvariance(t *testing.T) {
	coords := randomCloud(40, 3)
	reference := buildHull(t, coords).Faces()

	rotations := []mgl64.Mat3{
		mgl64.Rotate3DZ(0.7),
		mgl64.Rotate3DX(1.2).Mul3(mgl64.Rotate3DY(-0.4)),
		mgl64.Rotate3DY(2.9).Mul3(mgl64.Rotate3DZ(0.3)).Mul3(mgl64.Rotate3DX(-1.8)),
	}

	for i, rot := range rotations {
		rotated := make([]float64, 0, len(coords))
		for j := 0; j < len(coords); j += 3 {
			p := rot.Mul3x1(mgl64.Vec3{coords[j], coords[j+1], coords[j+2]})
			rotated = append(rotated, p.X(), p.Y(), p.Z())
		}

		hull := buildHull(t, rotated)
		if !hull.Check(testWriter{t}) {
			t.Fatalf("rotation %d: hull failed verification", i)
		}
		if !sameFaceSets(reference, hull.Faces()) {
			t.Errorf("rotation %d changed the hull combinatorially", i)
		}
	}
}

// TestRoundTrip rebuilds the hull from its own vertices and expects the same
// face set after remapping the subset indices.
func TestRoundTrip(t *testing.T) {
	coords := randomCloud(120, 9)
	hull := buildHull(t, coords)

	verts := hull.Vertices()
	subset := make([]float64, 0, 3*len(verts))
	for _, idx := range verts {
		subset = append(subset, coords[3*idx], coords[3*idx+1], coords[3*idx+2])
	}

	rebuilt := buildHull(t, subset)
	remapped := rebuilt.Faces()
	for _, face := range remapped {
		for i, idx := range face {
			face[i] = verts[idx]
		}
	}

	if !sameFaceSets(hull.Faces(), remapped) {
		t.Error("hull of the hull vertices differs from the original hull")
	}
}

// testWriter lets Check report diagnostics through the test log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", p)
	return len(p), nil
}
