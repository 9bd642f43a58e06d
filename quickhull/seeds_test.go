package quickhull

import (
	"math"
	"sort"
)

// Point clouds of the five Platonic solids, used as fixtures across the test
// suite. Their hulls have well-known vertex, edge and face counts, and the
// cube and dodecahedron exercise the coplanar-face merging.

func tetrahedronCloud() []float64 {
	a := 1.0 / math.Sqrt(3)
	return []float64{
		a, a, a,
		a, -a, -a,
		-a, a, -a,
		-a, -a, a,
	}
}

func cubeCloud() []float64 {
	return []float64{
		1, 1, 1,
		1, 1, -1,
		1, -1, 1,
		1, -1, -1,
		-1, 1, 1,
		-1, 1, -1,
		-1, -1, 1,
		-1, -1, -1,
	}
}

func octahedronCloud() []float64 {
	return []float64{
		1, 0, 0,
		-1, 0, 0,
		0, 1, 0,
		0, -1, 0,
		0, 0, 1,
		0, 0, -1,
	}
}

func dodecahedronCloud() []float64 {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	invPhi := 1.0 / phi

	return []float64{
		1, 1, 1,
		1, 1, -1,
		1, -1, 1,
		1, -1, -1,
		-1, 1, 1,
		-1, 1, -1,
		-1, -1, 1,
		-1, -1, -1,

		0, phi, invPhi,
		0, phi, -invPhi,
		0, -phi, invPhi,
		0, -phi, -invPhi,

		invPhi, 0, phi,
		invPhi, 0, -phi,
		-invPhi, 0, phi,
		-invPhi, 0, -phi,

		phi, invPhi, 0,
		phi, -invPhi, 0,
		-phi, invPhi, 0,
		-phi, -invPhi, 0,
	}
}

func icosahedronCloud() []float64 {
	phi := (1.0 + math.Sqrt(5)) / 2.0

	return []float64{
		0, 1, phi,
		0, 1, -phi,
		0, -1, phi,
		0, -1, -phi,

		1, phi, 0,
		1, -phi, 0,
		-1, phi, 0,
		-1, -phi, 0,

		phi, 0, 1,
		phi, 0, -1,
		-phi, 0, 1,
		-phi, 0, -1,
	}
}

// canonicalFaces normalizes a face set for comparison: each ring is rotated
// so its smallest index comes first, and the rings are sorted. Winding order
// is preserved.
func canonicalFaces(faces [][]int) [][]int {
	out := make([][]int, len(faces))
	for i, face := range faces {
		out[i] = rotateMinFirst(face)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessIntSlice(out[i], out[j])
	})

	return out
}

func rotateMinFirst(face []int) []int {
	minAt := 0
	for i, idx := range face {
		if idx < face[minAt] {
			minAt = i
		}
	}

	out := make([]int, len(face))
	for i := range face {
		out[i] = face[(minAt+i)%len(face)]
	}

	return out
}

func lessIntSlice(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

func sameFaceSets(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}

	ca := canonicalFaces(a)
	cb := canonicalFaces(b)
	for i := range ca {
		if len(ca[i]) != len(cb[i]) {
			return false
		}
		for j := range ca[i] {
			if ca[i][j] != cb[i][j] {
				return false
			}
		}
	}

	return true
}
