package quickhull

import (
	"math"
	"testing"
)

// sphereCloud distributes n points over the unit sphere on a Fibonacci
// lattice; every point ends up on the hull.
func sphereCloud(n int) []float64 {
	golden := math.Pi * (3 - math.Sqrt(5))

	coords := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(n-1)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		coords = append(coords, r*math.Cos(theta), y, r*math.Sin(theta))
	}

	return coords
}

// BenchmarkBuild benchmarks hull construction over clouds where every point
// survives onto the hull.
func BenchmarkBuild(b *testing.B) {
	benchmarks := []struct {
		name string
		n    int
	}{
		{"Sphere64", 64},
		{"Sphere256", 256},
		{"Sphere1024", 1024},
	}

	for _, bm := range benchmarks {
		coords := sphereCloud(bm.n)
		b.Run(bm.name, func(b *testing.B) {
			hull, err := New(coords)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := hull.Build(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuildRandom benchmarks hull construction over uniform clouds,
// where most points are interior.
func BenchmarkBuildRandom(b *testing.B) {
	benchmarks := []struct {
		name string
		n    int
	}{
		{"Random100", 100},
		{"Random1000", 1000},
		{"Random10000", 10000},
	}

	for _, bm := range benchmarks {
		coords := randomCloud(bm.n, 1)
		b.Run(bm.name, func(b *testing.B) {
			hull, err := New(coords)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := hull.Build(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkConvexHull(b *testing.B) {
	coords := randomCloud(500, 3)

	for i := 0; i < b.N; i++ {
		if _, err := ConvexHull(coords); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheck(b *testing.B) {
	hull, err := New(sphereCloud(512))
	if err != nil {
		b.Fatal(err)
	}
	if err := hull.Build(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !hull.Check(nil) {
			b.Fatal("check failed")
		}
	}
}

func BenchmarkComputeStats(b *testing.B) {
	hull, err := New(sphereCloud(512))
	if err != nil {
		b.Fatal(err)
	}
	if err := hull.Build(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = hull.ComputeStats()
	}
}
