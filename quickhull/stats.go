package quickhull

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HullStats provides statistical information about a built hull's topology
// and geometry.
type HullStats struct {
	VertexCount int
	EdgeCount   int
	FaceCount   int
	// EulerCharacteristic is V - E + F; 2 for every closed convex hull.
	EulerCharacteristic int

	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	MinFaceArea   float64
	MaxFaceArea   float64
	AvgFaceArea   float64

	SurfaceArea float64
	// Volume is the enclosed volume, computed by the divergence theorem
	// from the face planes.
	Volume float64

	BoundingBox struct {
		Min, Max mgl64.Vec3
	}
}

// ComputeStats computes statistics for the built hull. The zero value is
// returned before the first successful build.
func (h *Hull) ComputeStats() *HullStats {
	stats := &HullStats{}
	if len(h.faces) == 0 {
		return stats
	}

	stats.FaceCount = len(h.faces)
	stats.VertexCount = h.NumVertices()

	stats.MinEdgeLength = math.Inf(1)
	stats.MinFaceArea = math.Inf(1)

	totalLength := 0.0
	for _, face := range h.faces {
		area := face.area
		if area < stats.MinFaceArea {
			stats.MinFaceArea = area
		}
		if area > stats.MaxFaceArea {
			stats.MaxFaceArea = area
		}
		stats.SurfaceArea += area
		stats.Volume += face.normal.Dot(face.centroid) * area / 3

		he := face.he0
		for {
			// visit each undirected edge from one side only
			if he.vertex.index > he.Tail().index {
				length := he.length()
				if length < stats.MinEdgeLength {
					stats.MinEdgeLength = length
				}
				if length > stats.MaxEdgeLength {
					stats.MaxEdgeLength = length
				}
				totalLength += length
				stats.EdgeCount++
			}

			he = he.next
			if he == face.he0 {
				break
			}
		}
	}

	stats.AvgEdgeLength = totalLength / float64(stats.EdgeCount)
	stats.AvgFaceArea = stats.SurfaceArea / float64(stats.FaceCount)
	stats.EulerCharacteristic = stats.VertexCount - stats.EdgeCount + stats.FaceCount

	first := true
	for _, face := range h.faces {
		he := face.he0
		for {
			pos := he.vertex.pnt
			if first {
				stats.BoundingBox.Min = pos
				stats.BoundingBox.Max = pos
				first = false
			} else {
				for i := 0; i < 3; i++ {
					if pos[i] < stats.BoundingBox.Min[i] {
						stats.BoundingBox.Min[i] = pos[i]
					}
					if pos[i] > stats.BoundingBox.Max[i] {
						stats.BoundingBox.Max[i] = pos[i]
					}
				}
			}

			he = he.next
			if he == face.he0 {
				break
			}
		}
	}

	return stats
}

// Stats returns a string with basic hull statistics including vertex count
// (V), edge count (E), face count (F), and Euler characteristic (χ).
func (h *Hull) Stats() string {
	stats := h.ComputeStats()
	return fmt.Sprintf("hull: V=%d, E=%d, F=%d, χ=%d",
		stats.VertexCount, stats.EdgeCount, stats.FaceCount, stats.EulerCharacteristic)
}
