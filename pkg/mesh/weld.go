// Package mesh converts triangle soups into indexed meshes and packs them
// into the byte layout expected by glTF buffer views.
package mesh

import (
	"math"

	"github.com/Faultbox/meshconv/pkg/formats"
	vmath "github.com/Faultbox/meshconv/pkg/math"
)

// quantScale is the coordinate quantization factor: 5 decimal digits.
const quantScale = 1e5

// Bounds is an axis-aligned bounding box over quantized coordinates.
type Bounds struct {
	Min vmath.Vec3
	Max vmath.Vec3
}

// Mesh is an indexed triangle mesh produced by welding.
type Mesh struct {
	// Vertices holds unique vertices in first-seen order. Coordinates are
	// quantized to 5 decimal digits.
	Vertices []vmath.Vec3
	// Indices holds 3 entries per triangle, referencing Vertices.
	Indices []uint32
	// Bounds is nil for an empty mesh.
	Bounds *Bounds
}

// quantKey is the identity of a vertex for welding purposes.
type quantKey [3]int64

// quantize rounds a coordinate to 5 decimal digits, half away from zero.
// -0.000005 quantizes to -0.00001, not 0.
func quantize(c float32) int64 {
	return int64(math.Round(float64(c) * quantScale))
}

// dequantize converts a quantized coordinate back to a float value.
func dequantize(k int64) float32 {
	return float32(float64(k) / quantScale)
}

// Weld deduplicates the vertices of the given facets and builds an index
// buffer. Two vertices are merged when their quantized coordinates are
// equal. Indices are dense, assigned in strict first-encounter order, and
// never reassigned. The vertex table is an explicit append-only slice plus
// a lookup map, so ordering does not depend on map iteration.
func Weld(facets []formats.Facet) *Mesh {
	m := &Mesh{
		Indices: make([]uint32, 0, len(facets)*3),
	}
	table := make(map[quantKey]uint32, len(facets))

	for _, f := range facets {
		for _, v := range f.Vertices {
			key := quantKey{quantize(v.X), quantize(v.Y), quantize(v.Z)}

			idx, ok := table[key]
			if !ok {
				idx = uint32(len(m.Vertices))
				table[key] = idx

				q := vmath.Vec3{
					X: dequantize(key[0]),
					Y: dequantize(key[1]),
					Z: dequantize(key[2]),
				}
				m.Vertices = append(m.Vertices, q)

				if m.Bounds == nil {
					m.Bounds = &Bounds{Min: q, Max: q}
				} else {
					m.Bounds.Min = m.Bounds.Min.Min(q)
					m.Bounds.Max = m.Bounds.Max.Max(q)
				}
			}
			m.Indices = append(m.Indices, idx)
		}
	}

	return m
}
