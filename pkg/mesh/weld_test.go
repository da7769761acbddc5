package mesh

import (
	"testing"

	"github.com/Faultbox/meshconv/pkg/formats"
	vmath "github.com/Faultbox/meshconv/pkg/math"
)

func facet(a, b, c vmath.Vec3) formats.Facet {
	return formats.Facet{Vertices: [3]vmath.Vec3{a, b, c}}
}

func TestWeld_SingleTriangle(t *testing.T) {
	m := Weld([]formats.Facet{
		facet(vmath.Vec3{X: 0, Y: 0, Z: 0}, vmath.Vec3{X: 1, Y: 0, Z: 0}, vmath.Vec3{X: 0, Y: 1, Z: 0}),
	})

	if len(m.Vertices) != 3 {
		t.Errorf("expected 3 unique vertices, got %d", len(m.Vertices))
	}

	wantIndices := []uint32{0, 1, 2}
	if len(m.Indices) != 3 {
		t.Fatalf("expected 3 indices, got %d", len(m.Indices))
	}
	for i, want := range wantIndices {
		if m.Indices[i] != want {
			t.Errorf("index %d = %d, want %d", i, m.Indices[i], want)
		}
	}

	if m.Bounds == nil {
		t.Fatal("expected bounds for non-empty mesh")
	}
	if m.Bounds.Min != (vmath.Vec3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("bounds min = %v, want (0,0,0)", m.Bounds.Min)
	}
	if m.Bounds.Max != (vmath.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("bounds max = %v, want (1,1,0)", m.Bounds.Max)
	}
}

func TestWeld_SharedVertex(t *testing.T) {
	shared := vmath.Vec3{X: 1, Y: 0, Z: 0}
	m := Weld([]formats.Facet{
		facet(vmath.Vec3{X: 0, Y: 0, Z: 0}, shared, vmath.Vec3{X: 0, Y: 1, Z: 0}),
		facet(shared, vmath.Vec3{X: 2, Y: 0, Z: 0}, vmath.Vec3{X: 0, Y: 1, Z: 0}),
	})

	if len(m.Vertices) != 4 {
		t.Errorf("expected 4 unique vertices, got %d", len(m.Vertices))
	}
	if len(m.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(m.Indices))
	}

	// The shared vertex appears as index 1 in the first triangle and index
	// 0 of the second triple; both entries must name the same index.
	if m.Indices[1] != m.Indices[3] {
		t.Errorf("shared vertex got indices %d and %d", m.Indices[1], m.Indices[3])
	}
}

func TestWeld_FirstSeenOrder(t *testing.T) {
	m := Weld([]formats.Facet{
		facet(vmath.Vec3{X: 5, Y: 0, Z: 0}, vmath.Vec3{X: 6, Y: 0, Z: 0}, vmath.Vec3{X: 7, Y: 0, Z: 0}),
	})

	want := []float32{5, 6, 7}
	for i, x := range want {
		if m.Vertices[i].X != x {
			t.Errorf("vertex %d X = %v, want %v", i, m.Vertices[i].X, x)
		}
	}
}

func TestWeld_QuantizationMerges(t *testing.T) {
	// Differ only beyond the 5th decimal digit; must weld to one vertex.
	a := vmath.Vec3{X: 0.123451, Y: 0, Z: 0}
	b := vmath.Vec3{X: 0.123454, Y: 0, Z: 0}
	m := Weld([]formats.Facet{
		facet(a, vmath.Vec3{X: 1, Y: 0, Z: 0}, vmath.Vec3{X: 0, Y: 1, Z: 0}),
		facet(b, vmath.Vec3{X: 2, Y: 0, Z: 0}, vmath.Vec3{X: 0, Y: 2, Z: 0}),
	})

	if len(m.Vertices) != 5 {
		t.Errorf("expected 5 unique vertices after quantization, got %d", len(m.Vertices))
	}
	if m.Indices[0] != m.Indices[3] {
		t.Errorf("quantized-equal vertices got indices %d and %d", m.Indices[0], m.Indices[3])
	}
}

func TestWeld_Empty(t *testing.T) {
	m := Weld(nil)

	if len(m.Vertices) != 0 || len(m.Indices) != 0 {
		t.Errorf("expected empty buffers, got %d vertices %d indices",
			len(m.Vertices), len(m.Indices))
	}
	if m.Bounds != nil {
		t.Errorf("expected nil bounds for empty mesh, got %+v", m.Bounds)
	}
}

func TestQuantize_RoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float32
		want int64
	}{
		{0, 0},
		{1, 100000},
		{0.00001, 1},
		// 0.015625 is 2^-6, exactly representable, and scales to the exact
		// half 1562.5: rounds away from zero, negative mirrors positive.
		{0.015625, 1563},
		{-0.015625, -1563},
		// 0.000005 is NOT exactly representable; the nearest float32 sits
		// just below the half, so it rounds toward zero.
		{0.000005, 0},
		{-0.000005, 0},
		{0.0000049, 0},
		{-0.0000049, 0},
		{-1.5, -150000},
	}

	for _, tc := range tests {
		if got := quantize(tc.in); got != tc.want {
			t.Errorf("quantize(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDequantize_RoundTrips(t *testing.T) {
	for _, k := range []int64{-150000, -1, 0, 1, 99999, 100000} {
		if got := quantize(dequantize(k)); got != k {
			t.Errorf("quantize(dequantize(%d)) = %d", k, got)
		}
	}
}

func TestWeld_Deterministic(t *testing.T) {
	facets := []formats.Facet{
		facet(vmath.Vec3{X: 0, Y: 0, Z: 0}, vmath.Vec3{X: 1, Y: 0, Z: 0}, vmath.Vec3{X: 0, Y: 1, Z: 0}),
		facet(vmath.Vec3{X: 1, Y: 0, Z: 0}, vmath.Vec3{X: 1, Y: 1, Z: 0}, vmath.Vec3{X: 0, Y: 1, Z: 0}),
	}

	a := Weld(facets)
	b := Weld(facets)

	if len(a.Vertices) != len(b.Vertices) {
		t.Fatalf("vertex counts differ: %d vs %d", len(a.Vertices), len(b.Vertices))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Errorf("vertex %d differs: %v vs %v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Errorf("index %d differs: %d vs %d", i, a.Indices[i], b.Indices[i])
		}
	}
}
