package mesh

import (
	"encoding/binary"
	"math"
)

// Layout describes the byte layout produced by Pack. Every offset and
// length declared in the glTF document must match these values exactly.
type Layout struct {
	IndexLen       int // raw index section length
	PaddedIndexLen int // index section length rounded up to a 4-byte boundary
	VertexLen      int // position section length
	Total          int // PaddedIndexLen + VertexLen
}

// LayoutFor computes the packed layout for a mesh without packing it.
func LayoutFor(m *Mesh) Layout {
	indexLen := len(m.Indices) * 4
	padded := (indexLen + 3) &^ 3
	vertexLen := len(m.Vertices) * 12
	return Layout{
		IndexLen:       indexLen,
		PaddedIndexLen: padded,
		VertexLen:      vertexLen,
		Total:          padded + vertexLen,
	}
}

// Pack serializes the mesh into one binary buffer: indices as little-endian
// uint32, zero-padded to a 4-byte boundary, followed by positions as
// little-endian float32 triples in first-seen vertex order.
func Pack(m *Mesh) ([]byte, Layout) {
	layout := LayoutFor(m)
	buf := make([]byte, layout.Total)

	off := 0
	for _, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[off:], idx)
		off += 4
	}

	// Padding bytes stay zero.
	off = layout.PaddedIndexLen
	for _, v := range m.Vertices {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(v.Z))
		off += 12
	}

	return buf, layout
}
