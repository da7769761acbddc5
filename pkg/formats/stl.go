// Package formats provides parsers and encoders for 3D mesh file formats.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	vmath "github.com/Faultbox/meshconv/pkg/math"
)

// STL format errors.
var (
	ErrNotBinarySTL = errors.New("not a binary STL: file shorter than header")
	ErrTruncatedSTL = errors.New("truncated STL data")
)

// STL layout constants.
const (
	stlHeaderSize = 80
	stlCountSize  = 4
	stlFacetSize  = 50 // 12 floats (normal + 3 vertices) + 2-byte attribute
)

// Facet is one triangle read from an STL file. The facet normal present in
// the file is parsed but not retained; glTF consumers recompute shading from
// geometry and the welder only needs positions.
type Facet struct {
	Vertices [3]vmath.Vec3
}

// STL is a parsed binary STL file.
type STL struct {
	FacetCount uint32
	Facets     []Facet
}

// ParseSTL parses binary STL from raw bytes.
//
// The 80-byte header is ignored. The declared facet count must be backed by
// at least 50 bytes per facet; trailing bytes beyond the last facet are
// tolerated, matching the most permissive writers in the wild.
func ParseSTL(data []byte) (*STL, error) {
	if len(data) < stlHeaderSize+stlCountSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrNotBinarySTL, len(data))
	}

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])

	expected := uint64(stlHeaderSize+stlCountSize) + uint64(count)*stlFacetSize
	if expected > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d facets need %d bytes, have %d",
			ErrTruncatedSTL, count, expected, len(data))
	}

	stl := &STL{
		FacetCount: count,
		Facets:     make([]Facet, count),
	}

	offset := stlHeaderSize + stlCountSize
	for i := uint32(0); i < count; i++ {
		offset += 12 // skip normal
		for v := 0; v < 3; v++ {
			stl.Facets[i].Vertices[v] = vmath.Vec3{
				X: readFloat32(data[offset:]),
				Y: readFloat32(data[offset+4:]),
				Z: readFloat32(data[offset+8:]),
			}
			offset += 12
		}
		offset += 2 // skip attribute byte count
	}

	return stl, nil
}

// ParseSTLFile parses a binary STL file from disk.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}

// readFloat32 reads a little-endian float32 from a byte slice.
func readFloat32(data []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data))
}
