// Package convert turns binary STL bytes into glTF output.
//
// Two strategies are available: the built-in transcoder, which welds
// vertices and controls the buffer layout byte for byte, and a library
// strategy that delegates document and buffer construction to
// github.com/qmuntal/gltf. Both are pure functions over byte slices; the
// caller owns all I/O.
package convert

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshconv/pkg/formats"
	"github.com/Faultbox/meshconv/pkg/mesh"
)

// Mode selects the output container.
type Mode int

// Output modes.
const (
	ModeSplit Mode = iota // glTF JSON plus external binary buffer
	ModeGLB               // single GLB container
)

// Method identifies a conversion strategy, as selected by callers.
type Method string

// Conversion methods.
const (
	MethodLibrary   Method = "library"    // qmuntal/gltf owns the layout
	MethodCustom    Method = "custom"     // built-in transcoder, split output
	MethodCustomGLB Method = "custom-glb" // built-in transcoder, GLB output
)

// ErrUnknownMethod reports an unrecognized conversion method name.
var ErrUnknownMethod = errors.New("unknown conversion method")

// DefaultBinaryURI is the relative buffer URI used in split mode when the
// caller does not provide one.
const DefaultBinaryURI = "mesh.bin"

// Options control a conversion.
type Options struct {
	Mode Mode
	// BinaryURI is the relative URI written into the glTF buffer in split
	// mode. Defaults to DefaultBinaryURI.
	BinaryURI string
}

// Result holds the output of one conversion. Split mode fills JSON and Bin;
// GLB mode fills GLB.
type Result struct {
	JSON []byte
	Bin  []byte
	GLB  []byte
}

// Convert runs the built-in transcoder: parse, weld, pack, assemble.
// It performs no I/O and shares no state between calls.
func Convert(data []byte, opts Options) (*Result, error) {
	stl, err := formats.ParseSTL(data)
	if err != nil {
		return nil, err
	}

	m := mesh.Weld(stl.Facets)
	packed, layout := mesh.Pack(m)

	info := formats.GLTFMeshInfo{
		IndexCount:       len(m.Indices),
		VertexCount:      len(m.Vertices),
		IndexByteLength:  layout.PaddedIndexLen,
		VertexByteLength: layout.VertexLen,
		TotalByteLength:  layout.Total,
	}
	if m.Bounds != nil {
		info.Min = []float32{m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z}
		info.Max = []float32{m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z}
	}
	if opts.Mode == ModeSplit {
		info.BinaryURI = opts.BinaryURI
		if info.BinaryURI == "" {
			info.BinaryURI = DefaultBinaryURI
		}
	}

	doc := formats.BuildGLTF(info)
	jsonDoc, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding glTF document: %w", err)
	}

	if opts.Mode == ModeGLB {
		glb, err := formats.EncodeGLB(jsonDoc, packed)
		if err != nil {
			return nil, err
		}
		return &Result{GLB: glb}, nil
	}

	return &Result{JSON: jsonDoc, Bin: packed}, nil
}

// Run dispatches a conversion by method name. This is the contract the
// transport layer calls: raw bytes and a mode flag in, typed result or
// typed error out.
func Run(method Method, data []byte, binaryURI string) (*Result, error) {
	switch method {
	case MethodLibrary:
		return ConvertLibrary(data, Options{Mode: ModeSplit})
	case MethodCustom:
		return Convert(data, Options{Mode: ModeSplit, BinaryURI: binaryURI})
	case MethodCustomGLB:
		return Convert(data, Options{Mode: ModeGLB})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
