package convert

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/meshconv/pkg/formats"
)

// ConvertLibrary converts STL bytes by delegating glTF construction to
// qmuntal/gltf. The library owns accessor and buffer layout; triangles are
// handed over unwelded. Output shape matches the built-in transcoder: a
// GLB stream in GLB mode, otherwise a self-contained glTF JSON document
// with the buffer embedded as a data URI.
func ConvertLibrary(data []byte, opts Options) (*Result, error) {
	stl, err := formats.ParseSTL(data)
	if err != nil {
		return nil, err
	}

	positions := make([][3]float32, 0, len(stl.Facets)*3)
	indices := make([]uint32, 0, len(stl.Facets)*3)
	for _, f := range stl.Facets {
		for _, v := range f.Vertices {
			indices = append(indices, uint32(len(positions)))
			positions = append(positions, [3]float32{v.X, v.Y, v.Z})
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "meshconv"

	posAccessor := modeler.WritePosition(doc, positions)
	indexAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
		},
		Indices: gltf.Index(uint32(indexAccessor)),
	}
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = opts.Mode == ModeGLB

	if !enc.AsBinary {
		// JSON output needs the buffer inlined as a data URI.
		doc.Buffers[0].EmbeddedResource()
	}

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding with gltf library: %w", err)
	}

	if opts.Mode == ModeGLB {
		return &Result{GLB: buf.Bytes()}, nil
	}
	return &Result{JSON: buf.Bytes()}, nil
}
