package formats

import "encoding/json"

// glTF 2.0 enum constants used by the assembler.
const (
	GLTFTargetElementArrayBuffer = 34963 // index data
	GLTFTargetArrayBuffer        = 34962 // vertex attribute data
	GLTFComponentUnsignedInt     = 5125
	GLTFComponentFloat           = 5126
)

// GLTF is a minimal glTF 2.0 document: one scene, one node, one mesh with a
// single primitive, one buffer, two buffer views (indices, positions) and
// two accessors.
type GLTF struct {
	Scenes      []GLTFScene      `json:"scenes"`
	Nodes       []GLTFNode       `json:"nodes"`
	Meshes      []GLTFMesh       `json:"meshes"`
	Buffers     []GLTFBuffer     `json:"buffers"`
	BufferViews []GLTFBufferView `json:"bufferViews"`
	Accessors   []GLTFAccessor   `json:"accessors"`
	Asset       GLTFAsset        `json:"asset"`
}

// GLTFScene references root nodes by index.
type GLTFScene struct {
	Nodes []int `json:"nodes"`
}

// GLTFNode references a mesh by index.
type GLTFNode struct {
	Mesh int `json:"mesh"`
}

// GLTFMesh holds rendering primitives.
type GLTFMesh struct {
	Primitives []GLTFPrimitive `json:"primitives"`
}

// GLTFPrimitive maps attribute semantics to accessor indices.
type GLTFPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
}

// GLTFBuffer describes one binary buffer. URI is empty in GLB container
// mode, where the buffer is the embedded BIN chunk.
type GLTFBuffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri,omitempty"`
}

// GLTFBufferView describes a byte range of a buffer.
type GLTFBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target"`
}

// GLTFAccessor describes typed, counted access to a buffer view.
// Min and Max are float32 so that encoding/json emits the shortest
// representation that round-trips 32-bit values.
type GLTFAccessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

// GLTFAsset identifies the glTF version.
type GLTFAsset struct {
	Version string `json:"version"`
}

// GLTFMeshInfo is everything the assembler needs to describe one packed
// mesh: element counts, the packer's byte layout and the welder's bounds.
type GLTFMeshInfo struct {
	IndexCount  int
	VertexCount int

	// Byte layout, as produced by the packer.
	IndexByteLength  int // padded index section length
	VertexByteLength int
	TotalByteLength  int

	// Position bounds; nil slices for an empty mesh.
	Min []float32
	Max []float32

	// BinaryURI is the relative URI of the external buffer in split-file
	// mode. Leave empty for GLB container mode.
	BinaryURI string
}

// BuildGLTF assembles the glTF document for a packed mesh. The emitted
// byte offsets and lengths mirror the packer's layout exactly; a mismatch
// here makes the buffer unreadable for any standard glTF consumer.
func BuildGLTF(info GLTFMeshInfo) *GLTF {
	indexMax := []float32{0}
	if info.VertexCount > 0 {
		indexMax = []float32{float32(info.VertexCount - 1)}
	}

	var indexAccMin, indexAccMax []float32
	if info.IndexCount > 0 {
		indexAccMin = []float32{0}
		indexAccMax = indexMax
	}

	return &GLTF{
		Scenes: []GLTFScene{{Nodes: []int{0}}},
		Nodes:  []GLTFNode{{Mesh: 0}},
		Meshes: []GLTFMesh{{
			Primitives: []GLTFPrimitive{{
				Attributes: map[string]int{"POSITION": 1},
				Indices:    0,
			}},
		}},
		Buffers: []GLTFBuffer{{
			ByteLength: info.TotalByteLength,
			URI:        info.BinaryURI,
		}},
		BufferViews: []GLTFBufferView{
			{
				Buffer:     0,
				ByteOffset: 0,
				ByteLength: info.IndexByteLength,
				Target:     GLTFTargetElementArrayBuffer,
			},
			{
				Buffer:     0,
				ByteOffset: info.IndexByteLength,
				ByteLength: info.VertexByteLength,
				Target:     GLTFTargetArrayBuffer,
			},
		},
		Accessors: []GLTFAccessor{
			{
				BufferView:    0,
				ByteOffset:    0,
				ComponentType: GLTFComponentUnsignedInt,
				Count:         info.IndexCount,
				Type:          "SCALAR",
				Min:           indexAccMin,
				Max:           indexAccMax,
			},
			{
				BufferView:    1,
				ByteOffset:    0,
				ComponentType: GLTFComponentFloat,
				Count:         info.VertexCount,
				Type:          "VEC3",
				Min:           info.Min,
				Max:           info.Max,
			},
		},
		Asset: GLTFAsset{Version: "2.0"},
	}
}

// Encode serializes the document as minified JSON.
func (g *GLTF) Encode() ([]byte, error) {
	return json.Marshal(g)
}
