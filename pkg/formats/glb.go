package formats

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
)

// GLB format errors.
var (
	// ErrChunkSizeMismatch reports a disagreement between a declared chunk
	// length and the bytes actually written. This is an internal layout
	// fault, not a recoverable input error.
	ErrChunkSizeMismatch = errors.New("GLB chunk length mismatch")

	ErrInvalidGLBMagic       = errors.New("invalid GLB magic")
	ErrUnsupportedGLBVersion = errors.New("unsupported GLB version")
	ErrTruncatedGLBData      = errors.New("truncated GLB data")
)

// GLB container constants.
const (
	GLBMagic     = 0x46546C67 // "glTF"
	GLBVersion   = 2
	GLBChunkJSON = 0x4E4F534A // "JSON"
	GLBChunkBIN  = 0x004E4942 // "BIN\0"

	glbHeaderSize = 12
	glbChunkSize  = 8
)

// EncodeGLB wraps a glTF JSON document and its binary buffer into one GLB
// stream: 12-byte header, JSON chunk, BIN chunk. The JSON payload is
// compacted before measuring, then padded with spaces to a 4-byte boundary;
// the binary payload is padded with zero bytes, as the container format
// requires.
func EncodeGLB(jsonDoc, bin []byte) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, jsonDoc); err != nil {
		return nil, fmt.Errorf("compacting glTF JSON: %w", err)
	}

	jsonPadded := pad4(compact.Bytes(), ' ')
	binPadded := pad4(bin, 0)

	total := glbHeaderSize +
		glbChunkSize + len(jsonPadded) +
		glbChunkSize + len(binPadded)

	buf := bytes.NewBuffer(make([]byte, 0, total))

	// File header.
	writeUint32(buf, GLBMagic)
	writeUint32(buf, GLBVersion)
	writeUint32(buf, uint32(total))

	// JSON chunk.
	writeUint32(buf, uint32(len(jsonPadded)))
	writeUint32(buf, GLBChunkJSON)
	buf.Write(jsonPadded)

	// BIN chunk.
	writeUint32(buf, uint32(len(binPadded)))
	writeUint32(buf, GLBChunkBIN)
	buf.Write(binPadded)

	if buf.Len() != total {
		return nil, fmt.Errorf("%w: declared %d bytes, wrote %d",
			ErrChunkSizeMismatch, total, buf.Len())
	}

	return buf.Bytes(), nil
}

// DecodeGLB splits a GLB stream into its JSON document and binary buffer.
// Payloads are returned with chunk padding still attached, as declared by
// the chunk headers.
func DecodeGLB(data []byte) (jsonDoc, bin []byte, err error) {
	if len(data) < glbHeaderSize {
		return nil, nil, ErrTruncatedGLBData
	}
	if binary.LittleEndian.Uint32(data[0:]) != GLBMagic {
		return nil, nil, ErrInvalidGLBMagic
	}
	if v := binary.LittleEndian.Uint32(data[4:]); v != GLBVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedGLBVersion, v)
	}
	if total := binary.LittleEndian.Uint32(data[8:]); uint64(total) != uint64(len(data)) {
		return nil, nil, fmt.Errorf("%w: header declares %d bytes, have %d",
			ErrTruncatedGLBData, total, len(data))
	}

	offset := glbHeaderSize
	for offset < len(data) {
		if offset+glbChunkSize > len(data) {
			return nil, nil, fmt.Errorf("%w: chunk header at %d", ErrTruncatedGLBData, offset)
		}
		length := int(binary.LittleEndian.Uint32(data[offset:]))
		ctype := binary.LittleEndian.Uint32(data[offset+4:])
		offset += glbChunkSize

		if offset+length > len(data) {
			return nil, nil, fmt.Errorf("%w: chunk payload at %d", ErrTruncatedGLBData, offset)
		}

		switch ctype {
		case GLBChunkJSON:
			jsonDoc = data[offset : offset+length]
		case GLBChunkBIN:
			bin = data[offset : offset+length]
		}
		offset += length
	}

	if jsonDoc == nil {
		return nil, nil, fmt.Errorf("%w: missing JSON chunk", ErrTruncatedGLBData)
	}
	return jsonDoc, bin, nil
}

// pad4 returns data extended with fill bytes to the next 4-byte boundary.
func pad4(data []byte, fill byte) []byte {
	rem := len(data) % 4
	if rem == 0 {
		return data
	}
	padded := make([]byte, len(data), len(data)+4-rem)
	copy(padded, data)
	for i := rem; i < 4; i++ {
		padded = append(padded, fill)
	}
	return padded
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
