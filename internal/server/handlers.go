package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/meshconv/internal/storage"
	"github.com/Faultbox/meshconv/pkg/convert"
	"github.com/Faultbox/meshconv/pkg/formats"
)

// convertResponse mirrors the upload API's JSON contract. Single-file
// results fill FileContent; split results fill GltfContent and BinContent.
type convertResponse struct {
	Method      string `json:"method"`
	Filename    string `json:"filename"`
	FileContent string `json:"file_content,omitempty"`
	GltfContent string `json:"gltf_content,omitempty"`
	BinContent  string `json:"bin_content,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// methodInfo describes one conversion strategy in the catalog endpoint.
type methodInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	OutputFormat string `json:"output_format"`
}

var methodCatalog = []methodInfo{
	{
		ID:           string(convert.MethodLibrary),
		Name:         "glTF library",
		Description:  "Delegates document and buffer layout to the qmuntal/gltf library",
		OutputFormat: "GLTF",
	},
	{
		ID:           string(convert.MethodCustom),
		Name:         "Built-in transcoder",
		Description:  "Welded, indexed mesh with explicit buffer layout",
		OutputFormat: "GLTF + BIN",
	},
	{
		ID:           string(convert.MethodCustomGLB),
		Name:         "Built-in transcoder (GLB)",
		Description:  "Welded, indexed mesh in a single binary container",
		OutputFormat: "GLB",
	},
}

func (s *Server) maxUploadBytes() int64 {
	return int64(s.cfg.Server.MaxUploadMiB) << 20
}

// handleConvert accepts a multipart STL upload and returns the converted
// artifact(s) base64-encoded, after persisting them to the store.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.maxUploadBytes()

	// Allow some slack for multipart framing; the payload itself is
	// checked again below.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64<<10)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".stl") {
		s.writeError(w, http.StatusBadRequest, "only STL files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "reading upload")
		return
	}
	if int64(len(data)) > maxBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	method := convert.Method(r.FormValue("method"))
	if method == "" {
		method = convert.Method(s.cfg.Convert.DefaultMethod)
	}

	id := uuid.NewString()

	res, err := convert.Run(method, data, id+".bin")
	if err != nil {
		s.writeConvertError(w, r, err)
		return
	}

	resp, err := s.persist(method, id, res)
	if err != nil {
		s.log.Error("persisting artifacts", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "storing conversion result")
		return
	}

	s.log.Info("conversion done",
		zap.String("method", string(method)),
		zap.String("filename", resp.Filename),
		zap.Int("input_bytes", len(data)),
	)
	s.writeJSON(w, http.StatusOK, resp)
}

// persist stores every artifact of a result and builds the response. If a
// later write fails, earlier artifacts of the same conversion are removed
// so no half-stored result is served.
func (s *Server) persist(method convert.Method, id string, res *convert.Result) (*convertResponse, error) {
	resp := &convertResponse{Method: string(method)}

	switch {
	case res.GLB != nil:
		resp.Filename = id + ".glb"
		resp.FileContent = base64.StdEncoding.EncodeToString(res.GLB)
		if err := s.store.Put(resp.Filename, res.GLB); err != nil {
			return nil, err
		}

	case res.Bin != nil:
		resp.Filename = id + ".gltf"
		resp.GltfContent = base64.StdEncoding.EncodeToString(res.JSON)
		resp.BinContent = base64.StdEncoding.EncodeToString(res.Bin)
		if err := s.store.Put(resp.Filename, res.JSON); err != nil {
			return nil, err
		}
		if err := s.store.Put(id+".bin", res.Bin); err != nil {
			s.store.Delete(resp.Filename)
			return nil, err
		}

	default:
		resp.Filename = id + ".gltf"
		resp.FileContent = base64.StdEncoding.EncodeToString(res.JSON)
		if err := s.store.Put(resp.Filename, res.JSON); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// writeConvertError maps conversion failures to HTTP statuses: malformed
// input is the client's fault, anything else is ours.
func (s *Server) writeConvertError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, convert.ErrUnknownMethod):
		s.writeError(w, http.StatusBadRequest, "invalid conversion method")
	case errors.Is(err, formats.ErrNotBinarySTL), errors.Is(err, formats.ErrTruncatedSTL):
		s.writeError(w, http.StatusUnprocessableEntity, "STL file is not binary or is ill-formatted")
	default:
		s.log.Error("conversion failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
		)
		s.writeError(w, http.StatusInternalServerError, "conversion failed")
	}
}

// handleMethods lists the available conversion strategies.
func (s *Server) handleMethods(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"methods": methodCatalog})
}

// handleFile serves a stored artifact by name.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := s.store.Get(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			s.writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.log.Error("reading artifact", zap.String("name", name), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "reading file")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// contentTypeFor picks the media type by artifact extension.
func contentTypeFor(name string) string {
	switch {
	case strings.HasSuffix(name, ".gltf"):
		return "model/gltf+json"
	case strings.HasSuffix(name, ".glb"):
		return "model/gltf-binary"
	default:
		return "application/octet-stream"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
