package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"mathgen-hq/mathgen/pkg/expr/ast"
	"mathgen-hq/mathgen/pkg/server/middleware"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/telemetry/logging"
)

// ParseResponse is the body of a successful /v1/parse request.
type ParseResponse struct {
	Expression string    `json:"expression"`
	Nodes      int       `json:"nodes"`
	Tree       *ast.Tree `json:"tree"`
}

// LanguagesResponse is the body of /v1/languages.
type LanguagesResponse struct {
	Languages []service.Language `json:"languages"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	node, err := s.generator.Parse(r.Context(), req)
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Expression: node.String(),
		Nodes:      ast.Count(node),
		Tree:       ast.ToTree(node),
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LanguagesResponse{Languages: s.generator.Languages()})
}

// decodeRequest reads a service.Request from the body. It writes the error
// response itself and reports false when the body is unusable.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (service.Request, bool) {
	var req service.Request

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		middleware.WriteError(w, http.StatusUnsupportedMediaType,
			requestError("UnsupportedMediaType", "content type must be application/json"))
		return req, false
	}

	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			middleware.WriteError(w, http.StatusRequestEntityTooLarge,
				requestError("BodyTooLarge", "request body too large"))
		case errors.Is(err, io.EOF):
			middleware.WriteError(w, http.StatusBadRequest,
				requestError("InvalidRequest", "request body is empty"))
		default:
			middleware.WriteError(w, http.StatusBadRequest,
				requestError("InvalidRequest", "invalid JSON: "+err.Error()))
		}
		return req, false
	}

	if req.Language == "" {
		req.Language = s.defaultLanguage
	}
	req.RequestID = logging.GetRequestID(r.Context())
	return req, true
}

func (s *Server) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "generation failed", "error", err)
	}
	middleware.WriteError(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
