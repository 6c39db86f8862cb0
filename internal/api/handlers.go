package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/ScriptureLinks/core/cache"
	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/cas"
	"github.com/FocuswithJustin/ScriptureLinks/core/textscan"
	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
	"github.com/FocuswithJustin/ScriptureLinks/internal/server"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status       string       `json:"status"`
	Version      string       `json:"version"`
	Uptime       string       `json:"uptime"`
	Books        int          `json:"books"`
	StrictBounds bool         `json:"strict_bounds"`
	Jobs         int          `json:"jobs"`
	Clients      int          `json:"websocket_clients"`
	Cache        *cache.Stats `json:"cache,omitempty"`
}

// BookInfo describes one book of the canon.
type BookInfo struct {
	Key      string      `json:"key"`
	Name     string      `json:"name"`
	Group    canon.Group `json:"standard_work"`
	Work     string      `json:"work_name"`
	Chapters int         `json:"chapters"`
	Verses   []int       `json:"verses,omitempty"`
	Aliases  []string    `json:"aliases,omitempty"`
}

// ParseRequest is the body of POST /parse and POST /validate.
type ParseRequest struct {
	Reference string `json:"reference"`
}

// BatchRequest is the body of POST /batch.
type BatchRequest struct {
	References []string `json:"references"`
}

// ProcessRequest is the body of POST /process.
type ProcessRequest struct {
	Text       string `json:"text"`
	StudyHelps bool   `json:"study_helps"`
}

// maxRequestBody caps JSON bodies on top of the per-field limits.
const maxRequestBody = 8 << 20

var jsonContentTypes = []string{"application/json"}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "Scripture Links API",
		"version": s.cfg.Version,
		"endpoints": []string{
			"GET /health",
			"GET /parse?ref=",
			"POST /parse",
			"POST /validate",
			"POST /batch",
			"POST /process",
			"GET /books",
			"GET /books/:key",
			"GET /formats",
			"WS /ws",
			"GET /jobs",
			"POST /jobs",
			"GET /jobs/:id",
			"DELETE /jobs/:id",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	info := HealthInfo{
		Status:       "healthy",
		Version:      s.cfg.Version,
		Uptime:       time.Since(s.started).Round(time.Second).String(),
		Books:        len(s.catalog.Books()),
		StrictBounds: s.catalog.Strict(),
		Jobs:         s.jobs.Len(),
		Clients:      s.hub.ClientCount(),
	}
	if s.cache != nil {
		stats := s.cache.Stats()
		info.Cache = &stats
	}
	respond(w, http.StatusOK, info)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var input string
	switch r.Method {
	case http.MethodGet:
		input = r.URL.Query().Get("ref")
	case http.MethodPost:
		var req ParseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		input = req.Reference
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and POST are allowed")
		return
	}

	if strings.TrimSpace(input) == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REFERENCE", "A reference is required")
		return
	}
	if err := validation.ValidateReference(input); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp := s.resolve(r, input)
	if !resp.Success {
		respondFailure(w, http.StatusUnprocessableEntity, resp.Error.Code, resp.Error.Message, resp)
		return
	}
	respond(w, http.StatusOK, resp)
}

// resolve parses one reference and logs the outcome.
func (s *Server) resolve(r *http.Request, input string) output.SingleReferenceResponse {
	resp := output.Single(s.parser, input)
	if resp.Success {
		logging.ReferenceResolved(r.Context(), input, resp.Parsed.Book, *resp.URL)
	} else {
		logging.ReferenceRejected(r.Context(), input, string(resp.Error.Category), errors.New(resp.Error.Message))
	}
	return resp
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}
	var req ParseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateReference(req.Reference); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	respond(w, http.StatusOK, output.Validate(s.parser, req.Reference))
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}
	var req BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateBatch(req.References, s.cfg.MaxBatchItems); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BATCH", err.Error())
		return
	}

	resp := output.Batch(s.parser, req.References)
	logging.InfoContext(r.Context(), "batch resolved",
		"total", resp.TotalProcessed,
		"successful", resp.Successful,
		"failed", resp.Failed)

	response := APIResponse{
		Success: true,
		Data:    resp,
		Meta: &APIMeta{
			Total:     resp.TotalProcessed,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}
	var req ProcessRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateText(req.Text, s.cfg.MaxTextBytes); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, validation.ErrTextTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respondError(w, status, "INVALID_TEXT", err.Error())
		return
	}

	key := processKey(req.Text, req.StudyHelps)
	etag := cas.ETag(key)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	body, hit, err := s.processText(r.Context(), req.Text, req.StudyHelps, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "PROCESSING_FAILED", err.Error())
		return
	}
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	respond(w, http.StatusOK, json.RawMessage(body))
}

// processKey is the content address of one rewrite request.
func processKey(text string, studyHelps bool) string {
	return cas.Key("process", strconv.FormatBool(studyHelps), text)
}

// processText rewrites text and returns the encoded response, consulting
// the response cache under key when one is configured.
func (s *Server) processText(ctx context.Context, text string, studyHelps bool, key string) ([]byte, bool, error) {
	if s.cache != nil {
		if body, ok := s.cache.Get(key); ok {
			return body, true, nil
		}
	}
	resp := output.Text(s.scanner, text, textscan.Options{StudyHelps: studyHelps})
	logging.TextRewritten(ctx, len(text), resp.ReferencesFound, studyHelps)
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, false, fmt.Errorf("encode text response: %w", err)
	}
	if s.cache != nil {
		s.cache.Put(key, body)
	}
	return body, false, nil
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	keep := func(canon.Group) bool { return true }
	if g := r.URL.Query().Get("group"); g != "" {
		group, err := canon.ParseGroup(g)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_GROUP", err.Error())
			return
		}
		keep = func(other canon.Group) bool { return other == group }
	}

	books := []BookInfo{}
	for _, b := range s.catalog.Books() {
		if !keep(b.Group) {
			continue
		}
		books = append(books, BookInfo{
			Key:      b.Key,
			Name:     b.Name,
			Group:    b.Group,
			Work:     output.WorkName(b.Group),
			Chapters: b.Chapters(),
		})
	}

	response := APIResponse{
		Success: true,
		Data:    books,
		Meta: &APIMeta{
			Total:     len(books),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleBookByKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/books/")
	if err := ValidateBookKey(key); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_KEY", err.Error())
		return
	}

	b, ok := s.catalog.Lookup(key)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Book not found: %s", key))
		return
	}

	info := BookInfo{
		Key:      b.Key,
		Name:     b.Name,
		Group:    b.Group,
		Work:     output.WorkName(b.Group),
		Chapters: b.Chapters(),
		Verses:   b.Verses,
	}
	for _, a := range s.catalog.Aliases() {
		if a.Key == b.Key {
			info.Aliases = append(info.Aliases, a.Spelling)
		}
	}
	respond(w, http.StatusOK, info)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	respond(w, http.StatusOK, output.SupportedFormats(s.catalog))
}

// decodeJSON reads a size-capped JSON body into v. It writes the error
// response itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if !server.ValidateContentType(r.Header.Get("Content-Type"), jsonContentTypes) {
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return false
	}
	return true
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	writeJSON(w, status, response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondFailure(w, status, code, message, nil)
}

// respondFailure is respondError with a payload, used when a failed
// resolution still has a structured result worth returning.
func respondFailure(w http.ResponseWriter, status int, code, message string, data interface{}) {
	response := APIResponse{
		Success: false,
		Data:    data,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("write response failed", "error", err)
	}
}
