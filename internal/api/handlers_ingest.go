package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/datadrop/datadrop/internal/db"
	"github.com/datadrop/datadrop/internal/ingest"
	"github.com/datadrop/datadrop/internal/storage"
)

type IngestHandler struct {
	persister *storage.Persister
	store     *db.Store
	logger    *log.Logger
}

func NewIngestHandler(persister *storage.Persister, store *db.Store, logger *log.Logger) *IngestHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &IngestHandler{persister: persister, store: store, logger: logger}
}

// errorResponses maps the tagged error kinds to their HTTP translation.
// Anything not listed falls through to the generic 500.
var errorResponses = []struct {
	kind    error
	status  int
	message string
}{
	{ingest.ErrInvalidPayload, http.StatusBadRequest, "Invalid input data"},
	{storage.ErrStorage, http.StatusInternalServerError, "Failed to save the provided data"},
}

func respondIngestError(w http.ResponseWriter, err error) {
	for _, m := range errorResponses {
		if errors.Is(err, m.kind) {
			writeError(w, m.status, m.message)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// Root is a liveness banner for humans poking at the service.
func (h *IngestHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Running!"})
}

// Process accepts one JSON payload, validates its shape, and persists it
// verbatim. A body that does not decode has no shape to accept and is
// treated as a validation failure.
func (h *IngestHandler) Process(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondIngestError(w, ingest.ErrInvalidPayload)
		return
	}

	if !ingest.Validate(payload) {
		respondIngestError(w, ingest.ErrInvalidPayload)
		return
	}

	fileName, err := h.persister.Persist(payload)
	if err != nil {
		h.logger.Printf("process: persist failed: %v", err)
		respondIngestError(w, err)
		return
	}

	h.index(payload, fileName, r.ContentLength)
	h.logger.Printf("process: stored payload as %s", sanitizeLog(fileName))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Success"))
}

// index records the accepted artifact. Best-effort: the file on disk is the
// system of record, so an index failure is logged and never fails the request.
func (h *IngestHandler) index(payload any, fileName string, size int64) {
	if h.store == nil {
		return
	}

	a := db.Artifact{FileName: fileName}
	if size > 0 {
		a.SizeBytes = size
	}
	if obj, ok := payload.(map[string]any); ok {
		if url, ok := obj["url"].(string); ok {
			a.SourceURL = url
		}
	}

	if err := h.store.RecordArtifact(a); err != nil {
		h.logger.Printf("process: index artifact %s: %v", sanitizeLog(fileName), err)
	}
}

// ListArtifacts returns recently accepted artifacts from the index,
// newest first. Supports ?limit=N, capped server-side.
func (h *IngestHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "artifact index not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be an integer in [1, 500]")
			return
		}
		limit = n
	}

	artifacts, err := h.store.ListArtifacts(limit)
	if err != nil {
		h.logger.Printf("artifacts: list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}

	// Returns empty array if nil
	if artifacts == nil {
		artifacts = []db.Artifact{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}
