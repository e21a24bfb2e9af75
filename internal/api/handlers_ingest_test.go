package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datadrop/datadrop/internal/db"
	"github.com/datadrop/datadrop/internal/storage"
)

func newTestIngestHandler(t *testing.T, dir string) (*IngestHandler, *db.Store) {
	t.Helper()

	store, err := db.NewStore(db.NewTestConfig())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewIngestHandler(storage.NewPersister(dir, nil), store, nil), store
}

func TestProcess_Success(t *testing.T) {
	dir := t.TempDir()
	h, store := newTestIngestHandler(t, dir)

	req := httptest.NewRequest("POST", "/process", strings.NewReader(`{"url":"https://example.com"}`))
	w := httptest.NewRecorder()

	h.Process(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "Success" {
		t.Errorf("expected body Success, got %q", w.Body.String())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 file, got %d", len(entries))
	}

	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("stored file is not valid JSON: %v", err)
	}
	if got["url"] != "https://example.com" {
		t.Errorf("expected stored url https://example.com, got %v", got["url"])
	}

	// The accepted artifact lands in the index.
	count, err := store.CountArtifacts()
	if err != nil {
		t.Fatalf("CountArtifacts failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 indexed artifact, got %d", count)
	}
}

func TestProcess_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty url", `{"url":""}`},
		{"whitespace url", `{"url":"   "}`},
		{"non-string url", `{"url":42}`},
		{"null", `null`},
		{"array", `[{"url":"https://example.com"}]`},
		{"primitive", `"https://example.com"`},
		{"malformed json", `{"url":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			h, _ := newTestIngestHandler(t, dir)

			req := httptest.NewRequest("POST", "/process", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Process(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] != "Invalid input data" {
				t.Errorf("expected error 'Invalid input data', got %q", resp["error"])
			}

			// No file may be written on rejection.
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("expected no files, got %d", len(entries))
			}
		})
	}
}

func TestProcess_StorageFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	h, _ := newTestIngestHandler(t, blocker)

	req := httptest.NewRequest("POST", "/process", strings.NewReader(`{"url":"https://example.com"}`))
	w := httptest.NewRecorder()

	h.Process(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "Failed to save the provided data" {
		t.Errorf("expected storage error message, got %q", resp["error"])
	}
}

func TestProcess_FileNameOverride(t *testing.T) {
	dir := t.TempDir()
	h, store := newTestIngestHandler(t, dir)

	body := `{"url":"https://example.com","fileData":{"fileName":"override.json"}}`
	req := httptest.NewRequest("POST", "/process", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Process(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "override.json")); err != nil {
		t.Errorf("expected override.json to exist: %v", err)
	}

	artifacts, err := store.ListArtifacts(10)
	if err != nil {
		t.Fatalf("ListArtifacts failed: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].FileName != "override.json" {
		t.Errorf("expected indexed artifact override.json, got %+v", artifacts)
	}
}

func TestRespondIngestError_Unclassified(t *testing.T) {
	w := httptest.NewRecorder()

	respondIngestError(w, errors.New("something unexpected"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "Internal Server Error" {
		t.Errorf("expected 'Internal Server Error', got %q", resp["error"])
	}
}

func TestRoot(t *testing.T) {
	h, _ := newTestIngestHandler(t, t.TempDir())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	h.Root(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["message"] != "Running!" {
		t.Errorf("expected message 'Running!', got %q", resp["message"])
	}
}

func TestListArtifacts(t *testing.T) {
	dir := t.TempDir()
	h, _ := newTestIngestHandler(t, dir)

	for _, url := range []string{"https://a.example.com", "https://b.example.com"} {
		req := httptest.NewRequest("POST", "/process", strings.NewReader(`{"url":"`+url+`"}`))
		h.Process(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest("GET", "/artifacts", nil)
	w := httptest.NewRecorder()

	h.ListArtifacts(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string][]db.Artifact
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp["artifacts"]) != 2 {
		t.Errorf("expected 2 artifacts, got %d", len(resp["artifacts"]))
	}
}

func TestListArtifacts_BadLimit(t *testing.T) {
	h, _ := newTestIngestHandler(t, t.TempDir())

	for _, limit := range []string{"abc", "0", "-1", "501"} {
		req := httptest.NewRequest("GET", "/artifacts?limit="+limit, nil)
		w := httptest.NewRecorder()

		h.ListArtifacts(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", limit, w.Code)
		}
	}
}
