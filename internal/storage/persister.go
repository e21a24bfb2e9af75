// Package storage writes accepted payloads to disk, one JSON file per request.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrStorage is the single failure the persister reports. The underlying
// cause (disk full, permissions, path collision) is logged server-side and
// never exposed to callers.
var ErrStorage = errors.New("storage failure")

// Persister writes payloads into a fixed destination directory.
type Persister struct {
	dir    string
	logger *log.Logger
	now    func() time.Time
}

func NewPersister(dir string, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.Default()
	}
	return &Persister{dir: dir, logger: logger, now: time.Now}
}

// Persist serializes the payload as pretty-printed JSON and writes it as the
// complete contents of one file in the destination directory, creating the
// directory if absent and overwriting any file of the same name. It returns
// the file name used.
//
// Two requests that both fall back to timestamp naming within the same
// millisecond race on the same path; the last writer wins. Callers needing
// stable names supply fileData.fileName in the payload.
func (p *Persister) Persist(payload any) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		p.logger.Printf("persist: create directory %s: %v", p.dir, err)
		return "", ErrStorage
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		p.logger.Printf("persist: marshal payload for %s: %v", p.dir, err)
		return "", ErrStorage
	}

	name := fileName(payload, p.now())
	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.logger.Printf("persist: write %s: %v", path, err)
		return "", ErrStorage
	}

	return name, nil
}

// fileName picks the caller-supplied override when present, otherwise
// synthesizes a timestamped name. Separators are - and _ only, so the name is
// safe on every filesystem.
func fileName(payload any, t time.Time) string {
	if obj, ok := payload.(map[string]any); ok {
		if fd, ok := obj["fileData"].(map[string]any); ok {
			if name, ok := fd["fileName"].(string); ok && strings.TrimSpace(name) != "" {
				return name
			}
		}
	}

	return fmt.Sprintf("data-%s-%03d.json", t.Format("02-01-06_15-04-05"), t.Nanosecond()/int(time.Millisecond))
}
