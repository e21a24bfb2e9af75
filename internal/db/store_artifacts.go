package db

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Artifact is one accepted payload as recorded in the index.
type Artifact struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	SourceURL  string    `json:"sourceUrl"`
	SizeBytes  int64     `json:"sizeBytes"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// RecordArtifact inserts one row per accepted request. A zero ID is filled
// with a random one; a zero ReceivedAt is stamped with the current time.
func (s *Store) RecordArtifact(a Artifact) error {
	if a.ID == "" {
		a.ID = newArtifactID()
	}
	if a.ReceivedAt.IsZero() {
		a.ReceivedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		s.rebind(`INSERT INTO artifacts (id, file_name, source_url, size_bytes, received_at) VALUES (?, ?, ?, ?, ?)`),
		a.ID, a.FileName, a.SourceURL, a.SizeBytes, a.ReceivedAt,
	)
	return err
}

// ListArtifacts returns up to limit artifacts, newest first.
func (s *Store) ListArtifacts(limit int) ([]Artifact, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		s.rebind(`SELECT id, file_name, source_url, size_bytes, received_at FROM artifacts ORDER BY received_at DESC, id LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.FileName, &a.SourceURL, &a.SizeBytes, &a.ReceivedAt); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

func (s *Store) CountArtifacts() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM artifacts`).Scan(&count)
	return count, err
}

func newArtifactID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format("20060102150405.000")))
	}
	return hex.EncodeToString(b)
}
