package db

import (
	"testing"
)

// NewTestConfig returns a DBConfig for in-memory SQLite testing
func NewTestConfig() DBConfig {
	return DBConfig{
		Type: DialectSQLite,
		Path: ":memory:",
	}
}

// NewTestConfigWithPath returns a DBConfig for SQLite testing with a specific path
func NewTestConfigWithPath(path string) DBConfig {
	return DBConfig{
		Type: DialectSQLite,
		Path: path,
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(NewTestConfig())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}
