package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new temp-file store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession creates a session with the given ID.
func createTestSession(t *testing.T, s *Store, id string) Session {
	t.Helper()
	sess, err := s.CreateSession(context.Background(), id, "test")
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess
}

// createTestEntry creates a successful entry with a content-addressed ID.
func createTestEntry(sessionID string, seq int64, line string) Entry {
	id, err := EntryID(sessionID, seq, line)
	if err != nil {
		panic(err)
	}
	return Entry{
		ID:        id,
		SessionID: sessionID,
		Seq:       seq,
		Verb:      "ADD_USER",
		Line:      line,
		Args:      map[string]any{"users": []any{"a"}},
		Output:    []string{},
	}
}
