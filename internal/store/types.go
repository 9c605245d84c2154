package store

import (
	"errors"
	"fmt"

	"github.com/88subarno88/SocialNet-Simulator/internal/canon"
)

// ErrSessionNotFound is returned when a session ID is not in the journal.
var ErrSessionNotFound = errors.New("session not found")

// Session is one run of the command processor.
type Session struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	Source string `json:"source"`
}

// Entry is one executed command.
type Entry struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Seq       int64          `json:"seq"`
	Verb      string         `json:"verb"`
	Line      string         `json:"line"`
	Args      map[string]any `json:"args"`
	ErrorCode string         `json:"error_code,omitempty"`
	Output    []string       `json:"output"`
}

// OK reports whether the command succeeded.
func (e Entry) OK() bool {
	return e.ErrorCode == ""
}

// EntryID computes the content-addressed ID of the seq-th command of a session.
func EntryID(sessionID string, seq int64, line string) (string, error) {
	id, err := canon.Hash(canon.DomainEntry, map[string]any{
		"session": sessionID,
		"seq":     seq,
		"line":    line,
	})
	if err != nil {
		return "", fmt.Errorf("EntryID: %w", err)
	}
	return id, nil
}
