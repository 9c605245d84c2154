package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/88subarno88/SocialNet-Simulator/internal/canon"
)

// CreateSession records a new session and assigns it the next session seq.
func (s *Store) CreateSession(ctx context.Context, id, source string) (Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("create session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM sessions`).Scan(&seq); err != nil {
		return Session{}, fmt.Errorf("create session: next seq: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, seq, source)
		VALUES (?, ?, ?)
	`, id, seq, source); err != nil {
		return Session{}, fmt.Errorf("create session: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("create session: commit: %w", err)
	}

	return Session{ID: id, Seq: seq, Source: source}, nil
}

// WriteEntry appends an entry to its session.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Args are stored as canonical JSON.
//
// Note: the session referenced by SessionID must exist (foreign key constraint).
func (s *Store) WriteEntry(ctx context.Context, e Entry) error {
	args := e.Args
	if args == nil {
		args = map[string]any{}
	}
	argsJSON, err := canon.Marshal(args)
	if err != nil {
		return fmt.Errorf("write entry: args: %w", err)
	}

	output := e.Output
	if output == nil {
		output = []string{}
	}
	outputJSON, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("write entry: output: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries
		(id, session_id, seq, verb, line, args, error_code, output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.SessionID,
		e.Seq,
		e.Verb,
		e.Line,
		string(argsJSON),
		e.ErrorCode,
		string(outputJSON),
	)
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	return nil
}
