// Package store provides a SQLite-backed journal of executed commands.
//
// The journal is an append-only audit log. Each run of the command
// processor opens a session; every executed command becomes one entry with
// its raw line, canonical arguments, outcome and rendered output. The
// network is never rebuilt from the journal at startup; replay only
// re-executes a session against a fresh network to check determinism.
//
// # Patterns
//
// Logical ordering:
//   - Entries are ordered by seq INTEGER (position in the session), never
//     by wall-clock time.
//   - All queries use ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Content-addressed identity:
//   - Entry IDs are canon.Hash(canon.DomainEntry, {session, seq, line}).
//   - Writes use ON CONFLICT(id) DO NOTHING, so re-recording is a no-op.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
