package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession_AssignsIncreasingSeq(t *testing.T) {
	s := createTestStore(t)

	first := createTestSession(t, s, "b-session")
	second := createTestSession(t, s, "a-session")

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)

	sessions, err := s.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Session{first, second}, sessions)
}

func TestCreateSession_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	createTestSession(t, s, "dup")

	_, err := s.CreateSession(context.Background(), "dup", "test")
	assert.Error(t, err)
}

func TestListSessions_Empty(t *testing.T) {
	s := createTestStore(t)

	sessions, err := s.ListSessions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestGetSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := createTestSession(t, s, "sess-1")

	got, err := s.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.GetSession(ctx, "nope")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestLatestSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.LatestSession(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	createTestSession(t, s, "one")
	two := createTestSession(t, s, "two")

	got, err := s.LatestSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, two, got)
}

func TestWriteEntry_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "sess-1")

	e := createTestEntry("sess-1", 1, `OUTPUT POSTS alice 2`)
	e.Verb = "OUTPUT_POSTS"
	e.Args = map[string]any{"users": []any{"alice"}, "n": int64(2)}
	e.Output = []string{"world", "hello"}
	require.NoError(t, s.WriteEntry(ctx, e))

	failed := createTestEntry("sess-1", 2, "ADD USER alice")
	failed.ErrorCode = "ALREADY_EXISTS"
	failed.Output = []string{"Error: User alice already exists."}
	require.NoError(t, s.WriteEntry(ctx, failed))

	entries, err := s.ReadSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got := entries[0]
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "OUTPUT_POSTS", got.Verb)
	assert.Equal(t, e.Line, got.Line)
	assert.Equal(t, []string{"world", "hello"}, got.Output)
	assert.Equal(t, []any{"alice"}, got.Args["users"])
	assert.Equal(t, json.Number("2"), got.Args["n"])
	assert.True(t, got.OK())

	assert.False(t, entries[1].OK())
	assert.Equal(t, "ALREADY_EXISTS", entries[1].ErrorCode)
}

func TestWriteEntry_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "sess-1")

	e := createTestEntry("sess-1", 1, "ADD USER a")
	require.NoError(t, s.WriteEntry(ctx, e))
	require.NoError(t, s.WriteEntry(ctx, e))

	count, err := s.CountEntries(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWriteEntry_NilArgsAndOutput(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "sess-1")

	e := createTestEntry("sess-1", 1, "ADD USER a")
	e.Args = nil
	e.Output = nil
	require.NoError(t, s.WriteEntry(ctx, e))

	entries, err := s.ReadSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Args)
	assert.Equal(t, []string{}, entries[0].Output)
}

func TestWriteEntry_RejectsNonCanonicalArgs(t *testing.T) {
	s := createTestStore(t)
	createTestSession(t, s, "sess-1")

	e := createTestEntry("sess-1", 1, "ADD USER a")
	e.Args = map[string]any{"ratio": 0.5}
	assert.Error(t, s.WriteEntry(context.Background(), e))
}

func TestReadSession_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "sess-1")
	createTestSession(t, s, "sess-2")

	for _, seq := range []int64{3, 1, 2} {
		require.NoError(t, s.WriteEntry(ctx, createTestEntry("sess-1", seq, "ADD USER x")))
	}
	require.NoError(t, s.WriteEntry(ctx, createTestEntry("sess-2", 1, "ADD USER y")))

	entries, err := s.ReadSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.Seq)
	}

	empty, err := s.ReadSession(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestEntryID_Deterministic(t *testing.T) {
	a, err := EntryID("s", 1, "ADD USER a")
	require.NoError(t, err)
	b, err := EntryID("s", 1, "ADD USER a")
	require.NoError(t, err)
	c, err := EntryID("s", 2, "ADD USER a")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("one", "two")
	assert.Equal(t, "one", g.Generate())
	assert.Equal(t, "two", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
