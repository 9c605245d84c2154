package network

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build creates a network with the given users and friendships.
func build(t *testing.T, users []string, edges [][2]string) *Network {
	t.Helper()
	n := New()
	for _, u := range users {
		require.NoError(t, n.AddUser(u))
	}
	for _, e := range edges {
		require.NoError(t, n.AddFriend(e[0], e[1]))
		require.NoError(t, n.CheckSymmetry())
	}
	return n
}

func TestAddUser(t *testing.T) {
	n := New()

	require.NoError(t, n.AddUser("alice"))
	assert.True(t, n.HasUser("alice"))
	assert.Equal(t, 1, n.Len())

	err := n.AddUser("alice")
	require.Error(t, err)
	assert.True(t, IsAlreadyExists(err))
	assert.Equal(t, 1, n.Len())
}

func TestAddUser_CaseInsensitive(t *testing.T) {
	n := New()

	require.NoError(t, n.AddUser("Alice"))
	err := n.AddUser("ALICE")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, []string{"alice"}, n.Users())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "alice", Normalize("ALiCe"))
	assert.Equal(t, "bob42", Normalize("Bob42"))
	// composed and decomposed e-acute are the same user
	assert.Equal(t, Normalize("Ren\u00e9"), Normalize("Rene\u0301"))
	assert.Equal(t, "rené", Normalize("RENÉ"))
}

func TestAddFriend(t *testing.T) {
	n := build(t, []string{"alice", "bob"}, nil)

	require.NoError(t, n.AddFriend("alice", "bob"))

	friends, err := n.ListFriends("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, friends)

	friends, err = n.ListFriends("bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, friends)
	assert.NoError(t, n.CheckSymmetry())
}

func TestAddFriend_Errors(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		wantCode  ErrorCode
		wantNames []string
	}{
		{"self", "alice", "alice", ErrCodeSelfFriend, []string{"alice"}},
		{"self different case", "alice", "ALICE", ErrCodeSelfFriend, []string{"alice"}},
		{"self missing user", "zed", "Zed", ErrCodeSelfFriend, []string{"zed"}},
		{"both missing", "x", "y", ErrCodeUserNotFound, []string{"x", "y"}},
		{"first missing", "x", "bob", ErrCodeUserNotFound, []string{"x"}},
		{"second missing", "alice", "Y", ErrCodeUserNotFound, []string{"Y"}},
		{"already friends", "alice", "carol", ErrCodeAlreadyFriends, []string{"alice", "carol"}},
		{"already friends reversed", "CAROL", "alice", ErrCodeAlreadyFriends, []string{"CAROL", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := build(t, []string{"alice", "bob", "carol"}, [][2]string{{"alice", "carol"}})

			err := n.AddFriend(tt.a, tt.b)
			require.Error(t, err)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.wantNames, e.Names)

			// nothing changed
			assert.NoError(t, n.CheckSymmetry())
			assert.Equal(t, 1, n.Snapshot().FriendCount())
		})
	}
}

func TestAddFriend_IdempotentRejection(t *testing.T) {
	n := build(t, []string{"a", "b"}, nil)

	require.NoError(t, n.AddFriend("a", "b"))
	err := n.AddFriend("a", "b")
	assert.ErrorIs(t, err, ErrAlreadyFriends)

	friends, err := n.ListFriends("a")
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestCaseNormalization_Equivalent(t *testing.T) {
	mixed := New()
	require.NoError(t, mixed.AddUser("Alice"))
	require.NoError(t, mixed.AddUser("bob"))
	require.NoError(t, mixed.AddFriend("ALICE", "bob"))
	require.NoError(t, mixed.AddPost("aLiCe", "hi"))

	lower := New()
	require.NoError(t, lower.AddUser("alice"))
	require.NoError(t, lower.AddUser("bob"))
	require.NoError(t, lower.AddFriend("alice", "bob"))
	require.NoError(t, lower.AddPost("alice", "hi"))

	assert.Equal(t, lower.Snapshot(), mixed.Snapshot())
}

func TestListFriends_Sorted(t *testing.T) {
	n := build(t,
		[]string{"me", "zoe", "adam", "mike", "Bea"},
		[][2]string{{"me", "zoe"}, {"me", "adam"}, {"me", "mike"}, {"me", "BEA"}},
	)

	friends, err := n.ListFriends("ME")
	require.NoError(t, err)
	assert.Equal(t, []string{"adam", "bea", "mike", "zoe"}, friends)
}

func TestListFriends_Empty(t *testing.T) {
	n := build(t, []string{"loner"}, nil)

	friends, err := n.ListFriends("loner")
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestListFriends_NotFound(t *testing.T) {
	n := New()

	_, err := n.ListFriends("ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSuggestFriends_Ranking(t *testing.T) {
	n := build(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"b", "f"}, {"c", "e"}},
	)

	got, err := n.SuggestFriends("a", 5)
	require.NoError(t, err)
	// d has two mutual friends; e and f one each, lexical tie-break
	assert.Equal(t, []string{"d", "e", "f"}, got)

	got, err = n.SuggestFriends("A", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, got)
}

func TestSuggestFriends_ExcludesSelfAndFriends(t *testing.T) {
	// triangle a-b-c plus b-d: c is already a friend of a
	n := build(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}, {"b", "d"}},
	)

	got, err := n.SuggestFriends("a", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, got)
}

func TestSuggestFriends_NonPositiveLimit(t *testing.T) {
	n := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	for _, limit := range []int{0, -1, -5} {
		got, err := n.SuggestFriends("a", limit)
		require.NoError(t, err)
		assert.Empty(t, got, "limit %d", limit)
	}
}

func TestSuggestFriends_NotFound(t *testing.T) {
	n := New()

	_, err := n.SuggestFriends("ghost", 0)
	assert.True(t, IsNotFound(err), "missing user is reported before the limit check")
}

func TestSuggestFriends_NoCandidates(t *testing.T) {
	n := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	got, err := n.SuggestFriends("a", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDegreesOfSeparation_Chain(t *testing.T) {
	n := build(t,
		[]string{"a", "b", "c", "d", "x"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
	)

	tests := []struct {
		a, b string
		want int
	}{
		{"a", "d", 3},
		{"d", "a", 3},
		{"a", "b", 1},
		{"a", "c", 2},
		{"a", "a", 0},
		{"A", "a", 0},
		{"a", "x", Unreachable},
		{"x", "x", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%s", tt.a, tt.b), func(t *testing.T) {
			got, err := n.DegreesOfSeparation(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDegreesOfSeparation_ShortestPath(t *testing.T) {
	// a-b-c-d-e plus shortcut a-e
	n := build(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, {"a", "e"}},
	)

	got, err := n.DegreesOfSeparation("a", "d")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestDegreesOfSeparation_NotFound(t *testing.T) {
	n := build(t, []string{"a"}, nil)

	tests := []struct {
		name      string
		a, b      string
		wantNames []string
	}{
		{"both", "x", "y", []string{"x", "y"}},
		{"first", "x", "a", []string{"x"}},
		{"second", "a", "y", []string{"y"}},
		{"same missing", "x", "X", []string{"x", "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.DegreesOfSeparation(tt.a, tt.b)
			assert.Equal(t, Unreachable, got)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, ErrCodeUserNotFound, e.Code)
			assert.Equal(t, tt.wantNames, e.Names)
		})
	}
}

func TestPosts(t *testing.T) {
	n := build(t, []string{"alice"}, nil)

	require.NoError(t, n.AddPost("alice", "hello"))
	require.NoError(t, n.AddPost("ALICE", "world"))

	got, err := n.OutputPosts("alice", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"world"}, got)

	got, err = n.OutputPosts("alice", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"world", "hello"}, got)

	got, err = n.OutputPosts("alice", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPosts_NotFound(t *testing.T) {
	n := New()

	assert.True(t, IsNotFound(n.AddPost("ghost", "boo")))
	_, err := n.OutputPosts("ghost", 1)
	assert.True(t, IsNotFound(err))
}

func TestSnapshot(t *testing.T) {
	n := build(t, []string{"b", "a", "c"}, [][2]string{{"a", "b"}, {"c", "a"}})
	require.NoError(t, n.AddPost("a", "one"))

	snap := n.Snapshot()
	assert.Equal(t, Snapshot{Users: []UserSnapshot{
		{Name: "a", Friends: []string{"b", "c"}, Posts: 1},
		{Name: "b", Friends: []string{"a"}, Posts: 0},
		{Name: "c", Friends: []string{"a"}, Posts: 0},
	}}, snap)
	assert.Equal(t, 2, snap.FriendCount())
}

func TestCheckSymmetry_DetectsOneSidedEdge(t *testing.T) {
	n := build(t, []string{"a", "b"}, nil)
	n.users["a"].friends.Add("b")

	assert.Error(t, n.CheckSymmetry())
}

func TestSuggestFriends_SkipsUnknownFriend(t *testing.T) {
	n := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	// corrupt on purpose: a lists a friend that is not registered
	n.users["a"].friends.Add("ghost")

	got, err := n.SuggestFriends("a", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "USER_NOT_FOUND: x, y not found", notFound("x", "y").Error())
	assert.Equal(t, "ALREADY_EXISTS: user bob already exists",
		(&Error{Code: ErrCodeAlreadyExists, Names: []string{"bob"}}).Error())
	assert.Equal(t, ErrCodeSelfFriend, CodeOf(fmt.Errorf("wrapped: %w", &Error{Code: ErrCodeSelfFriend})))
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain")))
}
