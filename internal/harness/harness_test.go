package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestRun_TestdataScenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			s, err := LoadScenario(f)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_EndToEnd(t *testing.T) {
	s := &Scenario{
		Name:        "e2e",
		Description: "walkthrough",
		Commands: []string{
			"ADD USER alice",
			"ADD USER bob",
			"ADD FRIEND alice bob",
			`ADD POST alice "hello"`,
			`ADD POST alice "world"`,
			"OUTPUT POSTS alice 1",
		},
		Expect: []string{"world"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, []string{"world"}, result.Output)
	require.Len(t, result.Trace, 6)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, "ADD_USER", result.Trace[0].Verb)
	assert.Equal(t, "OUTPUT_POSTS", result.Trace[5].Verb)
	assert.Equal(t, []string{"world"}, result.Trace[5].Output)
	assert.Equal(t, 6, result.Stats.Commands)

	require.Len(t, result.Final.Users, 2)
	assert.Equal(t, "alice", result.Final.Users[0].Name)
	assert.Equal(t, 2, result.Final.Users[0].Posts)
	assert.Equal(t, []string{"bob"}, result.Final.Users[0].Friends)
}

func TestRun_TranscriptMismatch(t *testing.T) {
	tests := []struct {
		name    string
		expect  []string
		wantErr string
	}{
		{"different line", []string{"hello"}, `output line 1: expected "hello", got "world"`},
		{"missing line", []string{"world", "hello"}, `output line 2: expected "hello", got end of output`},
		{"extra line", []string{}, `output line 1: unexpected "world"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scenario{
				Name:        "mismatch",
				Description: "d",
				Commands: []string{
					"ADD USER alice",
					`ADD POST alice "hello"`,
					`ADD POST alice "world"`,
					"OUTPUT POSTS alice 1",
				},
				Expect: tt.expect,
			}

			result, err := Run(s)
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantErr, result.Errors[0])
		})
	}
}

func TestRun_AssertionFailures(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "every assertion is wrong",
		Commands:    []string{"ADD USER a", "ADD USER b", "ADD FRIEND a b"},
		Assertions: []Assertion{
			{Type: AssertFriends, User: "a", Expect: []string{"c"}},
			{Type: AssertDegrees, From: "a", To: "b", Distance: intp(2)},
			{Type: AssertUserCount, Count: intp(3)},
			{Type: AssertFriendCount, Count: intp(0)},
			{Type: AssertFailures, Count: intp(1)},
			{Type: AssertPosts, User: "a", N: intp(1), Expect: []string{"x"}},
			{Type: AssertSuggest, User: "missing", N: intp(1)},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 7)
	assert.Equal(t, `assertions[0]: friends: expected ["c"], got ["b"]`, result.Errors[0])
	assert.Equal(t, "assertions[1]: degrees: expected 2, got 1", result.Errors[1])
	assert.Equal(t, "assertions[2]: user_count: expected 3, got 2", result.Errors[2])
	assert.Equal(t, "assertions[3]: friend_count: expected 0, got 1", result.Errors[3])
	assert.Equal(t, "assertions[4]: failures: expected 1, got 0", result.Errors[4])
	assert.Contains(t, result.Errors[6], "USER_NOT_FOUND")
}

func TestRun_OmittedExpectListMeansEmpty(t *testing.T) {
	s := &Scenario{
		Name:        "lonely",
		Description: "d",
		Commands:    []string{"ADD USER a"},
		Assertions: []Assertion{
			{Type: AssertFriends, User: "a"},
			{Type: AssertSuggest, User: "a", N: intp(3)},
			{Type: AssertSymmetric},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_Isolated(t *testing.T) {
	s := &Scenario{
		Name:        "isolated",
		Description: "d",
		Commands:    []string{"ADD USER a"},
		Expect:      []string{},
	}

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.True(t, first.Pass)
	assert.True(t, second.Pass)
	assert.Equal(t, first.Trace, second.Trace)
}
