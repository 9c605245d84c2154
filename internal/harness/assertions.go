package harness

import (
	"fmt"
	"slices"

	"github.com/88subarno88/SocialNet-Simulator/internal/command"
	"github.com/88subarno88/SocialNet-Simulator/internal/network"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func evaluate(net *network.Network, stats command.Stats, a Assertion) error {
	switch a.Type {
	case AssertFriends:
		got, err := net.ListFriends(a.User)
		if err != nil {
			return err
		}
		return compareList(a.Type, want(a.Expect), got)

	case AssertSuggest:
		got, err := net.SuggestFriends(a.User, *a.N)
		if err != nil {
			return err
		}
		return compareList(a.Type, want(a.Expect), got)

	case AssertPosts:
		got, err := net.OutputPosts(a.User, *a.N)
		if err != nil {
			return err
		}
		return compareList(a.Type, want(a.Expect), got)

	case AssertDegrees:
		got, err := net.DegreesOfSeparation(a.From, a.To)
		if err != nil {
			return err
		}
		return compareInt(a.Type, *a.Distance, got)

	case AssertSymmetric:
		return net.CheckSymmetry()

	case AssertUserCount:
		return compareInt(a.Type, *a.Count, net.Len())

	case AssertFriendCount:
		return compareInt(a.Type, *a.Count, net.Snapshot().FriendCount())

	case AssertFailures:
		return compareInt(a.Type, *a.Count, stats.Failed)

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// want treats an omitted list as an empty one.
func want(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func compareList(typ string, expected, actual []string) error {
	if slices.Equal(expected, actual) {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%q", expected),
		Actual:   fmt.Sprintf("%q", actual),
	}
}

func compareInt(typ string, expected, actual int) error {
	if expected == actual {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	}
}
