package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one scripted run with expected results.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Commands are executed in order, one line each.
	Commands []string `yaml:"commands"`

	// Expect is the exact printed output, one entry per line.
	// Omit it to skip the transcript check; use [] to require silence.
	Expect []string `yaml:"expect,omitempty"`

	// Assertions check the final network state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion checks one property of the final network.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// User is the subject of friends, suggest and posts.
	User string `yaml:"user,omitempty"`

	// From and To are the endpoints of degrees.
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// N is the limit passed to suggest and posts.
	N *int `yaml:"n,omitempty"`

	// Distance is the expected degrees result; -1 means unreachable.
	Distance *int `yaml:"distance,omitempty"`

	// Count is the expected total for user_count, friend_count and failures.
	Count *int `yaml:"count,omitempty"`

	// Expect is the expected list for friends, suggest and posts.
	Expect []string `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertFriends     = "friends"
	AssertSuggest     = "suggest"
	AssertPosts       = "posts"
	AssertDegrees     = "degrees"
	AssertSymmetric   = "symmetric"
	AssertUserCount   = "user_count"
	AssertFriendCount = "friend_count"
	AssertFailures    = "failures"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML held in memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Commands) == 0 {
		return fmt.Errorf("commands list is required and must be non-empty")
	}

	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("scenario checks nothing: add expect or assertions")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertFriends:
		if a.User == "" {
			return fmt.Errorf("assertions[%d]: user is required for friends", index)
		}
	case AssertSuggest, AssertPosts:
		if a.User == "" {
			return fmt.Errorf("assertions[%d]: user is required for %s", index, a.Type)
		}
		if a.N == nil {
			return fmt.Errorf("assertions[%d]: n is required for %s", index, a.Type)
		}
	case AssertDegrees:
		if a.From == "" || a.To == "" {
			return fmt.Errorf("assertions[%d]: from and to are required for degrees", index)
		}
		if a.Distance == nil {
			return fmt.Errorf("assertions[%d]: distance is required for degrees", index)
		}
	case AssertSymmetric:
	case AssertUserCount, AssertFriendCount, AssertFailures:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
