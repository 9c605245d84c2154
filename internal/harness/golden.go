package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/88subarno88/SocialNet-Simulator/internal/canon"
)

// GoldenDir holds golden transcripts, relative to the test's package.
const GoldenDir = "testdata/golden"

// Snapshot renders the deterministic part of a result as canonical JSON:
// the scenario name and the journaled trace.
func Snapshot(name string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		event := map[string]any{
			"seq":    ev.Seq,
			"verb":   ev.Verb,
			"line":   ev.Line,
			"args":   ev.Args,
			"output": ev.Output,
		}
		if ev.ErrorCode != "" {
			event["error_code"] = ev.ErrorCode
		}
		trace[i] = event
	}

	data, err := canon.Marshal(map[string]any{
		"scenario_name": name,
		"trace":         trace,
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// GoldenPath returns the golden file path for a scenario name under dir.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, name+".golden")
}

// WriteGolden stores the result's snapshot as the golden file for name.
func WriteGolden(dir, name string, result *Result) error {
	data, err := Snapshot(name, result)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(GoldenPath(dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the result matches the golden file for
// name. A missing golden file returns an error wrapping os.ErrNotExist.
func CompareGolden(dir, name string, result *Result) (bool, error) {
	golden, err := os.ReadFile(GoldenPath(dir, name))
	if err != nil {
		return false, err
	}
	current, err := Snapshot(name, result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal trace: %w", err)
	}
	return bytes.Equal(golden, current), nil
}
