package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/88subarno88/SocialNet-Simulator/internal/command"
	"github.com/88subarno88/SocialNet-Simulator/internal/journal"
	"github.com/88subarno88/SocialNet-Simulator/internal/network"
	"github.com/88subarno88/SocialNet-Simulator/internal/store"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh network and a fresh in-memory journal, so
// runs are isolated and reproducible. The returned error covers harness
// failures only; mismatches are reported through Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	rec, err := journal.Start(ctx, st, store.NewFixedGenerator("scenario:"+scenario.Name), scenario.Name)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	transcript := command.SinkFunc(func(_ context.Context, o command.Outcome) error {
		result.Output = append(result.Output, command.Render(o)...)
		return nil
	})

	sess := command.NewSession(network.New())
	script := strings.Join(scenario.Commands, "\n")
	stats, err := sess.Run(ctx, strings.NewReader(script), command.MultiSink{rec, transcript})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	result.Stats = stats

	entries, err := st.ReadSession(ctx, rec.Session().ID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		result.Trace = append(result.Trace, TraceEvent{
			Seq:       e.Seq,
			Verb:      e.Verb,
			Line:      e.Line,
			Args:      e.Args,
			ErrorCode: e.ErrorCode,
			Output:    e.Output,
		})
	}

	net := sess.Network()
	result.Final = net.Snapshot()

	if scenario.Expect != nil {
		checkTranscript(scenario.Expect, result)
	}

	for i, a := range scenario.Assertions {
		if err := evaluate(net, stats, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

func checkTranscript(want []string, result *Result) {
	got := result.Output
	for i := 0; i < max(len(want), len(got)); i++ {
		switch {
		case i >= len(got):
			result.AddError(fmt.Sprintf("output line %d: expected %q, got end of output", i+1, want[i]))
			return
		case i >= len(want):
			result.AddError(fmt.Sprintf("output line %d: unexpected %q", i+1, got[i]))
			return
		case want[i] != got[i]:
			result.AddError(fmt.Sprintf("output line %d: expected %q, got %q", i+1, want[i], got[i]))
			return
		}
	}
}
