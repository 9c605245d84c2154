package harness

import (
	"github.com/88subarno88/SocialNet-Simulator/internal/command"
	"github.com/88subarno88/SocialNet-Simulator/internal/network"
)

// TraceEvent is one journaled command of a scenario run.
type TraceEvent struct {
	Seq       int64          `json:"seq"`
	Verb      string         `json:"verb"`
	Line      string         `json:"line"`
	Args      map[string]any `json:"args"`
	ErrorCode string         `json:"error_code,omitempty"`
	Output    []string       `json:"output"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true when the transcript matched and every assertion held.
	Pass bool `json:"pass"`

	// Output is the printed transcript, one entry per line.
	Output []string `json:"output"`

	// Trace holds the journaled commands in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Stats counts processed lines and failures.
	Stats command.Stats `json:"stats"`

	// Final is the network state after the last command.
	Final network.Snapshot `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Output: []string{},
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
