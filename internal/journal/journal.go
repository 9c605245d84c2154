// Package journal records command sessions in the store and replays them.
//
// A Recorder is a command.Sink: every outcome becomes one store.Entry,
// numbered from 1 within its session. Replay re-executes a recorded session
// against an empty network and reports every entry whose rendered output or
// error code differs from what was recorded.
package journal

import (
	"context"
	"fmt"
	"slices"

	"github.com/88subarno88/SocialNet-Simulator/internal/command"
	"github.com/88subarno88/SocialNet-Simulator/internal/network"
	"github.com/88subarno88/SocialNet-Simulator/internal/store"
)

// Recorder writes outcomes of one session to the journal.
//
// Not safe for concurrent use; a command.Session delivers outcomes serially.
type Recorder struct {
	st      *store.Store
	session store.Session
	seq     int64
}

// Start creates a new journal session with an ID from gen and returns a
// recorder for it. source describes the command input (a path or "stdin").
func Start(ctx context.Context, st *store.Store, gen store.IDGenerator, source string) (*Recorder, error) {
	sess, err := st.CreateSession(ctx, gen.Generate(), source)
	if err != nil {
		return nil, fmt.Errorf("start journal: %w", err)
	}
	return &Recorder{st: st, session: sess}, nil
}

// Session returns the journal session being recorded.
func (r *Recorder) Session() store.Session {
	return r.session
}

// Count returns the number of entries recorded so far.
func (r *Recorder) Count() int64 {
	return r.seq
}

// Record implements command.Sink.
func (r *Recorder) Record(ctx context.Context, o command.Outcome) error {
	seq := r.seq + 1
	id, err := store.EntryID(r.session.ID, seq, o.Command.Line)
	if err != nil {
		return err
	}

	entry := store.Entry{
		ID:        id,
		SessionID: r.session.ID,
		Seq:       seq,
		Verb:      o.Command.Verb.String(),
		Line:      o.Command.Line,
		Args:      o.Command.Args(),
		ErrorCode: string(network.CodeOf(o.Err)),
		Output:    command.Render(o),
	}
	if err := r.st.WriteEntry(ctx, entry); err != nil {
		return err
	}
	r.seq = seq
	return nil
}

// Mismatch describes a replayed entry that diverged from the journal.
type Mismatch struct {
	Seq          int64    `json:"seq"`
	Line         string   `json:"line"`
	WantCode     string   `json:"want_code,omitempty"`
	GotCode      string   `json:"got_code,omitempty"`
	WantOutput   []string `json:"want_output"`
	GotOutput    []string `json:"got_output"`
	ParseFailure string   `json:"parse_failure,omitempty"`
}

// ReplayResult is the outcome of replaying one session.
type ReplayResult struct {
	Session    store.Session `json:"session"`
	Entries    int           `json:"entries"`
	Mismatches []Mismatch    `json:"mismatches"`

	// Network is the state rebuilt by the replay.
	Network *network.Network `json:"-"`
}

// OK reports whether every entry reproduced its recorded result.
func (r *ReplayResult) OK() bool {
	return len(r.Mismatches) == 0
}

// Replay re-executes the session with the given ID on an empty network.
func Replay(ctx context.Context, st *store.Store, sessionID string) (*ReplayResult, error) {
	sess, err := st.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := st.ReadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	exec := command.NewExecutor(network.New())
	result := &ReplayResult{
		Session:    sess,
		Entries:    len(entries),
		Mismatches: []Mismatch{},
		Network:    exec.Network(),
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		want := e.Output
		if want == nil {
			want = []string{}
		}

		cmd, err := command.Parse(e.Line)
		if err != nil {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Seq:          e.Seq,
				Line:         e.Line,
				WantCode:     e.ErrorCode,
				WantOutput:   want,
				GotOutput:    []string{},
				ParseFailure: err.Error(),
			})
			continue
		}

		out := exec.Execute(cmd)
		got := command.Render(out)
		gotCode := string(network.CodeOf(out.Err))
		if gotCode != e.ErrorCode || !slices.Equal(want, got) {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Seq:        e.Seq,
				Line:       e.Line,
				WantCode:   e.ErrorCode,
				GotCode:    gotCode,
				WantOutput: want,
				GotOutput:  got,
			})
		}
	}

	return result, nil
}
