package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/88subarno88/SocialNet-Simulator/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string // optional - defaults to the latest session
	Verb     string // optional - filter to one verb, e.g. ADD_FRIEND
	Failed   bool   // only failed commands
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Session store.Session `json:"session"`
	Entries []store.Entry `json:"entries"`
	Stats   TraceStats    `json:"stats"`
}

// TraceStats holds summary statistics for the session.
type TraceStats struct {
	Total  int            `json:"total"`
	Shown  int            `json:"shown"`
	Failed int            `json:"failed"`
	ByVerb map[string]int `json:"by_verb"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the journal of a session",
		Long: `Show the commands recorded for a journal session, in order, with
their printed output and error codes.

Examples:
  socialnet trace --db ./socialnet.db
  socialnet trace --db ./socialnet.db --session 0192f4d2-...
  socialnet trace --db ./socialnet.db --verb ADD_FRIEND --failed
  socialnet trace --db ./socialnet.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID (default: latest)")
	cmd.Flags().StringVar(&opts.Verb, "verb", "", "filter to one verb, e.g. SUGGEST_FRIENDS")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "show failed commands only")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	out := opts.formatter(cmd)

	st, err := openJournal(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := resolveSession(ctx, st, opts.Session)
	if err != nil {
		return err
	}

	entries, err := st.ReadSession(ctx, sess.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	result := TraceResult{
		Session: sess,
		Entries: []store.Entry{},
		Stats:   TraceStats{Total: len(entries), ByVerb: map[string]int{}},
	}
	verb := strings.ToUpper(opts.Verb)
	for _, e := range entries {
		result.Stats.ByVerb[e.Verb]++
		if !e.OK() {
			result.Stats.Failed++
		}
		if verb != "" && e.Verb != verb {
			continue
		}
		if opts.Failed && e.OK() {
			continue
		}
		result.Entries = append(result.Entries, e)
	}
	result.Stats.Shown = len(result.Entries)

	if out.JSON() {
		return out.Success(result)
	}
	printTrace(out.Writer, result)
	return nil
}

func printTrace(w io.Writer, r TraceResult) {
	fmt.Fprintf(w, "Session %s (#%d, source %s)\n", r.Session.ID, r.Session.Seq, r.Session.Source)
	fmt.Fprintln(w)

	if len(r.Entries) == 0 {
		fmt.Fprintln(w, "No entries.")
	}
	for _, e := range r.Entries {
		fmt.Fprintf(w, "[%d] %s\n", e.Seq, e.Line)
		if !e.OK() {
			fmt.Fprintf(w, "    ! %s\n", e.ErrorCode)
		}
		for _, line := range e.Output {
			fmt.Fprintf(w, "    > %s\n", line)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Entries: %d shown, %d total, %d failed\n", r.Stats.Shown, r.Stats.Total, r.Stats.Failed)
}

// openJournal opens an existing journal database.
func openJournal(path string) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "--db is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// resolveSession returns the named session, or the latest one if id is empty.
func resolveSession(ctx context.Context, st *store.Store, id string) (store.Session, error) {
	var (
		sess store.Session
		err  error
	)
	if id == "" {
		sess, err = st.LatestSession(ctx)
	} else {
		sess, err = st.GetSession(ctx, id)
	}
	if errors.Is(err, store.ErrSessionNotFound) {
		if id == "" {
			return store.Session{}, NewExitError(ExitCommandError, "journal has no sessions")
		}
		return store.Session{}, NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
	}
	if err != nil {
		return store.Session{}, WrapExitError(ExitCommandError, "failed to read session", err)
	}
	return sess, nil
}
