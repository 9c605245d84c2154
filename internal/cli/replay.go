package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/88subarno88/SocialNet-Simulator/internal/journal"
	"github.com/88subarno88/SocialNet-Simulator/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session       store.Session      `json:"session"`
	Entries       int                `json:"entries"`
	Users         int                `json:"users"`
	Friendships   int                `json:"friendships"`
	Deterministic bool               `json:"deterministic"`
	Mismatches    []journal.Mismatch `json:"mismatches,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journaled sessions and verify determinism",
		Long: `Re-execute journaled sessions against an empty network and check
that every command reproduces its recorded output and error code.

Exit codes:
  0 - All sessions are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  socialnet replay --db ./socialnet.db
  socialnet replay --db ./socialnet.db --session 0192f4d2-...
  socialnet replay --db ./socialnet.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	out := opts.formatter(cmd)

	st, err := openJournal(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var sessions []store.Session
	if opts.Session != "" {
		sess, err := resolveSession(ctx, st, opts.Session)
		if err != nil {
			return err
		}
		sessions = []store.Session{sess}
	} else {
		sessions, err = st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(sessions)),
		TotalSessions:    len(sessions),
		AllDeterministic: true,
	}

	for _, sess := range sessions {
		r, err := journal.Replay(ctx, st, sess.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", sess.ID), err)
		}

		snap := r.Network.Snapshot()
		result.Sessions = append(result.Sessions, ReplaySessionResult{
			Session:       sess,
			Entries:       r.Entries,
			Users:         len(snap.Users),
			Friendships:   snap.FriendCount(),
			Deterministic: r.OK(),
			Mismatches:    r.Mismatches,
		})
		if !r.OK() {
			result.AllDeterministic = false
		}
		if opts.Verbose {
			fmt.Fprintf(out.GetErrWriter(), "session %s final state:\n%s\n", sess.ID, litter.Sdump(snap))
		}
	}

	if out.JSON() {
		if !result.AllDeterministic {
			if err := out.Error(CodeReplayMismatch, "replay diverged from the journal", result); err != nil {
				return err
			}
		} else if err := out.Success(result); err != nil {
			return err
		}
	} else {
		printReplay(out.Writer, result)
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

func printReplay(w io.Writer, r ReplayResult) {
	if r.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return
	}

	for _, s := range r.Sessions {
		mark := "✓"
		if !s.Deterministic {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s: %d entries, %d users, %d friendships\n",
			mark, s.Session.ID, s.Entries, s.Users, s.Friendships)
		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "  [%d] %s\n", m.Seq, m.Line)
			if m.ParseFailure != "" {
				fmt.Fprintf(w, "      no longer parses: %s\n", m.ParseFailure)
				continue
			}
			fmt.Fprintf(w, "      recorded %q %q\n", m.WantCode, m.WantOutput)
			fmt.Fprintf(w, "      replayed %q %q\n", m.GotCode, m.GotOutput)
		}
	}

	fmt.Fprintln(w)
	if r.AllDeterministic {
		fmt.Fprintf(w, "✓ All %d session(s) replayed deterministically\n", r.TotalSessions)
	} else {
		fmt.Fprintln(w, "✗ Determinism verification failed")
	}
}
