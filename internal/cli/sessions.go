package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/88subarno88/SocialNet-Simulator/internal/store"
)

// SessionSummary describes one journal session.
type SessionSummary struct {
	store.Session
	Entries int `json:"entries"`
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List journal sessions",
		Long: `List the sessions recorded in a journal, oldest first.

Examples:
  socialnet sessions --db ./socialnet.db
  socialnet sessions --db ./socialnet.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(rootOpts, database, cmd)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSessions(opts *RootOptions, database string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := opts.formatter(cmd)

	st, err := openJournal(database)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		n, err := st.CountEntries(ctx, s.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to count entries", err)
		}
		summaries = append(summaries, SessionSummary{Session: s, Entries: n})
	}

	if out.JSON() {
		return out.Success(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(out.Writer, "No sessions found.")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(out.Writer, "#%d %s %s (%d entries)\n", s.Seq, s.ID, s.Source, s.Entries)
	}
	return nil
}
