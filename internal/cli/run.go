package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/88subarno88/SocialNet-Simulator/internal/command"
	"github.com/88subarno88/SocialNet-Simulator/internal/journal"
	"github.com/88subarno88/SocialNet-Simulator/internal/network"
	"github.com/88subarno88/SocialNet-Simulator/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Journal string

	// SessionIDs allows overriding the journal session ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	SessionIDs store.IDGenerator
}

// RunSummary is printed after a run in JSON mode and logged otherwise.
type RunSummary struct {
	Stats   command.Stats `json:"stats"`
	Session string        `json:"session,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommandWith(&RunOptions{RootOptions: rootOpts})
}

func newRunCommandWith(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Execute a command script",
		Long: `Execute social network commands from a file, or from stdin when no
file is given. One command per line:

  ADD USER <name>
  ADD FRIEND <a> <b>
  ADD POST <name> "<content>"
  LIST FRIENDS <name>
  SUGGEST FRIENDS <name> <n>
  DEGREES OF SEPARATION <a> <b>
  OUTPUT POSTS <name> <n>

Failed commands print an error message and the run continues. Lines that
are not commands are skipped.

With --journal every executed command is recorded in a SQLite database
for trace and replay.

Examples:
  socialnet run commands.txt
  socialnet run --journal ./socialnet.db < commands.txt
  socialnet run commands.txt --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runCommands(opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the session in this SQLite database")

	return cmd
}

func runCommands(opts *RunOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	var (
		in     io.Reader = cmd.InOrStdin()
		source           = "stdin"
	)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open command file", err)
		}
		defer f.Close()
		in, source = f, path
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := command.MultiSink{outcomeSink(out)}

	var rec *journal.Recorder
	if dbPath := opts.journalPath(); dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()

		ids := opts.SessionIDs
		if ids == nil {
			ids = store.UUIDv7Generator{}
		}
		rec, err = journal.Start(ctx, st, ids, source)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start journal session", err)
		}
		slog.Info("journal session started", "session", rec.Session().ID, "db", dbPath)
		sinks = append(sinks, rec)
	}

	net := network.New()
	sess := command.NewSession(net, command.WithMaxLineSize(opts.Config.MaxLineBytes))
	stats, err := sess.Run(ctx, in, sinks)
	if err != nil {
		return WrapExitError(ExitFailure, "run aborted", err)
	}

	summary := RunSummary{Stats: stats}
	if rec != nil {
		summary.Session = rec.Session().ID
	}
	slog.Debug("run complete",
		"lines", stats.Lines,
		"commands", stats.Commands,
		"failed", stats.Failed,
		"unparseable", stats.Unparseable,
		"session", summary.Session,
	)

	if out.JSON() {
		if err := out.Line(map[string]any{"summary": summary}); err != nil {
			return err
		}
	}

	if opts.Verbose {
		fmt.Fprintln(out.GetErrWriter(), litter.Sdump(net.Snapshot()))
	}
	return nil
}

// journalPath resolves the journal database: the flag wins over config.
func (o *RunOptions) journalPath() string {
	if o.Journal != "" {
		return o.Journal
	}
	return o.Config.Journal
}

// OutcomeLine is the JSON form of one executed command.
type OutcomeLine struct {
	Line   string    `json:"line"`
	Verb   string    `json:"verb"`
	OK     bool      `json:"ok"`
	Output []string  `json:"output"`
	Error  *CLIError `json:"error,omitempty"`
}

// outcomeSink prints each outcome as text lines or as one JSON object.
func outcomeSink(out *OutputFormatter) command.Sink {
	if !out.JSON() {
		return command.TextSink{W: out.Writer}
	}
	return command.SinkFunc(func(_ context.Context, o command.Outcome) error {
		line := OutcomeLine{
			Line:   o.Command.Line,
			Verb:   o.Command.Verb.String(),
			OK:     o.OK(),
			Output: o.Lines,
		}
		if !o.OK() {
			line.Error = &CLIError{
				Code:    string(network.CodeOf(o.Err)),
				Message: command.Message(o.Err),
			}
		}
		return out.Line(line)
	})
}
