package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/88subarno88/SocialNet-Simulator/internal/network"
)

// DefaultMaxLineSize bounds a single command line (post bodies included).
const DefaultMaxLineSize = 1 << 20

// Sink receives every executed outcome, in input order.
type Sink interface {
	Record(ctx context.Context, o Outcome) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, o Outcome) error

// Record calls f.
func (f SinkFunc) Record(ctx context.Context, o Outcome) error {
	return f(ctx, o)
}

// MultiSink fans an outcome out to several sinks, stopping at the first error.
type MultiSink []Sink

// Record implements Sink.
func (m MultiSink) Record(ctx context.Context, o Outcome) error {
	for _, s := range m {
		if err := s.Record(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

// TextSink writes rendered outcomes one line at a time.
type TextSink struct {
	W io.Writer
}

// Record implements Sink.
func (t TextSink) Record(_ context.Context, o Outcome) error {
	for _, line := range Render(o) {
		if _, err := fmt.Fprintln(t.W, line); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarizes a session.
type Stats struct {
	Lines       int `json:"lines"`
	Commands    int `json:"commands"`
	Failed      int `json:"failed"`
	Unparseable int `json:"unparseable"`
}

// Session runs a stream of command lines against one network.
type Session struct {
	exec    *Executor
	maxLine int
}

// Option configures a Session.
type Option func(*Session)

// WithMaxLineSize sets the longest accepted input line in bytes.
// Values below 1 are ignored.
func WithMaxLineSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxLine = n
		}
	}
}

// NewSession creates a session over net.
func NewSession(net *network.Network, opts ...Option) *Session {
	s := &Session{exec: NewExecutor(net), maxLine: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Network returns the session's network.
func (s *Session) Network() *network.Network {
	return s.exec.Network()
}

// ExecuteLine parses and executes one line. Blank lines return ErrEmpty and
// invalid lines return a *ParseError; neither touches the network.
func (s *Session) ExecuteLine(line string) (Outcome, error) {
	cmd, err := Parse(line)
	if err != nil {
		return Outcome{}, err
	}
	return s.exec.Execute(cmd), nil
}

// Run reads r line by line until EOF or ctx is cancelled, executing each
// command and handing its outcome to sink. Lines that fail to parse are
// skipped.
func (s *Session) Run(ctx context.Context, r io.Reader, sink Sink) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, s.maxLine)), s.maxLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++

		out, err := s.ExecuteLine(scanner.Text())
		if errors.Is(err, ErrEmpty) {
			continue
		}
		if err != nil {
			stats.Unparseable++
			slog.Debug("skipping line", "line", stats.Lines, "error", err)
			continue
		}

		stats.Commands++
		if !out.OK() {
			stats.Failed++
		}
		if err := sink.Record(ctx, out); err != nil {
			return stats, fmt.Errorf("record line %d: %w", stats.Lines, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read commands: %w", err)
	}
	return stats, nil
}
