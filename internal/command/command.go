// Package command adapts line-oriented text commands to the network engine.
//
// A line is parsed into a typed Command, executed against a
// network.Network, and the resulting Outcome is rendered to text. The
// command language is:
//
//	ADD USER <name>
//	ADD FRIEND <a> <b>
//	ADD POST <name> "<content>"
//	LIST FRIENDS <name>
//	SUGGEST FRIENDS <name> <n>
//	DEGREES OF SEPARATION <a> <b>
//	OUTPUT POSTS <name> <n>
//
// Keywords are case-sensitive; usernames are not.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Verb identifies one engine operation.
type Verb int

const (
	// AddUser registers a user.
	AddUser Verb = iota + 1
	// AddFriend creates a friendship.
	AddFriend
	// AddPost appends a post to a timeline.
	AddPost
	// ListFriends lists a user's friends.
	ListFriends
	// SuggestFriends ranks friend-of-friend candidates.
	SuggestFriends
	// DegreesOfSeparation computes the shortest path length.
	DegreesOfSeparation
	// OutputPosts lists a user's most recent posts.
	OutputPosts
)

var verbNames = map[Verb]string{
	AddUser:             "ADD_USER",
	AddFriend:           "ADD_FRIEND",
	AddPost:             "ADD_POST",
	ListFriends:         "LIST_FRIENDS",
	SuggestFriends:      "SUGGEST_FRIENDS",
	DegreesOfSeparation: "DEGREES_OF_SEPARATION",
	OutputPosts:         "OUTPUT_POSTS",
}

// String returns the verb's stable name, e.g. "ADD_USER".
func (v Verb) String() string {
	if s, ok := verbNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Verb(%d)", int(v))
}

// Command is a parsed command line.
type Command struct {
	Verb Verb

	// Users holds the username arguments, as typed.
	Users []string

	// N is the count argument of SUGGEST FRIENDS and OUTPUT POSTS.
	N int

	// Content is the body of ADD POST.
	Content string

	// Line is the raw input line.
	Line string
}

// Args returns the command arguments as a map, used for journaling.
func (c Command) Args() map[string]any {
	args := map[string]any{}
	users := make([]any, len(c.Users))
	for i, u := range c.Users {
		users[i] = u
	}
	args["users"] = users
	switch c.Verb {
	case SuggestFriends, OutputPosts:
		args["n"] = int64(c.N)
	case AddPost:
		args["content"] = c.Content
	}
	return args
}

// ErrEmpty is returned by Parse for blank lines.
var ErrEmpty = errors.New("empty line")

// ParseError describes a line that is not a valid command.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Line, e.Reason)
}

// Parse converts a command line into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}

	fail := func(format string, args ...any) (Command, error) {
		return Command{}, &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
	}
	need := func(n int) bool { return len(fields) >= n }

	cmd := Command{Line: line}
	switch fields[0] {
	case "ADD":
		if !need(2) {
			return fail("ADD requires USER, FRIEND or POST")
		}
		switch fields[1] {
		case "USER":
			if !need(3) {
				return fail("ADD USER requires a username")
			}
			cmd.Verb = AddUser
			cmd.Users = fields[2:3]
		case "FRIEND":
			if !need(4) {
				return fail("ADD FRIEND requires two usernames")
			}
			cmd.Verb = AddFriend
			cmd.Users = fields[2:4]
		case "POST":
			if !need(3) {
				return fail("ADD POST requires a username")
			}
			cmd.Verb = AddPost
			cmd.Users = fields[2:3]
			cmd.Content = quoted(line[fieldEnd(line, 3):])
		default:
			return fail("unknown ADD target %q", fields[1])
		}

	case "LIST":
		if !need(3) || fields[1] != "FRIENDS" {
			return fail("expected LIST FRIENDS <name>")
		}
		cmd.Verb = ListFriends
		cmd.Users = fields[2:3]

	case "SUGGEST":
		if !need(4) || fields[1] != "FRIENDS" {
			return fail("expected SUGGEST FRIENDS <name> <n>")
		}
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return fail("invalid count %q", fields[3])
		}
		cmd.Verb = SuggestFriends
		cmd.Users = fields[2:3]
		cmd.N = n

	case "DEGREES":
		// the two words after DEGREES are not checked
		if !need(5) {
			return fail("expected DEGREES OF SEPARATION <a> <b>")
		}
		cmd.Verb = DegreesOfSeparation
		cmd.Users = fields[3:5]

	case "OUTPUT":
		if !need(4) || fields[1] != "POSTS" {
			return fail("expected OUTPUT POSTS <name> <n>")
		}
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return fail("invalid count %q", fields[3])
		}
		cmd.Verb = OutputPosts
		cmd.Users = fields[2:3]
		cmd.N = n

	default:
		return fail("unknown command %q", fields[0])
	}

	// detach from the fields backing array
	cmd.Users = append([]string(nil), cmd.Users...)
	return cmd, nil
}

// quoted returns the first "..." span of s. An unterminated quote runs to the
// end of s; no quote at all yields "".
func quoted(s string) string {
	open := strings.IndexByte(s, '"')
	if open < 0 {
		return ""
	}
	rest := s[open+1:]
	if end := strings.IndexByte(rest, '"'); end >= 0 {
		return rest[:end]
	}
	return rest
}

// fieldEnd returns the byte offset just past the k-th whitespace-separated
// field of line (1-based), or len(line) if there are fewer fields. Field
// boundaries match strings.Fields.
func fieldEnd(line string, k int) int {
	seen, inField := 0, false
	for i, r := range line {
		space := unicode.IsSpace(r)
		switch {
		case !space && !inField:
			inField = true
		case space && inField:
			inField = false
			seen++
			if seen == k {
				return i
			}
		}
	}
	return len(line)
}
