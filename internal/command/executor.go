package command

import (
	"fmt"
	"strconv"

	"github.com/88subarno88/SocialNet-Simulator/internal/network"
)

// Outcome is the result of executing one Command.
type Outcome struct {
	Command Command

	// Lines holds the result values: names, post contents or a distance.
	Lines []string

	// Err is the engine error, if any. Engine errors are reported outcomes,
	// never fatal.
	Err error
}

// OK reports whether the command succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Executor dispatches Commands to a network.Network.
type Executor struct {
	net *network.Network
}

// NewExecutor creates an executor for net.
func NewExecutor(net *network.Network) *Executor {
	return &Executor{net: net}
}

// Network returns the network the executor drives.
func (e *Executor) Network() *network.Network {
	return e.net
}

// Execute runs cmd and returns its outcome.
func (e *Executor) Execute(cmd Command) Outcome {
	out := Outcome{Command: cmd, Lines: []string{}}

	switch cmd.Verb {
	case AddUser:
		out.Err = e.net.AddUser(cmd.Users[0])
	case AddFriend:
		out.Err = e.net.AddFriend(cmd.Users[0], cmd.Users[1])
	case AddPost:
		out.Err = e.net.AddPost(cmd.Users[0], cmd.Content)
	case ListFriends:
		out.Lines, out.Err = e.net.ListFriends(cmd.Users[0])
	case SuggestFriends:
		out.Lines, out.Err = e.net.SuggestFriends(cmd.Users[0], cmd.N)
	case OutputPosts:
		out.Lines, out.Err = e.net.OutputPosts(cmd.Users[0], cmd.N)
	case DegreesOfSeparation:
		var d int
		d, out.Err = e.net.DegreesOfSeparation(cmd.Users[0], cmd.Users[1])
		if out.Err == nil {
			out.Lines = []string{strconv.Itoa(d)}
		}
	default:
		out.Err = fmt.Errorf("unsupported verb %s", cmd.Verb)
	}

	if out.Err != nil || out.Lines == nil {
		out.Lines = []string{}
	}
	return out
}
