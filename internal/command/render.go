package command

import (
	"errors"
	"fmt"

	"github.com/88subarno88/SocialNet-Simulator/internal/network"
)

// Render returns the user-facing lines for an outcome: the result values on
// success, or a single error message.
func Render(o Outcome) []string {
	if o.Err == nil {
		return o.Lines
	}
	return []string{Message(o.Err)}
}

// Message formats an engine error for display.
func Message(err error) string {
	var e *network.Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("Error: %v", err)
	}

	name := func(i int) string {
		if i < len(e.Names) {
			return e.Names[i]
		}
		return ""
	}

	switch e.Code {
	case network.ErrCodeAlreadyExists:
		return fmt.Sprintf("Error: User %s already exists.", name(0))
	case network.ErrCodeSelfFriend:
		return "Error: User cannot friend themselves."
	case network.ErrCodeAlreadyFriends:
		return fmt.Sprintf("Error: %s and %s are already friends.", name(0), name(1))
	case network.ErrCodeUserNotFound:
		if len(e.Names) > 1 {
			return fmt.Sprintf("Error: Users %s and %s do not exist.", name(0), name(1))
		}
		return fmt.Sprintf("Error: User %s does not exist.", name(0))
	}
	return fmt.Sprintf("Error: %v", err)
}
