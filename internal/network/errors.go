package network

import (
	"errors"
	"fmt"
	"strings"
)

// Unreachable is the DegreesOfSeparation result when no path exists.
// It is a defined outcome, not an error.
const Unreachable = -1

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeAlreadyExists indicates AddUser on a registered name.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// ErrCodeUserNotFound indicates one or more referenced users are missing.
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"

	// ErrCodeSelfFriend indicates AddFriend with two equal names.
	ErrCodeSelfFriend ErrorCode = "SELF_FRIEND"

	// ErrCodeAlreadyFriends indicates AddFriend on an existing edge.
	ErrCodeAlreadyFriends ErrorCode = "ALREADY_FRIENDS"
)

// Sentinels for errors.Is. Matching compares codes only.
var (
	ErrAlreadyExists  = &Error{Code: ErrCodeAlreadyExists}
	ErrUserNotFound   = &Error{Code: ErrCodeUserNotFound}
	ErrSelfFriend     = &Error{Code: ErrCodeSelfFriend}
	ErrAlreadyFriends = &Error{Code: ErrCodeAlreadyFriends}
)

// Error is a reported engine outcome. It never indicates corrupted state.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Names lists the usernames involved, as the caller spelled them.
	// For ErrCodeUserNotFound it holds exactly the missing names.
	Names []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeAlreadyExists:
		return fmt.Sprintf("%s: user %s already exists", e.Code, e.name(0))
	case ErrCodeUserNotFound:
		return fmt.Sprintf("%s: %s not found", e.Code, strings.Join(e.Names, ", "))
	case ErrCodeSelfFriend:
		return fmt.Sprintf("%s: %s cannot friend themselves", e.Code, e.name(0))
	case ErrCodeAlreadyFriends:
		return fmt.Sprintf("%s: %s and %s are already friends", e.Code, e.name(0), e.name(1))
	}
	return string(e.Code)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) name(i int) string {
	if i < len(e.Names) {
		return e.Names[i]
	}
	return ""
}

// IsNotFound reports whether err is a missing-user error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsAlreadyExists reports whether err is a duplicate-user error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// CodeOf extracts the ErrorCode from err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func notFound(names ...string) *Error {
	return &Error{Code: ErrCodeUserNotFound, Names: names}
}
