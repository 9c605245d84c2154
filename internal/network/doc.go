// Package network implements the social graph engine.
//
// The Network owns every user record: the normalized username, the set of
// friends and the user's timeline. Callers only ever see names, post
// contents and errors; no user record escapes.
//
// INVARIANTS:
//
// Identity:
// Usernames are normalized (NFC, then lower-cased) before every lookup,
// comparison and store. "Alice" and "ALICE" are the same user.
//
// Symmetry:
// For every user u and every f in u.friends, f is a registered user and u is
// in f.friends. AddFriend validates everything before touching either side,
// so a failed call never leaves a one-sided edge.
//
// Append-only:
// There are no delete operations. Users, friendships and posts live for the
// lifetime of the Network.
//
// The Network is single-threaded by design. Wrap it with an external mutex
// if it must be shared between goroutines.
package network
