package network

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the identity key for a username.
//
// The name is NFC-normalized first so that composed and decomposed forms of
// the same letter compare equal, then lower-cased.
func Normalize(name string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(name))
}
