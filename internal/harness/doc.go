// Package harness runs scenario files against a fresh social network.
//
// A scenario is a YAML document holding a command script, the exact output
// it must print, and assertions over the final network state:
//
//	name: mutual_friends
//	description: suggestions rank by mutual friend count
//	commands:
//	  - ADD USER a
//	  - ADD USER b
//	  - ADD FRIEND a b
//	expect: []
//	assertions:
//	  - type: friends
//	    user: a
//	    expect: [b]
//
// Each run journals its commands into a private in-memory store; the
// journaled entries form the trace used by RunWithGolden, so golden files
// also pin the journal encoding.
package harness
