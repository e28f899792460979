// Package protocol implements the scene command protocol spoken to the
// renderer over its standard input.
//
// The protocol is line oriented: one instruction per line, the verb first,
// then its arguments separated by single spaces. There is no quoting or
// escaping, so every argument must be free of whitespace. This package
// enforces that constraint when a [Command] is built rather than leaving a
// malformed line for the renderer to reject.
//
// # Verbs
//
// Every verb has a fixed arity, described by a [Spec]. Arguments are typed
// by [Kind]: numbers are parsed and re-written in a canonical,
// locale-independent form so that identical scenes produce byte-identical
// streams.
//
//	cmd, err := protocol.New(protocol.VerbSetProperty3, "light1", "translate", "-10", "12", "10")
//	fmt.Println(cmd) // SetProperty3 light1 translate -10 12 10
//
// Comments are the one free-text verb. They are written as "# text" and
// truncated to [MaxCommentLength] characters.
//
// # Scripts
//
// A [Scanner] reads a scene script (the same line syntax with blank lines
// and "#" comments allowed) and yields validated commands with line numbers
// attached to any error.
package protocol
