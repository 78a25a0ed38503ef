// Package repl provides the interactive shell of netconf-cli.
//
//   - repl.go: read loop, shell-style word splitting and dispatch
//   - history.go: in-memory command history and its file format
//   - completer.go: command name completion ("cap?" lists matches)
//
// History implements the line editor side of configuration persistence:
// internal/cli/config decides where the history file lives and when it is
// read or written, History decides what is in it.
package repl
