// Package command defines the netconf-cli command tree on urfave/cli/v2.
//
//   - root.go: application, global flags, Before/After hooks
//   - runtime.go: per-run state shared by all commands
//   - config.go: config path, config show
//   - capabilities.go: capabilities list, add, remove, reset
//   - auth.go: auth show
//   - history.go: history list, clear
//   - shell.go: interactive shell
//
// Every run loads the client configuration in Before and stores it again
// in After, so changes made by a command persist like they do at the end
// of an interactive session.
package command
