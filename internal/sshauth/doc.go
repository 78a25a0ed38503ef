// Package sshauth keeps the SSH authentication settings of the NETCONF
// client: which methods are tried in what order, and which key pair is
// offered for public key authentication.
//
// A Registry receives its settings from config.xml through
// internal/cli/config and turns them into an ssh.ClientConfig.
package sshauth
