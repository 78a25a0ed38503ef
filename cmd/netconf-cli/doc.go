// Package main provides the entry point for netconf-cli.
//
// netconf-cli keeps the per-user configuration of a NETCONF client in
// ~/.netconf_client: the shell history and config.xml with the advertised
// capabilities and SSH authentication settings.
//
// Usage:
//
//	netconf-cli capabilities list
//	netconf-cli capabilities add urn:ietf:params:netconf:capability:notification:1.0
//	netconf-cli -o json config show
//	netconf-cli shell --watch
package main
