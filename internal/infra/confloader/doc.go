// Package confloader loads the client's own settings.
//
// It uses koanf to merge settings from several sources. Later sources
// override earlier ones:
//
//  1. Defaults supplied by the caller
//  2. Settings file (YAML, usually <config-dir>/cli.yaml)
//  3. Environment variables (NETCONF_<SECTION>_<KEY>)
//
// The package also provides a Watcher that reports writes to individual
// files, used to pick up edits to config.xml during an interactive session.
package confloader
