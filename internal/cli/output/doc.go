// Package output renders command results as a table, JSON or YAML.
//
// Results that know how to lay themselves out implement Tabler; anything
// else is rendered as a one-column list (slices of strings) or a
// field/value table (structs and maps).
package output
