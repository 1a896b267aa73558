// Package cli provides the gophboard command-line client.
//
// Running the binary without a subcommand opens the terminal board. The
// subcommands cover the same operations for scripts: login and logout with a
// wallet key, listing and editing cards, and working with the deleted log.
//
// Configuration is resolved once per invocation in the root command's
// PersistentPreRunE: defaults, then the optional JSON file, then any flag
// given on the command line.
package cli
