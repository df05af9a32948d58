// Package cli defines the Cobra command tree for zoomcheck. The root command
// performs the version check itself; subcommands inspect the cache, manage
// persistent defaults and print build information. Command implementations
// delegate to internal packages and only handle flags, output and exit codes.
package cli
