// Package probe reads the installed version of the watched package from the
// system package manager. It runs `apt show <package>` and extracts the
// version from the `Version:` line of the output.
package probe
