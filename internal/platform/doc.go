// Package platform wraps the external commands the tool depends on: the
// package manager query and the desktop notification dispatcher. Callers
// depend on the Runner interface so tests can substitute canned output.
package platform
