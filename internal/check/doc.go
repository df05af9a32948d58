// Package check compares the installed package version with the published
// one and tells the user about the outcome, either with a desktop
// notification or, when notifications are suppressed, only through the
// returned Result. Versions are compared as exact strings.
package check
