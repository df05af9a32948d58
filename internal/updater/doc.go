// Package updater retrieves the latest published version of the watched
// package. The vendor's download descriptor is cached verbatim on disk and
// refetched when it is older than the configured timeout, when it is missing,
// or when a refresh is forced. The cache file's modification time is the
// fetched-at stamp and is written explicitly after every download.
package updater
