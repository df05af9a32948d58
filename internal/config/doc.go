// Package config manages user-level settings stored at
// ~/.config/zoomcheck/config.yaml. Every command-line option can be given a
// persistent default there or through a ZOOMCHECK_* environment variable.
package config
