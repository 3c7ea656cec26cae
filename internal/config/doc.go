// Package config loads, validates, and normalizes photovault configuration.
//
// Configuration lives in a TOML file (default ~/.config/photovault/config.toml)
// and covers the library document location, the default storage root offered on
// first use, the accepted image extensions, and log output settings. The
// persisted photo/album collections themselves are owned by internal/library,
// not by this package.
package config
