// Package config locates and decodes the cattywampus TOML configuration file.
//
// Every recognised key decodes into a pointer field on File so callers can
// tell a key that was written in the file (even as false or zero) from one
// that was left out. The built-in values used for absent keys live in
// Defaults. On first run the embedded sample configuration is written to the
// platform configuration directory; a custom path that does not exist is an
// error rather than a silent fallback.
package config
