// Package options resolves the command line, the configuration file, and the
// built-in defaults into one Record.
//
// Each option is resolved independently: an explicit command-line value wins,
// then a key present in the config file, then the default. The winning source
// is recorded next to every value. Language resolution and the stdout
// log level shortcut are the only cross-option rules; the latter runs as a
// separate adjustment step after resolution. Resolve never exits the process
// and never touches the filesystem; Validate reports the fatal conditions.
package options
