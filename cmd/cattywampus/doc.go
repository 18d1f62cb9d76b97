// Package main hosts the cattywampus CLI.
//
// The root command cleans the metadata of the MKV and MP4 files named on the
// command line or in an input list. Subcommands expose the resolved
// configuration and the run history.
package main
