// Package media holds what the tool wrappers share: the Runner used to
// execute external binaries, the error it reports, and container kind
// detection by file extension.
package media
