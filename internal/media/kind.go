package media

import (
	"path/filepath"
	"strings"
)

// Kind is the container family a file belongs to.
type Kind string

const (
	KindUnknown Kind = ""
	KindMKV     Kind = "mkv"
	KindMP4     Kind = "mp4"
)

// Label returns the display name used in logs and summaries.
func (k Kind) Label() string {
	switch k {
	case KindMKV:
		return "MKV"
	case KindMP4:
		return "MP4"
	default:
		return "unknown"
	}
}

// KindOf classifies path by extension, ignoring case.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mkv":
		return KindMKV
	case ".mp4", ".m4v", ".mp4v":
		return KindMP4
	default:
		return KindUnknown
	}
}

// Allowed reports whether kind passes the only-MKV / only-MP4 filters.
func (k Kind) Allowed(onlyMKV, onlyMP4 bool) bool {
	switch k {
	case KindMKV:
		return !onlyMP4
	case KindMP4:
		return !onlyMKV
	default:
		return false
	}
}
