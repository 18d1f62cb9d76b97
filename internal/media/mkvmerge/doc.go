// Package mkvmerge decodes `mkvmerge -J` identification output.
//
// Only the fields metadata cleaning needs are modelled: the segment title
// and, per track, its type, name and language tags.
package mkvmerge
