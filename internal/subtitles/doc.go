// Package subtitles decides which subtitle track of a Matroska file becomes
// the default and expresses that decision as mkvpropedit flag edits.
package subtitles
