// Package deps locates the external tools (mkvmerge, mkvpropedit,
// AtomicParsley) and reports their versions.
package deps
