// Package mkvpropedit builds and runs the in-place metadata edit for one MKV
// file.
package mkvpropedit
