// Package atomicparsley reads and clears the title and description atoms of
// MP4 files with AtomicParsley.
package atomicparsley
