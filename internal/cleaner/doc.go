// Package cleaner walks the run's input paths and strips metadata from every
// MKV and MP4 file it finds.
//
// Each file produces a Result; the caller reduces results into a Summary
// rather than sharing counters. MKV files are identified with mkvmerge, their
// subtitle defaults decided by the subtitles package, and edited in place
// with mkvpropedit. MP4 files are inspected and cleaned with AtomicParsley.
// In dry-run mode the edit commands are logged instead of executed.
package cleaner
