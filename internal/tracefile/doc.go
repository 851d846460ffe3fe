// Package tracefile opens allocator trace files and splits them into lines.
//
// Traces are read exactly once, front to back. On Linux the kernel is told so
// via posix_fadvise(POSIX_FADV_SEQUENTIAL); elsewhere the file is opened
// normally. The Scanner decodes a leading byte-order mark, so UTF-16 traces
// written on Windows read the same as plain ASCII ones.
package tracefile
