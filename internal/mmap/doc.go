// Package mmap provides read-only memory-mapped file access.
//
// Mesh brick files reach multiple gigabytes; mapping them lets the
// loader hand raw sections to the codec without copying through
// kernel buffers.
//
//	m, err := mmap.Open("brick_00042.umesh")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//	m.Advise(mmap.AccessSequential)
//
// Unix platforms use mmap(2) with madvise(2) hints; Windows uses
// CreateFileMapping/MapViewOfFile and treats hints as no-ops.
// Mappings are safe for concurrent reads; Close is idempotent, but
// callers must not touch Bytes() after Close returns.
package mmap
