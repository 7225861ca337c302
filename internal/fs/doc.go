// Package fs abstracts the few filesystem operations the manifest
// store performs, so crash-consistency tests can inject failures.
//
// The manifest store commits with a write-temp, fsync, rename sequence
// and needs exactly three operations: [FileSystem.OpenFile] (files and
// directories, the latter for directory fsync), [FileSystem.Remove]
// for cleaning up temp files, and [FileSystem.Rename] for the atomic
// swap. [LocalFS] is the production implementation; [FaultyFS] wraps
// another FileSystem and fails writes, syncs or closes on cue:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.SetLimit(10) // fail after 10 bytes across all files
//	store := manifest.NewStore(ffs, dir, nil)
//
// The interfaces take no context.Context. Local metadata writes are
// small and the syscalls are not interruptible anyway; remote stores
// with real cancellation needs go through blobstore instead.
package fs
