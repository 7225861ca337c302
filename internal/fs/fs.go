package fs

import (
	"io"
	"os"
)

// File is an open file handle. Sync is part of the interface because
// the manifest commit protocol fsyncs both the manifest file and its
// directory before advancing the CURRENT pointer.
type File interface {
	io.ReadWriteCloser
	io.ReaderAt
	io.Seeker
	Sync() error
	Stat() (os.FileInfo, error)
}

// FileSystem is the slice of filesystem operations the manifest store
// needs for its write-temp, fsync, rename commit sequence. Keeping it
// an interface lets tests drive the store through [FaultyFS].
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// LocalFS backs FileSystem with the os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Remove(name string) error             { return os.Remove(name) }
func (LocalFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

// Default is the local filesystem.
var Default FileSystem = LocalFS{}
