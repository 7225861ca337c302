package mmap

import "errors"

// AccessPattern hints how the mapped bytes will be read.
type AccessPattern int

const (
	// AccessDefault leaves the kernel's readahead policy alone.
	AccessDefault AccessPattern = iota
	// AccessSequential asks for aggressive readahead. Brick files are
	// decoded front to back, so this is what the local store uses.
	AccessSequential
)

var (
	// ErrClosed is returned when accessing a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for a negative read offset.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
