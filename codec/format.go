// Package codec implements the versioned binary on-disk format for
// meshes. The encoding is little-endian and stream-oriented: a 64-bit
// magic constant followed by length-prefixed raw arrays. The write
// path always emits the current format; the read path dispatches on
// the magic to one of three decoders covering the two legacy
// revisions still found in the wild. The package also carries the
// pluggable JSON codec used for manifest sidecar files.
package codec

import "errors"

const (
	// MagicCurrent is the current format: vertices, named attributes,
	// per-element attribute count, six element arrays, grids with
	// their shared scalar array, optional vertex tags.
	MagicCurrent uint64 = 0x234235568

	// MagicNoGrids is the revision before grids existed; otherwise
	// identical to the current format.
	MagicNoGrids uint64 = 0x234235567

	// MagicLegacy is the oldest readable revision: a single unnamed
	// attribute, no per-element attribute count, no grids.
	MagicLegacy uint64 = 0x234235566
)

var (
	ErrBadMagic  = errors.New("bad magic number - not a mesh file")
	ErrTruncated = errors.New("truncated mesh file")
	ErrBadLength = errors.New("implausible array length in mesh file")
)

// maxArrayLen bounds any declared array length on the read path. A
// count beyond this is a corrupt length field, not a real mesh; the
// check keeps a garbage stream from triggering a huge allocation
// before the inevitable read failure.
const maxArrayLen = 1 << 40
