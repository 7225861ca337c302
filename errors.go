package umesh

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFinalized is returned when cached derived state (bounds,
	// value ranges) is read before Finalize has been called after the
	// last mutation.
	ErrNotFinalized = errors.New("mesh not finalized - did you forget a Finalize() somewhere?")

	// ErrNoAttribute is returned when a value range is requested from a
	// mesh without a primary per-vertex attribute.
	ErrNoAttribute = errors.New("mesh has no per-vertex attribute")

	// ErrAttributeMismatch is returned by Append when exactly one of
	// the two meshes carries a primary attribute.
	ErrAttributeMismatch = errors.New("attribute presence mismatch between meshes")

	// ErrVertexOverflow is returned when a merge would produce more
	// vertices than a signed 32-bit element index can address.
	ErrVertexOverflow = errors.New("merged mesh would have too many vertices for 32-bit signed indices")
)

// ErrUnsupportedKind indicates a PrimRef whose kind tag is not one of
// the known primitive kinds.
type ErrUnsupportedKind struct {
	Kind PrimKind
}

func (e *ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("primitive kind #%d not implemented", e.Kind)
}

// ErrScalarCountMismatch indicates an attribute value array whose
// length does not match the mesh's vertex count.
type ErrScalarCountMismatch struct {
	Scalars  int
	Vertices int
}

func (e *ErrScalarCountMismatch) Error() string {
	return fmt.Sprintf("scalar count %d does not match vertex count %d", e.Scalars, e.Vertices)
}

// ErrIndexOutOfRange indicates an element vertex index outside
// [0, vertexCount).
type ErrIndexOutOfRange struct {
	Index    int32
	Vertices int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("vertex index %d out of range [0,%d)", e.Index, e.Vertices)
}
