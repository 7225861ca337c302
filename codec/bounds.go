package codec

import (
	"io"
	"unsafe"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/geom"
)

// WriteBounds emits one raw 4D box (xyz spatial bounds, w value
// range) per primitive, volume elements first, in PrimRef order. The
// output has no header or count; consumers derive the record count
// from the file size. The mesh must be finalized.
func WriteBounds(w io.Writer, m *umesh.Mesh) error {
	if !m.Finalized() {
		return umesh.ErrNotFinalized
	}

	prims := m.CreateAllPrimRefs()
	boxes := make([]geom.Box4, len(prims))
	for i, pr := range prims {
		b, err := m.PrimBounds4(pr)
		if err != nil {
			return err
		}
		boxes[i] = b
	}
	if len(boxes) == 0 {
		return nil
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&boxes[0])), len(boxes)*int(unsafe.Sizeof(boxes[0])))
	_, err := w.Write(raw)
	return err
}

// SaveBoundsToFile writes the per-primitive bounds file (conventional
// extension .bb4) atomically next to the mesh it describes.
func SaveBoundsToFile(path string, m *umesh.Mesh) error {
	return saveToFile(path, func(w io.Writer) error {
		return WriteBounds(w, m)
	})
}
