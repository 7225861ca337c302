package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/geom"
)

// Write encodes the mesh in the current format. The mesh must be
// finalized unless it is empty, so a half-mutated mesh can never
// reach disk. Grid-only meshes count as nonempty even though they
// carry no vertices.
func Write(w io.Writer, m *umesh.Mesh) error {
	if !m.Finalized() && (len(m.Vertices) > 0 || m.Size() > 0) {
		return umesh.ErrNotFinalized
	}

	if err := writeUint64(w, MagicCurrent); err != nil {
		return err
	}
	if err := writeSlice(w, m.Vertices); err != nil {
		return err
	}

	if err := writeUint64(w, uint64(len(m.Attributes))); err != nil {
		return err
	}
	for _, attr := range m.Attributes {
		if err := writeString(w, attr.Name); err != nil {
			return err
		}
		if err := writeSlice(w, attr.Values); err != nil {
			return err
		}
	}

	// Per-element attributes are not produced by this version; the
	// count field is reserved in the format.
	if err := writeUint64(w, 0); err != nil {
		return err
	}

	if err := writeSlice(w, m.Triangles); err != nil {
		return err
	}
	if err := writeSlice(w, m.Quads); err != nil {
		return err
	}
	if err := writeSlice(w, m.Tets); err != nil {
		return err
	}
	if err := writeSlice(w, m.Pyramids); err != nil {
		return err
	}
	if err := writeSlice(w, m.Wedges); err != nil {
		return err
	}
	if err := writeSlice(w, m.Hexes); err != nil {
		return err
	}

	if err := writeSlice(w, m.Grids); err != nil {
		return err
	}
	if err := writeSlice(w, m.GridScalars); err != nil {
		return err
	}

	if len(m.VertexTags) > 0 {
		if err := writeSlice(w, m.VertexTags); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a mesh in any of the three supported format revisions
// and finalizes it before returning.
func Read(r io.Reader) (*umesh.Mesh, error) {
	magic, err := readUint64(r)
	if err != nil {
		return nil, err
	}

	m := umesh.NewMesh()
	switch magic {
	case MagicCurrent:
		err = readBody(r, m, true)
	case MagicNoGrids:
		err = readBody(r, m, false)
	case MagicLegacy:
		err = readLegacyBody(r, m)
	default:
		return nil, fmt.Errorf("%w: 0x%x", ErrBadMagic, magic)
	}
	if err != nil {
		return nil, err
	}

	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

// readBody decodes the current layout; the grids sections are only
// present when withGrids is set.
func readBody(r io.Reader, m *umesh.Mesh, withGrids bool) error {
	var err error
	if m.Vertices, err = readSlice[geom.Vec3](r); err != nil {
		return err
	}

	numAttributes, err := readUint64(r)
	if err != nil {
		return err
	}
	if numAttributes > maxArrayLen {
		return fmt.Errorf("%w: %d attributes", ErrBadLength, numAttributes)
	}
	for i := uint64(0); i < numAttributes; i++ {
		attr := &umesh.Attribute{}
		if attr.Name, err = readString(r); err != nil {
			return err
		}
		if attr.Values, err = readSlice[float32](r); err != nil {
			return err
		}
		m.Attributes = append(m.Attributes, attr)
	}
	if len(m.Attributes) > 0 {
		m.PerVertex = m.Attributes[0]
	}

	numPerElement, err := readUint64(r)
	if err != nil {
		return err
	}
	if numPerElement != 0 {
		return fmt.Errorf("per-element attributes are not supported (count %d)", numPerElement)
	}

	if err := readElements(r, m); err != nil {
		return err
	}

	if withGrids {
		if m.Grids, err = readSlice[umesh.Grid](r); err != nil {
			return err
		}
		if m.GridScalars, err = readSlice[float32](r); err != nil {
			return err
		}
	}

	readVertexTags(r, m)
	return nil
}

// readLegacyBody decodes the oldest revision: one unnamed attribute,
// no per-element attribute count, no grids.
func readLegacyBody(r io.Reader, m *umesh.Mesh) error {
	var err error
	if m.Vertices, err = readSlice[geom.Vec3](r); err != nil {
		return err
	}

	values, err := readSlice[float32](r)
	if err != nil {
		return err
	}
	if len(values) > 0 {
		m.PerVertex = &umesh.Attribute{Values: values}
		m.Attributes = []*umesh.Attribute{m.PerVertex}
	}

	if err := readElements(r, m); err != nil {
		return err
	}

	readVertexTags(r, m)
	return nil
}

func readElements(r io.Reader, m *umesh.Mesh) error {
	var err error
	if m.Triangles, err = readSlice[umesh.Triangle](r); err != nil {
		return err
	}
	if m.Quads, err = readSlice[umesh.Quad](r); err != nil {
		return err
	}
	if m.Tets, err = readSlice[umesh.Tet](r); err != nil {
		return err
	}
	if m.Pyramids, err = readSlice[umesh.Pyramid](r); err != nil {
		return err
	}
	if m.Wedges, err = readSlice[umesh.Wedge](r); err != nil {
		return err
	}
	if m.Hexes, err = readSlice[umesh.Hex](r); err != nil {
		return err
	}
	return nil
}

// readVertexTags reads the optional trailing tag array. The section
// was bolted onto the format late, so absence is normal: any failure
// here, end-of-stream included, means "no tags" rather than an error.
func readVertexTags(r io.Reader, m *umesh.Mesh) {
	tags, err := readSlice[uint64](r)
	if err != nil {
		return
	}
	m.VertexTags = tags
}

// SaveToFile writes the mesh to path atomically: the data goes to a
// temp file in the target directory, which is fsynced and renamed
// over the target; the directory is then fsynced best-effort so the
// rename survives a crash.
func SaveToFile(path string, m *umesh.Mesh) error {
	return saveToFile(path, func(w io.Writer) error {
		return Write(w, m)
	})
}

// LoadFromFile reads a mesh from path.
func LoadFromFile(path string) (*umesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReaderSize(f, 256*1024))
}

func saveToFile(path string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	// Buffered writer to batch the many small section writes.
	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}
