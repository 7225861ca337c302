// Package ugrid imports ugrid32 files, the fixed-layout binary format
// used by NASA's fun3d tooling. A ugrid32 file is a 7-count header
// followed by vertices, surface elements, per-surface IDs and volume
// elements, all little-endian with 1-based vertex indices.
package ugrid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/geom"
	"github.com/umeshkit/umesh/internal/parallel"
)

// VertexFormat selects how vertex coordinates are encoded.
type VertexFormat int

const (
	// FormatAuto detects the format from the file name suffix:
	// .lb4 means float32, .lb8 means float64.
	FormatAuto VertexFormat = iota
	// FormatFloat reads float32 coordinates.
	FormatFloat
	// FormatDouble reads float64 coordinates, narrowed to float32.
	FormatDouble
)

// ErrUnknownFormat means the vertex format could not be detected from
// the file name and was not given explicitly.
var ErrUnknownFormat = errors.New("cannot detect float vs double vertex format from file name")

// Options controls the importer.
type Options struct {
	// Format of the vertex coordinates. FormatAuto only works with
	// Load, which can inspect the file name.
	Format VertexFormat

	// Stats collects degeneracy filter counters, optional.
	Stats *umesh.FilterStats

	Logger *umesh.Logger
}

// header mirrors the 28-byte ugrid32 file header.
type header struct {
	NumVerts  uint32
	NumTris   uint32
	NumQuads  uint32
	NumTets   uint32
	NumPyrs   uint32
	NumPrisms uint32
	NumHexes  uint32
}

// Load imports a ugrid32 file, optionally attaching per-vertex scalars
// from a sidecar file (one float32 per vertex). An empty scalarPath
// means no attribute.
func Load(dataPath, scalarPath string, opts Options) (*umesh.Mesh, error) {
	format := opts.Format
	if format == FormatAuto {
		switch {
		case strings.Contains(dataPath, ".lb4"):
			format = FormatFloat
		case strings.Contains(dataPath, ".lb8"):
			format = FormatDouble
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, dataPath)
		}
	}
	opts.Format = format

	data, err := os.Open(dataPath)
	if err != nil {
		return nil, err
	}
	defer data.Close()

	var scalars io.Reader
	if scalarPath != "" {
		f, err := os.Open(scalarPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		scalars = f
	}

	return Read(data, scalars, opts)
}

// Read imports a ugrid32 stream. The scalars reader is optional and
// must hold one float32 per vertex when present. Degenerate elements
// are dropped; out-of-range indices fail the import.
func Read(data io.Reader, scalars io.Reader, opts Options) (*umesh.Mesh, error) {
	if opts.Format == FormatAuto {
		return nil, ErrUnknownFormat
	}
	log := opts.Logger.OrNoop()

	var hdr header
	if err := binary.Read(data, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("ugrid header: %w", err)
	}
	log.Debug("ugrid32 header",
		"verts", hdr.NumVerts,
		"tris", hdr.NumTris,
		"quads", hdr.NumQuads,
		"tets", hdr.NumTets,
		"pyrs", hdr.NumPyrs,
		"prisms", hdr.NumPrisms,
		"hexes", hdr.NumHexes)

	m := umesh.NewMesh()

	if err := readVertices(data, m, int(hdr.NumVerts), opts.Format); err != nil {
		return nil, fmt.Errorf("ugrid vertices: %w", err)
	}

	if scalars != nil {
		values, err := readF32s(scalars, int(hdr.NumVerts))
		if err != nil {
			return nil, fmt.Errorf("ugrid scalars: %w", err)
		}
		if err := m.AttachScalars("", values); err != nil {
			return nil, err
		}
	}

	if err := readSurface(data, m, &hdr, opts.Stats); err != nil {
		return nil, err
	}
	if err := readVolume(data, m, &hdr, opts.Stats); err != nil {
		return nil, err
	}

	if opts.Stats != nil {
		opts.Stats.Log(log, "ugrid32")
	}

	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

func readVertices(r io.Reader, m *umesh.Mesh, n int, format VertexFormat) error {
	m.Vertices = make([]geom.Vec3, n)

	if format == FormatDouble {
		buf := make([]byte, 24)
		for i := range m.Vertices {
			if _, err := io.ReadFull(r, buf); err != nil {
				return err
			}
			m.Vertices[i] = geom.Vec3{
				X: float32(math.Float64frombits(binary.LittleEndian.Uint64(buf[0:]))),
				Y: float32(math.Float64frombits(binary.LittleEndian.Uint64(buf[8:]))),
				Z: float32(math.Float64frombits(binary.LittleEndian.Uint64(buf[16:]))),
			}
		}
		return nil
	}

	buf := make([]byte, 12)
	for i := range m.Vertices {
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		m.Vertices[i] = geom.Vec3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])),
		}
	}
	return nil
}

// readSurface reads triangles, quads and the surface-ID section the
// format interleaves between surface and volume elements. The IDs are
// read and discarded.
func readSurface(r io.Reader, m *umesh.Mesh, hdr *header, stats *umesh.FilterStats) error {
	m.Triangles = make([]umesh.Triangle, 0, hdr.NumTris)
	for i := 0; i < int(hdr.NumTris); i++ {
		idx, err := readIndices(r, 3)
		if err != nil {
			return fmt.Errorf("ugrid triangles: %w", err)
		}
		keep, err := umesh.FilterElement(m.Vertices, idx, stats)
		if err != nil {
			return err
		}
		if keep {
			m.Triangles = append(m.Triangles, umesh.Triangle{V0: idx[0], V1: idx[1], V2: idx[2]})
		}
	}

	m.Quads = make([]umesh.Quad, 0, hdr.NumQuads)
	for i := 0; i < int(hdr.NumQuads); i++ {
		idx, err := readIndices(r, 4)
		if err != nil {
			return fmt.Errorf("ugrid quads: %w", err)
		}
		keep, err := umesh.FilterElement(m.Vertices, idx, stats)
		if err != nil {
			return err
		}
		if keep {
			m.Quads = append(m.Quads, umesh.Quad{V0: idx[0], V1: idx[1], V2: idx[2], V3: idx[3]})
		}
	}

	// One uint32 surface ID per surface element.
	skip := int64(hdr.NumTris+hdr.NumQuads) * 4
	if _, err := io.CopyN(io.Discard, r, skip); err != nil {
		return fmt.Errorf("ugrid surface IDs: %w", err)
	}
	return nil
}

func readVolume(r io.Reader, m *umesh.Mesh, hdr *header, stats *umesh.FilterStats) error {
	if err := readTets(r, m, int(hdr.NumTets), stats); err != nil {
		return fmt.Errorf("ugrid tets: %w", err)
	}

	m.Pyramids = make([]umesh.Pyramid, 0, hdr.NumPyrs)
	for i := 0; i < int(hdr.NumPyrs); i++ {
		idx, err := readIndices(r, 5)
		if err != nil {
			return fmt.Errorf("ugrid pyramids: %w", err)
		}
		keep, err := umesh.FilterElement(m.Vertices, idx, stats)
		if err != nil {
			return err
		}
		if keep {
			m.Pyramids = append(m.Pyramids, umesh.Pyramid{
				Base: geom.Vec4i{X: idx[0], Y: idx[1], Z: idx[2], W: idx[3]},
				Top:  idx[4],
			})
		}
	}

	m.Wedges = make([]umesh.Wedge, 0, hdr.NumPrisms)
	for i := 0; i < int(hdr.NumPrisms); i++ {
		idx, err := readIndices(r, 6)
		if err != nil {
			return fmt.Errorf("ugrid prisms: %w", err)
		}
		keep, err := umesh.FilterElement(m.Vertices, idx, stats)
		if err != nil {
			return err
		}
		if keep {
			// ugrid32 does not use the VTK ordering for wedges; front
			// and back faces are swapped.
			m.Wedges = append(m.Wedges, umesh.Wedge{
				Front: geom.Vec3i{X: idx[3], Y: idx[4], Z: idx[5]},
				Back:  geom.Vec3i{X: idx[0], Y: idx[1], Z: idx[2]},
			})
		}
	}

	m.Hexes = make([]umesh.Hex, 0, hdr.NumHexes)
	for i := 0; i < int(hdr.NumHexes); i++ {
		idx, err := readIndices(r, 8)
		if err != nil {
			return fmt.Errorf("ugrid hexes: %w", err)
		}
		keep, err := umesh.FilterElement(m.Vertices, idx, stats)
		if err != nil {
			return err
		}
		if keep {
			m.Hexes = append(m.Hexes, umesh.Hex{
				Base: geom.Vec4i{X: idx[0], Y: idx[1], Z: idx[2], W: idx[3]},
				Top:  geom.Vec4i{X: idx[4], Y: idx[5], Z: idx[6], W: idx[7]},
			})
		}
	}
	return nil
}

// readTets bulk-reads the tet section and runs the degeneracy filter
// in parallel blocks; tets dominate real ugrid files.
func readTets(r io.Reader, m *umesh.Mesh, n int, stats *umesh.FilterStats) error {
	raw, err := readU32s(r, 4*n)
	if err != nil {
		return err
	}

	tets := make([]umesh.Tet, n)
	keep := make([]bool, n)

	var mu sync.Mutex
	var filterErr error

	parallel.ForBlocked(0, n, 1024*1024, func(begin, end int) {
		for i := begin; i < end; i++ {
			idx := []int32{
				int32(raw[4*i+0]) - 1,
				int32(raw[4*i+1]) - 1,
				int32(raw[4*i+2]) - 1,
				int32(raw[4*i+3]) - 1,
			}
			ok, err := umesh.FilterElement(m.Vertices, idx, stats)
			if err != nil {
				mu.Lock()
				if filterErr == nil {
					filterErr = err
				}
				mu.Unlock()
				return
			}
			keep[i] = ok
			tets[i] = umesh.Tet{V0: idx[0], V1: idx[1], V2: idx[2], V3: idx[3]}
		}
	})
	if filterErr != nil {
		return filterErr
	}

	m.Tets = make([]umesh.Tet, 0, n)
	for i, t := range tets {
		if keep[i] {
			m.Tets = append(m.Tets, t)
		}
	}
	return nil
}

// readIndices reads n 1-based uint32 indices and rebases them to
// 0-based int32.
func readIndices(r io.Reader, n int) ([]int32, error) {
	raw, err := readU32s(r, n)
	if err != nil {
		return nil, err
	}
	idx := make([]int32, n)
	for i, v := range raw {
		idx[i] = int32(v) - 1
	}
	return idx, nil
}

func readU32s(r io.Reader, n int) ([]uint32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return out, nil
}

func readF32s(r io.Reader, n int) ([]float32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return out, nil
}
