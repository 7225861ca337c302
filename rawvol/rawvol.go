// Package rawvol converts dense raw scalar volumes into meshes made of
// structured Grid elements. The volume is chopped into bricks that
// overlap by one layer of vertices, so neighboring grids share their
// boundary scalars and render without cracks.
package rawvol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/geom"
)

// Format selects how the raw input scalars are encoded.
type Format int

const (
	// FormatFloat32 reads little-endian float32 scalars.
	FormatFloat32 Format = iota
	// FormatUint8 reads uint8 scalars, mapped to [0,1].
	FormatUint8
)

// DefaultBrickSize is the vertex extent of one grid along each axis.
const DefaultBrickSize = 8

// Options controls the conversion.
type Options struct {
	// Dims is the vertex count of the input volume per axis. Required.
	Dims geom.Vec3i

	// Format of the raw input data, for Read and Load.
	Format Format

	// BrickSize is the vertex extent of each grid along one axis.
	// Bricks stride by BrickSize-1 so adjacent grids share a vertex
	// layer. Zero means DefaultBrickSize.
	BrickSize int

	Logger *umesh.Logger
}

// Load reads a raw volume file and converts it to a grid mesh.
func Load(path string, opts Options) (*umesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, opts)
}

// Read decodes a raw scalar stream per opts.Format and converts it to
// a grid mesh.
func Read(r io.Reader, opts Options) (*umesh.Mesh, error) {
	n, err := numScalars(opts.Dims)
	if err != nil {
		return nil, err
	}

	scalars := make([]float32, n)
	switch opts.Format {
	case FormatUint8:
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("raw volume: %w", err)
		}
		for i, v := range buf {
			scalars[i] = float32(v) / 255
		}
	case FormatFloat32:
		buf := make([]byte, 4*n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("raw volume: %w", err)
		}
		for i := range scalars {
			scalars[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
		}
	default:
		return nil, fmt.Errorf("unknown raw volume format %d", opts.Format)
	}

	return Convert(scalars, opts)
}

// Convert chops a dense scalar volume into a mesh of Grid elements.
// scalars holds Dims.X*Dims.Y*Dims.Z values in x-fastest order. Each
// grid records its own value range in the w component of its domain;
// NaN scalars are carried through but excluded from the range.
func Convert(scalars []float32, opts Options) (*umesh.Mesh, error) {
	dims := opts.Dims
	n, err := numScalars(dims)
	if err != nil {
		return nil, err
	}
	if len(scalars) != n {
		return nil, fmt.Errorf("raw volume: got %d scalars, dims %dx%dx%d need %d",
			len(scalars), dims.X, dims.Y, dims.Z, n)
	}

	brickSize := opts.BrickSize
	if brickSize == 0 {
		brickSize = DefaultBrickSize
	}
	if brickSize < 2 {
		return nil, fmt.Errorf("raw volume: brick size %d, need at least 2", brickSize)
	}
	stride := int32(brickSize - 1)

	m := umesh.NewMesh()
	for iz := int32(0); iz < dims.Z-1; iz += stride {
		for iy := int32(0); iy < dims.Y-1; iy += stride {
			for ix := int32(0); ix < dims.X-1; ix += stride {
				ex := min(ix+stride, dims.X-1)
				ey := min(iy+stride, dims.Y-1)
				ez := min(iz+stride, dims.Z-1)

				g := umesh.Grid{
					NumCells:      geom.Vec3i{X: ex - ix, Y: ey - iy, Z: ez - iz},
					ScalarsOffset: int32(len(m.GridScalars)),
				}

				r := geom.EmptyRange1()
				for iiz := iz; iiz <= ez; iiz++ {
					for iiy := iy; iiy <= ey; iiy++ {
						for iix := ix; iix <= ex; iix++ {
							s := scalars[iix+dims.X*(iiy+dims.Y*iiz)]
							m.GridScalars = append(m.GridScalars, s)
							if !math.IsNaN(float64(s)) {
								r = r.Extend(s)
							}
						}
					}
				}

				g.Domain = geom.Box4{
					Lower: geom.Vec4{X: float32(ix), Y: float32(iy), Z: float32(iz), W: r.Lower},
					Upper: geom.Vec4{X: float32(ex), Y: float32(ey), Z: float32(ez), W: r.Upper},
				}
				m.Grids = append(m.Grids, g)
			}
		}
	}

	opts.Logger.OrNoop().Debug("raw volume converted",
		"dims", fmt.Sprintf("%dx%dx%d", dims.X, dims.Y, dims.Z),
		"brickSize", brickSize,
		"grids", len(m.Grids),
		"gridScalars", len(m.GridScalars))

	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

func numScalars(dims geom.Vec3i) (int, error) {
	if dims.X < 2 || dims.Y < 2 || dims.Z < 2 {
		return 0, fmt.Errorf("raw volume: dims %dx%dx%d, need at least 2 per axis",
			dims.X, dims.Y, dims.Z)
	}
	return int(dims.X) * int(dims.Y) * int(dims.Z), nil
}
