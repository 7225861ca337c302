// Package manifest tracks the set of bricks that make up a published
// mesh partition. A manifest is a JSON document written next to the
// bricks; the CURRENT file points at the latest committed manifest so
// readers never observe a half-published partition.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/umeshkit/umesh/codec"
	"github.com/umeshkit/umesh/geom"
	"github.com/umeshkit/umesh/internal/fs"
)

const (
	ManifestFileName = "MANIFEST"
	CurrentFileName  = "CURRENT"
	CurrentVersion   = 1
)

// Manifest describes one published partition of a mesh.
type Manifest struct {
	Version int    `json:"version"`
	ID      uint64 `json:"id"`

	// Codec names the codec.Codec the manifest was written with, so a
	// reader can pick the matching decoder via codec.ByName.
	Codec string `json:"codec"`

	// Source is a free-form description of the input mesh.
	Source string `json:"source,omitempty"`

	// Compression is the blobstore.CompressionType file extension
	// (".lz4", ".zst") applied to the brick payloads, or empty.
	Compression string `json:"compression,omitempty"`

	// Partitioning limits the bricks were produced with.
	MaxBricks     int `json:"max_bricks,omitempty"`
	LeafThreshold int `json:"leaf_threshold,omitempty"`

	// Bounds is the spatial bounding box of the whole partition.
	Bounds geom.Box3 `json:"bounds"`

	Bricks []BrickInfo `json:"bricks"`
}

// BrickInfo describes a single brick file.
type BrickInfo struct {
	Path   string    `json:"path"`
	Prims  int       `json:"prims"`
	Verts  int       `json:"verts"`
	Size   int64     `json:"size"`
	Bounds geom.Box3 `json:"bounds"`
}

// FileName returns the manifest file name for a given ID.
func FileName(id uint64) string {
	return fmt.Sprintf("%s-%06d.json", ManifestFileName, id)
}

// Store manages manifest files in a local directory with atomic
// updates.
type Store struct {
	fs    fs.FileSystem
	dir   string
	codec codec.Codec
	mu    sync.Mutex
}

// NewStore creates a manifest store. A nil codec selects codec.Default.
func NewStore(fsys fs.FileSystem, dir string, c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{
		fs:    fsys,
		dir:   dir,
		codec: c,
	}
}

// Load loads the current manifest. A directory with no CURRENT file
// yields an empty manifest with ID 0.
func (s *Store) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readFile := func(path string) ([]byte, error) {
		f, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	currentPath := filepath.Join(s.dir, CurrentFileName)
	content, err := readFile(currentPath)
	if os.IsNotExist(err) {
		return &Manifest{ID: 0, Version: CurrentVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(s.dir, string(content))
	data, err := readFile(manifestPath)
	if err != nil {
		return nil, err
	}

	m, err := decode(data)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Save atomically saves a new manifest and advances CURRENT. The
// manifest's ID is incremented; older manifest files stay behind for
// readers holding the previous CURRENT.
func (s *Store) Save(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion
	m.ID++
	m.Codec = s.codec.Name()

	filename := FileName(m.ID)
	path := filepath.Join(s.dir, filename)

	data, err := s.codec.Marshal(m)
	if err != nil {
		return err
	}

	if err := s.writeAtomic(path, data); err != nil {
		return err
	}
	if err := s.syncDir(s.dir); err != nil {
		return err
	}

	if err := s.writeAtomic(filepath.Join(s.dir, CurrentFileName), []byte(filename)); err != nil {
		return err
	}
	return s.syncDir(s.dir)
}

// writeAtomic writes data through a temp file, fsyncs and renames it
// over the target.
func (s *Store) writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := s.fs.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		s.fs.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		s.fs.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(tmpPath)
		return err
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		s.fs.Remove(tmpPath)
		return err
	}
	return nil
}

func (s *Store) syncDir(dir string) error {
	f, err := s.fs.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

// decode unmarshals a manifest, honoring its self-declared codec.
func decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := codec.Default.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, CurrentVersion)
	}

	// Re-decode with the declared codec when it differs; all shipped
	// codecs speak JSON so this matters only for future formats.
	if m.Codec != "" && m.Codec != codec.Default.Name() {
		c, ok := codec.ByName(m.Codec)
		if !ok {
			return nil, fmt.Errorf("unknown manifest codec: %q", m.Codec)
		}
		m = Manifest{}
		if err := c.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	}

	return &m, nil
}
