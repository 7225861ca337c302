package codec

import (
	"testing"
)

type benchBrick struct {
	Path      string     `json:"path"`
	NumPrims  int        `json:"num_prims"`
	NumVerts  int        `json:"num_verts"`
	Bounds    [6]float32 `json:"bounds"`
	SizeBytes int64      `json:"size_bytes"`
}

type benchManifest struct {
	FormatVersion int          `json:"format_version"`
	Codec         string       `json:"codec"`
	Base          string       `json:"base"`
	MaxBricks     int          `json:"max_bricks"`
	LeafThreshold int          `json:"leaf_threshold"`
	Bricks        []benchBrick `json:"bricks"`
}

func benchPayload() benchManifest {
	m := benchManifest{
		FormatVersion: 1,
		Codec:         "go-json",
		Base:          "out/magnetic",
		MaxBricks:     64,
		LeafThreshold: 1 << 20,
	}
	for i := 0; i < 64; i++ {
		m.Bricks = append(m.Bricks, benchBrick{
			Path:      "out/magnetic_00000.umesh",
			NumPrims:  123456 + i,
			NumVerts:  654321 - i,
			Bounds:    [6]float32{0, 0, 0, 1, 1, 1},
			SizeBytes: 1 << 28,
		})
	}
	return m
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Manifest(b *testing.B) {
	payload := benchPayload()

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, payload) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, payload) })
}

func BenchmarkCodec_Unmarshal_Manifest(b *testing.B) {
	data := MustMarshal(JSON{}, benchPayload())

	b.Run("stdlib", func(b *testing.B) {
		var sink benchManifest
		benchmarkCodecUnmarshal(b, JSON{}, data, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink benchManifest
		benchmarkCodecUnmarshal(b, GoJSON{}, data, &sink)
		_ = sink
	})
}
