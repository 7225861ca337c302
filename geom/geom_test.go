package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox3Extend(t *testing.T) {
	b := EmptyBox3()
	assert.True(t, b.Empty())

	b = b.Extend(Vec3{1, 2, 3})
	assert.False(t, b.Empty())
	assert.Equal(t, Vec3{1, 2, 3}, b.Lower)
	assert.Equal(t, Vec3{1, 2, 3}, b.Upper)

	b = b.Extend(Vec3{-1, 5, 0})
	assert.Equal(t, Vec3{-1, 2, 0}, b.Lower)
	assert.Equal(t, Vec3{1, 5, 3}, b.Upper)
}

func TestBox3ExtendBoxIgnoresEmpty(t *testing.T) {
	b := EmptyBox3().Extend(Vec3{0, 0, 0}).Extend(Vec3{1, 1, 1})
	got := b.ExtendBox(EmptyBox3())
	assert.Equal(t, b, got)
}

func TestBox3CenterSize(t *testing.T) {
	b := EmptyBox3().Extend(Vec3{0, 0, 0}).Extend(Vec3{2, 4, 6})
	assert.Equal(t, Vec3{1, 2, 3}, b.Center())
	assert.Equal(t, Vec3{2, 4, 6}, b.Size())
	assert.Equal(t, float32(6), b.MaxExtent())
}

func TestRange1(t *testing.T) {
	r := EmptyRange1()
	assert.True(t, r.Empty())

	r = r.Extend(3)
	r = r.Extend(-1)
	assert.Equal(t, Range1{-1, 3}, r)

	r = r.ExtendRange(EmptyRange1())
	assert.Equal(t, Range1{-1, 3}, r)

	r = r.ExtendRange(Range1{-5, 0})
	assert.Equal(t, Range1{-5, 3}, r)
}

func TestBox4SplitCombine(t *testing.T) {
	spatial := EmptyBox3().Extend(Vec3{0, 0, 0}).Extend(Vec3{1, 1, 1})
	value := Range1{-2, 2}

	b4 := MakeBox4(spatial, value)
	assert.Equal(t, spatial, b4.Spatial())
	assert.Equal(t, value, b4.ScalarRange())
}

func TestVec3Axis(t *testing.T) {
	v := Vec3{1, 2, 3}
	assert.Equal(t, float32(1), v.Axis(0))
	assert.Equal(t, float32(2), v.Axis(1))
	assert.Equal(t, float32(3), v.Axis(2))
}
