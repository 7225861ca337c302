package geom

import "math"

// Box3 is an axis-aligned bounding box over Vec3 points.
//
// The zero value is NOT a valid empty box; use EmptyBox3 so that the
// first Extend produces a point box.
type Box3 struct {
	Lower, Upper Vec3
}

// EmptyBox3 returns the empty box (lower=+inf, upper=-inf).
func EmptyBox3() Box3 {
	inf := float32(math.Inf(1))
	return Box3{
		Lower: Vec3{inf, inf, inf},
		Upper: Vec3{-inf, -inf, -inf},
	}
}

// Empty reports whether the box contains no points.
func (b Box3) Empty() bool {
	return b.Lower.X > b.Upper.X || b.Lower.Y > b.Upper.Y || b.Lower.Z > b.Upper.Z
}

// Extend grows the box to include the point p.
func (b Box3) Extend(p Vec3) Box3 {
	return Box3{Lower: b.Lower.Min(p), Upper: b.Upper.Max(p)}
}

// ExtendBox grows the box to include another box.
func (b Box3) ExtendBox(o Box3) Box3 {
	if o.Empty() {
		return b
	}
	return Box3{Lower: b.Lower.Min(o.Lower), Upper: b.Upper.Max(o.Upper)}
}

// Center returns the box midpoint.
func (b Box3) Center() Vec3 {
	return Vec3{
		X: 0.5 * (b.Lower.X + b.Upper.X),
		Y: 0.5 * (b.Lower.Y + b.Upper.Y),
		Z: 0.5 * (b.Lower.Z + b.Upper.Z),
	}
}

// Size returns the box extent along each axis.
func (b Box3) Size() Vec3 {
	return Vec3{
		X: b.Upper.X - b.Lower.X,
		Y: b.Upper.Y - b.Lower.Y,
		Z: b.Upper.Z - b.Lower.Z,
	}
}

// MaxExtent returns the largest extent across the three axes.
func (b Box3) MaxExtent() float32 {
	s := b.Size()
	return max(s.X, max(s.Y, s.Z))
}

// Box4 is an axis-aligned box in 4 dimensions: xyz spatial plus a
// scalar range in w. Grid domains and combined bounds/value queries
// use this layout.
type Box4 struct {
	Lower, Upper Vec4
}

// EmptyBox4 returns the empty 4D box.
func EmptyBox4() Box4 {
	inf := float32(math.Inf(1))
	return Box4{
		Lower: Vec4{inf, inf, inf, inf},
		Upper: Vec4{-inf, -inf, -inf, -inf},
	}
}

// Spatial returns the xyz part of the box.
func (b Box4) Spatial() Box3 {
	return Box3{Lower: b.Lower.XYZ(), Upper: b.Upper.XYZ()}
}

// ScalarRange returns the w part of the box.
func (b Box4) ScalarRange() Range1 {
	return Range1{Lower: b.Lower.W, Upper: b.Upper.W}
}

// MakeBox4 combines spatial bounds and a scalar range into one Box4.
func MakeBox4(spatial Box3, value Range1) Box4 {
	return Box4{
		Lower: Vec4{spatial.Lower.X, spatial.Lower.Y, spatial.Lower.Z, value.Lower},
		Upper: Vec4{spatial.Upper.X, spatial.Upper.Y, spatial.Upper.Z, value.Upper},
	}
}
