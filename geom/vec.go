package geom

// Vec3 is a 3-component float32 vector, used for vertex positions.
type Vec3 struct {
	X, Y, Z float32
}

// Axis returns the component along the given axis (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(dim int) float32 {
	switch dim {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Min returns the component-wise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// Vec4 is a 4-component float32 vector. The mesh code uses it for
// combined spatial+scalar coordinates (xyz position, w scalar).
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ returns the spatial part of the vector.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Vec3i is a 3-component int32 vector.
type Vec3i struct {
	X, Y, Z int32
}

// Vec4i is a 4-component int32 vector.
type Vec4i struct {
	X, Y, Z, W int32
}
