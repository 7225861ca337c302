package geom

import "math"

// Range1 is an inclusive scalar interval.
//
// Like Box3, the zero value is not empty; use EmptyRange1.
type Range1 struct {
	Lower, Upper float32
}

// EmptyRange1 returns the empty range (lower=+inf, upper=-inf).
func EmptyRange1() Range1 {
	inf := float32(math.Inf(1))
	return Range1{Lower: inf, Upper: -inf}
}

// Empty reports whether the range contains no values.
func (r Range1) Empty() bool {
	return r.Lower > r.Upper
}

// Extend grows the range to include v.
func (r Range1) Extend(v float32) Range1 {
	return Range1{Lower: min(r.Lower, v), Upper: max(r.Upper, v)}
}

// ExtendRange grows the range to include another range.
func (r Range1) ExtendRange(o Range1) Range1 {
	if o.Empty() {
		return r
	}
	return Range1{Lower: min(r.Lower, o.Lower), Upper: max(r.Upper, o.Upper)}
}
