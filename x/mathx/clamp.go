package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OrDefault returns d when v is the zero value, otherwise v clamped to [lo, hi].
// Used for config fields where zero means "unset".
func OrDefault[T constraints.Ordered](v, d, lo, hi T) T {
	var zero T
	if v == zero {
		return d
	}
	return Clamp(v, lo, hi)
}
