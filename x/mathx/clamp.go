package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Max(lo, Min(v, hi))
}

func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}
