package detrand

// Integer-only math primitives. All functions take and return int64
// unless noted, and never touch floating point, so results carry zero
// drift across platforms.

// IDiv is truncating integer division (Go's native / semantics for ints,
// named explicitly so call sites read the same as the other primitives).
func IDiv(a, b int64) int64 {
	return a / b
}

// IMod is Euclidean-style modulo that always returns a non-negative
// result in [0, |b|), unlike Go's native %, which can be negative.
func IMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		if b < 0 {
			m -= b
		} else {
			m += b
		}
	}
	return m
}

// IAbs returns the absolute value of a.
func IAbs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Wrap wraps x into [lo, hi] inclusive, cycling past either bound.
func Wrap(x, lo, hi int64) int64 {
	span := hi - lo + 1
	if span <= 0 {
		return lo
	}
	return lo + IMod(x-lo, span)
}

// Lerp interpolates between a and b by t/1000, the fixed-point
// convention used throughout this package.
func Lerp(a, b, t int64) int64 {
	return a + (b-a)*t/1000
}

// Map affinely maps x from [a, b] into [c, d].
func Map(x, a, b, c, d int64) int64 {
	if b == a {
		return c
	}
	return c + (x-a)*(d-c)/(b-a)
}

// Sign returns -1, 0, or 1.
func Sign(x int64) int64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Smoothstep evaluates the classic 3t²-2t³ smoothstep over t in
// [0, 1000], returning a value in the same range.
func Smoothstep(t int64) int64 {
	t = Clamp(t, 0, 1000)
	// 3t^2 - 2t^3, scaled for the 0..1000 fixed-point domain.
	t2 := t * t / 1000
	t3 := t2 * t / 1000
	return Clamp(3*t2-2*t3, 0, 1000)
}
