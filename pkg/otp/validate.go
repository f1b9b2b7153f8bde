package otp

// validDigits reports whether n is a code length sanctioned by RFC 4226
// (6 digits minimum, 7 and 8 the only wider options).
func validDigits(n int) bool {
	return n >= 6 && n <= 8
}

// validPeriod reports whether p is usable as a time step. A non-positive
// period makes the counter-from-time division meaningless.
func validPeriod(p float64) bool {
	return p > 0
}

// validTime reports whether t (seconds since the Unix epoch) is a
// generatable point in time. Pre-epoch times are rejected.
func validTime(t float64) bool {
	return t >= 0
}

// validFactor reports whether f can back a valid Generator. A Counter is
// always valid; a Timer is valid iff its period is.
func validFactor(f MovingFactor) bool {
	if timer, ok := f.(Timer); ok {
		return validPeriod(float64(timer))
	}
	return f != nil
}
