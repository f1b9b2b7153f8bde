package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"time"
)

// Algorithm represents the hash algorithm used for code generation.
type Algorithm string

const (
	// AlgorithmSHA1 uses HMAC-SHA1 (20-byte digest, the RFC 4226 default).
	AlgorithmSHA1 Algorithm = "SHA1"
	// AlgorithmSHA256 uses HMAC-SHA256 (32-byte digest).
	AlgorithmSHA256 Algorithm = "SHA256"
	// AlgorithmSHA512 uses HMAC-SHA512 (64-byte digest).
	AlgorithmSHA512 Algorithm = "SHA512"
)

// hashFunc returns the hash constructor for the algorithm, and whether the
// algorithm is one of the supported values.
func (a Algorithm) hashFunc() (func() hash.Hash, bool) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, true
	case AlgorithmSHA256:
		return sha256.New, true
	case AlgorithmSHA512:
		return sha512.New, true
	}
	return nil, false
}

// MovingFactor selects how the counter fed into the keyed hash is obtained.
// Exactly two implementations exist: Counter and Timer.
type MovingFactor interface {
	movingFactor()
}

// Counter is an explicit, externally synchronized moving factor (HOTP,
// RFC 4226). The generation time is ignored.
type Counter uint64

// Timer derives the moving factor from wall-clock time divided into
// repeating windows of the given length in seconds (TOTP, RFC 6238).
type Timer float64

func (Counter) movingFactor() {}
func (Timer) movingFactor()   {}

// Generator is an immutable one-time password generator combining a moving
// factor, a shared secret, a hash algorithm, and a code length. A Generator
// can only be obtained through New, which enforces all invariants up front;
// no operation ever mutates an existing instance, so any number of
// goroutines may share one without coordination.
type Generator struct {
	factor    MovingFactor
	secret    []byte
	algorithm Algorithm
	digits    int
}

// New constructs a Generator. It returns ErrInvalidDigits if digits is
// outside [6, 8], ErrInvalidPeriod if factor is a Timer with a non-positive
// period, ErrInvalidAlgorithm for an unknown algorithm, and ErrInvalidFactor
// for a nil factor. The secret is copied; the caller's buffer is not
// retained.
func New(factor MovingFactor, secret []byte, algorithm Algorithm, digits int) (Generator, error) {
	if factor == nil {
		return Generator{}, ErrInvalidFactor
	}
	if !validFactor(factor) {
		return Generator{}, fmt.Errorf("%w: got %v", ErrInvalidPeriod, float64(factor.(Timer)))
	}
	if !validDigits(digits) {
		return Generator{}, fmt.Errorf("%w: got %d", ErrInvalidDigits, digits)
	}
	if _, ok := algorithm.hashFunc(); !ok {
		return Generator{}, fmt.Errorf("%w: got %q", ErrInvalidAlgorithm, string(algorithm))
	}

	return Generator{
		factor:    factor,
		secret:    append([]byte(nil), secret...),
		algorithm: algorithm,
		digits:    digits,
	}, nil
}

// Factor returns the generator's moving factor.
func (g Generator) Factor() MovingFactor { return g.factor }

// Algorithm returns the generator's hash algorithm.
func (g Generator) Algorithm() Algorithm { return g.algorithm }

// Digits returns the length of the generated codes.
func (g Generator) Digits() int { return g.digits }

// PasswordAt computes the password for the given point in time, returned as
// a decimal string of exactly Digits characters with leading zeros
// preserved. The time is ignored for Counter generators. For Timer
// generators it returns ErrInvalidTime if t precedes the Unix epoch.
func (g Generator) PasswordAt(t time.Time) (string, error) {
	counter, err := factorCounter(g.factor, unixSeconds(t))
	if err != nil {
		return "", err
	}
	return truncatedCode(g.algorithm, g.secret, counter, g.digits), nil
}

// Password computes the password for the current time.
func (g Generator) Password() (string, error) {
	return g.PasswordAt(time.Now())
}

// Next returns the generator for the next password in sequence. For a
// Counter factor, the result is identical except the counter advances by
// one (wrapping as unsigned arithmetic at the end of the 64-bit space). A
// Timer generator advances purely as a function of time and is returned
// unchanged. The input's invariants are preserved field for field, so the
// result is always valid and Next cannot fail.
func (g Generator) Next() Generator {
	if c, ok := g.factor.(Counter); ok {
		next := g
		next.factor = c + 1
		return next
	}
	return g
}

// Equal reports whether the two generators are structurally identical over
// all four fields. Secrets are compared by content, in constant time.
func (g Generator) Equal(o Generator) bool {
	if g.factor != o.factor || g.algorithm != o.algorithm || g.digits != o.digits {
		return false
	}
	return subtle.ConstantTimeCompare(g.secret, o.secret) == 1
}

// unixSeconds converts t to fractional seconds since the Unix epoch.
// Built from Unix and Nanosecond rather than UnixNano, which overflows
// for dates past 2262 (the RFC 6238 test vectors reach the year 2603).
func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// factorCounter maps a moving factor and a point in time (fractional Unix
// seconds) to the 64-bit counter fed into the keyed hash. A Counter factor
// supplies its value directly and ignores the time; a Timer factor floors
// the time divided by its period.
func factorCounter(f MovingFactor, at float64) (uint64, error) {
	switch f := f.(type) {
	case Counter:
		return uint64(f), nil
	case Timer:
		if !validTime(at) {
			return 0, fmt.Errorf("%w: got %v", ErrInvalidTime, at)
		}
		if !validPeriod(float64(f)) {
			// Unreachable through New; guards zero-value generators.
			return 0, fmt.Errorf("%w: got %v", ErrInvalidPeriod, float64(f))
		}
		return uint64(math.Floor(at / float64(f))), nil
	default:
		return 0, ErrInvalidFactor
	}
}

// truncatedCode implements RFC 4226 section 5.3: compute the keyed hash of
// the 8-byte big-endian counter, take the 4 bytes starting at the offset
// named by the low nibble of the final digest byte as a big-endian 31-bit
// integer, and reduce it modulo 10^digits. The shortest supported digest
// (20 bytes) always leaves room for the 4-byte read, so no bounds check is
// needed beyond the nibble mask.
func truncatedCode(algorithm Algorithm, secret []byte, counter uint64, digits int) string {
	newHash, _ := algorithm.hashFunc()

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(newHash, secret)
	mac.Write(msg[:]) // hash.Hash writes never fail
	digest := mac.Sum(nil)

	offset := digest[len(digest)-1] & 0x0F
	binCode := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7FFFFFFF

	return fmt.Sprintf("%0*d", digits, binCode%uint32(math.Pow10(digits)))
}
