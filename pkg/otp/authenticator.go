package otp

import (
	"context"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Type represents the OTP algorithm family.
type Type string

const (
	// TypeTOTP represents Time-based OTP (RFC 6238).
	TypeTOTP Type = "totp"
	// TypeHOTP represents Counter-based OTP (RFC 4226).
	TypeHOTP Type = "hotp"
)

// Common errors returned by the OTP authenticator.
var (
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)

// Config holds OTP authenticator configuration.
type Config struct {
	// Type specifies the OTP type (TOTP or HOTP).
	Type Type
	// Secret is the base32-encoded shared secret key (required).
	Secret string
	// Issuer is the name of the issuing organization (e.g., "MyApp").
	Issuer string
	// AccountName is the account identifier (e.g., "user@example.com").
	AccountName string
	// Digits specifies the number of digits in the OTP code (6, 7, or 8).
	// Default: 6
	Digits uint
	// Period specifies the time step in seconds for TOTP.
	// Default: 30
	Period uint
	// Counter specifies the initial counter value for HOTP.
	// Default: 0
	Counter uint64
	// Algorithm specifies the hash algorithm to use.
	// Default: SHA1
	Algorithm Algorithm
	// Skew specifies the number of time periods to check before and after
	// the current time for TOTP validation (tolerance for clock skew).
	// Default: 1
	Skew uint
	// Window specifies how many consecutive counter values, starting at
	// the supplied counter, ValidateCounter will try before rejecting a
	// code (tolerance for tokens that have advanced ahead of the server).
	// Default: 1
	Window uint
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	// Validate type
	if c.Type != TypeTOTP && c.Type != TypeHOTP {
		return fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}

	// Validate secret
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}

	// Validate secret is valid base32
	if _, err := DecodeSecret(c.Secret); err != nil {
		return fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidConfig, err)
	}

	// Validate digits (if specified)
	if c.Digits != 0 && !validDigits(int(c.Digits)) {
		return fmt.Errorf("%w: digits must be 6, 7, or 8", ErrInvalidConfig)
	}

	// Validate algorithm (if specified)
	if c.Algorithm != "" {
		if _, ok := c.Algorithm.hashFunc(); !ok {
			return fmt.Errorf("%w: algorithm must be SHA1, SHA256, or SHA512", ErrInvalidConfig)
		}
	}

	return nil
}

// DecodeSecret decodes a base32 secret to the raw key bytes expected by
// New, tolerating lowercase input, surrounding whitespace, and missing
// padding.
func DecodeSecret(secret string) ([]byte, error) {
	s := strings.TrimRight(strings.ToUpper(strings.TrimSpace(secret)), "=")
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
}

// Authenticator generates and validates OTP codes.
// It is safe for concurrent use.
type Authenticator struct {
	cfg Config
	key []byte
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and an error is returned if invalid.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Digits == 0 {
		cfg.Digits = 6
	}
	if cfg.Period == 0 {
		cfg.Period = 30
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmSHA1
	}
	if cfg.Skew == 0 {
		cfg.Skew = 1
	}
	if cfg.Window == 0 {
		cfg.Window = 1
	}

	key, err := DecodeSecret(cfg.Secret)
	if err != nil {
		// Already checked by validate
		return nil, fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidConfig, err)
	}

	return &Authenticator{cfg: cfg, key: key}, nil
}

// generator builds the core Generator for the given moving factor. The
// configuration was validated at construction, so this cannot fail.
func (a *Authenticator) generator(factor MovingFactor) Generator {
	gen, err := New(factor, a.key, a.cfg.Algorithm, int(a.cfg.Digits))
	if err != nil {
		panic(fmt.Sprintf("otp: validated config produced invalid generator: %v", err))
	}
	return gen
}

// codesMatch compares a submitted code against an expected one in constant
// time.
func codesMatch(submitted, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}

// Authenticate validates an OTP code.
// For TOTP, it validates against the current time with skew tolerance.
// For HOTP, it validates against the configured counter value.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if a.cfg.Type == TypeTOTP {
		if a.validateTime(code, time.Now().UTC()) {
			return nil
		}
		return ErrInvalidCode
	}

	// HOTP validation using configured counter
	expected, err := a.generator(Counter(a.cfg.Counter)).Password()
	if err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidCode, err)
	}
	if !codesMatch(code, expected) {
		return ErrInvalidCode
	}

	return nil
}

// validateTime checks a TOTP code against every period within the
// configured skew of now.
func (a *Authenticator) validateTime(code string, now time.Time) bool {
	gen := a.generator(Timer(float64(a.cfg.Period)))
	step := time.Duration(a.cfg.Period) * time.Second
	for i := -int(a.cfg.Skew); i <= int(a.cfg.Skew); i++ {
		expected, err := gen.PasswordAt(now.Add(time.Duration(i) * step))
		if err != nil {
			// Skewed into pre-epoch territory; nothing to match there
			continue
		}
		if codesMatch(code, expected) {
			return true
		}
	}
	return false
}

// ValidateCounter validates an HOTP code and returns the new counter value.
// This method is only valid for HOTP authenticators. Codes for up to Window
// consecutive counter values starting at counter are accepted, and the
// returned counter is the one following the match.
// The returned counter should be stored and used for the next validation.
func (a *Authenticator) ValidateCounter(ctx context.Context, code string, counter uint64) (uint64, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if a.cfg.Type != TypeHOTP {
		return 0, fmt.Errorf("%w: ValidateCounter is only valid for HOTP", ErrInvalidConfig)
	}

	if strings.TrimSpace(code) == "" {
		return 0, fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	gen := a.generator(Counter(counter))
	for i := uint(0); i < a.cfg.Window; i++ {
		expected, err := gen.Password()
		if err != nil {
			return 0, fmt.Errorf("%w: validation failed: %v", ErrInvalidCode, err)
		}
		if codesMatch(code, expected) {
			// Return the counter following the matched one
			return counter + uint64(i) + 1, nil
		}
		gen = gen.Next()
	}

	return 0, ErrInvalidCode
}

// Generate generates an OTP code.
// For TOTP, it generates the code for the current time.
// For HOTP, a counter value must be provided.
func (a *Authenticator) Generate(counter ...uint64) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	if a.cfg.Type == TypeTOTP {
		code, err := a.generator(Timer(float64(a.cfg.Period))).PasswordAt(time.Now().UTC())
		if err != nil {
			return "", fmt.Errorf("otp: failed to generate TOTP code: %w", err)
		}
		return code, nil
	}

	// HOTP requires counter
	if len(counter) == 0 {
		return "", fmt.Errorf("otp: counter required for HOTP generation")
	}

	code, err := a.generator(Counter(counter[0])).Password()
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate HOTP code: %w", err)
	}

	return code, nil
}

// GenerateAt generates a TOTP code for a specific point in time, e.g. when
// diagnosing client clock skew. For HOTP authenticators use Generate with a
// counter instead.
func (a *Authenticator) GenerateAt(t time.Time) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	if a.cfg.Type != TypeTOTP {
		return "", fmt.Errorf("%w: GenerateAt is only valid for TOTP", ErrInvalidConfig)
	}

	code, err := a.generator(Timer(float64(a.cfg.Period))).PasswordAt(t)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate TOTP code: %w", err)
	}
	return code, nil
}

// GetProvisioningURI returns the otpauth:// URI for QR code generation.
// This URI can be encoded as a QR code and scanned by authenticator apps.
func (a *Authenticator) GetProvisioningURI() string {
	if a == nil {
		return ""
	}

	// Build otpauth:// URI manually to ensure correct secret
	v := url.Values{}
	v.Set("secret", a.cfg.Secret)
	v.Set("issuer", a.cfg.Issuer)
	v.Set("algorithm", string(a.cfg.Algorithm))
	v.Set("digits", fmt.Sprintf("%d", a.cfg.Digits))

	if a.cfg.Type == TypeTOTP {
		v.Set("period", fmt.Sprintf("%d", a.cfg.Period))
		label := url.PathEscape(fmt.Sprintf("%s:%s", a.cfg.Issuer, a.cfg.AccountName))
		return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
	}

	v.Set("counter", fmt.Sprintf("%d", a.cfg.Counter))
	label := url.PathEscape(fmt.Sprintf("%s:%s", a.cfg.Issuer, a.cfg.AccountName))
	return fmt.Sprintf("otpauth://hotp/%s?%s", label, v.Encode())
}
