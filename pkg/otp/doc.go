// Package otp implements TOTP (RFC 6238) and HOTP (RFC 4226) one-time
// passwords.
//
// The algorithm itself lives in the Generator value type: an immutable
// combination of a moving factor, a shared secret, a hash algorithm, and a
// digit count. Higher layers (the Authenticator, secret generation,
// provisioning URIs) are conveniences built on top of it.
//
// # Generator
//
// A Generator is constructed once, with every invariant checked up front,
// and never mutated afterwards:
//
//	gen, err := otp.New(otp.Counter(0), secret, otp.AlgorithmSHA1, 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := gen.PasswordAt(time.Now())
//
//	// Advance to the next counter value. Next returns a new value;
//	// gen itself is unchanged.
//	gen = gen.Next()
//
// Timer generators derive their counter from the time passed to PasswordAt
// divided by the period, so they advance on their own; Next is the identity
// for them:
//
//	gen, err := otp.New(otp.Timer(30), secret, otp.AlgorithmSHA1, 6)
//
// Because the time source is the caller's, code generation is fully
// deterministic and testable against the RFC test vectors.
//
// # TOTP Example
//
// Time-based OTP for use with authenticator apps:
//
//	config := otp.Config{
//	    Type:        otp.TypeTOTP,
//	    Secret:      "JBSWY3DPEHPK3PXP",
//	    Issuer:      "MyApp",
//	    AccountName: "user@example.com",
//	    Digits:      6,
//	    Period:      30,
//	    Algorithm:   otp.AlgorithmSHA1,
//	    Skew:        1, // Allow 1 period of clock skew
//	}
//
//	auth, err := otp.NewAuthenticator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate a code from user's authenticator app
//	err = auth.Authenticate(ctx, "123456")
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
//	// Generate provisioning URI for QR code
//	uri := auth.GetProvisioningURI()
//
//	// Or render it as a PNG directly
//	img, err := auth.QRCode(200, 200)
//
// # HOTP Example
//
// Counter-based OTP for hardware tokens:
//
//	config := otp.Config{
//	    Type:        otp.TypeHOTP,
//	    Secret:      "JBSWY3DPEHPK3PXP",
//	    Issuer:      "MyApp",
//	    AccountName: "user@example.com",
//	    Counter:     0,
//	}
//
//	auth, err := otp.NewAuthenticator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate code and get new counter value
//	newCounter, err := auth.ValidateCounter(ctx, "123456", currentCounter)
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	} else {
//	    // Store newCounter for next validation
//	    currentCounter = newCounter
//	}
//
// # Secret Generation
//
// Generate a cryptographically random secret:
//
//	secret, err := otp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use secret in Config.Secret
//
// # Hash Algorithms
//
// The package supports multiple hash algorithms:
//   - AlgorithmSHA1 (default, widely supported)
//   - AlgorithmSHA256 (more secure)
//   - AlgorithmSHA512 (most secure)
//
// Note that not all authenticator apps support SHA256 and SHA512.
//
// # Thread Safety
//
// A Generator is an immutable value; copies may be used from any number of
// goroutines without coordination. The Authenticator type is likewise safe
// for concurrent use.
//
// # Context Support
//
// Validation methods accept a context.Context for cancellation:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	err := auth.Authenticate(ctx, code)
package otp
