package otp

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QRCode renders the authenticator's provisioning URI as a PNG QR code of
// the given dimensions in pixels. The image can be served to the user for
// scanning with an authenticator app.
func (a *Authenticator) QRCode(width, height int) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAuthenticator
	}

	code, err := qr.Encode(a.GetProvisioningURI(), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("otp: failed to encode QR code: %w", err)
	}

	code, err = barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("otp: failed to scale QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("otp: failed to render QR code: %w", err)
	}

	return buf.Bytes(), nil
}
