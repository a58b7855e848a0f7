// Package payqr builds UPI payment links and renders them as QR code images
// that can be embedded in the invoice.
package payqr

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const (
	// Size is the edge length of the rendered PNG in pixels.
	Size = 256

	scheme   = "upi"
	currency = "INR"
)

var (
	// ErrEmptyPayee is returned when no payee handle (VPA) is configured.
	ErrEmptyPayee = errors.New("payee handle is empty")

	// ErrNonPayableAmount is returned for a zero or negative amount.
	ErrNonPayableAmount = errors.New("amount is not payable")
)

// Payee identifies who receives the payment.
type Payee struct {
	Handle string // UPI virtual payment address, e.g. "shop@okbank"
	Name   string
}

// Code is a rendered payment QR plus the URI it encodes, so the
// embedded image can link to the same URI.
type Code struct {
	PNG []byte
	URI string
}

// URI builds upi://pay?pa=<handle>&pn=<name>&am=<amount>&cu=INR.
// The name is percent-encoded with spaces as %20.
func URI(p Payee, amount decimal.Decimal) string {
	name := strings.ReplaceAll(url.QueryEscape(p.Name), "+", "%20")
	return fmt.Sprintf("%s://pay?pa=%s&pn=%s&am=%s&cu=%s", scheme, p.Handle, name, amount.StringFixed(2), currency)
}

// Build encodes the payment URI at the highest error-correction level.
func Build(p Payee, amount decimal.Decimal) (*Code, error) {
	const op = "Build"

	if strings.TrimSpace(p.Handle) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyPayee)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrNonPayableAmount, amount.StringFixed(2))
	}

	uri := URI(p, amount)
	png, err := qrcode.Encode(uri, qrcode.Highest, Size)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode QR code: %w", op, err)
	}

	return &Code{PNG: png, URI: uri}, nil
}
