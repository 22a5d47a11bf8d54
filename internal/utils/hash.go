package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
)

var (
	sha256HexRe   = regexp.MustCompile(`^[0-9a-f]{64}$`)
	invoiceCodeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
)

// NormalizeSHA256 validates a hex-encoded sha256 content hash and returns its
// canonical form: lowercase, no "0x" prefix. Validation failures wrap
// apperrors.ErrValidation so they never reach the ledger.
func NormalizeSHA256(s string) (string, error) {
	h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if !sha256HexRe.MatchString(h) {
		return "", fmt.Errorf("%w: sha256 hash must be 64 hex characters", apperrors.ErrValidation)
	}
	return h, nil
}

// IsSHA256Hex reports whether s is a well-formed hex sha256, with or without
// a "0x" prefix.
func IsSHA256Hex(s string) bool {
	_, err := NormalizeSHA256(s)
	return err == nil
}

// ValidateInvoiceCode checks the business reference code format
// (e.g. "INV-2025-2004"): alphanumeric start, then up to 63 characters of
// [A-Za-z0-9._-].
func ValidateInvoiceCode(code string) error {
	if !invoiceCodeRe.MatchString(code) {
		return fmt.Errorf("%w: invalid invoice code %q", apperrors.ErrValidation, code)
	}
	return nil
}

// IsInvoiceCode reports whether code is a well-formed business reference code.
func IsInvoiceCode(code string) bool {
	return ValidateInvoiceCode(code) == nil
}
