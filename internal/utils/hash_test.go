package utils_test

import (
	"strings"
	"testing"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedHash = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func TestNormalizeSHA256(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: wellFormedHash, want: wellFormedHash},
		{name: "uppercase", input: strings.ToUpper(wellFormedHash), want: wellFormedHash},
		{name: "0x prefix", input: "0x" + wellFormedHash, want: wellFormedHash},
		{name: "surrounding whitespace", input: "  " + wellFormedHash + "\n", want: wellFormedHash},
		{name: "too short", input: wellFormedHash[:63], wantErr: true},
		{name: "too long", input: wellFormedHash + "0", wantErr: true},
		{name: "non-hex characters", input: "z" + wellFormedHash[1:], wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "bare prefix", input: "0x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.NormalizeSHA256(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateInvoiceCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "typical reference", code: "INV-2025-2004"},
		{name: "single character", code: "A"},
		{name: "dots and underscores", code: "inv_2025.q1-final"},
		{name: "max length", code: "A" + strings.Repeat("b", 63)},
		{name: "over max length", code: "A" + strings.Repeat("b", 64), wantErr: true},
		{name: "empty", code: "", wantErr: true},
		{name: "leading punctuation", code: "-INV-1", wantErr: true},
		{name: "embedded space", code: "INV 1", wantErr: true},
		{name: "slash", code: "INV/2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateInvoiceCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.False(t, utils.IsInvoiceCode(tt.code))
				return
			}
			require.NoError(t, err)
			assert.True(t, utils.IsInvoiceCode(tt.code))
		})
	}
}
