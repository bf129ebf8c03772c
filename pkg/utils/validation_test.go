package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleKey struct {
	CoCode string `json:"coCode" validate:"required,max=6,alphanum"`
}

type samplePayload struct {
	Name   string          `json:"name" validate:"required,max=10"`
	Email  string          `json:"email" validate:"omitempty,email"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Pct    decimal.Decimal `json:"pct" validate:"gte=0,lte=100"`
}

func TestValidateStruct_Valid(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleKey{CoCode: "ACME01"}))
	require.NoError(t, ValidateStruct(samplePayload{
		Name:   "Acme",
		Amount: decimal.RequireFromString("1000000"),
		Pct:    decimal.RequireFromString("99.5"),
	}))
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		contains string
	}{
		{"missing key", sampleKey{}, "coCode is required"},
		{"key too long", sampleKey{CoCode: "ABCDEFG"}, "coCode exceeds maximum length of 6 characters"},
		{"key not alphanumeric", sampleKey{CoCode: "AB-1"}, "coCode must be alphanumeric"},
		{"bad email", samplePayload{Name: "x", Email: "nope"}, "email must be a valid email address"},
		{"negative decimal", samplePayload{Name: "x", Amount: decimal.NewFromInt(-1)}, "amount must be greater than or equal to 0"},
		{"pct over 100", samplePayload{Name: "x", Pct: decimal.NewFromInt(101)}, "pct must be less than or equal to 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "acme", SanitizeString("  ac\x00me \t"))
}

func TestValidateRequired(t *testing.T) {
	assert.Error(t, ValidateRequired("remarks", "   "))
	assert.NoError(t, ValidateRequired("remarks", "ok"))
}

func TestValidateMaxLength(t *testing.T) {
	assert.Error(t, ValidateMaxLength("search", "abcdef", 5))
	assert.NoError(t, ValidateMaxLength("search", "abcde", 5))
}
