package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{" asc ", "ASC"},
		{"desc", "DESC"},
		{"DESC", "DESC"},
		{"", "DESC"},
		{"sideways", "DESC"},
		{"ASC; DROP TABLE products", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowed  map[string]bool
		expected string
	}{
		{"allowed field kept", "sku", ProductSortFields, "sku"},
		{"empty falls back", "", ProductSortFields, "created_at"},
		{"unknown falls back", "password_hash", ProductSortFields, "created_at"},
		{"injection attempt falls back", "name; DROP TABLE products", ProductSortFields, "created_at"},
		{"whitespace trimmed", " name ", WarehouseSortFields, "name"},
		{"receipt number allowed for receipts", "receipt_number", ReceiptSortFields, "receipt_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, "created_at"))
		})
	}
}
