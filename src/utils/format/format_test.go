package format_test

import (
	"reports/src/utils/format"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterCurrency(t *testing.T) {
	f := format.MustFormatter("id-ID", "Rp")

	tests := []struct {
		name  string
		value decimal.Decimal
		want  string
	}{
		{name: "grouped thousands", value: decimal.NewFromInt(50000), want: "Rp50.000"},
		{name: "millions", value: decimal.NewFromInt(1250000), want: "Rp1.250.000"},
		{name: "rounds fractions", value: decimal.RequireFromString("999.6"), want: "Rp1.000"},
		{name: "negative", value: decimal.NewFromInt(-7500), want: "-Rp7.500"},
		{name: "zero", value: decimal.Zero, want: "Rp0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Currency(tt.value))
		})
	}
}

func TestFormatterUsesInjectedLocale(t *testing.T) {
	f := format.MustFormatter("en-US", "$")
	assert.Equal(t, "$1,250,000", f.Currency(decimal.NewFromInt(1250000)))
	assert.Equal(t, "January 31, 2024", f.Date("2024-01-31"))
}

func TestFormatterQuantity(t *testing.T) {
	f := format.MustFormatter("id-ID", "Rp")
	assert.Equal(t, "5", f.Quantity(decimal.NewFromInt(5)))
	assert.Equal(t, "1.500", f.Quantity(decimal.NewFromInt(1500)))
	assert.Equal(t, "2.5", f.Quantity(decimal.RequireFromString("2.5")))
}

func TestFormatterDate(t *testing.T) {
	f := format.MustFormatter("id-ID", "Rp")
	assert.Equal(t, "01 Januari 2024", f.Date("2024-01-01"))
	assert.Equal(t, "15 Agustus 2024", f.Date("2024-08-15T10:20:00Z"))
	assert.Equal(t, format.Placeholder, f.Date(""))
	assert.Equal(t, "kemarin", f.Date("kemarin"))
}

func TestFormatterTimestamp(t *testing.T) {
	f := format.MustFormatter("id-ID", "Rp")
	stamp := f.Timestamp(time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC))
	assert.Equal(t, "05 Maret 2024 14:07", stamp)
}

func TestNewFormatterRejectsBadLocale(t *testing.T) {
	_, err := format.NewFormatter("not a locale!", "Rp")
	require.Error(t, err)
}
