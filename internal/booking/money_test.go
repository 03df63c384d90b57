package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 30,00", FormatPrice(3000))
	assert.Equal(t, "R$ 0,05", FormatPrice(5))
	assert.Equal(t, "R$ 1.234,56", FormatPrice(123456))
	assert.Equal(t, "R$ 1.000.000,00", FormatPrice(100000000))
	assert.Equal(t, "R$ 0,00", FormatPrice(-10))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"R$ 30,00", 3000},
		{"R$30", 3000},
		{"30,5", 3050},
		{"30.5", 3050},
		{"45", 4500},
		{"1.234,56", 123456},
		{"1.234", 123400},
		{"R$ 1.234,56", 123456},
		{"$ 12.99", 1299},
		{"0,015", 2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "R$", "-10", "abc", "12,3a", "100000000000000000,00", "92233720368547758"} {
		_, err := ParsePrice(bad)
		assert.ErrorIs(t, err, ErrInvalidPrice, bad)
	}
}

func TestPriceRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 3000, 123456, 987654321, MaxPriceCents} {
		got, err := ParsePrice(FormatPrice(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "45min", FormatDuration(45))
	assert.Equal(t, "1h", FormatDuration(60))
	assert.Equal(t, "1h 30min", FormatDuration(90))
	assert.Equal(t, "0min", FormatDuration(0))

	tests := map[string]int{
		"90":       90,
		"90min":    90,
		"45 min":   45,
		"2h":       120,
		"1h30":     90,
		"1h 30min": 90,
		"1H 5M":    65,
	}
	for raw, want := range tests {
		got, err := ParseDuration(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, bad := range []string{"", "soon", "h", "1.5h", "25h", "1441", "24h 1min", "99999999999999999999h"} {
		_, err := ParseDuration(bad)
		assert.ErrorIs(t, err, ErrInvalidDuration, bad)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, m := range []int{0, 5, 45, 60, 90, 135, 600, MaxDuration} {
		got, err := ParseDuration(FormatDuration(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "11987654321", DigitsOnly("(11) 98765-4321"))
	assert.Equal(t, "", DigitsOnly("n/a"))
}
