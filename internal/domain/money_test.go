package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Money
	}{
		{"two decimals", "788.00", 78800},
		{"no decimals", "12", 1200},
		{"one decimal", "-5.4", -540},
		{"empty means zero", "", 0},
		{"padded whitespace", " 2000.00 ", 200000},
		{"fractional only", ".50", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects three fraction digits", func(t *testing.T) {
		_, err := ParseMoney("1.234")
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseMoney("abc")
		assert.Error(t, err)
	})
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "788.00", Money(78800).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-12.50", Money(-1250).String())
	assert.Equal(t, "0.00", Money(0).String())
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "1000.00", "212.40", "99999.99"} {
		m := MustParseMoney(s)
		assert.Equal(t, s, m.String())
	}
}

func TestMoneyPercent(t *testing.T) {
	// 6% platform fee on 200.00 is 12.00
	assert.Equal(t, MustParseMoney("12.00"), MustParseMoney("200.00").Percent(6))
	// 60% daily limit of 100.00 is 60.00
	assert.Equal(t, MustParseMoney("60.00"), MustParseMoney("100.00").Percent(60))
	// 6% of 90.00 is 5.40
	assert.Equal(t, MustParseMoney("5.40"), MustParseMoney("90.00").Percent(6))
}
