package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Money is a currency amount in minor units (pesewas). Store documents keep
// balances as string-encoded decimals ("788.00"); all arithmetic happens here
// in integer minor units and only the boundaries convert.
type Money int64

// ParseMoney parses a string-encoded decimal amount ("788.00", "12", "-5.4").
// At most two fraction digits are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid money amount %q: more than two fraction digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	m := Money(w*100 + f)
	if neg {
		m = -m
	}
	return m, nil
}

// MustParseMoney is ParseMoney for constants in tests and config defaults.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromMinorUnits wraps a gateway amount that is already expressed in
// minor units (Paystack sends kobo/pesewas).
func MoneyFromMinorUnits(v int64) Money { return Money(v) }

// String renders the amount as a two-decimal string, the encoding used by
// store documents and API responses.
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MinorUnits returns the raw integer value for gateway requests.
func (m Money) MinorUnits() int64 { return int64(m) }

// MarshalJSON renders the amount as a decimal string, matching the document
// encoding.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Percent computes p percent of the amount in integer arithmetic.
func (m Money) Percent(p int64) Money {
	return Money(int64(m) * p / 100)
}
