// Package money holds currency amounts as integer minor units so that
// summation never drifts. Decimal formatting happens only at the API
// boundary.
package money

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Amount is a non-negative number of minor units (cents).
type Amount int64

// Parse accepts decimal strings like "20", "5.5" or "0.00" with at most two
// fraction digits. Negative amounts are rejected.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount must not be negative")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount supports at most 2 decimal places")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var minor int64
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		d := int64(r - '0')
		if minor > (1<<62)/10 {
			return 0, fmt.Errorf("amount out of range")
		}
		minor = minor*10 + d
	}
	return Amount(minor), nil
}

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	neg := a < 0
	if neg {
		a = -a
	}
	s := fmt.Sprintf("%d.%02d", a/100, a%100)
	if neg {
		return "-" + s
	}
	return s
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// tolerate bare JSON numbers from older clients
		var f json.Number
		if err2 := json.Unmarshal(b, &f); err2 != nil {
			return err
		}
		s = f.String()
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
