package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericOTP draws one uniform random number below 10^length and
// renders it zero-padded, so codes like "004271" stay possible. Lengths
// outside 4..8 are a config mistake, not a caller choice.
func GenerateNumericOTP(length int) (string, error) {
	if length < 4 || length > 8 {
		return "", fmt.Errorf("otp length must be 4..8")
	}
	bound := big.NewInt(10)
	bound.Exp(bound, big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// IsNumeric reports whether s is non-empty and ASCII digits only. OTP input
// passes through here before any store lookup.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
