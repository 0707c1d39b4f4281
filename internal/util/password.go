package util

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ValidatePassword applies the signup policy: at least 6 characters, at
// least one letter. Anything stricter belongs in the client.
func ValidatePassword(pw string) error {
	if len(pw) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	for _, r := range pw {
		if unicode.IsLetter(r) {
			return nil
		}
	}
	return fmt.Errorf("password must contain at least 1 letter")
}

// HashPassword bcrypts at the default cost; the result is what lands in
// users.password_hash.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// ComparePassword reports whether pw matches the stored bcrypt hash.
func ComparePassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
