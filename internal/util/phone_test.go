package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeE164(t *testing.T) {
	cases := map[string]string{
		"+12025550123":      "+12025550123",
		"1 (202) 555-0123":  "+12025550123",
		" +998 90 123 4567": "+998901234567",
	}
	for in, want := range cases {
		got, err := NormalizeE164(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeE164Rejects(t *testing.T) {
	// fewer than 10 digits must fail before anything touches the network
	for _, in := range []string{"", "123456789", "+1 (202) 555", "12345678901234567", "phone", "+1202555a123"} {
		_, err := NormalizeE164(in)
		assert.Error(t, err, in)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abc123"))
	assert.NoError(t, ValidatePassword("longerpassword"))
	assert.Error(t, ValidatePassword("abc"))
	assert.Error(t, ValidatePassword("123456"))
}

func TestHashAndComparePassword(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, ComparePassword(h, "secret1"))
	assert.False(t, ComparePassword(h, "secret2"))
}

func TestGenerateNumericOTP(t *testing.T) {
	code, err := GenerateNumericOTP(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.True(t, IsNumeric(code))

	_, err = GenerateNumericOTP(3)
	assert.Error(t, err)
	_, err = GenerateNumericOTP(9)
	assert.Error(t, err)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123456"))
	assert.True(t, IsNumeric("0042"))

	// only ASCII digits count: unicode digits never come out of our generator
	for _, in := range []string{"", "12a4", " 1234", "12.4", "١٢٣٤"} {
		assert.False(t, IsNumeric(in), in)
	}
}
