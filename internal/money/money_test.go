package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Amount{
		"20.00": 2000,
		"20":    2000,
		"5.5":   550,
		"0.05":  5,
		"0":     0,
		"0.00":  0,
		" 7.25": 725,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "-1", "-0.01", "1.234", "abc", "1.2.3", "1,50"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "20.00", Amount(2000).String())
	assert.Equal(t, "0.00", Amount(0).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "12.30", Amount(1230).String())
}

func TestJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Amount(2550))
	require.NoError(t, err)
	assert.Equal(t, `"25.50"`, string(b))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"13.37"`), &a))
	assert.Equal(t, Amount(1337), a)

	// bare numbers are tolerated
	require.NoError(t, json.Unmarshal([]byte(`20.5`), &a))
	assert.Equal(t, Amount(2050), a)
}
