package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScore(t *testing.T) {
	for s := 1; s <= 5; s++ {
		assert.NoError(t, ValidateScore(s))
	}
	for _, s := range []int{0, -1, 6, 100} {
		assert.Error(t, ValidateScore(s), "score %d", s)
	}
}
