package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", RelativeTime(now.Add(-30*time.Second), now))
	assert.Equal(t, "1 minute ago", RelativeTime(now.Add(-90*time.Second), now))
	assert.Equal(t, "5 minutes ago", RelativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "1 hour ago", RelativeTime(now.Add(-time.Hour), now))
	assert.Equal(t, "3 hours ago", RelativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days ago", RelativeTime(now.Add(-48*time.Hour), now))
	assert.Equal(t, "Jun 1, 2025", RelativeTime(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), now))
}
