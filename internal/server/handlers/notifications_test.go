package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanCreateNotificationFor(t *testing.T) {
	caller, other := uuid.New(), uuid.New()

	// self-service needs no token
	assert.True(t, canCreateNotificationFor(caller, caller, "", ""))
	assert.True(t, canCreateNotificationFor(caller, caller, "whatever", "secret"))

	// cross-user needs the configured internal token
	assert.True(t, canCreateNotificationFor(caller, other, "secret", "secret"))
	assert.False(t, canCreateNotificationFor(caller, other, "wrong", "secret"))
	assert.False(t, canCreateNotificationFor(caller, other, "", "secret"))

	// no configured token disables the cross-user path, even for an
	// "empty matches empty" caller
	assert.False(t, canCreateNotificationFor(caller, other, "", ""))
	assert.False(t, canCreateNotificationFor(caller, other, "anything", ""))
}
