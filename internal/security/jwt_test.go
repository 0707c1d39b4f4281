package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewJWTManager("test-signing-key", time.Minute, time.Hour)
	userID := uuid.New()

	tokens, refreshClaims, err := m.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(60), tokens.ExpiresIn)
	assert.Equal(t, userID.String(), refreshClaims.UserID)
	assert.NotEmpty(t, refreshClaims.JTI)

	parsedID, err := m.ParseAccess(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)

	rc, err := m.ParseRefresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, refreshClaims.JTI, rc.JTI)
	assert.Equal(t, userID.String(), rc.UserID)
}

func TestParseRejectsWrongKey(t *testing.T) {
	m := NewJWTManager("key-one", time.Minute, time.Hour)
	other := NewJWTManager("key-two", time.Minute, time.Hour)

	tokens, _, err := m.Issue(uuid.New())
	require.NoError(t, err)

	_, err = other.ParseAccess(tokens.AccessToken)
	assert.Error(t, err)
	_, err = other.ParseRefresh(tokens.RefreshToken)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("key", -time.Minute, -time.Minute)
	tokens, _, err := m.Issue(uuid.New())
	require.NoError(t, err)

	_, err = m.ParseAccess(tokens.AccessToken)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewJWTManager("key", time.Minute, time.Hour)
	_, err := m.ParseAccess("not-a-token")
	assert.Error(t, err)
}
