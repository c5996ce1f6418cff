package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdeck/portal-backend/internal/auth/domain"
)

var testSecret = []byte("test-secret")

func TestIssueToken_AdminRoundTrip(t *testing.T) {
	token, err := IssueToken(domain.AdminSubject, domain.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, domain.AdminSubject, claims.Subject)
}

func TestIssueToken_ClientSubjectIsProjectID(t *testing.T) {
	token, err := IssueToken("PRJ-AB12CD", domain.RoleClient, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, claims.Role)
	assert.Equal(t, "PRJ-AB12CD", claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(domain.AdminSubject, domain.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := IssueToken("PRJ-AB12CD", domain.RoleClient, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.Error(t, err)
}
