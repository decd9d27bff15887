package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	m := NewTokenManager("test-secret", 3600)

	token, err := m.Issue("u1", true, false)
	require.NoError(t, err)

	principal, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.ID)
	assert.True(t, principal.IsAdmin)
	assert.False(t, principal.IsBanned)
}

func TestVerifyCarriesBannedClaim(t *testing.T) {
	m := NewTokenManager("test-secret", 3600)

	token, err := m.Issue("u2", false, true)
	require.NoError(t, err)

	principal, err := m.Verify(token)
	require.NoError(t, err)
	assert.True(t, principal.IsBanned)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 3600)
	verifier := NewTokenManager("secret-b", 3600)

	token, err := issuer.Issue("u1", false, false)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -60)

	token, err := m.Issue("u1", false, false)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 3600)

	_, err := m.Verify("not.a.token")
	assert.Error(t, err)
}
