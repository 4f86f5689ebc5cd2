package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "pos")

	token, err := m.Generate(3, "alice", RoleSupervisor, time.Hour)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsSupervisor())
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "pos")

	expired, err := m.Generate(1, "bob", RoleOperator, -time.Minute)
	require.NoError(t, err)
	_, err = m.Validate(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewTokenManager("other", "pos").Generate(1, "bob", RoleOperator, time.Hour)
	require.NoError(t, err)
	_, err = m.Validate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewTokenManager("secret", "elsewhere").Generate(1, "bob", RoleOperator, time.Hour)
	require.NoError(t, err)
	_, err = m.Validate(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badRole, err := m.Generate(1, "bob", "admin", time.Hour)
	require.NoError(t, err)
	_, err = m.Validate(badRole)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
