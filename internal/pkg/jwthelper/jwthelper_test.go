package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, "famille_mean")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	name, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "famille_mean", name)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), "famille_mean")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
