package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateToken(t *testing.T) {
	prefix, secret, err := GenerateToken()
	require.NoError(t, err)
	require.Len(t, prefix, 8)
	require.Equal(t, byte('_'), prefix[4])
	require.Len(t, secret, secretLen)

	prefix2, secret2, err := GenerateToken()
	require.NoError(t, err)
	require.NotEqual(t, prefix+secret, prefix2+secret2)
}

func TestGeneratedKeyVerifies(t *testing.T) {
	prefix, secret, err := GenerateToken()
	require.NoError(t, err)

	apiKey := fmt.Sprintf("%s.%s", prefix, secret)
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte(apiKey)))
}
