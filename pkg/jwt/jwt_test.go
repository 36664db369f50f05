package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken(secret, "sess-1", "ana", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(secret, "sess-1", "ana", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, "sess-1", "ana", -time.Minute)
	require.NoError(t, err)
	noSession, err := GenerateToken(secret, "", "ana", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
		want   error
	}{
		{"empty", secret, "", ErrMissingToken},
		{"garbage", secret, "not.a.token", ErrInvalidToken},
		{"wrong secret", []byte("other"), valid, ErrInvalidToken},
		{"expired", secret, expired, ErrInvalidToken},
		{"missing session", secret, noSession, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
