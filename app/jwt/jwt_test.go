package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse_Success(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("super-secret"), Issuer: "pubboard", ExpMin: 45}

	tok, err := s.Sign(42)
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "pubboard", claims.Issuer)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("secret"), Issuer: "pubboard", ExpMin: -1}

	tok, err := s.Sign(1)
	require.NoError(t, err)

	_, err = s.Parse(tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	signer := &Signer{Secret: []byte("right-secret"), Issuer: "pubboard", ExpMin: 45}
	tok, err := signer.Sign(7)
	require.NoError(t, err)

	other := &Signer{Secret: []byte("wrong-secret"), Issuer: "pubboard", ExpMin: 45}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("k"), Issuer: "pubboard", ExpMin: 45}
	_, err := s.Parse("not.a.jwt")
	assert.Error(t, err)
}
