package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", RoleOperador, "estoque-api", time.Minute)
	require.NoError(t, err)

	claims, err := Parse("s3cret", "estoque-api", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, RoleOperador, claims.Role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", RoleAdmin, "estoque-api", time.Minute)
	require.NoError(t, err)

	_, err = Parse("otro", "estoque-api", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", RoleAdmin, "estoque-api", -time.Minute)
	require.NoError(t, err)

	_, err = Parse("s3cret", "estoque-api", tok)
	assert.Error(t, err)
}

func TestParse_EmisorDistinto(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", RoleAdmin, "otro-emisor", time.Minute)
	require.NoError(t, err)

	_, err = Parse("s3cret", "estoque-api", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", RoleAdmin, "x", time.Minute)
	assert.Error(t, err)
}
