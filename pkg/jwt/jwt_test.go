package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_ConservaPrincipal(t *testing.T) {
	p := Principal{UserID: "u-1", CompanyID: "c-1", Role: "gestor"}
	token, err := Generate("secret", p, "inmobiliaria-api", 5)
	require.NoError(t, err)

	got, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := Generate("secret", Principal{UserID: "u-1"}, "", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("secret", Principal{UserID: "u-1"}, "", -1)
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", Principal{}, "", 5)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
