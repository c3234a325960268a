package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/pkg/jwt"
)

const secret = "un-secret-de-prueba"

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "inventario-stock", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("otro-secret", "user-1", "inventario-stock", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "inventario-stock", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "inventario-stock", 60)
	assert.Error(t, err)
}
