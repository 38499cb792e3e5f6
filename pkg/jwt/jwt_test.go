package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/pkg/jwt"
)

const secret = "clave-de-pruebas"

func TestGenerateYParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate(secret, "usuario-42", "analitica-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "usuario-42", userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("otro-secreto", "usuario-42", "analitica-api", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, "usuario-42", "analitica-api", -5)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestParse_BasuraNoEsToken(t *testing.T) {
	_, err := jwt.Parse(secret, "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "usuario-42", "analitica-api", 60)
	assert.Error(t, err)
}
