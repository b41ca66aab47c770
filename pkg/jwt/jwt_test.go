package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/jwt"
)

const (
	testSecret = "secreto-de-prueba"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "almacen-api-test"
)

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", testUserID, testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, err := jwt.Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}
