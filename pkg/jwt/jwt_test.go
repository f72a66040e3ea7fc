package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/cosmetitrack-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "Admin User", "admin", "cosmetitrack-test", 5)
	require.NoError(t, err)

	userID, name, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "Admin User", name)
	assert.Equal(t, "admin", role)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "Admin User", "admin", "cosmetitrack-test", 5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "Admin User", "admin", "cosmetitrack-test", -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "Admin User", "admin", "cosmetitrack-test", 5)
	assert.Error(t, err)
}
