package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{SigningKey: "test-signing-key"}
}

func TestCreateAndVerifyToken(t *testing.T) {
	controller := NewJWTToken(testConfig())

	token, err := controller.CreateToken(TokenObject{UserID: 7, Role: "user"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := controller.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "user", got.Role)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	issuer := NewJWTToken(&Config{SigningKey: "issuer-key"})
	verifier := NewJWTToken(&Config{SigningKey: "other-key"})

	token, err := issuer.CreateToken(TokenObject{UserID: 7, Role: "user"})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	controller := NewJWTToken(testConfig())

	_, err := controller.VerifyToken("not-a-token")
	assert.Error(t, err)
}
