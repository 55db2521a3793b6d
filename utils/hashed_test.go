package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyHashValue(t *testing.T) {
	hashed, err := GenerateHashValue("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hashed)

	assert.NoError(t, VerifyHashValue("s3cret-pass", hashed))
	assert.Error(t, VerifyHashValue("wrong-pass", hashed))
}

func TestGenerateHashValueIsSalted(t *testing.T) {
	first, err := GenerateHashValue("1234")
	require.NoError(t, err)
	second, err := GenerateHashValue("1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, VerifyHashValue("1234", first))
	assert.NoError(t, VerifyHashValue("1234", second))
}
