package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentReferenceFormat(t *testing.T) {
	gen, err := NewReferenceGenerator("test-salt")
	require.NoError(t, err)

	ref, err := gen.PaymentReference()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "CHV-"), "reference %q should carry the CHV prefix", ref)
	assert.GreaterOrEqual(t, len(ref), len("CHV-")+16)
}

func TestPaymentReferenceUniqueness(t *testing.T) {
	gen, err := NewReferenceGenerator("test-salt")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := gen.PaymentReference()
		require.NoError(t, err)
		assert.False(t, seen[ref], "reference %q issued twice", ref)
		seen[ref] = true
	}
}
