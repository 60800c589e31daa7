package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	token, err := Generate(8)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(token))

	token2, err := Generate(8)
	assert.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestGenerate_Lengths(t *testing.T) {
	urlSafe := regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
	for _, n := range []int{0, 1, 3, 4, 27, 64} {
		token, err := Generate(n)
		assert.NoError(t, err)
		assert.Len(t, token, n)
		assert.Regexp(t, urlSafe, token)
	}
}
