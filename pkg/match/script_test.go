package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumScript = `
function test_match(cards)
  local sum = 0
  for _, card in ipairs(cards) do
    sum = sum + card
  end
  return #cards == claim_size and sum % 3 == 0
end
`

func TestScript_TestMatch(t *testing.T) {
	a := assert.New(t)
	s, err := NewScriptString(sumScript, 3)
	require.NoError(t, err)
	defer s.Close()

	a.Equal(3, s.Size())
	a.True(s.TestMatch([]int{0, 1, 2}))
	a.False(s.TestMatch([]int{0, 1, 3}))
	a.False(s.TestMatch([]int{0, 1}))

	a.ElementsMatch([][]int{{0, 1, 2}, {1, 2, 3}}, s.FindMatches([]int{0, 1, 2, 3}, Unlimited))
	a.Len(s.FindMatches([]int{0, 1, 2, 3}, 1), 1)
}

func TestScript_Errors(t *testing.T) {
	_, err := NewScriptString(`x = 1`, 3)
	assert.Equal(t, ErrMissingTestMatch, err)

	_, err = NewScriptString(`function test_match(`, 3)
	assert.Error(t, err)

	s, err := NewScriptString(`function test_match(cards) error("boom") end`, 3)
	require.NoError(t, err)
	defer s.Close()
	assert.False(t, s.TestMatch([]int{0, 1, 2}))
}

func TestScript_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oracle.lua")
	require.NoError(t, os.WriteFile(path, []byte(sumScript), 0644))

	s, err := NewScriptFile(path, 3)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.TestMatch([]int{3, 4, 5}))

	_, err = NewScriptFile(filepath.Join(t.TempDir(), "missing.lua"), 3)
	assert.Error(t, err)
}
