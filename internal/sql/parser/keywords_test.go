package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservedWords_MergedAndOrdered(t *testing.T) {
	words := ReservedWords()
	require.NotEmpty(t, words)

	// dialect words come first, in table order
	assert.Equal(t, "ADD", words[0])
	assert.Contains(t, words, "MAPPED")
	assert.Contains(t, words, "PARALL")
	assert.Contains(t, words, "=")

	// base words follow
	assert.Contains(t, words, "SELECT")
	assert.Contains(t, words, "FROM")

	seen := make(map[string]bool, len(words))
	for _, w := range words {
		assert.False(t, seen[w], "duplicate keyword %q", w)
		seen[w] = true
	}
}

func TestIsReserved_CaseInsensitive(t *testing.T) {
	assert.True(t, isReserved("table"))
	assert.True(t, isReserved("TaBlE"))
	assert.True(t, isReserved("mapped"))
	assert.False(t, isReserved("users"))
}

func TestParseIdent_RejectsReservedWords(t *testing.T) {
	for _, in := range []string{"table", "SELECT", "Mapped"} {
		_, err := parseIdent(in)
		require.Error(t, err, "parseIdent(%q)", in)
	}

	id, err := parseIdent("  users ")
	require.NoError(t, err)
	assert.Equal(t, "users", id)
}
