package cfsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfsql/cfsql/internal/sql/parser"
	"github.com/cfsql/cfsql/internal/sql/planner"
)

func TestCompile(t *testing.T) {
	plan, err := Compile(`LOAD DATA LOCAL INPATH "/p" INTO TABLE t FIELDS TERMINATED BY ","`)
	require.NoError(t, err)

	load, ok := plan.(*planner.BulkLoadPlan)
	require.True(t, ok, "want *planner.BulkLoadPlan, got %T", plan)
	assert.Equal(t, "/p", load.Path)
	assert.True(t, load.IsLocal)
}

func TestCompile_SyntaxNoMatch(t *testing.T) {
	_, err := Compile("GRANT ALL ON t")
	require.ErrorIs(t, err, parser.ErrNoMatch)
}

func TestCompile_MappingFailures(t *testing.T) {
	_, err := Compile(`ALTER TABLE t ADD c INT MAPPED BY (c = "famqual")`)
	require.ErrorIs(t, err, planner.ErrMalformedMapping)

	_, err = Compile(`ALTER TABLE t ADD c INT MAPPED BY (other = "fam.qual")`)
	require.ErrorIs(t, err, planner.ErrMissingMapping)
}

func TestReservedWords(t *testing.T) {
	words := ReservedWords()
	assert.Contains(t, words, "MAPPED")
	assert.Contains(t, words, "SELECT")
}
