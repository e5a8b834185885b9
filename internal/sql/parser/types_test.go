package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType_Spellings(t *testing.T) {
	cases := []struct {
		in   string
		want ScalarType
	}{
		{"string", ScalarType{Kind: TypeString}},
		{"STRING", ScalarType{Kind: TypeString}},
		{"float", ScalarType{Kind: TypeFloat}},
		{"int", ScalarType{Kind: TypeInt}},
		{"Integer", ScalarType{Kind: TypeInt}},
		{"tinyint", ScalarType{Kind: TypeTinyInt}},
		{"short", ScalarType{Kind: TypeSmallInt}},
		{"smallint", ScalarType{Kind: TypeSmallInt}},
		{"double", ScalarType{Kind: TypeDouble}},
		{"long", ScalarType{Kind: TypeBigInt}},
		{"BIGINT", ScalarType{Kind: TypeBigInt}},
		{"binary", ScalarType{Kind: TypeBinary}},
		{"bool", ScalarType{Kind: TypeBoolean}},
		{"BOOLEAN", ScalarType{Kind: TypeBoolean}},
		{"date", ScalarType{Kind: TypeDate}},
		{"TiMeStAmP", ScalarType{Kind: TypeTimestamp}},
		{"byte", ScalarType{Kind: TypeByte}},
	}

	for _, tc := range cases {
		got, err := ParseType(tc.in)
		require.NoError(t, err, "ParseType(%q)", tc.in)
		assert.Equal(t, tc.want, got, "ParseType(%q)", tc.in)
	}
}

func TestParseType_Decimal(t *testing.T) {
	// bare decimal takes the defaults
	got, err := ParseType("decimal")
	require.NoError(t, err)
	assert.Equal(t, ScalarType{Kind: TypeDecimal, Precision: DefaultDecimalPrecision, Scale: DefaultDecimalScale}, got)

	// parameterized form always wins when digits are present
	got, err = ParseType("DECIMAL(12, 3)")
	require.NoError(t, err)
	assert.Equal(t, ScalarType{Kind: TypeDecimal, Precision: 12, Scale: 3}, got)

	_, err = ParseType("decimal(12)")
	require.ErrorIs(t, err, ErrNoMatchingType)
}

func TestParseType_Varchar(t *testing.T) {
	got, err := ParseType("varchar(32)")
	require.NoError(t, err)
	assert.Equal(t, ScalarType{Kind: TypeVarchar, Length: 32}, got)

	// varchar requires a length
	_, err = ParseType("varchar")
	require.ErrorIs(t, err, ErrNoMatchingType)
}

func TestParseType_Unknown(t *testing.T) {
	for _, in := range []string{"foo", "", "int(5)", "decimal(a,b)", "decimal(1,2"} {
		_, err := ParseType(in)
		require.ErrorIs(t, err, ErrNoMatchingType, "ParseType(%q)", in)
	}
}

func TestScalarType_String(t *testing.T) {
	assert.Equal(t, "INT", ScalarType{Kind: TypeInt}.String())
	assert.Equal(t, "DECIMAL(10,2)", ScalarType{Kind: TypeDecimal, Precision: 10, Scale: 2}.String())
	assert.Equal(t, "VARCHAR(64)", ScalarType{Kind: TypeVarchar, Length: 64}.String())
}
