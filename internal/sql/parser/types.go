package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoMatchingType is returned when a type token matches no known spelling.
var ErrNoMatchingType = errors.New("no matching primitive type")

// Defaults for DECIMAL declared without precision and scale.
const (
	DefaultDecimalPrecision = 10
	DefaultDecimalScale     = 0
)

type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeString
	TypeFloat
	TypeInt
	TypeTinyInt
	TypeSmallInt
	TypeDouble
	TypeBigInt
	TypeBinary
	TypeBoolean
	TypeDecimal
	TypeDate
	TypeTimestamp
	TypeVarchar
	TypeByte
)

var typeKindNames = map[TypeKind]string{
	TypeString:    "STRING",
	TypeFloat:     "FLOAT",
	TypeInt:       "INT",
	TypeTinyInt:   "TINYINT",
	TypeSmallInt:  "SMALLINT",
	TypeDouble:    "DOUBLE",
	TypeBigInt:    "BIGINT",
	TypeBinary:    "BINARY",
	TypeBoolean:   "BOOLEAN",
	TypeDecimal:   "DECIMAL",
	TypeDate:      "DATE",
	TypeTimestamp: "TIMESTAMP",
	TypeVarchar:   "VARCHAR",
	TypeByte:      "BYTE",
}

// ScalarType is the canonical tag for a primitive column type.
// Precision/Scale are meaningful for DECIMAL, Length for VARCHAR.
type ScalarType struct {
	Kind      TypeKind
	Precision int
	Scale     int
	Length    int
}

// String renders the canonical dialect spelling of the type.
func (t ScalarType) String() string {
	switch t.Kind {
	case TypeDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale)
	case TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Length)
	default:
		return typeKindNames[t.Kind]
	}
}

// ParseType recognizes a primitive type token, case-insensitively.
// The parameterized forms (DECIMAL(p,s), VARCHAR(n)) are matched before
// their bare spellings so the generic form never shadows them; VARCHAR
// without a length is an error, DECIMAL without arguments takes the
// default precision and scale.
func ParseType(s string) (ScalarType, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	name, args := t, ""
	hasArgs := false
	if i := strings.IndexByte(t, '('); i >= 0 {
		if !strings.HasSuffix(t, ")") {
			return ScalarType{}, fmt.Errorf("%w: %q", ErrNoMatchingType, s)
		}
		name = strings.TrimSpace(t[:i])
		args = strings.TrimSpace(t[i+1 : len(t)-1])
		hasArgs = true
	}

	if hasArgs {
		switch name {
		case "decimal":
			p, sc, err := parseTypeArgs(args, 2)
			if err != nil {
				return ScalarType{}, fmt.Errorf("%w: decimal arguments %q", ErrNoMatchingType, args)
			}
			return ScalarType{Kind: TypeDecimal, Precision: p, Scale: sc}, nil
		case "varchar":
			n, _, err := parseTypeArgs(args, 1)
			if err != nil {
				return ScalarType{}, fmt.Errorf("%w: varchar length %q", ErrNoMatchingType, args)
			}
			return ScalarType{Kind: TypeVarchar, Length: n}, nil
		default:
			return ScalarType{}, fmt.Errorf("%w: %q", ErrNoMatchingType, s)
		}
	}

	switch name {
	case "string":
		return ScalarType{Kind: TypeString}, nil
	case "float":
		return ScalarType{Kind: TypeFloat}, nil
	case "int", "integer":
		return ScalarType{Kind: TypeInt}, nil
	case "tinyint":
		return ScalarType{Kind: TypeTinyInt}, nil
	case "short", "smallint":
		return ScalarType{Kind: TypeSmallInt}, nil
	case "double":
		return ScalarType{Kind: TypeDouble}, nil
	case "long", "bigint":
		return ScalarType{Kind: TypeBigInt}, nil
	case "binary":
		return ScalarType{Kind: TypeBinary}, nil
	case "bool", "boolean":
		return ScalarType{Kind: TypeBoolean}, nil
	case "decimal":
		return ScalarType{Kind: TypeDecimal, Precision: DefaultDecimalPrecision, Scale: DefaultDecimalScale}, nil
	case "date":
		return ScalarType{Kind: TypeDate}, nil
	case "timestamp":
		return ScalarType{Kind: TypeTimestamp}, nil
	case "byte":
		return ScalarType{Kind: TypeByte}, nil
	default:
		return ScalarType{}, fmt.Errorf("%w: %q", ErrNoMatchingType, s)
	}
}

func parseTypeArgs(args string, want int) (int, int, error) {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return 0, 0, fmt.Errorf("want %d arguments, got %d", want, len(parts))
	}
	nums := make([]int, 0, want)
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, err
		}
		nums = append(nums, n)
	}
	if want == 1 {
		return nums[0], 0, nil
	}
	return nums[0], nums[1], nil
}
