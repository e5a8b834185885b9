package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cfsql/cfsql/internal/sql/parser"
)

var (
	// ErrMalformedMapping marks a mapping value not in "family.qualifier" form.
	ErrMalformedMapping = errors.New("malformed column mapping")
	// ErrMissingMapping marks a declared column absent from the mapping list.
	ErrMissingMapping = errors.New("no mapping for column")
)

// BuildPlan converts a parsed statement into exactly one plan node. It
// never returns a partial plan: any shape violation fails the whole
// statement.
func BuildPlan(stmt parser.Statement) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.DropTableStmt:
		return &DropTablePlan{Table: s.TableName}, nil
	case *parser.AlterDropColStmt:
		return &AlterDropColumnPlan{Table: s.TableName, Column: s.Column}, nil
	case *parser.AlterAddColStmt:
		return buildAlterAdd(s)
	case *parser.CreateTableStmt:
		return buildCreateTable(s)
	case *parser.InsertStmt:
		return &InsertValuesPlan{Table: s.TableName, Values: textValues(s.Values)}, nil
	case *parser.UpdateStmt:
		return &UpdatePlan{
			Columns: s.Columns,
			Values:  textValues(s.Values),
			Source:  Selection{Condition: s.Where, Table: s.TableName},
		}, nil
	case *parser.DeleteStmt:
		return &DeletePlan{
			Source: Selection{Condition: s.Where, Table: s.TableName},
		}, nil
	case *parser.LoadStmt:
		return &BulkLoadPlan{
			Path:         s.Path,
			Table:        s.TableName,
			IsLocal:      s.Local,
			Parallel:     s.Parallel,
			Delimiter:    s.Delimiter,
			HasDelimiter: s.HasDelimiter,
		}, nil
	case *parser.ShowTablesStmt:
		return &ShowTablesPlan{}, nil
	case *parser.SelectStmt:
		return buildSeqScan(s), nil
	case *parser.WithStmt:
		return &WithPlan{
			Name:       s.Name,
			Definition: buildSeqScan(s.Definition),
			Query:      buildSeqScan(s.Query),
		}, nil
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

func buildAlterAdd(s *parser.AlterAddColStmt) (Plan, error) {
	byCol, _, err := extractMappings(s.Mappings)
	if err != nil {
		return nil, err
	}
	m, ok := byCol[s.Column.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingMapping, s.Column.Name)
	}
	return &AlterAddColumnPlan{
		Table:     s.TableName,
		Column:    s.Column.Name,
		Type:      s.Column.Type,
		Family:    m.Family,
		Qualifier: m.Qualifier,
	}, nil
}

func buildCreateTable(s *parser.CreateTableStmt) (Plan, error) {
	byCol, ordered, err := extractMappings(s.Mappings)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool, len(s.Columns))
	var keys []string
	for _, c := range s.Columns {
		declared[c.Name] = true
		if c.IsKey {
			if _, mapped := byCol[c.Name]; mapped {
				return nil, fmt.Errorf("key column %q must not appear in COLS", c.Name)
			}
			keys = append(keys, c.Name)
			continue
		}
		if _, ok := byCol[c.Name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingMapping, c.Name)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("table %q has no PRIMARY KEY column", s.TableName)
	}
	for _, m := range ordered {
		if !declared[m.Column] {
			return nil, fmt.Errorf("mapping for undeclared column %q", m.Column)
		}
	}

	return &CreateTablePlan{
		Table:       s.TableName,
		MappedTable: s.MappedTable,
		Columns:     s.Columns,
		KeyColumns:  keys,
		Mappings:    ordered,
		IfNotExists: s.IfNotExists,
	}, nil
}

func buildSeqScan(s *parser.SelectStmt) *SeqScanPlan {
	return &SeqScanPlan{Table: s.TableName, Columns: s.Columns, Filter: s.Where}
}

// extractMappings reduces a list of (column, "family.qualifier") equalities
// into a mapping keyed by column name. The value splits on the first '.'
// into two non-empty segments. Pure function: same input, same result.
func extractMappings(exprs []parser.MappingExpr) (map[string]ColumnMapping, []ColumnMapping, error) {
	byCol := make(map[string]ColumnMapping, len(exprs))
	ordered := make([]ColumnMapping, 0, len(exprs))
	for _, e := range exprs {
		family, qualifier, found := strings.Cut(e.Value, ".")
		if !found || family == "" || qualifier == "" {
			return nil, nil, fmt.Errorf("%w: %q (want \"family.qualifier\")", ErrMalformedMapping, e.Value)
		}
		m := ColumnMapping{Column: e.Column, Family: family, Qualifier: qualifier}
		byCol[e.Column] = m
		ordered = append(ordered, m)
	}
	return byCol, ordered, nil
}

// textValues converts parsed literals to their textual representation,
// keeping SQL NULL as nil.
func textValues(vals []any) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
			out[i] = nil
		case string:
			out[i] = x
		case bool:
			out[i] = strconv.FormatBool(x)
		case int64:
			out[i] = strconv.FormatInt(x, 10)
		case float64:
			out[i] = strconv.FormatFloat(x, 'g', -1, 64)
		default:
			out[i] = fmt.Sprintf("%v", x)
		}
	}
	return out
}
