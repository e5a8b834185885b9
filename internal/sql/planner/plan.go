package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cfsql/cfsql/internal/sql/parser"
)

// Plan is one fully resolved command. SQL renders the canonical dialect
// text of the command; BuildPlan(parser.Parse(p.SQL())) reproduces p.
type Plan interface {
	planNode()
	SQL() string
}

// ColumnMapping ties a logical column to its physical storage location.
type ColumnMapping struct {
	Column    string
	Family    string
	Qualifier string
}

// Selection is a filter wrapped around a table reference. The condition is
// carried as parsed; evaluation belongs to the executor.
type Selection struct {
	Condition *parser.WhereExpr
	Table     string
}

// ----- DDL plans -----

type DropTablePlan struct {
	Table string
}

func (*DropTablePlan) planNode() {}

func (p *DropTablePlan) SQL() string {
	return fmt.Sprintf("DROP TABLE %s", p.Table)
}

type AlterDropColumnPlan struct {
	Table  string
	Column string
}

func (*AlterDropColumnPlan) planNode() {}

func (p *AlterDropColumnPlan) SQL() string {
	return fmt.Sprintf("ALTER TABLE %s DROP %s", p.Table, p.Column)
}

type AlterAddColumnPlan struct {
	Table     string
	Column    string
	Type      parser.ScalarType
	Family    string
	Qualifier string
}

func (*AlterAddColumnPlan) planNode() {}

func (p *AlterAddColumnPlan) SQL() string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s %s MAPPED BY (%s = \"%s.%s\")",
		p.Table, p.Column, p.Type, p.Column, p.Family, p.Qualifier)
}

type CreateTablePlan struct {
	Table       string
	MappedTable string
	Columns     []parser.ColumnDef
	KeyColumns  []string
	Mappings    []ColumnMapping
	IfNotExists bool
}

func (*CreateTablePlan) planNode() {}

func (p *CreateTablePlan) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if p.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(p.Table)
	b.WriteString(" (")
	for i, c := range p.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(c.Type.String())
		if c.IsKey {
			b.WriteString(" PRIMARY KEY")
		}
	}
	b.WriteString(") MAPPED BY (")
	b.WriteString(p.MappedTable)
	b.WriteString(", COLS = [")
	for i, m := range p.Mappings {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = \"%s.%s\"", m.Column, m.Family, m.Qualifier)
	}
	b.WriteString("])")
	return b.String()
}

type ShowTablesPlan struct{}

func (*ShowTablesPlan) planNode() {}

func (*ShowTablesPlan) SQL() string { return "SHOW TABLES" }

// ----- DML plans -----

// InsertValuesPlan carries values in textual form; nil marks SQL NULL and
// is never confused with the string "null".
type InsertValuesPlan struct {
	Table  string
	Values []any
}

func (*InsertValuesPlan) planNode() {}

func (p *InsertValuesPlan) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO TABLE %s VALUES (", p.Table)
	for i, v := range p.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(renderLiteral(v))
	}
	b.WriteString(")")
	return b.String()
}

type UpdatePlan struct {
	Columns []string
	Values  []any
	Source  Selection
}

func (*UpdatePlan) planNode() {}

func (p *UpdatePlan) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET ", p.Source.Table)
	for i, c := range p.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = %s", c, renderLiteral(p.Values[i]))
	}
	b.WriteString(" WHERE ")
	b.WriteString(renderWhere(p.Source.Condition))
	return b.String()
}

type DeletePlan struct {
	Source Selection
}

func (*DeletePlan) planNode() {}

func (p *DeletePlan) SQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", p.Source.Table, renderWhere(p.Source.Condition))
}

type BulkLoadPlan struct {
	Path         string
	Table        string
	IsLocal      bool
	Parallel     bool
	Delimiter    string
	HasDelimiter bool
}

func (*BulkLoadPlan) planNode() {}

func (p *BulkLoadPlan) SQL() string {
	var b strings.Builder
	b.WriteString("LOAD ")
	if p.Parallel {
		b.WriteString("PARALL ")
	}
	b.WriteString("DATA ")
	if p.IsLocal {
		b.WriteString("LOCAL ")
	}
	fmt.Fprintf(&b, "INPATH '%s' INTO TABLE %s", p.Path, p.Table)
	if p.HasDelimiter {
		fmt.Fprintf(&b, " FIELDS TERMINATED BY '%s'", p.Delimiter)
	}
	return b.String()
}

// ----- base-grammar plans -----

type SeqScanPlan struct {
	Table   string
	Columns []string // nil means "*"
	Filter  *parser.WhereExpr
}

func (*SeqScanPlan) planNode() {}

func (p *SeqScanPlan) SQL() string {
	proj := "*"
	if len(p.Columns) > 0 {
		proj = strings.Join(p.Columns, ", ")
	}
	s := fmt.Sprintf("SELECT %s FROM %s", proj, p.Table)
	if p.Filter != nil {
		s += " WHERE " + renderWhere(p.Filter)
	}
	return s
}

type WithPlan struct {
	Name       string
	Definition *SeqScanPlan
	Query      *SeqScanPlan
}

func (*WithPlan) planNode() {}

func (p *WithPlan) SQL() string {
	return fmt.Sprintf("WITH %s AS (%s) %s", p.Name, p.Definition.SQL(), p.Query.SQL())
}

// ----- rendering helpers -----

func renderWhere(w *parser.WhereExpr) string {
	return fmt.Sprintf("%s %s %s", w.Column, w.Op, renderLiteral(w.Value))
}

func renderLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		// NOTE: minimal; no escape support
		return "'" + x + "'"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
