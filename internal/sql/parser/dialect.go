package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect layers the column-family DDL/DML productions on top of a base
// grammar. The base grammar's alternatives are tried first; only when it
// reports ErrNoMatch do the dialect's own alternatives run, in order:
// DROP TABLE, ALTER...DROP, ALTER...ADD...MAPPED BY, CREATE TABLE...MAPPED
// BY, INSERT INTO TABLE...VALUES, UPDATE, DELETE, LOAD DATA, SHOW TABLES.
type Dialect struct {
	base Grammar
}

// New returns a Dialect over the built-in base grammar.
func New() *Dialect {
	return &Dialect{base: baseGrammar{}}
}

// NewWithBase returns a Dialect over a caller-supplied base grammar.
func NewWithBase(base Grammar) *Dialect {
	return &Dialect{base: base}
}

var defaultDialect = New()

// Parse parses a single statement with the default dialect instance.
func Parse(sql string) (Statement, error) {
	return defaultDialect.Parse(sql)
}

// Parse parses a single statement, optionally terminated by ';'.
func (d *Dialect) Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" {
		return nil, fmt.Errorf("%w: empty statement", ErrNoMatch)
	}

	stmt, err := d.base.Parse(s)
	if err == nil {
		return stmt, nil
	}
	if !errors.Is(err, ErrNoMatch) {
		return nil, err
	}

	switch {
	case hasKeywordPrefix(s, "DROP"):
		return parseDropTable(s)
	case hasKeywordPrefix(s, "ALTER"):
		return parseAlterTable(s)
	case hasKeywordPrefix(s, "CREATE"):
		return parseCreateTable(s)
	case hasKeywordPrefix(s, "INSERT"):
		return parseInsert(s)
	case hasKeywordPrefix(s, "UPDATE"):
		return parseUpdate(s)
	case hasKeywordPrefix(s, "DELETE"):
		return parseDelete(s)
	case hasKeywordPrefix(s, "LOAD"):
		return parseLoad(s)
	case hasKeywordPrefix(s, "SHOW"):
		return parseShowTables(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, sql)
	}
}

func parseDropTable(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "DROP", "TABLE")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}
	name, err := parseIdent(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid DROP TABLE syntax: %w", err)
	}
	return &DropTableStmt{TableName: name}, nil
}

func parseAlterTable(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "ALTER", "TABLE")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}

	// the DROP form is tried before ADD; they share only the table clause
	if tablePart, colPart := splitKeyword(rest, "DROP"); colPart != "" {
		table, err := parseIdent(tablePart)
		if err != nil {
			return nil, fmt.Errorf("invalid ALTER TABLE syntax: %w", err)
		}
		col, err := parseIdent(colPart)
		if err != nil {
			return nil, fmt.Errorf("invalid ALTER TABLE DROP syntax: %w", err)
		}
		return &AlterDropColStmt{TableName: table, Column: col}, nil
	}

	tablePart, addPart := splitKeyword(rest, "ADD")
	if addPart == "" {
		return nil, fmt.Errorf("invalid ALTER TABLE syntax: expected DROP or ADD in %q", s)
	}
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, fmt.Errorf("invalid ALTER TABLE syntax: %w", err)
	}

	colPart, mappedPart := splitKeyword(addPart, "MAPPED")
	if mappedPart == "" {
		return nil, fmt.Errorf("invalid ALTER TABLE ADD syntax: missing MAPPED BY")
	}
	col, err := parseColumnDef(colPart, false)
	if err != nil {
		return nil, fmt.Errorf("invalid ALTER TABLE ADD syntax: %w", err)
	}

	mappings, err := parseMappedBy(mappedPart)
	if err != nil {
		return nil, err
	}

	return &AlterAddColStmt{TableName: table, Column: col, Mappings: mappings}, nil
}

func parseCreateTable(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "CREATE", "TABLE")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}

	ifNotExists := false
	if r, ok := matchKeywords(rest, "IF", "NOT", "EXISTS"); ok {
		ifNotExists = true
		rest = r
	}

	defPart, mappedPart := splitKeyword(rest, "MAPPED")
	if mappedPart == "" {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: missing MAPPED BY")
	}

	namePart, colsPart, found := strings.Cut(defPart, "(")
	if !found {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: missing column list")
	}
	table, err := parseIdent(namePart)
	if err != nil {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: %w", err)
	}
	colsPart = strings.TrimSpace(colsPart)
	if !strings.HasSuffix(colsPart, ")") {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: unterminated column list")
	}
	colsPart = strings.TrimSuffix(colsPart, ")")

	var cols []ColumnDef
	for _, def := range splitList(colsPart) {
		col, err := parseColumnDef(def, true)
		if err != nil {
			return nil, fmt.Errorf("invalid column def: %w", err)
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: empty column list")
	}

	afterBy, ok := matchKeywords(mappedPart, "BY")
	if !ok {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: expected BY after MAPPED")
	}
	inner, err := trimParens(afterBy)
	if err != nil {
		return nil, fmt.Errorf("invalid MAPPED BY clause: %w", err)
	}

	items := splitList(inner)
	if len(items) != 2 {
		return nil, fmt.Errorf("invalid MAPPED BY clause: want (table, COLS = [...]), got %q", inner)
	}
	mapped, err := parseIdent(items[0])
	if err != nil {
		return nil, fmt.Errorf("invalid MAPPED BY table: %w", err)
	}

	colsKw, bracketPart := splitKeyword(items[1], "COLS")
	if colsKw != "" || bracketPart == "" {
		return nil, fmt.Errorf("invalid MAPPED BY clause: expected COLS = [...], got %q", items[1])
	}
	bracketPart = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(bracketPart), "="))
	listPart, err := trimBrackets(bracketPart)
	if err != nil {
		return nil, fmt.Errorf("invalid COLS clause: %w", err)
	}

	var mappings []MappingExpr
	for _, item := range splitList(listPart) {
		m, err := parseMappingExpr(item)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	return &CreateTableStmt{
		TableName:   table,
		MappedTable: mapped,
		Columns:     cols,
		Mappings:    mappings,
		IfNotExists: ifNotExists,
	}, nil
}

func parseInsert(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "INSERT", "INTO", "TABLE")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}

	tablePart, valPart := splitKeyword(rest, "VALUES")
	if valPart == "" {
		return nil, fmt.Errorf("invalid INSERT syntax: missing VALUES")
	}
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, fmt.Errorf("invalid INSERT syntax: %w", err)
	}

	inner, err := trimParens(valPart)
	if err != nil {
		return nil, fmt.Errorf("invalid INSERT values: %w", err)
	}

	items := splitList(inner)
	if len(items) == 0 {
		return nil, fmt.Errorf("invalid INSERT syntax: empty value list")
	}
	values := make([]any, 0, len(items))
	for _, it := range items {
		v, err := parseLiteral(it)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return &InsertStmt{TableName: table, Values: values}, nil
}

func parseUpdate(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "UPDATE")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}

	tablePart, afterSet := splitKeyword(rest, "SET")
	if afterSet == "" {
		return nil, fmt.Errorf("invalid UPDATE syntax: missing SET")
	}
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, fmt.Errorf("invalid UPDATE syntax: %w", err)
	}

	setPart, wherePart := splitKeyword(afterSet, "WHERE")
	if wherePart == "" {
		return nil, fmt.Errorf("invalid UPDATE syntax: missing WHERE")
	}

	var cols []string
	var values []any
	for _, a := range splitList(setPart) {
		l, r, found := strings.Cut(a, "=")
		if !found {
			return nil, fmt.Errorf("invalid assignment: %q", a)
		}
		col, err := parseIdent(l)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment column: %w", err)
		}
		v, err := parseLiteral(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		values = append(values, v)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("invalid UPDATE syntax: empty SET list")
	}

	w, err := parseWhereExpr(wherePart)
	if err != nil {
		return nil, err
	}

	return &UpdateStmt{TableName: table, Columns: cols, Values: values, Where: w}, nil
}

func parseDelete(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "DELETE", "FROM")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}

	tablePart, wherePart := splitKeyword(rest, "WHERE")
	if wherePart == "" {
		return nil, fmt.Errorf("invalid DELETE syntax: missing WHERE")
	}
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, fmt.Errorf("invalid DELETE syntax: %w", err)
	}

	w, err := parseWhereExpr(wherePart)
	if err != nil {
		return nil, err
	}

	return &DeleteStmt{TableName: table, Where: w}, nil
}

func parseLoad(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "LOAD")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}

	stmt := &LoadStmt{}
	if r, ok := matchKeywords(rest, "PARALL"); ok {
		stmt.Parallel = true
		rest = r
	}
	rest, ok = matchKeywords(rest, "DATA")
	if !ok {
		return nil, fmt.Errorf("invalid LOAD syntax: expected DATA")
	}
	if r, ok := matchKeywords(rest, "LOCAL"); ok {
		stmt.Local = true
		rest = r
	}
	rest, ok = matchKeywords(rest, "INPATH")
	if !ok {
		return nil, fmt.Errorf("invalid LOAD syntax: expected INPATH")
	}

	path, rest, err := cutStringToken(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid LOAD path: %w", err)
	}
	stmt.Path = path

	rest, ok = matchKeywords(rest, "INTO", "TABLE")
	if !ok {
		return nil, fmt.Errorf("invalid LOAD syntax: expected INTO TABLE")
	}

	tablePart, fieldsPart := splitKeyword(rest, "FIELDS")
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, fmt.Errorf("invalid LOAD syntax: %w", err)
	}
	stmt.TableName = table

	if fieldsPart != "" {
		after, ok := matchKeywords(fieldsPart, "TERMINATED", "BY")
		if !ok {
			return nil, fmt.Errorf("invalid LOAD syntax: expected TERMINATED BY after FIELDS")
		}
		delim, tail, err := cutStringToken(after)
		if err != nil {
			return nil, fmt.Errorf("invalid field delimiter: %w", err)
		}
		if tail != "" {
			return nil, fmt.Errorf("invalid LOAD syntax: trailing input %q", tail)
		}
		stmt.Delimiter = delim
		stmt.HasDelimiter = true
	}

	return stmt, nil
}

func parseShowTables(s string) (Statement, error) {
	rest, ok := matchKeywords(s, "SHOW", "TABLES")
	if !ok || rest != "" {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}
	return &ShowTablesStmt{}, nil
}

// parseColumnDef parses "name type" with an optional trailing PRIMARY KEY
// when allowKey is set.
func parseColumnDef(def string, allowKey bool) (ColumnDef, error) {
	def = strings.TrimSpace(def)

	isKey := false
	if typePart, keyPart := splitKeyword(def, "PRIMARY"); keyPart != "" {
		if !allowKey {
			return ColumnDef{}, fmt.Errorf("PRIMARY KEY not allowed here: %q", def)
		}
		if rest, ok := matchKeywords(keyPart, "KEY"); !ok || rest != "" {
			return ColumnDef{}, fmt.Errorf("expected KEY after PRIMARY in %q", def)
		}
		isKey = true
		def = typePart
	}

	name, typeStr, found := strings.Cut(def, " ")
	if !found {
		return ColumnDef{}, fmt.Errorf("missing type in column def %q", def)
	}
	colName, err := parseIdent(name)
	if err != nil {
		return ColumnDef{}, err
	}
	typ, err := ParseType(typeStr)
	if err != nil {
		return ColumnDef{}, err
	}

	return ColumnDef{Name: colName, Type: typ, IsKey: isKey}, nil
}

// parseMappedBy parses the remainder after the MAPPED keyword of an ALTER
// ADD clause: BY ( col = "family.qualifier", ... ).
func parseMappedBy(s string) ([]MappingExpr, error) {
	afterBy, ok := matchKeywords(s, "BY")
	if !ok {
		return nil, fmt.Errorf("invalid MAPPED clause: expected BY")
	}
	inner, err := trimParens(afterBy)
	if err != nil {
		return nil, fmt.Errorf("invalid MAPPED BY clause: %w", err)
	}

	items := splitList(inner)
	if len(items) == 0 {
		return nil, fmt.Errorf("invalid MAPPED BY clause: empty mapping list")
	}
	mappings := make([]MappingExpr, 0, len(items))
	for _, item := range items {
		m, err := parseMappingExpr(item)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// parseMappingExpr parses one equality `col = "family.qualifier"`. The
// right-hand side must be a quoted string; its family/qualifier split is
// the planner's job.
func parseMappingExpr(s string) (MappingExpr, error) {
	l, r, found := strings.Cut(s, "=")
	if !found {
		return MappingExpr{}, fmt.Errorf("invalid mapping expression: %q", s)
	}
	col, err := parseIdent(l)
	if err != nil {
		return MappingExpr{}, fmt.Errorf("invalid mapping column: %w", err)
	}
	val, err := unquote(r)
	if err != nil {
		return MappingExpr{}, fmt.Errorf("invalid mapping value: %w", err)
	}
	return MappingExpr{Column: col, Value: val}, nil
}
