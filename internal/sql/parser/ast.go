package parser

// Statement is the root interface for all parsed statements.
type Statement interface {
	stmtNode()
}

// ----- base grammar -----

type SelectStmt struct {
	TableName string
	Columns   []string // nil means "*"
	Where     *WhereExpr
}

func (*SelectStmt) stmtNode() {}

// WithStmt is a single-CTE query: WITH <name> AS (<select>) <select>.
type WithStmt struct {
	Name       string
	Definition *SelectStmt
	Query      *SelectStmt
}

func (*WithStmt) stmtNode() {}

// WhereExpr is a single comparison: <column> <op> <literal>.
// Op is one of =, !=, <>, <, <=, >, >=.
type WhereExpr struct {
	Column string
	Op     string
	Value  any
}

// ----- dialect DDL -----

type ColumnDef struct {
	Name  string
	Type  ScalarType
	IsKey bool // PRIMARY KEY column; addressed by row key, not by family/qualifier
}

// MappingExpr is one equality from a MAPPED BY / COLS list, kept as the
// typed (column, string-literal) pair the grammar matched. Splitting the
// value into family and qualifier happens in the planner.
type MappingExpr struct {
	Column string
	Value  string
}

type CreateTableStmt struct {
	TableName   string
	MappedTable string
	Columns     []ColumnDef
	Mappings    []MappingExpr
	IfNotExists bool
}

func (*CreateTableStmt) stmtNode() {}

type DropTableStmt struct {
	TableName string
}

func (*DropTableStmt) stmtNode() {}

type AlterDropColStmt struct {
	TableName string
	Column    string
}

func (*AlterDropColStmt) stmtNode() {}

type AlterAddColStmt struct {
	TableName string
	Column    ColumnDef
	Mappings  []MappingExpr
}

func (*AlterAddColStmt) stmtNode() {}

type ShowTablesStmt struct{}

func (*ShowTablesStmt) stmtNode() {}

// ----- dialect DML -----

// InsertStmt holds one literal per value slot; nil is SQL NULL, distinct
// from the three-letter string "null".
type InsertStmt struct {
	TableName string
	Values    []any
}

func (*InsertStmt) stmtNode() {}

type UpdateStmt struct {
	TableName string
	Columns   []string
	Values    []any
	Where     *WhereExpr
}

func (*UpdateStmt) stmtNode() {}

type DeleteStmt struct {
	TableName string
	Where     *WhereExpr
}

func (*DeleteStmt) stmtNode() {}

// LoadStmt models LOAD [PARALL] DATA [LOCAL] INPATH ... as a flat record;
// the three optional markers are independent.
type LoadStmt struct {
	Path         string
	TableName    string
	Local        bool
	Parallel     bool
	Delimiter    string
	HasDelimiter bool
}

func (*LoadStmt) stmtNode() {}
