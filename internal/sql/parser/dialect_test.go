package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DropTable(t *testing.T) {
	stmt, err := Parse("DROP TABLE users;")
	require.NoError(t, err)

	s, ok := stmt.(*DropTableStmt)
	require.True(t, ok, "want *DropTableStmt, got %T", stmt)
	assert.Equal(t, "users", s.TableName)
}

func TestParse_DropTable_Lowercase(t *testing.T) {
	stmt, err := Parse("drop table users")
	require.NoError(t, err)
	assert.Equal(t, "users", stmt.(*DropTableStmt).TableName)
}

func TestParse_DropTable_ReservedName(t *testing.T) {
	_, err := Parse("DROP TABLE select")
	require.Error(t, err)
}

func TestParse_AlterDropColumn(t *testing.T) {
	stmt, err := Parse("ALTER TABLE users DROP age")
	require.NoError(t, err)

	s, ok := stmt.(*AlterDropColStmt)
	require.True(t, ok, "want *AlterDropColStmt, got %T", stmt)
	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, "age", s.Column)
}

func TestParse_AlterAddColumn(t *testing.T) {
	stmt, err := Parse(`ALTER TABLE users ADD age INT MAPPED BY (age = "info.age")`)
	require.NoError(t, err)

	s, ok := stmt.(*AlterAddColStmt)
	require.True(t, ok, "want *AlterAddColStmt, got %T", stmt)

	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, ColumnDef{Name: "age", Type: ScalarType{Kind: TypeInt}}, s.Column)
	assert.Equal(t, []MappingExpr{{Column: "age", Value: "info.age"}}, s.Mappings)
}

func TestParse_AlterAddColumn_ParameterizedType(t *testing.T) {
	stmt, err := Parse(`ALTER TABLE t ADD score DECIMAL(10, 2) MAPPED BY (score = "cf.score")`)
	require.NoError(t, err)

	s := stmt.(*AlterAddColStmt)
	assert.Equal(t, ScalarType{Kind: TypeDecimal, Precision: 10, Scale: 2}, s.Column.Type)
}

func TestParse_AlterAddColumn_Invalid(t *testing.T) {
	// missing MAPPED BY fails the whole statement, no partial result
	_, err := Parse("ALTER TABLE t ADD c INT")
	require.Error(t, err)

	// unknown type
	_, err = Parse(`ALTER TABLE t ADD c FOO MAPPED BY (c = "f.q")`)
	require.ErrorIs(t, err, ErrNoMatchingType)

	// unquoted mapping value
	_, err = Parse("ALTER TABLE t ADD c INT MAPPED BY (c = f.q)")
	require.Error(t, err)
}

func TestParse_CreateTable(t *testing.T) {
	stmt, err := Parse(`CREATE TABLE IF NOT EXISTS users (id INT PRIMARY KEY, name STRING) MAPPED BY (husers, COLS = [name = "info.name"])`)
	require.NoError(t, err)

	s, ok := stmt.(*CreateTableStmt)
	require.True(t, ok, "want *CreateTableStmt, got %T", stmt)

	assert.True(t, s.IfNotExists)
	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, "husers", s.MappedTable)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, ColumnDef{Name: "id", Type: ScalarType{Kind: TypeInt}, IsKey: true}, s.Columns[0])
	assert.Equal(t, ColumnDef{Name: "name", Type: ScalarType{Kind: TypeString}}, s.Columns[1])
	assert.Equal(t, []MappingExpr{{Column: "name", Value: "info.name"}}, s.Mappings)
}

func TestParse_CreateTable_Invalid(t *testing.T) {
	_, err := Parse("CREATE TABLE t (id INT PRIMARY KEY)")
	require.Error(t, err, "missing MAPPED BY")

	_, err = Parse(`CREATE TABLE t MAPPED BY (ht, COLS = [a = "f.q"])`)
	require.Error(t, err, "missing column list")

	_, err = Parse(`CREATE TABLE t (id INT PRIMARY KEY) MAPPED BY (ht)`)
	require.Error(t, err, "missing COLS")
}

func TestParse_Insert(t *testing.T) {
	stmt, err := Parse(`INSERT INTO TABLE users VALUES (1, "x", null)`)
	require.NoError(t, err)

	s, ok := stmt.(*InsertStmt)
	require.True(t, ok, "want *InsertStmt, got %T", stmt)

	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, []any{int64(1), "x", nil}, s.Values)
}

func TestParse_Insert_WithoutTableKeyword(t *testing.T) {
	// the dialect requires the TABLE keyword; nothing else matches either
	_, err := Parse("INSERT INTO users VALUES (1)")
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestParse_Update(t *testing.T) {
	stmt, err := Parse("UPDATE users SET name = 'x', age = 30 WHERE id = 7")
	require.NoError(t, err)

	s, ok := stmt.(*UpdateStmt)
	require.True(t, ok, "want *UpdateStmt, got %T", stmt)

	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, []string{"name", "age"}, s.Columns)
	assert.Equal(t, []any{"x", int64(30)}, s.Values)
	assert.Equal(t, &WhereExpr{Column: "id", Op: "=", Value: int64(7)}, s.Where)
}

func TestParse_Update_RequiresWhere(t *testing.T) {
	_, err := Parse("UPDATE users SET name = 'x'")
	require.Error(t, err)
}

func TestParse_Delete(t *testing.T) {
	stmt, err := Parse("DELETE FROM users WHERE id = 7")
	require.NoError(t, err)

	s, ok := stmt.(*DeleteStmt)
	require.True(t, ok, "want *DeleteStmt, got %T", stmt)

	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, &WhereExpr{Column: "id", Op: "=", Value: int64(7)}, s.Where)
}

func TestParse_Delete_RequiresWhere(t *testing.T) {
	_, err := Parse("DELETE FROM users")
	require.Error(t, err)
}

func TestParse_Load_LocalWithDelimiter(t *testing.T) {
	stmt, err := Parse(`LOAD DATA LOCAL INPATH "/p" INTO TABLE t FIELDS TERMINATED BY ","`)
	require.NoError(t, err)

	s, ok := stmt.(*LoadStmt)
	require.True(t, ok, "want *LoadStmt, got %T", stmt)

	assert.Equal(t, &LoadStmt{
		Path:         "/p",
		TableName:    "t",
		Local:        true,
		Delimiter:    ",",
		HasDelimiter: true,
	}, s)
}

func TestParse_Load_Parallel(t *testing.T) {
	stmt, err := Parse(`LOAD PARALL DATA INPATH "/p" INTO TABLE t`)
	require.NoError(t, err)

	assert.Equal(t, &LoadStmt{
		Path:      "/p",
		TableName: "t",
		Parallel:  true,
	}, stmt.(*LoadStmt))
}

func TestParse_Load_Invalid(t *testing.T) {
	// optional markers are order-fixed: LOCAL cannot precede DATA
	_, err := Parse(`LOAD LOCAL DATA INPATH "/p" INTO TABLE t`)
	require.Error(t, err)

	// unquoted path
	_, err = Parse("LOAD DATA INPATH /p INTO TABLE t")
	require.Error(t, err)

	_, err = Parse(`LOAD DATA INPATH "/p" INTO TABLE t FIELDS TERMINATED BY "," extra`)
	require.Error(t, err)
}

func TestParse_ShowTables(t *testing.T) {
	stmt, err := Parse("SHOW TABLES;")
	require.NoError(t, err)
	_, ok := stmt.(*ShowTablesStmt)
	require.True(t, ok, "want *ShowTablesStmt, got %T", stmt)
}

func TestParse_NoMatch(t *testing.T) {
	for _, in := range []string{"", "GRANT ALL ON users", "TRUNCATE users"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrNoMatch, "Parse(%q)", in)
	}
}

func TestParse_CustomBaseGrammar(t *testing.T) {
	// a base grammar that matches nothing still leaves the dialect usable
	d := NewWithBase(rejectAll{})
	stmt, err := d.Parse("DROP TABLE t")
	require.NoError(t, err)
	assert.Equal(t, "t", stmt.(*DropTableStmt).TableName)

	_, err = d.Parse("SELECT * FROM t")
	require.ErrorIs(t, err, ErrNoMatch)
}

type rejectAll struct{}

func (rejectAll) Parse(string) (Statement, error) { return nil, ErrNoMatch }
