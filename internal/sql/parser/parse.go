package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrNoMatch is returned when no alternative of a grammar recognizes the
// input. The dialect uses it to fall through from the base grammar's
// alternatives to its own.
var ErrNoMatch = errors.New("no matching statement")

// Grammar recognizes one statement. Implementations return an error
// wrapping ErrNoMatch when none of their alternatives applies, so callers
// can chain grammars as an ordered choice.
type Grammar interface {
	Parse(sql string) (Statement, error)
}

// baseGrammar is the inherited general-purpose layer: plain SELECT and a
// single-CTE WITH form. It also owns the shared productions (ident,
// literal, where-expression) the dialect reuses.
type baseGrammar struct{}

func (baseGrammar) Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	switch {
	case hasKeywordPrefix(s, "SELECT"):
		return parseSelect(s)
	case hasKeywordPrefix(s, "WITH"):
		return parseWith(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, s)
	}
}

func parseSelect(sql string) (Statement, error) {
	// "SELECT <cols|*> FROM <table> [WHERE <expr>]"
	rest, ok := matchKeywords(sql, "SELECT")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, sql)
	}

	projPart, afterFrom := splitKeyword(rest, "FROM")
	if afterFrom == "" {
		return nil, fmt.Errorf("invalid SELECT syntax: missing FROM")
	}

	var cols []string
	if strings.TrimSpace(projPart) != "*" {
		for _, c := range splitList(projPart) {
			name, err := parseIdent(c)
			if err != nil {
				return nil, fmt.Errorf("invalid SELECT column: %w", err)
			}
			cols = append(cols, name)
		}
		if len(cols) == 0 {
			return nil, fmt.Errorf("invalid SELECT syntax: empty column list")
		}
	}

	tablePart, wherePart := splitKeyword(afterFrom, "WHERE")
	tableName, err := parseIdent(tablePart)
	if err != nil {
		return nil, fmt.Errorf("invalid SELECT syntax: %w", err)
	}

	var w *WhereExpr
	if wherePart != "" {
		if w, err = parseWhereExpr(wherePart); err != nil {
			return nil, err
		}
	}

	return &SelectStmt{TableName: tableName, Columns: cols, Where: w}, nil
}

func parseWith(sql string) (Statement, error) {
	// "WITH <name> AS ( <select> ) <select>"
	rest, ok := matchKeywords(sql, "WITH")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, sql)
	}

	namePart, afterAs := splitKeyword(rest, "AS")
	if afterAs == "" {
		return nil, fmt.Errorf("invalid WITH syntax: missing AS")
	}
	name, err := parseIdent(namePart)
	if err != nil {
		return nil, fmt.Errorf("invalid WITH syntax: %w", err)
	}

	inner, tail, err := cutParen(afterAs)
	if err != nil {
		return nil, fmt.Errorf("invalid WITH syntax: %w", err)
	}

	def, err := parseSelect(inner)
	if err != nil {
		return nil, fmt.Errorf("invalid WITH definition: %w", err)
	}
	query, err := parseSelect(tail)
	if err != nil {
		return nil, fmt.Errorf("invalid WITH query: %w", err)
	}

	return &WithStmt{
		Name:       name,
		Definition: def.(*SelectStmt),
		Query:      query.(*SelectStmt),
	}, nil
}

// compareOps is checked longest-first so "<=" never parses as "<" "=".
var compareOps = []string{"<=", ">=", "!=", "<>", "=", "<", ">"}

// parseWhereExpr parses a single comparison "col <op> literal".
func parseWhereExpr(s string) (*WhereExpr, error) {
	s = strings.TrimSpace(s)

	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			continue
		}
		for _, op := range compareOps {
			if !strings.HasPrefix(s[i:], op) {
				continue
			}
			col, err := parseIdent(s[:i])
			if err != nil {
				return nil, fmt.Errorf("invalid WHERE column: %w", err)
			}
			val, err := parseLiteral(strings.TrimSpace(s[i+len(op):]))
			if err != nil {
				return nil, err
			}
			return &WhereExpr{Column: col, Op: op, Value: val}, nil
		}
	}
	return nil, fmt.Errorf("invalid WHERE clause: %q", s)
}

// parseIdent validates a table/column name: one token, letter or '_' first,
// then letters/digits/'_'. Reserved words are rejected regardless of case.
func parseIdent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("missing identifier")
	}

	parts := strings.Fields(s)
	if len(parts) != 1 {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	id := parts[0]

	for i, r := range id {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", fmt.Errorf("invalid identifier %q", id)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("invalid identifier %q", id)
		}
	}

	if isReserved(id) {
		return "", fmt.Errorf("reserved word %q used as identifier", id)
	}
	return id, nil
}

// parseLiteral parses a scalar constant. nil means SQL NULL.
func parseLiteral(rv string) (any, error) {
	up := strings.ToUpper(rv)

	if up == "NULL" {
		return nil, nil
	}
	if up == "TRUE" {
		return true, nil
	}
	if up == "FALSE" {
		return false, nil
	}

	// strings take single or double quotes
	if v, err := unquote(rv); err == nil {
		return v, nil
	}

	if i, err := strconv.ParseInt(rv, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(rv, 64); err == nil {
		return f, nil
	}

	return nil, fmt.Errorf("unsupported literal: %q", rv)
}

// unquote strips one level of matching single or double quotes.
func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], nil
	}
	return "", fmt.Errorf("not a string literal: %q", s)
}

// ----- scanning helpers -----

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// hasKeywordPrefix reports whether s starts with the keyword as a whole
// word, case-insensitively.
func hasKeywordPrefix(s, kw string) bool {
	_, ok := matchKeywords(s, kw)
	return ok
}

// matchKeywords consumes the given leading keywords, case-insensitively
// and word-boundary aware, returning the remainder after the last one.
func matchKeywords(s string, kws ...string) (string, bool) {
	rest := strings.TrimSpace(s)
	for _, kw := range kws {
		if len(rest) < len(kw) || !strings.EqualFold(rest[:len(kw)], kw) {
			return s, false
		}
		tail := rest[len(kw):]
		if tail != "" && isWordChar(tail[0]) {
			return s, false
		}
		rest = strings.TrimSpace(tail)
	}
	return rest, true
}

// splitKeyword splits "X <keyword> Y" into (X, Y) on the first occurrence
// of the keyword outside quotes, case-insensitively and word-boundary
// aware. If the keyword is absent the whole input comes back as X with an
// empty Y.
func splitKeyword(s, keyword string) (string, string) {
	var quote byte
	for i := 0; i+len(keyword) <= len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			continue
		}
		if !strings.EqualFold(s[i:i+len(keyword)], keyword) {
			continue
		}
		if i > 0 && isWordChar(s[i-1]) {
			continue
		}
		if end := i + len(keyword); end < len(s) && isWordChar(s[end]) {
			continue
		}
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(keyword):])
	}
	return strings.TrimSpace(s), ""
}

// splitList splits a comma-separated list, ignoring commas inside quotes,
// parentheses and brackets.
func splitList(s string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	var quote rune

	for _, r := range s {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == '(' || r == '[':
			depth++
			cur.WriteRune(r)
		case r == ')' || r == ']':
			depth--
			cur.WriteRune(r)
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if t := strings.TrimSpace(cur.String()); t != "" {
		parts = append(parts, t)
	}
	return parts
}

// trimParens strips one mandatory level of surrounding parentheses.
func trimParens(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", fmt.Errorf("expected parenthesized list, got %q", s)
	}
	return strings.TrimSpace(s[1 : len(s)-1]), nil
}

// trimBrackets strips one mandatory level of surrounding square brackets.
func trimBrackets(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", fmt.Errorf("expected bracketed list, got %q", s)
	}
	return strings.TrimSpace(s[1 : len(s)-1]), nil
}

// cutParen extracts the contents of a leading balanced parenthesized group
// and returns the remainder after it.
func cutParen(s string) (inner, rest string, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] != '(' {
		return "", "", fmt.Errorf("expected '(', got %q", s)
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[1:i]), strings.TrimSpace(s[i+1:]), nil
			}
		}
	}
	return "", "", fmt.Errorf("unbalanced parentheses in %q", s)
}

// cutStringToken takes a leading quoted string off the input and returns
// its unquoted value and the remainder.
func cutStringToken(s string) (value, rest string, err error) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return "", "", fmt.Errorf("expected string literal, got %q", s)
	}
	q := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] == q {
			return s[1:i], strings.TrimSpace(s[i+1:]), nil
		}
	}
	return "", "", fmt.Errorf("unterminated string literal: %q", s)
}
