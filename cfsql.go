// Package cfsql parses a SQL dialect for tables whose physical storage is
// addressed by column family and qualifier. It produces typed plan nodes;
// executing them is the caller's business.
package cfsql

import (
	"github.com/cfsql/cfsql/internal/sql/parser"
	"github.com/cfsql/cfsql/internal/sql/planner"
)

// Compile parses one statement and builds its plan node.
//
// Failures are typed and testable with errors.Is: parser.ErrNoMatch when no
// alternative recognizes the input, parser.ErrNoMatchingType for an unknown
// primitive type, planner.ErrMalformedMapping when a mapping value is not
// "family.qualifier", and planner.ErrMissingMapping when a declared column
// has no mapping.
func Compile(sql string) (planner.Plan, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}
	return planner.BuildPlan(stmt)
}

// ReservedWords exposes the merged keyword set of the dialect and its base
// grammar, in declaration order, for external tooling.
func ReservedWords() []string {
	return parser.ReservedWords()
}
