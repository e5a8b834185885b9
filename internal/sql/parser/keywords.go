package parser

import "strings"

// Reserved words are kept in two explicit ordered tables, one per grammar
// layer. The merged set feeds external tooling (syntax highlighting, lexer
// config) and the identifier rule, which refuses to treat a reserved word
// as an ordinary name regardless of case.

// dialectKeywords are the words this dialect adds on top of the base SQL
// grammar.
var dialectKeywords = []string{
	"ADD",
	"ALTER",
	"COLS",
	"DATA",
	"DROP",
	"EXISTS",
	"FIELDS",
	"INPATH",
	"KEY",
	"LOAD",
	"LOCAL",
	"MAPPED",
	"PRIMARY",
	"PARALL",
	"TABLES",
	"VALUES",
	"TERMINATED",
	"UPDATE",
	"DELETE",
	"SET",
	"=",
}

// baseKeywords are the words the inherited grammar already reserves.
var baseKeywords = []string{
	"SELECT",
	"FROM",
	"WHERE",
	"INSERT",
	"INTO",
	"TABLE",
	"BY",
	"AS",
	"WITH",
	"CREATE",
	"IF",
	"NOT",
	"SHOW",
	"AND",
	"OR",
	"NULL",
	"TRUE",
	"FALSE",
}

var reserved = func() map[string]struct{} {
	m := make(map[string]struct{}, len(dialectKeywords)+len(baseKeywords))
	for _, w := range dialectKeywords {
		m[strings.ToUpper(w)] = struct{}{}
	}
	for _, w := range baseKeywords {
		m[strings.ToUpper(w)] = struct{}{}
	}
	return m
}()

// ReservedWords returns the merged keyword set of the dialect and the base
// grammar, in table order, dialect words first, without duplicates.
func ReservedWords() []string {
	out := make([]string, 0, len(dialectKeywords)+len(baseKeywords))
	seen := make(map[string]struct{}, cap(out))
	for _, w := range dialectKeywords {
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	for _, w := range baseKeywords {
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func isReserved(word string) bool {
	_, ok := reserved[strings.ToUpper(word)]
	return ok
}
