package catalog

import (
	"strings"
)

// sortableProductFields is the allow-list of fields the product list API
// accepts in sort specs. Anything else is silently ignored.
var sortableProductFields = map[string]bool{
	"sku":           true,
	"price":         true,
	"description":   true,
	"category_name": true,
}

// SortTerm is one resolved sort criterion
type SortTerm struct {
	Field string
	Desc  bool
}

// ParseSortSpec parses a comma-separated sort spec into ordered terms.
// Accepted token forms: "field", "-field", "+field", "field:asc",
// "field:desc". Tokens naming unknown fields are dropped, duplicate fields
// keep their first occurrence, and "id" ascending is always appended as the
// final tie-breaker. defaultOrder applies to tokens without an explicit
// direction and to tokens with an unrecognized one; anything other than
// "desc" means ascending.
func ParseSortSpec(spec, defaultOrder string) []SortTerm {
	defaultDesc := strings.EqualFold(defaultOrder, "desc")

	terms := make([]SortTerm, 0, 4)
	seen := make(map[string]bool)

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		field := token
		desc := defaultDesc

		switch {
		case strings.HasPrefix(token, "-"):
			field = token[1:]
			desc = true
		case strings.HasPrefix(token, "+"):
			field = token[1:]
			desc = false
		default:
			if idx := strings.IndexByte(token, ':'); idx >= 0 {
				field = token[:idx]
				switch strings.ToLower(strings.TrimSpace(token[idx+1:])) {
				case "desc":
					desc = true
				case "asc":
					desc = false
				}
			}
		}

		field = strings.ToLower(strings.TrimSpace(field))
		if !sortableProductFields[field] || seen[field] {
			continue
		}

		seen[field] = true
		terms = append(terms, SortTerm{Field: field, Desc: desc})
	}

	return append(terms, SortTerm{Field: "id"})
}

// BuildOrderBy renders sort terms as a SQL ORDER BY fragment. Terms come
// from ParseSortSpec, so every field is allow-listed.
func BuildOrderBy(terms []SortTerm) string {
	parts := make([]string, len(terms))
	for i, term := range terms {
		dir := "asc"
		if term.Desc {
			dir = "desc"
		}
		parts[i] = term.Field + " " + dir
	}
	return strings.Join(parts, ", ")
}
