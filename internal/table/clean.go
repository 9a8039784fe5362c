package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanName normalizes a header to snake_case: lowercased, accents stripped,
// runs of non-alphanumeric characters collapsed to single underscores.
// Mirrors the header cleaning the upstream feeds are published against.
func CleanName(s string) string {
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// CleanNames rewrites every column name with CleanName. When cleaning would
// produce a duplicate, the original name is kept for that column.
func CleanNames(t *Table) {
	for _, col := range t.Columns() {
		cleaned := CleanName(col)
		if cleaned == "" || cleaned == col || t.Has(cleaned) {
			continue
		}
		_ = t.Rename(col, cleaned)
	}
}
