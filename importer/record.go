// Package importer reads previously exported entry detail CSVs back into log
// entries, tolerating header variants from both the German and English report
// layouts.
package importer

import (
	"strings"
)

type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the first non-missing value among the given header aliases.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
