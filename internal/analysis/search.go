package analysis

import "strings"

// MinQueryLen is the shortest normalized query that triggers a lookup.
const MinQueryLen = 3

// NormalizeQuery trims the raw query and reports whether it is long enough
// to search. Queries under the minimum never reach the fact store.
func NormalizeQuery(raw string) (string, bool) {
	q := strings.TrimSpace(raw)
	return q, len([]rune(q)) >= MinQueryLen
}
