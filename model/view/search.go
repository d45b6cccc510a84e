package view

import "strings"

// Search keeps rows where any of the texts returned by fields contains q,
// ignoring case. An empty q keeps everything.
func Search[T any](rows []T, q string, fields func(T) []*string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, f := range fields(r) {
			if f != nil && strings.Contains(strings.ToLower(*f), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
