// Package directory filters a fetched doctor/chemist list on the client.
package directory

import (
	"strings"

	"fieldrep/internal/model"

	"golang.org/x/text/cases"
)

// Filter returns the entries whose name, speciality or type contains query,
// compared case-insensitively. Order is preserved and only an empty query
// returns entries unchanged; whitespace is matched like any other text. No index is kept; the per-owner list is
// small enough to scan on every keystroke.
func Filter(query string, entries []model.DoctorEntry) []model.DoctorEntry {
	fold := cases.Fold()
	needle := fold.String(query)
	if needle == "" {
		return entries
	}

	out := make([]model.DoctorEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(fold.String(e.Name), needle) ||
			strings.Contains(fold.String(e.Speciality), needle) ||
			strings.Contains(fold.String(e.Type), needle) {
			out = append(out, e)
		}
	}
	return out
}
