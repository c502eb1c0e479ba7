// Package present derives display-ready views from the canonical table:
// column relabeling from resolved locations, transposes and reorderings for
// renderers, chart construction, and CSV/xlsx export. Every function returns
// a fresh derived copy; the canonical table is never modified.
package present

import (
	"strings"

	"github.com/reedmaris/bls-data-service/internal/domain"
)

// Options control how a view is derived from the canonical table.
type Options struct {
	// ShortNames cuts each resolved location at the first "--" or ",".
	ShortNames bool
	// Overrides maps series identifiers to caller-supplied column names.
	// They win over resolved locations and apply last.
	Overrides map[string]string
	// Transpose swaps the row and column axes. Useful when the table has a
	// single row and the renderer wants one bar per series.
	Transpose bool
	// Descending reorders rows by descending date key.
	Descending bool
}

// Format derives a relabeled, reordered copy of the canonical table.
// Columns rename to their resolved location when one exists, then to the
// caller override when one exists, and otherwise keep the identifier.
func Format(t domain.Table, locations map[string]string, opts Options) domain.Table {
	view := t.Clone()

	for j, id := range view.Columns {
		name := id
		if loc, ok := locations[id]; ok {
			name = loc
			if opts.ShortNames {
				name = ShortName(loc)
			}
		}
		if override, ok := opts.Overrides[id]; ok {
			name = override
		}
		view.Columns[j] = name
	}

	if opts.Descending {
		reverseRows(&view)
	}
	if opts.Transpose {
		view = transpose(view)
	}
	return view
}

// ShortName cuts a resolved location at the first "--" or ",", dropping
// administrative-hierarchy suffixes like state qualifiers:
// "California -- Statewide" → "California".
func ShortName(name string) string {
	cut := len(name)
	if i := strings.Index(name, "--"); i >= 0 && i < cut {
		cut = i
	}
	if i := strings.Index(name, ","); i >= 0 && i < cut {
		cut = i
	}
	return strings.TrimSpace(name[:cut])
}

func reverseRows(t *domain.Table) {
	for i, j := 0, len(t.Index)-1; i < j; i, j = i+1, j-1 {
		t.Index[i], t.Index[j] = t.Index[j], t.Index[i]
		t.Rows[i], t.Rows[j] = t.Rows[j], t.Rows[i]
	}
}

func transpose(t domain.Table) domain.Table {
	out := domain.Table{
		Index:   append([]string(nil), t.Columns...),
		Columns: append([]string(nil), t.Index...),
		Rows:    make([][]*float64, len(t.Columns)),
	}
	for j := range t.Columns {
		row := make([]*float64, len(t.Index))
		for i := range t.Index {
			row[i] = t.Rows[i][j]
		}
		out.Rows[j] = row
	}
	return out
}
