package domain

// Table is the canonical date-indexed form every downstream consumer reads:
// one row per date key (ascending), one column per series identifier, nil
// cells where a series has no observation. Cells are never written after
// construction; derived views copy the row structure and share the values.
type Table struct {
	Index   []string     `json:"dates"`
	Columns []string     `json:"columns"`
	Rows    [][]*float64 `json:"rows"`
}

// IsEmpty reports whether the table has no rows and no columns.
func (t Table) IsEmpty() bool {
	return len(t.Index) == 0 && len(t.Columns) == 0
}

// Clone returns a structural copy. Cell pointers are shared; the floats
// behind them are immutable by convention.
func (t Table) Clone() Table {
	c := Table{
		Index:   append([]string(nil), t.Index...),
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]*float64, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]*float64(nil), row...)
	}
	return c
}

// At returns the cell for (date, column), with ok=false for a missing cell
// or an unknown date/column.
func (t Table) At(date, column string) (float64, bool) {
	ri, ci := -1, -1
	for i, d := range t.Index {
		if d == date {
			ri = i
			break
		}
	}
	for j, c := range t.Columns {
		if c == column {
			ci = j
			break
		}
	}
	if ri < 0 || ci < 0 || t.Rows[ri][ci] == nil {
		return 0, false
	}
	return *t.Rows[ri][ci], true
}
