package domain

import (
	"strconv"
	"strings"
)

// missingSentinels are observation values treated as absent cells.
// "-" is the BLS suppressed-cell marker.
var missingSentinels = map[string]bool{"": true, "-": true}

// MergedRow is one (year, period) row of the wide merged table. Values holds
// one cell per series observed at that period; series without an observation
// have no entry.
type MergedRow struct {
	Year   string
	Period string
	Values map[string]float64
}

// MergedTable is the outer join of per-series observation lists on
// (year, period). Rows appear in first-seen order; Normalize sorts them.
type MergedTable struct {
	SeriesIDs []string
	Rows      []MergedRow
}

// Merge outer-joins per-series payloads into one wide table. Payloads with
// zero observations contribute no rows and no column. Values are coerced to
// float64; missing sentinels leave the cell absent, anything else
// non-numeric fails with ConversionError. Duplicate series identifiers fail
// immediately with DuplicateSeriesError.
func Merge(series []SeriesData) (MergedTable, error) {
	var m MergedTable
	seen := make(map[string]bool, len(series))
	rowIndex := make(map[[2]string]int)

	for _, s := range series {
		if len(s.Observations) == 0 {
			continue
		}
		if seen[s.ID] {
			return MergedTable{}, &DuplicateSeriesError{SeriesID: s.ID}
		}
		seen[s.ID] = true
		m.SeriesIDs = append(m.SeriesIDs, s.ID)

		for _, obs := range s.Observations {
			key := [2]string{obs.Year, obs.Period}
			i, ok := rowIndex[key]
			if !ok {
				i = len(m.Rows)
				rowIndex[key] = i
				m.Rows = append(m.Rows, MergedRow{
					Year:   obs.Year,
					Period: obs.Period,
					Values: make(map[string]float64),
				})
			}

			raw := strings.TrimSpace(obs.Value)
			if missingSentinels[raw] {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return MergedTable{}, &ConversionError{
					SeriesID: s.ID,
					Year:     obs.Year,
					Period:   obs.Period,
					Value:    obs.Value,
				}
			}
			m.Rows[i].Values[s.ID] = v
		}
	}

	return m, nil
}
