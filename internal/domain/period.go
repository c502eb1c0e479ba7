package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Frequency is the closed set of BLS reporting frequencies. Exactly one
// frequency applies to a merged table, selected once from the leading
// character of its first period tag.
type Frequency int

const (
	Monthly Frequency = iota
	Quarterly
	SemiAnnual
	Annual
)

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case SemiAnnual:
		return "semiannual"
	case Annual:
		return "annual"
	default:
		return "unknown"
	}
}

// DetectFrequency classifies a period tag by its leading character.
func DetectFrequency(period string) (Frequency, error) {
	switch {
	case strings.HasPrefix(period, "M"):
		return Monthly, nil
	case strings.HasPrefix(period, "Q"):
		return Quarterly, nil
	case strings.HasPrefix(period, "S"):
		return SemiAnnual, nil
	case strings.HasPrefix(period, "A"):
		return Annual, nil
	default:
		return 0, &PeriodParseError{Period: period, Reason: "unrecognized frequency marker"}
	}
}

// DateKey rewrites one (year, period) pair into the sortable calendar key
// for this frequency: "YYYY-MM" for sub-annual data, "YYYY" for annual.
//
// Quarterly keys use the quarter digit itself as the month token
// (Q01 → YYYY-01). See the package documentation for why this stays.
func (f Frequency) DateKey(year, period string) (string, error) {
	if f == Annual {
		if _, err := strconv.Atoi(year); err != nil {
			return "", &PeriodParseError{Year: year, Period: period, Reason: "year is not numeric"}
		}
		return year, nil
	}

	var month int
	switch f {
	case Monthly:
		n, err := strconv.Atoi(strings.TrimPrefix(period, "M"))
		if err != nil {
			return "", &PeriodParseError{Year: year, Period: period, Reason: "month digits are not numeric"}
		}
		month = n
	case Quarterly:
		// Strip the zero padding, then the marker: "Q01" → "1".
		digit := strings.TrimPrefix(strings.ReplaceAll(period, "0", ""), "Q")
		n, err := strconv.Atoi(digit)
		if err != nil || n < 1 || n > 4 {
			return "", &PeriodParseError{Year: year, Period: period, Reason: "quarter digit out of range"}
		}
		month = n
	case SemiAnnual:
		n, err := strconv.Atoi(strings.TrimPrefix(period, "S"))
		if err != nil || n < 1 || n > 2 {
			return "", &PeriodParseError{Year: year, Period: period, Reason: "half-year digit out of range"}
		}
		month = n * 6
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return "", &PeriodParseError{Year: year, Period: period, Reason: "year is not numeric"}
	}
	if month < 1 || month > 12 {
		return "", &PeriodParseError{Year: year, Period: period, Reason: fmt.Sprintf("month %d out of range", month)}
	}
	return fmt.Sprintf("%04d-%02d", y, month), nil
}

// Normalize rewrites a merged table's (year, period) pairs into date keys
// and returns the canonical table, sorted ascending by key. The frequency is
// detected once from the first row and applied to every row; a pair the
// branch cannot rewrite aborts the whole table with PeriodParseError.
func Normalize(m MergedTable) (Table, error) {
	if len(m.Rows) == 0 {
		return Table{}, nil
	}

	freq, err := DetectFrequency(m.Rows[0].Period)
	if err != nil {
		return Table{}, err
	}

	type keyedRow struct {
		key string
		row MergedRow
	}
	keyed := make([]keyedRow, len(m.Rows))
	for i, row := range m.Rows {
		key, err := freq.DateKey(row.Year, row.Period)
		if err != nil {
			return Table{}, err
		}
		keyed[i] = keyedRow{key: key, row: row}
	}
	sort.SliceStable(keyed, func(i, j int) bool { return keyed[i].key < keyed[j].key })

	t := Table{
		Index:   make([]string, len(keyed)),
		Columns: append([]string(nil), m.SeriesIDs...),
		Rows:    make([][]*float64, len(keyed)),
	}
	for i, kr := range keyed {
		t.Index[i] = kr.key
		cells := make([]*float64, len(t.Columns))
		for j, id := range t.Columns {
			if v, ok := kr.row.Values[id]; ok {
				v := v
				cells[j] = &v
			}
		}
		t.Rows[i] = cells
	}
	return t, nil
}
