package domain

import "fmt"

// ConversionError reports an observation value that is neither numeric nor a
// recognized missing-value sentinel. No partial row is admitted for the
// offending series and period.
type ConversionError struct {
	SeriesID string
	Year     string
	Period   string
	Value    string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("series %s: value %q at %s %s is not numeric", e.SeriesID, e.Value, e.Year, e.Period)
}

// PeriodParseError reports a (year, period) pair that could not be rewritten
// into a valid calendar key. Normalization aborts for the whole table.
type PeriodParseError struct {
	Year   string
	Period string
	Reason string
}

func (e *PeriodParseError) Error() string {
	return fmt.Sprintf("period %q year %q: %s", e.Period, e.Year, e.Reason)
}

// DuplicateSeriesError reports two input payloads carrying the same series
// identifier, which would collide into one value column.
type DuplicateSeriesError struct {
	SeriesID string
}

func (e *DuplicateSeriesError) Error() string {
	return fmt.Sprintf("duplicate series identifier %s in merge input", e.SeriesID)
}
