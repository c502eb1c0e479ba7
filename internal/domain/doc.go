// Package domain models Bureau of Labor Statistics (BLS) time-series data.
//
// # Data Source
//
// Observations come from the BLS public timeseries API
// (https://api.bls.gov/publicAPI/v2/timeseries/data/). Each requested series
// returns an ordered list of period-tagged observations; this package merges
// those per-series lists into one wide table and rewrites the period tags
// into a single sortable date key.
//
// # BLS Period Conventions
//
// The period field encodes both the reporting frequency and the sub-year
// position; the leading character selects the frequency:
//
//	M01–M12  monthly    "M03" = March        → key "YYYY-03"
//	Q01–Q04  quarterly  "Q01" = 1st quarter  → key "YYYY-01"
//	S01–S02  semiannual "S02" = 2nd half     → key "YYYY-12" (half × 6)
//	A01      annual     no sub-year period   → key "YYYY"
//
// All observations in one merged table share a single frequency; mixed
// frequencies are a caller error.
//
// Quarterly keys reuse the quarter digit as the month token (Q01 → YYYY-01,
// not the quarter-end month YYYY-03). That matches the upstream producer's
// long-standing encoding; consumers compare keys against previously produced
// tables, so it is preserved as-is. See [Frequency.DateKey].
//
// # Missing Values
//
// BLS publishes "-" for suppressed or unavailable cells and some series
// carry empty value strings. Both are treated as absent cells, never as
// zero. Any other non-numeric value is a ConversionError.
package domain
