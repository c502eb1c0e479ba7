package domain

// Observation is one period-tagged data point as returned by the BLS API.
// Values stay strings until the merge coerces them; the API quotes numbers
// and uses "-" as the suppressed-cell sentinel.
type Observation struct {
	Year   string `json:"year"`
	Period string `json:"period"`
	Value  string `json:"value"`
}

// SeriesData carries one series identifier and its raw observations, in the
// order the API returned them (most recent first).
type SeriesData struct {
	ID           string        `json:"seriesID"`
	Observations []Observation `json:"data"`
}
