package domain

import (
	"context"
	"time"
)

// Dataset is one fully normalized refresh result: the canonical table, the
// resolved location map, and the time the raw data was fetched. Read-only
// after construction; concurrent readers need no coordination.
type Dataset struct {
	Table     Table             `json:"table"`
	Locations map[string]string `json:"locations"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// NewDataset stamps a refresh result with the current clock time.
func NewDataset(t Table, locations map[string]string) Dataset {
	return Dataset{Table: t, Locations: locations, FetchedAt: clock.Now()}
}

// Fetcher retrieves raw observations for a set of series identifiers over an
// inclusive year range.
type Fetcher interface {
	FetchSeries(ctx context.Context, ids []string, startYear, endYear int) ([]SeriesData, error)
}
