package bls

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/reedmaris/bls-data-service/internal/domain"
)

// SaveSnapshot writes raw series payloads to a JSON file so a dataset can be
// rebuilt later without re-querying the API. The file carries the API's own
// series shape ({"seriesID": ..., "data": [...]}).
func SaveSnapshot(path string, series []domain.SeriesData) error {
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads payloads saved by SaveSnapshot.
func LoadSnapshot(path string) ([]domain.SeriesData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var series []domain.SeriesData
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return series, nil
}

// SnapshotFetcher serves every fetch from a saved payload file, ignoring the
// requested year range. It lets the service run replayed data through the
// same pipeline as a live fetch.
type SnapshotFetcher struct {
	series []domain.SeriesData
}

// NewSnapshotFetcher loads the snapshot at path.
func NewSnapshotFetcher(path string) (*SnapshotFetcher, error) {
	series, err := LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return &SnapshotFetcher{series: series}, nil
}

// SeriesIDs lists the identifiers present in the snapshot, in file order.
func (f *SnapshotFetcher) SeriesIDs() []string {
	ids := make([]string, len(f.series))
	for i, s := range f.series {
		ids[i] = s.ID
	}
	return ids
}

// FetchSeries returns the stored payloads for the requested identifiers.
// An empty id list returns everything.
func (f *SnapshotFetcher) FetchSeries(_ context.Context, ids []string, _, _ int) ([]domain.SeriesData, error) {
	if len(ids) == 0 {
		return f.series, nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []domain.SeriesData
	for _, s := range f.series {
		if wanted[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}
