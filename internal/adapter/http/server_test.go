package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/reedmaris/bls-data-service/internal/adapter/http"
	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockDatasets struct {
	ds domain.Dataset
	ok bool
}

func (m *mockDatasets) CurrentDataset() (domain.Dataset, bool) { return m.ds, m.ok }

func f(v float64) *float64 { return &v }

func testDataset() domain.Dataset {
	return domain.Dataset{
		Table: domain.Table{
			Index:   []string{"2023-01", "2023-02"},
			Columns: []string{"LAUST060000000000003", "ENU0600010010"},
			Rows: [][]*float64{
				{f(4.4), f(1100000)},
				{f(4.5), nil},
			},
		},
		Locations: map[string]string{
			"LAUST060000000000003": "California",
			"ENU0600010010":        "California -- Statewide",
		},
		FetchedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}
}

func newTestServer(readyErr error, datasets httpadapter.DatasetProvider) *httpadapter.Server {
	if datasets == nil {
		datasets = &mockDatasets{ds: testDataset(), ok: true}
	}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, datasets, slog.Default())
}

func get(t *testing.T, srv *httpadapter.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(t, newTestServer(fmt.Errorf("no dataset yet"), nil), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no dataset yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestTableDefaultsToShortNames(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Table domain.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"California", "California"}, body.Table.Columns)
	assert.Equal(t, []string{"2023-01", "2023-02"}, body.Table.Index)
}

func TestTableResolvedNames(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table?names=resolved")

	var body struct {
		Table domain.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"California", "California -- Statewide"}, body.Table.Columns)
}

func TestTableRawIDs(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table?names=ids")

	var body struct {
		Table domain.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"LAUST060000000000003", "ENU0600010010"}, body.Table.Columns)
}

func TestTableDescendingOrder(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table?order=desc")

	var body struct {
		Table domain.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"2023-02", "2023-01"}, body.Table.Index)
}

func TestTableBadParamReturns400(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table?order=sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableCSVFormat(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table?format=csv&names=ids")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "date,LAUST060000000000003,ENU0600010010")
	assert.Contains(t, rec.Body.String(), "2023-02,4.5,")
}

func TestTableXLSXFormat(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/table?format=xlsx")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestTableNoDatasetReturns503(t *testing.T) {
	rec := get(t, newTestServer(nil, &mockDatasets{}), "/v1/table")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLocationsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/locations")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Locations map[string]string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "California", body.Locations["LAUST060000000000003"])
}

func TestChartRendersHTML(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/chart?kind=bar&title=Unemployment")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Unemployment")
}

func TestChartUnknownKindReturns400(t *testing.T) {
	rec := get(t, newTestServer(nil, nil), "/v1/chart?kind=pie")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
