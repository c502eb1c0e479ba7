// Package bls implements domain.Fetcher against the BLS public timeseries
// API, with an LRU cache decorator and file-snapshot replay.
package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/reedmaris/bls-data-service/internal/observability"
)

const defaultBaseURL = "https://api.bls.gov/publicAPI/v2/timeseries/data/"

// statusSucceeded is the API's success marker; anything else carries the
// failure reason in the message list.
const statusSucceeded = "REQUEST_SUCCEEDED"

// Client fetches raw series payloads from the BLS timeseries API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a BLS API client. The API key is optional; unregistered
// requests get a lower daily quota.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchSeries posts a timeseries request for ids over the inclusive year
// range and returns the per-series payloads.
func (c *Client) FetchSeries(ctx context.Context, ids []string, startYear, endYear int) ([]domain.SeriesData, error) {
	body, err := json.Marshal(request{
		SeriesIDs:       ids,
		StartYear:       strconv.Itoa(startYear),
		EndYear:         strconv.Itoa(endYear),
		RegistrationKey: c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("timeseries request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("BLS API error: status %d: %s", resp.StatusCode, respBody)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// The API returns 200 even for rejected requests; the status field is
	// authoritative.
	if apiResp.Status != statusSucceeded {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("BLS API request not successful: %s: %v", apiResp.Status, apiResp.Message)
	}
	for _, msg := range apiResp.Message {
		c.logger.Info("BLS API message", "message", msg)
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	return apiResp.Results.Series, nil
}

// BLS API wire types.

type request struct {
	SeriesIDs       []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	Catalog         bool     `json:"catalog"`
	AnnualAverage   bool     `json:"annualaverage"`
	Aspects         bool     `json:"aspects"`
	RegistrationKey string   `json:"registrationKey,omitempty"`
}

type response struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []domain.SeriesData `json:"series"`
	} `json:"Results"`
}
