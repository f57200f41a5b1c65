package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/okian/stormcast/pkg/logger"
)

// httpClient wraps http.Client with JSON helpers.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(cfg *Config) *httpClient {
	return &httpClient{client: &http.Client{Timeout: cfg.Timeout}, baseURL: cfg.BaseURL}
}

// do sends a request and decodes a 2xx JSON body into out when out is non-nil.
// It returns the status code and, for non-2xx answers, the API error code.
func (c *httpClient) do(ctx context.Context, method, path string, body, out any) (int, string, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, &apiErr)
		return resp.StatusCode, apiErr.Code, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Message)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, "", fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, "", nil
}

// submitForecasts posts forecasts concurrently using a worker pool.
func submitForecasts(ctx context.Context, cfg *Config, forecasts []Forecast, stats *Stats) {
	log := logger.Get().Named("simulate")
	log.Info(ctx, "submitting forecasts", logger.Int("count", len(forecasts)), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg)
	var submitted, accepted, duplicate, rejected, failed atomic.Int64

	ch := make(chan Forecast, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range ch {
				result := submitOne(ctx, client, f)
				submitted.Add(1)
				switch result {
				case resultAccepted:
					accepted.Add(1)
				case resultDuplicate:
					duplicate.Add(1)
				case resultRejected:
					rejected.Add(1)
				default:
					failed.Add(1)
				}
				if cfg.Verbose {
					log.Info(ctx, "forecast submitted",
						logger.String("username", f.Username),
						logger.String("result", result))
				}
			}
		}()
	}

	func() {
		defer close(ch)
		for _, f := range forecasts {
			select {
			case <-ctx.Done():
				return
			case ch <- f:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Accepted = int(accepted.Load())
	stats.Duplicate = int(duplicate.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())
	log.Info(ctx, "forecast submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))
}

func submitOne(ctx context.Context, client *httpClient, f Forecast) string {
	status, code, err := client.do(ctx, http.MethodPost, "/predictions", f, nil)
	switch {
	case err == nil && status == http.StatusCreated:
		return resultAccepted
	case code == "duplicate":
		return resultDuplicate
	case status == http.StatusBadRequest:
		return resultRejected
	}
	return resultFailed
}
