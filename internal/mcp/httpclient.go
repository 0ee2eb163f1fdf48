package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/storage"
	"github.com/meltforce/speedifit/internal/training"
)

// HTTPClient implements DataSource by calling the SpeediFit REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// is sent on writes.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	body, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) UserMaxes(ctx context.Context) (models.UserMaxes, error) {
	var maxes models.UserMaxes
	if err := c.getJSON(ctx, "/api/v1/maxes", nil, &maxes); err != nil {
		return nil, err
	}
	return maxes, nil
}

func (c *HTTPClient) Workouts(ctx context.Context) ([]training.HistoryEntry, error) {
	var entries []training.HistoryEntry
	if err := c.getJSON(ctx, "/api/v1/workouts", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Progress(ctx context.Context, tf training.Timeframe) (storage.Progress, error) {
	params := url.Values{}
	params.Set("range", string(tf))

	var p storage.Progress
	err := c.getJSON(ctx, "/api/v1/progress", params, &p)
	return p, err
}

func (c *HTTPClient) Home(ctx context.Context) (storage.Home, error) {
	var h storage.Home
	err := c.getJSON(ctx, "/api/v1/home", nil, &h)
	return h, err
}

func (c *HTTPClient) CreatineStatus(ctx context.Context) (storage.CreatineStatus, error) {
	var s storage.CreatineStatus
	err := c.getJSON(ctx, "/api/v1/creatine", nil, &s)
	return s, err
}

func (c *HTTPClient) LogCreatine(ctx context.Context, date calendar.Date) (storage.CreatineStatus, bool, error) {
	payload := map[string]calendar.Date{"date": date}
	body, err := c.do(ctx, http.MethodPost, "/api/v1/creatine", nil, payload)
	if err != nil {
		return storage.CreatineStatus{}, false, err
	}

	var resp struct {
		Added  bool                   `json:"added"`
		Status storage.CreatineStatus `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return storage.CreatineStatus{}, false, fmt.Errorf("httpclient: decode creatine log: %w", err)
	}
	return resp.Status, resp.Added, nil
}
