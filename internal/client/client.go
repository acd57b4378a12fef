// Package client reads the dashboard API and caches each resource until it is
// invalidated.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

// Resource paths, also used as cache keys.
const (
	KeyMetrics        = "/api/metrics"
	KeyCampaigns      = "/api/campaigns"
	KeyRevenueData    = "/api/revenue-data"
	KeyTrafficSources = "/api/traffic-sources"
)

// DashboardKeys are the caches a refresh invalidates.
var DashboardKeys = []string{KeyMetrics, KeyCampaigns, KeyRevenueData, KeyTrafficSources}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// StatusError is a non-2xx answer. Message carries the server's "message"
// field when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("non-2xx: %d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("non-2xx: %d", e.Code)
}

type API struct {
	base    string
	c       HTTPClient
	backoff utils.Backoff
}

// NewAPI builds a client for baseURL. Transport errors and 5xx answers are
// retried with bo; 4xx answers are not.
func NewAPI(baseURL string, c HTTPClient, bo utils.Backoff) (*API, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q needs scheme and host", baseURL)
	}
	return &API{base: strings.TrimRight(baseURL, "/"), c: c, backoff: bo}, nil
}

func (a *API) Metrics(ctx context.Context) (*models.MetricsSnapshot, error) {
	var m *models.MetricsSnapshot
	if err := a.getJSON(ctx, KeyMetrics, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (a *API) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	var cs []models.Campaign
	if err := a.getJSON(ctx, KeyCampaigns, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (a *API) RevenueData(ctx context.Context) ([]models.RevenuePoint, error) {
	var ps []models.RevenuePoint
	if err := a.getJSON(ctx, KeyRevenueData, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (a *API) TrafficSources(ctx context.Context) ([]models.TrafficSource, error) {
	var ts []models.TrafficSource
	if err := a.getJSON(ctx, KeyTrafficSources, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// Export downloads the export file in format ("json" or "csv").
func (a *API) Export(ctx context.Context, format string) ([]byte, error) {
	var body []byte
	err := a.backoff.Do(ctx, func(int) error {
		resp, err := a.get(ctx, "/api/export?format="+url.QueryEscape(format))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := checkStatus(resp); err != nil {
			return err
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return body, nil
}

func (a *API) getJSON(ctx context.Context, path string, v any) error {
	err := a.backoff.Do(ctx, func(int) error {
		resp, err := a.get(ctx, path)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := checkStatus(resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return utils.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

func (a *API) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+path, nil)
	if err != nil {
		return nil, utils.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	return a.c.Do(req)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	serr := &StatusError{Code: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1024)).Decode(&body); err == nil {
		serr.Message = body.Message
	}
	if resp.StatusCode < 500 {
		return utils.Permanent(serr)
	}
	return serr
}

// IsStatus reports whether err carries an HTTP status code.
func IsStatus(err error, code int) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.Code == code
}
