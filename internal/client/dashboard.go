package client

import (
	"context"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

// Dashboard serves the four dashboard resources through a QueryCache.
type Dashboard struct {
	api   *API
	cache *QueryCache
}

func NewDashboard(api *API, cache *QueryCache) *Dashboard {
	return &Dashboard{api: api, cache: cache}
}

// Invalidate lets a refresh coordinator drive the cache.
func (d *Dashboard) Invalidate(key string) { d.cache.Invalidate(key) }

func (d *Dashboard) Cache() *QueryCache { return d.cache }

func (d *Dashboard) Metrics(ctx context.Context) (*models.MetricsSnapshot, error) {
	return cached(ctx, d.cache, KeyMetrics, d.api.Metrics)
}

func (d *Dashboard) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	return cached(ctx, d.cache, KeyCampaigns, d.api.Campaigns)
}

func (d *Dashboard) RevenueData(ctx context.Context) ([]models.RevenuePoint, error) {
	return cached(ctx, d.cache, KeyRevenueData, d.api.RevenueData)
}

func (d *Dashboard) TrafficSources(ctx context.Context) ([]models.TrafficSource, error) {
	return cached(ctx, d.cache, KeyTrafficSources, d.api.TrafficSources)
}

func cached[T any](ctx context.Context, c *QueryCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) { return fetch(ctx) })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
