package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// MetricsSnapshot is the single current headline record. It is replaced as a
// whole, never merged.
type MetricsSnapshot struct {
	ID               string          `json:"id"`
	Revenue          decimal.Decimal `json:"revenue"`
	Users            int             `json:"users"`
	Conversions      int             `json:"conversions"`
	GrowthRate       decimal.Decimal `json:"growthRate"`
	RevenueGrowth    decimal.Decimal `json:"revenueGrowth"`
	UserGrowth       decimal.Decimal `json:"userGrowth"`
	ConversionGrowth decimal.Decimal `json:"conversionGrowth"`
	Date             time.Time       `json:"date"`
}

type Campaign struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Status      CampaignStatus  `json:"status"`
	Impressions int             `json:"impressions"`
	Clicks      int             `json:"clicks"`
	CTR         decimal.Decimal `json:"ctr"`
	Spend       decimal.Decimal `json:"spend"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type RevenuePoint struct {
	ID      string          `json:"id"`
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TrafficSource struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Percentage decimal.Decimal `json:"percentage"`
	Color      string          `json:"color"`
}

// Insert payloads: everything but the server-assigned fields. Request bodies
// arrive as the *Input types in input.go and are converted once validated.

type NewMetrics struct {
	Revenue          decimal.Decimal
	Users            int
	Conversions      int
	GrowthRate       decimal.Decimal
	RevenueGrowth    decimal.Decimal
	UserGrowth       decimal.Decimal
	ConversionGrowth decimal.Decimal
}

type NewCampaign struct {
	Name        string
	Category    string
	Status      CampaignStatus
	Impressions int
	Clicks      int
	CTR         decimal.Decimal
	Spend       decimal.Decimal
}

type NewRevenuePoint struct {
	Month   string
	Revenue decimal.Decimal
}

type NewTrafficSource struct {
	Source     string
	Percentage decimal.Decimal
	Color      string
}

// Export is the JSON envelope served by the export endpoint.
type Export struct {
	Metrics    *MetricsSnapshot `json:"metrics"`
	Campaigns  []Campaign       `json:"campaigns"`
	ExportedAt string           `json:"exportedAt"`
}

type Health struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Version     string  `json:"version"`
	Environment string  `json:"environment"`
}

// HealthFailure is the body of a 503 from the health endpoint.
type HealthFailure struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
