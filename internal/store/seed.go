package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedCampaigns is the reference campaign set loaded at startup.
func SeedCampaigns() []models.NewCampaign {
	return []models.NewCampaign{
		{Name: "Summer Sale 2024", Category: "Fashion & Lifestyle", Status: models.StatusActive, Impressions: 2847392, Clicks: 142847, CTR: dec("5.02"), Spend: dec("12847.00")},
		{Name: "Holiday Promotion", Category: "E-commerce", Status: models.StatusPaused, Impressions: 1524186, Clicks: 76294, CTR: dec("5.01"), Spend: dec("8492.00")},
		{Name: "Brand Awareness Q2", Category: "Technology", Status: models.StatusActive, Impressions: 3924847, Clicks: 196247, CTR: dec("5.00"), Spend: dec("18942.00")},
		{Name: "Mobile App Install", Category: "Mobile Apps", Status: models.StatusCompleted, Impressions: 892475, Clicks: 44624, CTR: dec("5.00"), Spend: dec("5294.00")},
	}
}

// Seed loads the sample dashboard: one metrics snapshot, four campaigns,
// Jan..Jul revenue and four traffic sources.
func Seed(ctx context.Context, w Writer) error {
	if _, err := w.CreateMetrics(ctx, models.NewMetrics{
		Revenue:          dec("847326.00"),
		Users:            124582,
		Conversions:      18247,
		GrowthRate:       dec("23.8"),
		RevenueGrowth:    dec("12.5"),
		UserGrowth:       dec("8.2"),
		ConversionGrowth: dec("15.3"),
	}); err != nil {
		return fmt.Errorf("seed metrics: %w", err)
	}
	for _, c := range SeedCampaigns() {
		if _, err := w.CreateCampaign(ctx, c); err != nil {
			return fmt.Errorf("seed campaign %q: %w", c.Name, err)
		}
	}
	for _, p := range []models.NewRevenuePoint{
		{Month: "Jan", Revenue: dec("65000.00")},
		{Month: "Feb", Revenue: dec("72000.00")},
		{Month: "Mar", Revenue: dec("68000.00")},
		{Month: "Apr", Revenue: dec("74000.00")},
		{Month: "May", Revenue: dec("82000.00")},
		{Month: "Jun", Revenue: dec("78000.00")},
		{Month: "Jul", Revenue: dec("85000.00")},
	} {
		if _, err := w.CreateRevenuePoint(ctx, p); err != nil {
			return fmt.Errorf("seed revenue %s: %w", p.Month, err)
		}
	}
	for _, t := range []models.NewTrafficSource{
		{Source: "Organic Search", Percentage: dec("45.2"), Color: "#3b82f6"},
		{Source: "Social Media", Percentage: dec("28.7"), Color: "#10b981"},
		{Source: "Paid Ads", Percentage: dec("16.8"), Color: "#8b5cf6"},
		{Source: "Direct", Percentage: dec("9.3"), Color: "#f59e0b"},
	} {
		if _, err := w.CreateTrafficSource(ctx, t); err != nil {
			return fmt.Errorf("seed traffic source %s: %w", t.Source, err)
		}
	}
	return nil
}
