package models

import "github.com/shopspring/decimal"

// Request bodies for the create endpoints. Numeric fields are pointers so a
// missing key fails `required` instead of decoding as zero.

type MetricsInput struct {
	Revenue          *decimal.Decimal `json:"revenue" validate:"required,gte=0"`
	Users            *int             `json:"users" validate:"required,gte=0"`
	Conversions      *int             `json:"conversions" validate:"required,gte=0"`
	GrowthRate       *decimal.Decimal `json:"growthRate" validate:"required"`
	RevenueGrowth    *decimal.Decimal `json:"revenueGrowth" validate:"required"`
	UserGrowth       *decimal.Decimal `json:"userGrowth" validate:"required"`
	ConversionGrowth *decimal.Decimal `json:"conversionGrowth" validate:"required"`
}

// NewMetrics converts a validated input.
func (in MetricsInput) NewMetrics() NewMetrics {
	return NewMetrics{
		Revenue:          decOf(in.Revenue),
		Users:            intOf(in.Users),
		Conversions:      intOf(in.Conversions),
		GrowthRate:       decOf(in.GrowthRate),
		RevenueGrowth:    decOf(in.RevenueGrowth),
		UserGrowth:       decOf(in.UserGrowth),
		ConversionGrowth: decOf(in.ConversionGrowth),
	}
}

type CampaignInput struct {
	Name        string           `json:"name" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Status      CampaignStatus   `json:"status" validate:"required,oneof=active paused completed"`
	Impressions *int             `json:"impressions" validate:"required,gte=0"`
	Clicks      *int             `json:"clicks" validate:"required,gte=0"`
	CTR         *decimal.Decimal `json:"ctr" validate:"required,gte=0"`
	Spend       *decimal.Decimal `json:"spend" validate:"required,gte=0"`
}

func (in CampaignInput) NewCampaign() NewCampaign {
	return NewCampaign{
		Name:        in.Name,
		Category:    in.Category,
		Status:      in.Status,
		Impressions: intOf(in.Impressions),
		Clicks:      intOf(in.Clicks),
		CTR:         decOf(in.CTR),
		Spend:       decOf(in.Spend),
	}
}

type RevenuePointInput struct {
	Month   string           `json:"month" validate:"required"`
	Revenue *decimal.Decimal `json:"revenue" validate:"required,gte=0"`
}

func (in RevenuePointInput) NewRevenuePoint() NewRevenuePoint {
	return NewRevenuePoint{Month: in.Month, Revenue: decOf(in.Revenue)}
}

type TrafficSourceInput struct {
	Source     string           `json:"source" validate:"required"`
	Percentage *decimal.Decimal `json:"percentage" validate:"required,gte=0,lte=100"`
	Color      string           `json:"color" validate:"required"`
}

func (in TrafficSourceInput) NewTrafficSource() NewTrafficSource {
	return NewTrafficSource{Source: in.Source, Percentage: decOf(in.Percentage), Color: in.Color}
}

func intOf(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func decOf(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}
