package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

func TestRender(t *testing.T) {
	m := &models.MetricsSnapshot{
		Revenue:          decimal.RequireFromString("847326.00"),
		Users:            124582,
		Conversions:      18247,
		GrowthRate:       decimal.RequireFromString("23.8"),
		RevenueGrowth:    decimal.RequireFromString("12.5"),
		UserGrowth:       decimal.RequireFromString("8.2"),
		ConversionGrowth: decimal.RequireFromString("15.3"),
	}
	q := DefaultQuery()
	q.SortField = SortClicks
	q.Direction = Desc
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, m, Apply(seeded(), q)))

	out := buf.String()
	assert.Contains(t, out, "847326.00")
	assert.Contains(t, out, "Showing 1 to 4 of 4 results (page 1 of 1)")
	lines := strings.Split(out, "\n")
	var first string
	for i, l := range lines {
		if strings.HasPrefix(l, "CAMPAIGN") {
			first = lines[i+1]
			break
		}
	}
	assert.True(t, strings.HasPrefix(first, "Brand Awareness Q2"), first)
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, Apply(nil, DefaultQuery())))
	assert.Contains(t, buf.String(), "Showing 0 to 0 of 0 results (page 1 of 0)")
	assert.NotContains(t, buf.String(), "Revenue")
}

func TestRenderBreakdown(t *testing.T) {
	revenue := []models.RevenuePoint{
		{Month: "Jan", Revenue: decimal.RequireFromString("65000")},
		{Month: "Feb", Revenue: decimal.RequireFromString("59000.5")},
	}
	sources := []models.TrafficSource{
		{Source: "Organic Search", Percentage: decimal.RequireFromString("35.2")},
		{Source: "Direct", Percentage: decimal.NewFromInt(28)},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderBreakdown(&buf, revenue, sources))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "MONTH  REVENUE", lines[0])
	assert.Equal(t, "Jan    $65000.00", lines[1])
	assert.Equal(t, "Feb    $59000.50", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "SOURCE          SHARE", lines[4])
	assert.Equal(t, "Organic Search  35.2%", lines[5])
	assert.Equal(t, "Direct          28.0%", lines[6])
}

func TestRenderBreakdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBreakdown(&buf, nil, nil))
	assert.Equal(t, "MONTH  REVENUE\n\nSOURCE  SHARE\n", buf.String())
}
