package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

func fixedClock() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }

func TestSeedLoadsReferenceData(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, Seed(ctx, st))

	m, err := st.Metrics(ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.Revenue.Equal(decimal.RequireFromString("847326")))
	assert.Equal(t, 124582, m.Users)

	cs, err := st.Campaigns(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 4)
	assert.Equal(t, "Summer Sale 2024", cs[0].Name)
	assert.Equal(t, "Mobile App Install", cs[3].Name)

	rev, err := st.RevenueData(ctx)
	require.NoError(t, err)
	require.Len(t, rev, 7)
	assert.Equal(t, "Jan", rev[0].Month)
	assert.Equal(t, "Jul", rev[6].Month)

	ts, err := st.TrafficSources(ctx)
	require.NoError(t, err)
	require.Len(t, ts, 4)
	assert.Equal(t, "#f59e0b", ts[3].Color)
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	m, err := st.Metrics(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)
	cs, err := st.Campaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestCreateCampaignAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(WithClock(fixedClock))
	c, err := st.CreateCampaign(ctx, SeedCampaigns()[0])
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, fixedClock(), c.CreatedAt)

	got, err := st.Campaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = st.Campaign(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMetricsReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	_, err := st.CreateMetrics(ctx, models.NewMetrics{Revenue: decimal.NewFromInt(10), Users: 1, GrowthRate: decimal.NewFromInt(3)})
	require.NoError(t, err)
	second, err := st.CreateMetrics(ctx, models.NewMetrics{Revenue: decimal.NewFromInt(20), Users: 2})
	require.NoError(t, err)

	m, err := st.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, m.ID)
	assert.Equal(t, 2, m.Users)
	assert.True(t, m.GrowthRate.IsZero(), "fields must not be merged from the previous snapshot")
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, Seed(ctx, st))

	cs, _ := st.Campaigns(ctx)
	cs[0].Name = "mutated"
	m, _ := st.Metrics(ctx)
	m.Users = -1

	again, _ := st.Campaigns(ctx)
	assert.Equal(t, "Summer Sale 2024", again[0].Name)
	m2, _ := st.Metrics(ctx)
	assert.Equal(t, 124582, m2.Users)
}

func TestDuplicateIDsAreRedrawn(t *testing.T) {
	ids := []string{"a", "a", "b"}
	var i int
	st := NewMemoryStore(WithIDs(func() string { id := ids[i]; i++; return id }))
	ctx := context.Background()
	first, err := st.CreateRevenuePoint(ctx, models.NewRevenuePoint{Month: "Jan"})
	require.NoError(t, err)
	second, err := st.CreateRevenuePoint(ctx, models.NewRevenuePoint{Month: "Jan"})
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestStuckIDGeneratorFails(t *testing.T) {
	ctx := context.Background()
	var draws int
	st := NewMemoryStore(WithIDs(func() string { draws++; return "same" }))

	_, err := st.CreateCampaign(ctx, models.NewCampaign{Name: "a", Category: "x", Status: models.StatusActive})
	require.NoError(t, err)
	draws = 0
	_, err = st.CreateCampaign(ctx, models.NewCampaign{Name: "b", Category: "x", Status: models.StatusActive})
	require.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, maxIDDraws, draws)
	assert.Equal(t, 1, st.CampaignCount())

	_, err = st.CreateTrafficSource(ctx, models.NewTrafficSource{Source: "s"})
	require.NoError(t, err)
	_, err = st.CreateTrafficSource(ctx, models.NewTrafficSource{Source: "s"})
	require.ErrorIs(t, err, ErrIDExhausted)
	ts, _ := st.TrafficSources(ctx)
	assert.Len(t, ts, 1)

	// the lock is released on failure
	_, err = st.Campaigns(ctx)
	assert.NoError(t, err)
}

func TestConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := st.CreateCampaign(ctx, models.NewCampaign{Name: fmt.Sprintf("c%d", i), Category: "x", Status: models.StatusActive})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	cs, err := st.Campaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, cs, 50)
	assert.Equal(t, 50, st.CampaignCount())
	seen := map[string]bool{}
	for _, c := range cs {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := NewMemoryStore()
	_, err := st.Campaigns(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = st.CreateCampaign(ctx, SeedCampaigns()[0])
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, st.CampaignCount())
}
