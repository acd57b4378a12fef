package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrIDExhausted means the id generator kept returning ids already in use.
	ErrIDExhausted = errors.New("no unused id after repeated draws")
)

const maxIDDraws = 8

// Reader is what the HTTP layer needs from a record store.
type Reader interface {
	Metrics(ctx context.Context) (*models.MetricsSnapshot, error)
	Campaigns(ctx context.Context) ([]models.Campaign, error)
	RevenueData(ctx context.Context) ([]models.RevenuePoint, error)
	TrafficSources(ctx context.Context) ([]models.TrafficSource, error)
	Campaign(ctx context.Context, id string) (models.Campaign, error)
}

type Writer interface {
	CreateMetrics(ctx context.Context, in models.NewMetrics) (models.MetricsSnapshot, error)
	CreateCampaign(ctx context.Context, in models.NewCampaign) (models.Campaign, error)
	CreateRevenuePoint(ctx context.Context, in models.NewRevenuePoint) (models.RevenuePoint, error)
	CreateTrafficSource(ctx context.Context, in models.NewTrafficSource) (models.TrafficSource, error)
}

type Store interface {
	Reader
	Writer
}

// ordered keeps records keyed by id while remembering insertion order.
type ordered[T any] struct {
	byID  map[string]int
	items []T
}

func newOrdered[T any]() ordered[T] {
	return ordered[T]{byID: make(map[string]int)}
}

func (o *ordered[T]) add(id string, v T) {
	o.byID[id] = len(o.items)
	o.items = append(o.items, v)
}

func (o *ordered[T]) get(id string) (T, bool) {
	i, ok := o.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return o.items[i], true
}

func (o *ordered[T]) has(id string) bool {
	_, ok := o.byID[id]
	return ok
}

func (o *ordered[T]) snapshot() []T {
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}

type MemoryStore struct {
	mu        sync.RWMutex
	metrics   *models.MetricsSnapshot
	campaigns ordered[models.Campaign]
	revenue   ordered[models.RevenuePoint]
	traffic   ordered[models.TrafficSource]

	now   func() time.Time
	newID func() string
}

type Option func(*MemoryStore)

// WithClock overrides the timestamp source for created records.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithIDs overrides the identifier generator.
func WithIDs(gen func() string) Option {
	return func(s *MemoryStore) { s.newID = gen }
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		campaigns: newOrdered[models.Campaign](),
		revenue:   newOrdered[models.RevenuePoint](),
		traffic:   newOrdered[models.TrafficSource](),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *MemoryStore) Metrics(ctx context.Context) (*models.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.metrics == nil {
		return nil, nil
	}
	m := *s.metrics
	return &m, nil
}

func (s *MemoryStore) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campaigns.snapshot(), nil
}

func (s *MemoryStore) RevenueData(ctx context.Context) ([]models.RevenuePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue.snapshot(), nil
}

func (s *MemoryStore) TrafficSources(ctx context.Context) ([]models.TrafficSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.traffic.snapshot(), nil
}

func (s *MemoryStore) Campaign(ctx context.Context, id string) (models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return models.Campaign{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns.get(id)
	if !ok {
		return models.Campaign{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) CampaignCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.campaigns.items)
}

// CreateMetrics replaces the current snapshot wholesale.
func (s *MemoryStore) CreateMetrics(ctx context.Context, in models.NewMetrics) (models.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.MetricsSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.MetricsSnapshot{
		ID:               s.newID(),
		Revenue:          in.Revenue,
		Users:            in.Users,
		Conversions:      in.Conversions,
		GrowthRate:       in.GrowthRate,
		RevenueGrowth:    in.RevenueGrowth,
		UserGrowth:       in.UserGrowth,
		ConversionGrowth: in.ConversionGrowth,
		Date:             s.now().UTC(),
	}
	s.metrics = &m
	return m, nil
}

func (s *MemoryStore) CreateCampaign(ctx context.Context, in models.NewCampaign) (models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return models.Campaign{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := uniqueID(s.newID, s.campaigns.has)
	if err != nil {
		return models.Campaign{}, err
	}
	c := models.Campaign{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Status:      in.Status,
		Impressions: in.Impressions,
		Clicks:      in.Clicks,
		CTR:         in.CTR,
		Spend:       in.Spend,
		CreatedAt:   s.now().UTC(),
	}
	s.campaigns.add(c.ID, c)
	return c, nil
}

func (s *MemoryStore) CreateRevenuePoint(ctx context.Context, in models.NewRevenuePoint) (models.RevenuePoint, error) {
	if err := ctx.Err(); err != nil {
		return models.RevenuePoint{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := uniqueID(s.newID, s.revenue.has)
	if err != nil {
		return models.RevenuePoint{}, err
	}
	p := models.RevenuePoint{ID: id, Month: in.Month, Revenue: in.Revenue}
	s.revenue.add(p.ID, p)
	return p, nil
}

func (s *MemoryStore) CreateTrafficSource(ctx context.Context, in models.NewTrafficSource) (models.TrafficSource, error) {
	if err := ctx.Err(); err != nil {
		return models.TrafficSource{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := uniqueID(s.newID, s.traffic.has)
	if err != nil {
		return models.TrafficSource{}, err
	}
	t := models.TrafficSource{ID: id, Source: in.Source, Percentage: in.Percentage, Color: in.Color}
	s.traffic.add(t.ID, t)
	return t, nil
}

// uniqueID draws ids until one is unused, giving up after maxIDDraws.
// Callers hold the write lock.
func uniqueID(gen func() string, taken func(string) bool) (string, error) {
	for range maxIDDraws {
		id := gen()
		if !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
