package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
)

// MockSearchRepository is a mock of SearchRepository
type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Search(ctx context.Context, region domain.Region) (*domain.SearchPage, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchPage), args.Error(1)
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

// MockCampgroundRepository is a mock of CampgroundRepository
type MockCampgroundRepository struct {
	mock.Mock
}

func (m *MockCampgroundRepository) Upsert(ctx context.Context, camp *domain.Campground) (bool, error) {
	args := m.Called(ctx, camp)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampgroundRepository) GetByID(ctx context.Context, id string) (*domain.Campground, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campground), args.Error(1)
}

func (m *MockCampgroundRepository) List(ctx context.Context, filter domain.CampgroundFilter) ([]*domain.Campground, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Campground), args.Int(1), args.Error(2)
}

// MockScrapeLogRepository is a mock of ScrapeLogRepository
type MockScrapeLogRepository struct {
	mock.Mock
}

func (m *MockScrapeLogRepository) Create(ctx context.Context, processed int) (*domain.ScrapeLog, error) {
	args := m.Called(ctx, processed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScrapeLog), args.Error(1)
}

func (m *MockScrapeLogRepository) MarkSuccess(ctx context.Context, id string, added, updated int) error {
	args := m.Called(ctx, id, added, updated)
	return args.Error(0)
}

func (m *MockScrapeLogRepository) MarkFailed(ctx context.Context, id string, cause error) error {
	args := m.Called(ctx, id, cause)
	return args.Error(0)
}

func (m *MockScrapeLogRepository) List(ctx context.Context, limit int) ([]*domain.ScrapeLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScrapeLog), args.Error(1)
}

// MockLockRepository is a mock of LockRepository
type MockLockRepository struct {
	mock.Mock
}

func (m *MockLockRepository) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLockRepository) Release(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

func rawRecord(id, name string) domain.RawCampground {
	return domain.RawCampground{
		ID:   id,
		Type: "campground",
		Attributes: domain.RawAttributes{
			Name: name,
		},
	}
}
