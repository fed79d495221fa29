package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	appErrors "github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase"
)

type scrapeFixture struct {
	search *MockSearchRepository
	camp   *MockCampgroundRepository
	log    *MockScrapeLogRepository
	lock   *MockLockRepository
	uc     *usecase.ScrapeUseCase
	root   domain.Region
}

func newScrapeFixture() *scrapeFixture {
	cfg := &config.ScraperConfig{
		BoundsNorth:  40,
		BoundsSouth:  36,
		BoundsEast:   -110,
		BoundsWest:   -114,
		PageSize:     10,
		MaxDepth:     2,
		Concurrency:  2,
		BranchPolicy: config.BranchBestEffort,
		RunLockTTL:   time.Hour,
	}

	logger := zap.NewNop()
	f := &scrapeFixture{
		search: &MockSearchRepository{},
		camp:   &MockCampgroundRepository{},
		log:    &MockScrapeLogRepository{},
		lock:   &MockLockRepository{},
		root:   domain.Region{North: 40, South: 36, East: -110, West: -114},
	}

	partitioner := usecase.NewPartitioner(f.search, logger, cfg)
	normalizer := usecase.NewNormalizer(nil, false, logger)
	reconciler := usecase.NewReconciler(f.camp, f.log, logger)
	f.uc = usecase.NewScrapeUseCase(partitioner, normalizer, reconciler, f.lock, logger, cfg)

	return f
}

func TestScrapeUseCase_Run_Success(t *testing.T) {
	f := newScrapeFixture()
	ctx := context.Background()

	valid := rawRecord("c1", "Camp One")
	malformed := rawRecord("c2", "") // missing name, skipped at normalization

	f.lock.On("Acquire", ctx, "scraper:full-run", time.Hour).Return(true, nil)
	f.lock.On("Release", mock.Anything, "scraper:full-run").Return(nil)
	f.search.On("Search", mock.Anything, f.root).
		Return(&domain.SearchPage{RecordCount: 2, Items: []domain.RawCampground{valid, malformed}}, nil)
	f.log.On("Create", mock.Anything, 1).Return(runningLog("log-1"), nil)
	f.camp.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Campground) bool {
		return c.ID == "c1"
	})).Return(true, nil)
	f.log.On("MarkSuccess", mock.Anything, "log-1", 1, 0).Return(nil)

	summary, err := f.uc.Run(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 0, summary.Updated)
	f.lock.AssertCalled(t, "Release", mock.Anything, "scraper:full-run")
}

func TestScrapeUseCase_Run_LockBusy(t *testing.T) {
	f := newScrapeFixture()
	ctx := context.Background()

	f.lock.On("Acquire", ctx, "scraper:full-run", time.Hour).Return(false, nil)

	summary, err := f.uc.Run(ctx)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, appErrors.ErrScrapeInProgress)
	f.search.AssertNotCalled(t, "Search")
	f.lock.AssertNotCalled(t, "Release")
}

func TestScrapeUseCase_Run_FetchFailureReleasesLock(t *testing.T) {
	f := newScrapeFixture()
	ctx := context.Background()

	f.lock.On("Acquire", ctx, "scraper:full-run", time.Hour).Return(true, nil)
	f.lock.On("Release", mock.Anything, "scraper:full-run").Return(nil)
	f.search.On("Search", mock.Anything, f.root).Return(nil, errors.New("upstream down"))

	summary, err := f.uc.Run(ctx)

	assert.Nil(t, summary)
	assert.Error(t, err)
	f.log.AssertNotCalled(t, "Create")
	f.lock.AssertCalled(t, "Release", mock.Anything, "scraper:full-run")
}

func TestScrapeUseCase_Run_ReconcileFailure(t *testing.T) {
	f := newScrapeFixture()
	ctx := context.Background()

	f.lock.On("Acquire", ctx, "scraper:full-run", time.Hour).Return(true, nil)
	f.lock.On("Release", mock.Anything, "scraper:full-run").Return(nil)
	f.search.On("Search", mock.Anything, f.root).
		Return(&domain.SearchPage{RecordCount: 1, Items: []domain.RawCampground{rawRecord("c1", "Camp One")}}, nil)
	f.log.On("Create", mock.Anything, 1).Return(runningLog("log-2"), nil)
	f.camp.On("Upsert", mock.Anything, mock.Anything).Return(false, errors.New("db down"))
	f.log.On("MarkFailed", mock.Anything, "log-2", mock.Anything).Return(nil)

	summary, err := f.uc.Run(ctx)

	assert.Nil(t, summary)
	assert.Error(t, err)
	f.lock.AssertCalled(t, "Release", mock.Anything, "scraper:full-run")
}

func TestScrapeUseCase_Trigger(t *testing.T) {
	t.Run("busy lock is reported synchronously", func(t *testing.T) {
		f := newScrapeFixture()
		ctx := context.Background()

		f.lock.On("Acquire", ctx, "scraper:full-run", time.Hour).Return(false, nil)

		err := f.uc.Trigger(ctx)

		assert.ErrorIs(t, err, appErrors.ErrScrapeInProgress)
		f.search.AssertNotCalled(t, "Search")
	})

	t.Run("accepted run executes in background and releases the lock", func(t *testing.T) {
		f := newScrapeFixture()
		ctx := context.Background()

		var released atomic.Bool

		f.lock.On("Acquire", ctx, "scraper:full-run", time.Hour).Return(true, nil)
		f.lock.On("Release", mock.Anything, "scraper:full-run").
			Run(func(mock.Arguments) { released.Store(true) }).Return(nil)
		f.search.On("Search", mock.Anything, f.root).
			Return(&domain.SearchPage{RecordCount: 0, Items: nil}, nil)
		f.log.On("Create", mock.Anything, 0).Return(runningLog("log-3"), nil)
		f.log.On("MarkSuccess", mock.Anything, "log-3", 0, 0).Return(nil)

		err := f.uc.Trigger(ctx)

		assert.NoError(t, err)
		assert.Eventually(t, released.Load, 2*time.Second, 10*time.Millisecond)
	})
}
