package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
)

// Partitioner decomposes a root region into a quadtree of bounding boxes
// sized so that each box's reported match count stays within the search
// API's page capacity.
//
// Guarantees:
//   - results are concatenated in NW, NE, SW, SE traversal order at every
//     split, independent of fetch scheduling;
//   - no subdivision happens below a region whose count fits the capacity;
//   - recursion never passes maxDepth - at the bottom the page is accepted
//     even when the count is still over capacity (deliberately lossy);
//   - a degenerate (zero-area) bisection stops the branch.
type Partitioner struct {
	search      repository.SearchRepository
	logger      *zap.Logger
	capacity    int
	maxDepth    int
	concurrency int
	policy      config.BranchPolicy
}

func NewPartitioner(
	search repository.SearchRepository,
	logger *zap.Logger,
	cfg *config.ScraperConfig,
) *Partitioner {
	return &Partitioner{
		search:      search,
		logger:      logger,
		capacity:    cfg.PageSize,
		maxDepth:    cfg.MaxDepth,
		concurrency: cfg.Concurrency,
		policy:      cfg.BranchPolicy,
	}
}

// Partition walks the quadtree rooted at region and returns every raw
// record fetched, in deterministic traversal order. A fetch failure at
// the root always fails the walk; deeper failures follow the configured
// branch policy.
func (p *Partitioner) Partition(ctx context.Context, region domain.Region) ([]domain.RawCampground, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("invalid root region: north=%f south=%f east=%f west=%f",
			region.North, region.South, region.East, region.West)
	}

	// One semaphore for the whole walk keeps total in-flight queries
	// bounded no matter how deep the tree fans out.
	sem := make(chan struct{}, p.concurrency)
	return p.walk(ctx, region, 0, sem)
}

func (p *Partitioner) walk(ctx context.Context, region domain.Region, depth int, sem chan struct{}) ([]domain.RawCampground, error) {
	page, err := p.fetch(ctx, region, sem)
	if err != nil {
		return nil, err
	}

	if page.RecordCount <= p.capacity {
		return page.Items, nil
	}

	if depth >= p.maxDepth {
		// Accept the truncated page instead of recursing forever.
		p.logger.Warn("Region still over capacity at max depth, accepting truncated page",
			zap.Int("depth", depth),
			zap.Int("record_count", page.RecordCount),
			zap.Int("capacity", p.capacity),
			zap.Any("region", region))
		return page.Items, nil
	}

	quadrants := region.Quadrants()
	for _, q := range quadrants {
		if q.IsDegenerate() {
			// Float midpoints stopped moving; the branch cannot shrink.
			p.logger.Warn("Degenerate bisection, keeping parent page",
				zap.Int("depth", depth),
				zap.Any("region", region))
			return page.Items, nil
		}
	}

	p.logger.Debug("Subdividing region",
		zap.Int("depth", depth),
		zap.Int("record_count", page.RecordCount),
		zap.Float64("mid_lat", region.MidLat()),
		zap.Float64("mid_lon", region.MidLon()))

	// Children fetch in parallel, but each lands in its quadrant slot so
	// concatenation order never depends on completion order.
	results := make([][]domain.RawCampground, len(quadrants))
	g, gctx := errgroup.WithContext(ctx)
	for i := range quadrants {
		i := i
		child := quadrants[i]
		g.Go(func() error {
			items, err := p.walk(gctx, child, depth+1, sem)
			if err != nil {
				if p.policy == config.BranchFailFast {
					return fmt.Errorf("quadrant %d at depth %d: %w", i, depth+1, err)
				}
				p.logger.Warn("Region branch failed, continuing without it",
					zap.Int("quadrant", i),
					zap.Int("depth", depth+1),
					zap.Any("region", child),
					zap.Error(err))
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.RawCampground
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged, nil
}

func (p *Partitioner) fetch(ctx context.Context, region domain.Region, sem chan struct{}) (*domain.SearchPage, error) {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-sem }()

	return p.search.Search(ctx, region)
}
