package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/validator"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase/dto"
)

const (
	defaultListLimit = 100
	defaultLogLimit  = 50
)

// CampgroundUseCase is the read-side query surface: straight pass-through
// over the persisted store, no caching in front of it.
type CampgroundUseCase struct {
	campRepo repository.CampgroundRepository
	logRepo  repository.ScrapeLogRepository
	logger   *zap.Logger
}

func NewCampgroundUseCase(
	campRepo repository.CampgroundRepository,
	logRepo repository.ScrapeLogRepository,
	logger *zap.Logger,
) *CampgroundUseCase {
	return &CampgroundUseCase{
		campRepo: campRepo,
		logRepo:  logRepo,
		logger:   logger,
	}
}

func (uc *CampgroundUseCase) List(ctx context.Context, req dto.ListCampgroundsRequest) (*dto.ListCampgroundsResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	filter := domain.CampgroundFilter{
		Limit:     req.Limit,
		Offset:    req.Offset,
		MinRating: req.MinRating,
		Bookable:  req.Bookable,
	}
	if req.State != "" {
		filter.State = &req.State
	}
	if req.CamperType != "" {
		filter.CamperType = &req.CamperType
	}

	camps, total, err := uc.campRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list campgrounds", zap.Error(err))
		return nil, err
	}

	return &dto.ListCampgroundsResponse{
		Campgrounds: camps,
		Total:       total,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}, nil
}

func (uc *CampgroundUseCase) GetByID(ctx context.Context, id string) (*domain.Campground, error) {
	if id == "" {
		return nil, errors.ErrInvalidRequest
	}
	return uc.campRepo.GetByID(ctx, id)
}

func (uc *CampgroundUseCase) ListLogs(ctx context.Context, req dto.ListScrapeLogsRequest) (*dto.ListScrapeLogsResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	if req.Limit == 0 {
		req.Limit = defaultLogLimit
	}

	logs, err := uc.logRepo.List(ctx, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to list scrape logs", zap.Error(err))
		return nil, err
	}

	return &dto.ListScrapeLogsResponse{Logs: logs}, nil
}
