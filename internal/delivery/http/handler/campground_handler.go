package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/utils"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase/dto"
)

// CampgroundHandler serves the read-side campground endpoints.
type CampgroundHandler struct {
	campUC *usecase.CampgroundUseCase
	logger *zap.Logger
}

func NewCampgroundHandler(campUC *usecase.CampgroundUseCase, logger *zap.Logger) *CampgroundHandler {
	return &CampgroundHandler{
		campUC: campUC,
		logger: logger,
	}
}

// List godoc
// @Summary List campgrounds
// @Description Returns a filtered page of scraped campgrounds ordered by name.
// @Tags Campgrounds
// @Accept json
// @Produce json
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param offset query int false "Page offset" default(0)
// @Param state query string false "Filter by state (administrative area), e.g. Colorado"
// @Param min_rating query number false "Minimum rating (0-5)"
// @Param bookable query bool false "Filter by bookability"
// @Param camper_type query string false "Filter by camper type, e.g. rv"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListCampgroundsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/campgrounds [get]
func (h *CampgroundHandler) List(c *fiber.Ctx) error {
	var req dto.ListCampgroundsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid query parameters"})
	}

	result, err := h.campUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

// GetByID godoc
// @Summary Get one campground
// @Description Returns a single campground with its camper types, accommodation types and photos.
// @Tags Campgrounds
// @Accept json
// @Produce json
// @Param id path string true "Campground ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Campground}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/campgrounds/{id} [get]
func (h *CampgroundHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	camp, err := h.campUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, camp, nil)
}
