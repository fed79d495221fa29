package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/utils"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase/dto"
)

// ScrapeHandler triggers scrape runs and exposes their audit trail.
type ScrapeHandler struct {
	scrapeUC *usecase.ScrapeUseCase
	campUC   *usecase.CampgroundUseCase
	logger   *zap.Logger
}

func NewScrapeHandler(scrapeUC *usecase.ScrapeUseCase, campUC *usecase.CampgroundUseCase, logger *zap.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		scrapeUC: scrapeUC,
		campUC:   campUC,
		logger:   logger,
	}
}

// TriggerRun godoc
// @Summary Trigger a scrape run
// @Description Starts one asynchronous full scrape. Returns 409 when a run is already in progress.
// @Tags Scrape
// @Accept json
// @Produce json
// @Success 202 {object} utils.SuccessResponse{data=dto.ScrapeTriggerResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/scrape/run [post]
func (h *ScrapeHandler) TriggerRun(c *fiber.Ctx) error {
	if err := h.scrapeUC.Trigger(c.Context()); err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{
		Data: dto.ScrapeTriggerResponse{Status: "accepted"},
	})
}

// ListLogs godoc
// @Summary List scrape runs
// @Description Returns the most recent scrape run logs, newest first.
// @Tags Scrape
// @Accept json
// @Produce json
// @Param limit query int false "Maximum rows (max 500)" default(50)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListScrapeLogsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/scrape/logs [get]
func (h *ScrapeHandler) ListLogs(c *fiber.Ctx) error {
	var req dto.ListScrapeLogsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid query parameters"})
	}

	result, err := h.campUC.ListLogs(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
