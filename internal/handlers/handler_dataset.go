package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kushalbajje/expense-management/internal/apperrors"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/middleware"
	"github.com/kushalbajje/expense-management/internal/models"
	"github.com/kushalbajje/expense-management/internal/utils/mapping"
)

// datasetHandler handles whole-store operations.
type datasetHandler struct {
	datasetService portssvc.DatasetSvcFacade
}

// RegisterDatasetRoutes registers routes that load, reset and export the store.
func RegisterDatasetRoutes(rg *gin.RouterGroup, datasetService portssvc.DatasetSvcFacade) {
	h := &datasetHandler{datasetService: datasetService}

	dataset := rg.Group("/dataset")
	{
		dataset.GET("", h.summary)
		dataset.POST("/mock", h.loadMockData)
		dataset.POST("/reset", h.reset)
		dataset.GET("/snapshot", h.exportSnapshot)
		dataset.PUT("/snapshot", h.loadSnapshot)
	}
}

// summary godoc
// @Summary Summarize the store
// @Tags dataset
// @Produce  json
// @Success 200 {object} dto.DatasetSummaryResponse
// @Security BearerAuth
// @Router /dataset [get]
func (h *datasetHandler) summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.datasetService.Summary(c.Request.Context()))
}

// loadMockData godoc
// @Summary Replace the store with generated sample data
// @Description An empty body uses the configured dataset shape.
// @Tags dataset
// @Accept  json
// @Produce  json
// @Param   request body dto.LoadMockDataRequest false "Dataset shape"
// @Success 200 {object} dto.DatasetSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dataset/mock [post]
func (h *datasetHandler) loadMockData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoadMockDataRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to load sample data", slog.Int("users", req.Users), slog.Uint64("seed", req.Seed))
	summary, err := h.datasetService.LoadMockData(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "load sample data")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// reset godoc
// @Summary Empty the store
// @Tags dataset
// @Produce  json
// @Success 200 {object} dto.DatasetSummaryResponse
// @Security BearerAuth
// @Router /dataset/reset [post]
func (h *datasetHandler) reset(c *gin.Context) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received request to reset the store")
	summary, err := h.datasetService.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err, "reset store")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// exportSnapshot godoc
// @Summary Export the whole store
// @Tags dataset
// @Produce  json
// @Success 200 {object} models.Snapshot
// @Security BearerAuth
// @Router /dataset/snapshot [get]
func (h *datasetHandler) exportSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, mapping.ToModelSnapshot(h.datasetService.ExportSnapshot(c.Request.Context())))
}

// loadSnapshot godoc
// @Summary Replace the store with a snapshot
// @Description The snapshot must be internally consistent: aggregates, memberships and references are checked before it is installed.
// @Tags dataset
// @Accept  json
// @Produce  json
// @Param   request body models.Snapshot true "Snapshot"
// @Success 200 {object} dto.DatasetSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dataset/snapshot [put]
func (h *datasetHandler) loadSnapshot(c *gin.Context) {
	var wire models.Snapshot
	if err := c.ShouldBindJSON(&wire); err != nil {
		respondBindError(c, err)
		return
	}

	snap, err := mapping.ToDomainSnapshot(wire)
	if err != nil {
		respondError(c, apperrors.NewValidationError("snapshot", err.Error()), "load snapshot")
		return
	}
	summary, err := h.datasetService.LoadSnapshot(c.Request.Context(), snap)
	if err != nil {
		respondError(c, err, "load snapshot")
		return
	}
	c.JSON(http.StatusOK, summary)
}
