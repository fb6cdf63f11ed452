package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medi-elevation/internal/edit"
	"medi-elevation/internal/elevation"
	"medi-elevation/internal/types"
)

// GetPointElevationInput defines the query parameters for the point elevation endpoint
type GetPointElevationInput struct {
	Latitude  *float64 `form:"latitude" binding:"required,min=-90,max=90"`    // Latitude in decimal degrees
	Longitude *float64 `form:"longitude" binding:"required,min=-180,max=180"` // Longitude in decimal degrees
}

// PointElevationResponse is the elevation of a single coordinate
type PointElevationResponse struct {
	types.Coords
	Elevation types.Elevation `json:"elevation"`
	Provider  string          `json:"provider" example:"usgs"`
}

// BatchPointInput is one point of a batch request
type BatchPointInput struct {
	ID        string   `json:"id" binding:"required" example:"node/1234"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90" example:"39.11539"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180" example:"-107.6584"`
}

// BuildEditBatchInput is the body of the batch endpoint
type BuildEditBatchInput struct {
	Points []BatchPointInput `json:"points" binding:"dive"`
}

// BuildEditBatchResponse carries the batch, if any point resolved, and one
// diagnostic per point that did not
type BuildEditBatchResponse struct {
	Batch       *edit.EditBatch   `json:"batch"`
	Diagnostics []edit.Diagnostic `json:"diagnostics"`
	Message     string            `json:"message,omitempty" example:"no elevation data could be resolved"`
}

// handleGetPointElevation godoc
// @Summary Get point elevation
// @Description Look up the elevation of a single coordinate in meters (and feet)
// @Tags elevation
// @Produce json
// @Param latitude query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(39.11539)
// @Param longitude query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(-107.65840)
// @Success 200 {object} PointElevationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /elevation/point [get]
func (app *App) handleGetPointElevation(c *gin.Context) {
	var input GetPointElevationInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coords := types.NewCoords(*input.Latitude, *input.Longitude)

	meters, err := app.resolver.Resolve(c.Request.Context(), coords)
	if err != nil {
		if errors.Is(err, elevation.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		// Resolver already logged the failure
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, PointElevationResponse{
		Coords:    coords,
		Elevation: types.NewElevationFromMeters(meters),
		Provider:  app.provider,
	})
}

// handleBuildEditBatch godoc
// @Summary Build an elevation edit batch
// @Description Resolve every point and return one reversible batch of "ele" edits. Points that fail are reported as diagnostics and left out of the batch.
// @Tags elevation
// @Accept json
// @Produce json
// @Param request body BuildEditBatchInput true "Points to resolve"
// @Success 200 {object} BuildEditBatchResponse
// @Failure 400 {object} map[string]string
// @Router /elevation/batch [post]
func (app *App) handleBuildEditBatch(c *gin.Context) {
	var input BuildEditBatchInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points := make([]types.Point, 0, len(input.Points))
	for _, p := range input.Points {
		points = append(points, types.NewPoint(types.PointID(p.ID), *p.Latitude, *p.Longitude))
	}

	ctx := c.Request.Context()

	batch, diagnostics, err := app.coordinator.BuildEditBatch(ctx, points)
	if err != nil {
		app.logger.Warn("batch cancelled by client", "points", len(points), "error", err)
		c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error()})
		return
	}

	resp := BuildEditBatchResponse{
		Batch:       batch,
		Diagnostics: diagnostics,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []edit.Diagnostic{}
	}
	if batch == nil {
		resp.Message = "no elevation data could be resolved"
	}

	if len(points) > 0 {
		if err := app.publisher.PublishBatch(ctx, batch, diagnostics); err != nil {
			app.logger.Warn("failed to publish batch events", "error", err)
		}
	}

	c.JSON(http.StatusOK, resp)
}
