package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse is the liveness reply, naming the elevation source in use
type PingResponse struct {
	Message  string `json:"message" example:"pong"`   // Always "pong"
	Provider string `json:"provider" example:"usgs"` // Configured elevation provider
}

// handlePing godoc
// @Summary Liveness check
// @Description Reports that the elevation API is up and which elevation provider it resolves against. Does not call the provider.
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:  "pong",
		Provider: app.provider,
	})
}
