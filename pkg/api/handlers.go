package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/roster"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Logger *zap.Logger
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SolveRoster solves a roster from the request payload alone. A model that
// cannot be satisfied is not an HTTP error in the transport sense, so it
// comes back as 422 with the reasons.
func (h *Handler) SolveRoster(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := roster.Generate(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !res.Solved {
		h.Logger.Warn("Solve request could not be satisfied",
			zap.String("status", res.Status.String()),
			zap.Strings("errors", res.Errors))
		c.JSON(http.StatusUnprocessableEntity, UnsolvableResponse{
			Solved: false,
			Status: res.Status.String(),
			Errors: res.Errors,
		})
		return
	}

	h.Logger.Info("Solve request satisfied",
		zap.String("status", res.Status.String()),
		zap.Int("assignments", len(res.Rows)),
		zap.Float64("points_spread", res.Spread))

	c.JSON(http.StatusOK, solveResponse(res))
}
