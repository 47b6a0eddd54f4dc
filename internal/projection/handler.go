package projection

import (
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/project-tally/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the rating read routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/items/:item_id/rating", s.HandleGetRating)
}

// HandleGetRating handles GET /v1/items/:item_id/rating.
func (s *Service) HandleGetRating(c *gin.Context) {
	var uri struct {
		ItemID string `uri:"item_id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.GetRating(c.Request.Context(), uri.ItemID)
	if err != nil {
		slog.Error("Failed to read rating aggregate", "item_id", uri.ItemID, "error", err)
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnavailableError,
			Message:   "Rating temporarily unavailable",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
