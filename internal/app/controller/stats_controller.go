package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillora/skillora-backend/internal/app/service"
	apperrors "github.com/skillora/skillora-backend/internal/errors"
	"github.com/skillora/skillora-backend/internal/middleware"
)

type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// GetBaseInfo returns the public platform statistics
// GET /api/base-info/
func (ctrl *StatsController) GetBaseInfo(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	info, err := ctrl.statsService.BaseInfo()
	if err != nil {
		log.Error("Failed to compute base info", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "base info")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review_count":           info.ReviewCount,
		"average_rating":         info.AverageRating,
		"business_profile_count": info.BusinessProfileCount,
		"offer_count":            info.OfferCount,
	})
}
