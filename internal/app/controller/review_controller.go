package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/internal/app/service"
	apperrors "github.com/skillora/skillora-backend/internal/errors"
	"github.com/skillora/skillora-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	BusinessUser uint   `json:"business_user" binding:"required"`
	Rating       int    `json:"rating" binding:"required"`
	Description  string `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

func reviewResponse(r *model.Review) gin.H {
	return gin.H{
		"id":            r.ID,
		"business_user": r.BusinessUserID,
		"reviewer":      r.ReviewerID,
		"rating":        r.Rating,
		"description":   r.Description,
		"created_at":    r.CreatedAt,
		"updated_at":    r.UpdatedAt,
	}
}

// GetAllReviews returns reviews, optionally filtered and ordered
// GET /api/reviews/
func (ctrl *ReviewController) GetAllReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var filter repository.ReviewFilter

	if raw := c.Query("business_user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid business_user_id filter", map[string]interface{}{
				"business_user_id": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "business_user_id must be a number.")
			return
		}
		businessUserID := uint(id)
		filter.BusinessUserID = &businessUserID
	}

	if raw := c.Query("reviewer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid reviewer_id filter", map[string]interface{}{
				"reviewer_id": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "reviewer_id must be a number.")
			return
		}
		reviewerID := uint(id)
		filter.ReviewerID = &reviewerID
	}

	// Ordering accepts updated_at and rating; anything else falls back
	// to newest-first.
	switch c.Query("ordering") {
	case "updated_at":
		filter.SortBy = repository.ReviewSortUpdatedAt
		filter.SortAscending = true
	case "-updated_at":
		filter.SortBy = repository.ReviewSortUpdatedAt
	case "rating":
		filter.SortBy = repository.ReviewSortRating
		filter.SortAscending = true
	case "-rating":
		filter.SortBy = repository.ReviewSortRating
	default:
		filter.SortBy = repository.ReviewSortCreatedAt
	}

	reviews, err := ctrl.reviewService.List(filter)
	if err != nil {
		log.Error("Failed to list reviews", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list reviews")
		return
	}

	out := make([]gin.H, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviewResponse(&reviews[i]))
	}

	log.Info("Reviews fetched successfully", map[string]interface{}{
		"count": len(out),
	})

	c.JSON(http.StatusOK, out)
}

// CreateReview posts a review for a business user (customers only)
// POST /api/reviews/
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated review creation attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	log.Debug("Creating review", map[string]interface{}{
		"reviewer_id":      userID,
		"business_user_id": req.BusinessUser,
		"rating":           req.Rating,
	})

	review, err := ctrl.reviewService.Create(userID, req.BusinessUser, req.Rating, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			log.Warn("Review creation denied: profile not found", map[string]interface{}{
				"reviewer_id": userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzForbidden, "UserProfile not found.")
		case errors.Is(err, service.ErrNotCustomerUser):
			log.Warn("Review creation denied: not a customer", map[string]interface{}{
				"reviewer_id": userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzCustomerOnly, "Only users with a customer profile may create reviews.")
		case errors.Is(err, service.ErrUserNotFound):
			log.Warn("Review creation failed: business user not found", map[string]interface{}{
				"business_user_id": req.BusinessUser,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrDuplicateReview):
			log.Warn("Review creation rejected: duplicate", map[string]interface{}{
				"reviewer_id":      userID,
				"business_user_id": req.BusinessUser,
			})
			apperrors.BadRequest(c, apperrors.ReviewAlreadyExists, "You have already reviewed this business user.")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"reviewer_id":      userID,
				"business_user_id": req.BusinessUser,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create review")
		}
		return
	}

	log.Info("Review created successfully", map[string]interface{}{
		"review_id":        review.ID,
		"reviewer_id":      userID,
		"business_user_id": req.BusinessUser,
	})

	c.JSON(http.StatusCreated, reviewResponse(review))
}

// UpdateReview patches a review (reviewer only)
// PATCH /api/reviews/:id/
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid review ID format", map[string]interface{}{
			"review_id": idStr,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated review update attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review update request", map[string]interface{}{
			"review_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	patch := service.ReviewPatch{
		Rating:      req.Rating,
		Description: req.Description,
	}

	review, err := ctrl.reviewService.Update(uint(id), userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			log.Warn("Review not found for update", map[string]interface{}{
				"review_id": id,
			})
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found.")
		case errors.Is(err, service.ErrNotOwner):
			log.Warn("Review update denied: not the reviewer", map[string]interface{}{
				"review_id": id,
				"user_id":   userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzOwnerOnly, "You do not have permission to edit this review.")
		default:
			log.Error("Failed to update review", err, map[string]interface{}{
				"review_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update review")
		}
		return
	}

	log.Info("Review updated successfully", map[string]interface{}{
		"review_id": review.ID,
	})

	c.JSON(http.StatusOK, reviewResponse(review))
}

// DeleteReview removes a review (reviewer only)
// DELETE /api/reviews/:id/
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid review ID format", map[string]interface{}{
			"review_id": idStr,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated review delete attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.reviewService.Delete(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			log.Warn("Review not found for delete", map[string]interface{}{
				"review_id": id,
			})
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found.")
		case errors.Is(err, service.ErrNotOwner):
			log.Warn("Review delete denied: not the reviewer", map[string]interface{}{
				"review_id": id,
				"user_id":   userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzOwnerOnly, "You do not have permission to delete this review.")
		default:
			log.Error("Failed to delete review", err, map[string]interface{}{
				"review_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete review")
		}
		return
	}

	log.Info("Review deleted successfully", map[string]interface{}{
		"review_id": id,
	})

	c.Status(http.StatusNoContent)
}
