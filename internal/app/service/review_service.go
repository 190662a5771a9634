package service

import (
	"errors"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("reviewer already reviewed this business user")
)

// ReviewPatch carries the patchable review fields. The rated business
// user is fixed.
type ReviewPatch struct {
	Rating      *int
	Description *string
}

type ReviewService interface {
	Create(actingUserID, businessUserID uint, rating int, description string) (*model.Review, error)
	List(filter repository.ReviewFilter) ([]model.Review, error)
	Update(reviewID, actingUserID uint, patch ReviewPatch) (*model.Review, error)
	Delete(reviewID, actingUserID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// Create persists a review after the customer and one-per-business
// checks. The existence check is advisory only; a race between two
// identical reviews is settled by the unique index, and its violation
// surfaces as the same conflict.
func (s *reviewService) Create(actingUserID, businessUserID uint, rating int, description string) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"acting_user_id":   actingUserID,
		"business_user_id": businessUserID,
		"rating":           rating,
	})

	profile, err := s.profileRepo.FindByUserID(actingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Review creation failed: profile not found", map[string]interface{}{
				"acting_user_id": actingUserID,
			})
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Type != model.TypeCustomer {
		logger.Warn("Review creation denied: not a customer", map[string]interface{}{
			"acting_user_id": actingUserID,
			"type":           profile.Type,
		})
		return nil, ErrNotCustomerUser
	}

	exists, err := s.userRepo.ExistsByID(businessUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Warn("Review creation failed: business user not found", map[string]interface{}{
			"business_user_id": businessUserID,
		})
		return nil, ErrUserNotFound
	}

	duplicate, err := s.reviewRepo.ExistsForBusinessAndReviewer(businessUserID, actingUserID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		logger.Warn("Review creation failed: already reviewed", map[string]interface{}{
			"acting_user_id":   actingUserID,
			"business_user_id": businessUserID,
		})
		return nil, ErrDuplicateReview
	}

	review := &model.Review{
		BusinessUserID: businessUserID,
		ReviewerID:     actingUserID,
		Rating:         rating,
		Description:    description,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created successfully", map[string]interface{}{
		"review_id":        review.ID,
		"acting_user_id":   actingUserID,
		"business_user_id": businessUserID,
	})
	return review, nil
}

func (s *reviewService) List(filter repository.ReviewFilter) ([]model.Review, error) {
	return s.reviewRepo.FindWithFilter(filter)
}

func (s *reviewService) Update(reviewID, actingUserID uint, patch ReviewPatch) (*model.Review, error) {
	logger.Info("Updating review", map[string]interface{}{
		"review_id":      reviewID,
		"acting_user_id": actingUserID,
	})

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Review not found for update", map[string]interface{}{
				"review_id": reviewID,
			})
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if err := ensureOwner(review, actingUserID); err != nil {
		logger.Warn("Review update denied: not the reviewer", map[string]interface{}{
			"review_id":      reviewID,
			"acting_user_id": actingUserID,
			"reviewer_id":    review.ReviewerID,
		})
		return nil, err
	}

	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.Description != nil {
		review.Description = *patch.Description
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	logger.Info("Review updated successfully", map[string]interface{}{
		"review_id": reviewID,
	})
	return review, nil
}

func (s *reviewService) Delete(reviewID, actingUserID uint) error {
	logger.Info("Deleting review", map[string]interface{}{
		"review_id":      reviewID,
		"acting_user_id": actingUserID,
	})

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Review not found for delete", map[string]interface{}{
				"review_id": reviewID,
			})
			return ErrReviewNotFound
		}
		return err
	}

	if err := ensureOwner(review, actingUserID); err != nil {
		logger.Warn("Review delete denied: not the reviewer", map[string]interface{}{
			"review_id":      reviewID,
			"acting_user_id": actingUserID,
			"reviewer_id":    review.ReviewerID,
		})
		return err
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	logger.Info("Review deleted successfully", map[string]interface{}{
		"review_id": reviewID,
	})
	return nil
}
