package repository

import (
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewSort string

const (
	ReviewSortCreatedAt ReviewSort = "created_at"
	ReviewSortUpdatedAt ReviewSort = "updated_at"
	ReviewSortRating    ReviewSort = "rating"
)

type ReviewFilter struct {
	BusinessUserID *uint
	ReviewerID     *uint
	SortBy         ReviewSort
	SortAscending  bool
}

// RatingStats is the platform-wide review aggregate.
type RatingStats struct {
	Count   int64
	Average float64
}

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindWithFilter(filter ReviewFilter) ([]model.Review, error)
	ExistsForBusinessAndReviewer(businessUserID, reviewerID uint) (bool, error)
	Update(review *model.Review) error
	Delete(id uint) error
	AggregateRatings() (RatingStats, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"business_user_id": review.BusinessUserID,
		"reviewer_id":      review.ReviewerID,
		"rating":           review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"business_user_id": review.BusinessUserID,
			"reviewer_id":      review.ReviewerID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		logger.Error("Failed to find review by ID in database", err, map[string]interface{}{
			"review_id": id,
		})
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindWithFilter(filter ReviewFilter) ([]model.Review, error) {
	logger.Debug("Finding reviews with filter", map[string]interface{}{
		"business_user_id": filter.BusinessUserID,
		"reviewer_id":      filter.ReviewerID,
		"sort_by":          filter.SortBy,
		"ascending":        filter.SortAscending,
	})

	query := r.db.Model(&model.Review{})

	if filter.BusinessUserID != nil {
		query = query.Where("business_user_id = ?", *filter.BusinessUserID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	switch filter.SortBy {
	case ReviewSortUpdatedAt:
		query = query.Order("reviews.updated_at " + direction)
	case ReviewSortRating:
		query = query.Order("reviews.rating " + direction)
		query = query.Order("reviews.id ASC")
	default:
		query = query.Order("reviews.created_at " + direction)
	}

	var reviews []model.Review
	if err := query.Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews with filter", err, map[string]interface{}{
			"business_user_id": filter.BusinessUserID,
			"reviewer_id":      filter.ReviewerID,
		})
		return nil, err
	}

	logger.Debug("Reviews found with filter", map[string]interface{}{
		"count": len(reviews),
	})
	return reviews, nil
}

func (r *reviewRepository) ExistsForBusinessAndReviewer(businessUserID, reviewerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check review existence", err, map[string]interface{}{
			"business_user_id": businessUserID,
			"reviewer_id":      reviewerID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) AggregateRatings() (RatingStats, error) {
	var stats RatingStats
	err := r.db.Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Scan(&stats).Error
	if err != nil {
		logger.Error("Failed to aggregate review ratings", err)
		return RatingStats{}, err
	}
	return stats, nil
}
