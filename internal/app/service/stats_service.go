package service

import (
	"math"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/pkg/logger"
)

// BaseInfo is the public platform statistics snapshot.
type BaseInfo struct {
	ReviewCount          int64
	AverageRating        float64
	BusinessProfileCount int64
	OfferCount           int64
}

type StatsService interface {
	BaseInfo() (BaseInfo, error)
}

type statsService struct {
	reviewRepo  repository.ReviewRepository
	profileRepo repository.ProfileRepository
	offerRepo   repository.OfferRepository
}

func NewStatsService(
	reviewRepo repository.ReviewRepository,
	profileRepo repository.ProfileRepository,
	offerRepo repository.OfferRepository,
) StatsService {
	return &statsService{
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		offerRepo:   offerRepo,
	}
}

// BaseInfo aggregates review, profile and offer counts at query time.
// The average rating is rounded to one decimal and reported as 0.0 when
// no reviews exist.
func (s *statsService) BaseInfo() (BaseInfo, error) {
	logger.Debug("Computing platform base info")

	ratings, err := s.reviewRepo.AggregateRatings()
	if err != nil {
		return BaseInfo{}, err
	}

	average := 0.0
	if ratings.Count > 0 {
		average = math.Round(ratings.Average*10) / 10
	}

	businessCount, err := s.profileRepo.CountByType(model.TypeBusiness)
	if err != nil {
		return BaseInfo{}, err
	}

	offerCount, err := s.offerRepo.Count()
	if err != nil {
		return BaseInfo{}, err
	}

	info := BaseInfo{
		ReviewCount:          ratings.Count,
		AverageRating:        average,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}

	logger.Debug("Platform base info computed", map[string]interface{}{
		"review_count":           info.ReviewCount,
		"average_rating":         info.AverageRating,
		"business_profile_count": info.BusinessProfileCount,
		"offer_count":            info.OfferCount,
	})
	return info, nil
}
