package repository

import (
	"fmt"
	"strings"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

type OfferSort string

const (
	OfferSortCreatedAt OfferSort = "created_at"
	OfferSortUpdatedAt OfferSort = "updated_at"
	OfferSortMinPrice  OfferSort = "min_price"
)

type OfferFilter struct {
	CreatorID       *uint
	MinPrice        *float64
	MaxDeliveryTime *int
	Search          string
	SortBy          OfferSort
	SortAscending   bool
	Limit           int
	Offset          int
}

type OfferRepository interface {
	FindWithFilter(filter OfferFilter) ([]model.Offer, int64, error)
	FindByID(id uint) (*model.Offer, error)
	FindDetailByID(id uint) (*model.OfferDetail, error)
	Count() (int64, error)
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// applyFilter adds the WHERE clauses shared by the count and page queries.
// Tier filters match offers where ANY tier satisfies the bound, without
// duplicating offer rows.
func (r *offerRepository) applyFilter(query *gorm.DB, filter OfferFilter) *gorm.DB {
	if filter.CreatorID != nil {
		query = query.Where("offers.creator_id = ?", *filter.CreatorID)
	}
	if filter.MinPrice != nil {
		query = query.Where("EXISTS (SELECT 1 FROM offer_details WHERE offer_details.offer_id = offers.id AND offer_details.price >= ?)", *filter.MinPrice)
	}
	if filter.MaxDeliveryTime != nil {
		query = query.Where("EXISTS (SELECT 1 FROM offer_details WHERE offer_details.offer_id = offers.id AND offer_details.delivery_time_in_days <= ?)", *filter.MaxDeliveryTime)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search))
		query = query.Where("LOWER(offers.title) LIKE ? OR LOWER(offers.description) LIKE ?", like, like)
	}
	return query
}

func (r *offerRepository) FindWithFilter(filter OfferFilter) ([]model.Offer, int64, error) {
	logger.Debug("Finding offers with filter", map[string]interface{}{
		"creator_id":        filter.CreatorID,
		"min_price":         filter.MinPrice,
		"max_delivery_time": filter.MaxDeliveryTime,
		"search":            filter.Search,
		"sort_by":           filter.SortBy,
		"ascending":         filter.SortAscending,
		"limit":             filter.Limit,
		"offset":            filter.Offset,
	})

	var total int64
	if err := r.applyFilter(r.db.Model(&model.Offer{}), filter).Count(&total).Error; err != nil {
		logger.Error("Failed to count offers with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	query := r.applyFilter(r.db.Model(&model.Offer{}), filter).
		Preload("Creator").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_details.id ASC")
		})

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	switch filter.SortBy {
	case OfferSortUpdatedAt:
		query = query.Order("offers.updated_at " + direction)
	case OfferSortMinPrice:
		// Join the per-offer tier minimum purely for ordering; the
		// response value is computed from the preloaded tiers.
		tierMins := r.db.Table("offer_details").
			Select("offer_details.offer_id, MIN(offer_details.price) AS min_price").
			Group("offer_details.offer_id")
		query = query.Joins("LEFT JOIN (?) AS tier_mins ON tier_mins.offer_id = offers.id", tierMins)
		query = query.Order("tier_mins.min_price " + direction)
		query = query.Order("offers.id ASC")
	default:
		query = query.Order("offers.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var offers []model.Offer
	if err := query.Find(&offers).Error; err != nil {
		logger.Error("Failed to find offers with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	logger.Debug("Offers found with filter", map[string]interface{}{
		"count": len(offers),
		"total": total,
	})
	return offers, total, nil
}

func (r *offerRepository) FindByID(id uint) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.
		Preload("Creator").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_details.id ASC")
		}).
		First(&offer, id).Error
	if err != nil {
		logger.Error("Failed to find offer by ID in database", err, map[string]interface{}{
			"offer_id": id,
		})
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) FindDetailByID(id uint) (*model.OfferDetail, error) {
	var detail model.OfferDetail
	err := r.db.Preload("Offer").First(&detail, id).Error
	if err != nil {
		logger.Error("Failed to find offer detail by ID in database", err, map[string]interface{}{
			"offer_detail_id": id,
		})
		return nil, err
	}
	return &detail, nil
}

func (r *offerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Offer{}).Count(&count).Error
	if err != nil {
		logger.Error("Failed to count offers", err)
		return 0, err
	}
	return count, nil
}
