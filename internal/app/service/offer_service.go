package service

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
	ErrNotBusinessUser     = errors.New("acting user is not a business user")
	ErrInvalidTierCount    = errors.New("offer must have exactly 3 details")
	ErrInvalidTierTypes    = errors.New("details must cover basic, standard and premium")
	ErrMissingTierType     = errors.New("each detail must include an offer type")
)

// TierInput is one complete tier in an offer creation payload.
type TierInput struct {
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              float64
	Features           []string
	OfferType          model.OfferType
}

// TierPatch is one tier in an offer update payload. The type addresses
// the tier; a type not yet on the offer is created with defaults before
// the present fields are applied.
type TierPatch struct {
	OfferType          model.OfferType
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *float64
	Features           []string
}

// OfferPatch carries the patchable offer fields plus tier patches.
type OfferPatch struct {
	Title       *string
	Image       *string
	Description *string
	Tiers       []TierPatch
}

type OfferService interface {
	List(filter repository.OfferFilter) ([]model.Offer, int64, error)
	Get(id uint) (*model.Offer, error)
	GetDetail(id uint) (*model.OfferDetail, error)
	Create(actingUserID uint, title, image, description string, tiers []TierInput) (*model.Offer, error)
	Update(offerID, actingUserID uint, patch OfferPatch) (*model.Offer, error)
	Delete(offerID, actingUserID uint) error
}

type offerService struct {
	offerRepo   repository.OfferRepository
	profileRepo repository.ProfileRepository
	db          *gorm.DB
}

func NewOfferService(offerRepo repository.OfferRepository, profileRepo repository.ProfileRepository, db *gorm.DB) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		profileRepo: profileRepo,
		db:          db,
	}
}

func (s *offerService) List(filter repository.OfferFilter) ([]model.Offer, int64, error) {
	return s.offerRepo.FindWithFilter(filter)
}

func (s *offerService) Get(id uint) (*model.Offer, error) {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Offer not found", map[string]interface{}{
				"offer_id": id,
			})
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (s *offerService) GetDetail(id uint) (*model.OfferDetail, error) {
	detail, err := s.offerRepo.FindDetailByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Offer detail not found", map[string]interface{}{
				"offer_detail_id": id,
			})
			return nil, ErrOfferDetailNotFound
		}
		return nil, err
	}
	return detail, nil
}

// validateTierSet enforces the creation rule: exactly one tier of each
// type, nothing else.
func validateTierSet(tiers []TierInput) error {
	if len(tiers) != 3 {
		return ErrInvalidTierCount
	}
	seen := make(map[model.OfferType]bool, 3)
	for _, tier := range tiers {
		if tier.OfferType == "" {
			return ErrMissingTierType
		}
		if !model.ValidOfferType(tier.OfferType) || seen[tier.OfferType] {
			return ErrInvalidTierTypes
		}
		seen[tier.OfferType] = true
	}
	return nil
}

func (s *offerService) Create(actingUserID uint, title, image, description string, tiers []TierInput) (*model.Offer, error) {
	logger.Info("Creating offer", map[string]interface{}{
		"acting_user_id": actingUserID,
		"title":          title,
		"tier_count":     len(tiers),
	})

	profile, err := s.profileRepo.FindByUserID(actingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Offer creation failed: profile not found", map[string]interface{}{
				"acting_user_id": actingUserID,
			})
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Type != model.TypeBusiness {
		logger.Warn("Offer creation denied: not a business user", map[string]interface{}{
			"acting_user_id": actingUserID,
			"type":           profile.Type,
		})
		return nil, ErrNotBusinessUser
	}

	if err := validateTierSet(tiers); err != nil {
		logger.Warn("Offer creation failed: invalid tier set", map[string]interface{}{
			"acting_user_id": actingUserID,
			"tier_count":     len(tiers),
		})
		return nil, err
	}

	offer := &model.Offer{
		CreatorID:   actingUserID,
		Title:       title,
		Image:       image,
		Description: description,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during offer creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"acting_user_id": actingUserID,
			})
		}
	}()

	if err := tx.Create(offer).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create offer", err, map[string]interface{}{
			"acting_user_id": actingUserID,
		})
		return nil, err
	}

	for _, tier := range tiers {
		features := tier.Features
		if features == nil {
			features = []string{}
		}
		detail := model.OfferDetail{
			OfferID:            offer.ID,
			Title:              tier.Title,
			Revisions:          tier.Revisions,
			DeliveryTimeInDays: tier.DeliveryTimeInDays,
			Price:              tier.Price,
			Features:           pq.StringArray(features),
			OfferType:          tier.OfferType,
		}
		if err := tx.Create(&detail).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to create offer detail", err, map[string]interface{}{
				"acting_user_id": actingUserID,
				"offer_id":       offer.ID,
				"offer_type":     tier.OfferType,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit offer creation", err, map[string]interface{}{
			"acting_user_id": actingUserID,
		})
		return nil, err
	}

	logger.Info("Offer created successfully", map[string]interface{}{
		"offer_id":       offer.ID,
		"acting_user_id": actingUserID,
	})

	return s.offerRepo.FindByID(offer.ID)
}

func (s *offerService) Update(offerID, actingUserID uint, patch OfferPatch) (*model.Offer, error) {
	logger.Info("Updating offer", map[string]interface{}{
		"offer_id":       offerID,
		"acting_user_id": actingUserID,
	})

	offer, err := s.offerRepo.FindByID(offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Offer not found for update", map[string]interface{}{
				"offer_id": offerID,
			})
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	if err := ensureOwner(offer, actingUserID); err != nil {
		logger.Warn("Offer update denied: not the creator", map[string]interface{}{
			"offer_id":       offerID,
			"acting_user_id": actingUserID,
			"creator_id":     offer.CreatorID,
		})
		return nil, err
	}

	for _, tp := range patch.Tiers {
		if tp.OfferType == "" {
			return nil, ErrMissingTierType
		}
		if !model.ValidOfferType(tp.OfferType) {
			return nil, ErrInvalidTierTypes
		}
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during offer update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"offer_id": offerID,
			})
		}
	}()

	if len(updates) > 0 {
		if err := tx.Model(&model.Offer{}).Where("id = ?", offerID).Updates(updates).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update offer fields", err, map[string]interface{}{
				"offer_id": offerID,
			})
			return nil, err
		}
	}

	for _, tp := range patch.Tiers {
		var detail model.OfferDetail
		err := tx.Where("offer_id = ? AND offer_type = ?", offerID, tp.OfferType).First(&detail).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown type on this offer: create it with defaults,
			// then apply the patched fields.
			detail = model.OfferDetail{
				OfferID:            offerID,
				Title:              "",
				Revisions:          0,
				DeliveryTimeInDays: 1,
				Price:              0,
				Features:           pq.StringArray{},
				OfferType:          tp.OfferType,
			}
		} else if err != nil {
			tx.Rollback()
			logger.Error("Failed to load offer detail for update", err, map[string]interface{}{
				"offer_id":   offerID,
				"offer_type": tp.OfferType,
			})
			return nil, err
		}

		if tp.Title != nil {
			detail.Title = *tp.Title
		}
		if tp.Revisions != nil {
			detail.Revisions = *tp.Revisions
		}
		if tp.DeliveryTimeInDays != nil {
			detail.DeliveryTimeInDays = *tp.DeliveryTimeInDays
		}
		if tp.Price != nil {
			detail.Price = *tp.Price
		}
		if tp.Features != nil {
			detail.Features = pq.StringArray(tp.Features)
		}

		if err := tx.Save(&detail).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to upsert offer detail", err, map[string]interface{}{
				"offer_id":   offerID,
				"offer_type": tp.OfferType,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit offer update", err, map[string]interface{}{
			"offer_id": offerID,
		})
		return nil, err
	}

	logger.Info("Offer updated successfully", map[string]interface{}{
		"offer_id": offerID,
	})

	return s.offerRepo.FindByID(offerID)
}

// Delete removes the offer, its tiers and any orders booked against
// them. Rows are removed explicitly so the behavior does not depend on
// database-level cascade settings.
func (s *offerService) Delete(offerID, actingUserID uint) error {
	logger.Info("Deleting offer", map[string]interface{}{
		"offer_id":       offerID,
		"acting_user_id": actingUserID,
	})

	offer, err := s.offerRepo.FindByID(offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Offer not found for delete", map[string]interface{}{
				"offer_id": offerID,
			})
			return ErrOfferNotFound
		}
		return err
	}

	if err := ensureOwner(offer, actingUserID); err != nil {
		logger.Warn("Offer delete denied: not the creator", map[string]interface{}{
			"offer_id":       offerID,
			"acting_user_id": actingUserID,
			"creator_id":     offer.CreatorID,
		})
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during offer delete, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"offer_id": offerID,
			})
		}
	}()

	var detailIDs []uint
	if err := tx.Model(&model.OfferDetail{}).Where("offer_id = ?", offerID).Pluck("id", &detailIDs).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to collect offer detail IDs", err, map[string]interface{}{
			"offer_id": offerID,
		})
		return err
	}

	if len(detailIDs) > 0 {
		if err := tx.Where("offer_detail_id IN ?", detailIDs).Delete(&model.Order{}).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to delete orders for offer", err, map[string]interface{}{
				"offer_id": offerID,
			})
			return err
		}
	}

	if err := tx.Where("offer_id = ?", offerID).Delete(&model.OfferDetail{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete offer details", err, map[string]interface{}{
			"offer_id": offerID,
		})
		return err
	}

	if err := tx.Delete(&model.Offer{}, offerID).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete offer", err, map[string]interface{}{
			"offer_id": offerID,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit offer delete", err, map[string]interface{}{
			"offer_id": offerID,
		})
		return err
	}

	logger.Info("Offer deleted successfully", map[string]interface{}{
		"offer_id": offerID,
	})
	return nil
}
