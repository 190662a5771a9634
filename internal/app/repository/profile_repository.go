package repository

import (
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	FindByUserID(userID uint) (*model.Profile, error)
	FindByType(profileType model.ProfileType) ([]model.Profile, error)
	CountByType(profileType model.ProfileType) (int64, error)
	Update(profile *model.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	logger.Debug("Creating profile in database", map[string]interface{}{
		"user_id": profile.UserID,
		"type":    profile.Type,
	})

	if err := r.db.Create(profile).Error; err != nil {
		logger.Error("Failed to create profile in database", err, map[string]interface{}{
			"user_id": profile.UserID,
		})
		return err
	}
	return nil
}

// FindByUserID looks a profile up by the owning user, not by profile ID.
// Profile routes address users directly.
func (r *profileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		logger.Error("Failed to find profile by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByType(profileType model.ProfileType) ([]model.Profile, error) {
	logger.Debug("Finding profiles by type in database", map[string]interface{}{
		"type": profileType,
	})

	var profiles []model.Profile
	err := r.db.Preload("User").
		Where("type = ?", profileType).
		Order("profiles.user_id ASC").
		Find(&profiles).Error
	if err != nil {
		logger.Error("Failed to find profiles by type in database", err, map[string]interface{}{
			"type": profileType,
		})
		return nil, err
	}

	logger.Debug("Profiles found by type in database", map[string]interface{}{
		"type":  profileType,
		"count": len(profiles),
	})
	return profiles, nil
}

func (r *profileRepository) CountByType(profileType model.ProfileType) (int64, error) {
	var count int64
	err := r.db.Model(&model.Profile{}).Where("type = ?", profileType).Count(&count).Error
	if err != nil {
		logger.Error("Failed to count profiles by type", err, map[string]interface{}{
			"type": profileType,
		})
		return 0, err
	}
	return count, nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	logger.Debug("Updating profile in database", map[string]interface{}{
		"profile_id": profile.ID,
		"user_id":    profile.UserID,
	})

	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to update profile in database", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return err
	}
	return nil
}
