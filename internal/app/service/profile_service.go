package service

import (
	"errors"
	"fmt"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileUpdate carries the patchable profile fields. Nil means the
// field was absent from the request. Email and the name fields write
// through to the user row; the profile type is fixed at registration
// and cannot be patched.
type ProfileUpdate struct {
	Email        *string
	FirstName    *string
	LastName     *string
	File         *string
	Location     *string
	Tel          *string
	Description  *string
	WorkingHours *string
}

type ProfileService interface {
	GetByUserID(userID uint) (*model.Profile, error)
	Update(userID, actingUserID uint, patch ProfileUpdate) (*model.Profile, error)
	ListByType(profileType model.ProfileType) ([]model.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	db          *gorm.DB
}

func NewProfileService(profileRepo repository.ProfileRepository, db *gorm.DB) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		db:          db,
	}
}

func (s *profileService) GetByUserID(userID uint) (*model.Profile, error) {
	logger.Debug("Fetching profile", map[string]interface{}{
		"user_id": userID,
	})

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Profile not found", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update patches the profile addressed by userID. The ownership check
// runs before the lookup, so a foreign user never learns whether the
// profile exists.
func (s *profileService) Update(userID, actingUserID uint, patch ProfileUpdate) (*model.Profile, error) {
	logger.Info("Updating profile", map[string]interface{}{
		"user_id":        userID,
		"acting_user_id": actingUserID,
	})

	if actingUserID != userID {
		logger.Warn("Profile update denied: not the owner", map[string]interface{}{
			"user_id":        userID,
			"acting_user_id": actingUserID,
		})
		return nil, ErrNotOwner
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Profile not found for update", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	user := profile.User
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}

	if patch.File != nil {
		profile.File = *patch.File
	}
	if patch.Location != nil {
		profile.Location = *patch.Location
	}
	if patch.Tel != nil {
		profile.Tel = *patch.Tel
	}
	if patch.Description != nil {
		profile.Description = *patch.Description
	}
	if patch.WorkingHours != nil {
		profile.WorkingHours = *patch.WorkingHours
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during profile update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	if err := tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update user fields", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Model(&model.Profile{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"file":          profile.File,
		"location":      profile.Location,
		"tel":           profile.Tel,
		"description":   profile.Description,
		"working_hours": profile.WorkingHours,
	}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update profile fields", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit profile update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	updated, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated successfully", map[string]interface{}{
		"user_id": userID,
	})
	return updated, nil
}

func (s *profileService) ListByType(profileType model.ProfileType) ([]model.Profile, error) {
	logger.Debug("Listing profiles by type", map[string]interface{}{
		"type": profileType,
	})

	profiles, err := s.profileRepo.FindByType(profileType)
	if err != nil {
		logger.Error("Failed to list profiles by type", err, map[string]interface{}{
			"type": profileType,
		})
		return nil, err
	}
	return profiles, nil
}
