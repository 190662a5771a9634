package db

import (
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/pkg/logger"
	"github.com/skillora/skillora-backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Profile{},
		&model.Offer{},
		&model.OfferDetail{},
		&model.Order{},
		&model.Review{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the demo accounts used by the frontend login shortcuts.
func Seed() error {
	return seedDemoAccounts()
}

// seedDemoAccounts creates one customer and one business demo login.
// Skipped when any user already exists.
func seedDemoAccounts() error {
	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Users already present, skipping demo account seeding", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding demo accounts...")

	accounts := []struct {
		username string
		email    string
		first    string
		last     string
		profType model.ProfileType
	}{
		{"andrey", "andrey@example.de", "Andrey", "Kunde", model.TypeCustomer},
		{"kevin", "kevin@example.de", "Kevin", "Anbieter", model.TypeBusiness},
	}

	for _, acc := range accounts {
		hash, err := util.HashPassword("asdasd")
		if err != nil {
			return err
		}

		user := model.User{
			Username:     acc.username,
			Email:        acc.email,
			PasswordHash: hash,
			FirstName:    acc.first,
			LastName:     acc.last,
		}

		err = DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := model.Profile{
				UserID: user.ID,
				Type:   acc.profType,
			}
			return tx.Create(&profile).Error
		})
		if err != nil {
			logger.Error("Failed to seed demo account", err, map[string]interface{}{
				"username": acc.username,
			})
			return err
		}
	}

	logger.Info("Demo accounts seeded successfully", map[string]interface{}{
		"accounts": len(accounts),
	})
	return nil
}
