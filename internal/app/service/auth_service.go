package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/pkg/logger"
	"github.com/skillora/skillora-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(username, email, password string, profileType model.ProfileType) (*model.User, string, error)
	Login(username, password string) (*model.User, string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	db          *gorm.DB
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, db *gorm.DB, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		db:          db,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Register creates the account and its profile in one transaction and
// returns the signed token. The username check here is advisory; the
// unique index decides races.
func (s *authService) Register(username, email, password string, profileType model.ProfileType) (*model.User, string, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": username,
		"type":     profileType,
	})

	taken, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		logger.Error("Failed to check existing username", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}
	if taken {
		logger.Warn("Registration failed: username already exists", map[string]interface{}{
			"username": username,
		})
		return nil, "", ErrUsernameTaken
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during registration, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"username": username,
			})
		}
	}()

	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	profile := &model.Profile{
		UserID: user.ID,
		Type:   profileType,
	}
	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create profile in database", err, map[string]interface{}{
			"username": username,
			"user_id":  user.ID,
		})
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit registration transaction", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	token, err := util.GenerateToken(user.ID, user.Username, user.Email, string(profileType), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id":  user.ID,
			"username": username,
		})
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
		"type":     profileType,
	})

	return user, token, nil
}

func (s *authService) Login(username, password string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"username": username,
		})
		return nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"username": username,
			"user_id":  user.ID,
		})
		return nil, "", ErrInvalidCredentials
	}

	role := ""
	var profile model.Profile
	if err := s.db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		role = string(profile.Type)
	}

	token, err := util.GenerateToken(user.ID, user.Username, user.Email, role, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id":  user.ID,
			"username": username,
		})
		return nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
	})

	return user, token, nil
}
