package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/service"
	apperrors "github.com/skillora/skillora-backend/internal/errors"
	"github.com/skillora/skillora-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type RegisterRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=customer business"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration
// POST /api/registration/
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	if req.Password != req.RepeatedPassword {
		log.Warn("Registration failed: password mismatch", map[string]interface{}{
			"username": req.Username,
		})
		apperrors.BadRequest(c, apperrors.ValidationPasswordMismatch, "Passwords do not match.")
		return
	}

	log.Debug("Processing registration", map[string]interface{}{
		"username": req.Username,
		"email":    req.Email,
		"type":     req.Type,
	})

	user, token, err := ctrl.authService.Register(req.Username, req.Email, req.Password, model.ProfileType(req.Type))
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			log.Warn("Registration failed: username already exists", map[string]interface{}{
				"username": req.Username,
			})
			apperrors.BadRequest(c, apperrors.AuthUsernameExists, "A user with that username already exists.")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"username": user.Username,
		"email":    user.Email,
		"user_id":  user.ID,
	})
}

// Login authenticates a user with username and password
// POST /api/login/
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	log.Debug("Processing login", map[string]interface{}{
		"username": req.Username,
	})

	user, token, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"username": req.Username,
			})
			// Failed logins answer 400, not 401
			apperrors.BadRequest(c, apperrors.AuthInvalidCredentials, "Invalid credentials")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"email":    user.Email,
		"user_id":  user.ID,
	})
}
