package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/service"
	apperrors "github.com/skillora/skillora-backend/internal/errors"
	"github.com/skillora/skillora-backend/internal/middleware"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

type UpdateProfileRequest struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

// profileDetail is the full shape served by the single-profile routes.
// Profiles are addressed by user ID, so "user" carries the path key.
func profileDetail(p *model.Profile) gin.H {
	return gin.H{
		"user":          p.UserID,
		"username":      p.User.Username,
		"first_name":    p.User.FirstName,
		"last_name":     p.User.LastName,
		"file":          p.File,
		"location":      p.Location,
		"tel":           p.Tel,
		"description":   p.Description,
		"working_hours": p.WorkingHours,
		"type":          p.Type,
		"email":         p.User.Email,
		"created_at":    p.CreatedAt,
	}
}

// GetProfile returns the profile of the user addressed in the path
// GET /api/profile/:pk/
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pkStr := c.Param("pk")
	pk, err := strconv.ParseUint(pkStr, 10, 32)
	if err != nil {
		log.Warn("Invalid user ID format", map[string]interface{}{
			"user_id": pkStr,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	profile, err := ctrl.profileService.GetByUserID(uint(pk))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			log.Warn("Profile not found", map[string]interface{}{
				"user_id": pk,
			})
			apperrors.NotFound(c, apperrors.ProfileNotFound, "UserProfile not found")
			return
		}
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": pk,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, profileDetail(profile))
}

// UpdateProfile patches the profile addressed in the path (owner only)
// PATCH /api/profile/:pk/
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pkStr := c.Param("pk")
	pk, err := strconv.ParseUint(pkStr, 10, 32)
	if err != nil {
		log.Warn("Invalid user ID format", map[string]interface{}{
			"user_id": pkStr,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated profile update attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"user_id": pk,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	patch := service.ProfileUpdate{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		File:         req.File,
		Location:     req.Location,
		Tel:          req.Tel,
		Description:  req.Description,
		WorkingHours: req.WorkingHours,
	}

	profile, err := ctrl.profileService.Update(uint(pk), userID, patch)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			log.Warn("Profile update denied: not the owner", map[string]interface{}{
				"user_id":        pk,
				"acting_user_id": userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzOwnerOnly, "You do not have permission to edit this profile.")
			return
		}
		if errors.Is(err, service.ErrProfileNotFound) {
			log.Warn("Profile not found for update", map[string]interface{}{
				"user_id": pk,
			})
			apperrors.NotFound(c, apperrors.ProfileNotFound, "UserProfile not found")
			return
		}
		log.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": pk,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update profile")
		return
	}

	log.Info("Profile updated successfully", map[string]interface{}{
		"user_id": pk,
	})

	c.JSON(http.StatusOK, profileDetail(profile))
}

// ListBusinessProfiles returns all business profiles
// GET /api/profiles/business/
func (ctrl *ProfileController) ListBusinessProfiles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profiles, err := ctrl.profileService.ListByType(model.TypeBusiness)
	if err != nil {
		log.Error("Failed to list business profiles", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list profiles")
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out = append(out, gin.H{
			"user":          p.UserID,
			"username":      p.User.Username,
			"first_name":    p.User.FirstName,
			"last_name":     p.User.LastName,
			"file":          p.File,
			"location":      p.Location,
			"tel":           p.Tel,
			"description":   p.Description,
			"working_hours": p.WorkingHours,
			"type":          p.Type,
		})
	}

	log.Info("Business profiles fetched", map[string]interface{}{
		"count": len(out),
	})

	c.JSON(http.StatusOK, out)
}

// ListCustomerProfiles returns all customer profiles
// GET /api/profiles/customer/
func (ctrl *ProfileController) ListCustomerProfiles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profiles, err := ctrl.profileService.ListByType(model.TypeCustomer)
	if err != nil {
		log.Error("Failed to list customer profiles", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list profiles")
		return
	}

	// Customer listings expose a reduced shape without contact fields
	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out = append(out, gin.H{
			"user":       p.UserID,
			"username":   p.User.Username,
			"first_name": p.User.FirstName,
			"last_name":  p.User.LastName,
			"file":       p.File,
			"type":       p.Type,
		})
	}

	log.Info("Customer profiles fetched", map[string]interface{}{
		"count": len(out),
	})

	c.JSON(http.StatusOK, out)
}
