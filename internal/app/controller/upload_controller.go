package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillora/skillora-backend/internal/app/model"
	apperrors "github.com/skillora/skillora-backend/internal/errors"
	"github.com/skillora/skillora-backend/internal/middleware"
	"github.com/skillora/skillora-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{storage: s3Storage}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// PresignUpload hands out a pre-signed PUT URL for an avatar or offer
// image. The client uploads directly to the bucket and then stores the
// returned file_url on its profile or offer.
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presign upload request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Filename and content_type are required.")
		return
	}

	if !storage.ValidateContentType(req.ContentType) {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files (jpeg, png, gif, webp) are allowed.")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = storage.FolderAvatars
	}
	switch folder {
	case storage.FolderAvatars:
	case storage.FolderOffers:
		// Offer images belong to business accounts.
		if role, ok := middleware.GetUserRole(c); !ok || role != model.TypeBusiness {
			apperrors.Forbidden(c, apperrors.AuthzBusinessOnly, "Only business users may upload offer images.")
			return
		}
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Folder must be 'avatars' or 'offers'.")
		return
	}

	upload, err := ctrl.storage.PresignUpload(c.Request.Context(), req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to presign upload", err, map[string]interface{}{
			"filename": req.Filename,
			"folder":   folder,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Could not create upload URL.")
		return
	}

	userID, _ := middleware.GetUserID(c)
	log.Info("Presigned upload URL issued", map[string]interface{}{
		"user_id": userID,
		"key":     upload.Key,
	})

	c.JSON(http.StatusOK, upload)
}
