package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/internal/app/service"
	apperrors "github.com/skillora/skillora-backend/internal/errors"
	"github.com/skillora/skillora-backend/internal/middleware"
)

type OfferController struct {
	offerService service.OfferService
}

func NewOfferController(offerService service.OfferService) *OfferController {
	return &OfferController{
		offerService: offerService,
	}
}

type CreateOfferTierRequest struct {
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              float64  `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

type CreateOfferRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Image       string                   `json:"image"`
	Description string                   `json:"description"`
	Details     []CreateOfferTierRequest `json:"details"`
}

type UpdateOfferTierRequest struct {
	Title              *string  `json:"title"`
	Revisions          *int     `json:"revisions"`
	DeliveryTimeInDays *int     `json:"delivery_time_in_days"`
	Price              *float64 `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

type UpdateOfferRequest struct {
	Title       *string                  `json:"title"`
	Image       *string                  `json:"image"`
	Description *string                  `json:"description"`
	Details     []UpdateOfferTierRequest `json:"details"`
}

// tierResponse is the full tier shape served by the write routes and
// the tier detail route.
func tierResponse(d *model.OfferDetail) gin.H {
	return gin.H{
		"id":                    d.ID,
		"title":                 d.Title,
		"revisions":             d.Revisions,
		"delivery_time_in_days": d.DeliveryTimeInDays,
		"price":                 d.Price,
		"features":              d.Features,
		"offer_type":            d.OfferType,
	}
}

// offerAggregates derives the cheapest price and fastest delivery from
// the loaded tiers. Both are nil for an offer without tiers.
func offerAggregates(o *model.Offer) (minPrice *float64, minDelivery *int) {
	for i := range o.Details {
		d := &o.Details[i]
		if minPrice == nil || d.Price < *minPrice {
			p := d.Price
			minPrice = &p
		}
		if minDelivery == nil || d.DeliveryTimeInDays < *minDelivery {
			t := d.DeliveryTimeInDays
			minDelivery = &t
		}
	}
	return minPrice, minDelivery
}

// offerReadResponse is the read shape: tiers appear as id/url link
// pairs, with the aggregate price and delivery minimums alongside.
// The listing variant additionally carries the creator's name fields.
func offerReadResponse(c *gin.Context, o *model.Offer, withUserDetails bool) gin.H {
	minPrice, minDelivery := offerAggregates(o)

	links := make([]gin.H, 0, len(o.Details))
	for i := range o.Details {
		d := &o.Details[i]
		links = append(links, gin.H{
			"id":  d.ID,
			"url": absoluteURL(c, fmt.Sprintf("/api/offerdetails/%d/", d.ID)),
		})
	}

	resp := gin.H{
		"id":                o.ID,
		"user":              o.CreatorID,
		"title":             o.Title,
		"image":             o.Image,
		"description":       o.Description,
		"created_at":        o.CreatedAt,
		"updated_at":        o.UpdatedAt,
		"details":           links,
		"min_price":         minPrice,
		"min_delivery_time": minDelivery,
	}
	if withUserDetails {
		resp["user_details"] = gin.H{
			"first_name": o.Creator.FirstName,
			"last_name":  o.Creator.LastName,
			"username":   o.Creator.Username,
		}
	}
	return resp
}

// offerWriteResponse is the shape returned by create and update: full
// tier objects instead of links, no aggregates.
func offerWriteResponse(o *model.Offer) gin.H {
	tiers := make([]gin.H, 0, len(o.Details))
	for i := range o.Details {
		tiers = append(tiers, tierResponse(&o.Details[i]))
	}
	return gin.H{
		"id":          o.ID,
		"title":       o.Title,
		"image":       o.Image,
		"description": o.Description,
		"details":     tiers,
	}
}

// GetAllOffers returns the paginated offer listing
// GET /api/offers/
func (ctrl *OfferController) GetAllOffers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var filter repository.OfferFilter

	if raw := c.Query("creator_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid creator_id filter", map[string]interface{}{
				"creator_id": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "creator_id must be a number.")
			return
		}
		creatorID := uint(id)
		filter.CreatorID = &creatorID
	}

	if raw := c.Query("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Warn("Invalid min_price filter", map[string]interface{}{
				"min_price": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "min_price must be a number.")
			return
		}
		filter.MinPrice = &price
	}

	if raw := c.Query("max_delivery_time"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Invalid max_delivery_time filter", map[string]interface{}{
				"max_delivery_time": raw,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "max_delivery_time must be a number.")
			return
		}
		filter.MaxDeliveryTime = &days
	}

	filter.Search = c.Query("search")

	// Unknown ordering values fall back to newest-first, mirroring the
	// permissive ordering contract of the listing.
	switch c.Query("ordering") {
	case "updated_at":
		filter.SortBy = repository.OfferSortUpdatedAt
		filter.SortAscending = true
	case "-updated_at":
		filter.SortBy = repository.OfferSortUpdatedAt
	case "min_price":
		filter.SortBy = repository.OfferSortMinPrice
		filter.SortAscending = true
	case "-min_price":
		filter.SortBy = repository.OfferSortMinPrice
	default:
		filter.SortBy = repository.OfferSortCreatedAt
	}

	page, pageSize, err := pageParams(c)
	if err != nil {
		log.Warn("Invalid page parameter", map[string]interface{}{
			"page": c.Query("page"),
		})
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Invalid page.")
		return
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	offers, total, err := ctrl.offerService.List(filter)
	if err != nil {
		log.Error("Failed to list offers", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list offers")
		return
	}

	if page > pageCount(total, pageSize) {
		log.Warn("Page out of range", map[string]interface{}{
			"page":  page,
			"count": total,
		})
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Invalid page.")
		return
	}

	results := make([]gin.H, 0, len(offers))
	for i := range offers {
		results = append(results, offerReadResponse(c, &offers[i], true))
	}

	log.Info("Offers fetched successfully", map[string]interface{}{
		"count": total,
		"page":  page,
	})

	c.JSON(http.StatusOK, paginatedResponse(c, total, page, pageSize, results))
}

// GetOfferByID returns a single offer
// GET /api/offers/:id/
func (ctrl *OfferController) GetOfferByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid offer ID format", map[string]interface{}{
			"offer_id": idStr,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid offer ID")
		return
	}

	offer, err := ctrl.offerService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			log.Warn("Offer not found", map[string]interface{}{
				"offer_id": id,
			})
			apperrors.NotFound(c, apperrors.OfferNotFound, "Offer not found.")
			return
		}
		log.Error("Failed to fetch offer", err, map[string]interface{}{
			"offer_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get offer")
		return
	}

	c.JSON(http.StatusOK, offerReadResponse(c, offer, false))
}

// CreateOffer creates an offer with its three tiers (business users only)
// POST /api/offers/
func (ctrl *OfferController) CreateOffer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated offer creation attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid offer creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	tiers := make([]service.TierInput, 0, len(req.Details))
	for _, d := range req.Details {
		tiers = append(tiers, service.TierInput{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
			OfferType:          model.OfferType(d.OfferType),
		})
	}

	log.Debug("Creating offer", map[string]interface{}{
		"user_id":    userID,
		"title":      req.Title,
		"tier_count": len(tiers),
	})

	offer, err := ctrl.offerService.Create(userID, req.Title, req.Image, req.Description, tiers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			log.Warn("Offer creation failed: profile not found", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.NotFound(c, apperrors.ProfileNotFound, "UserProfile not found.")
		case errors.Is(err, service.ErrNotBusinessUser):
			log.Warn("Offer creation denied: not a business user", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzBusinessOnly, "Only users with type 'business' may create offers.")
		case errors.Is(err, service.ErrInvalidTierCount):
			apperrors.BadRequest(c, apperrors.OfferInvalidTierSet, "An offer must have exactly 3 details.")
		case errors.Is(err, service.ErrMissingTierType):
			apperrors.BadRequest(c, apperrors.OfferInvalidTierType, "Each detail must include offer_type.")
		case errors.Is(err, service.ErrInvalidTierTypes):
			apperrors.BadRequest(c, apperrors.OfferInvalidTierSet, "Details must include offer_type: basic, standard, premium.")
		default:
			log.Error("Failed to create offer", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create offer")
		}
		return
	}

	log.Info("Offer created successfully", map[string]interface{}{
		"offer_id": offer.ID,
		"user_id":  userID,
	})

	c.JSON(http.StatusCreated, offerWriteResponse(offer))
}

// UpdateOffer patches an offer and upserts tiers by type (creator only)
// PATCH /api/offers/:id/
func (ctrl *OfferController) UpdateOffer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid offer ID format", map[string]interface{}{
			"offer_id": idStr,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid offer ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated offer update attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid offer update request", map[string]interface{}{
			"offer_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	patch := service.OfferPatch{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
	}
	for _, d := range req.Details {
		patch.Tiers = append(patch.Tiers, service.TierPatch{
			OfferType:          model.OfferType(d.OfferType),
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
		})
	}

	offer, err := ctrl.offerService.Update(uint(id), userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			log.Warn("Offer not found for update", map[string]interface{}{
				"offer_id": id,
			})
			apperrors.NotFound(c, apperrors.OfferNotFound, "Offer not found.")
		case errors.Is(err, service.ErrNotOwner):
			log.Warn("Offer update denied: not the creator", map[string]interface{}{
				"offer_id": id,
				"user_id":  userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzForbidden, "Forbidden")
		case errors.Is(err, service.ErrMissingTierType):
			apperrors.BadRequest(c, apperrors.OfferInvalidTierType, "Each detail must include offer_type.")
		case errors.Is(err, service.ErrInvalidTierTypes):
			apperrors.BadRequest(c, apperrors.OfferInvalidTierSet, "Details must include offer_type: basic, standard, premium.")
		default:
			log.Error("Failed to update offer", err, map[string]interface{}{
				"offer_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update offer")
		}
		return
	}

	log.Info("Offer updated successfully", map[string]interface{}{
		"offer_id": offer.ID,
		"user_id":  userID,
	})

	c.JSON(http.StatusOK, offerWriteResponse(offer))
}

// DeleteOffer removes an offer and its tiers (creator only)
// DELETE /api/offers/:id/
func (ctrl *OfferController) DeleteOffer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid offer ID format", map[string]interface{}{
			"offer_id": idStr,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid offer ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated offer delete attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.offerService.Delete(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			log.Warn("Offer not found for delete", map[string]interface{}{
				"offer_id": id,
			})
			apperrors.NotFound(c, apperrors.OfferNotFound, "Offer not found.")
		case errors.Is(err, service.ErrNotOwner):
			log.Warn("Offer delete denied: not the creator", map[string]interface{}{
				"offer_id": id,
				"user_id":  userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzForbidden, "Forbidden")
		default:
			log.Error("Failed to delete offer", err, map[string]interface{}{
				"offer_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete offer")
		}
		return
	}

	log.Info("Offer deleted successfully", map[string]interface{}{
		"offer_id": id,
		"user_id":  userID,
	})

	c.Status(http.StatusNoContent)
}

// GetOfferDetailByID returns a single pricing tier
// GET /api/offerdetails/:id/
func (ctrl *OfferController) GetOfferDetailByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid offer detail ID format", map[string]interface{}{
			"offer_detail_id": idStr,
			"error":           err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid offer detail ID")
		return
	}

	detail, err := ctrl.offerService.GetDetail(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOfferDetailNotFound) {
			log.Warn("Offer detail not found", map[string]interface{}{
				"offer_detail_id": id,
			})
			apperrors.NotFound(c, apperrors.OfferDetailNotFound, "OfferDetail not found.")
			return
		}
		log.Error("Failed to fetch offer detail", err, map[string]interface{}{
			"offer_detail_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get offer detail")
		return
	}

	c.JSON(http.StatusOK, tierResponse(detail))
}
