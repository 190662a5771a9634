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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	OfferDetailID uint   `json:"offer_detail_id" binding:"required"`
	Status        string `json:"status"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// orderResponse flattens the ordered tier into the order shape. The
// tier and its offer must be loaded on the order.
func orderResponse(o *model.Order) gin.H {
	return gin.H{
		"id":                    o.ID,
		"customer_user":         o.BuyerID,
		"business_user":         o.OfferDetail.Offer.CreatorID,
		"title":                 o.OfferDetail.Title,
		"revisions":             o.OfferDetail.Revisions,
		"delivery_time_in_days": o.OfferDetail.DeliveryTimeInDays,
		"price":                 o.OfferDetail.Price,
		"features":              o.OfferDetail.Features,
		"offer_type":            o.OfferDetail.OfferType,
		"status":                o.Status,
		"created_at":            o.CreatedAt,
		"updated_at":            o.UpdatedAt,
	}
}

// GetAllOrders returns every order the acting user participates in
// GET /api/orders/
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated order list attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.ListForUser(userID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list orders")
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderResponse(&orders[i]))
	}

	log.Info("Orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(out),
	})

	c.JSON(http.StatusOK, out)
}

// GetOrderByID returns a single order visible to the acting user
// GET /api/orders/:id/
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"order_id": idStr,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated order fetch attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	order, err := ctrl.orderService.GetByID(uint(id), userID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"order_id": id,
				"user_id":  userID,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found.")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get order")
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// CreateOrder books a pricing tier for the acting user (customers only)
// POST /api/orders/
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated order creation attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	log.Debug("Creating order", map[string]interface{}{
		"user_id":         userID,
		"offer_detail_id": req.OfferDetailID,
		"status":          req.Status,
	})

	order, err := ctrl.orderService.Create(userID, req.OfferDetailID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			log.Warn("Order creation denied: profile not found", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzForbidden, "UserProfile not found.")
		case errors.Is(err, service.ErrNotCustomerUser):
			log.Warn("Order creation denied: not a customer", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzCustomerOnly, "Only users with type 'customer' may create orders.")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status.")
		case errors.Is(err, service.ErrOfferDetailNotFound):
			log.Warn("Order creation failed: offer detail not found", map[string]interface{}{
				"user_id":         userID,
				"offer_detail_id": req.OfferDetailID,
			})
			apperrors.NotFound(c, apperrors.OfferDetailNotFound, "OfferDetail not found.")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id":         userID,
				"offer_detail_id": req.OfferDetailID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create order")
		}
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})

	c.JSON(http.StatusCreated, orderResponse(order))
}

// UpdateOrder changes an order's status (offer creator only)
// PATCH /api/orders/:id/
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"order_id": idStr,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthenticated order update attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order update request", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check your input and try again.")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(uint(id), userID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			log.Warn("Order not found for update", map[string]interface{}{
				"order_id": id,
				"user_id":  userID,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found.")
		case errors.Is(err, service.ErrNotOwner):
			log.Warn("Order update denied: not the offer creator", map[string]interface{}{
				"order_id": id,
				"user_id":  userID,
			})
			apperrors.Forbidden(c, apperrors.AuthzOwnerOnly, "You do not have permission to update this order.")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status.")
		default:
			log.Error("Failed to update order", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update order")
		}
		return
	}

	log.Info("Order updated successfully", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	c.JSON(http.StatusOK, orderResponse(order))
}

// GetOrderCount returns the number of in-progress orders for a business user
// GET /api/order-count/:business_user_id/
func (ctrl *OrderController) GetOrderCount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("business_user_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid business user ID format", map[string]interface{}{
			"business_user_id": idStr,
			"error":            err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid business user ID")
		return
	}

	count, err := ctrl.orderService.CountForBusiness(uint(id), model.OrderStatusInProgress)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("Order count requested for unknown user", map[string]interface{}{
				"business_user_id": id,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to count orders", err, map[string]interface{}{
			"business_user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "count orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_count": count,
	})
}

// GetCompletedOrderCount returns the number of completed orders for a business user
// GET /api/completed-order-count/:business_user_id/
func (ctrl *OrderController) GetCompletedOrderCount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("business_user_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid business user ID format", map[string]interface{}{
			"business_user_id": idStr,
			"error":            err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid business user ID")
		return
	}

	count, err := ctrl.orderService.CountForBusiness(uint(id), model.OrderStatusCompleted)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("Completed order count requested for unknown user", map[string]interface{}{
				"business_user_id": id,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to count completed orders", err, map[string]interface{}{
			"business_user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "count orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completed_order_count": count,
	})
}
