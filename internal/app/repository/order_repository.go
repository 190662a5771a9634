package repository

import (
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindForUser(userID uint) ([]model.Order, error)
	CountForBusinessByStatus(businessUserID uint, status model.OrderStatus) (int64, error)
	Update(order *model.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"buyer_id":        order.BuyerID,
		"offer_detail_id": order.OfferDetailID,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"buyer_id":        order.BuyerID,
			"offer_detail_id": order.OfferDetailID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("OfferDetail").
		Preload("OfferDetail.Offer").
		First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

// FindForUser returns orders the user placed plus orders against the
// user's own offers.
func (r *orderRepository) FindForUser(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders for user in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.db.
		Joins("JOIN offer_details ON offer_details.id = orders.offer_detail_id").
		Joins("JOIN offers ON offers.id = offer_details.offer_id").
		Where("orders.buyer_id = ? OR offers.creator_id = ?", userID, userID).
		Preload("OfferDetail").
		Preload("OfferDetail.Offer").
		Order("orders.created_at DESC").
		Order("orders.id DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders for user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found for user in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) CountForBusinessByStatus(businessUserID uint, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Joins("JOIN offer_details ON offer_details.id = orders.offer_detail_id").
		Joins("JOIN offers ON offers.id = offer_details.offer_id").
		Where("offers.creator_id = ? AND orders.status = ?", businessUserID, status).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count orders for business user", err, map[string]interface{}{
			"business_user_id": businessUserID,
			"status":           status,
		})
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}
