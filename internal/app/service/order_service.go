package service

import (
	"errors"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotCustomerUser    = errors.New("acting user is not a customer")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService interface {
	Create(actingUserID, offerDetailID uint, status model.OrderStatus) (*model.Order, error)
	ListForUser(userID uint) ([]model.Order, error)
	GetByID(orderID, actingUserID uint) (*model.Order, error)
	UpdateStatus(orderID, actingUserID uint, status model.OrderStatus) (*model.Order, error)
	CountForBusiness(businessUserID uint, status model.OrderStatus) (int64, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	offerRepo   repository.OfferRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	offerRepo repository.OfferRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		offerRepo:   offerRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *orderService) Create(actingUserID, offerDetailID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"acting_user_id":  actingUserID,
		"offer_detail_id": offerDetailID,
	})

	profile, err := s.profileRepo.FindByUserID(actingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order creation failed: profile not found", map[string]interface{}{
				"acting_user_id": actingUserID,
			})
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Type != model.TypeCustomer {
		logger.Warn("Order creation denied: not a customer", map[string]interface{}{
			"acting_user_id": actingUserID,
			"type":           profile.Type,
		})
		return nil, ErrNotCustomerUser
	}

	if status == "" {
		status = model.OrderStatusInProgress
	}
	if !model.ValidOrderStatus(status) {
		logger.Warn("Order creation failed: invalid status", map[string]interface{}{
			"acting_user_id": actingUserID,
			"status":         status,
		})
		return nil, ErrInvalidOrderStatus
	}

	if _, err := s.offerRepo.FindDetailByID(offerDetailID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order creation failed: offer detail not found", map[string]interface{}{
				"offer_detail_id": offerDetailID,
			})
			return nil, ErrOfferDetailNotFound
		}
		return nil, err
	}

	order := &model.Order{
		BuyerID:       actingUserID,
		OfferDetailID: offerDetailID,
		Status:        status,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":       order.ID,
		"acting_user_id": actingUserID,
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) ListForUser(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching orders for user", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindForUser(userID)
	if err != nil {
		logger.Error("Failed to fetch orders for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

// GetByID hides orders from users who are neither the buyer nor the
// offer creator; they get a not-found instead of a permission error.
func (s *orderService) GetByID(orderID, actingUserID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.BuyerID != actingUserID && order.OwnerID() != actingUserID {
		logger.Warn("Order access denied: requester is not a party", map[string]interface{}{
			"order_id":       orderID,
			"acting_user_id": actingUserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) UpdateStatus(orderID, actingUserID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":       orderID,
		"acting_user_id": actingUserID,
		"new_status":     status,
	})

	order, err := s.GetByID(orderID, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := ensureOwner(order, actingUserID); err != nil {
		logger.Warn("Order status update denied: not the offer creator", map[string]interface{}{
			"order_id":       orderID,
			"acting_user_id": actingUserID,
		})
		return nil, err
	}

	if !model.ValidOrderStatus(status) {
		logger.Warn("Order status update failed: invalid status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return nil, ErrInvalidOrderStatus
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return order, nil
}

func (s *orderService) CountForBusiness(businessUserID uint, status model.OrderStatus) (int64, error) {
	logger.Debug("Counting orders for business user", map[string]interface{}{
		"business_user_id": businessUserID,
		"status":           status,
	})

	exists, err := s.userRepo.ExistsByID(businessUserID)
	if err != nil {
		return 0, err
	}
	if !exists {
		logger.Warn("Order count failed: user not found", map[string]interface{}{
			"business_user_id": businessUserID,
		})
		return 0, ErrUserNotFound
	}

	return s.orderRepo.CountForBusinessByStatus(businessUserID, status)
}
