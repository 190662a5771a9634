package model

import (
	"time"
)

// OrderStatus tracks fulfillment of a booked tier.
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress" // work ongoing
	OrderStatusCompleted  OrderStatus = "completed"   // delivered and accepted
	OrderStatusCancelled  OrderStatus = "cancelled"   // called off
)

// ValidOrderStatus reports whether s is a known fulfillment state.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order books one offer tier for a customer. The tier fields shown on an
// order come from the referenced OfferDetail, so loading an order always
// loads the detail and its offer.
type Order struct {
	ID            uint        `gorm:"primarykey" json:"id"`                                          // order ID
	BuyerID       uint        `gorm:"not null;index" json:"customer_user"`                           // ordering customer
	OfferDetailID uint        `gorm:"not null;index" json:"offer_detail_id"`                         // booked tier
	Status        OrderStatus `gorm:"type:varchar(20);default:'in_progress';not null" json:"status"` // fulfillment state
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Buyer       User        `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`       // ordering account
	OfferDetail OfferDetail `gorm:"foreignKey:OfferDetailID;constraint:OnDelete:CASCADE" json:"-"` // tier snapshot source
}

func (Order) TableName() string {
	return "orders"
}

// OwnerID is the business user who may change the status. OfferDetail and
// its Offer must be loaded.
func (o *Order) OwnerID() uint {
	return o.OfferDetail.Offer.CreatorID
}
