package model

import (
	"time"

	"github.com/lib/pq"
)

// OfferType names the three pricing tiers every offer carries.
type OfferType string

const (
	OfferTypeBasic    OfferType = "basic"
	OfferTypeStandard OfferType = "standard"
	OfferTypePremium  OfferType = "premium"
)

// ValidOfferType reports whether s is one of the three tier names.
func ValidOfferType(s OfferType) bool {
	switch s {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	}
	return false
}

// Offer is a published service listing. Pricing lives in the three
// detail rows, never on the offer itself.
type Offer struct {
	ID          uint      `gorm:"primarykey" json:"id"`         // offer ID
	CreatorID   uint      `gorm:"not null;index" json:"user"`   // publishing business user
	Title       string    `gorm:"size:200;not null" json:"title"`
	Image       string    `json:"image"`                        // cover image URL
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator User          `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	Details []OfferDetail `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"details,omitempty"` // basic/standard/premium tiers
}

func (Offer) TableName() string {
	return "offers"
}

func (o *Offer) OwnerID() uint {
	return o.CreatorID
}

// OfferDetail is one pricing tier of an offer. (offer, type) is unique,
// so an offer holds at most one tier per name.
type OfferDetail struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	OfferID            uint           `gorm:"not null;index:idx_offer_details_offer_type,unique" json:"offer_id"`
	Title              string         `gorm:"size:200;not null" json:"title"`
	Revisions          int            `gorm:"not null" json:"revisions"` // -1 means unlimited
	DeliveryTimeInDays int            `gorm:"not null" json:"delivery_time_in_days"`
	Price              float64        `gorm:"not null" json:"price"`
	Features           pq.StringArray `gorm:"type:text[]" json:"features"` // bullet points shown per tier
	OfferType          OfferType      `gorm:"type:varchar(10);not null;index:idx_offer_details_offer_type,unique" json:"offer_type"`

	Offer Offer `gorm:"foreignKey:OfferID" json:"-"`
}

func (OfferDetail) TableName() string {
	return "offer_details"
}
