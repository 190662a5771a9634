package model

import (
	"time"
)

// Review rates a business user. One review per (business, reviewer) pair;
// the unique index is the source of truth for duplicates.
type Review struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	BusinessUserID uint      `gorm:"not null;index:idx_reviews_business_reviewer,unique" json:"business_user"` // rated business
	ReviewerID     uint      `gorm:"not null;index:idx_reviews_business_reviewer,unique" json:"reviewer"`      // rating customer
	Rating         int       `gorm:"not null" json:"rating"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	BusinessUser User `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer     User `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) OwnerID() uint {
	return r.ReviewerID
}
