package model

import (
	"time"
)

// ProfileType partitions accounts into the two marketplace sides.
type ProfileType string

const (
	TypeCustomer ProfileType = "customer" // orders tiers, writes reviews
	TypeBusiness ProfileType = "business" // publishes offers, fulfills orders
)

// Profile carries the public-facing half of an account. Exactly one per
// user; the type is fixed at registration.
type Profile struct {
	ID           uint        `gorm:"primarykey" json:"id"`             // profile ID
	UserID       uint        `gorm:"uniqueIndex;not null" json:"user"` // owning user, one profile each
	Type         ProfileType `gorm:"type:varchar(20);not null" json:"type"`
	File         string      `json:"file"`                         // avatar object URL
	Location     string      `gorm:"size:100" json:"location"`     // city or region
	Tel          string      `gorm:"size:30" json:"tel"`           // phone number
	Description  string      `gorm:"type:text" json:"description"` // free-form self description
	WorkingHours string      `gorm:"size:50" json:"working_hours"` // e.g. "9-17"
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // account record
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) OwnerID() uint {
	return p.UserID
}
