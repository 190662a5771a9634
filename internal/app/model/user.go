package model

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                          // user ID
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"` // login name
	Email        string    `gorm:"not null" json:"email"`                         // contact email
	PasswordHash string    `gorm:"not null" json:"-"`                             // bcrypt hash
	FirstName    string    `gorm:"size:150" json:"first_name"`                    // given name
	LastName     string    `gorm:"size:150" json:"last_name"`                     // family name
	CreatedAt    time.Time `json:"created_at"`                                    // registration time
	UpdatedAt    time.Time `json:"updated_at"`                                    // last account change

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"` // role/contact extension
}

func (User) TableName() string {
	return "users"
}
