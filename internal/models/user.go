package models

import "time"

const (
	RoleUser      = "user"
	RoleShopOwner = "shopOwner"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"size:20;default:'user'" json:"role"`

	Shop *Shop `gorm:"foreignKey:OwnerID" json:"shop,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
