package models

import "time"

type TeamMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint  `gorm:"index" json:"shopId"`
	Shop   *Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop,omitempty"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Role        string   `gorm:"size:100" json:"role"`
	Bio         string   `gorm:"type:text" json:"bio"`
	Specialties []string `gorm:"serializer:json" json:"specialties"`
	ImageUrl    string   `gorm:"size:500" json:"imageUrl"`
	IsActive    bool     `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}
