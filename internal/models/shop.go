package models

import "time"

type Shop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"uniqueIndex" json:"ownerId"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:255" json:"address"`
	Description string `gorm:"type:text" json:"description"`
	Phone       string `gorm:"size:20" json:"phone"`

	ImageUrl      string   `gorm:"size:500" json:"imageUrl"`
	CoverImage    string   `gorm:"size:500" json:"coverImage"`
	GalleryImages []string `gorm:"serializer:json" json:"galleryImages"`

	// Denormalized review aggregate, recomputed on every review write.
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"reviewCount"`

	Services []Service `json:"services,omitempty"`
	Reviews  []Review  `json:"reviews,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
